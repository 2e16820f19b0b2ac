package suite

import "fmt"

// RegistrationError indicates a malformed registration, such as a nil test
// function or an unloadable data source. It is raised synchronously while the
// suite is being assembled, halting test collection; it never occurs during
// test execution.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string {
	return "test registration: " + e.Message
}

func registrationErrorf(format string, args ...interface{}) *RegistrationError {
	return &RegistrationError{Message: fmt.Sprintf(format, args...)}
}
