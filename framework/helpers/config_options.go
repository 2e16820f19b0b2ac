package helpers

// ConfigOption is one item in a vararg options list, as used by
// harness.NewBrowserHarness. Each option mutates the target under
// construction and may reject an invalid setting with an error.
type ConfigOption[T any] interface {
	Configure(*T) error
}

// ApplyOptions runs each option against the target, stopping at the first
// error. The U type parameter lets callers declare their options under their
// own named type rather than as ConfigOption[T] directly.
func ApplyOptions[T any, U ConfigOption[T]](target *T, options ...U) error {
	for _, o := range options {
		if err := o.Configure(target); err != nil {
			return err
		}
	}
	return nil
}
