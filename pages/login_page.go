package pages

import (
	"github.com/sitetest/browser-test-harness/framework/harness"
)

// LoginPage drives the sign-in form.
type LoginPage struct {
	BasePage
}

func NewLoginPage(fx *harness.Fixtures) *LoginPage {
	return &LoginPage{BasePage{fx: fx, path: "/login"}}
}

// SignIn submits the form with the given credentials. It does not assert the
// outcome; callers check Greeting or ErrorMessage.
func (p *LoginPage) SignIn(username, password string) error {
	if err := p.fill("#username", username); err != nil {
		return err
	}
	if err := p.fill("#password", password); err != nil {
		return err
	}
	return p.click("#login-submit")
}

// Greeting returns the account page's welcome text after a successful sign-in.
func (p *LoginPage) Greeting() (string, error) {
	return p.textOf("#account-greeting")
}

// SignOut follows the sign-out link on the account page.
func (p *LoginPage) SignOut() error {
	return p.click("#logout-link")
}
