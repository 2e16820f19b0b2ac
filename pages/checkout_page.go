package pages

import (
	"strconv"

	"github.com/sitetest/browser-test-harness/framework/harness"
)

// CheckoutPage drives the order form.
type CheckoutPage struct {
	BasePage
}

func NewCheckoutPage(fx *harness.Fixtures) *CheckoutPage {
	return &CheckoutPage{BasePage{fx: fx, path: "/checkout"}}
}

// PlaceOrder submits the form. It does not assert the outcome; callers check
// Confirmation or ErrorMessage.
func (p *CheckoutPage) PlaceOrder(item string, quantity int) error {
	if err := p.fill("#item", item); err != nil {
		return err
	}
	if err := p.fill("#quantity", strconv.Itoa(quantity)); err != nil {
		return err
	}
	return p.click("#checkout-submit")
}

// Confirmation returns the order confirmation headline.
func (p *CheckoutPage) Confirmation() (string, error) {
	return p.textOf("#order-confirmation")
}

// OrderSummary returns the quantity-and-item line under the confirmation.
func (p *CheckoutPage) OrderSummary() (string, error) {
	return p.textOf("#order-summary")
}
