package e2e

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swagshop/uitest/internal/fixtures"
	"github.com/swagshop/uitest/internal/pages"
	"github.com/swagshop/uitest/internal/store"
)

func loadScenarios(t *testing.T) *fixtures.ScenarioFile {
	t.Helper()
	file, err := fixtures.LoadCheckoutScenarios(filepath.Join("testdata", "checkout_scenarios.json"))
	require.NoError(t, err)
	return file
}

func checkoutInfo(info fixtures.CheckoutInfo) pages.CheckoutInfo {
	return pages.CheckoutInfo{
		FirstName:  info.FirstName,
		LastName:   info.LastName,
		PostalCode: info.PostalCode,
	}
}

// Feature: Checkout
//
//	As a customer
//	I want to pay for the items in my cart
//	So that my order is placed
func TestCheckoutEndToEnd(t *testing.T) {
	sess, env := newSession(t, "checkout")
	scenarios := loadScenarios(t)
	products := loginAsStandard(t, env)

	require.NoError(t, products.AddProductByName("Sauce Labs Backpack"))
	require.NoError(t, products.AddProductByName("Sauce Labs Bike Light"))
	require.NoError(t, products.OpenCart())

	cart := pages.NewCartPage(env)
	cartSubtotal, err := cart.Subtotal()
	require.NoError(t, err)
	step(t, sess, "before checkout")

	result, err := cart.CompleteCheckout(checkoutInfo(scenarios.RandomCheckoutInfo()))
	require.NoError(t, err)

	// The displayed totals must reconcile with the independently computed
	// cart subtotal and the 8% tax rate.
	assert.InDelta(t, cartSubtotal, result.Summary.Subtotal, 0.01)
	assert.InDelta(t, 39.98, result.Summary.Subtotal, 0.01)
	assert.InDelta(t, result.Summary.Subtotal*store.TaxRate, result.Summary.Tax, 0.01)
	assert.InDelta(t, 3.1984, result.Summary.Tax, 0.01)
	assert.InDelta(t, result.Summary.Subtotal+result.Summary.Tax, result.Summary.Total, 0.01)
	assert.InDelta(t, 43.1784, result.Summary.Total, 0.01)

	assert.Contains(t, result.Completion, "Thank you for your order")
	assert.Equal(t, pages.StageComplete, cart.CurrentStage())
}

// TestCheckoutScenarios runs every basket in the scenario fixture and checks
// the review subtotal against the expected one.
func TestCheckoutScenarios(t *testing.T) {
	scenarios := loadScenarios(t)

	for _, scenario := range scenarios.Scenarios {
		scenario := scenario
		t.Run(scenario.Name, func(t *testing.T) {
			_, env := newSession(t, "checkout")
			products := loginAsStandard(t, env)

			for _, name := range scenario.Products {
				require.NoError(t, products.AddProductByName(name))
			}
			require.NoError(t, products.OpenCart())

			cart := pages.NewCartPage(env)
			require.NoError(t, cart.ProceedToCheckout())
			require.NoError(t, cart.FillCheckoutInfo(checkoutInfo(scenarios.RandomCheckoutInfo())))
			require.NoError(t, cart.ContinueToReview())

			summary, err := cart.OrderSummary()
			require.NoError(t, err)
			assert.InDelta(t, scenario.ExpectedSubtotal, summary.Subtotal, 0.01)
			assert.InDelta(t, scenario.ExpectedSubtotal*store.TaxRate, summary.Tax, 0.01)
			assert.InDelta(t, summary.Subtotal+summary.Tax, summary.Total, 0.01)
		})
	}
}

// Submitting the info form with an empty required field must keep the flow
// on the info form and surface the application's validation message.
func TestCheckoutRequiredField(t *testing.T) {
	_, env := newSession(t, "checkout")
	products := loginAsStandard(t, env)

	require.NoError(t, products.AddProductByName("Sauce Labs Backpack"))
	require.NoError(t, products.OpenCart())

	cart := pages.NewCartPage(env)
	require.NoError(t, cart.ProceedToCheckout())
	require.NoError(t, cart.FillCheckoutInfo(pages.CheckoutInfo{
		FirstName:  "",
		LastName:   "Lovelace",
		PostalCode: "10178",
	}))

	err := cart.ContinueToReview()
	var validation *pages.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "First Name is required")
	assert.Equal(t, pages.StageInfoForm, cart.CurrentStage(),
		"flow must not advance past the info form")
}
