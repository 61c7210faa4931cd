package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swagshop/uitest/internal/pages"
)

// Feature: Cart
//
//	As a customer
//	I want to review and edit the items I picked
//	So that my order contains exactly what I want
func TestCartContents(t *testing.T) {
	sess, env := newSession(t, "cart")
	products := loginAsStandard(t, env)

	require.NoError(t, products.AddProductByName("Sauce Labs Backpack"))
	require.NoError(t, products.AddProductByName("Sauce Labs Bike Light"))
	require.NoError(t, products.OpenCart())
	step(t, sess, "cart opened")

	cart := pages.NewCartPage(env)
	items, err := cart.Items()
	require.NoError(t, err)
	require.Len(t, items, 2)

	byName := make(map[string]pages.CartItem, len(items))
	for _, item := range items {
		byName[item.Name] = item
	}

	backpack, ok := byName["Sauce Labs Backpack"]
	require.True(t, ok, "backpack should be in the cart")
	assert.InDelta(t, 29.99, backpack.Price, 0.001)
	assert.Equal(t, 1, backpack.Quantity)
	assert.InDelta(t, 29.99, backpack.LineTotal(), 0.001)

	light, ok := byName["Sauce Labs Bike Light"]
	require.True(t, ok, "bike light should be in the cart")
	assert.InDelta(t, 9.99, light.Price, 0.001)

	subtotal, err := cart.Subtotal()
	require.NoError(t, err)
	assert.InDelta(t, 39.98, subtotal, 0.001)
}

func TestCartRemoveItem(t *testing.T) {
	_, env := newSession(t, "cart")
	products := loginAsStandard(t, env)

	require.NoError(t, products.AddProductByName("Sauce Labs Backpack"))
	require.NoError(t, products.AddProductByName("Sauce Labs Bike Light"))
	require.NoError(t, products.AddProductByName("Sauce Labs Onesie"))
	require.NoError(t, products.OpenCart())

	cart := pages.NewCartPage(env)
	require.NoError(t, cart.RemoveByName("Sauce Labs Bike Light"))

	names, err := cart.ItemNames()
	require.NoError(t, err)
	assert.Len(t, names, 2)
	assert.NotContains(t, names, "Sauce Labs Bike Light",
		"removed item must be absent from subsequent enumeration")
	assert.Contains(t, names, "Sauce Labs Backpack")
	assert.Contains(t, names, "Sauce Labs Onesie")
}

func TestCartRemoveMissingItem(t *testing.T) {
	_, env := newSession(t, "cart")
	products := loginAsStandard(t, env)

	require.NoError(t, products.AddProductByName("Sauce Labs Backpack"))
	require.NoError(t, products.OpenCart())

	cart := pages.NewCartPage(env)
	err := cart.RemoveByName("Sauce Labs Jetpack")
	var notFound *pages.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "cart item", notFound.Kind)
}
