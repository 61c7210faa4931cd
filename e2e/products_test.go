package e2e

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swagshop/uitest/internal/pages"
)

// Feature: Product browsing
//
//	As a customer
//	I want to view and sort the product listing
//	So that I can find what I want to buy
func TestProductEnumeration(t *testing.T) {
	_, env := newSession(t, "products")
	products := loginAsStandard(t, env)

	all, err := products.AllProducts()
	require.NoError(t, err)
	require.Len(t, all, 6)

	for _, p := range all {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Description)
		assert.Greater(t, p.Price, 0.0, "product %q should have a positive price", p.Name)
		assert.True(t, strings.HasPrefix(p.PriceText, "$"),
			"price text %q should carry the currency prefix", p.PriceText)
		assert.NotEmpty(t, p.AddButtonID, "product %q should expose an action control", p.Name)
	}
}

// Sorting must yield a permutation of the original listing that is ordered
// under the mode's key.
func TestSortModes(t *testing.T) {
	_, env := newSession(t, "products")
	products := loginAsStandard(t, env)

	original, err := products.AllProducts()
	require.NoError(t, err)
	require.NotEmpty(t, original)

	modes := []struct {
		mode    pages.SortMode
		ordered func(a, b pages.Product) bool
	}{
		{pages.SortNameAsc, func(a, b pages.Product) bool { return a.Name <= b.Name }},
		{pages.SortNameDesc, func(a, b pages.Product) bool { return a.Name >= b.Name }},
		{pages.SortPriceAsc, func(a, b pages.Product) bool { return a.Price <= b.Price }},
		{pages.SortPriceDesc, func(a, b pages.Product) bool { return a.Price >= b.Price }},
	}

	for _, tt := range modes {
		t.Run(string(tt.mode), func(t *testing.T) {
			require.NoError(t, products.SortBy(tt.mode))

			sorted, err := products.AllProducts()
			require.NoError(t, err)

			assert.ElementsMatch(t, names(original), names(sorted),
				"sorting must permute the listing, not change it")
			for i := 1; i < len(sorted); i++ {
				assert.True(t, tt.ordered(sorted[i-1], sorted[i]),
					"%q and %q out of order under %s", sorted[i-1].Name, sorted[i].Name, tt.mode)
			}
		})
	}
}

func TestSortByRejectsUnknownMode(t *testing.T) {
	_, env := newSession(t, "products")
	products := loginAsStandard(t, env)

	err := products.SortBy(pages.SortMode("price-random"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sort mode")
}

func TestAddProductByName(t *testing.T) {
	_, env := newSession(t, "products")
	products := loginAsStandard(t, env)

	count, err := products.CartBadgeCount()
	require.NoError(t, err)
	require.Zero(t, count, "cart should start empty")

	require.NoError(t, products.AddProductByName("Sauce Labs Backpack"))
	require.NoError(t, products.AddProductByName("Sauce Labs Bike Light"))

	count, err = products.CartBadgeCount()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddProductByNameMissing(t *testing.T) {
	_, env := newSession(t, "products")
	products := loginAsStandard(t, env)

	err := products.AddProductByName("Sauce Labs Jetpack")
	var notFound *pages.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "product", notFound.Kind)
	assert.Equal(t, "Sauce Labs Jetpack", notFound.Name)
}

func names(products []pages.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	sort.Strings(out)
	return out
}
