// Package store is the Swag Shop sample storefront the suite runs against.
// It keeps all state in memory so end-to-end runs are hermetic: login,
// inventory with sorting, a cookie-bound cart, and a linear checkout flow
// with an 8% tax applied on review.
package store

import (
	"fmt"
	"sort"
)

// TaxRate is applied to the cart subtotal on the review screen.
const TaxRate = 0.08

// Product is one catalog entry. Slug doubles as the add/remove action
// identifier in the page markup.
type Product struct {
	Slug        string
	Name        string
	Description string
	Price       float64
}

// PriceText formats the display price.
func (p Product) PriceText() string {
	return fmt.Sprintf("$%.2f", p.Price)
}

// AddButtonID is the DOM id of the product's add-to-cart control.
func (p Product) AddButtonID() string {
	return "add-to-cart-" + p.Slug
}

// RemoveButtonID is the DOM id of the product's remove control.
func (p Product) RemoveButtonID() string {
	return "remove-" + p.Slug
}

// Catalog is the fixed product inventory.
type Catalog struct {
	products []Product
	bySlug   map[string]Product
}

// NewCatalog seeds the default six-product inventory.
func NewCatalog() *Catalog {
	products := []Product{
		{
			Slug:        "sauce-labs-backpack",
			Name:        "Sauce Labs Backpack",
			Description: "carry.allTheThings() with the sleek, streamlined Sly Pack that melds uncompromising style with unequaled laptop and tablet protection.",
			Price:       29.99,
		},
		{
			Slug:        "sauce-labs-bike-light",
			Name:        "Sauce Labs Bike Light",
			Description: "A red light isn't the desired state in testing but it sure helps when riding your bike at night. Water-resistant with 3 lighting modes.",
			Price:       9.99,
		},
		{
			Slug:        "sauce-labs-bolt-t-shirt",
			Name:        "Sauce Labs Bolt T-Shirt",
			Description: "Get your testing superhero on with the Sauce Labs bolt T-shirt. From American Apparel, 100% ringspun combed cotton.",
			Price:       15.99,
		},
		{
			Slug:        "sauce-labs-fleece-jacket",
			Name:        "Sauce Labs Fleece Jacket",
			Description: "It's not every day that you come across a midweight quarter-zip fleece jacket capable of handling everything from a relaxing day outdoors to a busy day at the office.",
			Price:       49.99,
		},
		{
			Slug:        "sauce-labs-onesie",
			Name:        "Sauce Labs Onesie",
			Description: "Rib snap infant onesie for the junior automation engineer in development. Reinforced 3-snap bottom closure, two-needle hemmed sleeved and bottom won't unravel.",
			Price:       7.99,
		},
		{
			Slug:        "test-allthethings-t-shirt-red",
			Name:        "Test.allTheThings() T-Shirt (Red)",
			Description: "This classic Sauce Labs t-shirt is perfect to wear when cozying up to your keyboard to automate a few tests.",
			Price:       15.99,
		},
	}

	bySlug := make(map[string]Product, len(products))
	for _, p := range products {
		bySlug[p.Slug] = p
	}
	return &Catalog{products: products, bySlug: bySlug}
}

// BySlug looks up a product by its slug.
func (c *Catalog) BySlug(slug string) (Product, bool) {
	p, ok := c.bySlug[slug]
	return p, ok
}

// Sorted returns the catalog in the order requested by the inventory page's
// sort selector. Unknown modes fall back to name ascending.
func (c *Catalog) Sorted(mode string) []Product {
	products := append([]Product(nil), c.products...)
	switch mode {
	case "za":
		sort.Slice(products, func(i, j int) bool { return products[i].Name > products[j].Name })
	case "lohi":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "hilo":
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	default:
		sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	}
	return products
}

// Account is one login credential accepted by the storefront.
type Account struct {
	Username string
	Password string
	Locked   bool
}

// defaultAccounts mirrors the well-known demo users.
func defaultAccounts() map[string]Account {
	accounts := []Account{
		{Username: "standard_user", Password: "secret_sauce"},
		{Username: "locked_out_user", Password: "secret_sauce", Locked: true},
		{Username: "problem_user", Password: "secret_sauce"},
		{Username: "performance_glitch_user", Password: "secret_sauce"},
	}
	byName := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		byName[a.Username] = a
	}
	return byName
}
