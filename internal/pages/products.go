package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// SortMode enumerates the supported product sort orders.
type SortMode string

const (
	SortNameAsc   SortMode = "az"
	SortNameDesc  SortMode = "za"
	SortPriceAsc  SortMode = "lohi"
	SortPriceDesc SortMode = "hilo"
)

// Product is a snapshot of one product card. It is not kept in sync with the
// live DOM; re-enumerate to observe changes.
type Product struct {
	Name        string
	Price       float64
	PriceText   string
	Description string
	AddButtonID string
}

var productsLocators = struct {
	title       string
	list        string
	item        string
	itemName    string
	itemDesc    string
	itemPrice   string
	itemButton  string
	sortSelect  string
	cartLink    string
	cartBadge   string
	cartList    string
}{
	title:      ".title",
	list:       ".inventory_list",
	item:       ".inventory_item",
	itemName:   ".inventory_item_name",
	itemDesc:   ".inventory_item_desc",
	itemPrice:  ".inventory_item_price",
	itemButton: "button.btn_inventory",
	sortSelect: ".product_sort_container",
	cartLink:   ".shopping_cart_link",
	cartBadge:  ".shopping_cart_badge",
	cartList:   ".cart_list",
}

// ProductsPage models the inventory screen shown after a successful login.
type ProductsPage struct {
	base
}

// NewProductsPage builds a products page object bound to the Env's session.
func NewProductsPage(env Env) *ProductsPage {
	return &ProductsPage{base: env.newBase()}
}

// IsDisplayed reports whether the inventory screen is the active screen.
func (p *ProductsPage) IsDisplayed() bool {
	return p.isVisible(productsLocators.list)
}

// AllProducts enumerates every product card on the page. A card whose
// sub-elements are malformed is logged and skipped so one broken card does
// not abort the whole enumeration.
func (p *ProductsPage) AllProducts() ([]Product, error) {
	if _, err := p.locate(productsLocators.list, "inventory list"); err != nil {
		return nil, err
	}
	cards, err := p.page.Locator(productsLocators.item).All()
	if err != nil {
		return nil, fmt.Errorf("could not enumerate product cards: %w", err)
	}

	products := make([]Product, 0, len(cards))
	for i, card := range cards {
		product, err := p.readCard(card)
		if err != nil {
			p.log.Warn("skipping malformed product card",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		products = append(products, product)
	}
	return products, nil
}

func (p *ProductsPage) readCard(card playwright.Locator) (Product, error) {
	name, err := card.Locator(productsLocators.itemName).TextContent()
	if err != nil {
		return Product{}, fmt.Errorf("reading name: %w", err)
	}
	desc, err := card.Locator(productsLocators.itemDesc).TextContent()
	if err != nil {
		return Product{}, fmt.Errorf("reading description: %w", err)
	}
	priceText, err := card.Locator(productsLocators.itemPrice).TextContent()
	if err != nil {
		return Product{}, fmt.Errorf("reading price: %w", err)
	}
	priceText = strings.TrimSpace(priceText)
	price, err := ParsePrice(priceText)
	if err != nil {
		return Product{}, err
	}
	buttonID, err := card.Locator(productsLocators.itemButton).GetAttribute("id")
	if err != nil {
		return Product{}, fmt.Errorf("reading action button: %w", err)
	}
	return Product{
		Name:        strings.TrimSpace(name),
		Price:       price,
		PriceText:   priceText,
		Description: strings.TrimSpace(desc),
		AddButtonID: buttonID,
	}, nil
}

// ProductNames returns the product names in current display order.
func (p *ProductsPage) ProductNames() ([]string, error) {
	products, err := p.AllProducts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(products))
	for i, product := range products {
		names[i] = product.Name
	}
	return names, nil
}

// AddProductByName finds the product by exact name in the current
// enumeration and clicks its add control, then blocks until the cart badge
// reflects one additional item. The counter wait stands in for an explicit
// add-succeeded signal from the application.
func (p *ProductsPage) AddProductByName(name string) error {
	before, err := p.CartBadgeCount()
	if err != nil {
		return err
	}

	products, err := p.AllProducts()
	if err != nil {
		return err
	}
	var target *Product
	for i := range products {
		if products[i].Name == name {
			target = &products[i]
			break
		}
	}
	if target == nil {
		return &NotFoundError{Kind: "product", Name: name}
	}

	if err := p.click("#"+target.AddButtonID, "add to cart: "+name); err != nil {
		return err
	}

	return p.waitUntil(fmt.Sprintf("cart badge to reach %d", before+1), func() (bool, error) {
		count, err := p.CartBadgeCount()
		if err != nil {
			return false, err
		}
		return count == before+1, nil
	})
}

// CartBadgeCount reads the cart counter. An absent badge means an empty
// cart, not an error.
func (p *ProductsPage) CartBadgeCount() (int, error) {
	if !p.isVisible(productsLocators.cartBadge) {
		return 0, nil
	}
	text, err := p.readText(productsLocators.cartBadge, "cart badge")
	if err != nil {
		return 0, err
	}
	count, err := strconv.Atoi(text)
	if err != nil {
		return 0, fmt.Errorf("cart badge shows %q, expected a number: %w", text, err)
	}
	return count, nil
}

// SortBy applies one of the supported sort modes, then polls until the
// rendered order converges instead of pausing a fixed settle interval.
func (p *ProductsPage) SortBy(mode SortMode) error {
	switch mode {
	case SortNameAsc, SortNameDesc, SortPriceAsc, SortPriceDesc:
	default:
		return fmt.Errorf("unsupported sort mode %q", mode)
	}

	sel, err := p.locate(productsLocators.sortSelect, "sort selector")
	if err != nil {
		return err
	}
	values := []string{string(mode)}
	if _, err := sel.SelectOption(playwright.SelectOptionValues{Values: &values}); err != nil {
		return fmt.Errorf("could not apply sort %q: %w", mode, err)
	}

	_, err = p.waitStable("sorted product order", p.ProductNames)
	return err
}

// OpenCart navigates to the cart screen and waits for its list to appear.
func (p *ProductsPage) OpenCart() error {
	if err := p.click(productsLocators.cartLink, "cart link"); err != nil {
		return err
	}
	if _, err := p.locate(productsLocators.cartList, "cart list"); err != nil {
		return fmt.Errorf("cart page did not load: %w", err)
	}
	return nil
}

// ParsePrice converts a displayed price such as "$29.99" to its numeric
// value.
func ParsePrice(text string) (float64, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "$")
	if trimmed == "" {
		return 0, fmt.Errorf("empty price text %q", text)
	}
	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return 0, fmt.Errorf("malformed price text %q: %w", text, err)
	}
	return price, nil
}
