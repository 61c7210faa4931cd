package pages

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

// Stage is the checkout flow position. The flow is strictly linear:
// Cart -> InfoForm -> Review -> Complete. There is no backward transition.
type Stage int

const (
	StageCart Stage = iota
	StageInfoForm
	StageReview
	StageComplete
)

func (s Stage) String() string {
	switch s {
	case StageCart:
		return "cart"
	case StageInfoForm:
		return "info form"
	case StageReview:
		return "review"
	case StageComplete:
		return "complete"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// CartItem is a snapshot of one cart row.
type CartItem struct {
	Name           string
	Price          float64
	Quantity       int
	RemoveButtonID string
}

// LineTotal is the row's price times quantity.
func (c CartItem) LineTotal() float64 {
	return c.Price * float64(c.Quantity)
}

// CheckoutInfo is the customer data entered on the info form.
type CheckoutInfo struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// OrderSummary is parsed from the review screen's display strings.
type OrderSummary struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// CheckoutResult is returned by the composed end-to-end checkout helper.
type CheckoutResult struct {
	Summary    OrderSummary
	Completion string
}

var cartLocators = struct {
	list          string
	item          string
	itemName      string
	itemPrice     string
	itemQuantity  string
	itemButton    string
	checkout      string
	firstName     string
	lastName      string
	postalCode    string
	continueBtn   string
	errorBanner   string
	summary       string
	subtotalLabel string
	taxLabel      string
	totalLabel    string
	finish        string
	completeHead  string
}{
	list:          ".cart_list",
	item:          ".cart_item",
	itemName:      ".inventory_item_name",
	itemPrice:     ".inventory_item_price",
	itemQuantity:  ".cart_quantity",
	itemButton:    "button.cart_button",
	checkout:      "#checkout",
	firstName:     "#first-name",
	lastName:      "#last-name",
	postalCode:    "#postal-code",
	continueBtn:   "#continue",
	errorBanner:   `[data-test="error"]`,
	summary:       ".summary_info",
	subtotalLabel: ".summary_subtotal_label",
	taxLabel:      ".summary_tax_label",
	totalLabel:    ".summary_total_label",
	finish:        "#finish",
	completeHead:  ".complete-header",
}

// CartPage models the cart screen and the linear checkout flow that starts
// from it.
type CartPage struct {
	base
	stage Stage
}

// NewCartPage builds a cart page object bound to the Env's session. The
// checkout flow starts at the cart stage.
func NewCartPage(env Env) *CartPage {
	return &CartPage{base: env.newBase(), stage: StageCart}
}

// CurrentStage returns the checkout flow position.
func (p *CartPage) CurrentStage() Stage {
	return p.stage
}

func (p *CartPage) requireStage(required Stage) error {
	if p.stage != required {
		return &StateError{Current: p.stage, Required: required}
	}
	return nil
}

// IsDisplayed reports whether the cart screen is the active screen.
func (p *CartPage) IsDisplayed() bool {
	return p.isVisible(cartLocators.list)
}

// Items enumerates the cart rows. A malformed row is logged and skipped,
// preserving partial results.
func (p *CartPage) Items() ([]CartItem, error) {
	if _, err := p.locate(cartLocators.list, "cart list"); err != nil {
		return nil, err
	}
	rows, err := p.page.Locator(cartLocators.item).All()
	if err != nil {
		return nil, fmt.Errorf("could not enumerate cart rows: %w", err)
	}

	items := make([]CartItem, 0, len(rows))
	for i, row := range rows {
		item, err := p.readRow(row)
		if err != nil {
			p.log.Warn("skipping malformed cart row",
				zap.Int("index", i), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *CartPage) readRow(row playwright.Locator) (CartItem, error) {
	name, err := row.Locator(cartLocators.itemName).TextContent()
	if err != nil {
		return CartItem{}, fmt.Errorf("reading name: %w", err)
	}
	priceText, err := row.Locator(cartLocators.itemPrice).TextContent()
	if err != nil {
		return CartItem{}, fmt.Errorf("reading price: %w", err)
	}
	price, err := ParsePrice(priceText)
	if err != nil {
		return CartItem{}, err
	}
	quantityText, err := row.Locator(cartLocators.itemQuantity).TextContent()
	if err != nil {
		return CartItem{}, fmt.Errorf("reading quantity: %w", err)
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(quantityText))
	if err != nil {
		return CartItem{}, fmt.Errorf("malformed quantity %q: %w", quantityText, err)
	}
	buttonID, err := row.Locator(cartLocators.itemButton).GetAttribute("id")
	if err != nil {
		return CartItem{}, fmt.Errorf("reading remove button: %w", err)
	}
	return CartItem{
		Name:           strings.TrimSpace(name),
		Price:          price,
		Quantity:       quantity,
		RemoveButtonID: buttonID,
	}, nil
}

// ItemNames returns the cart row names in display order.
func (p *CartPage) ItemNames() ([]string, error) {
	items, err := p.Items()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names, nil
}

// Subtotal computes the sum of price times quantity over the enumerated
// rows. It must reconcile with the review screen's displayed subtotal.
func (p *CartPage) Subtotal() (float64, error) {
	items, err := p.Items()
	if err != nil {
		return 0, err
	}
	var subtotal float64
	for _, item := range items {
		subtotal += item.LineTotal()
	}
	return subtotal, nil
}

// RemoveByName removes the named row and blocks until the row count drops,
// polling instead of pausing a fixed settle interval.
func (p *CartPage) RemoveByName(name string) error {
	items, err := p.Items()
	if err != nil {
		return err
	}
	var target *CartItem
	for i := range items {
		if items[i].Name == name {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return &NotFoundError{Kind: "cart item", Name: name}
	}
	before := len(items)

	if err := p.click("#"+target.RemoveButtonID, "remove from cart: "+name); err != nil {
		return err
	}

	return p.waitUntil(fmt.Sprintf("cart rows to drop below %d", before), func() (bool, error) {
		rows, err := p.page.Locator(cartLocators.item).Count()
		if err != nil {
			return false, err
		}
		return rows == before-1, nil
	})
}

// ProceedToCheckout advances Cart -> InfoForm.
func (p *CartPage) ProceedToCheckout() error {
	if err := p.requireStage(StageCart); err != nil {
		return err
	}
	if err := p.click(cartLocators.checkout, "checkout button"); err != nil {
		return err
	}
	if _, err := p.locate(cartLocators.firstName, "first name field"); err != nil {
		return &StageTimeoutError{Stage: StageInfoForm, Err: err}
	}
	p.stage = StageInfoForm
	return nil
}

// FillCheckoutInfo enters the customer data on the info form.
func (p *CartPage) FillCheckoutInfo(info CheckoutInfo) error {
	if err := p.requireStage(StageInfoForm); err != nil {
		return err
	}
	if err := p.typeInto(cartLocators.firstName, info.FirstName, "first name field"); err != nil {
		return err
	}
	if err := p.typeInto(cartLocators.lastName, info.LastName, "last name field"); err != nil {
		return err
	}
	return p.typeInto(cartLocators.postalCode, info.PostalCode, "postal code field")
}

// ContinueToReview advances InfoForm -> Review. If the application rejects
// the form, the flow stays on the info form and the validation message is
// returned as a ValidationError.
func (p *CartPage) ContinueToReview() error {
	if err := p.requireStage(StageInfoForm); err != nil {
		return err
	}
	if err := p.click(cartLocators.continueBtn, "continue button"); err != nil {
		return err
	}

	// The application either advances to the review screen or re-renders
	// the form with an error banner. Poll for whichever appears first.
	var message string
	err := p.waitUntil("review screen or validation error", func() (bool, error) {
		if p.isVisible(cartLocators.summary) {
			return true, nil
		}
		if text, ok := p.formError(); ok {
			message = text
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		return &StageTimeoutError{Stage: StageReview, Err: err}
	}
	if message != "" {
		return &ValidationError{Message: message}
	}
	p.stage = StageReview
	return nil
}

func (p *CartPage) formError() (string, bool) {
	if !p.isVisible(cartLocators.errorBanner) {
		return "", false
	}
	text, err := p.readText(cartLocators.errorBanner, "checkout error banner")
	if err != nil {
		return "", false
	}
	return text, true
}

// OrderSummary parses the review screen's subtotal, tax and total labels.
func (p *CartPage) OrderSummary() (OrderSummary, error) {
	if err := p.requireStage(StageReview); err != nil {
		return OrderSummary{}, err
	}
	subtotal, err := p.summaryAmount(cartLocators.subtotalLabel, "subtotal label")
	if err != nil {
		return OrderSummary{}, err
	}
	tax, err := p.summaryAmount(cartLocators.taxLabel, "tax label")
	if err != nil {
		return OrderSummary{}, err
	}
	total, err := p.summaryAmount(cartLocators.totalLabel, "total label")
	if err != nil {
		return OrderSummary{}, err
	}
	return OrderSummary{Subtotal: subtotal, Tax: tax, Total: total}, nil
}

// summaryAmount reads a label such as "Item total: $39.98" and returns the
// trailing amount.
func (p *CartPage) summaryAmount(selector, label string) (float64, error) {
	text, err := p.readText(selector, label)
	if err != nil {
		return 0, err
	}
	idx := strings.LastIndex(text, "$")
	if idx < 0 {
		return 0, fmt.Errorf("%s shows %q, expected an amount", label, text)
	}
	return ParsePrice(text[idx:])
}

// FinishOrder advances Review -> Complete.
func (p *CartPage) FinishOrder() error {
	if err := p.requireStage(StageReview); err != nil {
		return err
	}
	if err := p.click(cartLocators.finish, "finish button"); err != nil {
		return err
	}
	if _, err := p.locate(cartLocators.completeHead, "completion header"); err != nil {
		return &StageTimeoutError{Stage: StageComplete, Err: err}
	}
	p.stage = StageComplete
	return nil
}

// Completion returns the completion screen's confirmation text.
func (p *CartPage) Completion() (string, error) {
	if err := p.requireStage(StageComplete); err != nil {
		return "", err
	}
	return p.readText(cartLocators.completeHead, "completion header")
}

// CompleteCheckout chains every checkout stage from the cart screen and
// returns the parsed order summary together with the completion text.
func (p *CartPage) CompleteCheckout(info CheckoutInfo) (*CheckoutResult, error) {
	if err := p.ProceedToCheckout(); err != nil {
		return nil, err
	}
	if err := p.FillCheckoutInfo(info); err != nil {
		return nil, err
	}
	if err := p.ContinueToReview(); err != nil {
		return nil, err
	}
	summary, err := p.OrderSummary()
	if err != nil {
		return nil, err
	}
	if err := p.FinishOrder(); err != nil {
		return nil, err
	}
	completion, err := p.Completion()
	if err != nil {
		return nil, err
	}
	return &CheckoutResult{Summary: summary, Completion: completion}, nil
}
