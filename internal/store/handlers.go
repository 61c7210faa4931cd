package store

import (
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Login error messages shown in the error banner.
const (
	msgLockedOut        = "Epic sadface: Sorry, this user has been locked out."
	msgBadCredentials   = "Epic sadface: Username and password do not match any user in this service"
	msgUsernameRequired = "Epic sadface: Username is required"
	msgPasswordRequired = "Epic sadface: Password is required"
)

// Checkout form error messages.
const (
	msgFirstNameRequired  = "Error: First Name is required"
	msgLastNameRequired   = "Error: Last Name is required"
	msgPostalCodeRequired = "Error: Postal Code is required"
)

type loginData struct {
	Username string
	Error    string
}

func (a *App) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if a.sessions.get(r) != nil {
		http.Redirect(w, r, "/inventory", http.StatusSeeOther)
		return
	}
	a.render(w, "login.html", loginData{})
}

func (a *App) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	username := strings.TrimSpace(r.FormValue("user-name"))
	password := r.FormValue("password")

	var message string
	switch {
	case username == "":
		message = msgUsernameRequired
	case password == "":
		message = msgPasswordRequired
	default:
		account, ok := a.accounts[username]
		switch {
		case !ok || account.Password != password:
			message = msgBadCredentials
		case account.Locked:
			message = msgLockedOut
		}
	}

	if message != "" {
		a.log.Info("login rejected", zap.String("username", username))
		a.render(w, "login.html", loginData{Username: username, Error: message})
		return
	}

	a.sessions.create(w, username)
	a.log.Info("login accepted", zap.String("username", username))
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
}

func (a *App) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	a.sessions.drop(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

type inventoryItem struct {
	Product Product
	InCart  bool
}

type inventoryData struct {
	Items     []inventoryItem
	CartCount int
	Sort      string
}

func (a *App) handleInventory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s := a.requireSession(w, r)
	if s == nil {
		return
	}

	mode := r.URL.Query().Get("sort")
	if mode == "" {
		mode = "az"
	}

	inCart := make(map[string]bool, len(s.Cart))
	for _, line := range s.Cart {
		inCart[line.Slug] = true
	}

	products := a.catalog.Sorted(mode)
	items := make([]inventoryItem, len(products))
	for i, p := range products {
		items[i] = inventoryItem{Product: p, InCart: inCart[p.Slug]}
	}

	a.render(w, "inventory.html", inventoryData{
		Items:     items,
		CartCount: s.cartCount(),
		Sort:      mode,
	})
}

type cartRow struct {
	Product  Product
	Quantity int
}

type cartData struct {
	Items     []cartRow
	CartCount int
}

func (a *App) cartRows(s *session) []cartRow {
	rows := make([]cartRow, 0, len(s.Cart))
	for _, line := range s.Cart {
		product, ok := a.catalog.BySlug(line.Slug)
		if !ok {
			continue
		}
		rows = append(rows, cartRow{Product: product, Quantity: line.Quantity})
	}
	return rows
}

func (a *App) handleCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s := a.requireSession(w, r)
	if s == nil {
		return
	}
	a.render(w, "cart.html", cartData{Items: a.cartRows(s), CartCount: s.cartCount()})
}

// cartMutation applies one add/remove action, then sends the shopper back
// where they came from.
func (a *App) cartMutation(w http.ResponseWriter, r *http.Request, apply func(*session, string) bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s := a.requireSession(w, r)
	if s == nil {
		return
	}

	slug := r.FormValue("item")
	if !apply(s, slug) {
		http.Error(w, "Unknown item", http.StatusBadRequest)
		return
	}

	back := r.FormValue("back")
	if back == "" || !strings.HasPrefix(back, "/") {
		back = "/inventory"
	}
	http.Redirect(w, r, back, http.StatusSeeOther)
}

func (a *App) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	a.cartMutation(w, r, func(s *session, slug string) bool {
		if _, ok := a.catalog.BySlug(slug); !ok {
			return false
		}
		s.addToCart(slug)
		a.log.Info("item added to cart",
			zap.String("user", s.User), zap.String("item", slug))
		return true
	})
}

func (a *App) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	a.cartMutation(w, r, func(s *session, slug string) bool {
		if _, ok := a.catalog.BySlug(slug); !ok {
			return false
		}
		s.removeFromCart(slug)
		a.log.Info("item removed from cart",
			zap.String("user", s.User), zap.String("item", slug))
		return true
	})
}

type checkoutInfoData struct {
	Info      CheckoutInfo
	Error     string
	CartCount int
}

func (a *App) handleCheckoutInfo(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.render(w, "checkout_step_one.html", checkoutInfoData{
			Info:      s.Checkout,
			CartCount: s.cartCount(),
		})
	case http.MethodPost:
		info := CheckoutInfo{
			FirstName:  strings.TrimSpace(r.FormValue("first-name")),
			LastName:   strings.TrimSpace(r.FormValue("last-name")),
			PostalCode: strings.TrimSpace(r.FormValue("postal-code")),
		}

		var message string
		switch {
		case info.FirstName == "":
			message = msgFirstNameRequired
		case info.LastName == "":
			message = msgLastNameRequired
		case info.PostalCode == "":
			message = msgPostalCodeRequired
		}
		if message != "" {
			a.render(w, "checkout_step_one.html", checkoutInfoData{
				Info:      info,
				Error:     message,
				CartCount: s.cartCount(),
			})
			return
		}

		s.Checkout = info
		http.Redirect(w, r, "/checkout-step-two", http.StatusSeeOther)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type overviewData struct {
	Items        []cartRow
	CartCount    int
	SubtotalText string
	TaxText      string
	TotalText    string
}

// totals computes the order amounts from the live cart.
func (a *App) totals(s *session) (subtotal, tax, total float64) {
	for _, row := range a.cartRows(s) {
		subtotal += row.Product.Price * float64(row.Quantity)
	}
	tax = subtotal * TaxRate
	total = subtotal + tax
	return subtotal, tax, total
}

func (a *App) handleCheckoutOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s := a.requireSession(w, r)
	if s == nil {
		return
	}

	subtotal, tax, total := a.totals(s)
	a.render(w, "checkout_step_two.html", overviewData{
		Items:        a.cartRows(s),
		CartCount:    s.cartCount(),
		SubtotalText: fmt.Sprintf("$%.2f", subtotal),
		TaxText:      fmt.Sprintf("$%.2f", tax),
		TotalText:    fmt.Sprintf("$%.2f", total),
	})
}

func (a *App) handleCheckoutComplete(w http.ResponseWriter, r *http.Request) {
	s := a.requireSession(w, r)
	if s == nil {
		return
	}

	switch r.Method {
	case http.MethodPost:
		_, _, total := a.totals(s)
		a.log.Info("order placed",
			zap.String("user", s.User), zap.Float64("total", total))
		s.Cart = nil
		s.Checkout = CheckoutInfo{}
		http.Redirect(w, r, "/checkout-complete", http.StatusSeeOther)
	case http.MethodGet:
		a.render(w, "checkout_complete.html", nil)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
