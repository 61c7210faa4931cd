package store

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateNames = []string{
	"login.html",
	"inventory.html",
	"cart.html",
	"checkout_step_one.html",
	"checkout_step_two.html",
	"checkout_complete.html",
}

// App is the assembled storefront.
type App struct {
	catalog   *Catalog
	accounts  map[string]Account
	sessions  *sessionStore
	templates map[string]*template.Template
	log       *zap.Logger
}

// New builds the storefront with the default catalog and demo accounts.
func New(log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	templates := make(map[string]*template.Template, len(templateNames))
	for _, name := range templateNames {
		tmpl, err := template.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("could not parse template %s: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &App{
		catalog:   NewCatalog(),
		accounts:  defaultAccounts(),
		sessions:  newSessionStore(),
		templates: templates,
		log:       log,
	}, nil
}

// Handler returns the storefront's route table.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", a.handleLoginPage)
	mux.HandleFunc("/login", a.handleLoginSubmit)
	mux.HandleFunc("/logout", a.handleLogout)
	mux.HandleFunc("/inventory", a.handleInventory)
	mux.HandleFunc("/cart", a.handleCart)
	mux.HandleFunc("/cart/add", a.handleCartAdd)
	mux.HandleFunc("/cart/remove", a.handleCartRemove)
	mux.HandleFunc("/checkout-step-one", a.handleCheckoutInfo)
	mux.HandleFunc("/checkout-step-two", a.handleCheckoutOverview)
	mux.HandleFunc("/checkout-complete", a.handleCheckoutComplete)
	return mux
}

func (a *App) render(w http.ResponseWriter, name string, data interface{}) {
	tmpl, ok := a.templates[name]
	if !ok {
		a.log.Error("unknown template", zap.String("name", name))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		a.log.Error("template render failed", zap.String("name", name), zap.Error(err))
	}
}

// requireSession resolves the shopper's session or redirects to the login
// screen.
func (a *App) requireSession(w http.ResponseWriter, r *http.Request) *session {
	s := a.sessions.get(r)
	if s == nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil
	}
	return s
}
