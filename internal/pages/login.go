package pages

import (
	"fmt"

	"go.uber.org/zap"
)

// loginLocators is the fixed locator table for the login screen.
var loginLocators = struct {
	username    string
	password    string
	loginButton string
	errorBanner string
}{
	username:    "#user-name",
	password:    "#password",
	loginButton: "#login-button",
	errorBanner: `[data-test="error"]`,
}

// LoginPage models the storefront entry screen.
type LoginPage struct {
	base
	baseURL string
}

// NewLoginPage builds a login page object bound to the Env's session.
func NewLoginPage(env Env) *LoginPage {
	return &LoginPage{base: env.newBase(), baseURL: env.BaseURL}
}

// Open navigates to the entry URL. It fails if the login control is not
// visible afterwards, so a broken page load surfaces here instead of at a
// confusing later point.
func (p *LoginPage) Open() error {
	if _, err := p.page.Goto(p.baseURL + "/"); err != nil {
		return fmt.Errorf("could not open login page: %w", err)
	}
	if _, err := p.locate(loginLocators.loginButton, "login button"); err != nil {
		return fmt.Errorf("login page did not load: %w", err)
	}
	return nil
}

// Login submits the credential form.
func (p *LoginPage) Login(username, password string) error {
	if err := p.typeInto(loginLocators.username, username, "username field"); err != nil {
		return err
	}
	if err := p.typeInto(loginLocators.password, password, "password field"); err != nil {
		return err
	}
	if err := p.click(loginLocators.loginButton, "login button"); err != nil {
		return err
	}
	p.log.Debug("submitted login form", zap.String("username", username))
	return nil
}

// ErrorMessage returns the login error banner text. The second return is
// false when no banner is displayed; callers branch on it to distinguish
// success from failure paths.
func (p *LoginPage) ErrorMessage() (string, bool) {
	if !p.isVisible(loginLocators.errorBanner) {
		return "", false
	}
	text, err := p.readText(loginLocators.errorBanner, "login error banner")
	if err != nil {
		return "", false
	}
	return text, true
}

// IsDisplayed reports whether the login screen is the active screen.
func (p *LoginPage) IsDisplayed() bool {
	return p.isVisible(loginLocators.loginButton)
}
