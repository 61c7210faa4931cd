// Package pages models the storefront's screens as page objects: fixed
// locator tables plus user actions built from a small set of synchronized
// primitives.
//
// The primitives follow a strict/forgiving split. locate, click and typeInto
// throw because their callers assume the element must exist to proceed.
// isVisible and waitForRemoval are probes used for branch conditions, so
// absence is an outcome, not an error.
package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	"github.com/swagshop/uitest/internal/browser"
)

const pollInterval = 150 * time.Millisecond

// Env binds page objects to one live session. All page objects built from
// the same Env share that session; multiple page objects may coexist to
// represent navigation between screens.
type Env struct {
	Session *browser.Session
	BaseURL string
	Timeout time.Duration
	Log     *zap.Logger
}

func (e Env) newBase() base {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}
	return base{page: e.Session.Page(), timeout: timeout, log: log}
}

type base struct {
	page    playwright.Page
	timeout time.Duration
	log     *zap.Logger
}

func (b *base) timeoutMillis() float64 {
	return float64(b.timeout.Milliseconds())
}

// locate resolves the first element matching selector, waiting up to the
// bound timeout for it to be attached. This is the only element-resolution
// primitive; higher-level actions route through it.
func (b *base) locate(selector, label string) (playwright.Locator, error) {
	loc := b.page.Locator(selector).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(b.timeoutMillis()),
	})
	if err != nil {
		return nil, &ElementNotFoundError{Label: label, Selector: selector, Err: err}
	}
	return loc, nil
}

// click waits until an element matching selector is visible and enabled,
// then dispatches a click.
func (b *base) click(selector, label string) error {
	loc := b.page.Locator(selector).First()
	err := loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(b.timeoutMillis()),
	})
	if err != nil {
		return &ElementNotInteractableError{Label: label, Selector: selector, Err: err}
	}
	// Click performs its own actionability wait, covering the enabled check.
	err = loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(b.timeoutMillis()),
	})
	if err != nil {
		return &ElementNotInteractableError{Label: label, Selector: selector, Err: err}
	}
	return nil
}

// typeInto clears the element's existing content and injects text. It does
// not wait for post-input side effects; callers issue subsequent waits.
func (b *base) typeInto(selector, text, label string) error {
	loc, err := b.locate(selector, label)
	if err != nil {
		return err
	}
	if err := loc.Clear(); err != nil {
		return &ElementNotInteractableError{Label: label, Selector: selector, Err: err}
	}
	if err := loc.Fill(text); err != nil {
		return &ElementNotInteractableError{Label: label, Selector: selector, Err: err}
	}
	return nil
}

// readText resolves the element and returns its rendered text content.
func (b *base) readText(selector, label string) (string, error) {
	loc, err := b.locate(selector, label)
	if err != nil {
		return "", err
	}
	text, err := loc.TextContent()
	if err != nil {
		return "", &ElementNotFoundError{Label: label, Selector: selector, Err: err}
	}
	return strings.TrimSpace(text), nil
}

// isVisible is a non-throwing probe: it reports whether an element matching
// selector is currently displayed. Absence is false, never an error.
func (b *base) isVisible(selector string) bool {
	visible, err := b.page.Locator(selector).First().IsVisible()
	if err != nil {
		return false
	}
	return visible
}

// waitForRemoval waits until a previously-present element is detached from
// the DOM. An element that is already absent satisfies the wait immediately.
func (b *base) waitForRemoval(selector, label string) error {
	err := b.page.Locator(selector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateDetached,
		Timeout: playwright.Float(b.timeoutMillis()),
	})
	if err != nil {
		return fmt.Errorf("element %q (%s) was not removed: %w", label, selector, err)
	}
	return nil
}

// waitUntil polls cond until it reports true or the bound timeout elapses.
func (b *base) waitUntil(label string, cond func() (bool, error)) error {
	deadline := time.Now().Add(b.timeout)
	for {
		ok, err := cond()
		if err == nil && ok {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return fmt.Errorf("timed out waiting for %s: %w", label, err)
			}
			return fmt.Errorf("timed out waiting for %s", label)
		}
		time.Sleep(pollInterval)
	}
}

// waitStable polls read until two consecutive reads return the same
// sequence. It replaces fixed settle delays after sort and remove actions:
// the page is considered settled once its rendered order converges.
func (b *base) waitStable(label string, read func() ([]string, error)) ([]string, error) {
	deadline := time.Now().Add(b.timeout)
	var previous []string
	first := true
	for {
		current, err := read()
		if err == nil && !first && equalSequences(previous, current) {
			return current, nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return nil, fmt.Errorf("%s did not settle: %w", label, err)
			}
			return nil, fmt.Errorf("%s did not settle", label)
		}
		if err == nil {
			previous = current
			first = false
		}
		time.Sleep(pollInterval)
	}
}

func equalSequences(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
