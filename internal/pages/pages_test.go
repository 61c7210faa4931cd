package pages

import (
	"errors"
	"testing"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		want    float64
		wantErr bool
	}{
		{name: "plain price", text: "$29.99", want: 29.99},
		{name: "whitespace around price", text: "  $9.99 ", want: 9.99},
		{name: "no currency prefix", text: "15.99", want: 15.99},
		{name: "whole dollars", text: "$7", want: 7},
		{name: "empty", text: "", wantErr: true},
		{name: "prefix only", text: "$", wantErr: true},
		{name: "not a number", text: "$free", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePrice(tt.text)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParsePrice(%q) expected error, got %v", tt.text, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePrice(%q) unexpected error = %v", tt.text, err)
			}
			if got != tt.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCartItemLineTotal(t *testing.T) {
	item := CartItem{Name: "Sauce Labs Backpack", Price: 29.99, Quantity: 3}
	if got, want := item.LineTotal(), 89.97; got < want-0.001 || got > want+0.001 {
		t.Errorf("LineTotal() = %v, want %v", got, want)
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageCart, "cart"},
		{StageInfoForm, "info form"},
		{StageReview, "review"},
		{StageComplete, "complete"},
		{Stage(42), "stage(42)"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(tt.stage), got, tt.want)
		}
	}
}

// Out-of-order stage calls must fail fast with a StateError before touching
// the page.
func TestCheckoutStageOrdering(t *testing.T) {
	tests := []struct {
		name string
		call func(*CartPage) error
	}{
		{name: "fill info from cart", call: func(p *CartPage) error {
			return p.FillCheckoutInfo(CheckoutInfo{FirstName: "Ada"})
		}},
		{name: "continue from cart", call: func(p *CartPage) error {
			return p.ContinueToReview()
		}},
		{name: "summary from cart", call: func(p *CartPage) error {
			_, err := p.OrderSummary()
			return err
		}},
		{name: "finish from cart", call: func(p *CartPage) error {
			return p.FinishOrder()
		}},
		{name: "completion from cart", call: func(p *CartPage) error {
			_, err := p.Completion()
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &CartPage{stage: StageCart}
			err := tt.call(p)
			var stateErr *StateError
			if !errors.As(err, &stateErr) {
				t.Fatalf("expected StateError, got %v", err)
			}
			if stateErr.Current != StageCart {
				t.Errorf("StateError.Current = %v, want cart", stateErr.Current)
			}
		})
	}
}

func TestCheckoutCannotRestart(t *testing.T) {
	p := &CartPage{stage: StageComplete}
	err := p.ProceedToCheckout()
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v", err)
	}
	if stateErr.Required != StageCart {
		t.Errorf("StateError.Required = %v, want cart", stateErr.Required)
	}
}

func TestErrorMessages(t *testing.T) {
	notFound := &ElementNotFoundError{Label: "login button", Selector: "#login-button", Err: errors.New("timeout")}
	if got := notFound.Error(); got != `element "login button" (#login-button) not found: timeout` {
		t.Errorf("ElementNotFoundError.Error() = %q", got)
	}

	lookup := &NotFoundError{Kind: "product", Name: "Sauce Labs Backpack"}
	if got := lookup.Error(); got != `product "Sauce Labs Backpack" not found on page` {
		t.Errorf("NotFoundError.Error() = %q", got)
	}

	state := &StateError{Current: StageCart, Required: StageReview}
	if got := state.Error(); got != "checkout is at cart stage, operation requires review" {
		t.Errorf("StateError.Error() = %q", got)
	}
}

func TestEqualSequences(t *testing.T) {
	tests := []struct {
		name string
		a, b []string
		want bool
	}{
		{name: "equal", a: []string{"x", "y"}, b: []string{"x", "y"}, want: true},
		{name: "different order", a: []string{"x", "y"}, b: []string{"y", "x"}, want: false},
		{name: "different length", a: []string{"x"}, b: []string{"x", "y"}, want: false},
		{name: "both empty", a: nil, b: nil, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := equalSequences(tt.a, tt.b); got != tt.want {
				t.Errorf("equalSequences(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
