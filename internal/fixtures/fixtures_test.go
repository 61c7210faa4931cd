package fixtures

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestLoadUsers(t *testing.T) {
	users, err := LoadUsers(filepath.Join("testdata", "users.csv"))
	if err != nil {
		t.Fatalf("LoadUsers() unexpected error = %v", err)
	}

	if len(users) != 6 {
		t.Fatalf("len(users) = %d, want 6", len(users))
	}
	if users[0].Username != "standard_user" || users[0].Expected != OutcomeSuccess {
		t.Errorf("users[0] = %+v, want standard_user/success", users[0])
	}
	if users[1].Username != "locked_out_user" || users[1].Expected != OutcomeError {
		t.Errorf("users[1] = %+v, want locked_out_user/error", users[1])
	}
	if users[5].Password != "" {
		t.Errorf("users[5].Password = %q, want empty", users[5].Password)
	}
}

func TestLoadUsersMalformed(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "wrong header", file: "users_bad_header.csv"},
		{name: "unknown outcome", file: "users_bad_outcome.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadUsers(filepath.Join("testdata", tt.file))
			if !errors.Is(err, ErrDataFormat) {
				t.Errorf("LoadUsers(%s) error = %v, want ErrDataFormat", tt.file, err)
			}
		})
	}
}

func TestLoadUsersMissingFile(t *testing.T) {
	_, err := LoadUsers(filepath.Join("testdata", "no_such_file.csv"))
	if err == nil {
		t.Error("LoadUsers() expected error for missing file")
	}
	if errors.Is(err, ErrDataFormat) {
		t.Error("a missing file is an IO error, not a data format error")
	}
}

func TestUsersByOutcome(t *testing.T) {
	users, err := LoadUsers(filepath.Join("testdata", "users.csv"))
	if err != nil {
		t.Fatalf("LoadUsers() unexpected error = %v", err)
	}

	good := users.ByOutcome(OutcomeSuccess)
	bad := users.ByOutcome(OutcomeError)

	if len(good) != 3 {
		t.Errorf("len(success users) = %d, want 3", len(good))
	}
	if len(bad) != 3 {
		t.Errorf("len(error users) = %d, want 3", len(bad))
	}
	for _, user := range good {
		if user.Expected != OutcomeSuccess {
			t.Errorf("ByOutcome(success) returned %+v", user)
		}
	}
}

func TestLoadCheckoutScenarios(t *testing.T) {
	file, err := LoadCheckoutScenarios(filepath.Join("testdata", "checkout_scenarios.json"))
	if err != nil {
		t.Fatalf("LoadCheckoutScenarios() unexpected error = %v", err)
	}

	if len(file.Scenarios) != 3 {
		t.Fatalf("len(Scenarios) = %d, want 3", len(file.Scenarios))
	}
	pair := file.Scenarios[1]
	if pair.Name != "backpack and bike light" {
		t.Errorf("Scenarios[1].Name = %q", pair.Name)
	}
	if len(pair.Products) != 2 || pair.ExpectedSubtotal != 39.98 {
		t.Errorf("Scenarios[1] = %+v", pair)
	}
	if len(file.CheckoutInfos) != 3 {
		t.Errorf("len(CheckoutInfos) = %d, want 3", len(file.CheckoutInfos))
	}
}

func TestLoadCheckoutScenariosMalformed(t *testing.T) {
	_, err := LoadCheckoutScenarios(filepath.Join("testdata", "checkout_scenarios_bad.json"))
	if !errors.Is(err, ErrDataFormat) {
		t.Errorf("LoadCheckoutScenarios() error = %v, want ErrDataFormat", err)
	}
}

func TestRandomCheckoutInfo(t *testing.T) {
	file, err := LoadCheckoutScenarios(filepath.Join("testdata", "checkout_scenarios.json"))
	if err != nil {
		t.Fatalf("LoadCheckoutScenarios() unexpected error = %v", err)
	}

	valid := make(map[CheckoutInfo]bool, len(file.CheckoutInfos))
	for _, info := range file.CheckoutInfos {
		valid[info] = true
	}
	for i := 0; i < 20; i++ {
		if info := file.RandomCheckoutInfo(); !valid[info] {
			t.Fatalf("RandomCheckoutInfo() returned unknown record %+v", info)
		}
	}
}
