// Package fixtures loads the structured test data that parametrizes the
// suite: tabular user credentials and JSON checkout scenarios.
package fixtures

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
)

// ErrDataFormat marks a malformed fixture file.
var ErrDataFormat = errors.New("malformed fixture data")

// Outcome is the expected result of logging in with a credential row.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
)

// User is one credential row from the users fixture.
type User struct {
	Username    string
	Password    string
	Description string
	Expected    Outcome
}

// Users is the loaded credential table.
type Users []User

var userColumns = []string{"username", "password", "description", "expected_outcome"}

// LoadUsers reads the tabular credential fixture. The file must carry the
// exact header username,password,description,expected_outcome.
func LoadUsers(path string) (Users, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open users fixture: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataFormat, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s: missing header row", ErrDataFormat, path)
	}

	header := records[0]
	if len(header) != len(userColumns) {
		return nil, fmt.Errorf("%w: %s: expected columns %v, got %v",
			ErrDataFormat, path, userColumns, header)
	}
	for i, col := range userColumns {
		if strings.TrimSpace(header[i]) != col {
			return nil, fmt.Errorf("%w: %s: expected column %d to be %q, got %q",
				ErrDataFormat, path, i, col, header[i])
		}
	}

	users := make(Users, 0, len(records)-1)
	for line, record := range records[1:] {
		outcome := Outcome(strings.TrimSpace(record[3]))
		if outcome != OutcomeSuccess && outcome != OutcomeError {
			return nil, fmt.Errorf("%w: %s line %d: expected_outcome must be success or error, got %q",
				ErrDataFormat, path, line+2, record[3])
		}
		users = append(users, User{
			Username:    strings.TrimSpace(record[0]),
			Password:    strings.TrimSpace(record[1]),
			Description: strings.TrimSpace(record[2]),
			Expected:    outcome,
		})
	}
	return users, nil
}

// ByOutcome filters the credential table by expected login outcome.
func (u Users) ByOutcome(outcome Outcome) Users {
	var filtered Users
	for _, user := range u {
		if user.Expected == outcome {
			filtered = append(filtered, user)
		}
	}
	return filtered
}

// CheckoutScenario names a basket of products and the subtotal it should
// produce on the review screen.
type CheckoutScenario struct {
	Name             string   `json:"name"`
	Products         []string `json:"products"`
	ExpectedSubtotal float64  `json:"expected_subtotal"`
}

// CheckoutInfo is one valid customer record for the checkout info form.
type CheckoutInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	PostalCode string `json:"postal_code"`
}

// ScenarioFile is the parsed JSON checkout-scenario fixture.
type ScenarioFile struct {
	Scenarios     []CheckoutScenario `json:"scenarios"`
	CheckoutInfos []CheckoutInfo     `json:"checkout_infos"`
}

// LoadCheckoutScenarios reads and validates the JSON scenario fixture.
func LoadCheckoutScenarios(path string) (*ScenarioFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open scenario fixture: %w", err)
	}

	var file ScenarioFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDataFormat, path, err)
	}
	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("%w: %s: no scenarios defined", ErrDataFormat, path)
	}
	for i, scenario := range file.Scenarios {
		if scenario.Name == "" {
			return nil, fmt.Errorf("%w: %s: scenario %d has no name", ErrDataFormat, path, i)
		}
		if len(scenario.Products) == 0 {
			return nil, fmt.Errorf("%w: %s: scenario %q lists no products", ErrDataFormat, path, scenario.Name)
		}
		if scenario.ExpectedSubtotal <= 0 {
			return nil, fmt.Errorf("%w: %s: scenario %q has non-positive expected subtotal",
				ErrDataFormat, path, scenario.Name)
		}
	}
	if len(file.CheckoutInfos) == 0 {
		return nil, fmt.Errorf("%w: %s: no checkout info records", ErrDataFormat, path)
	}
	for i, info := range file.CheckoutInfos {
		if info.FirstName == "" || info.LastName == "" || info.PostalCode == "" {
			return nil, fmt.Errorf("%w: %s: checkout info %d has empty fields", ErrDataFormat, path, i)
		}
	}
	return &file, nil
}

// RandomCheckoutInfo returns one of the valid customer records at random.
func (f *ScenarioFile) RandomCheckoutInfo() CheckoutInfo {
	return f.CheckoutInfos[rand.Intn(len(f.CheckoutInfos))]
}
