package pages

import "fmt"

// ElementNotFoundError reports that a strict element resolution did not find
// a match within the timeout. Label identifies the element in human terms.
type ElementNotFoundError struct {
	Label    string
	Selector string
	Err      error
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element %q (%s) not found: %v", e.Label, e.Selector, e.Err)
}

func (e *ElementNotFoundError) Unwrap() error { return e.Err }

// ElementNotInteractableError reports that an element never became ready for
// the requested interaction within the timeout.
type ElementNotInteractableError struct {
	Label    string
	Selector string
	Err      error
}

func (e *ElementNotInteractableError) Error() string {
	return fmt.Sprintf("element %q (%s) not interactable: %v", e.Label, e.Selector, e.Err)
}

func (e *ElementNotInteractableError) Unwrap() error { return e.Err }

// StageTimeoutError reports that a checkout stage transition did not reach
// the next screen in time.
type StageTimeoutError struct {
	Stage Stage
	Err   error
}

func (e *StageTimeoutError) Error() string {
	return fmt.Sprintf("checkout did not reach %s stage: %v", e.Stage, e.Err)
}

func (e *StageTimeoutError) Unwrap() error { return e.Err }

// NotFoundError reports a domain lookup miss, such as a product name that is
// not present on the current page.
type NotFoundError struct {
	Kind string
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found on page", e.Kind, e.Name)
}

// StateError reports a checkout stage method called out of order. The
// checkout flow only moves forward; calling a later stage without passing
// through the earlier ones fails fast instead of waiting on a screen that
// will never appear.
type StateError struct {
	Current  Stage
	Required Stage
}

func (e *StateError) Error() string {
	return fmt.Sprintf("checkout is at %s stage, operation requires %s", e.Current, e.Required)
}

// ValidationError carries a form validation message surfaced by the
// application, such as a missing required checkout field.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("form rejected: %s", e.Message)
}
