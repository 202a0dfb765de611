package host

import (
	"fmt"

	"github.com/goliatone/go-liveselect/pkg/model"
)

// Rule checks the selection bound to a field and returns a message when the
// selection is invalid.
type Rule struct {
	Field string
	Check func(selected []model.Option) (string, bool)
}

// Required fails when nothing is selected.
func Required(field, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("The %s field is required.", field)
	}
	return Rule{
		Field: field,
		Check: func(selected []model.Option) (string, bool) {
			return message, len(selected) > 0
		},
	}
}

// MinSelected fails when fewer than n options are selected.
func MinSelected(field string, n int, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("Select at least %d options for %s.", n, field)
	}
	return Rule{
		Field: field,
		Check: func(selected []model.Option) (string, bool) {
			return message, len(selected) >= n
		},
	}
}

// MaxSelected fails when more than n options are selected.
func MaxSelected(field string, n int, message string) Rule {
	if message == "" {
		message = fmt.Sprintf("Select at most %d options for %s.", n, field)
	}
	return Rule{
		Field: field,
		Check: func(selected []model.Option) (string, bool) {
			return message, len(selected) <= n
		},
	}
}

// Validate runs rules against the bound selections, replaces the error bag
// with the failures and relays it to the mounted widgets. It reports whether
// every rule passed.
func (f *Form) Validate(rules ...Rule) (bool, error) {
	f.ClearErrors()
	for _, rule := range rules {
		if rule.Check == nil {
			continue
		}
		if message, ok := rule.Check(f.values[rule.Field]); !ok {
			f.AddError(rule.Field, message)
		}
	}
	if err := f.relay(); err != nil {
		return false, err
	}
	return len(f.errors) == 0, nil
}
