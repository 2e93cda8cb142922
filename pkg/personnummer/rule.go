package personnummer

import (
	"time"

	validation "github.com/jellydator/validation"
)

// Rule adapts Parse to the validation package so personnummer fields can be
// checked alongside other struct rules. Empty values pass; pair it with
// validation.Required when the field is mandatory.
type Rule struct {
	today time.Time
	opts  []Option
}

// NewRule returns a Rule that parses values against today.
func NewRule(today time.Time, opts ...Option) Rule {
	return Rule{today: today, opts: opts}
}

// Validate implements validation.Rule.
func (r Rule) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(value) {
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_personnummer_type", "must be a string")
	}

	_, err := Parse(s, r.today, r.opts...)
	if err == nil {
		return nil
	}
	reason, _ := ReasonOf(err)
	return validation.NewError("validation_personnummer_"+reason.String(), err.Error())
}
