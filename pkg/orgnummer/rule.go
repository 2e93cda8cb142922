package orgnummer

import validation "github.com/jellydator/validation"

// Rule is a validation.Rule for organisation numbers. Empty values pass.
var Rule validation.Rule = rule{}

type rule struct{}

func (rule) Validate(value interface{}) error {
	value, isNil := validation.Indirect(value)
	if isNil || validation.IsEmpty(value) {
		return nil
	}

	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_orgnummer_type", "must be a string")
	}

	_, err := Parse(s)
	if err == nil {
		return nil
	}
	reason, _ := ReasonOf(err)
	return validation.NewError("validation_orgnummer_"+reason.String(), err.Error())
}
