// Package orgnummer validates Swedish organisation numbers
// (organisationsnummer).
//
// Accepted inputs are NNNNNN-NNNN, NNNNNNNNNN and the 12-digit variants with a
// two-digit prefix (conventionally 16), with whitespace and dashes ignored.
package orgnummer

import (
	"errors"
	"strings"
	"unicode"

	"sweid/pkg/luhn"
)

// Type is the organisation form signalled by the group digit.
type Type string

const (
	TypeDodsbo            Type = "Dödsbokoncern"
	TypeStatKommun        Type = "Stat/kommun/landsting"
	TypeUtlandsktForetag  Type = "Utländskt företag"
	TypeAktiebolag        Type = "Aktiebolag"
	TypeEnskildFirma      Type = "Enskild firma"
	TypeEkonomiskForening Type = "Ekonomisk förening"
	TypeIdeellForening    Type = "Ideell förening/stiftelse"
	TypeHandelsbolag      Type = "Handelsbolag/kommanditbolag"
	TypeOkand             Type = "Okänd"
)

var groupTypes = map[int]Type{
	1: TypeDodsbo,
	2: TypeStatKommun,
	3: TypeUtlandsktForetag,
	5: TypeAktiebolag,
	6: TypeEnskildFirma,
	7: TypeEkonomiskForening,
	8: TypeIdeellForening,
	9: TypeHandelsbolag,
}

// Reason classifies why an input was rejected.
type Reason int

const (
	ReasonMalformedFormat Reason = iota + 1
	// ReasonNotOrganisation: the third digit is below 2, which marks a
	// personnummer rather than an organisation.
	ReasonNotOrganisation
	ReasonChecksumMismatch
)

var (
	ErrMalformedFormat  = errors.New("invalid organisationsnummer: malformed format")
	ErrNotOrganisation  = errors.New("invalid organisationsnummer: third digit must be 2 or greater")
	ErrChecksumMismatch = errors.New("invalid organisationsnummer: checksum mismatch")
)

func (r Reason) String() string {
	switch r {
	case ReasonMalformedFormat:
		return "malformed_format"
	case ReasonNotOrganisation:
		return "not_organisation"
	case ReasonChecksumMismatch:
		return "checksum_mismatch"
	default:
		return "unknown"
	}
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonMalformedFormat:
		return ErrMalformedFormat
	case ReasonNotOrganisation:
		return ErrNotOrganisation
	case ReasonChecksumMismatch:
		return ErrChecksumMismatch
	default:
		return nil
	}
}

// InvalidError is returned when an input is rejected. Error() omits Input.
type InvalidError struct {
	Reason Reason
	Input  string
}

func (e *InvalidError) Error() string {
	if err := e.Reason.sentinel(); err != nil {
		return err.Error()
	}
	return "invalid organisationsnummer"
}

func (e *InvalidError) Unwrap() error {
	return e.Reason.sentinel()
}

// ReasonOf extracts the rejection reason from err.
func ReasonOf(err error) (Reason, bool) {
	var invalid *InvalidError
	if errors.As(err, &invalid) {
		return invalid.Reason, true
	}
	return 0, false
}

// Orgnummer is a validated organisation number.
type Orgnummer struct {
	number string
}

// Parse validates input and returns the decoded number.
func Parse(input string) (Orgnummer, error) {
	digits, ok := extractDigits(input)
	if !ok {
		return Orgnummer{}, &InvalidError{Reason: ReasonMalformedFormat, Input: input}
	}
	if digits[2] < '2' {
		return Orgnummer{}, &InvalidError{Reason: ReasonNotOrganisation, Input: input}
	}
	if !luhn.Valid(digits) {
		return Orgnummer{}, &InvalidError{Reason: ReasonChecksumMismatch, Input: input}
	}
	return Orgnummer{number: digits}, nil
}

// Valid reports whether Parse would accept input.
func Valid(input string) bool {
	_, err := Parse(input)
	return err == nil
}

// Format returns input as NNNNNN-NNNN.
func Format(input string) (string, error) {
	o, err := Parse(input)
	if err != nil {
		return "", err
	}
	return o.String(), nil
}

// Number returns the ten digits without separator.
func (o Orgnummer) Number() string { return o.number }

// GroupDigit returns the first digit, which selects the organisation type.
func (o Orgnummer) GroupDigit() int { return int(o.number[0] - '0') }

// CheckDigit returns the Luhn check digit.
func (o Orgnummer) CheckDigit() int { return int(o.number[9] - '0') }

// Type returns the organisation form, TypeOkand for unassigned group digits.
func (o Orgnummer) Type() Type {
	if t, ok := groupTypes[o.GroupDigit()]; ok {
		return t
	}
	return TypeOkand
}

// String returns NNNNNN-NNNN.
func (o Orgnummer) String() string {
	if o.number == "" {
		return ""
	}
	return o.number[:6] + "-" + o.number[6:]
}

func extractDigits(input string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return r
	}, input)

	for i := 0; i < len(cleaned); i++ {
		if cleaned[i] < '0' || cleaned[i] > '9' {
			return "", false
		}
	}

	switch len(cleaned) {
	case 10:
		return cleaned, true
	case 12:
		return cleaned[2:], true
	default:
		return "", false
	}
}
