package personnummer

import (
	"fmt"
	"time"
)

// Style selects the textual form produced by Format.
type Style int

const (
	// Short is YYMMDD-SSSC, or YYMMDD+SSSC for holders aged 100 or more.
	Short Style = iota
	// Long is YYYYMMDDSSSC without separator.
	Long
)

func (s Style) String() string {
	if s == Long {
		return "long"
	}
	return "short"
}

// ParseStyle maps "short" and "long" to a Style. The empty string is Short.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "", "short":
		return Short, nil
	case "long":
		return Long, nil
	default:
		return Short, fmt.Errorf("unknown personnummer style %q: must be short or long", s)
	}
}

// Format parses input and serializes it in the requested style. The short
// separator is derived from the holder's age on today, never copied from input.
func Format(input string, today time.Time, style Style, opts ...Option) (string, error) {
	p, err := Parse(input, today, opts...)
	if err != nil {
		return "", err
	}
	if style == Long {
		return p.Long(), nil
	}
	return p.Short(today), nil
}

// Long returns the 12-digit form.
func (p Personnummer) Long() string {
	return fmt.Sprintf("%04d%02d%02d%03d%d", p.year, p.month, p.encodedDay(), p.sequence, p.checkDigit)
}

// Short returns the 10-digit form with a separator for the holder's age on
// today: '+' once today.Year() - Year() reaches 100.
func (p Personnummer) Short(today time.Time) string {
	sep := '-'
	if today.Year()-p.year >= 100 {
		sep = '+'
	}
	return fmt.Sprintf("%02d%02d%02d%c%03d%d", p.year%100, p.month, p.encodedDay(), sep, p.sequence, p.checkDigit)
}

// String returns the long form.
func (p Personnummer) String() string {
	return p.Long()
}

// Masked hides the sequence and check digits, for logs and audit trails.
func (p Personnummer) Masked() string {
	return fmt.Sprintf("%04d%02d%02d-****", p.year, p.month, p.encodedDay())
}
