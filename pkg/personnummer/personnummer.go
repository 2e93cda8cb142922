package personnummer

import (
	"strconv"
	"time"

	"sweid/pkg/luhn"
)

// coordinationOffset is added to the day of birth in a coordination number.
const coordinationOffset = 60

// Gender is derived from the parity of the sequence number.
type Gender int

const (
	Female Gender = iota
	Male
)

func (g Gender) String() string {
	if g == Male {
		return "male"
	}
	return "female"
}

type options struct {
	allowCoordination bool
}

// Option adjusts how Parse, Valid and Format treat an input.
type Option func(*options)

// WithCoordinationNumbers controls whether coordination numbers are accepted.
// They are accepted by default.
func WithCoordinationNumbers(allow bool) Option {
	return func(o *options) {
		o.allowCoordination = allow
	}
}

func newOptions(opts []Option) options {
	o := options{allowCoordination: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Personnummer is a decoded, valid personal identity number.
//
// Invariants:
//   - The ten significant digits pass the Luhn check
//   - Year, Month and Day form a real Gregorian date
//   - Day never carries the coordination offset
//
// The zero value is not a valid number; obtain values from Parse.
type Personnummer struct {
	year         int
	month        int
	day          int
	sequence     int
	checkDigit   int
	coordination bool
}

// Parse decodes input. today anchors the century of 10-digit inputs.
//
// Checks run in order and the first failure is returned as an *InvalidError:
// shape, checksum, coordination policy, calendar date.
func Parse(input string, today time.Time, opts ...Option) (Personnummer, error) {
	o := newOptions(opts)

	n, ok := normalize(input, today)
	if !ok {
		return Personnummer{}, invalid(ReasonMalformedFormat, input)
	}

	if !luhn.Valid(n.digits()) {
		return Personnummer{}, invalid(ReasonChecksumMismatch, input)
	}

	yy := atoi(n.date[0:2])
	month := atoi(n.date[2:4])
	day := atoi(n.date[4:6])

	coordination := day > coordinationOffset
	if coordination {
		if !o.allowCoordination {
			return Personnummer{}, invalid(ReasonCoordinationNumberDisallowed, input)
		}
		day -= coordinationOffset
	}

	year := n.century*100 + yy
	if !isCalendarDate(year, month, day) {
		return Personnummer{}, invalid(ReasonInvalidCalendarDate, input)
	}

	return Personnummer{
		year:         year,
		month:        month,
		day:          day,
		sequence:     atoi(n.serial[0:3]),
		checkDigit:   atoi(n.serial[3:4]),
		coordination: coordination,
	}, nil
}

// Valid reports whether Parse would accept input.
func Valid(input string, today time.Time, opts ...Option) bool {
	_, err := Parse(input, today, opts...)
	return err == nil
}

// Year returns the full four-digit year of birth.
func (p Personnummer) Year() int { return p.year }

// Month returns the month of birth, 1-12.
func (p Personnummer) Month() int { return p.month }

// Day returns the real day of birth, without the coordination offset.
func (p Personnummer) Day() int { return p.day }

// SequenceNumber returns the three-digit birth number, 0-999.
func (p Personnummer) SequenceNumber() int { return p.sequence }

// CheckDigit returns the Luhn check digit.
func (p Personnummer) CheckDigit() int { return p.checkDigit }

// IsCoordinationNumber reports whether the number is a samordningsnummer.
func (p Personnummer) IsCoordinationNumber() bool { return p.coordination }

// Gender returns Female for an even sequence number and Male for an odd one.
func (p Personnummer) Gender() Gender {
	if p.sequence%2 == 1 {
		return Male
	}
	return Female
}

// BirthDate returns the date of birth at midnight UTC.
func (p Personnummer) BirthDate() time.Time {
	return time.Date(p.year, time.Month(p.month), p.day, 0, 0, 0, 0, time.UTC)
}

// AgeAt returns the number of completed years on today.
func (p Personnummer) AgeAt(today time.Time) int {
	age := today.Year() - p.year
	if int(today.Month()) < p.month || (int(today.Month()) == p.month && today.Day() < p.day) {
		age--
	}
	return age
}

// IsZero reports whether p is the zero value.
func (p Personnummer) IsZero() bool {
	return p == Personnummer{}
}

// encodedDay is the day as written in the number.
func (p Personnummer) encodedDay() int {
	if p.coordination {
		return p.day + coordinationOffset
	}
	return p.day
}

func isCalendarDate(year, month, day int) bool {
	if month < 1 || month > 12 || day < 1 {
		return false
	}
	// Day 0 of the following month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	return day <= last
}

// atoi converts a run of ASCII digits already matched by a pattern.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
