package personnummer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

// ParseSuite covers the parse gates in order: shape, checksum, coordination
// policy and calendar date.
type ParseSuite struct {
	suite.Suite
	today time.Time
}

func TestParseSuite(t *testing.T) {
	suite.Run(t, new(ParseSuite))
}

func (s *ParseSuite) SetupTest() {
	s.today = date(2024, time.January, 1)
}

func (s *ParseSuite) requireReason(err error, want Reason) {
	s.Require().Error(err)
	got, ok := ReasonOf(err)
	s.Require().True(ok, "expected *InvalidError, got %T", err)
	s.Equal(want, got)
}

func (s *ParseSuite) TestDecodesFields() {
	s.Run("10 digits with dash", func() {
		p, err := Parse("850709-9805", s.today)
		s.Require().NoError(err)
		s.Equal(1985, p.Year())
		s.Equal(7, p.Month())
		s.Equal(9, p.Day())
		s.Equal(980, p.SequenceNumber())
		s.Equal(5, p.CheckDigit())
		s.Equal(Female, p.Gender())
		s.False(p.IsCoordinationNumber())
		s.Equal(time.Date(1985, time.July, 9, 0, 0, 0, 0, time.UTC), p.BirthDate())
	})

	s.Run("every accepted shape decodes identically", func() {
		want, err := Parse("198507099805", s.today)
		s.Require().NoError(err)
		for _, input := range []string{"19850709-9805", "8507099805", "850709-9805", "850709 - 9805"} {
			got, err := Parse(input, s.today)
			s.Require().NoError(err, input)
			s.Equal(want, got, input)
		}
	})

	s.Run("well known test numbers", func() {
		for _, input := range []string{"811228-9874", "670919-9530", "8507099805"} {
			s.True(Valid(input, s.today), input)
		}
	})

	s.Run("plus separator resolves to previous century", func() {
		p, err := Parse("100101+1236", s.today)
		s.Require().NoError(err)
		s.Equal(1910, p.Year())

		p, err = Parse("100101-1236", s.today)
		s.Require().NoError(err)
		s.Equal(2010, p.Year())
	})

	s.Run("leap day in a leap year", func() {
		p, err := Parse("200002291235", s.today)
		s.Require().NoError(err)
		s.Equal(2000, p.Year())
		s.Equal(2, p.Month())
		s.Equal(29, p.Day())

		s.True(Valid("120229-0019", s.today))
	})
}

func (s *ParseSuite) TestCenturyInference() {
	s.Run("future same-century candidate moves back", func() {
		p, err := Parse("850709-9805", date(2024, time.January, 1))
		s.Require().NoError(err)
		s.Equal(1985, p.Year())
	})

	s.Run("same digits resolve differently with the clock", func() {
		p, err := Parse("250315-4565", date(2024, time.December, 31))
		s.Require().NoError(err)
		s.Equal(1925, p.Year())

		p, err = Parse("250315-4565", date(2025, time.January, 1))
		s.Require().NoError(err)
		s.Equal(2025, p.Year())
	})

	s.Run("12 digits ignore the clock and the separator", func() {
		for _, today := range []time.Time{date(1990, time.May, 5), date(2024, time.January, 1), date(2150, time.July, 1)} {
			p, err := Parse("19850709+9805", today)
			s.Require().NoError(err)
			s.Equal(1985, p.Year())
		}
	})
}

func (s *ParseSuite) TestCoordinationNumbers() {
	s.Run("accepted by default", func() {
		p, err := Parse("041164-3844", s.today)
		s.Require().NoError(err)
		s.Equal(2004, p.Year())
		s.Equal(11, p.Month())
		s.Equal(4, p.Day())
		s.True(p.IsCoordinationNumber())
		s.Equal(Female, p.Gender())
	})

	s.Run("explicitly allowed", func() {
		s.True(Valid("041164-3844", s.today, WithCoordinationNumbers(true)))
	})

	s.Run("rejected when disallowed", func() {
		_, err := Parse("041164-3844", s.today, WithCoordinationNumbers(false))
		s.requireReason(err, ReasonCoordinationNumberDisallowed)
		s.True(errors.Is(err, ErrCoordinationNumberDisallowed))
		s.False(Valid("041164-3844", s.today, WithCoordinationNumbers(false)))
	})

	s.Run("policy is checked before the calendar date", func() {
		// Day 99 decodes to 39.
		_, err := Parse("850299-0016", s.today, WithCoordinationNumbers(false))
		s.requireReason(err, ReasonCoordinationNumberDisallowed)

		_, err = Parse("850299-0016", s.today)
		s.requireReason(err, ReasonInvalidCalendarDate)
	})

	s.Run("ordinary numbers unaffected by the option", func() {
		s.True(Valid("850709-9805", s.today, WithCoordinationNumbers(false)))
	})

	s.Run("day 60 is not a coordination number", func() {
		_, err := Parse("041160-3848", s.today)
		s.requireReason(err, ReasonInvalidCalendarDate)
	})

	s.Run("offset day beyond month end", func() {
		_, err := Parse("041192-3840", s.today)
		s.requireReason(err, ReasonInvalidCalendarDate)
	})
}

func (s *ParseSuite) TestRejections() {
	s.Run("malformed", func() {
		for _, input := range []string{"", "abc", "123", "invalid", "850709_9805", "85-0709-9805"} {
			_, err := Parse(input, s.today)
			s.requireReason(err, ReasonMalformedFormat)
			s.True(errors.Is(err, ErrMalformedFormat))
		}
	})

	s.Run("checksum", func() {
		_, err := Parse("850709-9800", s.today)
		s.requireReason(err, ReasonChecksumMismatch)
		s.True(errors.Is(err, ErrChecksumMismatch))

		s.False(Valid("199001011234", s.today))
	})

	s.Run("checksum runs before calendar validation", func() {
		_, err := Parse("199013011234", s.today)
		s.requireReason(err, ReasonChecksumMismatch)
	})

	s.Run("february 30 with a valid checksum", func() {
		_, err := Parse("199002301233", s.today)
		s.requireReason(err, ReasonInvalidCalendarDate)
		s.True(errors.Is(err, ErrInvalidCalendarDate))
		s.False(Valid("199002301234", s.today))
	})

	s.Run("leap day in a non-leap century year", func() {
		_, err := Parse("190002291235", s.today)
		s.requireReason(err, ReasonInvalidCalendarDate)
	})

	s.Run("leap day in a common year", func() {
		_, err := Parse("130229-0018", s.today)
		s.requireReason(err, ReasonInvalidCalendarDate)
	})

	s.Run("month 13 and day 00", func() {
		_, err := Parse("551301-0016", s.today)
		s.requireReason(err, ReasonInvalidCalendarDate)

		_, err = Parse("551200-0018", s.today)
		s.requireReason(err, ReasonInvalidCalendarDate)
	})

	s.Run("error message omits the input", func() {
		_, err := Parse("850709-9800", s.today)
		s.Require().Error(err)
		s.NotContains(err.Error(), "850709")

		var invalidErr *InvalidError
		s.Require().True(errors.As(err, &invalidErr))
		s.Equal("850709-9800", invalidErr.Input)
	})
}

func (s *ParseSuite) TestChecksumCatchesSingleDigitErrors() {
	const valid = "850709-9805"
	suffixStart := len(valid) - 4

	for pos := suffixStart; pos < len(valid); pos++ {
		rejected := 0
		for d := byte('0'); d <= '9'; d++ {
			mutated := valid[:pos] + string(d) + valid[pos+1:]
			if !Valid(mutated, s.today) {
				rejected++
			}
		}
		// The original digit is the only substitution that still passes.
		s.Equal(9, rejected, "position %d", pos)
	}
}

func (s *ParseSuite) TestGender() {
	tests := []struct {
		input string
		want  Gender
	}{
		{input: "850709-9805", want: Female},
		{input: "811228-9874", want: Male},
		{input: "670919-9530", want: Male},
		{input: "041164-3844", want: Female},
		{input: "100101+1236", want: Male},
	}
	for _, tt := range tests {
		p, err := Parse(tt.input, s.today)
		s.Require().NoError(err, tt.input)
		s.Equal(tt.want, p.Gender(), tt.input)
		s.Equal(p.SequenceNumber()%2 == 1, p.Gender() == Male, tt.input)
	}
	s.Equal("female", Female.String())
	s.Equal("male", Male.String())
}

func (s *ParseSuite) TestAgeAt() {
	p, err := Parse("850709-9805", s.today)
	s.Require().NoError(err)

	s.Equal(38, p.AgeAt(date(2024, time.July, 8)))
	s.Equal(39, p.AgeAt(date(2024, time.July, 9)))
	s.Equal(39, p.AgeAt(date(2025, time.January, 1)))
}

func (s *ParseSuite) TestZeroValue() {
	s.True(Personnummer{}.IsZero())

	p, err := Parse("850709-9805", s.today)
	s.Require().NoError(err)
	s.False(p.IsZero())
}

func TestReasonString(t *testing.T) {
	s := map[Reason]string{
		ReasonMalformedFormat:              "malformed_format",
		ReasonChecksumMismatch:             "checksum_mismatch",
		ReasonCoordinationNumberDisallowed: "coordination_number_disallowed",
		ReasonInvalidCalendarDate:          "invalid_calendar_date",
		Reason(0):                          "unknown",
	}
	for reason, want := range s {
		if got := reason.String(); got != want {
			t.Errorf("Reason(%d).String() = %q, want %q", int(reason), got, want)
		}
	}
}
