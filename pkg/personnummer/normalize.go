package personnummer

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	longPattern  = regexp.MustCompile(`^(\d{4})(\d{4})([-+]?)(\d{4})$`)
	shortPattern = regexp.MustCompile(`^(\d{2})(\d{4})([-+]?)(\d{4})$`)
)

// normalized is the canonical form of any accepted shape.
type normalized struct {
	century   int
	date      string // YYMMDD, DD may carry the +60 coordination offset
	separator byte
	serial    string // three sequence digits and the check digit
}

// digits returns the ten digits the checksum covers.
func (n normalized) digits() string {
	return n.date + n.serial
}

// normalize recognizes one of the accepted shapes. The 12-digit shape is tried
// first; a 10-digit input gets its century from today.
func normalize(input string, today time.Time) (normalized, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)

	if m := longPattern.FindStringSubmatch(cleaned); m != nil {
		yyyy, _ := strconv.Atoi(m[1])
		return normalized{
			century:   yyyy / 100,
			date:      m[1][2:] + m[2],
			separator: separatorOrDash(m[3]),
			serial:    m[4],
		}, true
	}

	if m := shortPattern.FindStringSubmatch(cleaned); m != nil {
		yy, _ := strconv.Atoi(m[1])
		sep := separatorOrDash(m[3])
		return normalized{
			century:   inferCentury(yy, sep, today.Year()),
			date:      m[1] + m[2],
			separator: sep,
			serial:    m[4],
		}, true
	}

	return normalized{}, false
}

// inferCentury resolves the century of a two-digit year. A '+' marks a holder
// aged 100 or more, so the year is pushed back at least one century.
func inferCentury(yy int, sep byte, currentYear int) int {
	currentCentury := currentYear / 100
	candidate := currentCentury*100 + yy

	if sep == '+' {
		if candidate-100 <= currentYear {
			return currentCentury - 1
		}
		return currentCentury - 2
	}

	if candidate > currentYear {
		return currentCentury - 1
	}
	return currentCentury
}

func separatorOrDash(s string) byte {
	if s == "" {
		return '-'
	}
	return s[0]
}
