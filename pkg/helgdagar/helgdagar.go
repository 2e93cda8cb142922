// Package helgdagar generates Swedish public holidays (röda dagar) and the
// de facto holiday eves (helgdagsaftnar) for a given year.
//
// Dates are calendar dates: values are returned at midnight UTC and inputs
// are compared by their year, month and day only.
package helgdagar

import (
	"sort"
	"time"
)

// Kind separates official public holidays from eves.
type Kind string

const (
	// RodDag is an official public holiday.
	RodDag Kind = "rod_dag"
	// Afton is a de facto day off preceding a holiday.
	Afton Kind = "afton"
)

// Holiday is a named day in the Swedish calendar.
type Holiday struct {
	Date time.Time
	Name string
	Kind Kind
}

// DateString returns the date as YYYY-MM-DD.
func (h Holiday) DateString() string {
	return h.Date.Format(time.DateOnly)
}

// Easter returns Easter Sunday using the anonymous Gregorian algorithm.
// Valid for years from 1583.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return civil(year, time.Month(month), day)
}

// Year returns the 13 röda dagar and 3 aftnar of year, sorted by date.
func Year(year int) []Holiday {
	easter := Easter(year)
	midsommardagen := saturdayBetween(civil(year, time.June, 20), civil(year, time.June, 26))
	allaHelgon := saturdayBetween(civil(year, time.October, 31), civil(year, time.November, 6))

	holidays := []Holiday{
		{Date: civil(year, time.January, 1), Name: "Nyårsdagen", Kind: RodDag},
		{Date: civil(year, time.January, 6), Name: "Trettondedag jul", Kind: RodDag},
		{Date: civil(year, time.May, 1), Name: "Första maj", Kind: RodDag},
		{Date: civil(year, time.June, 6), Name: "Sveriges nationaldag", Kind: RodDag},
		{Date: civil(year, time.December, 25), Name: "Juldagen", Kind: RodDag},
		{Date: civil(year, time.December, 26), Name: "Annandag jul", Kind: RodDag},

		{Date: easter.AddDate(0, 0, -2), Name: "Långfredagen", Kind: RodDag},
		{Date: easter, Name: "Påskdagen", Kind: RodDag},
		{Date: easter.AddDate(0, 0, 1), Name: "Annandag påsk", Kind: RodDag},
		{Date: easter.AddDate(0, 0, 39), Name: "Kristi himmelsfärdsdag", Kind: RodDag},
		{Date: easter.AddDate(0, 0, 49), Name: "Pingstdagen", Kind: RodDag},

		{Date: midsommardagen, Name: "Midsommardagen", Kind: RodDag},
		{Date: allaHelgon, Name: "Alla helgons dag", Kind: RodDag},

		{Date: midsommardagen.AddDate(0, 0, -1), Name: "Midsommarafton", Kind: Afton},
		{Date: civil(year, time.December, 24), Name: "Julafton", Kind: Afton},
		{Date: civil(year, time.December, 31), Name: "Nyårsafton", Kind: Afton},
	}

	sort.SliceStable(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// IsHoliday returns the holiday or eve falling on date, if any.
func IsHoliday(date time.Time) (Holiday, bool) {
	day := truncate(date)
	for _, h := range Year(day.Year()) {
		if h.Date.Equal(day) {
			return h, true
		}
	}
	return Holiday{}, false
}

// IsBusinessDay reports whether date is a weekday that is neither a röd dag
// nor an afton.
func IsBusinessDay(date time.Time) bool {
	switch date.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, holiday := IsHoliday(date)
	return !holiday
}

// saturdayBetween returns the first Saturday in [start, end]. Both windows
// used here span seven days, so one always exists.
func saturdayBetween(start, end time.Time) time.Time {
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday {
			return d
		}
	}
	return start
}

func civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// truncate keeps the caller's calendar date and drops the clock and zone.
func truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return civil(y, m, d)
}
