// Package testutil holds helpers shared by package tests: Given/When/Then
// wrappers around t.Run and builders for identifiers with correct check
// digits.
package testutil

import (
	"fmt"
	"strconv"
	"testing"
	"time"

	"sweid/pkg/luhn"
)

func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}

// Date returns midday UTC, far enough from midnight that zone conversions in
// a test never change the calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

// Personnummer returns the 12-digit form YYYYMMDDSSSC for birth and sequence
// (0-999), adding the coordination offset to the day when requested.
func Personnummer(birth time.Time, sequence int, coordination bool) string {
	day := birth.Day()
	if coordination {
		day += 60
	}
	payload := fmt.Sprintf("%02d%02d%02d%03d", birth.Year()%100, int(birth.Month()), day, sequence)
	return fmt.Sprintf("%02d%s%d", birth.Year()/100, payload, luhn.CheckDigit(payload))
}

// Orgnummer appends the check digit to a nine-digit payload.
func Orgnummer(payload string) string {
	return payload + strconv.Itoa(luhn.CheckDigit(payload))
}
