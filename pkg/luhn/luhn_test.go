package luhn

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name   string
		digits string
		want   bool
	}{
		{name: "personnummer digits", digits: "8507099805", want: true},
		{name: "coordination number digits", digits: "0411643844", want: true},
		{name: "organisation number", digits: "5560747569", want: true},
		{name: "card number", digits: "4532015112830366", want: true},
		{name: "single zero", digits: "0", want: true},
		{name: "single non-zero", digits: "7", want: false},
		{name: "wrong check digit", digits: "8507099800", want: false},
		{name: "card number off by one", digits: "4532015112830367", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Valid(tt.digits))
		})
	}
}

func TestCheckDigit(t *testing.T) {
	t.Run("matches known check digits", func(t *testing.T) {
		assert.Equal(t, 5, CheckDigit("850709980"))
		assert.Equal(t, 4, CheckDigit("041164384"))
		assert.Equal(t, 9, CheckDigit("556074756"))
	})

	t.Run("appended digit always validates", func(t *testing.T) {
		for _, payload := range []string{"1", "12", "000000000", "999999999", "19900101123"} {
			digits := payload + strconv.Itoa(CheckDigit(payload))
			assert.True(t, Valid(digits), digits)
		}
	})

	t.Run("every single-digit substitution is detected", func(t *testing.T) {
		const valid = "8507099805"
		for pos := 0; pos < len(valid); pos++ {
			for d := byte('0'); d <= '9'; d++ {
				if valid[pos] == d {
					continue
				}
				mutated := valid[:pos] + string(d) + valid[pos+1:]
				assert.False(t, Valid(mutated), mutated)
			}
		}
	})
}
