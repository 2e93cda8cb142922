// Package luhn implements the mod-10 checksum shared by Swedish personal
// identity numbers and organisation numbers.
//
// Inputs must be ASCII digit strings. Callers validate the shape first; this
// package does not re-check it.
package luhn

// Valid reports whether digits carries a correct Luhn check digit in its
// rightmost position.
func Valid(digits string) bool {
	return sum(digits, 0)%10 == 0
}

// CheckDigit returns the digit that makes payload+digit pass Valid.
func CheckDigit(payload string) int {
	// The appended digit takes index 0, so every payload digit shifts one
	// position to the left.
	return (10 - sum(payload, 1)%10) % 10
}

// sum walks digits from the rightmost character. Index 0 is the rightmost
// digit shifted by offset; odd indices are doubled.
func sum(digits string, offset int) int {
	total := 0
	n := len(digits)
	for i := 0; i < n; i++ {
		d := int(digits[n-1-i] - '0')
		if (i+offset)%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		total += d
	}
	return total
}
