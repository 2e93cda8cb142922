package personnummer

import (
	"testing"
	"time"
)

// FuzzParse checks that parsing never panics, that Valid and Parse agree, and
// that every accepted input survives a long-form round trip.
func FuzzParse(f *testing.F) {
	f.Add("")
	f.Add("850709-9805")
	f.Add("198507099805")
	f.Add("041164-3844")
	f.Add("100101+1236")
	f.Add("199002301233")
	f.Add("\x00\x01\x02")
	f.Add("8507 09-98 05")

	today := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	f.Fuzz(func(t *testing.T, input string) {
		p, err := Parse(input, today)

		if Valid(input, today) != (err == nil) {
			t.Fatalf("Valid and Parse disagree for %q", input)
		}
		if err != nil {
			if _, ok := ReasonOf(err); !ok {
				t.Fatalf("untyped error for %q: %v", input, err)
			}
			return
		}

		again, err := Parse(p.Long(), today)
		if err != nil {
			t.Fatalf("long form of %q rejected: %v", input, err)
		}
		if again != p {
			t.Fatalf("round trip changed %q: %+v != %+v", input, again, p)
		}

		short := p.Short(today)
		if len(short) != 11 {
			t.Fatalf("short form %q has wrong length", short)
		}
	})
}
