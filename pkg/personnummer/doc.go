// Package personnummer parses, validates and formats Swedish personal
// identity numbers, including coordination numbers (samordningsnummer).
//
// # Accepted shapes
//
//	YYYYMMDDSSSC     12 digits, century explicit
//	YYYYMMDD-SSSC    12 digits, separator ignored for the century
//	YYMMDDSSSC       10 digits, century inferred
//	YYMMDD-SSSC      10 digits, century inferred
//	YYMMDD+SSSC      10 digits, holder is 100 years or older
//
// Whitespace anywhere in the input is ignored.
//
// # Domain Purity
//
// The package performs no I/O and never reads the wall clock. Every entry
// point takes "today" from the caller, since the century of a 10-digit number
// and the separator of the short form both depend on it.
package personnummer
