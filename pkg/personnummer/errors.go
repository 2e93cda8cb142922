package personnummer

import "errors"

// Reason classifies why an input was rejected. The set is closed.
type Reason int

const (
	// ReasonMalformedFormat: the input matches none of the accepted shapes.
	ReasonMalformedFormat Reason = iota + 1
	// ReasonChecksumMismatch: the ten significant digits fail the Luhn check.
	ReasonChecksumMismatch
	// ReasonCoordinationNumberDisallowed: a coordination number was decoded
	// but the caller disabled them.
	ReasonCoordinationNumberDisallowed
	// ReasonInvalidCalendarDate: the decoded date does not exist.
	ReasonInvalidCalendarDate
)

// Sentinel errors, one per Reason. Match with errors.Is.
var (
	ErrMalformedFormat              = errors.New("invalid personnummer: malformed format")
	ErrChecksumMismatch             = errors.New("invalid personnummer: checksum mismatch")
	ErrCoordinationNumberDisallowed = errors.New("invalid personnummer: coordination number not allowed")
	ErrInvalidCalendarDate          = errors.New("invalid personnummer: date does not exist")
)

func (r Reason) String() string {
	switch r {
	case ReasonMalformedFormat:
		return "malformed_format"
	case ReasonChecksumMismatch:
		return "checksum_mismatch"
	case ReasonCoordinationNumberDisallowed:
		return "coordination_number_disallowed"
	case ReasonInvalidCalendarDate:
		return "invalid_calendar_date"
	default:
		return "unknown"
	}
}

func (r Reason) sentinel() error {
	switch r {
	case ReasonMalformedFormat:
		return ErrMalformedFormat
	case ReasonChecksumMismatch:
		return ErrChecksumMismatch
	case ReasonCoordinationNumberDisallowed:
		return ErrCoordinationNumberDisallowed
	case ReasonInvalidCalendarDate:
		return ErrInvalidCalendarDate
	default:
		return nil
	}
}

// InvalidError is returned by Parse and Format when an input is rejected.
//
// Error() never includes Input, so the error is safe to log. Input is kept for
// callers that decide to surface it themselves.
type InvalidError struct {
	Reason Reason
	Input  string
}

func (e *InvalidError) Error() string {
	if err := e.Reason.sentinel(); err != nil {
		return err.Error()
	}
	return "invalid personnummer"
}

// Unwrap exposes the sentinel for the reason so errors.Is matches it.
func (e *InvalidError) Unwrap() error {
	return e.Reason.sentinel()
}

// ReasonOf extracts the rejection reason from err.
func ReasonOf(err error) (Reason, bool) {
	var invalid *InvalidError
	if errors.As(err, &invalid) {
		return invalid.Reason, true
	}
	return 0, false
}

func invalid(reason Reason, input string) error {
	return &InvalidError{Reason: reason, Input: input}
}
