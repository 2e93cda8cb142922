package check

import (
	"fmt"
	"strings"
)

// Kind selects the validator.
type Kind string

const (
	KindPersonnummer Kind = "personnummer"
	KindOrgnummer    Kind = "orgnummer"
)

// ParseKind accepts the full names and the short forms "pnr" and "org".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "personnummer", "pnr":
		return KindPersonnummer, nil
	case "orgnummer", "organisationsnummer", "org":
		return KindOrgnummer, nil
	default:
		return "", fmt.Errorf("unknown identifier kind %q", s)
	}
}

func (k Kind) validate() error {
	switch k {
	case KindPersonnummer, KindOrgnummer:
		return nil
	default:
		return fmt.Errorf("unknown identifier kind %q", string(k))
	}
}

// Result is the outcome of checking one identifier.
type Result struct {
	Input      string `json:"input"`
	Kind       Kind   `json:"kind"`
	Valid      bool   `json:"valid"`
	Reason     string `json:"reason,omitempty"`
	Normalized string `json:"normalized,omitempty"`

	Personnummer *PersonDetails `json:"personnummer,omitempty"`
	Orgnummer    *OrgDetails    `json:"orgnummer,omitempty"`
}

// PersonDetails are the decoded fields of a valid personnummer.
type PersonDetails struct {
	Year               int    `json:"year"`
	Month              int    `json:"month"`
	Day                int    `json:"day"`
	SequenceNumber     int    `json:"sequence_number"`
	CheckDigit         int    `json:"check_digit"`
	Gender             string `json:"gender"`
	CoordinationNumber bool   `json:"coordination_number"`
	Short              string `json:"short"`
	Age                int    `json:"age"`
}

// OrgDetails are the decoded fields of a valid organisation number.
type OrgDetails struct {
	GroupDigit int    `json:"group_digit"`
	Type       string `json:"type"`
	CheckDigit int    `json:"check_digit"`
}
