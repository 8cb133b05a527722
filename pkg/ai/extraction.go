package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DecodeExtraction validates a provider's raw JSON reply against the intake
// schema. A missing required field, malformed date or time, or an urgency
// outside the enumeration is a *ParseFailure; the external shape is never
// trusted as-is.
func DecodeExtraction(raw []byte) (*Extraction, error) {
	var ex Extraction
	if err := json.Unmarshal(raw, &ex); err != nil {
		return nil, &ParseFailure{Message: ParseApology, Err: err}
	}
	if err := ex.validate(); err != nil {
		return nil, &ParseFailure{Message: ParseApology, Err: err}
	}
	return &ex, nil
}

func (e *Extraction) validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return errors.New("missing title")
	}
	if _, err := time.Parse("2006-01-02", e.Date); err != nil {
		return fmt.Errorf("date %q is not YYYY-MM-DD", e.Date)
	}
	if _, err := time.Parse("15:04", e.Time); err != nil {
		return fmt.Errorf("time %q is not HH:mm", e.Time)
	}
	switch e.Urgency {
	case "low", "medium", "high", "urgent":
	default:
		return fmt.Errorf("urgency %q is not in the enumeration", e.Urgency)
	}
	return nil
}
