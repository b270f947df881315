package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// PaidAtLayout is the wall-clock layout the dashboard sends payment times in, always UTC
const PaidAtLayout = "2006-01-02 15:04:05"

// PaidAtTime decodes a payment time given as PaidAtLayout (UTC) or RFC3339.
// null or an empty string leaves the zero time.
type PaidAtTime struct {
	time.Time
}

func (p *PaidAtTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("payment time must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	if t, err := time.ParseInLocation(PaidAtLayout, s, time.UTC); err == nil {
		p.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid payment time %q", s)
	}
	p.Time = t.UTC()
	return nil
}
