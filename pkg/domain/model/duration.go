package model

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// DurationKind tags how an estimated completion time is expressed
type DurationKind string

const (
	DurationHours DurationKind = "hours"
	DurationText  DurationKind = "text"
)

// Duration is an estimated completion time: either a fixed number of hours or a
// qualitative description such as "Ongoing (Daily)" for long-running steps.
type Duration struct {
	Kind  DurationKind `json:"kind"`
	Hours float64      `json:"hours,omitempty"`
	Text  string       `json:"text,omitempty"`
}

// Hours returns a fixed-hours duration
func Hours(h float64) Duration {
	return Duration{Kind: DurationHours, Hours: h}
}

// Qualitative returns a free-text duration
func Qualitative(text string) Duration {
	return Duration{Kind: DurationText, Text: text}
}

// ParseDuration reads form input: a plain number is hours, anything else is text
func ParseDuration(s string) Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return Duration{}
	}
	if h, err := strconv.ParseFloat(s, 64); err == nil && h >= 0 {
		return Hours(h)
	}
	return Qualitative(s)
}

// IsZero reports whether no duration was set
func (d Duration) IsZero() bool {
	return d.Kind == ""
}

// String renders the duration for display
func (d Duration) String() string {
	switch d.Kind {
	case DurationHours:
		h := strconv.FormatFloat(d.Hours, 'f', -1, 64)
		if d.Hours == 1 {
			return h + " hour"
		}
		return h + " hours"
	case DurationText:
		return d.Text
	default:
		return "N/A"
	}
}

// UnmarshalJSON accepts the tagged object form as well as a bare number or
// string. Negative hours are rejected.
func (d *Duration) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	switch {
	case trimmed == "null":
		*d = Duration{}
		return nil
	case strings.HasPrefix(trimmed, "\""):
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return goerr.Wrap(err, "invalid duration string")
		}
		*d = ParseDuration(s)
		return nil
	case strings.HasPrefix(trimmed, "{"):
		type plain Duration
		var p plain
		if err := json.Unmarshal(data, &p); err != nil {
			return goerr.Wrap(err, "invalid duration object")
		}
		switch DurationKind(p.Kind) {
		case DurationHours, DurationText, "":
		default:
			return goerr.New("invalid duration kind", goerr.V("kind", p.Kind))
		}
		if p.Hours < 0 {
			return goerr.New("duration hours must not be negative", goerr.V("hours", p.Hours))
		}
		*d = Duration(p)
		return nil
	default:
		var h float64
		if err := json.Unmarshal(data, &h); err != nil {
			return goerr.Wrap(err, "invalid duration value")
		}
		if h < 0 {
			return goerr.New("duration hours must not be negative", goerr.V("hours", h))
		}
		*d = Hours(h)
		return nil
	}
}
