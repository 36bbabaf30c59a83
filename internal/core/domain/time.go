package domain

import (
	"fmt"
	"strings"
	"time"
)

// apiTimeLayouts covers the server's timestamp encodings. The backend emits
// naive ISO-8601 (no zone, optional fractional seconds); standards-compliant
// RFC3339 is accepted as well so a future server upgrade does not break us.
var apiTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// APITime is a time.Time that unmarshals the server's zone-less timestamps.
// Naive timestamps are interpreted as UTC.
type APITime struct {
	time.Time
}

func (t *APITime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range apiTimeLayouts {
		parsed, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", s)
}

func (t APITime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.UTC().Format(time.RFC3339Nano) + `"`), nil
}
