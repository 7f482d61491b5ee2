package sources

import (
	"strings"
	"time"
)

// timestampLayouts covers the formats the three providers emit. Guardian and
// NewsAPI use RFC 3339; NYT uses RFC 3339 with a numeric zone offset.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a provider timestamp string into UTC. A blank or
// unparsable value yields nil: ingestion must never abort a batch because one
// record carries a malformed date.
func ParseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
