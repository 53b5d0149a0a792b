package homespace

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultDatetimeFormat is the strftime format assumed when a source
// does not declare how it serializes dates.
const DefaultDatetimeFormat = "%Y-%m-%dT%H:%M:%S"

// isoDatetimeLayout is the canonical output layout: ISO-8601, second
// precision, no timezone offset. Source data is assumed naive/local.
const isoDatetimeLayout = "2006-01-02T15:04:05"

// NormalizeSpace collapses runs of whitespace (spaces, tabs, newlines)
// to single spaces and trims the ends. It is pure and idempotent; empty
// input yields empty output.
func NormalizeSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// ReformatDatetime parses text with a strftime source format and
// re-serializes the same instant as ISO-8601 (YYYY-MM-DDTHH:MM:SS).
// An empty format falls back to DefaultDatetimeFormat. Returns an EPARSE
// error if the text does not match the format.
func ReformatDatetime(text string, format string) (string, error) {
	if format == "" {
		format = DefaultDatetimeFormat
	}
	t, err := strftime.Parse(format, text)
	if err != nil {
		return "", Errorf(EPARSE, "datetime %q does not match format %q: %v", text, format, err)
	}
	return t.Format(isoDatetimeLayout), nil
}

// FormatDatetime serializes a time in the canonical ISO-8601 form used
// across records.
func FormatDatetime(t time.Time) string {
	return t.Format(isoDatetimeLayout)
}

// ParseISODatetime parses a canonical ISO-8601 timestamp produced by
// ReformatDatetime or FormatDatetime.
func ParseISODatetime(text string) (time.Time, error) {
	t, err := time.Parse(isoDatetimeLayout, text)
	if err != nil {
		return time.Time{}, Errorf(EPARSE, "invalid ISO-8601 datetime %q: %v", text, err)
	}
	return t, nil
}
