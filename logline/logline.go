// Package logline normalizes raw node debug-log lines: ANSI escape
// removal, leading timestamp extraction and duration token parsing.
package logline

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// CSI sequences and two-byte Fe escapes. Bare ESC bytes without a
	// recognized follow-up are left alone.
	ansiPattern = regexp.MustCompile(`\x1B(?:[@-Z\\-_]|\[[0-?]*[ -/]*[@-~])`)

	// ISO-8601 UTC timestamp at the start of a line, e.g.
	// 2025-09-29T22:22:37.272569Z. The fractional part is required.
	timestampPattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d+Z)`)

	// Duration token prefix such as 1.186125ms, 11.583µs or 1.234s.
	durationPattern = regexp.MustCompile(`^([\d.]+)(ms|µs|s)`)
)

// StripANSI removes ANSI escape sequences from a log line. Idempotent:
// stripping an already clean line returns it unchanged.
func StripANSI(raw string) string {
	return ansiPattern.ReplaceAllString(raw, "")
}

// Timestamp extracts the ISO-8601 UTC timestamp a log line starts with.
// It expects an ANSI-stripped line and reports false when the line does
// not begin with a timestamp.
func Timestamp(clean string) (time.Time, bool) {
	m := timestampPattern.FindStringSubmatch(clean)
	if m == nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339Nano, m[1])
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

// DurationMS converts a duration token to milliseconds. Seconds and
// microseconds are scaled, trailing garbage after a valid prefix is
// ignored and unparseable tokens report false.
func DurationMS(token string) (float64, bool) {
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	switch m[2] {
	case "s":
		return v * 1000, true
	case "µs":
		return v / 1000, true
	default:
		return v, true
	}
}
