package domain

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// ISOLayout is the strict timestamp layout used by the GitHub REST API.
const ISOLayout = "2006-01-02T15:04:05Z"

// ISOToUnix parses a strict YYYY-MM-DDTHH:MM:SSZ timestamp as UTC.
// Returns false when the input does not match the layout exactly.
func ISOToUnix(ts string) (int64, bool) {
	// time.Parse tolerates fractional seconds; the layout does not.
	if len(ts) != len(ISOLayout) {
		return UnknownTime, false
	}
	t, err := time.Parse(ISOLayout, ts)
	if err != nil {
		return UnknownTime, false
	}
	return t.Unix(), true
}

// UnixToISO formats epoch seconds in the strict API layout.
func UnixToISO(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(ISOLayout)
}

// TimestampFromFilename extracts the unix timestamp from the last
// underscore-separated segment of a file stem, e.g.
// "github_issues_1700000000.json" yields 1700000000.
func TimestampFromFilename(name string) (int64, bool) {
	stem := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	parts := strings.Split(stem, "_")
	ts, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}
