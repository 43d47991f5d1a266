package form

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// startTimeLayouts are tried in order when parsing a show's start time.
// Values without a zone are read as UTC.
var startTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	time.RFC3339,
}

func text(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// list returns the non-blank values submitted under key, or nil.
func list(values url.Values, key string) []string {
	var out []string
	for _, v := range values[key] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// checkbox reports whether key was submitted.  An unchecked box is not
// sent at all; the explicit values "false" and "" are also read as
// unchecked.
func checkbox(values url.Values, key string) bool {
	vs, ok := values[key]
	if !ok {
		return false
	}
	if len(vs) == 0 {
		return true
	}
	v := strings.ToLower(strings.TrimSpace(vs[0]))
	return v != "false" && v != ""
}

func parseID(raw string) (uint64, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func parseStartTime(raw string) (time.Time, bool) {
	for _, layout := range startTimeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
