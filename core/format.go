package core

import (
	"net/url"
	"strings"
	"time"
)

// timestampLayout renders like "Jun 02, 2024 4:28 PM CDT": no comma between
// date and time.
const timestampLayout = "Jan 02, 2006 3:04 PM MST"

// parseLayouts are tried in order. The EXIF layout uses colons in the date.
// A zone-less date-time is wall-clock time in the display zone, while a bare
// date is midnight UTC.
var parseLayouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{time.RFC3339, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{"2006-01-02 15:04:05", true},
	{"2006:01:02 15:04:05", true},
	{"2006-01-02", false},
}

// FormatTimestamp formats an ISO-ish timestamp in the local time zone.
// See FormatTimestampIn.
func FormatTimestamp(s string) string {
	return FormatTimestampIn(s, time.Local)
}

// FormatTimestampIn formats s in loc. It returns Dash when s is empty and s
// itself when no layout parses it.
func FormatTimestampIn(s string, loc *time.Location) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return Dash
	}
	if loc == nil {
		loc = time.Local
	}
	t, ok := ParseTimestampIn(s, loc)
	if !ok {
		return s
	}
	return t.In(loc).Format(timestampLayout)
}

// ParseTimestamp parses s with the first matching layout, reading zone-less
// date-times as local time. See ParseTimestampIn.
func ParseTimestamp(s string) (time.Time, bool) {
	return ParseTimestampIn(s, time.Local)
}

// ParseTimestampIn parses s with the first matching layout. Date-times
// without a zone are read in loc; a date without a time is midnight UTC.
func ParseTimestampIn(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, p := range parseLayouts {
		in := time.UTC
		if p.local {
			in = loc
		}
		if t, err := time.ParseInLocation(p.layout, s, in); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FileNameFromURL returns the decoded last path segment of u with any query
// string removed. It returns "" when the segment is not valid percent-encoding.
func FileNameFromURL(u string) string {
	seg := u
	if i := strings.LastIndexByte(seg, '/'); i >= 0 {
		seg = seg[i+1:]
	}
	if i := strings.IndexByte(seg, '?'); i >= 0 {
		seg = seg[:i]
	}
	if i := strings.IndexByte(seg, '#'); i >= 0 {
		seg = seg[:i]
	}
	name, err := url.PathUnescape(seg)
	if err != nil {
		return ""
	}
	return name
}

// FirstNonEmpty returns the first argument that is not blank.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
