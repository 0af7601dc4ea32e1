package core

import (
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestampIn(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		loc  *time.Location
		want string
	}{
		{"empty", "", time.UTC, "—"},
		{"blank", "   ", time.UTC, "—"},
		{"unparseable", "not-a-date", time.UTC, "not-a-date"},
		{"rfc3339 utc", "2024-06-02T21:28:00Z", time.UTC, "Jun 02, 2024 9:28 PM UTC"},
		{"rfc3339 chicago", "2024-06-02T21:28:00Z", chicago, "Jun 02, 2024 4:28 PM CDT"},
		{"winter chicago", "2024-01-15T18:05:00Z", chicago, "Jan 15, 2024 12:05 PM CST"},
		{"fractional seconds", "2024-06-02T21:28:00.123+00:00", time.UTC, "Jun 02, 2024 9:28 PM UTC"},
		{"offset", "2024-06-02T09:28:00-05:00", time.UTC, "Jun 02, 2024 2:28 PM UTC"},
		{"exif layout", "2023:11:05 08:07:00", time.UTC, "Nov 05, 2023 8:07 AM UTC"},
		{"date only", "2024-06-02", time.UTC, "Jun 02, 2024 12:00 AM UTC"},
		{"exif layout chicago", "2024:06:02 21:28:00", chicago, "Jun 02, 2024 9:28 PM CDT"},
		{"no zone chicago", "2024-06-02T21:28:00", chicago, "Jun 02, 2024 9:28 PM CDT"},
		{"space separated chicago", "2024-01-15 06:05:00", chicago, "Jan 15, 2024 6:05 AM CST"},
		{"date only chicago", "2024-06-02", chicago, "Jun 01, 2024 7:00 PM CDT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestampIn(tt.in, tt.loc))
		})
	}
}

func TestParseTimestampIn(t *testing.T) {
	zone := time.FixedZone("X", -5*3600)

	got, ok := ParseTimestampIn("2024:06:02 21:28:00", zone)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 3, 2, 28, 0, 0, time.UTC), got.UTC())

	got, ok = ParseTimestampIn("2024-06-02T21:28:00Z", zone)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 6, 2, 21, 28, 0, 0, time.UTC), got.UTC())

	_, ok = ParseTimestampIn("yesterday", zone)
	assert.False(t, ok)
}

func TestFormatTimestampNoCommaBeforeTime(t *testing.T) {
	got := FormatTimestampIn("2024-06-02T21:28:00Z", time.UTC)
	assert.Equal(t, 1, strings.Count(got, ","), "only the date carries a comma: %q", got)
	assert.NotContains(t, got, "2024,")
}

func TestFormatTimestampNilLocation(t *testing.T) {
	assert.NotEqual(t, Dash, FormatTimestampIn("2024-06-02T21:28:00Z", nil))
}

func TestFileNameFromURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://example.com/img/hero.jpg", "hero.jpg"},
		{"https://example.com/img/hero.jpg?w=800&h=600", "hero.jpg"},
		{"https://example.com/img/my%20photo.jpg", "my photo.jpg"},
		{"/assets/images/a.png#top", "a.png"},
		{"plain.jpg", "plain.jpg"},
		{"https://example.com/img/", ""},
		{"", ""},
		{"https://example.com/bad%zzname.jpg", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FileNameFromURL(tt.in), "FileNameFromURL(%q)", tt.in)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty("", " "))
	assert.Equal(t, "", FirstNonEmpty())
}
