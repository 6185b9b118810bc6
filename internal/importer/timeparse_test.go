package importer

import (
	"testing"
	"time"
)

func TestParseDateTime(t *testing.T) {
	pinnedNow := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	timeNow = func() time.Time { return pinnedNow }
	defer func() { timeNow = time.Now }()

	tests := []struct {
		name  string
		value string
		want  time.Time
	}{
		{
			name:  "legacy space-separated format",
			value: "2023-01-01 12:00:00",
			want:  time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "ISO local date-time",
			value: "2023-01-01T12:00:00",
			want:  time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			// Documented approximation: a malformed timestamp becomes
			// "now" rather than failing the item, which can misclassify
			// that one record in the newer-wins comparison.
			name:  "unparseable falls back to current time",
			value: "not-a-date",
			want:  pinnedNow,
		},
		{
			name:  "empty falls back to current time",
			value: "",
			want:  pinnedNow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDateTime(tt.value)
			if !got.Equal(tt.want) {
				t.Errorf("parseDateTime(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
