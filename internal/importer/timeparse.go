package importer

import (
	"time"

	"github.com/rs/zerolog/log"
)

const (
	legacyDateTimeLayout = "2006-01-02 15:04:05"
	isoDateTimeLayout    = "2006-01-02T15:04:05"
)

// timeNow is swapped in tests to pin the fallback clock.
var timeNow = time.Now

// parseDateTime parses a legacy timestamp. The legacy system mostly sends
// "yyyy-MM-dd HH:mm:ss" but some records carry ISO-8601 local date-times.
// An unparseable value falls back to the current time so a malformed
// timestamp never fails the item; the record then sorts as "now" in the
// newer-wins comparison, which is a known approximation.
func parseDateTime(value string) time.Time {
	if t, err := time.Parse(legacyDateTimeLayout, value); err == nil {
		return t
	}
	if t, err := time.Parse(isoDateTimeLayout, value); err == nil {
		return t
	}

	log.Error().Str("value", value).Msg("Failed to parse legacy datetime, using current time")
	return timeNow()
}
