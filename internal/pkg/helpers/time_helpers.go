package helpers

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// LastUpdatedLayout is how course revision dates are written, e.g. "March 2023"
const LastUpdatedLayout = "January 2006"

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		// Use the global logger here, the configured one may not exist yet.
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseLastUpdated parses a "Month YYYY" revision date. Blank or malformed
// input yields nil, meaning the course is undated.
func ParseLastUpdated(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse(LastUpdatedLayout, s)
	if err != nil {
		log.Debug().Err(err).Str("lastUpdated", s).Msg("Ignoring malformed course revision date")
		return nil
	}
	return &t
}

// FormatLastUpdated is the inverse of ParseLastUpdated
func FormatLastUpdated(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(LastUpdatedLayout)
}
