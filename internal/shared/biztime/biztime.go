// Package biztime centralizes time handling for the service.
// All storage and transport use UTC; implicit Local timezone is prohibited.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatISO formats a time as an ISO-8601 / RFC3339 UTC timestamp,
// matching the format used by existing persisted records.
func FormatISO(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
