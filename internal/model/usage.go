package model

// UsageRecord is the persisted per-day simplification counter.
// Day is a calendar-day string in the user's local time; when the stored day
// differs from today the count is reset before any cap comparison.
type UsageRecord struct {
	Count int    `json:"count"`
	Day   string `json:"day"`
}
