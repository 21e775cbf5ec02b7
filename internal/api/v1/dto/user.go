package dto

import "time"

// ProfileResponseDTO is the authenticated user's profile.
type ProfileResponseDTO struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Tier      string    `json:"tier"`
	CreatedAt time.Time `json:"created_at"`
}

// UsageResponseDTO reports today's usage against the tier limits.
type UsageResponseDTO struct {
	Count     int  `json:"count"`
	DailyCap  int  `json:"daily_cap"`
	Unlimited bool `json:"unlimited"`
	CharLimit int  `json:"char_limit"`
}
