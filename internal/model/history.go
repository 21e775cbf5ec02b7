package model

import "time"

// MaxHistoryItems caps per-session history. Oldest items are evicted first.
const MaxHistoryItems = 50

// HistoryItem records one successful simplification.
type HistoryItem struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	Niche     string    `db:"niche" json:"niche"`
	Input     string    `db:"input" json:"input"`
	Output    string    `db:"output" json:"output"`
	Model     string    `db:"model" json:"model"`
	Tone      string    `db:"tone" json:"tone"`
}
