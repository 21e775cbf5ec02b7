package dto

import "time"

// HistoryItemDTO is one past simplification.
type HistoryItemDTO struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Niche     string    `json:"niche"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
	Model     string    `json:"model"`
	Tone      string    `json:"tone"`
}
