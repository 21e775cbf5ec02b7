package dto

// SimplifyRequestDTO is the payload of POST /simplify.
type SimplifyRequestDTO struct {
	Text           string `json:"text" validate:"required"`
	Tone           string `json:"tone" validate:"omitempty,oneof=Standard Executive ELI5 Confident Sarcastic"`
	Niche          string `json:"niche" validate:"omitempty,oneof=Legal Medical Business Tech Academic"`
	TargetLanguage string `json:"target_language"`
	// Tier is honored only for anonymous sessions; authenticated requests
	// use the profile tier.
	Tier string `json:"tier" validate:"omitempty,oneof=Starter Pro Enterprise"`
}

// AttemptDTO mirrors one provider attempt for diagnosis.
type AttemptDTO struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Error    string `json:"error,omitempty"`
}

// SimplifyResponseDTO is the success payload of POST /simplify.
type SimplifyResponseDTO struct {
	Text       string       `json:"text"`
	ModelUsed  string       `json:"model_used"`
	UsageCount int          `json:"usage_count"`
	Attempts   []AttemptDTO `json:"attempts,omitempty"`
}
