package model

// SimplificationRequest is the ephemeral unit of work for one orchestration
// call. It is never persisted.
type SimplificationRequest struct {
	Text           string
	Tone           string
	Niche          string
	TargetLanguage string
}

// Attempt records one provider call made while serving a request, so callers
// can see which providers were tried and why each failed.
type Attempt struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
	Err      string `json:"error,omitempty"`
}

// SimplificationResult is the success payload of one orchestration call.
type SimplificationResult struct {
	Text      string    `json:"text"`
	ModelUsed string    `json:"model_used"`
	Attempts  []Attempt `json:"attempts,omitempty"`
}
