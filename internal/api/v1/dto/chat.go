package dto

// ChatRequestDTO is the payload of POST /chat.
type ChatRequestDTO struct {
	Question   string   `json:"question" validate:"required"`
	Context    string   `json:"context"`
	Gist       string   `json:"gist"`
	Transcript []string `json:"transcript"`
}

// ChatResponseDTO is the assistant's answer.
type ChatResponseDTO struct {
	Answer string `json:"answer"`
}
