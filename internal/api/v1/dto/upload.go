package dto

// UploadResponseDTO carries the text extracted from an uploaded file.
type UploadResponseDTO struct {
	Filename string `json:"filename"`
	Text     string `json:"text"`
}
