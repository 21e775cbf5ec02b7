package service

import (
	"errors"
	"fmt"

	"babysimple/internal/model"
)

var (
	// ErrEmptyInput is the early no-op rejection for blank input.
	ErrEmptyInput = errors.New("input text is empty")
	// ErrNoCredentials means no provider credential is configured at all.
	ErrNoCredentials = errors.New("no provider credentials configured: set GROQ_API_KEY, XAI_API_KEY or GEMINI_API_KEY")
	// ErrParse wraps file-ingestion failures.
	ErrParse = errors.New("could not parse file: please provide a valid text, PDF, or DOCX file")
	// ErrFileTooLarge is the tier file-size gate.
	ErrFileTooLarge = errors.New("file exceeds the tier upload limit")
	// ErrLegacyDoc rejects pre-OOXML Word files.
	ErrLegacyDoc = errors.New("legacy .doc files are not supported: save as .docx or .pdf")
	// ErrDocumentRequiresPro gates PDF/DOCX ingestion.
	ErrDocumentRequiresPro = errors.New("PDF and DOCX analysis requires the Pro plan")
	// ErrImageRequiresEnterprise gates image OCR.
	ErrImageRequiresEnterprise = errors.New("image OCR requires the Enterprise plan")
	// ErrChatRequiresEnterprise gates contextual chat.
	ErrChatRequiresEnterprise = errors.New("contextual chat requires the Enterprise plan")
	// ErrStoreUnavailable means the operation needs a database and none is
	// configured.
	ErrStoreUnavailable = errors.New("persistent storage is not configured")
)

// LimitKind says which quota a LimitExceededError refers to.
type LimitKind string

const (
	LimitCharacters LimitKind = "characters"
	LimitDailyCap   LimitKind = "dailyCap"
)

// LimitExceededError is a user-correctable quota rejection. It is raised
// before any provider is called.
type LimitExceededError struct {
	Kind  LimitKind
	Tier  model.Tier
	Limit int
}

func (e *LimitExceededError) Error() string {
	if e.Kind == LimitDailyCap {
		return fmt.Sprintf("daily limit reached: the %s plan allows %d simplifications per day", e.Tier, e.Limit)
	}
	return fmt.Sprintf("limit exceeded: the %s plan allows up to %d characters", e.Tier, e.Limit)
}

// AllProvidersFailedError is terminal: every attempted provider failed. The
// attempt log records which providers were tried and why each failed.
type AllProvidersFailedError struct {
	LastErr  string
	Attempts []model.Attempt
}

func (e *AllProvidersFailedError) Error() string {
	return fmt.Sprintf("all AI providers failed: %s", e.LastErr)
}
