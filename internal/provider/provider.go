package provider

import "fmt"

// ProviderError is a non-success HTTP response from a vendor endpoint. The
// response body is carried verbatim for diagnosis.
type ProviderError struct {
	Vendor string
	Status int
	Body   string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s error (HTTP %d): %s", e.Vendor, e.Status, e.Body)
}

// AuthError means the credential is invalid or lacks permission. A bad key
// fails identically on every model, so the caller must not keep trying.
type AuthError struct {
	Vendor string
	Msg    string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s auth error: %s", e.Vendor, e.Msg)
}

// ExhaustedError means every (version, model) pair was attempted without
// success. LastErr is the most recent underlying error message.
type ExhaustedError struct {
	LastErr string
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("gemini error: %s. (TIP: ensure the Generative Language API is enabled in Google Cloud Console if using a GCP key)", e.LastErr)
}
