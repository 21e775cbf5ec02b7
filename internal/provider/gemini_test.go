package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGeminiAdapter(url string) *GeminiAdapter {
	a := NewGeminiAdapter(zerolog.Nop())
	a.baseURL = url
	return a
}

func geminiSuccessBody(text string) map[string]interface{} {
	return map[string]interface{}{
		"candidates": []map[string]interface{}{
			{"content": map[string]interface{}{
				"parts": []map[string]string{{"text": text}},
			}},
		},
	}
}

func geminiErrorBody(code int, status, message string) map[string]interface{} {
	return map[string]interface{}{
		"error": map[string]interface{}{
			"code":    code,
			"status":  status,
			"message": message,
		},
	}
}

func TestGenerateFirstModelSucceeds(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		json.NewEncoder(w).Encode(geminiSuccessBody("Short and clear."))
	}))
	defer srv.Close()

	a := testGeminiAdapter(srv.URL)
	res, err := a.Generate(context.Background(), "test-key", "Simplify this.")

	require.NoError(t, err)
	assert.Equal(t, "Short and clear.", res.Text)
	assert.Equal(t, "models/gemini-1.5-flash", res.Model)
	require.Len(t, calls, 1)
	assert.Equal(t, "/v1/models/gemini-1.5-flash:generateContent", calls[0])
}

func TestGenerateFallsThroughToLaterModel(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			json.NewEncoder(w).Encode(geminiErrorBody(404, "NOT_FOUND", "model not found"))
			return
		}
		json.NewEncoder(w).Encode(geminiSuccessBody("Third time lucky."))
	}))
	defer srv.Close()

	a := testGeminiAdapter(srv.URL)
	res, err := a.Generate(context.Background(), "test-key", "Simplify this.")

	require.NoError(t, err)
	assert.Equal(t, "Third time lucky.", res.Text)
	assert.Equal(t, "models/gemini-1.5-pro", res.Model)
	assert.Equal(t, 3, calls)
}

func TestGenerateAuthErrorShortCircuits(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(geminiErrorBody(400, "INVALID_ARGUMENT", "API key not valid. API_KEY_INVALID"))
	}))
	defer srv.Close()

	a := testGeminiAdapter(srv.URL)
	_, err := a.Generate(context.Background(), "bad-key", "Simplify this.")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Gemini", authErr.Vendor)
	// The invalid credential aborts the whole search after one attempt.
	assert.Equal(t, 1, calls)
}

func TestGeneratePermissionErrorShortCircuits(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(geminiErrorBody(403, "PERMISSION_DENIED", "caller lacks permission on this project"))
	}))
	defer srv.Close()

	a := testGeminiAdapter(srv.URL)
	_, err := a.Generate(context.Background(), "restricted-key", "Simplify this.")

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 1, calls)
}

func TestGenerateExhaustsAllPairs(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(geminiErrorBody(404, "NOT_FOUND", "model not found"))
	}))
	defer srv.Close()

	a := testGeminiAdapter(srv.URL)
	_, err := a.Generate(context.Background(), "test-key", "Simplify this.")

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Contains(t, err.Error(), "Generative Language API")
	assert.Equal(t, len(geminiAPIVersions)*len(geminiModelIDs), calls)
}

func TestGenerateNormalizesBareModelPath(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		json.NewEncoder(w).Encode(geminiErrorBody(404, "NOT_FOUND", "model not found"))
	}))
	defer srv.Close()

	a := testGeminiAdapter(srv.URL)
	a.versions = []string{"v1"}
	a.models = []string{"gemini-2.0-flash-exp"}

	_, err := a.Generate(context.Background(), "test-key", "Simplify this.")
	require.Error(t, err)
	require.Len(t, paths, 1)
	assert.True(t, strings.HasPrefix(paths[0], "/v1/models/gemini-2.0-flash-exp"), "path=%s", paths[0])
}

func TestGenerateRejectsEmptyKey(t *testing.T) {
	a := NewGeminiAdapter(zerolog.Nop())
	_, err := a.Generate(context.Background(), "", "Simplify this.")
	assert.Error(t, err)
}
