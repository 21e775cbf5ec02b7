package provider

import (
	"testing"

	"babysimple/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestShortRequest(t *testing.T) {
	assert.True(t, ShortRequest("EBITDA"))
	assert.True(t, ShortRequest("force majeure clause"))
	assert.True(t, ShortRequest("one two three four"))
	assert.False(t, ShortRequest("one two three four five"))
	assert.False(t, ShortRequest("the indemnification provisions shall survive termination"))
}

func TestSimplifyPromptShortTermAsksForTranslation(t *testing.T) {
	p := SimplifyPrompt(model.SimplificationRequest{Text: "EBITDA", TargetLanguage: "English"})
	assert.Contains(t, p, "equivalent for this term")
	assert.Contains(t, p, `"EBITDA"`)
	assert.NotContains(t, p, "6th-grade")
}

func TestSimplifyPromptLongTextCarriesNicheAndLanguage(t *testing.T) {
	p := SimplifyPrompt(model.SimplificationRequest{
		Text:           "The party of the first part shall indemnify the party of the second part.",
		Niche:          "Legal",
		TargetLanguage: "Spanish",
	})
	assert.Contains(t, p, "Legal")
	assert.Contains(t, p, "Spanish")
	assert.Contains(t, p, "6th-grade reading level")
	assert.Contains(t, p, "NEVER generate Mermaid")
}

func TestChatContextPromptFoldsTranscript(t *testing.T) {
	p := ChatContextPrompt("source material", "the gist", []string{"Q: what?", "A: this."}, "why?")
	assert.Contains(t, p, `"source material"`)
	assert.Contains(t, p, `"the gist"`)
	assert.Contains(t, p, "Q: what?\nA: this.")
	assert.Contains(t, p, `"why?"`)
}
