package provider

import (
	"fmt"
	"strings"

	"babysimple/internal/model"
)

// ShortRequest reports whether the input is a bare term rather than a
// passage. Short inputs get a direct-translation prompt instead of a full
// simplification.
func ShortRequest(text string) bool {
	return len(strings.Fields(text)) < 5
}

func chatSystemPrompt(req model.SimplificationRequest) string {
	if ShortRequest(req.Text) {
		return "You are an expert translator. Only provide the extremely concise, direct everyday translation. No explanations, just the simplest equivalent."
	}
	return fmt.Sprintf("You are an expert at simplifying complex %s jargon into plain English. Tone: %s. Use metaphors and break down concepts.", req.Niche, req.Tone)
}

func chatUserPrompt(req model.SimplificationRequest) string {
	if ShortRequest(req.Text) {
		return fmt.Sprintf("Translate this term to simple everyday %s: %q", req.TargetLanguage, req.Text)
	}
	return fmt.Sprintf("Simplify this text in %s language: %q", req.TargetLanguage, req.Text)
}

func groqPrompt(req model.SimplificationRequest) string {
	if ShortRequest(req.Text) {
		return fmt.Sprintf("Provide the extremely concise, direct everyday %s equivalent for this term. No bullet points, no explanations. Term: %q", req.TargetLanguage, req.Text)
	}
	return fmt.Sprintf(`Simplify the following %s technical/jargon-heavy text into plain %s for a layman. Use a %s tone. Keep it concise.
Maintain a 6th-grade reading level. Break down jargon into everyday metaphors. Use bullet points for readability.
IMPORTANT: Use ONLY clear text paragraphs and bullet points. NEVER generate Mermaid code, flowcharts, or diagrams.
Text: %q`, req.Niche, req.TargetLanguage, req.Tone, req.Text)
}

// SimplifyPrompt builds the reading-level-constrained prompt for the primary
// provider.
func SimplifyPrompt(req model.SimplificationRequest) string {
	if ShortRequest(req.Text) {
		return fmt.Sprintf("Provide the extremely concise, direct everyday %s equivalent for this term. Return ONLY the simple term, no explanations or formatting. Term: %q", req.TargetLanguage, req.Text)
	}
	return fmt.Sprintf(`Simplify the following %s technical/jargon-heavy text into plain %s for a layman.
Maintain a 6th-grade reading level. Break down jargon into everyday metaphors. Use bullet points for readability.

IMPORTANT: NEVER generate Mermaid diagrams, flowcharts, or code blocks. Use ONLY plain text and bullet points.

Text to simplify:
%q`, req.Niche, req.TargetLanguage, req.Text)
}

// ChatContextPrompt builds the contextual-chat prompt from the source
// material, the current gist, and the running transcript.
func ChatContextPrompt(contextText, gist string, transcript []string, question string) string {
	return fmt.Sprintf(`Context Material: %q
Current Gist: %q

Chat History: %s

User Question: %q

As an expert advisor, answer the user's question based on the provided context and gist. Keep it concise (under 3 sentences) and use a helpful, professional tone.`,
		contextText, gist, strings.Join(transcript, "\n"), question)
}
