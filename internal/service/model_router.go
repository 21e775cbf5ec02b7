package service

import "babysimple/internal/model"

// Display labels for the model answering a request. Advisory: they tag the
// UI and history, the adapters decide what actually executes.
const (
	ModelLabelStarter    = "Gemini 1.5 Flash"
	ModelLabelLowLatency = "Groq (Llama-3)"
	ModelLabelHighPower  = "Gemini 1.5 Pro"
)

// Inputs shorter than this route to the low-latency label.
const lowLatencyThreshold = 300

// RouteModel picks the intended model label for a request. Deterministic and
// pure: Starter always gets the fixed cheap label regardless of length.
func RouteModel(text string, tier model.Tier) string {
	if tier == model.TierStarter {
		return ModelLabelStarter
	}
	if len(text) < lowLatencyThreshold {
		return ModelLabelLowLatency
	}
	return ModelLabelHighPower
}
