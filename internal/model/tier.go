package model

// Tier is the subscription level governing quotas and feature access.
type Tier string

const (
	TierStarter    Tier = "Starter"
	TierPro        Tier = "Pro"
	TierEnterprise Tier = "Enterprise"
)

// NormalizeTier maps legacy profile tier names onto the canonical set.
// Unknown values fall back to Starter.
func NormalizeTier(raw string) Tier {
	switch raw {
	case "Gist Pro", string(TierPro):
		return TierPro
	case "Gist Enterprise", string(TierEnterprise):
		return TierEnterprise
	default:
		return TierStarter
	}
}

// TierLimits are the quantitative limits of a tier. DailyCap 0 means
// unbounded.
type TierLimits struct {
	CharLimit int
	DailyCap  int
	FileLimit int64
}

// Unlimited reports whether the tier has no daily simplification cap.
func (l TierLimits) Unlimited() bool { return l.DailyCap == 0 }

// LimitsFor returns the limits table for a tier. Pure: no other state
// affects the result.
func LimitsFor(t Tier) TierLimits {
	switch t {
	case TierEnterprise:
		return TierLimits{CharLimit: 25000, DailyCap: 0, FileLimit: 20 * 1024 * 1024}
	case TierPro:
		return TierLimits{CharLimit: 5000, DailyCap: 0, FileLimit: 5 * 1024 * 1024}
	default:
		return TierLimits{CharLimit: 800, DailyCap: 5, FileLimit: 1 * 1024 * 1024}
	}
}

// AllowsDocumentUpload reports whether the tier may upload PDF/DOCX files.
func (t Tier) AllowsDocumentUpload() bool { return t == TierPro || t == TierEnterprise }

// AllowsImageOCR reports whether the tier may upload images for OCR.
func (t Tier) AllowsImageOCR() bool { return t == TierEnterprise }

// AllowsTeam reports whether the tier has team management.
func (t Tier) AllowsTeam() bool { return t == TierEnterprise }

// AllowsChat reports whether the tier has contextual chat.
func (t Tier) AllowsChat() bool { return t == TierEnterprise }
