// Package risk maps a probability to a display tier and the advice shown next to it.
package risk

import (
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/schema"
)

// Tier thresholds in percent.
const (
	ModerateFrom = 30.0
	HighFrom     = 70.0
)

// Tier is a display-only bucket of the probability. It never changes the
// binary verdict.
type Tier string

const (
	Low      Tier = "low"
	Moderate Tier = "moderate"
	High     Tier = "high"
)

// Classify returns the tier for a probability in percent.
func Classify(percent float64) Tier {
	switch {
	case percent < ModerateFrom:
		return Low
	case percent < HighFrom:
		return Moderate
	default:
		return High
	}
}

// Color is the gauge bar color for the tier.
func (t Tier) Color() string {
	switch t {
	case Low:
		return "green"
	case Moderate:
		return "yellow"
	default:
		return "red"
	}
}

// Band is a gauge background segment.
type Band struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Tier  Tier    `json:"tier"`
	Color string  `json:"color"`
}

// Bands returns the gauge segments covering [0,100].
func Bands() []Band {
	return []Band{
		{From: 0, To: ModerateFrom, Tier: Low, Color: Low.Color()},
		{From: ModerateFrom, To: HighFrom, Tier: Moderate, Color: Moderate.Color()},
		{From: HighFrom, To: 100, Tier: High, Color: High.Color()},
	}
}

// Advice is the headline and follow-up text rendered with a verdict.
type Advice struct {
	Headline string   `json:"headline"`
	Summary  string   `json:"summary"`
	Actions  []string `json:"actions,omitempty"`
}

// Verdict returns the advice for a binary outcome.
func Verdict(disease schema.Disease, positive bool) Advice {
	switch disease {
	case schema.DiabetesDisease:
		if positive {
			return Advice{
				Headline: "POSITIVE (High Risk)",
				Summary:  "The model estimates an elevated probability of diabetes.",
				Actions: []string{
					"Consult an endocrinologist.",
					"Schedule an HbA1c test.",
					"Monitor blood sugar levels daily.",
				},
			}
		}
		return Advice{
			Headline: "NEGATIVE (Low Risk)",
			Summary:  "Maintain a healthy lifestyle to keep risk low.",
		}
	case schema.HeartDisease:
		if positive {
			return Advice{
				Headline: "HEART DISEASE DETECTED",
				Summary:  "The model estimates an elevated probability of heart disease.",
			}
		}
		return Advice{
			Headline: "HEART IS HEALTHY",
			Summary:  "The model estimates a low probability of heart disease.",
		}
	}
	return Advice{}
}
