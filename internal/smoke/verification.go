package smoke

import (
	"encoding/json"
	"fmt"
	"net/http"

	service "github.com/SiddharthSingh5771/MedAssist-AI/internal/app"
	"github.com/SiddharthSingh5771/MedAssist-AI/internal/domain/risk"
)

// verdicts of a single submission.
const (
	verdictVerified = "verified"
	verdictRejected = "rejected"
)

type apiError struct {
	Code string `json:"code"`
}

// checkResponse verifies one response against what the patient should get.
// It returns the verdict and the tier of a verified outcome.
func checkResponse(p Patient, status int, body []byte) (verdict, tier string, err error) {
	if p.ExpectRejected {
		if status != http.StatusUnprocessableEntity {
			return "", "", fmt.Errorf("%w: %s: incomplete input got status %d", ErrVerification, p.ID, status)
		}
		var e apiError
		if err := json.Unmarshal(body, &e); err != nil || e.Code != "incomplete_input" {
			return "", "", fmt.Errorf("%w: %s: rejection code %q", ErrVerification, p.ID, e.Code)
		}
		return verdictRejected, "", nil
	}

	if status != http.StatusOK {
		return "", "", fmt.Errorf("%w: %s: status %d", ErrVerification, p.ID, status)
	}
	var out service.Outcome
	if err := json.Unmarshal(body, &out); err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", ErrVerification, p.ID, err)
	}
	return verdictVerified, string(out.Tier), checkOutcome(p, out)
}

func checkOutcome(p Patient, out service.Outcome) error {
	pct := out.Result.ProbabilityPercent
	switch {
	case out.Disease != p.Disease:
		return fmt.Errorf("%w: %s: disease %q, want %q", ErrVerification, p.ID, out.Disease, p.Disease)
	case pct < 0 || pct > 100:
		return fmt.Errorf("%w: %s: probability %.2f outside [0,100]", ErrVerification, p.ID, pct)
	case out.Tier != risk.Classify(pct):
		return fmt.Errorf("%w: %s: tier %q for %.2f%%, want %q", ErrVerification, p.ID, out.Tier, pct, risk.Classify(pct))
	case out.Color != out.Tier.Color():
		return fmt.Errorf("%w: %s: color %q for tier %q", ErrVerification, p.ID, out.Color, out.Tier)
	}
	return nil
}
