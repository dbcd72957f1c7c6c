// Package scorer implements the deterministic grant rubric: free-tier
// grant-quality sub-scores and paid-tier project-fit sub-scores.
package scorer

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/grant-verdict/internal/config"
)

// DefaultEngineConfig returns a config.EngineConfig with the standard
// weights and thresholds. Each weight set sums to 1.
func DefaultEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		FreeWeights: config.FreeWeights{
			Clarity:       0.30,
			Timeline:      0.25,
			Award:         0.25,
			AccessBarrier: 0.20,
		},
		PaidWeights: config.PaidWeights{
			Mission:      0.30,
			Profile:      0.25,
			Funding:      0.25,
			EffortReward: 0.20,
		},
		MinRecipients:     5,
		PaidPassThreshold: 6.5,
		FreeCompositeCap:  6.5,
		DimensionCap:      6.0,
	}
}

// FreeWeightSum returns the sum of the free-tier weights.
func FreeWeightSum(w config.FreeWeights) float64 {
	return w.Clarity + w.Timeline + w.Award + w.AccessBarrier
}

// PaidWeightSum returns the sum of the paid-tier weights.
func PaidWeightSum(w config.PaidWeights) float64 {
	return w.Mission + w.Profile + w.Funding + w.EffortReward
}

// ValidateConfig checks that an EngineConfig is internally consistent.
func ValidateConfig(c config.EngineConfig) error {
	var errs []string

	weights := []struct {
		name string
		w    float64
	}{
		{"free_weights.clarity", c.FreeWeights.Clarity},
		{"free_weights.timeline", c.FreeWeights.Timeline},
		{"free_weights.award", c.FreeWeights.Award},
		{"free_weights.access_barrier", c.FreeWeights.AccessBarrier},
		{"paid_weights.mission", c.PaidWeights.Mission},
		{"paid_weights.profile", c.PaidWeights.Profile},
		{"paid_weights.funding", c.PaidWeights.Funding},
		{"paid_weights.effort_reward", c.PaidWeights.EffortReward},
	}
	for _, w := range weights {
		if w.w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", w.name))
		}
	}

	// Allow tolerance for floating-point.
	if sum := FreeWeightSum(c.FreeWeights); math.Abs(sum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("free weights should sum to 1, got %.2f", sum))
	}
	if sum := PaidWeightSum(c.PaidWeights); math.Abs(sum-1) > 0.01 {
		errs = append(errs, fmt.Sprintf("paid weights should sum to 1, got %.2f", sum))
	}

	if c.MinRecipients < 1 {
		errs = append(errs, "min_recipients must be >= 1")
	}
	for _, th := range []struct {
		name string
		v    float64
	}{
		{"paid_pass_threshold", c.PaidPassThreshold},
		{"free_composite_cap", c.FreeCompositeCap},
		{"dimension_cap", c.DimensionCap},
	} {
		if th.v < 0 || th.v > 10 {
			errs = append(errs, fmt.Sprintf("%s must be between 0 and 10", th.name))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ConfigHash returns a SHA-256 hash of the scoring config for reproducibility.
func ConfigHash(cfg any) string {
	data, err := json.Marshal(cfg)
	if err != nil {
		return ""
	}
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:8])
}
