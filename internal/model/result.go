package model

// ScoringResult is the outcome of one sub-rubric. Score is nil when the data
// is insufficient to score. Results are built once per evaluation and not
// mutated afterwards; use the With* helpers to derive a changed copy.
type ScoringResult struct {
	Dimension   string         `json:"dimension"`
	Score       *int           `json:"score"`
	Confidence  Confidence     `json:"confidence"`
	Source      Source         `json:"source"`
	Rating      string         `json:"rating,omitempty"`
	Explanation string         `json:"explanation"`
	Reason      string         `json:"reason,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// ScoreOr returns the score, or def when the score is null.
func (r ScoringResult) ScoreOr(def int) int {
	if r.Score == nil {
		return def
	}
	return *r.Score
}

// HasScore reports whether a numeric score is present.
func (r ScoringResult) HasScore() bool {
	return r.Score != nil
}

// WithScore returns a copy carrying a new score and source.
func (r ScoringResult) WithScore(score int, src Source) ScoringResult {
	out := r.clone()
	out.Score = IntPtr(ClampScore(score))
	out.Source = src
	return out
}

// WithExplanation returns a copy carrying a new explanation.
func (r ScoringResult) WithExplanation(text string) ScoringResult {
	out := r.clone()
	out.Explanation = text
	return out
}

func (r ScoringResult) clone() ScoringResult {
	out := r
	if r.Score != nil {
		out.Score = IntPtr(*r.Score)
	}
	if r.Details != nil {
		out.Details = make(map[string]any, len(r.Details))
		for k, v := range r.Details {
			out.Details[k] = v
		}
	}
	return out
}

// ClampScore bounds an integer score to [0,10].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}

// ClampScoreFloat bounds a float score to [0,10].
func ClampScoreFloat(v float64) float64 {
	if v < 0 || v != v {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
