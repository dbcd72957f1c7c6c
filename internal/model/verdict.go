package model

// Bucket is one readiness bucket state plus a one-line explanation.
type Bucket struct {
	State       BucketState `json:"state"`
	Explanation string      `json:"explanation"`
}

// Readiness is the display-only output of the readiness classifier. It is
// derived purely from the grant and never from the project.
type Readiness struct {
	Buckets           map[BucketName]Bucket `json:"buckets"`
	DecisionReadiness string                `json:"decision_readiness"`
	StatusOfKnowledge string                `json:"status_of_knowledge"`
	Scope             Scope                 `json:"scope"`
	ScopeExplanation  string                `json:"scope_explanation,omitempty"`
}

// State returns the state of the named bucket, or unknown when absent.
func (r Readiness) State(name BucketName) BucketState {
	if b, ok := r.Buckets[name]; ok {
		return b.State
	}
	return BucketUnknown
}

// EvaluationVerdict is the engine's structured output. Field names are stable
// so a persistence layer can store the value opaquely.
//
// Free-tier verdicts never set the paid-only fields (SuccessProbabilityRange,
// DecisionGates, PatternKnowledge, OpportunityCost, ConfidenceIndex) and never
// carry RecommendApply.
type EvaluationVerdict struct {
	Tier               Tier                     `json:"tier"`
	Scores             map[string]ScoringResult `json:"scores"`
	CompositeScore     int                      `json:"composite_score"`
	Recommendation     Recommendation           `json:"recommendation"`
	Reasoning          map[string]string        `json:"reasoning"`
	KeyInsights        []string                 `json:"key_insights"`
	RedFlags           []string                 `json:"red_flags"`
	ConfidenceNotes    string                   `json:"confidence_notes"`
	ActionableNextStep string                   `json:"actionable_next_step"`
	Readiness          Readiness                `json:"readiness"`
	EvaluatorSource    Source                   `json:"evaluator_source"`
	RubricVersion      string                   `json:"rubric_version"`

	SuccessProbabilityRange *string  `json:"success_probability_range"`
	DecisionGates           []string `json:"decision_gates"`
	PatternKnowledge        *string  `json:"pattern_knowledge"`
	OpportunityCost         *string  `json:"opportunity_cost"`
	ConfidenceIndex         *float64 `json:"confidence_index"`
}

// Score returns the numeric score of a dimension, or def when missing or null.
func (v EvaluationVerdict) Score(dim string) int {
	return v.ScoreOr(dim, 0)
}

// ScoreOr returns the numeric score of a dimension, or def when missing or null.
func (v EvaluationVerdict) ScoreOr(dim string, def int) int {
	r, ok := v.Scores[dim]
	if !ok {
		return def
	}
	return r.ScoreOr(def)
}

// ClearPaidFields nulls every paid-only field.
func (v *EvaluationVerdict) ClearPaidFields() {
	v.SuccessProbabilityRange = nil
	v.DecisionGates = nil
	v.PatternKnowledge = nil
	v.OpportunityCost = nil
	v.ConfidenceIndex = nil
}

// AddRedFlag appends a red flag if it is not already present.
func (v *EvaluationVerdict) AddRedFlag(flag string) {
	v.RedFlags = appendUnique(v.RedFlags, flag)
}

// AddInsight appends a key insight if it is not already present.
func (v *EvaluationVerdict) AddInsight(insight string) {
	v.KeyInsights = appendUnique(v.KeyInsights, insight)
}

// AppendReasoning adds a sentence to the reasoning entry for key.
func (v *EvaluationVerdict) AppendReasoning(key, note string) {
	if v.Reasoning == nil {
		v.Reasoning = make(map[string]string)
	}
	if existing := v.Reasoning[key]; existing != "" {
		v.Reasoning[key] = existing + " " + note
		return
	}
	v.Reasoning[key] = note
}

func appendUnique(list []string, item string) []string {
	item = trimmed(item)
	if item == "" {
		return list
	}
	for _, existing := range list {
		if existing == item {
			return list
		}
	}
	return append(list, item)
}
