package model

// Proposal is a partial verdict supplied by an external scoring strategy
// (for example an LLM call). Nothing in it is trusted: the policy validates,
// clamps and re-derives before any of it reaches a verdict.
type Proposal struct {
	Scores                  map[string]float64 `json:"scores,omitempty" validate:"dive,min=0,max=10"`
	CompositeScore          *float64           `json:"composite_score,omitempty" validate:"omitempty,min=0,max=10"`
	Recommendation          Recommendation     `json:"recommendation,omitempty" validate:"omitempty,oneof=APPLY CONDITIONAL PASS"`
	Reasoning               map[string]string  `json:"reasoning,omitempty"`
	KeyInsights             []string           `json:"key_insights,omitempty"`
	RedFlags                []string           `json:"red_flags,omitempty"`
	ConfidenceNotes         string             `json:"confidence_notes,omitempty"`
	ActionableNextStep      string             `json:"actionable_next_step,omitempty"`
	SuccessProbabilityRange *string            `json:"success_probability_range,omitempty"`
	DecisionGates           []string           `json:"decision_gates,omitempty"`
	PatternKnowledge        *string            `json:"pattern_knowledge,omitempty"`
	OpportunityCost         *string            `json:"opportunity_cost,omitempty"`
	ConfidenceIndex         *float64           `json:"confidence_index,omitempty" validate:"omitempty,min=0,max=1"`
}
