package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/grant-verdict/internal/model"
)

func TestSanitizeProposal(t *testing.T) {
	p := model.Proposal{
		Scores:          map[string]float64{" Clarity ": 14, "timeline": -2, "award_structure": 7.4},
		CompositeScore:  model.Float64Ptr(11),
		Recommendation:  "apply",
		Reasoning:       map[string]string{"Clarity": "<b>Clear</b> criteria", "timeline": "<script>x()</script>"},
		KeyInsights:     []string{"Good fit", "  "},
		ConfidenceIndex: model.Float64Ptr(1.5),
	}

	out, notes := SanitizeProposal(p)

	assert.Equal(t, model.RecommendApply, out.Recommendation)
	assert.InDelta(t, 10.0, out.Scores["clarity"], 0.001)
	assert.InDelta(t, 0.0, out.Scores["timeline"], 0.001)
	assert.InDelta(t, 7.4, out.Scores["award_structure"], 0.001)
	assert.InDelta(t, 10.0, *out.CompositeScore, 0.001)
	assert.InDelta(t, 1.0, *out.ConfidenceIndex, 0.001)
	assert.Equal(t, "Clear criteria", out.Reasoning["clarity"])
	assert.NotContains(t, out.Reasoning, "timeline")
	assert.Equal(t, []string{"Good fit"}, out.KeyInsights)
	assert.NotEmpty(t, notes)
}

func TestSanitizeProposalDropsUnknownRecommendation(t *testing.T) {
	out, notes := SanitizeProposal(model.Proposal{Recommendation: "maybe"})
	assert.Empty(t, out.Recommendation)
	assert.NotEmpty(t, notes)

	out, notes = SanitizeProposal(model.Proposal{Recommendation: "PASS"})
	assert.Equal(t, model.RecommendPass, out.Recommendation)
	assert.Empty(t, notes)
}

func TestApplyProposal(t *testing.T) {
	v := freeVerdict(5, 5, 5, 10, model.RecommendPass)
	v.Scores[model.DimCompetition] = model.ScoringResult{Reason: model.ReasonInsufficientData}

	notes := ApplyProposal(v, model.Proposal{
		Scores: map[string]float64{
			model.DimClarity:          7.6,
			model.DimCompetition:      9,
			model.DimMissionAlignment: 9,
		},
		Recommendation:     model.RecommendConditional,
		Reasoning:          map[string]string{model.DimClarity: "Criteria are explicit."},
		ActionableNextStep: "Email the program officer.",
		RedFlags:           []string{"Short window"},
	})

	require.Len(t, notes, 2)
	assert.Equal(t, 8, v.Score(model.DimClarity))
	assert.Equal(t, model.SourceLLM, v.Scores[model.DimClarity].Source)
	assert.Nil(t, v.Scores[model.DimCompetition].Score, "null scores stay null")
	assert.NotContains(t, v.Scores, model.DimMissionAlignment)
	assert.Equal(t, model.RecommendConditional, v.Recommendation)
	assert.Equal(t, "Criteria are explicit.", v.Reasoning[model.DimClarity])
	assert.Equal(t, "Email the program officer.", v.ActionableNextStep)
	assert.Equal(t, []string{"Short window"}, v.RedFlags)
	assert.Equal(t, model.SourceLLM, v.EvaluatorSource)
}

func TestApplyProposalEmptyLeavesSource(t *testing.T) {
	v := freeVerdict(5, 5, 5, 10, model.RecommendPass)
	v.EvaluatorSource = model.SourceRuleBased

	assert.Empty(t, ApplyProposal(v, model.Proposal{}))
	assert.Equal(t, model.SourceRuleBased, v.EvaluatorSource)
}

func TestInjectedApplyNeverSurvivesFreeTier(t *testing.T) {
	v := freeVerdict(10, 10, 10, 10, model.RecommendPass)
	p, _ := SanitizeProposal(model.Proposal{
		Recommendation:          "APPLY",
		SuccessProbabilityRange: model.StringPtr("10-20%"),
	})
	ApplyProposal(v, p)
	EnforceFree(v, disclosedGrant(), false, testConfig())

	assert.Equal(t, model.RecommendConditional, v.Recommendation)
	assert.Nil(t, v.SuccessProbabilityRange)
}
