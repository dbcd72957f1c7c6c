package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Tier
		wantErr bool
	}{
		{"free", TierFree, false},
		{" paid ", TierPaid, false},
		{"premium", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseTier(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownTier)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRequestNormalize(t *testing.T) {
	t.Parallel()

	t.Run("paid without project degrades", func(t *testing.T) {
		t.Parallel()
		req, degraded, err := Request{Tier: TierPaid}.Normalize()
		require.NoError(t, err)
		assert.True(t, degraded)
		assert.Equal(t, TierFree, req.Tier)
	})

	t.Run("paid with project", func(t *testing.T) {
		t.Parallel()
		req, degraded, err := Request{Tier: TierPaid, Project: &ProjectProfile{Name: "x"}}.Normalize()
		require.NoError(t, err)
		assert.False(t, degraded)
		assert.Equal(t, TierPaid, req.Tier)
	})

	t.Run("unknown tier", func(t *testing.T) {
		t.Parallel()
		_, _, err := Request{Tier: "gold"}.Normalize()
		assert.ErrorIs(t, err, ErrUnknownTier)
	})
}

func TestProjectSectors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		meta map[string]any
		want []string
	}{
		{"nil bag", nil, nil},
		{"string list", map[string]any{"sectors": []string{"health", " climate "}}, []string{"climate", "health"}},
		{"any list", map[string]any{"sectors": []any{"water", nil, "agriculture"}}, []string{"agriculture", "water"}},
		{"comma string", map[string]any{"sectors": "tech, ,education"}, []string{"education", "tech"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := ProjectProfile{ProfileMetadata: tt.meta}
			if tt.want == nil {
				assert.Empty(t, p.Sectors())
				return
			}
			assert.Equal(t, tt.want, p.Sectors())
		})
	}
}

func TestProjectCareerStage(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "early career", ProjectProfile{ProfileMetadata: map[string]any{"career_stage": " early career"}}.CareerStage())
	assert.Empty(t, ProjectProfile{}.CareerStage())
}

func TestClampScore(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, ClampScore(-3))
	assert.Equal(t, 7, ClampScore(7))
	assert.Equal(t, 10, ClampScore(42))
	assert.InDelta(t, 10.0, ClampScoreFloat(11.5), 0.001)
	assert.InDelta(t, 0.0, ClampScoreFloat(-0.5), 0.001)
}

func TestScoringResultWithScoreCopies(t *testing.T) {
	t.Parallel()

	orig := ScoringResult{Dimension: DimTimeline, Score: IntPtr(8), Details: map[string]any{"a": 1}}
	capped := orig.WithScore(6, SourceRuleBased)
	capped.Details["a"] = 2

	assert.Equal(t, 8, *orig.Score)
	assert.Equal(t, 6, *capped.Score)
	assert.Equal(t, 1, orig.Details["a"])
	assert.Equal(t, 10, orig.WithScore(15, SourceLLM).ScoreOr(0))
	assert.True(t, orig.HasScore())
	assert.False(t, ScoringResult{Dimension: DimTimeline}.HasScore())
}

func TestVerdictClearPaidFields(t *testing.T) {
	t.Parallel()

	v := EvaluationVerdict{
		SuccessProbabilityRange: StringPtr("10-20%"),
		DecisionGates:           []string{"gate"},
		PatternKnowledge:        StringPtr("p"),
		OpportunityCost:         StringPtr("HIGH"),
		ConfidenceIndex:         Float64Ptr(0.5),
	}
	v.ClearPaidFields()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"success_probability_range":null`)
	assert.Contains(t, string(data), `"decision_gates":null`)
	assert.Contains(t, string(data), `"confidence_index":null`)
}

func TestVerdictHelpers(t *testing.T) {
	t.Parallel()

	var v EvaluationVerdict
	v.AddRedFlag("deadline passed")
	v.AddRedFlag("deadline passed")
	v.AddRedFlag("  ")
	v.AddInsight("strong mission overlap")
	v.AppendReasoning(DimComposite, "first.")
	v.AppendReasoning(DimComposite, "second.")

	assert.Equal(t, []string{"deadline passed"}, v.RedFlags)
	assert.Len(t, v.KeyInsights, 1)
	assert.Equal(t, "first. second.", v.Reasoning[DimComposite])
	assert.Equal(t, 3, v.ScoreOr(DimClarity, 3))
}

func TestReadinessStateDefaultsUnknown(t *testing.T) {
	t.Parallel()
	r := Readiness{Buckets: map[BucketName]Bucket{BucketWinnerSignal: {State: BucketKnown}}}
	assert.Equal(t, BucketKnown, r.State(BucketWinnerSignal))
	assert.Equal(t, BucketUnknown, r.State(BucketTimelineClarity))
}

func TestRecipientIdentifying(t *testing.T) {
	t.Parallel()
	assert.False(t, Recipient{}.Identifying())
	assert.True(t, Recipient{Country: "Kenya"}.Identifying())
	assert.True(t, Recipient{Year: 2023}.Identifying())
}

func TestConfidenceWeight(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 1.0, ConfidenceHigh.Weight(), 0.001)
	assert.InDelta(t, 0.1, Confidence("bogus").Weight(), 0.001)
	assert.True(t, RecommendConditional.Valid())
	assert.False(t, Recommendation("MAYBE").Valid())
}
