package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/scorer"
)

func TestUrgencyOf(t *testing.T) {
	assert.Equal(t, UrgencyCritical, UrgencyOf(scorer.TimelineRed))
	assert.Equal(t, UrgencyCritical, UrgencyOf(scorer.TimelineClosed))
	assert.Equal(t, UrgencyModerate, UrgencyOf(scorer.TimelineYellow))
	assert.Equal(t, UrgencyLow, UrgencyOf(scorer.TimelineGreen))
	assert.Equal(t, UrgencyLow, UrgencyOf(scorer.TimelineUnknown))
}

func TestDecide(t *testing.T) {
	ip := model.IntPtr

	tests := []struct {
		name     string
		signals  Signals
		wantRec  model.Recommendation
		wantRule string
	}{
		{
			name:     "timeline critical",
			signals:  Signals{Composite: 9, Timeline: ip(2), Urgency: UrgencyCritical},
			wantRec:  model.RecommendPass,
			wantRule: RuleTimeline,
		},
		{
			name:     "timeline weak but not urgent",
			signals:  Signals{Composite: 9, Timeline: ip(0), Urgency: UrgencyLow},
			wantRec:  model.RecommendApply,
			wantRule: RuleBandApply,
		},
		{
			name:     "winner mismatch",
			signals:  Signals{Composite: 9, Timeline: ip(10), WinnerMatch: ip(4)},
			wantRec:  model.RecommendPass,
			wantRule: RuleWinnerMatch,
		},
		{
			name:     "mission below six",
			signals:  Signals{Composite: 9, Timeline: ip(10), WinnerMatch: ip(8), Mission: ip(5)},
			wantRec:  model.RecommendPass,
			wantRule: RuleMission,
		},
		{
			name:     "heavy burden mid composite",
			signals:  Signals{Composite: 7, Burden: ip(2)},
			wantRec:  model.RecommendPass,
			wantRule: RuleBurden,
		},
		{
			name:     "heavy burden strong composite",
			signals:  Signals{Composite: 8, Burden: ip(2)},
			wantRec:  model.RecommendApply,
			wantRule: RuleBandApply,
		},
		{
			name:     "conditional band",
			signals:  Signals{Composite: 6.5},
			wantRec:  model.RecommendConditional,
			wantRule: RuleBandConditional,
		},
		{
			name:     "soft pass band",
			signals:  Signals{Composite: 5},
			wantRec:  model.RecommendPass,
			wantRule: RuleBandSoftPass,
		},
		{
			name:     "hard pass band",
			signals:  Signals{Composite: 4.9},
			wantRec:  model.RecommendPass,
			wantRule: RuleBandHardPass,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.signals)
			assert.Equal(t, tt.wantRec, d.Recommendation)
			assert.Equal(t, tt.wantRule, d.Rule)
			assert.NotEmpty(t, d.Reason)
		})
	}
}

func TestSignalsFromPaidNullProfileIsNeutral(t *testing.T) {
	r := scorer.PaidResult{
		Mission: model.ScoringResult{Score: model.IntPtr(8)},
		Profile: model.ScoringResult{Reason: model.ReasonInsufficientData},
	}
	s := SignalsFromPaid(r, 7)

	assert.Equal(t, 5, *s.WinnerMatch)
	assert.Equal(t, 8, *s.Mission)
	assert.InDelta(t, 7.0, s.Composite, 0.001)
}

func TestSignalsWithScores(t *testing.T) {
	s := Signals{Timeline: model.IntPtr(9), Burden: model.IntPtr(10)}
	s = s.WithScores(map[string]model.ScoringResult{
		model.DimTimeline:      {Score: model.IntPtr(3)},
		model.DimProfileMatch:  {Score: model.IntPtr(2)},
		model.DimAccessBarrier: {},
	})

	assert.Equal(t, 3, *s.Timeline)
	assert.Equal(t, 10, *s.Burden)
	assert.Nil(t, s.WinnerMatch, "free-tier signals never gain a winner match")
}
