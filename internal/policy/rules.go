// Package policy turns rubric results into a recommendation and enforces
// the tier rules on every verdict, whether its scores came from the rubric
// or from an external proposal.
package policy

import (
	"fmt"

	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/scorer"
)

// Urgency grades how close the deadline is.
type Urgency string

const (
	UrgencyCritical Urgency = "critical"
	UrgencyModerate Urgency = "moderate"
	UrgencyLow      Urgency = "low"
)

// UrgencyOf maps a timeline status onto urgency. An unknown timeline is not
// urgent; its cost shows up in the composite instead.
func UrgencyOf(status string) Urgency {
	switch status {
	case scorer.TimelineRed, scorer.TimelineClosed:
		return UrgencyCritical
	case scorer.TimelineYellow:
		return UrgencyModerate
	default:
		return UrgencyLow
	}
}

// Rule names reported in Decision.Rule.
const (
	RuleTimeline        = "timeline_urgency"
	RuleWinnerMatch     = "winner_pattern_match"
	RuleMission         = "mission_alignment"
	RuleBurden          = "application_burden"
	RuleBandApply       = "band_apply"
	RuleBandConditional = "band_conditional"
	RuleBandSoftPass    = "band_soft_pass"
	RuleBandHardPass    = "band_hard_pass"
)

// Signals are the rule evaluator inputs. A nil signal is not available for
// the tier and its rule is skipped.
type Signals struct {
	Composite   float64
	Timeline    *int
	Urgency     Urgency
	WinnerMatch *int
	Mission     *int
	// Burden is the access-barrier ease score: low means hard to apply.
	Burden *int
}

// SignalsFromFree derives signals for the free tier.
func SignalsFromFree(r scorer.FreeResult, composite int) Signals {
	return Signals{
		Composite: float64(composite),
		Timeline:  model.IntPtr(r.Timeline.ScoreOr(0)),
		Urgency:   UrgencyOf(r.TimelineStatus),
		Burden:    model.IntPtr(r.Access.Ease()),
	}
}

// SignalsFromPaid derives signals for the paid tier. A null profile score
// counts as a neutral 5 so missing recipient data alone never forces PASS.
func SignalsFromPaid(r scorer.PaidResult, composite int) Signals {
	s := SignalsFromFree(r.Free, composite)
	s.Mission = model.IntPtr(r.Mission.ScoreOr(0))
	s.WinnerMatch = model.IntPtr(r.Profile.ScoreOr(5))
	return s
}

// WithScores replaces signals with any matching dimension scores, for
// example after an external proposal adjusted them.
func (s Signals) WithScores(scores map[string]model.ScoringResult) Signals {
	override := func(dst **int, dim string) {
		if r, ok := scores[dim]; ok && r.HasScore() {
			*dst = model.IntPtr(*r.Score)
		}
	}
	override(&s.Timeline, model.DimTimeline)
	override(&s.Burden, model.DimAccessBarrier)
	override(&s.Mission, model.DimMissionAlignment)
	if s.WinnerMatch != nil {
		override(&s.WinnerMatch, model.DimProfileMatch)
	}
	return s
}

// Decision is the rule evaluator's verdict and the rule that produced it.
type Decision struct {
	Recommendation model.Recommendation
	Rule           string
	Reason         string
}

// Decide applies the override rules in order, then the composite bands.
// The first matching rule wins.
func Decide(s Signals) Decision {
	switch {
	case s.Timeline != nil && *s.Timeline < 4 && (s.Urgency == UrgencyCritical || s.Urgency == UrgencyModerate):
		return Decision{model.RecommendPass, RuleTimeline,
			fmt.Sprintf("Timeline scores %d/10 with %s urgency; there is not enough time to prepare a strong application.", *s.Timeline, s.Urgency)}
	case s.WinnerMatch != nil && *s.WinnerMatch < 5:
		return Decision{model.RecommendPass, RuleWinnerMatch,
			fmt.Sprintf("Past recipients look unlike this project (profile match %d/10).", *s.WinnerMatch)}
	case s.Mission != nil && *s.Mission < 6:
		return Decision{model.RecommendPass, RuleMission,
			fmt.Sprintf("Mission alignment %d/10 is below the 6/10 minimum.", *s.Mission)}
	case s.Burden != nil && *s.Burden < 4 && s.Composite < 7.5:
		return Decision{model.RecommendPass, RuleBurden,
			fmt.Sprintf("Heavy application burden with a composite of %.1f/10 does not justify the effort.", s.Composite)}
	case s.Composite >= 8.0:
		return Decision{model.RecommendApply, RuleBandApply,
			fmt.Sprintf("Composite %.1f/10 is in the strong band.", s.Composite)}
	case s.Composite >= 6.5:
		return Decision{model.RecommendConditional, RuleBandConditional,
			fmt.Sprintf("Composite %.1f/10 is promising but has gaps to check first.", s.Composite)}
	case s.Composite >= 5.0:
		return Decision{model.RecommendPass, RuleBandSoftPass,
			fmt.Sprintf("Composite %.1f/10 is close to the bar; revisit if the weak dimensions improve.", s.Composite)}
	default:
		return Decision{model.RecommendPass, RuleBandHardPass,
			fmt.Sprintf("Composite %.1f/10 is well below the bar.", s.Composite)}
	}
}
