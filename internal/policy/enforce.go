package policy

import (
	"fmt"
	"math"
	"strings"

	"github.com/sells-group/grant-verdict/internal/config"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/scorer"
)

// EnforceFree applies the free-tier rules to v in place: per-dimension caps
// for missing facts, composite recomputation and cap, no APPLY, a PASS
// re-check on the capped composite, no paid-only fields, an uncertainty
// sentence and a concrete next step. winnerWeak marks a grant with no usable
// recipient signal.
func EnforceFree(v *model.EvaluationVerdict, g model.GrantRecord, winnerWeak bool, cfg config.EngineConfig) {
	v.Tier = model.TierFree
	gaps := FindGaps(g)

	if gaps.AwardAmount {
		capDimension(v, model.DimAwardStructure, cfg.DimensionCap, "the award amount is not disclosed")
	}
	if gaps.Timeline {
		capDimension(v, model.DimTimeline, cfg.DimensionCap, "no deadline or decision date is published")
	}

	v.CompositeScore = roundScore(Composite(*v, cfg))
	if gaps.Any() {
		if limit := int(math.Floor(cfg.FreeCompositeCap)); v.CompositeScore > limit {
			v.AppendReasoning(model.DimComposite, fmt.Sprintf("Composite capped at %d because %s is missing.", limit, strings.Join(gaps.Names(), " and ")))
			v.CompositeScore = limit
		}
	}

	if !v.Recommendation.Valid() {
		v.Recommendation = model.RecommendPass
		v.AppendReasoning(model.DimRecommendation, "No valid recommendation was available; defaulted to PASS.")
	}
	if v.Recommendation == model.RecommendApply {
		v.Recommendation = model.RecommendConditional
		v.AppendReasoning(model.DimRecommendation, "APPLY is not available on the free tier because project fit was not assessed; downgraded to CONDITIONAL.")
	}
	if v.Recommendation == model.RecommendConditional && v.CompositeScore < 5 {
		v.Recommendation = model.RecommendPass
		v.AppendReasoning(model.DimRecommendation, fmt.Sprintf("Composite %d/10 after caps is below 5; set to PASS.", v.CompositeScore))
	}

	v.ClearPaidFields()
	v.ConfidenceNotes = prependSentence(uncertaintySentence(gaps), v.ConfidenceNotes)
	EnsureNextStep(v, gaps, winnerWeak)
}

// EnforcePaid applies the paid-tier rules to v in place: the composite is
// recomputed from the merged scores, anything below the pass threshold is
// PASS, and APPLY is downgraded on a zero or weak mission alignment.
func EnforcePaid(v *model.EvaluationVerdict, g model.GrantRecord, cfg config.EngineConfig) {
	v.Tier = model.TierPaid

	profile := profileScore(*v)
	mission := v.ScoreOr(model.DimMissionAlignment, 0)
	v.CompositeScore = roundScore(Composite(*v, cfg))

	if !v.Recommendation.Valid() {
		v.Recommendation = model.RecommendPass
		v.AppendReasoning(model.DimRecommendation, "No valid recommendation was available; defaulted to PASS.")
	}
	if float64(v.CompositeScore) < cfg.PaidPassThreshold && v.Recommendation != model.RecommendPass {
		v.AppendReasoning(model.DimRecommendation, fmt.Sprintf("Composite %d/10 is below the %.1f threshold; %s changed to PASS.", v.CompositeScore, cfg.PaidPassThreshold, v.Recommendation))
		v.Recommendation = model.RecommendPass
	}
	if v.Recommendation == model.RecommendApply {
		switch {
		case mission == 0:
			v.Recommendation = model.RecommendPass
			v.AppendReasoning(model.DimRecommendation, "Mission alignment is 0/10; APPLY changed to PASS.")
		case v.CompositeScore < 5 || mission < 3:
			v.Recommendation = model.RecommendConditional
			v.AppendReasoning(model.DimRecommendation, fmt.Sprintf("Mission alignment %d/10 is weak; APPLY downgraded to CONDITIONAL.", mission))
		}
	}

	if v.DecisionGates == nil {
		v.DecisionGates = []string{}
	}
	EnsureNextStep(v, FindGaps(g), profile == nil || *profile < 5)
}

// Composite recomputes the tier composite from the verdict's current scores.
// Free verdicts use the grant-quality weights; paid verdicts the project-fit
// weights with a null profile counted as a neutral 5.
func Composite(v model.EvaluationVerdict, cfg config.EngineConfig) float64 {
	if v.Tier == model.TierPaid {
		return scorer.PaidComposite(
			v.ScoreOr(model.DimMissionAlignment, 0),
			profileScore(v),
			v.ScoreOr(model.DimFundingFit, 0),
			v.ScoreOr(model.DimEffortReward, 0),
			cfg.PaidWeights,
		)
	}
	return scorer.FreeComposite(
		v.ScoreOr(model.DimClarity, 0),
		v.ScoreOr(model.DimTimeline, 0),
		v.ScoreOr(model.DimAwardStructure, 0),
		v.ScoreOr(model.DimAccessBarrier, 0),
		cfg.FreeWeights,
	)
}

func profileScore(v model.EvaluationVerdict) *int {
	if r, ok := v.Scores[model.DimProfileMatch]; ok && r.HasScore() {
		return model.IntPtr(*r.Score)
	}
	return nil
}

func capDimension(v *model.EvaluationVerdict, dim string, limit float64, why string) {
	r, ok := v.Scores[dim]
	if !ok || !r.HasScore() {
		return
	}
	capped := int(math.Floor(limit))
	if *r.Score <= capped {
		return
	}
	v.Scores[dim] = r.WithScore(capped, r.Source).
		WithExplanation(strings.TrimSpace(fmt.Sprintf("%s Capped at %d because %s.", r.Explanation, capped, why)))
}

func uncertaintySentence(gaps Gaps) string {
	if !gaps.Any() {
		return "Uncertain: project fit was not assessed on the free tier."
	}
	return fmt.Sprintf("Uncertain: the grant does not publish its %s, and project fit was not assessed on the free tier.",
		strings.Join(gaps.Names(), " or "))
}

func prependSentence(sentence, text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, sentence) {
		return text
	}
	if text == "" {
		return sentence
	}
	return sentence + " " + text
}

func roundScore(v float64) int {
	return model.ClampScore(int(math.Round(v)))
}
