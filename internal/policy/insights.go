package policy

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/scorer"
)

// DecisionGates lists concrete checks to clear before committing to an
// application. PASS verdicts get none.
func DecisionGates(v model.EvaluationVerdict, g model.GrantRecord) []string {
	if v.Recommendation == model.RecommendPass {
		return []string{}
	}
	gates := []string{}
	if r, ok := v.Scores[model.DimProfileMatch]; !ok || !r.HasScore() {
		gates = append(gates, "Identify one past recipient within 30 minutes whose profile resembles yours.")
	} else if *r.Score < 7 {
		gates = append(gates, "Confirm at least one recent recipient shares your career stage or organisation type.")
	}
	if v.ScoreOr(model.DimMissionAlignment, 0) < 7 {
		gates = append(gates, "Write two sentences tying the project to the funder's stated mission; drop the application if they feel forced.")
	}
	if v.ScoreOr(model.DimFundingFit, 0) < 10 {
		gates = append(gates, "Check the award covers the part of the budget it would fund.")
	}
	if FindGaps(g).Timeline {
		gates = append(gates, "Get a confirmed submission deadline before drafting.")
	}
	if v.ScoreOr(model.DimEffortReward, 0) < 6 {
		gates = append(gates, "Cap preparation time before starting and stop when it is reached.")
	}
	return gates
}

// PatternKnowledge summarises the recipient corpus, or returns nil when it
// is empty.
func PatternKnowledge(g model.GrantRecord) *string {
	recipients := g.Recipients()
	if len(recipients) == 0 {
		return nil
	}
	stages := make(map[string]int)
	orgs := make(map[string]int)
	for _, r := range recipients {
		if s := strings.TrimSpace(r.CareerStage); s != "" {
			stages[strings.ToLower(s)]++
		}
		if o := strings.TrimSpace(r.OrganizationType); o != "" {
			orgs[strings.ToLower(o)]++
		}
	}

	parts := []string{fmt.Sprintf("%d past recipient record(s) on file.", len(recipients))}
	if s, n := dominant(stages); n > 0 {
		parts = append(parts, fmt.Sprintf("Most common career stage: %s (%d).", s, n))
	}
	if o, n := dominant(orgs); n > 0 {
		parts = append(parts, fmt.Sprintf("Most common organisation type: %s (%d).", o, n))
	}
	text := strings.Join(parts, " ")
	return &text
}

// dominant returns the most frequent key, breaking ties alphabetically.
func dominant(counts map[string]int) (string, int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	best, n := "", 0
	for _, k := range keys {
		if counts[k] > n {
			best, n = k, counts[k]
		}
	}
	return best, n
}

// ConfidenceIndex averages the confidence weights of the paid sub-scores,
// rounded to two decimals.
func ConfidenceIndex(scores map[string]model.ScoringResult) *float64 {
	dims := []string{model.DimMissionAlignment, model.DimProfileMatch, model.DimFundingFit, model.DimEffortReward}
	total := 0.0
	for _, d := range dims {
		total += scores[d].Confidence.Weight()
	}
	idx := math.Round(total/float64(len(dims))*100) / 100
	return model.Float64Ptr(math.Min(1, math.Max(0, idx)))
}

// OpportunityCostText renders the effort/reward opportunity cost level.
func OpportunityCostText(r scorer.PaidResult) *string {
	if r.OpportunityCost == "" {
		return nil
	}
	var text string
	switch r.OpportunityCost {
	case scorer.CostHigh:
		text = fmt.Sprintf("HIGH: an estimated %s for a %s return; that time likely has better uses.", r.Free.Access.HoursRange(), strings.ToLower(r.EffortStatus))
	case scorer.CostModerate:
		text = fmt.Sprintf("MODERATE: an estimated %s of preparation for a mid-range return.", r.Free.Access.HoursRange())
	default:
		text = fmt.Sprintf("LOW: an estimated %s of preparation is small relative to the award.", r.Free.Access.HoursRange())
	}
	return &text
}
