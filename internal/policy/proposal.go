package policy

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/textutil"
)

var validate = validator.New()

// SanitizeProposal validates an external proposal and corrects what it can:
// out-of-range numbers are clamped, an unknown recommendation is dropped so
// the rule evaluator decides, and free text is stripped of markup. The
// returned notes describe each correction.
func SanitizeProposal(p model.Proposal) (model.Proposal, []string) {
	out := model.Proposal{
		Recommendation: model.Recommendation(strings.ToUpper(strings.TrimSpace(string(p.Recommendation)))),
	}
	if len(p.Scores) > 0 {
		out.Scores = make(map[string]float64, len(p.Scores))
		for k, v := range p.Scores {
			out.Scores[strings.ToLower(strings.TrimSpace(k))] = v
		}
	}
	if p.CompositeScore != nil {
		out.CompositeScore = model.Float64Ptr(*p.CompositeScore)
	}
	if p.ConfidenceIndex != nil {
		out.ConfidenceIndex = model.Float64Ptr(*p.ConfidenceIndex)
	}

	var notes []string
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				notes = append(notes, fmt.Sprintf("Proposal field %s failed the %s check and was corrected.", fe.Field(), fe.Tag()))
			}
		} else {
			notes = append(notes, "Proposal could not be validated: "+err.Error())
		}
	}

	if out.Recommendation != "" && !out.Recommendation.Valid() {
		out.Recommendation = ""
	}
	for k, v := range out.Scores {
		out.Scores[k] = model.ClampScoreFloat(v)
	}
	if out.CompositeScore != nil {
		*out.CompositeScore = model.ClampScoreFloat(*out.CompositeScore)
	}
	if out.ConfidenceIndex != nil {
		*out.ConfidenceIndex = model.ClampScoreFloat(*out.ConfidenceIndex*10) / 10
	}

	if len(p.Reasoning) > 0 {
		out.Reasoning = make(map[string]string, len(p.Reasoning))
		for k, v := range p.Reasoning {
			if clean := textutil.Sanitize(v); clean != "" {
				out.Reasoning[strings.ToLower(strings.TrimSpace(k))] = clean
			}
		}
	}
	out.KeyInsights = sanitizeList(p.KeyInsights)
	out.RedFlags = sanitizeList(p.RedFlags)
	out.DecisionGates = sanitizeList(p.DecisionGates)
	out.ConfidenceNotes = textutil.Sanitize(p.ConfidenceNotes)
	out.ActionableNextStep = textutil.Sanitize(p.ActionableNextStep)
	out.SuccessProbabilityRange = sanitizePtr(p.SuccessProbabilityRange)
	out.PatternKnowledge = sanitizePtr(p.PatternKnowledge)
	out.OpportunityCost = sanitizePtr(p.OpportunityCost)
	return out, notes
}

func sanitizeList(items []string) []string {
	var out []string
	for _, s := range items {
		if clean := textutil.Sanitize(s); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func sanitizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	if clean := textutil.Sanitize(*s); clean != "" {
		return &clean
	}
	return nil
}

// ApplyProposal merges a sanitized proposal into v. Proposed scores only
// replace dimensions the tier already scored; a null score stays null
// because missing data is never filled in by a guess. The proposal's own
// composite is ignored: enforcement recomputes it from the merged scores.
func ApplyProposal(v *model.EvaluationVerdict, p model.Proposal) []string {
	var notes []string
	applied := false

	dims := make([]string, 0, len(p.Scores))
	for dim := range p.Scores {
		dims = append(dims, dim)
	}
	sort.Strings(dims)
	for _, dim := range dims {
		cur, ok := v.Scores[dim]
		switch {
		case !ok:
			notes = append(notes, fmt.Sprintf("Ignored proposed score for %s, which this tier does not score.", dim))
		case cur.Score == nil:
			notes = append(notes, fmt.Sprintf("Kept %s unscored: insufficient data is not filled in by a proposal.", dim))
		default:
			v.Scores[dim] = cur.WithScore(int(math.Round(p.Scores[dim])), model.SourceLLM)
			applied = true
		}
	}

	if p.Recommendation != "" {
		v.Recommendation = p.Recommendation
		applied = true
	}

	keys := make([]string, 0, len(p.Reasoning))
	for k := range p.Reasoning {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.AppendReasoning(k, p.Reasoning[k])
		applied = true
	}
	for _, s := range p.KeyInsights {
		v.AddInsight(s)
	}
	for _, s := range p.RedFlags {
		v.AddRedFlag(s)
	}
	if p.ConfidenceNotes != "" {
		v.ConfidenceNotes = strings.TrimSpace(v.ConfidenceNotes + " " + p.ConfidenceNotes)
	}
	if p.ActionableNextStep != "" {
		v.ActionableNextStep = p.ActionableNextStep
	}

	if p.SuccessProbabilityRange != nil {
		v.SuccessProbabilityRange = p.SuccessProbabilityRange
	}
	if len(p.DecisionGates) > 0 {
		v.DecisionGates = p.DecisionGates
	}
	if p.PatternKnowledge != nil {
		v.PatternKnowledge = p.PatternKnowledge
	}
	if p.OpportunityCost != nil {
		v.OpportunityCost = p.OpportunityCost
	}
	if p.ConfidenceIndex != nil {
		v.ConfidenceIndex = p.ConfidenceIndex
	}

	if applied || len(p.KeyInsights) > 0 || len(p.RedFlags) > 0 {
		v.EvaluatorSource = model.SourceLLM
	}
	return notes
}
