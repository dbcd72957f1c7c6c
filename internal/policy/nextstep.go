package policy

import (
	"regexp"
	"strings"

	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/parse"
	"github.com/sells-group/grant-verdict/internal/textutil"
)

// Synthesized next steps, in priority order.
const (
	StepConfirmAward      = "Confirm the award amount is published before investing preparation time."
	StepIdentifyRecipient = "Identify one past recipient whose profile resembles yours."
	StepLocateTimeline    = "Locate the decision timeline on the funder's site or from the program officer."
	StepCheckFAQ          = "Check the funder's FAQ for eligibility details not stated in the listing."
)

// verdictWordRe matches next steps that simply restate a verdict.
var verdictWordRe = regexp.MustCompile(`(?i)\b(apply|pass)\b`)

// Gaps records which critical grant facts are unpublished.
type Gaps struct {
	AwardAmount bool
	Timeline    bool
}

// Any reports whether any gap is present.
func (g Gaps) Any() bool {
	return g.AwardAmount || g.Timeline
}

// Names lists the missing fields for display.
func (g Gaps) Names() []string {
	var out []string
	if g.AwardAmount {
		out = append(out, "award amount")
	}
	if g.Timeline {
		out = append(out, "deadline or decision date")
	}
	return out
}

// FindGaps reports which critical facts the grant leaves out. An amount
// that is present but vague counts as missing.
func FindGaps(g model.GrantRecord) Gaps {
	amount := textutil.PlainText(g.AwardAmount)
	_, ok := parse.ParseAmount(amount)
	return Gaps{
		AwardAmount: !ok || parse.IsVagueAmount(amount),
		Timeline:    textutil.PlainText(g.Deadline) == "" && textutil.PlainText(g.DecisionDate) == "",
	}
}

// SynthesizeNextStep picks the highest-priority concrete step.
func SynthesizeNextStep(gaps Gaps, winnerWeak bool) string {
	switch {
	case gaps.AwardAmount:
		return StepConfirmAward
	case winnerWeak:
		return StepIdentifyRecipient
	case gaps.Timeline:
		return StepLocateTimeline
	default:
		return StepCheckFAQ
	}
}

// ValidNextStep reports whether s is a usable next step: non-empty and not
// just an instruction to apply or pass.
func ValidNextStep(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && !verdictWordRe.MatchString(s)
}

// EnsureNextStep replaces a missing or verdict-restating next step.
func EnsureNextStep(v *model.EvaluationVerdict, gaps Gaps, winnerWeak bool) {
	if ValidNextStep(v.ActionableNextStep) {
		v.ActionableNextStep = strings.TrimSpace(v.ActionableNextStep)
		return
	}
	v.ActionableNextStep = SynthesizeNextStep(gaps, winnerWeak)
}
