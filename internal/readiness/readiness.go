// Package readiness turns raw grant text into explainable bucket states.
// The output is for display only and never feeds the scorer.
package readiness

import (
	"fmt"
	"strings"

	"github.com/sells-group/grant-verdict/internal/lexicon"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/parse"
	"github.com/sells-group/grant-verdict/internal/textutil"
)

// Classify derives the five bucket states, the two derived labels and the
// scope from the grant alone. It never fails; unreadable input yields
// unknown states.
func Classify(g model.GrantRecord) model.Readiness {
	buckets := map[model.BucketName]model.Bucket{
		model.BucketTimelineClarity:       timelineClarity(g),
		model.BucketWinnerSignal:          winnerSignal(g),
		model.BucketMissionSpecificity:    missionSpecificity(g),
		model.BucketApplicationBurden:     applicationBurden(g),
		model.BucketAwardStructureClarity: awardStructureClarity(g),
	}

	states := make(map[model.BucketName]model.BucketState, len(buckets))
	for name, b := range buckets {
		states[name] = b.State
	}

	scope, why := InferScope(g)
	return model.Readiness{
		Buckets:           buckets,
		DecisionReadiness: DecisionReadiness(states),
		StatusOfKnowledge: StatusOfKnowledge(states),
		Scope:             scope,
		ScopeExplanation:  why,
	}
}

func timelineClarity(g model.GrantRecord) model.Bucket {
	deadline := textutil.PlainText(g.Deadline)
	decision := textutil.PlainText(g.DecisionDate)

	switch {
	case deadline == "" && decision == "":
		return bucket(model.BucketUnknown, "No deadline or decision date is published.")
	case deadline != "" && parse.IsVagueTimeline(deadline):
		return bucket(model.BucketPartial, fmt.Sprintf("Deadline uses open-ended language (%q).", textutil.Truncate(deadline, 60)))
	case deadline != "" && parse.HasDatePattern(deadline):
		return bucket(model.BucketKnown, fmt.Sprintf("Deadline is a concrete date (%s).", textutil.Truncate(deadline, 60)))
	case deadline != "":
		return bucket(model.BucketPartial, fmt.Sprintf("Deadline text %q is not a recognisable date.", textutil.Truncate(deadline, 60)))
	case parse.HasDatePattern(decision):
		return bucket(model.BucketPartial, "Only a decision date is published; the submission deadline is missing.")
	default:
		return bucket(model.BucketPartial, "Decision timing is described but no deadline is published.")
	}
}

func winnerSignal(g model.GrantRecord) model.Bucket {
	identified := 0
	for _, r := range g.Recipients() {
		if r.Identifying() {
			identified++
		}
	}
	if identified > 0 {
		return bucket(model.BucketKnown, fmt.Sprintf("%d past recipient record(s) describe who won.", identified))
	}
	if g.Competition() != nil {
		return bucket(model.BucketPartial, "Only aggregate competition figures are available; no recipient profiles.")
	}
	return bucket(model.BucketUnknown, "No information about past recipients.")
}

func missionSpecificity(g model.GrantRecord) model.Bucket {
	text := textutil.PlainText(textutil.Join(g.Mission, g.PreferredApplicants, g.Eligibility))
	specific := lexicon.SpecificMission.Matches(text)
	generic := lexicon.GenericMission.Count(text)
	examples := lexicon.Examples.Any(text)

	switch {
	case len(specific) >= 2 && (examples || len(text) > 100):
		return bucket(model.BucketKnown, fmt.Sprintf("Mission names specific focus areas (%s).", strings.Join(firstN(specific, 3), ", ")))
	case len(specific) == 0 && generic > 0:
		return bucket(model.BucketUnknown, "Mission language is generic (innovation, impact) with no specific focus.")
	case len(specific) >= 1:
		return bucket(model.BucketPartial, fmt.Sprintf("Mission has some focus (%s) but few specifics.", strings.Join(firstN(specific, 3), ", ")))
	case len(text) > 50:
		return bucket(model.BucketPartial, "Mission is described but names no specific focus area.")
	default:
		return bucket(model.BucketUnknown, "Mission, eligibility and preferred applicants are empty or too short to judge.")
	}
}

func applicationBurden(g model.GrantRecord) model.Bucket {
	var reqs []string
	for _, r := range g.ApplicationRequirements {
		if r = textutil.PlainText(r); r != "" {
			reqs = append(reqs, r)
		}
	}
	if len(reqs) == 0 {
		return bucket(model.BucketUnknown, "No application requirements are listed.")
	}

	text := strings.Join(reqs, "; ")
	var found []string
	if lexicon.LengthLimit.Any(text) || parse.EstimatePages(text) > 0 {
		found = append(found, "length limits")
	}
	if lexicon.MultiStep.Any(text) {
		found = append(found, "process stages")
	}
	if lexicon.RequiredDocument.Any(text) {
		found = append(found, "required documents")
	}

	if len(found) >= 2 {
		return bucket(model.BucketKnown, fmt.Sprintf("Requirements describe %s.", strings.Join(found, " and ")))
	}
	if len(found) == 1 {
		return bucket(model.BucketPartial, fmt.Sprintf("Requirements only describe %s.", found[0]))
	}
	return bucket(model.BucketPartial, fmt.Sprintf("%d requirement(s) listed without length, stage or document detail.", len(reqs)))
}

func awardStructureClarity(g model.GrantRecord) model.Bucket {
	amount := textutil.PlainText(g.AwardAmount)
	structure := textutil.PlainText(g.AwardStructure)

	if amount == "" && structure == "" {
		return bucket(model.BucketUnknown, "Neither the award amount nor its structure is published.")
	}
	if amount != "" && parse.IsVagueAmount(amount) {
		return bucket(model.BucketUnknown, fmt.Sprintf("Award amount is non-committal (%q).", textutil.Truncate(amount, 60)))
	}

	a, ok := parse.ParseAmount(amount)
	concrete := ok && a.Concrete() && !a.Range
	switch {
	case concrete && structure != "":
		return bucket(model.BucketKnown, "A concrete amount and the award structure are both published.")
	case ok && a.Range:
		return bucket(model.BucketPartial, "Award is published as a range rather than a fixed amount.")
	case structure == "":
		return bucket(model.BucketPartial, "Award amount is published but its structure is not.")
	case amount == "":
		return bucket(model.BucketPartial, "Award structure is described but no amount is published.")
	default:
		return bucket(model.BucketPartial, "Award amount lacks a clear figure or currency.")
	}
}

// DecisionReadiness labels how ready a grant is to evaluate.
func DecisionReadiness(states map[model.BucketName]model.BucketState) string {
	unknown := countUnknown(states)
	if stateOf(states, model.BucketTimelineClarity) == model.BucketUnknown ||
		stateOf(states, model.BucketAwardStructureClarity) == model.BucketUnknown ||
		unknown >= 3 {
		return model.ReadinessLowConfidence
	}
	if unknown >= 1 {
		return model.ReadinessPartial
	}
	return model.ReadinessReady
}

// StatusOfKnowledge labels how much of the grant is disclosed. It currently
// uses the same thresholds as DecisionReadiness but is kept separate.
func StatusOfKnowledge(states map[model.BucketName]model.BucketState) string {
	unknown := countUnknown(states)
	if stateOf(states, model.BucketTimelineClarity) == model.BucketUnknown ||
		stateOf(states, model.BucketAwardStructureClarity) == model.BucketUnknown ||
		unknown >= 3 {
		return model.KnowledgeStructurallyVague
	}
	if unknown >= 1 {
		return model.KnowledgePartiallyOpaque
	}
	return model.KnowledgeWellSpecified
}

func stateOf(states map[model.BucketName]model.BucketState, name model.BucketName) model.BucketState {
	if s, ok := states[name]; ok {
		return s
	}
	return model.BucketUnknown
}

func countUnknown(states map[model.BucketName]model.BucketState) int {
	n := 0
	for _, name := range model.BucketNames {
		if stateOf(states, name) == model.BucketUnknown {
			n++
		}
	}
	return n
}

func bucket(state model.BucketState, explanation string) model.Bucket {
	return model.Bucket{State: state, Explanation: explanation}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
