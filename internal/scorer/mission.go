package scorer

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/sells-group/grant-verdict/internal/lexicon"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/textutil"
)

// GapThreshold is the mission score at or below which the explanation
// describes the gap between grant and project.
const GapThreshold = 2

// Jaccard overlap at which the lexical base reaches its ceiling.
const (
	jaccardCeiling = 0.35
	baseCeiling    = 7.0
)

var conservationLike = map[string]bool{"conservation": true, "environmental": true}

// MissionInput is the text the mission rubric compares.
type MissionInput struct {
	GrantText   string
	ProjectText string
}

func missionInput(g model.GrantRecord, p model.ProjectProfile) MissionInput {
	return MissionInput{
		GrantText:   textutil.PlainText(textutil.Join(g.Mission, g.Description)),
		ProjectText: textutil.PlainText(textutil.Join(p.Name, p.Description)),
	}
}

func scoreMission(g model.GrantRecord, p model.ProjectProfile) model.ScoringResult {
	in := missionInput(g, p)
	jac := textutil.Jaccard(
		textutil.Tokens(in.GrantText, lexicon.StopWords),
		textutil.Tokens(in.ProjectText, lexicon.StopWords),
	)
	base := math.Min(baseCeiling, jac/jaccardCeiling*baseCeiling)

	grantDomains := domainSet(in.GrantText)
	projectDomains := domainSet(in.ProjectText)

	var adjustments []string
	adj := 0.0
	add := func(delta float64, why string) {
		adj += delta
		adjustments = append(adjustments, fmt.Sprintf("%+.0f %s", delta, why))
	}

	mismatch := fundamentalMismatch(grantDomains, projectDomains)
	if !mismatch {
		shared := intersect(grantDomains, projectDomains)
		switch {
		case len(shared) > 0:
			add(2, "same domain ("+strings.Join(shared, ", ")+")")
		case projectDomains["tech"] && (grantDomains["conservation"] || grantDomains["environmental"]):
			add(1, "technical capability complements the grant's focus")
		case len(grantDomains) > 0 && len(projectDomains) > 0:
			add(-2, "cross-domain mismatch")
		}

		eligibility := textutil.PlainText(g.Eligibility)
		if country := strings.TrimSpace(p.OrganizationCountry); country != "" && eligibility != "" {
			switch {
			case containsTerm(eligibility, country):
				add(1, "organisation country named in eligibility")
			case lexicon.GeographicRestriction.Any(eligibility):
				add(-2, "eligibility is geographically restricted elsewhere")
			}
		}

		if sectors := p.Sectors(); len(sectors) > 0 {
			grantAll := textutil.PlainText(textutil.Join(g.Mission, g.Description, g.Eligibility, g.PreferredApplicants))
			if matched := matchSectors(sectors, grantAll); len(matched) > 0 {
				add(1, "sector overlap ("+strings.Join(matched, ", ")+")")
			} else {
				add(-1, "no sector overlap")
			}
		}
	}

	score := 0
	if !mismatch {
		score = model.ClampScore(int(math.Round(base + adj)))
	}

	details := map[string]any{
		"jaccard":         math.Round(jac*1000) / 1000,
		"lexical_base":    math.Round(base*10) / 10,
		"grant_domains":   sortedKeys(grantDomains),
		"project_domains": sortedKeys(projectDomains),
	}
	if len(adjustments) > 0 {
		details["adjustments"] = adjustments
	}

	var explanation string
	switch {
	case mismatch:
		details["fundamental_mismatch"] = true
		explanation = fmt.Sprintf("Fundamental mismatch: the project is %s work while the grant funds %s.",
			strings.Join(sortedKeys(projectDomains), "/"), strings.Join(sortedKeys(grantDomains), "/"))
	case score <= GapThreshold:
		details["templated_gap"] = true
		explanation = GapTemplate(in, score)
	default:
		explanation = fmt.Sprintf("Mission alignment %d/10 from %.0f%% vocabulary overlap", score, jac*100)
		if len(adjustments) > 0 {
			explanation += "; " + strings.Join(adjustments, "; ")
		}
		explanation += "."
	}

	return model.ScoringResult{
		Dimension:   model.DimMissionAlignment,
		Score:       model.IntPtr(score),
		Confidence:  missionConfidence(in),
		Source:      model.SourceRuleBased,
		Explanation: explanation,
		Details:     details,
	}
}

// GapTemplate is the deterministic low-alignment explanation. It quotes
// both sides so the reader can judge the gap.
func GapTemplate(in MissionInput, score int) string {
	grant := textutil.Truncate(in.GrantText, 120)
	project := textutil.Truncate(in.ProjectText, 120)
	if grant == "" {
		grant = "(no mission published)"
	}
	if project == "" {
		project = "(no project description)"
	}
	return fmt.Sprintf("Low mission alignment (%d/10). The grant describes %q; the project describes %q. Little shared focus was found.",
		score, grant, project)
}

func missionConfidence(in MissionInput) model.Confidence {
	switch {
	case len(in.GrantText) > 200 && len(in.ProjectText) > 100:
		return model.ConfidenceMedium
	case in.GrantText == "" || in.ProjectText == "":
		return model.ConfidenceUnknown
	default:
		return model.ConfidenceLow
	}
}

// fundamentalMismatch flags an arts project against a conservation-only
// grant and the reverse.
func fundamentalMismatch(grant, project map[string]bool) bool {
	return artVersusConservation(project, grant) || artVersusConservation(grant, project)
}

func artVersusConservation(artSide, otherSide map[string]bool) bool {
	if !artSide["art"] || artSide["tech"] || artSide["conservation"] || artSide["environmental"] {
		return false
	}
	if otherSide["art"] || len(otherSide) == 0 {
		return false
	}
	for d := range otherSide {
		if !conservationLike[d] {
			return false
		}
	}
	return true
}

func domainSet(text string) map[string]bool {
	out := make(map[string]bool)
	for _, hit := range lexicon.DomainHits(text, lexicon.MissionDomains) {
		out[hit.Name] = true
	}
	return out
}

func intersect(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// matchSectors returns the sectors named in text as whole words or phrases.
func matchSectors(sectors []string, text string) []string {
	norm := textutil.Normalize(text)
	var out []string
	for _, s := range sectors {
		if containsTerm(norm, textutil.Normalize(s)) {
			out = append(out, s)
		}
	}
	return out
}

// containsTerm reports whether term appears in text on word boundaries, so
// "us" does not match "must" and "art" does not match "startups".
func containsTerm(text, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	return lexicon.NewTermSet("term", term).Any(text)
}
