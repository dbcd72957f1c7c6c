package readiness

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/grant-verdict/internal/lexicon"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/textutil"
)

var eligibilityClauseRe = regexp.MustCompile(`(?i)(?:open to (?:applicants|organi[sz]ations|individuals) (?:in|from|based in)|applicants must be (?:based|located|resident) in|must be (?:based|located|registered) in|restricted to (?:applicants|organi[sz]ations) (?:in|from))\s+([^.;\n]+)`)

var multiPlaceRe = regexp.MustCompile(`(?i),|\band\b|\bor\b`)

// InferScope infers the geographic reach of a grant. An explicit
// eligibility clause wins; otherwise keyword counts decide, preferring
// International over National over Local on ties.
func InferScope(g model.GrantRecord) (model.Scope, string) {
	eligibility := textutil.PlainText(g.Eligibility)
	if m := eligibilityClauseRe.FindStringSubmatch(eligibility); m != nil {
		place := strings.TrimSpace(m[1])
		return scopeOfPlace(place), fmt.Sprintf("Eligibility clause restricts applicants to %q.", textutil.Truncate(place, 80))
	}

	text := textutil.PlainText(textutil.Join(g.Description, g.Mission, g.Eligibility))
	counts := []struct {
		scope model.Scope
		n     int
	}{
		{model.ScopeInternational, lexicon.ScopeInternational.Count(text)},
		{model.ScopeNational, lexicon.ScopeNational.Count(text)},
		{model.ScopeLocal, lexicon.ScopeLocal.Count(text)},
	}

	best := counts[0]
	for _, c := range counts[1:] {
		if c.n > best.n {
			best = c
		}
	}
	if best.n == 0 {
		return model.ScopeUnclear, "No geographic language found."
	}
	return best.scope, fmt.Sprintf("%d %s keyword match(es).", best.n, strings.ToLower(string(best.scope)))
}

func scopeOfPlace(place string) model.Scope {
	switch {
	case lexicon.ScopeInternational.Any(place):
		return model.ScopeInternational
	case lexicon.ScopeLocal.Any(place):
		return model.ScopeLocal
	case multiPlaceRe.MatchString(place):
		return model.ScopeInternational
	default:
		return model.ScopeNational
	}
}
