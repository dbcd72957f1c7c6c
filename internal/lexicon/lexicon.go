// Package lexicon holds the named keyword tables used by the readiness
// classifier and the rubric scorer. Tables are versioned so a verdict can be
// traced back to the heuristics that produced it.
package lexicon

import (
	"regexp"
	"sort"
	"strings"
	"sync"
)

// Version identifies the current revision of every table in this package.
const Version = "2026.10.1"

// TermSet is a named list of lowercase terms. Multi-word terms match as
// phrases; single words match on word boundaries.
type TermSet struct {
	Name  string
	Terms []string

	once sync.Once
	res  []*regexp.Regexp
}

// NewTermSet builds a TermSet.
func NewTermSet(name string, terms ...string) *TermSet {
	return &TermSet{Name: name, Terms: terms}
}

func (t *TermSet) compile() {
	t.once.Do(func() {
		t.res = make([]*regexp.Regexp, len(t.Terms))
		for i, term := range t.Terms {
			t.res[i] = regexp.MustCompile(`(?i)(^|[^\p{L}\p{N}])` + regexp.QuoteMeta(term) + `($|[^\p{L}\p{N}])`)
		}
	})
}

// Matches returns the terms found in text, in table order.
func (t *TermSet) Matches(text string) []string {
	if t == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	t.compile()
	var out []string
	for i, re := range t.res {
		if re.MatchString(text) {
			out = append(out, t.Terms[i])
		}
	}
	return out
}

// Count returns how many distinct terms appear in text.
func (t *TermSet) Count(text string) int {
	return len(t.Matches(text))
}

// Any reports whether at least one term appears in text.
func (t *TermSet) Any(text string) bool {
	if t == nil || strings.TrimSpace(text) == "" {
		return false
	}
	t.compile()
	for _, re := range t.res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Domain is a named subject area with its indicator terms.
type Domain struct {
	Name  string
	Terms *TermSet
}

// DomainHits counts indicator matches per domain and returns the domains with
// at least one hit, strongest first (ties by name).
func DomainHits(text string, domains []Domain) []DomainHit {
	var hits []DomainHit
	for _, d := range domains {
		if n := d.Terms.Count(text); n > 0 {
			hits = append(hits, DomainHit{Name: d.Name, Count: n})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Count != hits[j].Count {
			return hits[i].Count > hits[j].Count
		}
		return hits[i].Name < hits[j].Name
	})
	return hits
}

// DomainHit is one detected domain with its hit count.
type DomainHit struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
