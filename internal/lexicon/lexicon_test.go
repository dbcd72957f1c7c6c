package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTermSetMatches(t *testing.T) {
	tests := []struct {
		name string
		set  *TermSet
		text string
		want []string
	}{
		{"word boundary", DomainArt, "A particular smart startup", nil},
		{"whole word", DomainArt, "Community art and music.", []string{"art", "music"}},
		{"case insensitive", VagueTimeline, "Applications are ROLLING", []string{"rolling"}},
		{"phrase", VagueTimeline, "Open until filled.", []string{"open until filled", "until filled"}},
		{"punctuation in term", ScopeNational, "Open to U.S. citizens", []string{"citizens", "u.s."}},
		{"blank text", DomainArt, "   ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.set.Matches(tt.text))
		})
	}
}

func TestTermSetNilSafe(t *testing.T) {
	var set *TermSet
	assert.Nil(t, set.Matches("anything"))
	assert.False(t, set.Any("anything"))
	assert.Zero(t, set.Count("anything"))
}

func TestTermSetAnyAndCount(t *testing.T) {
	text := "Submit a CV, a budget and two letters of support."
	assert.True(t, RequiredDocument.Any(text))
	assert.Equal(t, 3, RequiredDocument.Count(text), "cv, budget, letters")
	assert.True(t, RecommendationLetter.Any(text))
	assert.False(t, Fellowship.Any(text))
}

func TestDomainHits(t *testing.T) {
	hits := DomainHits("Marine biodiversity conservation using drone and sensor data", MissionDomains)
	if assert.Len(t, hits, 2) {
		assert.Equal(t, DomainHit{Name: "conservation", Count: 3}, hits[0])
		assert.Equal(t, DomainHit{Name: "tech", Count: 3}, hits[1])
	}

	assert.Empty(t, DomainHits("", MissionDomains))
}

func TestStopWordsAreLowercase(t *testing.T) {
	for w := range StopWords {
		assert.Regexp(t, `^[a-z]+$`, w)
	}
}
