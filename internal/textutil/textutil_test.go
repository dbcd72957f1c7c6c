package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain prose", "  Open to   early-career\nresearchers ", "Open to early-career researchers"},
		{"html paragraphs", "<p>Deadline:</p><p>March 3, 2027</p>", "Deadline: March 3, 2027"},
		{"list items", "<ul><li>CV</li><li>Budget</li></ul>", "CV Budget"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Mission overlap is weak.", Sanitize(`<script>alert(1)</script><b>Mission overlap</b> is weak.`))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcdefg...", Truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", Truncate("abcdef", 2))
}

func TestTokensAndJaccard(t *testing.T) {
	t.Parallel()

	stop := map[string]struct{}{"with": {}}
	a := Tokens("Protect coral reefs with community divers", stop)
	b := Tokens("Coral reef monitoring by community divers", stop)

	assert.Contains(t, a, "coral")
	assert.NotContains(t, a, "with")
	assert.NotContains(t, b, "by")
	// shared: coral, community, divers; union: protect, coral, reefs, community, divers, reef, monitoring
	assert.InDelta(t, 3.0/7.0, Jaccard(a, b), 0.001)
	assert.InDelta(t, 0.0, Jaccard(nil, nil), 0.001)
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "early career", Normalize("Early-Career"))
	assert.Equal(t, "early career", Normalize(" early_career "))
}

func TestJoin(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a b", Join(" a ", "", "b"))
}

func TestSanitizeKeepsEntitiesReadable(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Arts & culture isn't a match", Sanitize("Arts &amp; culture isn't a match"))
}
