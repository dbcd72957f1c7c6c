package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectCurrency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in           string
		want         string
		wantExplicit bool
	}{
		{"$50,000", "USD", true},
		{"£20,000 per year", "GBP", true},
		{"EUR 15000", "EUR", true},
		{"KES 500,000", "KES", true},
		{"C$10,000", "CAD", true},
		{"₦2,000,000", "NGN", true},
		{"50000", "USD", false},
		{"a stipend", "USD", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, explicit := DetectCurrency(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantExplicit, explicit)
		})
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		in       string
		wantOK   bool
		wantMin  float64
		wantMax  float64
		wantCur  string
		concrete bool
		rng      bool
	}{
		{"single dollar", "$50,000", true, 50000, 50000, "USD", true, false},
		{"range", "$10,000 - $25,000", true, 10000, 25000, "USD", true, true},
		{"up to", "Up to £30,000", true, 0, 30000, "GBP", true, false},
		{"multiplier", "USD 1.5 million", true, 1500000, 1500000, "USD", true, false},
		{"k suffix", "$20k", true, 20000, 20000, "USD", true, false},
		{"year ignored", "Awards announced in 2026", false, 0, 0, "USD", false, false},
		{"duration ignored", "$10,000 - $50,000 for 2 years", true, 10000, 50000, "USD", true, true},
		{"bare number", "50000", true, 50000, 50000, "USD", false, false},
		{"vague", "Varies", false, 0, 0, "USD", false, false},
		{"empty", "", false, 0, 0, "", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ParseAmount(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.InDelta(t, tt.wantMin, got.Min, 0.01)
			assert.InDelta(t, tt.wantMax, got.Max, 0.01)
			assert.Equal(t, tt.wantCur, got.Currency)
			assert.Equal(t, tt.concrete, got.Concrete())
			assert.Equal(t, tt.rng, got.Range)
		})
	}
}

func TestIsVagueAmount(t *testing.T) {
	t.Parallel()
	assert.True(t, IsVagueAmount("Amount varies by project"))
	assert.True(t, IsVagueAmount("Contact us for details"))
	assert.True(t, IsVagueAmount("TBD"))
	assert.False(t, IsVagueAmount("$5,000"))
}

func TestParseMinorUnits(t *testing.T) {
	t.Parallel()
	cents, cur, ok := ParseMinorUnits("We need about €12,500")
	require.True(t, ok)
	assert.Equal(t, int64(1_250_000), cents)
	assert.Equal(t, "EUR", cur)
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	want := time.Date(2027, time.March, 15, 23, 59, 59, 0, time.UTC)
	tests := []struct {
		name string
		in   string
	}{
		{"iso", "2027-03-15"},
		{"long month", "March 15, 2027"},
		{"ordinal", "March 15th, 2027"},
		{"day month", "15 March 2027"},
		{"us slash", "03/15/2027"},
		{"prefixed", "Deadline: March 15, 2027"},
		{"embedded", "Applications close on 15 March 2027 at noon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseDate("rolling basis")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestHasDatePattern(t *testing.T) {
	t.Parallel()
	assert.True(t, HasDatePattern("2027-01-01"))
	assert.True(t, HasDatePattern("1/5/2027"))
	assert.True(t, HasDatePattern("Closes March 3"))
	assert.True(t, HasDatePattern("3rd March"))
	assert.False(t, HasDatePattern("rolling"))
	assert.False(t, HasDatePattern("Spring cycle"))
}

func TestIsVagueTimeline(t *testing.T) {
	t.Parallel()
	assert.True(t, IsVagueTimeline("Rolling admissions"))
	assert.True(t, IsVagueTimeline("ongoing"))
	assert.False(t, IsVagueTimeline("2027-01-01"))
}

func TestHasDuration(t *testing.T) {
	t.Parallel()
	assert.True(t, HasDuration("Funding for 2 years"))
	assert.True(t, HasDuration("a 12-month fellowship"))
	assert.True(t, HasDuration("paid annually"))
	assert.True(t, HasDuration("one-year grant"))
	assert.False(t, HasDuration("Unrestricted general support"))
}

func TestEstimatePages(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, EstimatePages("Budget and CV"))
	assert.Equal(t, 5, EstimatePages("5-page proposal"))
	assert.Equal(t, 10, EstimatePages("Narrative of 8 to 10 pages"))
	assert.Equal(t, 3, EstimatePages("Essay of 1,500 words"))
}

func TestCountLetters(t *testing.T) {
	t.Parallel()

	n, ok := CountLetters("Two letters of recommendation")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = CountLetters("3 professional references")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = CountLetters("Letters of support are welcome")
	assert.False(t, ok)
}
