// Package parse extracts structured values (amounts, currencies, dates,
// durations, counts) from free-text grant fields. Nothing here fails loudly:
// callers get a zero value and a flag when the text cannot be read.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/grant-verdict/internal/lexicon"
)

// Amount is a monetary figure read from award text. Values are in major
// currency units.
type Amount struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency"`
	// Explicit is true when a currency symbol, code or word was present.
	Explicit bool `json:"explicit"`
	Range    bool `json:"range"`
	UpTo     bool `json:"up_to"`
}

// Value is the figure used for comparisons: the upper bound of a range.
func (a Amount) Value() float64 {
	return a.Max
}

// Concrete reports whether the amount is a disclosed number with a currency
// marker.
func (a Amount) Concrete() bool {
	return a.Max > 0 && a.Explicit
}

type currencyPattern struct {
	code string
	re   *regexp.Regexp
}

// Specific currencies are listed before USD because several share the "$"
// symbol.
var currencyPatterns = []currencyPattern{
	{"CAD", regexp.MustCompile(`(?i)c\$|\bcad\b|canadian dollars?`)},
	{"AUD", regexp.MustCompile(`(?i)a\$|\baud\b|australian dollars?`)},
	{"GBP", regexp.MustCompile(`(?i)£|\bgbp\b|\bpounds?\b|\bsterling\b`)},
	{"EUR", regexp.MustCompile(`(?i)€|\beur\b|\beuros?\b`)},
	{"KES", regexp.MustCompile(`(?i)\bkes\b|\bkshs?\b|kenyan shillings?`)},
	{"NGN", regexp.MustCompile(`(?i)₦|\bngn\b|\bnaira\b`)},
	{"GHS", regexp.MustCompile(`(?i)gh₵|\bghs\b|\bcedis?\b`)},
	{"ZAR", regexp.MustCompile(`(?i)\bzar\b|south african rand`)},
	{"INR", regexp.MustCompile(`(?i)₹|\binr\b|\brupees?\b`)},
	{"JPY", regexp.MustCompile(`(?i)¥|\bjpy\b|\byen\b`)},
	{"CHF", regexp.MustCompile(`(?i)\bchf\b|swiss francs?`)},
	{"USD", regexp.MustCompile(`(?i)\$|\busd\b|\bus dollars?\b|\bdollars?\b`)},
}

// DefaultCurrency is assumed when no marker is found.
const DefaultCurrency = "USD"

// DetectCurrency returns the ISO code named in text and whether a marker was
// actually found. Without a marker it falls back to USD.
func DetectCurrency(text string) (string, bool) {
	for _, p := range currencyPatterns {
		if p.re.MatchString(text) {
			return p.code, true
		}
	}
	return DefaultCurrency, false
}

var (
	numberRe = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*(billion|million|thousand|bn|mn|k|m)?\b`)
	upToRe   = regexp.MustCompile(`(?i)\b(up to|maximum|max\.?|not to exceed|no more than)\b`)
	rangeRe  = regexp.MustCompile(`(?i)\d\s*(?:-|–|to)\s*[^\d]{0,4}\d`)
	symbolRe = regexp.MustCompile(`[$£€₦₹¥₵]\s*$`)
)

// IsVagueAmount reports whether the award text uses non-committal language
// instead of a figure.
func IsVagueAmount(text string) bool {
	return lexicon.VagueAmount.Any(text)
}

// ParseAmount reads the monetary figures in text. ok is false when no
// usable number is found or the text is vague without any number.
func ParseAmount(text string) (Amount, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Amount{}, false
	}

	code, explicit := DetectCurrency(text)
	values := numbers(text)
	if len(values) == 0 {
		return Amount{Currency: code, Explicit: explicit}, false
	}

	a := Amount{Currency: code, Explicit: explicit}
	for _, v := range values {
		if v > a.Max {
			a.Max = v
		}
	}
	// Small numbers next to large ones are durations or counts.
	a.Min = a.Max
	kept := 0
	for _, v := range values {
		if a.Max >= 1000 && v < a.Max/1000 {
			continue
		}
		kept++
		if v < a.Min {
			a.Min = v
		}
	}
	a.Range = kept > 1 && a.Min != a.Max && rangeRe.MatchString(text)
	if !a.Range {
		a.Min = a.Max
	}
	if upToRe.MatchString(text) {
		a.UpTo = true
		if !a.Range {
			a.Min = 0
		}
	}
	return a, true
}

func numbers(text string) []float64 {
	var out []float64
	for _, loc := range numberRe.FindAllStringSubmatchIndex(text, -1) {
		raw := text[loc[2]:loc[3]]
		clean := strings.ReplaceAll(raw, ",", "")
		v, err := strconv.ParseFloat(clean, 64)
		if err != nil || v <= 0 {
			continue
		}

		mult := ""
		if loc[4] >= 0 {
			mult = strings.ToLower(text[loc[4]:loc[5]])
		}
		prefixed := symbolRe.MatchString(text[:loc[0]])
		if mult == "" && !prefixed && !strings.Contains(raw, ",") && isYear(v) {
			continue
		}
		switch mult {
		case "k", "thousand":
			v *= 1_000
		case "m", "mn", "million":
			v *= 1_000_000
		case "bn", "billion":
			v *= 1_000_000_000
		}
		out = append(out, v)
	}
	return out
}

func isYear(v float64) bool {
	return v == float64(int(v)) && v >= 1900 && v <= 2100
}

// ParseMinorUnits reads an amount from legacy free text and returns it in
// minor units (cents).
func ParseMinorUnits(text string) (int64, string, bool) {
	a, ok := ParseAmount(text)
	if !ok {
		return 0, a.Currency, false
	}
	return int64(a.Value()*100 + 0.5), a.Currency, true
}
