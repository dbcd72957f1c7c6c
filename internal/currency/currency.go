// Package currency converts award and need amounts between currencies.
package currency

import (
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	isocurrency "golang.org/x/text/currency"
)

// Base is the pivot currency for two-hop conversions.
const Base = "USD"

// ExchangeRateProvider returns how many units of `to` one unit of `from`
// buys. ok is false when the pair cannot be resolved.
type ExchangeRateProvider interface {
	Rate(from, to string) (rate float64, ok bool)
}

// Pair is one stored rate: 1 From = Rate To.
type Pair struct {
	From string  `json:"from"`
	To   string  `json:"to"`
	Rate float64 `json:"rate"`
}

// Key returns the config key for the pair, e.g. "GBP_USD".
func (p Pair) Key() string {
	return p.From + "_" + p.To
}

// DefaultRates is the built-in approximation table. Each pair is stored
// once; the inverse direction is derived so A→B→A is exact.
var DefaultRates = []Pair{
	{"GBP", "USD", 1.27},
	{"EUR", "USD", 1.08},
	{"CAD", "USD", 0.74},
	{"AUD", "USD", 0.66},
	{"CHF", "USD", 1.13},
	{"JPY", "USD", 0.0067},
	{"INR", "USD", 0.012},
	{"KES", "USD", 0.0077},
	{"NGN", "USD", 0.00065},
	{"GHS", "USD", 0.066},
	{"ZAR", "USD", 0.054},
	{"EUR", "GBP", 0.85},
}

// StaticTable is an in-memory ExchangeRateProvider. It is read-only after
// construction and safe for concurrent use.
type StaticTable struct {
	rates map[string]float64
	pairs []Pair
}

// NewStaticTable builds a table from DefaultRates plus overrides keyed like
// "GBP_USD". Codes are validated as ISO 4217.
func NewStaticTable(overrides map[string]float64) (*StaticTable, error) {
	t := &StaticTable{rates: make(map[string]float64)}
	for _, p := range DefaultRates {
		t.set(p)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		from, to, ok := strings.Cut(strings.ToUpper(strings.TrimSpace(k)), "_")
		if !ok {
			return nil, eris.Errorf("currency: rate key %q must look like FROM_TO", k)
		}
		rate := overrides[k]
		if rate <= 0 {
			return nil, eris.Errorf("currency: rate %s must be positive, got %v", k, rate)
		}
		var err error
		if from, err = ValidateCode(from); err != nil {
			return nil, err
		}
		if to, err = ValidateCode(to); err != nil {
			return nil, err
		}
		t.set(Pair{From: from, To: to, Rate: rate})
	}
	return t, nil
}

func (t *StaticTable) set(p Pair) {
	// An override for B_A replaces a stored A_B rather than shadowing it.
	inverse := p.To + "_" + p.From
	if _, ok := t.rates[inverse]; ok {
		delete(t.rates, inverse)
		for i, existing := range t.pairs {
			if existing.Key() == inverse {
				t.pairs = append(t.pairs[:i], t.pairs[i+1:]...)
				break
			}
		}
	}
	if _, ok := t.rates[p.Key()]; ok {
		for i, existing := range t.pairs {
			if existing.Key() == p.Key() {
				t.pairs[i] = p
			}
		}
	} else {
		t.pairs = append(t.pairs, p)
	}
	t.rates[p.Key()] = p.Rate
}

// Pairs returns the stored pairs sorted by key.
func (t *StaticTable) Pairs() []Pair {
	out := make([]Pair, len(t.pairs))
	copy(out, t.pairs)
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Rate resolves a pair directly, by inversion, or through Base.
func (t *StaticTable) Rate(from, to string) (float64, bool) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return 1, true
	}
	if r, ok := t.direct(from, to); ok {
		return r, true
	}
	if from == Base || to == Base {
		return 0, false
	}
	a, ok := t.direct(from, Base)
	if !ok {
		return 0, false
	}
	b, ok := t.direct(Base, to)
	if !ok {
		return 0, false
	}
	return a * b, true
}

func (t *StaticTable) direct(from, to string) (float64, bool) {
	if r, ok := t.rates[from+"_"+to]; ok {
		return r, true
	}
	if r, ok := t.rates[to+"_"+from]; ok && r > 0 {
		return 1 / r, true
	}
	return 0, false
}

// Convert converts amount between currencies using p.
func Convert(p ExchangeRateProvider, amount float64, from, to string) (float64, bool) {
	if p == nil {
		return 0, false
	}
	r, ok := p.Rate(from, to)
	if !ok {
		return 0, false
	}
	return amount * r, true
}

// ValidateCode normalises and validates an ISO 4217 currency code.
func ValidateCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	u, err := isocurrency.ParseISO(code)
	if err != nil {
		return "", eris.Wrapf(err, "currency: invalid code %q", code)
	}
	return u.String(), nil
}
