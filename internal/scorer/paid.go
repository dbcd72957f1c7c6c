package scorer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sells-group/grant-verdict/internal/config"
	"github.com/sells-group/grant-verdict/internal/currency"
	"github.com/sells-group/grant-verdict/internal/lexicon"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/parse"
	"github.com/sells-group/grant-verdict/internal/textutil"
)

// Funding fit statuses and severities.
const (
	FundingAligned      = "ALIGNED"
	FundingPartial      = "PARTIAL"
	FundingInsufficient = "INSUFFICIENT"
	FundingMismatched   = "MISMATCHED"
	FundingUncertain    = "UNCERTAIN"

	SeverityNone     = "NONE"
	SeverityModerate = "MODERATE"
	SeverityHigh     = "HIGH"
	SeverityCritical = "CRITICAL"
)

// Effort/reward statuses.
const (
	EffortWorthIt = "WORTH_IT"
	EffortMaybe   = "MAYBE"
	EffortSkip    = "SKIP"
)

// Opportunity cost levels.
const (
	CostHigh     = "HIGH"
	CostModerate = "MODERATE"
	CostLow      = "LOW"
)

// NonCashFellowshipMinor is the value assumed for a non-cash fellowship,
// in USD minor units.
const NonCashFellowshipMinor = 1_500_000

// Value-per-hour thresholds in USD minor units per hour.
const (
	worthItPerHour = 50_000
	maybePerHour   = 20_000
)

// PaidResult holds the project-fit sub-scores plus the grant-quality
// results they depend on.
type PaidResult struct {
	Free FreeResult

	Mission      model.ScoringResult
	Profile      model.ScoringResult
	Funding      model.ScoringResult
	EffortReward model.ScoringResult

	FundingStatus   string
	EffortStatus    string
	OpportunityCost string
	// SuccessRange is nil when no acceptance rate is known.
	SuccessRange *string
	MissionText  MissionInput
	Composite    float64
}

// Results returns the four paid-tier sub-scores keyed by dimension.
func (r PaidResult) Results() map[string]model.ScoringResult {
	return map[string]model.ScoringResult{
		model.DimMissionAlignment: r.Mission,
		model.DimProfileMatch:     r.Profile,
		model.DimFundingFit:       r.Funding,
		model.DimEffortReward:     r.EffortReward,
	}
}

// Scorer runs the rubric with a fixed config and exchange-rate source. It
// holds no mutable state and is safe for concurrent use.
type Scorer struct {
	cfg   config.EngineConfig
	rates currency.ExchangeRateProvider
}

// New creates a Scorer.
func New(cfg config.EngineConfig, rates currency.ExchangeRateProvider) *Scorer {
	return &Scorer{cfg: cfg, rates: rates}
}

// Config returns the engine config the scorer was built with.
func (s *Scorer) Config() config.EngineConfig {
	return s.cfg
}

// Free runs the grant-quality rubric.
func (s *Scorer) Free(g model.GrantRecord, now time.Time) FreeResult {
	return ScoreFree(g, now, s.cfg)
}

// Paid runs the project-fit rubric.
func (s *Scorer) Paid(g model.GrantRecord, p model.ProjectProfile, now time.Time) PaidResult {
	return ScorePaid(g, p, now, s.cfg, s.rates)
}

// ScorePaid runs the project-fit sub-rubrics. The grant-quality results are
// computed too because effort/reward and the rule evaluator use them.
func ScorePaid(g model.GrantRecord, p model.ProjectProfile, now time.Time, cfg config.EngineConfig, rates currency.ExchangeRateProvider) PaidResult {
	free := ScoreFree(g, now, cfg)

	r := PaidResult{
		Free:        free,
		Mission:     scoreMission(g, p),
		Profile:     scoreProfile(g, p, cfg.MinRecipients),
		MissionText: missionInput(g, p),
	}

	fit := assessFunding(g, p, rates)
	r.Funding = fit.result()
	r.FundingStatus = fit.Status

	missionScore := r.Mission.ScoreOr(0)
	profileScore := r.Profile.ScoreOr(5)
	effort := assessEffort(g, fit, free.Access, missionScore, profileScore, rates)
	r.EffortReward = effort.result()
	r.EffortStatus = effort.Status
	r.OpportunityCost = effort.OpportunityCost

	r.SuccessRange = successRange(g, missionScore, r.Profile.Score)
	r.Composite = PaidComposite(missionScore, r.Profile.Score, statusScore(fit.Status), statusScore(effort.Status), cfg.PaidWeights)
	return r
}

// PaidComposite weights the project-fit scores. A null profile score counts
// as a neutral 5.
func PaidComposite(mission int, profile *int, funding, effort int, w config.PaidWeights) float64 {
	sum := PaidWeightSum(w)
	if sum <= 0 {
		return 0
	}
	p := 5
	if profile != nil {
		p = *profile
	}
	total := float64(mission)*w.Mission + float64(p)*w.Profile +
		float64(funding)*w.Funding + float64(effort)*w.EffortReward
	return model.ClampScoreFloat(total / sum)
}

// statusScore maps funding and effort statuses onto 10/6/2.
func statusScore(status string) int {
	switch status {
	case FundingAligned, EffortWorthIt:
		return 10
	case FundingPartial, EffortMaybe:
		return 6
	default:
		return 2
	}
}

// --- profile match ---

func scoreProfile(g model.GrantRecord, p model.ProjectProfile, minRecipients int) model.ScoringResult {
	recipients := g.Recipients()
	n := len(recipients)

	stage := textutil.Normalize(p.CareerStage())
	orgType := textutil.Normalize(p.OrganizationType)
	country := textutil.Normalize(p.OrganizationCountry)

	var stageSeen, stageHit, orgSeen, orgHit, countryHit int
	for _, rec := range recipients {
		if s := textutil.Normalize(rec.CareerStage); s != "" && stage != "" {
			stageSeen++
			if s == stage {
				stageHit++
			}
		}
		if o := textutil.Normalize(rec.OrganizationType); o != "" && orgType != "" {
			orgSeen++
			if o == orgType || strings.Contains(o, orgType) || strings.Contains(orgType, o) {
				orgHit++
			}
		}
		if c := textutil.Normalize(rec.Country); c != "" && c == country {
			countryHit++
		}
	}

	var similarities, differences []string
	note := func(label string, hit, seen int) {
		if seen == 0 {
			return
		}
		msg := fmt.Sprintf("%d of %d past recipients share your %s", hit, seen, label)
		if hit > 0 {
			similarities = append(similarities, msg)
		} else {
			differences = append(differences, fmt.Sprintf("none of %d past recipients share your %s", seen, label))
		}
	}
	note("career stage", stageHit, stageSeen)
	note("organisation type", orgHit, orgSeen)
	if country != "" && n > 0 {
		note("country", countryHit, n)
	}

	details := map[string]any{"recipients": n}
	if len(similarities) > 0 {
		details["similarities"] = similarities
	}
	if len(differences) > 0 {
		details["differences"] = differences
	}

	res := model.ScoringResult{
		Dimension: model.DimProfileMatch,
		Source:    model.SourceRuleBased,
		Details:   details,
	}

	if n < minRecipients {
		res.Confidence = model.ConfidenceUnknown
		res.Reason = model.ReasonInsufficientData
		res.Explanation = fmt.Sprintf("Only %d recipient record(s); at least %d are needed to score profile match.", n, minRecipients)
		if partial := append(append([]string{}, similarities...), differences...); len(partial) > 0 {
			res.Explanation += " Partial signal: " + strings.Join(partial, "; ") + "."
		}
		return res
	}

	score := 5
	var adjustments []string
	if stageSeen > 0 {
		rate := float64(stageHit) / float64(stageSeen)
		if rate > 0.5 {
			score += 2
			adjustments = append(adjustments, fmt.Sprintf("+2 career stage match %.0f%%", rate*100))
		} else {
			score--
			adjustments = append(adjustments, fmt.Sprintf("-1 career stage match %.0f%%", rate*100))
		}
	}
	if orgSeen > 0 {
		rate := float64(orgHit) / float64(orgSeen)
		if rate > 0.4 {
			score += 2
			adjustments = append(adjustments, fmt.Sprintf("+2 organisation type match %.0f%%", rate*100))
		}
	}
	if countryHit > 0 {
		score++
		adjustments = append(adjustments, "+1 country match")
	}

	score = model.ClampScore(score)
	res.Score = model.IntPtr(score)
	switch {
	case n > 30:
		res.Confidence = model.ConfidenceHigh
	case n > 15:
		res.Confidence = model.ConfidenceMedium
	default:
		res.Confidence = model.ConfidenceLow
	}
	res.Explanation = fmt.Sprintf("Profile match %d/10 against %d past recipients", score, n)
	if len(adjustments) > 0 {
		res.Explanation += " (" + strings.Join(adjustments, ", ") + ")"
	}
	res.Explanation += "."
	return res
}

// --- funding fit ---

// fundingAssessment amounts are in major units. Converted is the grant
// value expressed in the need currency.
type fundingAssessment struct {
	Status        string
	Severity      string
	PercentMet    float64
	GrantValue    float64
	GrantCurrency string
	NeedValue     float64
	NeedCurrency  string
	Converted     float64
	NonCash       bool
	Note          string
}

func assessFunding(g model.GrantRecord, p model.ProjectProfile, rates currency.ExchangeRateProvider) fundingAssessment {
	award := textutil.PlainText(g.AwardAmount)
	awardTerms := textutil.Join(award, textutil.PlainText(g.AwardStructure))
	amount, parsed := parse.ParseAmount(award)
	usable := parsed && !parse.IsVagueAmount(award) && amount.Value() > 0

	f := fundingAssessment{GrantCurrency: amount.Currency}
	f.NonCash = lexicon.NonCashAward.Any(awardTerms) && !lexicon.CashAward.Any(awardTerms) && !(usable && amount.Explicit)

	needText := textutil.Join(p.Description, p.FundingNeed, p.MetadataString("funding_use"))
	if f.NonCash && lexicon.CashDependentNeed.Any(needText) {
		f.Status, f.Severity = FundingMismatched, SeverityCritical
		f.Note = "The award is non-cash but the project needs cash for " + strings.Join(lexicon.CashDependentNeed.Matches(needText), ", ") + "."
		return f
	}

	f.NeedValue, f.NeedCurrency = projectNeed(p)
	switch {
	case !usable:
		f.Status = FundingUncertain
		f.Note = "Award amount is missing or unparseable."
		return f
	case f.NeedValue <= 0:
		f.Status = FundingUncertain
		f.Note = "Project funding need is not stated."
		return f
	}
	f.GrantValue = amount.Value()

	converted, ok := currency.Convert(rates, f.GrantValue, f.GrantCurrency, f.NeedCurrency)
	if !ok {
		f.Status = FundingUncertain
		f.Note = fmt.Sprintf("No exchange rate from %s to %s.", f.GrantCurrency, f.NeedCurrency)
		return f
	}
	f.Converted = converted
	f.PercentMet = converted / f.NeedValue * 100

	switch {
	case f.PercentMet >= 80:
		f.Status, f.Severity = FundingAligned, SeverityNone
	case f.PercentMet >= 40:
		f.Status, f.Severity = FundingPartial, SeverityModerate
	default:
		f.Status, f.Severity = FundingInsufficient, SeverityHigh
	}
	f.Note = fmt.Sprintf("Award of %s %.0f covers %.0f%% of the %s %.0f need.",
		f.GrantCurrency, f.GrantValue, f.PercentMet, f.NeedCurrency, f.NeedValue)
	return f
}

// projectNeed returns the funding need in major units. The structured
// minor-unit amount wins over the legacy free-text field.
func projectNeed(p model.ProjectProfile) (float64, string) {
	code := parse.DefaultCurrency
	if c, err := currency.ValidateCode(p.FundingNeedCurrency); err == nil {
		code = c
	}
	if p.FundingNeedAmount > 0 {
		return float64(p.FundingNeedAmount) / 100, code
	}
	if minor, cur, ok := parse.ParseMinorUnits(p.FundingNeed); ok && minor > 0 {
		if _, explicit := parse.DetectCurrency(p.FundingNeed); explicit || p.FundingNeedCurrency == "" {
			code = cur
		}
		return float64(minor) / 100, code
	}
	return 0, code
}

func (f fundingAssessment) result() model.ScoringResult {
	conf := model.ConfidenceMedium
	switch {
	case f.Status == FundingUncertain:
		conf = model.ConfidenceUnknown
	case f.Status != FundingMismatched && f.GrantCurrency == f.NeedCurrency:
		conf = model.ConfidenceHigh
	}
	details := map[string]any{"status": f.Status}
	if f.Severity != "" {
		details["severity"] = f.Severity
	}
	if f.PercentMet > 0 {
		details["percentage_met"] = math.Round(f.PercentMet*10) / 10
		details["grant_amount_converted"] = math.Round(f.Converted*100) / 100
		details["need_currency"] = f.NeedCurrency
	}
	return model.ScoringResult{
		Dimension:   model.DimFundingFit,
		Score:       model.IntPtr(statusScore(f.Status)),
		Confidence:  conf,
		Source:      model.SourceRuleBased,
		Rating:      f.Status,
		Explanation: fmt.Sprintf("%s: %s", f.Status, f.Note),
		Details:     details,
	}
}

// --- effort / reward ---

type effortAssessment struct {
	Status          string
	Hours           int
	ValueMinor      float64
	FitMultiplier   float64
	ValuePerHour    float64
	OpportunityCost string
	Estimated       bool
}

func assessEffort(g model.GrantRecord, fit fundingAssessment, access AccessEstimate, mission, profile int, rates currency.ExchangeRateProvider) effortAssessment {
	e := effortAssessment{Hours: access.HoursHigh}
	if e.Hours <= 0 {
		e.Hours = 1
	}

	switch {
	case fit.GrantValue > 0:
		if usd, ok := currency.Convert(rates, fit.GrantValue, fit.GrantCurrency, currency.Base); ok {
			e.ValueMinor = usd * 100
		}
	default:
		award := textutil.PlainText(textutil.Join(g.AwardAmount, g.AwardStructure))
		if a, ok := parse.ParseAmount(g.AwardAmount); ok && !parse.IsVagueAmount(g.AwardAmount) {
			if usd, ok := currency.Convert(rates, a.Value(), a.Currency, currency.Base); ok {
				e.ValueMinor = usd * 100
			}
		} else if fit.NonCash || lexicon.Fellowship.Any(award) || lexicon.Fellowship.Any(g.Name) {
			e.ValueMinor = NonCashFellowshipMinor
			e.Estimated = true
		}
	}

	e.FitMultiplier = (float64(mission) + float64(profile)) / 2 / 10
	e.ValuePerHour = e.ValueMinor * e.FitMultiplier / float64(e.Hours)

	switch {
	case e.ValuePerHour > worthItPerHour && e.FitMultiplier > 0.6:
		e.Status = EffortWorthIt
	case e.ValuePerHour > maybePerHour || e.FitMultiplier > 0.7:
		e.Status = EffortMaybe
	default:
		e.Status = EffortSkip
	}

	switch {
	case e.Hours > 60:
		e.OpportunityCost = CostHigh
	case e.Hours > 40:
		e.OpportunityCost = CostModerate
	default:
		e.OpportunityCost = CostLow
	}
	return e
}

func (e effortAssessment) result() model.ScoringResult {
	conf := model.ConfidenceMedium
	if e.Estimated || e.ValueMinor == 0 {
		conf = model.ConfidenceLow
	}
	explanation := fmt.Sprintf("%s: about $%.0f of fit-adjusted value per hour over %d hours (fit %.2f); opportunity cost %s.",
		e.Status, e.ValuePerHour/100, e.Hours, e.FitMultiplier, e.OpportunityCost)
	if e.Estimated {
		explanation += " Award value is a non-cash estimate."
	}
	return model.ScoringResult{
		Dimension:   model.DimEffortReward,
		Score:       model.IntPtr(statusScore(e.Status)),
		Confidence:  conf,
		Source:      model.SourceEstimated,
		Rating:      e.Status,
		Explanation: explanation,
		Details: map[string]any{
			"estimated_hours":  e.Hours,
			"value_per_hour":   math.Round(e.ValuePerHour),
			"fit_multiplier":   math.Round(e.FitMultiplier*100) / 100,
			"opportunity_cost": e.OpportunityCost,
		},
	}
}

// --- success probability ---

func successRange(g model.GrantRecord, mission int, profile *int) *string {
	stats := g.Competition()
	if stats == nil || stats.AcceptanceRate == nil {
		return nil
	}
	rate := math.Max(0, math.Min(100, *stats.AcceptanceRate))

	adj := rate * missionFactor(mission)
	if profile != nil {
		adj *= profileFactor(*profile)
	}
	adj = math.Min(adj, 50)

	out := fmt.Sprintf("%.1f-%.1f%%", 0.8*adj, math.Min(1.2*adj, 60))
	return &out
}

func missionFactor(score int) float64 {
	switch {
	case score >= 8:
		return 1.3
	case score >= 6:
		return 1.1
	case score < 4:
		return 0.7
	default:
		return 1
	}
}

func profileFactor(score int) float64 {
	switch {
	case score >= 8:
		return 1.2
	case score >= 6:
		return 1.1
	case score < 5:
		return 0.8
	default:
		return 1
	}
}
