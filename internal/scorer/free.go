package scorer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sells-group/grant-verdict/internal/config"
	"github.com/sells-group/grant-verdict/internal/lexicon"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/parse"
	"github.com/sells-group/grant-verdict/internal/textutil"
)

// Access barrier bands.
const (
	BarrierLow    = "LOW"
	BarrierMedium = "MEDIUM"
	BarrierHigh   = "HIGH"
)

// Timeline statuses.
const (
	TimelineGreen   = "GREEN"
	TimelineYellow  = "YELLOW"
	TimelineRed     = "RED"
	TimelineClosed  = "CLOSED"
	TimelineUnknown = "UNKNOWN"
)

// Competition bands.
const (
	CompetitionHighly      = "Highly Competitive"
	CompetitionCompetitive = "Competitive"
	CompetitionModerate    = "Moderate"
	CompetitionAccessible  = "Accessible"
	CompetitionUnknown     = "UNKNOWN"
)

// FreeResult holds the grant-quality sub-scores.
type FreeResult struct {
	Clarity       model.ScoringResult
	AccessBarrier model.ScoringResult
	Timeline      model.ScoringResult
	Award         model.ScoringResult
	Competition   model.ScoringResult

	Access         AccessEstimate
	TimelineStatus string
	// Composite is the unrounded weighted composite.
	Composite float64
}

// Results returns the five sub-scores keyed by dimension.
func (r FreeResult) Results() map[string]model.ScoringResult {
	return map[string]model.ScoringResult{
		model.DimClarity:        r.Clarity,
		model.DimAccessBarrier:  r.AccessBarrier,
		model.DimTimeline:       r.Timeline,
		model.DimAwardStructure: r.Award,
		model.DimCompetition:    r.Competition,
	}
}

// AccessEstimate is the application-burden estimate behind the access
// barrier band.
type AccessEstimate struct {
	Band      string `json:"band"`
	Points    int    `json:"points"`
	Pages     int    `json:"pages"`
	Documents int    `json:"documents"`
	Letters   int    `json:"letters"`
	Hours     int    `json:"hours"`
	HoursHigh int    `json:"hours_high"`
}

// Ease maps the band onto a 0-10 scale where higher means easier to apply.
func (a AccessEstimate) Ease() int {
	switch a.Band {
	case BarrierLow:
		return 10
	case BarrierMedium:
		return 6
	default:
		return 2
	}
}

// HoursRange renders the estimated preparation time.
func (a AccessEstimate) HoursRange() string {
	return fmt.Sprintf("%d-%d hours", a.Hours, a.HoursHigh)
}

// ScoreFree runs the five grant-quality sub-rubrics. now anchors the
// timeline; it is never read from the wall clock here.
func ScoreFree(g model.GrantRecord, now time.Time, cfg config.EngineConfig) FreeResult {
	access := EstimateAccess(g)
	timeline, status := scoreTimeline(g, now)

	r := FreeResult{
		Clarity:        scoreClarity(g, cfg.MinRecipients),
		AccessBarrier:  accessResult(access),
		Timeline:       timeline,
		Award:          scoreAward(g),
		Competition:    scoreCompetition(g),
		Access:         access,
		TimelineStatus: status,
	}
	r.Composite = FreeComposite(r.Clarity.ScoreOr(0), r.Timeline.ScoreOr(0), r.Award.ScoreOr(0), access.Ease(), cfg.FreeWeights)
	return r
}

// FreeComposite weights the grant-quality scores. ease is the access
// barrier already mapped so that a low barrier scores high.
func FreeComposite(clarity, timeline, award, ease int, w config.FreeWeights) float64 {
	sum := FreeWeightSum(w)
	if sum <= 0 {
		return 0
	}
	total := float64(clarity)*w.Clarity + float64(timeline)*w.Timeline +
		float64(award)*w.Award + float64(ease)*w.AccessBarrier
	return model.ClampScoreFloat(total / sum)
}

func scoreClarity(g model.GrantRecord, minRecipients int) model.ScoringResult {
	score := 0
	var have, missing []string

	amount := textutil.PlainText(g.AwardAmount)
	if _, ok := parse.ParseAmount(amount); ok && !parse.IsVagueAmount(amount) {
		score += 3
		have = append(have, "award amount disclosed")
	} else {
		missing = append(missing, "award_amount not disclosed")
	}

	if len(textutil.PlainText(g.Eligibility)) > 50 {
		score += 2
		have = append(have, "detailed eligibility")
	} else {
		missing = append(missing, "vague eligibility")
	}

	if n := len(g.Recipients()); n >= minRecipients {
		score += 2
		have = append(have, fmt.Sprintf("%d recipient profiles", n))
	} else {
		missing = append(missing, "few or no recipient profiles")
	}

	if len(textutil.PlainText(g.PreferredApplicants)) > 50 {
		score += 2
		have = append(have, "preferred applicants described")
	} else {
		missing = append(missing, "preferred applicants unclear")
	}

	if len(textutil.PlainText(strings.Join(g.ApplicationRequirements, " "))) > 20 {
		score++
		have = append(have, "application requirements listed")
	} else {
		missing = append(missing, "application requirements thin")
	}

	explanation := fmt.Sprintf("%s clarity (%d/10).", clarityRating(score), score)
	if len(missing) > 0 {
		explanation += " Missing: " + strings.Join(missing, ", ") + "."
	}
	return model.ScoringResult{
		Dimension:   model.DimClarity,
		Score:       model.IntPtr(score),
		Confidence:  model.ConfidenceHigh,
		Source:      model.SourceRuleBased,
		Rating:      clarityRating(score),
		Explanation: explanation,
		Details:     map[string]any{"present": have, "missing": missing},
	}
}

func clarityRating(score int) string {
	switch {
	case score >= 8:
		return "Excellent"
	case score >= 6:
		return "Good"
	case score >= 4:
		return "Limited"
	default:
		return "Poor"
	}
}

var narrativeDocs = lexicon.NewTermSet("narrative_docs",
	"proposal", "essay", "statement", "narrative", "concept note", "plan",
)

// EstimateAccess estimates how hard the grant is to apply for.
func EstimateAccess(g model.GrantRecord) AccessEstimate {
	reqs := textutil.PlainText(strings.Join(g.ApplicationRequirements, "; "))
	conditions := textutil.PlainText(textutil.Join(reqs, g.Eligibility, strings.Join(g.Restrictions, "; ")))

	a := AccessEstimate{
		Pages:     parse.EstimatePages(reqs),
		Documents: lexicon.RequiredDocument.Count(reqs),
	}
	if a.Pages == 0 {
		a.Pages = 2 * narrativeDocs.Count(reqs)
	}
	if n, ok := parse.CountLetters(conditions); ok {
		a.Letters = n
	} else if lexicon.RecommendationLetter.Any(conditions) {
		a.Letters = 2
	}

	switch {
	case a.Pages > 10:
		a.Points += 3
	case a.Pages > 5:
		a.Points += 2
	case a.Pages > 0:
		a.Points++
	}
	switch {
	case a.Documents >= 5:
		a.Points += 2
	case a.Documents >= 3:
		a.Points++
	}
	switch {
	case a.Letters >= 3:
		a.Points += 2
	case a.Letters >= 1:
		a.Points++
	}
	if lexicon.InstitutionalAffiliation.Any(conditions) {
		a.Points += 2
	}
	if lexicon.FiscalSponsor.Any(conditions) {
		a.Points += 2
	}
	if lexicon.Nomination.Any(conditions) {
		a.Points += 3
	}

	mult := 1.25
	switch {
	case a.Points >= 8:
		a.Band, mult = BarrierHigh, 2.0
	case a.Points >= 4:
		a.Band, mult = BarrierMedium, 1.5
	default:
		a.Band = BarrierLow
	}
	a.Hours = 20 + 2*a.Pages + 8*a.Letters + 3*a.Documents
	a.HoursHigh = int(math.Ceil(float64(a.Hours) * mult))
	return a
}

func accessResult(a AccessEstimate) model.ScoringResult {
	conf := model.ConfidenceMedium
	if a.Pages == 0 && a.Documents == 0 && a.Letters == 0 {
		conf = model.ConfidenceLow
	}
	explanation := fmt.Sprintf("%s barrier (%d points): about %d pages, %d documents, %d letters; estimated %s of preparation.",
		a.Band, a.Points, a.Pages, a.Documents, a.Letters, a.HoursRange())
	return model.ScoringResult{
		Dimension:   model.DimAccessBarrier,
		Score:       model.IntPtr(a.Ease()),
		Confidence:  conf,
		Source:      model.SourceEstimated,
		Rating:      a.Band,
		Explanation: explanation,
		Details: map[string]any{
			"points":          a.Points,
			"estimated_hours": a.Hours,
			"hours_range":     a.HoursRange(),
		},
	}
}

func scoreTimeline(g model.GrantRecord, now time.Time) (model.ScoringResult, string) {
	res := model.ScoringResult{
		Dimension:  model.DimTimeline,
		Source:     model.SourceRuleBased,
		Confidence: model.ConfidenceHigh,
	}
	unknown := func(why string) (model.ScoringResult, string) {
		res.Score = model.IntPtr(0)
		res.Rating = TimelineUnknown
		res.Confidence = model.ConfidenceUnknown
		res.Explanation = why
		return res, TimelineUnknown
	}

	deadline := textutil.PlainText(g.Deadline)
	if deadline == "" {
		if decision := textutil.PlainText(g.DecisionDate); decision != "" {
			return unknown(fmt.Sprintf("No submission deadline; decision date given as %q.", textutil.Truncate(decision, 60)))
		}
		return unknown("No deadline published.")
	}
	if parse.IsVagueTimeline(deadline) {
		return unknown(fmt.Sprintf("Deadline is open-ended (%q); timing cannot be planned.", textutil.Truncate(deadline, 60)))
	}
	due, err := parse.ParseDate(deadline)
	if err != nil {
		return unknown(fmt.Sprintf("Deadline %q could not be read as a date.", textutil.Truncate(deadline, 60)))
	}

	if due.Before(now) {
		res.Score = model.IntPtr(0)
		res.Rating = TimelineClosed
		res.Explanation = fmt.Sprintf("Deadline %s has passed.", due.Format("2006-01-02"))
		return res, TimelineClosed
	}

	weeks := due.Sub(now).Hours() / (24 * 7)
	var score float64
	switch {
	case weeks < 6:
		res.Rating = TimelineRed
		score = weeks / 6 * 6
	case weeks < 12:
		res.Rating = TimelineYellow
		score = 6 + (weeks-6)/6*4
	default:
		res.Rating = TimelineGreen
		score = 10
	}
	res.Score = model.IntPtr(model.ClampScore(int(math.Round(score))))
	res.Explanation = fmt.Sprintf("%.1f weeks until the %s deadline (%s).", weeks, due.Format("2006-01-02"), res.Rating)
	res.Details = map[string]any{"weeks_remaining": math.Round(weeks*10) / 10, "deadline": due.Format("2006-01-02")}
	return res, res.Rating
}

func scoreAward(g model.GrantRecord) model.ScoringResult {
	score := 0
	var notes []string

	amount := textutil.PlainText(g.AwardAmount)
	if a, ok := parse.ParseAmount(amount); ok && !parse.IsVagueAmount(amount) {
		score += 4
		notes = append(notes, fmt.Sprintf("amount disclosed (%s %.0f)", a.Currency, a.Value()))
	} else {
		notes = append(notes, "amount not disclosed")
	}

	structure := textutil.PlainText(g.AwardStructure)
	if len(structure) > 10 {
		score += 2
		notes = append(notes, "structure described")
	}
	if parse.HasDuration(textutil.Join(amount, structure, textutil.PlainText(g.Description))) {
		score += 2
		notes = append(notes, "duration stated")
	}
	if len(g.Restrictions) > 0 {
		score += 2
		notes = append(notes, "restrictions listed")
	}

	rating := "Unclear"
	switch {
	case score >= 7:
		rating = "Clear"
	case score >= 4:
		rating = "Partial"
	}
	return model.ScoringResult{
		Dimension:   model.DimAwardStructure,
		Score:       model.IntPtr(score),
		Confidence:  model.ConfidenceHigh,
		Source:      model.SourceRuleBased,
		Rating:      rating,
		Explanation: fmt.Sprintf("%s award terms: %s.", rating, strings.Join(notes, ", ")),
	}
}

func scoreCompetition(g model.GrantRecord) model.ScoringResult {
	res := model.ScoringResult{
		Dimension:  model.DimCompetition,
		Source:     model.SourceRuleBased,
		Confidence: model.ConfidenceUnknown,
		Rating:     CompetitionUnknown,
	}
	stats := g.Competition()
	if stats == nil || stats.AcceptanceRate == nil {
		res.Reason = model.ReasonInsufficientData
		res.Explanation = "No acceptance rate published; competition level unknown."
		return res
	}

	rate := math.Max(0, math.Min(100, *stats.AcceptanceRate))
	band, display := competitionBand(rate)
	res.Rating = band
	res.Score = model.IntPtr(display)
	switch strings.ToLower(strings.TrimSpace(stats.Source)) {
	case string(model.SourceOfficial):
		res.Confidence, res.Source = model.ConfidenceHigh, model.SourceOfficial
	case string(model.SourceEstimated):
		res.Confidence, res.Source = model.ConfidenceMedium, model.SourceEstimated
	default:
		res.Confidence = model.ConfidenceLow
	}
	res.Explanation = fmt.Sprintf("%s: %.1f%% acceptance rate.", band, rate)
	res.Details = map[string]any{"acceptance_rate": rate}
	return res
}

// competitionBand returns the band and a 0-10 accessibility score.
func competitionBand(rate float64) (string, int) {
	switch {
	case rate < 5:
		return CompetitionHighly, 2
	case rate < 15:
		return CompetitionCompetitive, 4
	case rate < 30:
		return CompetitionModerate, 6
	default:
		return CompetitionAccessible, 8
	}
}
