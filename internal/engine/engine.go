// Package engine composes the readiness classifier, rubric scorer and
// recommendation policy into one evaluation call.
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/grant-verdict/internal/augment"
	"github.com/sells-group/grant-verdict/internal/config"
	"github.com/sells-group/grant-verdict/internal/currency"
	"github.com/sells-group/grant-verdict/internal/lexicon"
	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/policy"
	"github.com/sells-group/grant-verdict/internal/readiness"
	"github.com/sells-group/grant-verdict/internal/scorer"
)

// Engine evaluates grants. It holds only read-only configuration and the
// strategies passed to New, so one Engine may serve concurrent calls.
type Engine struct {
	cfg           config.EngineConfig
	scorer        *scorer.Scorer
	augmenter     augment.Augmenter
	explainer     augment.Explainer
	now           func() time.Time
	rubricVersion string
}

// Option configures an Engine.
type Option func(*Engine)

// WithAugmenter installs a strategy that may refine rule-based verdicts.
func WithAugmenter(a augment.Augmenter) Option {
	return func(e *Engine) { e.augmenter = a }
}

// WithExplainer installs a strategy for low mission-alignment text. The
// deterministic template is used whenever it fails.
func WithExplainer(x augment.Explainer) Option {
	return func(e *Engine) { e.explainer = x }
}

// WithClock overrides the time source used for timeline scoring.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine. A nil rate provider uses the built-in table.
func New(cfg config.EngineConfig, rates currency.ExchangeRateProvider, opts ...Option) (*Engine, error) {
	if err := scorer.ValidateConfig(cfg); err != nil {
		return nil, eris.Wrap(err, "engine: invalid config")
	}
	if rates == nil {
		table, err := currency.NewStaticTable(nil)
		if err != nil {
			return nil, eris.Wrap(err, "engine: build rate table")
		}
		rates = table
	}

	e := &Engine{
		cfg:           cfg,
		scorer:        scorer.New(cfg, rates),
		now:           time.Now,
		rubricVersion: lexicon.Version + "/" + scorer.ConfigHash(cfg),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// RubricVersion identifies the keyword tables and weights behind every
// verdict this engine produces.
func (e *Engine) RubricVersion() string {
	return e.rubricVersion
}

// Classify runs the readiness classifier alone.
func (e *Engine) Classify(g model.GrantRecord) model.Readiness {
	return readiness.Classify(g)
}

// Evaluate produces a verdict for one request. It never fails: bad input
// degrades to conservative scores and augmentation errors fall back to the
// rule-based path.
func (e *Engine) Evaluate(ctx context.Context, req model.Request) model.EvaluationVerdict {
	var flags []string
	norm, degraded, err := req.Normalize()
	switch {
	case err != nil:
		flags = append(flags, fmt.Sprintf("Unknown tier %q; evaluated on the free tier.", req.Tier))
		norm.Tier = model.TierFree
	case degraded:
		flags = append(flags, "Paid tier requested without a project profile; evaluated on the free tier.")
	}

	now := e.now()
	var v model.EvaluationVerdict
	var signals policy.Signals
	if norm.Tier == model.TierPaid {
		v, signals = e.paidVerdict(ctx, norm.Grant, *norm.Project, now)
	} else {
		v, signals = e.freeVerdict(norm.Grant, now)
	}
	v.Readiness = readiness.Classify(norm.Grant)
	for _, f := range flags {
		v.AddRedFlag(f)
	}

	e.augment(ctx, norm, &v, signals)

	if v.Tier == model.TierPaid {
		policy.EnforcePaid(&v, norm.Grant, e.cfg)
	} else {
		policy.EnforceFree(&v, norm.Grant, len(norm.Grant.Recipients()) < e.cfg.MinRecipients, e.cfg)
	}
	v.RubricVersion = e.rubricVersion

	zap.L().Debug("engine: evaluation complete",
		zap.String("grant", norm.Grant.Name),
		zap.String("tier", string(v.Tier)),
		zap.Int("composite", v.CompositeScore),
		zap.String("recommendation", string(v.Recommendation)),
		zap.String("source", string(v.EvaluatorSource)),
	)
	return v
}

func (e *Engine) freeVerdict(g model.GrantRecord, now time.Time) (model.EvaluationVerdict, policy.Signals) {
	r := e.scorer.Free(g, now)
	composite := roundComposite(r.Composite)
	signals := policy.SignalsFromFree(r, composite)
	decision := policy.Decide(signals)

	v := newVerdict(model.TierFree, r.Results(), composite, decision)
	v.AppendReasoning(model.DimComposite, fmt.Sprintf("Weighted grant-quality composite %.1f/10.", r.Composite))

	switch r.TimelineStatus {
	case scorer.TimelineClosed:
		v.AddRedFlag("The deadline has passed.")
	case scorer.TimelineRed:
		v.AddRedFlag("The deadline is less than six weeks away.")
	}
	if r.Access.Band == scorer.BarrierHigh {
		v.AddRedFlag(fmt.Sprintf("Heavy application: about %s of preparation.", r.Access.HoursRange()))
	}
	if band := r.Competition.Rating; band != "" && band != scorer.CompetitionUnknown {
		v.AddInsight(fmt.Sprintf("Competition: %s.", band))
	}
	v.AddInsight(fmt.Sprintf("Estimated preparation: %s.", r.Access.HoursRange()))
	return v, signals
}

func (e *Engine) paidVerdict(ctx context.Context, g model.GrantRecord, p model.ProjectProfile, now time.Time) (model.EvaluationVerdict, policy.Signals) {
	r := e.scorer.Paid(g, p, now)
	r.Mission = e.explainMission(ctx, r)

	composite := roundComposite(r.Composite)
	signals := policy.SignalsFromPaid(r, composite)
	decision := policy.Decide(signals)

	v := newVerdict(model.TierPaid, r.Results(), composite, decision)
	v.AppendReasoning(model.DimComposite, fmt.Sprintf("Weighted project-fit composite %.1f/10.", r.Composite))
	v.AppendReasoning(model.DimTimeline, r.Free.Timeline.Explanation)
	v.AppendReasoning(model.DimAccessBarrier, r.Free.AccessBarrier.Explanation)

	if r.Mission.Details["fundamental_mismatch"] == true {
		v.AddRedFlag("The project's domain is fundamentally different from what the grant funds.")
	}
	switch r.FundingStatus {
	case scorer.FundingInsufficient:
		v.AddRedFlag("The award covers only a small share of the funding need.")
	case scorer.FundingMismatched:
		v.AddRedFlag("The award is not cash but the project needs cash.")
	}
	if r.Free.TimelineStatus == scorer.TimelineClosed {
		v.AddRedFlag("The deadline has passed.")
	}
	if r.EffortStatus != "" {
		v.AddInsight(fmt.Sprintf("Effort versus reward: %s.", r.EffortStatus))
	}
	if r.Profile.Score == nil {
		v.AddInsight("Too few past recipients to compare profiles.")
	}

	v.SuccessProbabilityRange = r.SuccessRange
	v.PatternKnowledge = policy.PatternKnowledge(g)
	v.OpportunityCost = policy.OpportunityCostText(r)
	v.ConfidenceIndex = policy.ConfidenceIndex(v.Scores)
	v.DecisionGates = policy.DecisionGates(v, g)
	return v, signals
}

// explainMission replaces the templated gap text with the Explainer's,
// keeping the template when there is no Explainer or it fails.
func (e *Engine) explainMission(ctx context.Context, r scorer.PaidResult) model.ScoringResult {
	if e.explainer == nil || r.Mission.Details["templated_gap"] != true {
		return r.Mission
	}
	text, err := e.explainer.ExplainGap(ctx, augment.GapInput{Mission: r.MissionText, Score: r.Mission.ScoreOr(0)})
	if err != nil || text == "" {
		zap.L().Warn("engine: mission explanation fell back to template", zap.Error(err))
		return r.Mission
	}
	out := r.Mission.WithExplanation(text)
	out.Source = model.SourceLLM
	return out
}

// augment merges an Augmenter proposal into v. Without a proposed
// recommendation the rules are re-run on the merged scores.
func (e *Engine) augment(ctx context.Context, req model.Request, v *model.EvaluationVerdict, signals policy.Signals) {
	if e.augmenter == nil {
		return
	}
	p, err := e.augmenter.Propose(ctx, augment.Context{
		Tier:    v.Tier,
		Grant:   req.Grant,
		Project: req.Project,
		Verdict: *v,
	})
	if err != nil || p == nil {
		zap.L().Warn("engine: augmentation failed, using rule-based verdict",
			zap.String("grant", req.Grant.Name),
			zap.Error(err),
		)
		return
	}

	clean, notes := policy.SanitizeProposal(*p)
	notes = append(notes, policy.ApplyProposal(v, clean)...)
	for _, n := range notes {
		v.ConfidenceNotes = appendSentence(v.ConfidenceNotes, n)
	}

	if clean.Recommendation == "" {
		composite := policy.Composite(*v, e.cfg)
		s := signals.WithScores(v.Scores)
		s.Composite = float64(roundComposite(composite))
		d := policy.Decide(s)
		v.Recommendation = d.Recommendation
		v.AppendReasoning(model.DimRecommendation, d.Reason)
	}
	if v.Tier == model.TierPaid {
		v.ConfidenceIndex = policy.ConfidenceIndex(v.Scores)
		if len(clean.DecisionGates) == 0 {
			v.DecisionGates = policy.DecisionGates(*v, req.Grant)
		}
	}
}

// BatchResult pairs a verdict with its position in the input.
type BatchResult struct {
	Index   int                     `json:"index"`
	Verdict model.EvaluationVerdict `json:"verdict"`
}

// EvaluateBatch evaluates requests concurrently, at most concurrency at a
// time, and returns verdicts in input order. Only context cancellation
// stops the batch early.
func (e *Engine) EvaluateBatch(ctx context.Context, reqs []model.Request, concurrency int) ([]BatchResult, error) {
	if concurrency < 1 {
		concurrency = 1
	}
	runID := uuid.New().String()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("engine: batch started", zap.Int("requests", len(reqs)), zap.Int("concurrency", concurrency))
	start := time.Now()

	results := make([]BatchResult, len(reqs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, req := range reqs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = BatchResult{Index: i, Verdict: e.Evaluate(gctx, req)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, eris.Wrap(err, "engine: batch")
	}

	log.Info("engine: batch complete",
		zap.Int("requests", len(reqs)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, nil
}

func newVerdict(tier model.Tier, scores map[string]model.ScoringResult, composite int, d policy.Decision) model.EvaluationVerdict {
	v := model.EvaluationVerdict{
		Tier:            tier,
		Scores:          scores,
		CompositeScore:  composite,
		Recommendation:  d.Recommendation,
		Reasoning:       make(map[string]string, len(scores)+2),
		KeyInsights:     []string{},
		RedFlags:        []string{},
		EvaluatorSource: model.SourceRuleBased,
	}
	for dim, r := range scores {
		if r.Explanation != "" {
			v.Reasoning[dim] = r.Explanation
		}
	}
	v.AppendReasoning(model.DimRecommendation, fmt.Sprintf("%s Rule: %s.", d.Reason, d.Rule))
	return v
}

func roundComposite(c float64) int {
	return model.ClampScore(int(math.Round(c)))
}

func appendSentence(text, s string) string {
	if text == "" {
		return s
	}
	return text + " " + s
}
