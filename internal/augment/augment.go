// Package augment holds the optional scoring strategies that may refine a
// rule-based verdict: an Augmenter proposing scores and a recommendation,
// and an Explainer writing mission-gap text. Every strategy is advisory;
// the policy package re-validates whatever they return.
package augment

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/scorer"
)

// ErrDisabled is returned by a strategy that is not configured.
var ErrDisabled = eris.New("augment: disabled")

// Context is what an Augmenter sees: the inputs plus the rule-based
// verdict it may refine.
type Context struct {
	Tier    model.Tier
	Grant   model.GrantRecord
	Project *model.ProjectProfile
	Verdict model.EvaluationVerdict
}

// GapInput is what an Explainer sees for a low mission alignment.
type GapInput struct {
	Mission scorer.MissionInput
	Score   int
}

// Augmenter proposes a partial verdict.
type Augmenter interface {
	Propose(ctx context.Context, in Context) (*model.Proposal, error)
}

// Explainer writes a short explanation of a mission gap.
type Explainer interface {
	ExplainGap(ctx context.Context, in GapInput) (string, error)
}

// AugmenterFunc adapts a function to Augmenter.
type AugmenterFunc func(ctx context.Context, in Context) (*model.Proposal, error)

// Propose calls f.
func (f AugmenterFunc) Propose(ctx context.Context, in Context) (*model.Proposal, error) {
	return f(ctx, in)
}

// ExplainerFunc adapts a function to Explainer.
type ExplainerFunc func(ctx context.Context, in GapInput) (string, error)

// ExplainGap calls f.
func (f ExplainerFunc) ExplainGap(ctx context.Context, in GapInput) (string, error) {
	return f(ctx, in)
}

// TemplateExplainer is the deterministic Explainer.
type TemplateExplainer struct{}

// ExplainGap renders the fixed gap template.
func (TemplateExplainer) ExplainGap(_ context.Context, in GapInput) (string, error) {
	return scorer.GapTemplate(in.Mission, in.Score), nil
}

type explainerChain struct {
	primary  Explainer
	fallback Explainer
}

// WithFallback returns an Explainer that tries primary first and uses
// fallback when primary fails or returns blank text.
func WithFallback(primary, fallback Explainer) Explainer {
	if primary == nil {
		return fallback
	}
	if fallback == nil {
		return primary
	}
	return &explainerChain{primary: primary, fallback: fallback}
}

func (c *explainerChain) ExplainGap(ctx context.Context, in GapInput) (string, error) {
	if text, err := c.primary.ExplainGap(ctx, in); err == nil && strings.TrimSpace(text) != "" {
		return text, nil
	}
	return c.fallback.ExplainGap(ctx, in)
}

type augmenterChain []Augmenter

// Chain returns an Augmenter that asks each strategy in turn and returns
// the first non-empty proposal. It returns the last error when none
// succeeds, or ErrDisabled when there is nothing to ask.
func Chain(strategies ...Augmenter) Augmenter {
	var kept augmenterChain
	for _, s := range strategies {
		if s != nil {
			kept = append(kept, s)
		}
	}
	if len(kept) == 1 {
		return kept[0]
	}
	return kept
}

func (c augmenterChain) Propose(ctx context.Context, in Context) (*model.Proposal, error) {
	err := ErrDisabled
	for _, s := range c {
		p, perr := s.Propose(ctx, in)
		if perr == nil && p != nil {
			return p, nil
		}
		if perr != nil {
			err = perr
		}
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "augment: chain")
		}
	}
	return nil, err
}
