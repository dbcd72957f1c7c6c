package augment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/grant-verdict/internal/model"
	"github.com/sells-group/grant-verdict/internal/scorer"
)

func gapInput() GapInput {
	return GapInput{
		Mission: scorer.MissionInput{GrantText: "Supports contemporary dance.", ProjectText: "Coral reef restoration."},
		Score:   1,
	}
}

func TestTemplateExplainer(t *testing.T) {
	text, err := TemplateExplainer{}.ExplainGap(context.Background(), gapInput())
	require.NoError(t, err)
	assert.Equal(t, scorer.GapTemplate(gapInput().Mission, 1), text)
}

func TestWithFallback(t *testing.T) {
	failing := ExplainerFunc(func(context.Context, GapInput) (string, error) {
		return "", errors.New("boom")
	})
	blank := ExplainerFunc(func(context.Context, GapInput) (string, error) {
		return "   ", nil
	})
	custom := ExplainerFunc(func(context.Context, GapInput) (string, error) {
		return "The grant funds dance, not reefs.", nil
	})
	template := scorer.GapTemplate(gapInput().Mission, 1)

	tests := []struct {
		name    string
		primary Explainer
		want    string
	}{
		{"primary error", failing, template},
		{"primary blank", blank, template},
		{"primary ok", custom, "The grant funds dance, not reefs."},
		{"no primary", nil, template},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WithFallback(tt.primary, TemplateExplainer{}).ExplainGap(context.Background(), gapInput())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := WithFallback(custom, nil).ExplainGap(context.Background(), gapInput())
	require.NoError(t, err)
	assert.Equal(t, "The grant funds dance, not reefs.", got)
}

func TestChain(t *testing.T) {
	errFirst := errors.New("first failed")
	failing := AugmenterFunc(func(context.Context, Context) (*model.Proposal, error) {
		return nil, errFirst
	})
	empty := AugmenterFunc(func(context.Context, Context) (*model.Proposal, error) {
		return nil, nil
	})
	ok := AugmenterFunc(func(context.Context, Context) (*model.Proposal, error) {
		return &model.Proposal{Recommendation: model.RecommendPass}, nil
	})

	p, err := Chain(failing, nil, empty, ok).Propose(context.Background(), Context{})
	require.NoError(t, err)
	assert.Equal(t, model.RecommendPass, p.Recommendation)

	_, err = Chain(failing, empty).Propose(context.Background(), Context{})
	assert.ErrorIs(t, err, errFirst)

	_, err = Chain().Propose(context.Background(), Context{})
	assert.ErrorIs(t, err, ErrDisabled)
}

func TestChainStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	cancelling := AugmenterFunc(func(context.Context, Context) (*model.Proposal, error) {
		calls++
		cancel()
		return nil, errors.New("cancelled")
	})

	_, err := Chain(cancelling, cancelling).Propose(ctx, Context{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
