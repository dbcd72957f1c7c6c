package main

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/grant-verdict/internal/augment"
	"github.com/sells-group/grant-verdict/internal/config"
	"github.com/sells-group/grant-verdict/internal/currency"
	"github.com/sells-group/grant-verdict/internal/engine"
	"github.com/sells-group/grant-verdict/internal/fetcher"
	"github.com/sells-group/grant-verdict/internal/resilience"
	anthropicpkg "github.com/sells-group/grant-verdict/pkg/anthropic"
)

// initEngine builds the rate table and, when enabled, the Anthropic-backed
// strategies, then the Engine. mode selects which settings are validated.
func initEngine(ctx context.Context, c *config.Config, mode string, f fetcher.Fetcher, client anthropicpkg.Client) (*engine.Engine, error) {
	if err := c.Validate(mode); err != nil {
		return nil, err
	}

	rates, err := currency.NewStaticTable(rateOverrides(ctx, c, f))
	if err != nil {
		return nil, eris.Wrap(err, "init engine: rate table")
	}

	var opts []engine.Option
	if c.Augment.Enabled || c.Augment.Explain {
		if client == nil {
			client = anthropicpkg.NewClient(c.Anthropic.Key)
		}
		guard := resilience.NewGuard(resilience.FromAugmentConfig("anthropic", c.Augment))
		llm := augment.NewAnthropic(client, c.Anthropic, guard)

		if c.Augment.Enabled {
			opts = append(opts, engine.WithAugmenter(llm))
			zap.L().Info("augmentation enabled", zap.String("model", c.Anthropic.Model))
		}
		if c.Augment.Explain {
			opts = append(opts, engine.WithExplainer(augment.WithFallback(llm, augment.TemplateExplainer{})))
			zap.L().Info("mission gap explanations enabled", zap.String("model", c.Anthropic.Model))
		}
	} else {
		zap.L().Debug("augmentation disabled, using rule-based verdicts only")
	}

	e, err := engine.New(c.Engine, rates, opts...)
	if err != nil {
		return nil, err
	}
	return e, nil
}
