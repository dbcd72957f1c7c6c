package main

import (
	"context"
	"maps"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/grant-verdict/internal/config"
	"github.com/sells-group/grant-verdict/internal/fetcher"
)

func newFetcher(c *config.Config) fetcher.Fetcher {
	return fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
		Timeout:    time.Duration(c.Fetch.TimeoutSecs) * time.Second,
		MaxRetries: c.Fetch.MaxRetries,
		MaxBytes:   c.Fetch.MaxBytes,
	})
}

// rateOverrides merges the optional remote rate feed with the configured
// rates. Configured rates win. A feed that cannot be fetched is logged and
// skipped; the built-in table still applies.
func rateOverrides(ctx context.Context, c *config.Config, f fetcher.Fetcher) map[string]float64 {
	if c.Currency.SourceURL == "" {
		return c.Currency.Rates
	}

	feed, err := fetcher.FetchRates(ctx, f, c.Currency.SourceURL)
	if err != nil {
		zap.L().Warn("rates: feed unavailable, using configured table",
			zap.String("url", c.Currency.SourceURL),
			zap.Error(err),
		)
		return c.Currency.Rates
	}

	merged := make(map[string]float64, len(feed)+len(c.Currency.Rates))
	maps.Copy(merged, feed)
	maps.Copy(merged, c.Currency.Rates)
	zap.L().Info("rates: loaded feed",
		zap.String("url", c.Currency.SourceURL),
		zap.Int("pairs", len(feed)),
	)
	return merged
}
