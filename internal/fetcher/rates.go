package fetcher

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
)

// RateFeed is the JSON document a remote exchange-rate source serves:
// {"rates": {"GBP_USD": 1.27, ...}}. A bare key/rate object is accepted too.
type RateFeed struct {
	Rates map[string]float64 `json:"rates"`
}

// FetchRates downloads and decodes an exchange-rate feed.
func FetchRates(ctx context.Context, f Fetcher, url string) (map[string]float64, error) {
	data, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var feed RateFeed
	if err := json.Unmarshal(data, &feed); err == nil && len(feed.Rates) > 0 {
		return feed.Rates, nil
	}
	var bare map[string]float64
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, eris.Wrap(err, "fetcher: decode rate feed")
	}
	if len(bare) == 0 {
		return nil, eris.New("fetcher: rate feed is empty")
	}
	return bare, nil
}
