// Package fetcher downloads grant documents and exchange-rate feeds over
// HTTP for the CLI. The engine never calls it.
package fetcher

import (
	"context"
	"strings"
)

// Fetcher defines the interface for downloading remote data.
type Fetcher interface {
	// Get fetches the URL and returns the response body.
	Get(ctx context.Context, url string) ([]byte, error)
}

// IsURL reports whether s names an http or https resource.
func IsURL(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
