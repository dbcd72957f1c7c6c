package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestFetchRates(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    map[string]float64
		wantErr bool
	}{
		{name: "wrapped", body: `{"rates": {"GBP_USD": 1.3}}`, want: map[string]float64{"GBP_USD": 1.3}},
		{name: "bare", body: `{"EUR_USD": 1.1, "KES_USD": 0.008}`, want: map[string]float64{"EUR_USD": 1.1, "KES_USD": 0.008}},
		{name: "empty", body: `{}`, wantErr: true},
		{name: "not json", body: `<html></html>`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(tt.body)
			defer srv.Close()

			got, err := FetchRates(context.Background(), newTestFetcher(), srv.URL)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
