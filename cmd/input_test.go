package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/grant-verdict/internal/fetcher"
	"github.com/sells-group/grant-verdict/internal/model"
)

const freeRequestYAML = `
grant:
  name: Reef Futures Grant
  mission: Protect coral reef ecosystems through community conservation
  deadline: "2099-01-01"
  award_amount: "$50,000"
  application_requirements:
    - Short online form
    - Budget
`

const paidRequestJSON = `{
  "tier": "paid",
  "grant": {
    "name": "Reef Futures Grant",
    "mission": "Protect coral reef ecosystems through community conservation",
    "deadline": "2099-01-01",
    "award_amount": "$50,000"
  },
  "project": {
    "name": "Reef Guardians",
    "description": "Community coral reef conservation",
    "organization_type": "Nonprofit",
    "funding_need_amount": 4000000,
    "funding_need_currency": "USD"
  }
}`

func TestReadInput(t *testing.T) {
	t.Run("requires a path", func(t *testing.T) {
		_, err := readInput(context.Background(), "", nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--input is required")
	})

	t.Run("dash reads stdin", func(t *testing.T) {
		data, err := readInput(context.Background(), "-", strings.NewReader("grant: {}"), nil)
		require.NoError(t, err)
		assert.Equal(t, "grant: {}", string(data))
	})

	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "req.yaml")
		require.NoError(t, os.WriteFile(path, []byte(freeRequestYAML), 0o644))
		data, err := readInput(context.Background(), path, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Reef Futures Grant")
	})

	t.Run("fetches a url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(paidRequestJSON))
		}))
		defer srv.Close()

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{BackoffBase: time.Millisecond})
		data, err := readInput(context.Background(), srv.URL+"/req.json", nil, f)
		require.NoError(t, err)
		req, err := decodeRequest(data, "")
		require.NoError(t, err)
		assert.Equal(t, model.TierPaid, req.Tier)
	})

	t.Run("url not found", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		f := fetcher.NewHTTPFetcher(fetcher.HTTPOptions{BackoffBase: time.Millisecond})
		_, err := readInput(context.Background(), srv.URL, nil, f)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input: fetch")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readInput(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"), nil, nil)
		assert.Error(t, err)
	})
}

func TestDecodeRequest(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		override string
		wantTier model.Tier
		wantErr  string
	}{
		{name: "yaml defaults to free", data: freeRequestYAML, wantTier: model.TierFree},
		{name: "json paid", data: paidRequestJSON, wantTier: model.TierPaid},
		{name: "override wins", data: paidRequestJSON, override: "free", wantTier: model.TierFree},
		{name: "unknown tier", data: "tier: gold\n" + freeRequestYAML, wantErr: "unknown tier"},
		{name: "unknown field", data: "grnt:\n  name: x\n", wantErr: "decode request"},
		{name: "empty document", data: "", wantErr: "empty document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := decodeRequest([]byte(tt.data), tt.override)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTier, req.Tier)
			assert.Equal(t, "Reef Futures Grant", req.Grant.Name)
		})
	}
}

func TestDecodeRequestProject(t *testing.T) {
	req, err := decodeRequest([]byte(paidRequestJSON), "")
	require.NoError(t, err)
	require.NotNil(t, req.Project)
	assert.Equal(t, int64(4_000_000), req.Project.FundingNeedAmount)
	assert.Equal(t, "USD", req.Project.FundingNeedCurrency)
}

func TestDecodeBatch(t *testing.T) {
	t.Run("top-level list", func(t *testing.T) {
		data := "- grant:\n    name: A\n- tier: paid\n  grant:\n    name: B\n"
		reqs, err := decodeBatch([]byte(data), "")
		require.NoError(t, err)
		require.Len(t, reqs, 2)
		assert.Equal(t, model.TierFree, reqs[0].Tier)
		assert.Equal(t, model.TierPaid, reqs[1].Tier)
	})

	t.Run("requests key with override", func(t *testing.T) {
		data := "requests:\n  - grant:\n      name: A\n  - grant:\n      name: B\n"
		reqs, err := decodeBatch([]byte(data), "paid")
		require.NoError(t, err)
		require.Len(t, reqs, 2)
		for _, r := range reqs {
			assert.Equal(t, model.TierPaid, r.Tier)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		_, err := decodeBatch([]byte("[]"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no requests")
	})

	t.Run("bad tier names the request", func(t *testing.T) {
		_, err := decodeBatch([]byte("- grant:\n    name: A\n- tier: gold\n  grant:\n    name: B\n"), "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "request 1")
	})
}

func TestDecodeGrant(t *testing.T) {
	t.Run("request document", func(t *testing.T) {
		g, err := decodeGrant([]byte(paidRequestJSON))
		require.NoError(t, err)
		assert.Equal(t, "Reef Futures Grant", g.Name)
	})

	t.Run("bare grant", func(t *testing.T) {
		g, err := decodeGrant([]byte("name: Bare Grant\ndeadline: \"2099-01-01\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "Bare Grant", g.Name)
		assert.Equal(t, "2099-01-01", g.Deadline)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := decodeGrant([]byte("colour: blue\n"))
		assert.Error(t, err)
	})
}
