package main

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/grant-verdict/internal/fetcher"
	"github.com/sells-group/grant-verdict/internal/model"
)

// readInput reads a file, an http(s) URL, or stdin when path is "-".
func readInput(ctx context.Context, path string, stdin io.Reader, f fetcher.Fetcher) ([]byte, error) {
	if path == "" {
		return nil, eris.New("input: --input is required")
	}
	if fetcher.IsURL(path) {
		data, err := f.Get(ctx, path)
		if err != nil {
			return nil, eris.Wrap(err, "input: fetch")
		}
		return data, nil
	}
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, eris.Wrap(err, "input: read stdin")
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "input: read %s", path)
	}
	return data, nil
}

// decodeRequest decodes one request. JSON input is accepted as YAML. A
// document with a top-level grant but no tier is a free-tier request.
func decodeRequest(data []byte, tierOverride string) (model.Request, error) {
	var req model.Request
	if err := decodeStrict(data, &req); err != nil {
		return req, eris.Wrap(err, "input: decode request")
	}
	return withTier(req, tierOverride)
}

// decodeBatch decodes a list of requests, given either as a top-level
// sequence or under a "requests" key.
func decodeBatch(data []byte, tierOverride string) ([]model.Request, error) {
	var reqs []model.Request
	if err := yaml.Unmarshal(data, &reqs); err != nil {
		var doc struct {
			Requests []model.Request `yaml:"requests"`
		}
		if err2 := decodeStrict(data, &doc); err2 != nil {
			return nil, eris.Wrap(err2, "input: decode batch")
		}
		reqs = doc.Requests
	}
	if len(reqs) == 0 {
		return nil, eris.New("input: batch has no requests")
	}
	for i := range reqs {
		r, err := withTier(reqs[i], tierOverride)
		if err != nil {
			return nil, eris.Wrapf(err, "input: request %d", i)
		}
		reqs[i] = r
	}
	return reqs, nil
}

// decodeGrant decodes a bare grant, or the grant of a request document.
func decodeGrant(data []byte) (model.GrantRecord, error) {
	var req model.Request
	if err := decodeStrict(data, &req); err == nil && req.Grant.Name != "" {
		return req.Grant, nil
	}
	var g model.GrantRecord
	if err := decodeStrict(data, &g); err != nil {
		return g, eris.Wrap(err, "input: decode grant")
	}
	return g, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return eris.New("empty document")
		}
		return err
	}
	return nil
}

func withTier(req model.Request, tierOverride string) (model.Request, error) {
	switch {
	case tierOverride != "":
		req.Tier = model.Tier(tierOverride)
	case req.Tier == "":
		req.Tier = model.TierFree
	}
	tier, err := model.ParseTier(string(req.Tier))
	if err != nil {
		return req, err
	}
	req.Tier = tier
	return req, nil
}
