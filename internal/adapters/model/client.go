// Package model talks to an external CEFR level model over HTTP
package model

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"sublevel/internal/core/features"
	"sublevel/internal/core/level"
	perr "sublevel/internal/platform/errors"
	"sublevel/internal/platform/logger"
)

// Client posts feature records to the model's /predict endpoint
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ level.Predictor = (*Client)(nil)

// Options configure a Client
type Options struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// New creates a reusable client. Endpoint is the model base URL
func New(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	return &Client{
		endpoint: strings.TrimRight(o.Endpoint, "/"),
		apiKey:   o.APIKey,
		http:     &http.Client{Timeout: o.Timeout},
	}
}

type predictRequest struct {
	Keys     []string  `json:"keys"`
	Features []float64 `json:"features"`
}

type predictResponse struct {
	Level float64 `json:"level"`
}

// Predict returns the model's level estimate on the 1..N scale
func (c *Client) Predict(ctx context.Context, rec *features.Record) (float64, error) {
	if rec == nil {
		return 0, perr.InvalidArgf("model: nil feature record")
	}
	var resp predictResponse
	err := c.post(ctx, "/predict", predictRequest{Keys: rec.Keys(), Features: rec.Vector()}, &resp)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(resp.Level) || math.IsInf(resp.Level, 0) {
		return 0, perr.Newf(perr.ErrorCodeUnavailable, "model: non-finite prediction")
	}
	logger.C(ctx).Debug().Float64("prediction", resp.Level).Msg("model prediction")
	return resp.Level, nil
}

func (c *Client) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeJSON, "model: marshal payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "model: new request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "model: do request")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		code := perr.ErrorCodeUnavailable
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			code = perr.ErrorCodeInvalidArgument
		}
		return perr.Newf(code, "model: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "model: decode response")
	}
	return nil
}
