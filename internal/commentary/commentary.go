// Package commentary asks an external text-generation service for a short
// closing line about a finished game. The call is best-effort: any failure
// degrades to a static fallback so game flow is never blocked on it.
package commentary

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
)

const (
	requestTimeout = 3 * time.Second

	// FallbackText is shown whenever the generator is unreachable or slow.
	FallbackText = "Good game! Hit restart for a rematch."
)

type Generator interface {
	Remark(ctx context.Context, outcome string) string
}

type request struct {
	Outcome string `json:"outcome"`
}

type response struct {
	Text string `json:"text"`
}

type httpGenerator struct {
	url    string
	client *http.Client
}

// NewHTTP builds a generator calling the configured endpoint.
func NewHTTP(url string) Generator {
	return &httpGenerator{
		url: url,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

func (that *httpGenerator) Remark(ctx context.Context, outcome string) string {
	body, err := json.Marshal(request{Outcome: outcome})
	if err != nil {
		return FallbackText
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, that.url, bytes.NewReader(body))
	if err != nil {
		return FallbackText
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return FallbackText
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return FallbackText
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return FallbackText
	}

	var payload response
	if err = json.Unmarshal(raw, &payload); err != nil || payload.Text == "" {
		return FallbackText
	}

	return payload.Text
}

type staticGenerator struct{}

// NewStatic returns a generator that always answers with the fallback line.
// Used when no commentary endpoint is configured.
func NewStatic() Generator {
	return staticGenerator{}
}

func (staticGenerator) Remark(context.Context, string) string {
	return FallbackText
}
