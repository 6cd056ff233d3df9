package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HTTPSignals fetches the seed catalogue from the signals service.
type HTTPSignals struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewHTTPSignals creates a client for the given signals endpoint.
func NewHTTPSignals(endpoint string) *HTTPSignals {
	return &HTTPSignals{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Seeds implements Signals.
func (h *HTTPSignals) Seeds(ctx context.Context) ([]Seed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.Endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	client := h.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog: signals fetch returned %s", resp.Status)
	}

	var seeds []Seed
	if err := json.NewDecoder(resp.Body).Decode(&seeds); err != nil {
		return nil, fmt.Errorf("catalog: decoding signals response: %w", err)
	}
	return seeds, nil
}
