package stream

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
)

// Client consumes the generation endpoint's newline-delimited event
// stream. It has no built-in retry; transport failures surface as errors
// from Open and callers decide whether to re-dispatch.
type Client struct {
	Endpoint   string
	HTTPClient *http.Client

	log *logrus.Entry
}

// NewClient creates a client for the given endpoint URL.
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{},
		log:        logrus.WithField("component", "stream"),
	}
}

// Open issues the generation request and returns a channel of decoded
// events. The body is decoded incrementally as bytes arrive; the channel
// closes when the stream ends or ctx is cancelled. Cancellation means
// ceasing to read, not severing the protocol; events already decoded
// before the consumer stops draining still apply.
func (c *Client) Open(ctx context.Context, req Request) (<-chan Event, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("stream: encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("stream: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/x-ndjson")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("stream: open: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, fmt.Errorf("stream: generation endpoint returned %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	c.log.WithField("placements", len(req.Placements)).Debug("stream opened")

	events := make(chan Event, 32)
	go func() {
		defer resp.Body.Close()
		defer close(events)
		Decode(ctx, resp.Body, events)
	}()
	return events, nil
}

// Decode reads newline-delimited JSON events from r onto out until EOF or
// ctx cancellation. Each complete line is parsed independently; a trailing
// partial line is still attempted once EOF is reached. Malformed lines are
// dropped rather than aborting the stream.
func Decode(ctx context.Context, r io.Reader, out chan<- Event) {
	reader := bufio.NewReader(r)
	for {
		line, err := reader.ReadString('\n')
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			if ev, ok := DecodeLine([]byte(trimmed)); ok {
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
		if err != nil {
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// readErrorBody extracts a best-effort message from an error response:
// the JSON "error" field when present, otherwise the raw text, otherwise
// a generic marker.
func readErrorBody(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return "generation request failed"
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}
