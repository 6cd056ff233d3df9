package stream

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleStream = `{"type":"progress","completed":1,"total":2,"stage":"drafting"}
{"type":"placement","placement":{"id":"p1","dayId":"2026-01-05","schedule":{"time":"9:00 AM"},"caption":"hi"}}
not json at all
{"type":"mystery"}
{"type":"error","message":"x"}
{"type":"complete"}`

// chunkReader yields the underlying data in fixed-size chunks so decoding
// can be exercised across arbitrary byte boundaries, including mid-line.
type chunkReader struct {
	data []byte
	size int
	pos  int
}

func (r *chunkReader) Read(p []byte) (int, error) {
	if r.pos >= len(r.data) {
		return 0, io.EOF
	}
	end := r.pos + r.size
	if end > len(r.data) {
		end = len(r.data)
	}
	n := copy(p, r.data[r.pos:end])
	r.pos += n
	return n, nil
}

func collect(t *testing.T, r io.Reader) []Event {
	t.Helper()
	out := make(chan Event, 64)
	go func() {
		defer close(out)
		Decode(context.Background(), r, out)
	}()
	events := make([]Event, 0)
	for ev := range out {
		events = append(events, ev)
	}
	return events
}

func TestDecodeDropsMalformedLines(t *testing.T) {
	events := collect(t, strings.NewReader(sampleStream))
	want := []Kind{KindProgress, KindPlacement, KindError, KindComplete}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %+v", len(want), len(events), events)
	}
	for i, kind := range want {
		if events[i].Type != kind {
			t.Fatalf("event %d: expected %s, got %s", i, kind, events[i].Type)
		}
	}
}

func TestDecodeChunkBoundaryIndependence(t *testing.T) {
	whole := collect(t, strings.NewReader(sampleStream))
	for _, size := range []int{1, 3, 7, 16, 64} {
		chunked := collect(t, &chunkReader{data: []byte(sampleStream), size: size})
		if len(chunked) != len(whole) {
			t.Fatalf("chunk size %d: expected %d events, got %d", size, len(whole), len(chunked))
		}
		for i := range whole {
			if chunked[i].Type != whole[i].Type {
				t.Fatalf("chunk size %d: event %d diverged: %s vs %s",
					size, i, chunked[i].Type, whole[i].Type)
			}
		}
	}
}

func TestDecodeTrailingPartialLine(t *testing.T) {
	// No trailing newline; the final line must still be attempted at EOF.
	events := collect(t, strings.NewReader(`{"type":"complete"}`))
	if len(events) != 1 || events[0].Type != KindComplete {
		t.Fatalf("trailing line not decoded: %+v", events)
	}
}

func TestDecodeLineValidation(t *testing.T) {
	if _, ok := DecodeLine([]byte(`{"type":"placement"}`)); ok {
		t.Fatalf("placement event without placement body passed validation")
	}
	if _, ok := DecodeLine([]byte(`{"type":"bogus"}`)); ok {
		t.Fatalf("unknown event kind passed validation")
	}
	ev, ok := DecodeLine([]byte(`{"type":"progress","completed":2,"total":4}`))
	if !ok || ev.Completed != 2 || ev.Total != 4 {
		t.Fatalf("valid progress event rejected: %+v %t", ev, ok)
	}
}

func TestOpenStreamsEvents(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = io.WriteString(w, "{\"type\":\"progress\",\"completed\":1,\"total\":1}\n{\"type\":\"complete\"}\n")
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	events, err := c.Open(context.Background(), Request{BrandProfileID: "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := make([]Event, 0)
	for ev := range events {
		got = append(got, ev)
	}
	if len(got) != 2 || got[0].Type != KindProgress || got[1].Type != KindComplete {
		t.Fatalf("unexpected events: %+v", got)
	}
}

func TestOpenExtractsJSONErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error":"brand profile missing"}`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Open(context.Background(), Request{}); err == nil {
		t.Fatalf("expected error for non-success status")
	} else if !strings.Contains(err.Error(), "brand profile missing") {
		t.Fatalf("error body not extracted: %v", err)
	}
}

func TestOpenFallsBackToTextErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "upstream exploded")
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.Open(context.Background(), Request{}); err == nil {
		t.Fatalf("expected error for non-success status")
	} else if !strings.Contains(err.Error(), "upstream exploded") {
		t.Fatalf("text body not extracted: %v", err)
	}
}
