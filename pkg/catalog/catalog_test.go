package catalog

import (
	"context"
	"errors"
	"testing"
)

func TestClassifyTags(t *testing.T) {
	cases := []struct {
		tags []string
		want SourceType
	}{
		{nil, SourceTrend},
		{[]string{"growth"}, SourceTrend},
		{[]string{"question"}, SourceQuestion},
		{[]string{" Event "}, SourceEvent},
		{[]string{"growth", "question"}, SourceQuestion},
	}
	for _, c := range cases {
		if got := ClassifyTags(c.tags); got != c.want {
			t.Fatalf("%v: expected %s, got %s", c.tags, c.want, got)
		}
	}
}

func TestParseSource(t *testing.T) {
	for _, valid := range []string{"trend", "Question", " event "} {
		if _, ok := ParseSource(valid); !ok {
			t.Fatalf("%q rejected", valid)
		}
	}
	for _, invalid := range []string{"", "widget", "trends"} {
		if _, ok := ParseSource(invalid); ok {
			t.Fatalf("%q accepted", invalid)
		}
	}
}

func TestByIDSkipsEmptyIDs(t *testing.T) {
	indexed := ByID([]Seed{{ID: "t1", Title: "one"}, {Title: "anonymous"}})
	if len(indexed) != 1 {
		t.Fatalf("expected 1 indexed seed, got %d", len(indexed))
	}
	if indexed["t1"].Title != "one" {
		t.Fatalf("lookup failed: %+v", indexed)
	}
}

type countingSignals struct {
	seeds []Seed
	err   error
	calls int
}

func (s *countingSignals) Seeds(ctx context.Context) ([]Seed, error) {
	s.calls++
	return s.seeds, s.err
}

type tmpConfig string

func (p tmpConfig) BasePath() string { return string(p) }

func TestCacheReadThrough(t *testing.T) {
	source := &countingSignals{seeds: []Seed{{ID: "t1", Title: "one"}}}
	cache, err := NewCache(source, tmpConfig(t.TempDir()), "brand-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx := context.Background()
	first, err := cache.Seeds(ctx)
	if err != nil || len(first) != 1 {
		t.Fatalf("first read: %v %v", first, err)
	}
	second, err := cache.Seeds(ctx)
	if err != nil || len(second) != 1 {
		t.Fatalf("second read: %v %v", second, err)
	}
	if source.calls != 1 {
		t.Fatalf("expected one upstream fetch, got %d", source.calls)
	}

	if _, err := cache.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if source.calls != 2 {
		t.Fatalf("refresh did not bypass the cache")
	}
}

func TestCacheRequiresSourceOnMiss(t *testing.T) {
	cache, err := NewCache(nil, tmpConfig(t.TempDir()), "brand-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.Seeds(context.Background()); err == nil {
		t.Fatalf("expected error without an upstream source")
	}
}

func TestCachePropagatesSourceError(t *testing.T) {
	source := &countingSignals{err: errors.New("upstream down")}
	cache, err := NewCache(source, tmpConfig(t.TempDir()), "brand-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cache.Seeds(context.Background()); err == nil {
		t.Fatalf("expected upstream error")
	}
}
