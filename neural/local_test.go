package neural

import (
	"context"
	"testing"
)

func TestRerankCandidatesOrdersByFrequency(t *testing.T) {
	s := &LocalScorer{continuations: map[string][]weightedSurface{
		"今日": {{surface: "は", count: 5}, {surface: "の", count: 2}},
	}}
	out, err := s.RerankCandidates(context.Background(), "今日", "", 0)
	if err != nil {
		t.Fatalf("RerankCandidates: %v", err)
	}
	if len(out) != 2 || out[0] != "は" || out[1] != "の" {
		t.Fatalf("expected [は の], got %v", out)
	}
}

func TestGhostTextEmptyContextReturnsEmpty(t *testing.T) {
	s := &LocalScorer{continuations: map[string][]weightedSurface{}}
	out, err := s.GhostText(context.Background(), "", 5)
	if err != nil {
		t.Fatalf("GhostText: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty ghost text, got %q", out)
	}
}

func TestGhostTextChainsContinuations(t *testing.T) {
	s := &LocalScorer{continuations: map[string][]weightedSurface{
		"今日": {{surface: "は", count: 3}},
		"は":  {{surface: "晴れ", count: 1}},
	}}
	out, err := s.GhostText(context.Background(), "今日", 2)
	if err != nil {
		t.Fatalf("GhostText: %v", err)
	}
	if out != "は晴れ" {
		t.Fatalf("expected chained continuation は晴れ, got %q", out)
	}
}
