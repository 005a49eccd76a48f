package neural

import (
	"context"
	"sort"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"kanaime/kerr"
)

// LocalScorer is the engine's default, non-opaque Scorer implementation:
// it tokenizes a small background corpus with kagome (the same call the
// teacher's tokenize.go makes) and counts surface bigrams, answering
// ghost-text and rerank requests from that frequency table. It exists so
// the engine has a working Scorer out of the box; a real neural backend
// is expected to implement Scorer directly and is never required to go
// through kagome at all.
type LocalScorer struct {
	continuations map[string][]weightedSurface // keyed by the preceding surface
}

type weightedSurface struct {
	surface string
	count   int
}

// NewLocalScorer tokenizes corpus once and builds the bigram continuation
// table LocalScorer answers from.
func NewLocalScorer(corpus []string) (*LocalScorer, error) {
	kg, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, kerr.Wrap("neural.NewLocalScorer", kerr.IoCorrupted, err)
	}

	s := &LocalScorer{continuations: make(map[string][]weightedSurface)}
	counts := make(map[string]map[string]int)
	for _, sentence := range corpus {
		toks := kg.Tokenize(sentence)
		for i := 1; i < len(toks); i++ {
			prev, cur := toks[i-1].Surface, toks[i].Surface
			if prev == "" || cur == "" {
				continue
			}
			m, ok := counts[prev]
			if !ok {
				m = make(map[string]int)
				counts[prev] = m
			}
			m[cur]++
		}
	}
	for prev, m := range counts {
		var list []weightedSurface
		for surface, c := range m {
			list = append(list, weightedSurface{surface: surface, count: c})
		}
		sort.Slice(list, func(i, j int) bool { return list[i].count > list[j].count })
		s.continuations[prev] = list
	}
	return s, nil
}

// GhostText completes context with the highest-frequency continuation of
// its trailing surface, repeated up to maxTokens times (chained through
// the continuation table), or "" if context has no known continuation.
func (s *LocalScorer) GhostText(ctx context.Context, context string, maxTokens int) (string, error) {
	if context == "" || maxTokens <= 0 {
		return "", nil
	}
	var b strings.Builder
	cur := s.lastSurface(context)
	for i := 0; i < maxTokens; i++ {
		list := s.continuations[cur]
		if len(list) == 0 {
			break
		}
		b.WriteString(list[0].surface)
		cur = list[0].surface
	}
	return b.String(), nil
}

// RerankCandidates returns up to max surfaces previously seen to follow
// the trailing surface of context, most-frequent first — the neural P'
// list of spec.md §4.H (merge.Merge does not call it). reading is
// unused by the local frequency-only backend but kept in the interface so
// a real model can condition on it.
func (s *LocalScorer) RerankCandidates(ctx context.Context, context, reading string, max int) ([]string, error) {
	cur := s.lastSurface(context)
	list := s.continuations[cur]
	out := make([]string, 0, max)
	for _, w := range list {
		out = append(out, w.surface)
		if max > 0 && len(out) >= max {
			break
		}
	}
	return out, nil
}

// lastSurface returns the longest suffix of context that is a surface in
// the continuation table, or "" if none is.
func (s *LocalScorer) lastSurface(context string) string {
	runes := []rune(context)
	for i := range runes {
		if _, ok := s.continuations[string(runes[i:])]; ok {
			return string(runes[i:])
		}
	}
	return ""
}
