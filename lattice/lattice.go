// Package lattice implements component E: kana lattice construction over a
// dictionary, plus 1-best Viterbi and lazy n-best decode.
//
// Grounded on ericlingit-jieba-go's tokenizer.go (buildDAG/findDAGPath/
// cutDAG: a DAG over input positions plus per-position best-path DP) —
// generalized here from jieba's single-best word-frequency DP to the full
// Viterbi-with-history-bias and lazy-A*-n-best spec.md §4.E requires.
// Substring-match enumeration uses itgcl/ahocorasick over the dictionary's
// readings instead of jieba's nested prefix-dict probing.
package lattice

import (
	"sort"
	"strings"

	"github.com/itgcl/ahocorasick"

	"kanaime/connection"
	"kanaime/dict"
	"kanaime/model"
)

// Node is one lattice candidate spanning kana[Start:End).
type Node struct {
	Start, End int
	Candidate  model.Candidate
	Unknown    bool
}

// Lattice is the DAG of candidate nodes over one input's positions, built
// fresh per conversion and discarded after decode (spec.md §4.E: "do not
// cache lattices across keystrokes").
type Lattice struct {
	kana      []rune
	ByStart   map[int][]Node // nodes grouped by Start position
	ByEnd     map[int][]Node // nodes grouped by End position
	unknownID int16
}

// Build expands every dictionary-reading substring of kana into a node,
// plus one unknown node per position so no gap can occur (spec.md §4.E).
func Build(kana string, d *dict.Dictionary, unknownPenalty int16) *Lattice {
	runes := []rune(kana)
	n := len(runes)
	l := &Lattice{
		kana:      runes,
		ByStart:   make(map[int][]Node, n),
		ByEnd:     make(map[int][]Node, n),
		unknownID: model.UnknownClassID,
	}
	if n == 0 {
		return l
	}

	for _, reading := range candidateReadings(runes, d) {
		readingRunes := []rune(reading)
		rl := len(readingRunes)
		for start := 0; start+rl <= n; start++ {
			if string(runes[start:start+rl]) != reading {
				continue
			}
			cands, ok := d.Lookup(reading)
			if !ok {
				continue
			}
			for _, c := range cands {
				l.add(Node{Start: start, End: start + rl, Candidate: c})
			}
		}
	}

	for i := 0; i < n; i++ {
		l.add(Node{
			Start: i, End: i + 1, Unknown: true,
			Candidate: model.Candidate{
				Reading: string(runes[i : i+1]),
				Surface: string(runes[i : i+1]),
				Cost:    unknownPenalty,
				LeftID:  model.UnknownClassID,
				RightID: model.UnknownClassID,
			},
		})
	}
	return l
}

func (l *Lattice) add(n Node) {
	l.ByStart[n.Start] = append(l.ByStart[n.Start], n)
	l.ByEnd[n.End] = append(l.ByEnd[n.End], n)
}

// Len reports the input length in runes.
func (l *Lattice) Len() int { return len(l.kana) }

// candidateReadings uses an Aho-Corasick automaton over every reading the
// dictionary holds to find, in one pass, which readings occur anywhere in
// kana — narrowing the O(readings) set down before the per-position exact
// window check above does the O(1) Get per (start, length) candidate.
func candidateReadings(kana []rune, d *dict.Dictionary) []string {
	all := allReadings(d)
	if len(all) == 0 {
		return nil
	}
	matcher := ahocorasick.NewStringMatcher(all)
	idxs := matcher.MatchString(string(kana))
	out := make([]string, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, all[i])
	}
	return out
}

// allReadings walks the dictionary's trie to collect every distinct
// reading it holds, used once per Build call to seed the Aho-Corasick
// automaton.
func allReadings(d *dict.Dictionary) []string {
	return d.Readings()
}

// Connection is the subset of connection.Matrix's API the decoders need,
// kept as an interface so lattice tests can substitute a fixed table.
type Connection interface {
	Cost(prevRight, curLeft int16) int16
}

var _ Connection = (*connection.Matrix)(nil)

// SortedNodesAt returns the nodes ending at position p sorted by
// ascending candidate cost, for deterministic tie-breaking during decode.
func (l *Lattice) SortedNodesAt(endPos int) []Node {
	nodes := append([]Node{}, l.ByEnd[endPos]...)
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Candidate.Cost < nodes[j].Candidate.Cost })
	return nodes
}

// Surface renders a node's committed text, falling back to a verbatim kana
// slice guard for defensive callers holding a stale node.
func (l *Lattice) Surface(n Node) string {
	if n.Candidate.Surface != "" {
		return n.Candidate.Surface
	}
	return string(l.kana[n.Start:n.End])
}

// surfaceKey renders the surface sequence of a path for n-best dedup.
func surfaceKey(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(n.Candidate.Surface)
		b.WriteByte(0)
	}
	return b.String()
}
