// Package dict implements component B: a trie-backed dictionary mapping a
// kana reading to its candidate surface forms, read-only once Open returns.
package dict

import (
	"math"
	"sort"
	"sync/atomic"

	adaptive "github.com/absolutelightning/go-immutable-adaptive-radix"

	"kanaime/history"
	"kanaime/kerr"
	"kanaime/model"
)

// Dictionary is a read-only-after-open trie from reading to candidate
// surface forms. The backing radix tree is persistent and readers take no
// lock, so any number of goroutines may call Lookup/Predict concurrently
// (spec.md §3/§5). Insert and Merge replace the tree field without
// synchronization and are not safe to run concurrently with readers; they
// are for building the dictionary before it is shared.
type Dictionary struct {
	tree *adaptive.RadixTree[[]model.Candidate]
	refs int32
}

// New returns an empty Dictionary; callers normally reach it through
// OpenFromJMdict/OpenSystemDictionary/Merge instead.
func New() *Dictionary {
	return &Dictionary{tree: adaptive.NewRadixTree[[]model.Candidate]()}
}

// Insert merges a candidate into the tree under its reading, appending to
// any existing entries for that reading and keeping them cost-sorted so
// Lookup/Predict never re-sort on the hot path.
func (d *Dictionary) Insert(c model.Candidate) {
	existing, _ := d.tree.Get([]byte(c.Reading))
	merged := append(append([]model.Candidate{}, existing...), c)
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Cost < merged[j].Cost })
	newTree, _, _ := d.tree.Insert([]byte(c.Reading), merged)
	d.tree = newTree
}

// Merge folds other's entries into d, keeping d's own tree otherwise
// untouched — used to combine a JMdict-backed dictionary with a
// kagome-seeded one into a single lookup surface.
func (d *Dictionary) Merge(other *Dictionary) {
	other.tree.Walk(func(k []byte, v []model.Candidate) bool {
		for _, c := range v {
			d.Insert(c)
		}
		return false
	})
}

// Lookup returns every candidate stored under an exact reading, cost-sorted
// ascending (cheapest/best first), per spec.md §4.B.
func (d *Dictionary) Lookup(reading string) ([]model.Candidate, bool) {
	v, ok := d.tree.Get([]byte(reading))
	return v, ok
}

// Predict returns candidates for every reading in the trie that starts
// with prefix (a reading equal to prefix included), most-likely first, capped at limit (0 means
// unbounded). Ordering ties break on reading length (shorter first) then
// lexicographic, so results are deterministic across calls.
func (d *Dictionary) Predict(prefix string, limit int) []model.Candidate {
	var out []model.Candidate
	it := d.tree.Root().Iterator()
	it.SeekPrefix([]byte(prefix))
	type hit struct {
		reading string
		cand    model.Candidate
	}
	var hits []hit
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		for _, c := range v {
			hits = append(hits, hit{reading: string(k), cand: c})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].cand.Cost != hits[j].cand.Cost {
			return hits[i].cand.Cost < hits[j].cand.Cost
		}
		if len(hits[i].reading) != len(hits[j].reading) {
			return len(hits[i].reading) < len(hits[j].reading)
		}
		return hits[i].reading < hits[j].reading
	})
	for _, h := range hits {
		out = append(out, h.cand)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// effectiveScore implements spec.md §4.B's predict_ranked rerank formula:
// cost − α·ln(1+history_count(reading,surface)).
func effectiveScore(c model.Candidate, h *history.History, alpha float64) float64 {
	count := int64(0)
	if h != nil {
		count = h.Count(c.Reading, c.Surface)
	}
	return float64(c.Cost) - alpha*math.Log1p(float64(count))
}

// PredictRanked reranks Predict's output by the cost − α·ln(1+count)
// formula spec.md §4.B specifies, so a previously-committed surface can
// outrank a nominally cheaper dictionary candidate.
func (d *Dictionary) PredictRanked(prefix string, h *history.History, alpha float64, limit int) []model.Candidate {
	all := d.Predict(prefix, 0)
	type scored struct {
		cand  model.Candidate
		score float64
	}
	ss := make([]scored, len(all))
	for i, c := range all {
		ss[i] = scored{cand: c, score: effectiveScore(c, h, alpha)}
	}
	sort.SliceStable(ss, func(i, j int) bool { return ss[i].score < ss[j].score })
	out := make([]model.Candidate, 0, len(ss))
	for _, s := range ss {
		out = append(out, s.cand)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// LookupWithHistory is Lookup reordered by the same effectiveScore rerank,
// the history-aware sibling operation confirmed distinct from plain
// lookup by original_source/engine/include/engine.h's
// lex_dict_lookup_with_history.
func (d *Dictionary) LookupWithHistory(reading string, h *history.History, alpha float64) []model.Candidate {
	entries, ok := d.Lookup(reading)
	if !ok {
		return nil
	}
	out := append([]model.Candidate{}, entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return effectiveScore(out[i], h, alpha) < effectiveScore(out[j], h, alpha)
	})
	return out
}

// Len reports the number of distinct readings held.
func (d *Dictionary) Len() int { return d.tree.Len() }

// Readings returns every distinct reading held, used once per lattice
// Build call to seed an Aho-Corasick automaton over the dictionary.
func (d *Dictionary) Readings() []string {
	out := make([]string, 0, d.tree.Len())
	d.tree.Walk(func(k []byte, v []model.Candidate) bool {
		out = append(out, string(k))
		return false
	})
	return out
}

// AddRef records that a Session now holds a reference to d; Close refuses
// to run while refs > 0, per the owned-handle lifecycle discipline
// supplemented from original_source/engine/include/engine.h (SPEC_FULL §C).
func (d *Dictionary) AddRef() { atomic.AddInt32(&d.refs, 1) }

// Release drops a reference taken by AddRef.
func (d *Dictionary) Release() { atomic.AddInt32(&d.refs, -1) }

// Close reports an error if any Session still holds a reference.
func (d *Dictionary) Close() error {
	if atomic.LoadInt32(&d.refs) > 0 {
		return kerr.New("dict.Close", kerr.InvalidArgument)
	}
	return nil
}
