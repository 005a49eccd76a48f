// Package history implements component D: per-user commit history used to
// bias ranking toward previously chosen (reading, surface) pairs, with
// recency+frequency eviction once the entry count exceeds a configured
// bound.
//
// Grounded on other_examples' japaniel-reader ingest.go shared-index shape
// (a single writer behind a mutex, readers never blocking) combined with
// go-immutable-adaptive-radix's persistent Insert: the writer builds a new
// root and swaps an atomic pointer, so History.Score/Lookup never take a
// lock.
package history

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"

	adaptive "github.com/absolutelightning/go-immutable-adaptive-radix"

	"kanaime/config"
	"kanaime/kerr"
	"kanaime/model"
)

// History is the single-writer/multi-reader store of committed
// (reading, surface) pairs keyed by "reading\x00surface".
type History struct {
	writeMu sync.Mutex
	root    atomic.Pointer[adaptive.RadixTree[*model.HistoryEntry]]
	cfg     config.Engine
	ring    *contextRing
	refs    int32
}

// AddRef records that a Session now holds a reference to h.
func (h *History) AddRef() { atomic.AddInt32(&h.refs, 1) }

// Release drops a reference taken by AddRef.
func (h *History) Release() { atomic.AddInt32(&h.refs, -1) }

// Close reports an error if any Session still holds a reference, per the
// owned-handle lifecycle discipline supplemented from
// original_source/engine/include/engine.h (SPEC_FULL §C).
func (h *History) Close() error {
	if atomic.LoadInt32(&h.refs) > 0 {
		return kerr.New("history.Close", kerr.InvalidArgument)
	}
	return nil
}

func key(reading, surface string) []byte {
	b := make([]byte, 0, len(reading)+1+len(surface))
	b = append(b, reading...)
	b = append(b, 0)
	b = append(b, surface...)
	return b
}

// New returns an empty History configured with cfg's HistoryMaxEntries,
// HistoryHalfLifeTicks and CommittedContextCap.
func New(cfg config.Engine) (*History, error) {
	if err := CheckCapacity(cfg); err != nil {
		return nil, err
	}
	h := &History{cfg: cfg, ring: newContextRing(cfg.CommittedContextCap)}
	h.root.Store(adaptive.NewRadixTree[*model.HistoryEntry]())
	return h, nil
}

func (h *History) currentRoot() *adaptive.RadixTree[*model.HistoryEntry] {
	return h.root.Load()
}

// Record registers a commit of (reading, surface) at tick, incrementing its
// count and refreshing its recency. contextHash identifies the preceding
// committed segment (0 if none), used by merge's bigram-adjacency bonus.
// Record is the single-writer path: concurrent callers serialize here, but
// concurrent Score/Lookup readers are never blocked.
func (h *History) Record(reading, surface string, tick int64, contextHash uint64) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	root := h.currentRoot()
	k := key(reading, surface)
	entry, found := root.Get(k)
	if !found {
		entry = &model.HistoryEntry{Reading: reading, Surface: surface}
	} else {
		// Persistent tree: copy before mutating so any reader still
		// holding the old root sees the old entry unchanged.
		cp := *entry
		entry = &cp
	}
	entry.Count++
	entry.LastUsedTick = tick
	entry.ContextHash = contextHash

	newRoot, _, _ := root.Insert(k, entry)
	if newRoot.Len() > h.cfg.HistoryMaxEntries {
		newRoot = h.evict(newRoot, tick)
	}
	h.root.Store(newRoot)
	h.ring.push(reading, surface)
	h.ring.setTick(tick)
}

// Score returns a non-negative value that grows with how often and how
// recently (reading, surface) was committed, decaying exponentially with
// half-life cfg.HistoryHalfLifeTicks; zero if never recorded.
func (h *History) Score(reading, surface string) float64 {
	entry, ok := h.currentRoot().Get(key(reading, surface))
	if !ok {
		return 0
	}
	return scoreEntry(entry, h.ring.lastTick(), h.cfg.HistoryHalfLifeTicks)
}

func scoreEntry(e *model.HistoryEntry, now int64, halfLife int64) float64 {
	if halfLife <= 0 {
		halfLife = 1
	}
	age := now - e.LastUsedTick
	if age < 0 {
		age = 0
	}
	decay := math.Exp2(-float64(age) / float64(halfLife))
	return float64(e.Count) * decay
}

// Count returns the raw commit count for (reading, surface) with no
// recency decay applied, the term dict.PredictRanked's
// cost − α·ln(1+history_count(reading,surface)) formula (spec.md §4.B)
// calls for.
func (h *History) Count(reading, surface string) int64 {
	entry, ok := h.currentRoot().Get(key(reading, surface))
	if !ok {
		return 0
	}
	return entry.Count
}

// Lookup returns the raw entry for (reading, surface), if recorded.
func (h *History) Lookup(reading, surface string) (*model.HistoryEntry, bool) {
	return h.currentRoot().Get(key(reading, surface))
}

// AdjacentBonus reports whether surface was ever committed immediately
// after a segment whose reading+surface hashes to prevContextHash — used
// by the lattice's Viterbi edge cost to reward previously-seen bigrams.
func (h *History) AdjacentBonus(reading, surface string, prevContextHash uint64) bool {
	entry, ok := h.currentRoot().Get(key(reading, surface))
	return ok && entry.ContextHash == prevContextHash
}

// LastCommitted returns up to n of the most recently committed segments,
// most recent first, bounded by cfg.CommittedContextCap.
func (h *History) LastCommitted(n int) []model.Segment {
	return h.ring.last(n)
}

// Len reports the number of distinct (reading, surface) pairs recorded.
func (h *History) Len() int { return h.currentRoot().Len() }

// evict drops the least valuable entries (lowest recency+frequency score)
// until the tree is back at cfg.HistoryMaxEntries, per spec.md §4.D.
func (h *History) evict(root *adaptive.RadixTree[*model.HistoryEntry], now int64) *adaptive.RadixTree[*model.HistoryEntry] {
	type scored struct {
		key   []byte
		score float64
	}
	var all []scored
	root.Walk(func(k []byte, v *model.HistoryEntry) bool {
		all = append(all, scored{key: append([]byte{}, k...), score: scoreEntry(v, now, h.cfg.HistoryHalfLifeTicks)})
		return false
	})
	sort.Slice(all, func(i, j int) bool { return all[i].score < all[j].score })

	toDrop := root.Len() - h.cfg.HistoryMaxEntries
	for i := 0; i < toDrop && i < len(all); i++ {
		newRoot, _, _ := root.Delete(all[i].key)
		root = newRoot
	}
	return root
}

// CheckCapacity returns a *kerr.Error with kerr.InvalidArgument if
// cfg.HistoryMaxEntries is non-positive, the one invalid-argument case New's caller can
// hit before any Record ever runs.
func CheckCapacity(cfg config.Engine) error {
	if cfg.HistoryMaxEntries <= 0 {
		return kerr.New("history.New", kerr.InvalidArgument)
	}
	return nil
}
