// Package config carries the tunable constants referenced throughout
// spec.md §6: the unknown-node penalty, the history rerank/bias
// coefficients, and the bounds applied to candidate lists and history size.
package config

// Suggested defaults from spec.md §6.
const (
	DefaultUnknownPenalty        int16 = 1000
	DefaultHistoryAlpha          float64 = 500
	DefaultHistoryBeta           float64 = 200
	DefaultMaxCandidates         int     = 20
	DefaultHistoryMaxEntries     int     = 50000
	DefaultCommittedContextCap   int     = 64
	DefaultHistoryHalfLifeTicks  int64   = 30 * 24 * 60 * 60 // 30 days, in second-ticks
	DefaultConnectionPenalty     int16   = 10000
	DefaultBigramAdjacencyBonus  int32   = 50
)

// Engine bundles every tunable constant the lattice, history and merger
// consult. Zero value is invalid; use Default() to obtain sane defaults and
// override individual fields.
type Engine struct {
	// UnknownPenalty is the per-character cost charged to a lattice's
	// unknown-node fallback.
	UnknownPenalty int16
	// HistoryAlpha scales history_count(reading,surface) when reranking
	// dictionary predictions (predict_ranked).
	HistoryAlpha float64
	// HistoryBeta scales history score when biasing Viterbi node costs.
	HistoryBeta float64
	// MaxCandidates bounds the merger's deduplicated surface output.
	MaxCandidates int
	// HistoryMaxEntries bounds the number of (reading,surface) entries
	// kept in the user history before recency+frequency eviction runs.
	HistoryMaxEntries int
	// CommittedContextCap bounds the rune length of the session's
	// committed-context suffix.
	CommittedContextCap int
	// HistoryHalfLifeTicks is the half-life, in the caller's tick units,
	// used by the exponential decay applied during eviction scoring.
	HistoryHalfLifeTicks int64
	// ConnectionPenalty is the sentinel cost returned for an
	// out-of-range connection-matrix lookup.
	ConnectionPenalty int16
	// BigramAdjacencyBonus is subtracted from a Viterbi edge's cost when
	// the two segments it connects were previously recorded as an
	// adjacent pair in the user history.
	BigramAdjacencyBonus int32
}

// Default returns an Engine populated with the suggested defaults from
// spec.md §6.
func Default() Engine {
	return Engine{
		UnknownPenalty:       DefaultUnknownPenalty,
		HistoryAlpha:         DefaultHistoryAlpha,
		HistoryBeta:          DefaultHistoryBeta,
		MaxCandidates:        DefaultMaxCandidates,
		HistoryMaxEntries:    DefaultHistoryMaxEntries,
		CommittedContextCap:  DefaultCommittedContextCap,
		HistoryHalfLifeTicks: DefaultHistoryHalfLifeTicks,
		ConnectionPenalty:    DefaultConnectionPenalty,
		BigramAdjacencyBonus: DefaultBigramAdjacencyBonus,
	}
}
