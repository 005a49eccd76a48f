// Package model holds the data types shared across the conversion engine's
// packages: dict, connection, history, lattice, merge, session and neural
// all import this package instead of redeclaring the same shapes.
package model

// Reading is the kana form of a word: the lookup key.
type Reading = string

// Surface is the displayed form chosen for a reading (kanji/kana/mixed).
type Surface = string

// Candidate is one dictionary entry: a reading/surface pair plus the cost
// and connection-class IDs used by the lattice and Viterbi decoder. Cost is
// a negative-log-probability — lower is better.
type Candidate struct {
	Reading Reading `json:"reading"`
	Surface Surface `json:"surface"`
	Cost    int16   `json:"cost"`
	LeftID  int16   `json:"left_id"`
	RightID int16   `json:"right_id"`
}

// Segment is a committed unit of a conversion: one reading/surface pair
// with no cost or connection-class information attached.
type Segment struct {
	Reading Reading `json:"reading"`
	Surface Surface `json:"surface"`
}

// ConversionPath is a whole-sentence candidate: an ordered sequence of
// segments plus the total Viterbi cost used to rank it against its peers.
type ConversionPath struct {
	Segments []Segment `json:"segments"`
	Cost     int32     `json:"cost"`
}

// HistoryEntry tracks how often and how recently a (reading, surface) pair
// was committed by the user.
type HistoryEntry struct {
	Reading      Reading `json:"reading"`
	Surface      Surface `json:"surface"`
	Count        int64   `json:"count"`
	LastUsedTick int64   `json:"last_used_tick"`
	ContextHash  uint64  `json:"context_hash"`
}

// BOSClassID and EOSClassID are the reserved connection-class IDs for the virtual
// begin/end-of-sentence lattice nodes. UnknownClassID marks single-character
// fallback nodes inserted so no lattice position is ever left uncovered.
const (
	BOSClassID     int16 = -1
	EOSClassID     int16 = -2
	UnknownClassID int16 = -3
)
