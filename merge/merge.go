// Package merge implements component F: the candidate merger that
// combines exact dictionary lookup, 1-best conversion, n-best whole-
// sentence paths, and history-boosted predictions into the single ranked
// list a session presents to the user.
//
// Grounded on the teacher's lookup/lookup.go + analyze/analyze.go
// two-stage shape ("enrich tokens, then assemble a structured result"),
// generalized from token enrichment to spec.md §4.F's four-source merge.
package merge

import (
	"kanaime/connection"
	"kanaime/dict"
	"kanaime/history"
	"kanaime/lattice"
	"kanaime/model"
)

// Result is the merger's output: a deduplicated, capped ordering of
// surfaces plus the whole-sentence segment breakdowns behind any
// multi-segment entry, indexed the same way.
type Result struct {
	Surfaces []string
	Paths    [][]model.Segment
}

// Options bundles the merger's tunables; all but NBestCount mirror a
// config.Engine field.
type Options struct {
	UnknownPenalty int16
	HistoryAlpha   float64
	HistoryBeta    float64
	BigramBonus    int32
	MaxResults     int
	NBestCount     int
}

// Merge runs spec.md §4.F's four-source merge for reading against a
// conversion vocabulary, optionally biased by user history. predict
// selects whether history-boosted predictions for readings extending
// reading are folded in ("only for prediction mode").
func Merge(reading string, d *dict.Dictionary, conn *connection.Matrix, h *history.History, opt Options, predict bool) Result {
	if reading == "" {
		return Result{}
	}

	seen := make(map[string]bool)
	var res Result
	addSurface := func(surface string, segs []model.Segment) {
		if seen[surface] || surface == "" {
			return
		}
		if opt.MaxResults > 0 && len(res.Surfaces) >= opt.MaxResults {
			return
		}
		seen[surface] = true
		res.Surfaces = append(res.Surfaces, surface)
		res.Paths = append(res.Paths, segs)
	}

	l := lattice.Build(reading, d, opt.UnknownPenalty)

	// 1. 1-best conversion surface (C).
	best, _ := lattice.Decode1Best(l, conn, h, opt.HistoryBeta, opt.BigramBonus)
	addSurface(concatSurface(best), toSegments(best))

	// 2. Exact dictionary lookup (D).
	if entries, ok := d.Lookup(reading); ok {
		for _, c := range entries {
			addSurface(c.Surface, []model.Segment{{Reading: c.Reading, Surface: c.Surface}})
		}
	}

	// 3. N-best whole-sentence paths (P).
	if opt.NBestCount > 0 {
		for _, path := range lattice.NBest(l, conn, h, opt.HistoryBeta, opt.BigramBonus, opt.NBestCount) {
			addSurface(concatSurface(path), toSegments(path))
		}
	}

	// 4. History-boosted predictions for readings extending reading (H),
	// prediction mode only.
	if predict && h != nil {
		for _, c := range d.PredictRanked(reading, h, opt.HistoryAlpha, opt.MaxResults) {
			if c.Reading == reading {
				continue // already covered by D above
			}
			addSurface(c.Surface, []model.Segment{{Reading: c.Reading, Surface: c.Surface}})
		}
	}

	return res
}

func toSegments(nodes []lattice.Node) []model.Segment {
	out := make([]model.Segment, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, model.Segment{Reading: n.Candidate.Reading, Surface: n.Candidate.Surface})
	}
	return out
}

func concatSurface(nodes []lattice.Node) string {
	s := ""
	for _, n := range nodes {
		s += n.Candidate.Surface
	}
	return s
}
