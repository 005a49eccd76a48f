package lattice

import (
	"kanaime/history"
	"kanaime/model"
)

// cell is one dynamic-programming entry: the best cost of any path from
// BOS to a node ending at a given position via that particular node, plus
// a backpointer to the predecessor node (nil at the BOS boundary).
type cell struct {
	node *Node
	cost int32
	prev *cell
}

// Decode1Best runs the forward Viterbi recurrence of spec.md §4.E: for
// every node v ending at position p, best_cost(v) = node_cost(v) + min
// over predecessors u ending at v.Start of (best_cost(u) +
// conn_cost(u.RightID, v.LeftID)), minus β·history_score(v) and an
// adjacency bonus when (u.Surface, v.Surface) was previously committed
// back to back. Returns the reconstructed path, BOS/EOS excluded, and its
// total cost. An empty lattice returns a nil path and cost 0 (spec.md
// §4.E: "an empty kana returns an empty result, not an error").
func Decode1Best(l *Lattice, conn Connection, h *history.History, beta float64, bigramBonus int32) ([]Node, int32) {
	table := forwardTable(l, conn, h, beta, bigramBonus)
	if table == nil {
		return nil, 0
	}
	cells := table[l.Len()]
	if len(cells) == 0 {
		return nil, 0
	}
	best := bestOf(cells)
	return reconstructPath(best), best.cost
}

// forwardTable computes the Viterbi recurrence per node, not per position:
// every node v ending at position p keeps its own best_cost(v), found by
// minimizing over every node u ending at v.Start (not just the single
// cheapest one), since the connection cost from u to v depends on u's
// specific RightID and a locally costlier u can still win once its
// connection cost to v is cheap enough. NBest reuses this same table as
// its admissible A* heuristic over the reversed search.
func forwardTable(l *Lattice, conn Connection, h *history.History, beta float64, bigramBonus int32) map[int][]*cell {
	n := l.Len()
	if n == 0 {
		return nil
	}
	table := make(map[int][]*cell, n+1)
	table[0] = []*cell{{cost: 0}}

	for p := 1; p <= n; p++ {
		for _, node := range l.SortedNodesAt(p) {
			preds := table[node.Start]
			if len(preds) == 0 {
				continue
			}
			var best *cell
			for _, pred := range preds {
				cost := pred.cost + int32(node.Candidate.Cost) + int32(conn.Cost(predRightID(pred), node.Candidate.LeftID))
				if h != nil {
					cost -= int32(beta * h.Score(node.Candidate.Reading, node.Candidate.Surface))
					if pred.node != nil && h.AdjacentBonus(node.Candidate.Reading, node.Candidate.Surface, adjacencyHash(pred.node.Candidate)) {
						cost -= bigramBonus
					}
				}
				nodeCopy := node
				c := &cell{node: &nodeCopy, cost: cost, prev: pred}
				if best == nil || c.cost < best.cost || (c.cost == best.cost && tieBreakLess(c, best)) {
					best = c
				}
			}
			table[p] = append(table[p], best)
		}
	}
	return table
}

// bestOf returns the cheapest cell among cells ending at the same
// position, applying the same tie-break Decode1Best uses between nodes.
func bestOf(cells []*cell) *cell {
	best := cells[0]
	for _, c := range cells[1:] {
		if c.cost < best.cost || (c.cost == best.cost && tieBreakLess(c, best)) {
			best = c
		}
	}
	return best
}

func predRightID(c *cell) int16 {
	if c.node == nil {
		return model.BOSClassID
	}
	return c.node.Candidate.RightID
}

// adjacencyHash is a cheap stand-in context key for history's bigram-bonus
// lookup: reading+surface uniquely identifies a committed segment within a
// single conversion, which is all AdjacentBonus needs to compare against.
func adjacencyHash(c model.Candidate) uint64 {
	h := uint64(1469598103934665603) // FNV-1a offset basis
	for _, b := range []byte(c.Reading + "\x00" + c.Surface) {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return h
}

func tieBreakLess(a, b *cell) bool {
	// Fewer segments first (shallower backpointer chain), then lower
	// immediate node cost, per spec.md §4.E's tie-breaking rule.
	da, db := depth(a), depth(b)
	if da != db {
		return da < db
	}
	if a.node == nil || b.node == nil {
		return false
	}
	return a.node.Candidate.Cost < b.node.Candidate.Cost
}

func depth(c *cell) int {
	n := 0
	for cur := c; cur != nil && cur.node != nil; cur = cur.prev {
		n++
	}
	return n
}

func reconstructPath(c *cell) []Node {
	var out []Node
	for cur := c; cur != nil && cur.node != nil; cur = cur.prev {
		out = append([]Node{*cur.node}, out...)
	}
	return out
}
