package lattice

import (
	"container/heap"

	"kanaime/history"
	"kanaime/model"
)

// partialPath is one entry in the n-best search frontier: a path fragment
// built backward from EOS to the node at pos, plus the true cost spent so
// far and the admissible heuristic (the forward 1-best table's cost from
// BOS to pos) estimating the rest.
type partialPath struct {
	nodes   []Node // backward order: nodes[0] is nearest EOS
	pos     int    // position this fragment currently reaches back to
	spent   int32
	priority int32 // spent + heuristic(pos); the A* ordering key
}

type frontier []*partialPath

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].priority < f[j].priority }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x interface{}) { *f = append(*f, x.(*partialPath)) }
func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// NBest runs a lazy A* search over the reversed lattice (working backward
// from EOS toward BOS), using the forward 1-best table as an admissible
// heuristic, per spec.md §4.E: "an exact lazy algorithm ... to emit paths
// in non-decreasing total cost". Deduplicates on surface-sequence
// equality and stops at n unique paths or exhaustion.
func NBest(l *Lattice, conn Connection, h *history.History, beta float64, bigramBonus int32, n int) [][]Node {
	if l.Len() == 0 || n <= 0 {
		return nil
	}
	best := forwardTable(l, conn, h, beta, bigramBonus)
	if len(best[l.Len()]) == 0 {
		return nil
	}
	heuristicCache := make(map[int]int32, len(best))
	heuristic := func(pos int) int32 {
		if v, ok := heuristicCache[pos]; ok {
			return v
		}
		cells := best[pos]
		if len(cells) == 0 {
			heuristicCache[pos] = 1 << 30
			return 1 << 30
		}
		v := bestOf(cells).cost
		heuristicCache[pos] = v
		return v
	}

	fr := &frontier{{nodes: nil, pos: l.Len(), spent: 0, priority: heuristic(l.Len())}}
	heap.Init(fr)

	seen := make(map[string]bool, n)
	var out [][]Node

	for fr.Len() > 0 && len(out) < n {
		cur := heap.Pop(fr).(*partialPath)
		if cur.pos == 0 {
			path := forward(cur.nodes)
			key := surfaceKey(path)
			if !seen[key] {
				seen[key] = true
				out = append(out, path)
			}
			continue
		}
		for _, node := range l.ByEnd[cur.pos] {
			if node.Start >= cur.pos {
				continue
			}
			// Charge the same terms Decode1Best's recurrence does: the
			// edge from node to its right neighbour (cur.nodes' last
			// element), plus the BOS edge once node reaches position 0.
			edgeCost := int32(node.Candidate.Cost)
			if len(cur.nodes) > 0 {
				right := cur.nodes[len(cur.nodes)-1].Candidate
				edgeCost += int32(conn.Cost(node.Candidate.RightID, right.LeftID))
				if h != nil && h.AdjacentBonus(right.Reading, right.Surface, adjacencyHash(node.Candidate)) {
					edgeCost -= bigramBonus
				}
			}
			if node.Start == 0 {
				edgeCost += int32(conn.Cost(model.BOSClassID, node.Candidate.LeftID))
			}
			if h != nil {
				edgeCost -= int32(beta * h.Score(node.Candidate.Reading, node.Candidate.Surface))
			}
			nodeCopy := node
			next := &partialPath{
				nodes: append(append([]Node{}, cur.nodes...), nodeCopy),
				pos:   node.Start,
				spent: cur.spent + edgeCost,
			}
			next.priority = next.spent + heuristic(next.pos)
			heap.Push(fr, next)
		}
	}
	return out
}

func forward(backward []Node) []Node {
	out := make([]Node, len(backward))
	for i, n := range backward {
		out[len(backward)-1-i] = n
	}
	return out
}
