package lattice

import (
	"testing"

	"kanaime/dict"
	"kanaime/model"
)

type zeroConn struct{}

func (zeroConn) Cost(prevRight, curLeft int16) int16 { return 0 }

func TestBuildCoversEveryPositionWithUnknownNodes(t *testing.T) {
	d := dict.New()
	l := Build("あいう", d, 1000)
	for i := 0; i < 3; i++ {
		found := false
		for _, n := range l.ByStart[i] {
			if n.Unknown && n.End == i+1 {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected an unknown node starting at %d", i)
		}
	}
}

func TestDecode1BestPrefersCheapestCandidate(t *testing.T) {
	d := dict.New()
	d.Insert(model.Candidate{Reading: "はし", Surface: "橋", Cost: 100})
	d.Insert(model.Candidate{Reading: "はし", Surface: "箸", Cost: 120})
	d.Insert(model.Candidate{Reading: "はし", Surface: "端", Cost: 130})

	l := Build("はし", d, 1000)
	path, cost := Decode1Best(l, zeroConn{}, nil, 0, 0)
	if len(path) != 1 || path[0].Candidate.Surface != "橋" {
		t.Fatalf("expected single-segment 橋, got %+v", path)
	}
	if cost != 100 {
		t.Fatalf("expected cost 100, got %d", cost)
	}
}

func TestNBestOrderingMatchesSpecExample(t *testing.T) {
	d := dict.New()
	d.Insert(model.Candidate{Reading: "はし", Surface: "橋", Cost: 100})
	d.Insert(model.Candidate{Reading: "はし", Surface: "箸", Cost: 120})
	d.Insert(model.Candidate{Reading: "はし", Surface: "端", Cost: 130})

	l := Build("はし", d, 1000)
	paths := NBest(l, zeroConn{}, nil, 0, 0, 3)
	if len(paths) != 3 {
		t.Fatalf("expected 3 paths, got %d", len(paths))
	}
	wantSurfaces := []string{"橋", "箸", "端"}
	wantCosts := []int32{100, 120, 130}
	var lastCost int32 = -1
	for i, p := range paths {
		if len(p) != 1 || p[0].Candidate.Surface != wantSurfaces[i] {
			t.Fatalf("path %d: expected %s, got %+v", i, wantSurfaces[i], p)
		}
		cost := pathCost(p, zeroConn{})
		if cost != wantCosts[i] {
			t.Fatalf("path %d: expected cost %d, got %d", i, wantCosts[i], cost)
		}
		if cost < lastCost {
			t.Fatalf("expected non-decreasing cost, got %d after %d", cost, lastCost)
		}
		lastCost = cost
	}
}

func TestNBestDeduplicatesOnSurface(t *testing.T) {
	d := dict.New()
	d.Insert(model.Candidate{Reading: "あ", Surface: "あ", Cost: 10})
	d.Insert(model.Candidate{Reading: "あ", Surface: "あ", Cost: 20})

	l := Build("あ", d, 1000)
	paths := NBest(l, zeroConn{}, nil, 0, 0, 5)
	seen := map[string]bool{}
	for _, p := range paths {
		key := surfaceKey(p)
		if seen[key] {
			t.Fatalf("expected no duplicate surface sequences, got repeat of %s", key)
		}
		seen[key] = true
	}
}

func pathCost(nodes []Node, conn Connection) int32 {
	var total int32
	prevRight := model.BOSClassID
	for _, n := range nodes {
		total += int32(n.Candidate.Cost) + int32(conn.Cost(prevRight, n.Candidate.LeftID))
		prevRight = n.Candidate.RightID
	}
	return total
}

func TestEmptyInputReturnsEmptyResult(t *testing.T) {
	d := dict.New()
	l := Build("", d, 1000)
	path, cost := Decode1Best(l, zeroConn{}, nil, 0, 0)
	if path != nil || cost != 0 {
		t.Fatalf("expected empty result for empty kana, got path=%v cost=%d", path, cost)
	}
	if paths := NBest(l, zeroConn{}, nil, 0, 0, 3); paths != nil {
		t.Fatalf("expected nil n-best for empty kana, got %v", paths)
	}
}
