package merge

import (
	"bytes"
	"encoding/binary"
	"testing"

	"kanaime/connection"
	"kanaime/dict"
	"kanaime/model"
)

// flatMatrix builds an all-zero dim×dim connection matrix through
// connection's own wire format, so tests exercise the real OpenFlat path
// rather than poking at Matrix's unexported fields.
func flatMatrix(dim int, penalty int16) *connection.Matrix {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.LittleEndian, int32(dim))
	_ = binary.Write(&buf, binary.LittleEndian, make([]int16, dim*dim))
	m, _ := connection.OpenFlat(&buf, penalty)
	return m
}

func TestMergeEmptyReadingReturnsEmpty(t *testing.T) {
	d := dict.New()
	conn := flatMatrix(model.POSBucketCount+1, 10000)
	res := Merge("", d, conn, nil, Options{MaxResults: 10}, false)
	if len(res.Surfaces) != 0 {
		t.Fatalf("expected empty result for empty reading, got %+v", res)
	}
}

func TestMergeDedupesAcrossSources(t *testing.T) {
	d := dict.New()
	d.Insert(model.Candidate{Reading: "きょう", Surface: "今日", Cost: 50})
	conn := flatMatrix(model.POSBucketCount+1, 10000)

	res := Merge("きょう", d, conn, nil, Options{UnknownPenalty: 1000, MaxResults: 10}, false)
	count := 0
	for _, s := range res.Surfaces {
		if s == "今日" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected 今日 to appear exactly once across 1-best+dict sources, got %d", count)
	}
}

func TestMergeCapsAtMaxResults(t *testing.T) {
	d := dict.New()
	for i := 0; i < 10; i++ {
		d.Insert(model.Candidate{Reading: "あ", Surface: string(rune('亜' + i)), Cost: int16(i)})
	}
	conn := flatMatrix(model.POSBucketCount+1, 10000)

	res := Merge("あ", d, conn, nil, Options{UnknownPenalty: 1000, MaxResults: 3}, false)
	if len(res.Surfaces) > 3 {
		t.Fatalf("expected at most 3 surfaces, got %d", len(res.Surfaces))
	}
}
