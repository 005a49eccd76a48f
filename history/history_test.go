package history

import (
	"testing"

	"kanaime/config"
)

func TestRecordAndScore(t *testing.T) {
	cfg := config.Default()
	h, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if s := h.Score("きょう", "今日"); s != 0 {
		t.Fatalf("expected 0 score before any record, got %v", s)
	}

	h.Record("きょう", "今日", 1000, 0)
	h.Record("きょう", "今日", 1000, 0)

	entry, ok := h.Lookup("きょう", "今日")
	if !ok {
		t.Fatalf("expected entry to be recorded")
	}
	if entry.Count != 2 {
		t.Fatalf("expected count 2, got %d", entry.Count)
	}
	if s := h.Score("きょう", "今日"); s <= 0 {
		t.Fatalf("expected positive score after recording, got %v", s)
	}
}

func TestScoreGrowsAfterLaterRecord(t *testing.T) {
	cfg := config.Default()
	cfg.HistoryHalfLifeTicks = 100
	h, _ := New(cfg)

	h.Record("かわ", "川", 0, 0)
	freshScore := h.Score("かわ", "川")

	h.Record("かわ", "川", 1000, 0) // far future tick ages out the ring's "now"
	agedButRefreshed := h.Score("かわ", "川")

	if agedButRefreshed < freshScore {
		t.Fatalf("expected score to grow after a fresh record, got fresh=%v refreshed=%v", freshScore, agedButRefreshed)
	}
}

func TestEvictionBoundsEntryCount(t *testing.T) {
	cfg := config.Default()
	cfg.HistoryMaxEntries = 3
	h, _ := New(cfg)

	for i := 0; i < 10; i++ {
		h.Record("reading", string(rune('a'+i)), int64(i), 0)
	}
	if h.Len() > cfg.HistoryMaxEntries {
		t.Fatalf("expected eviction to bound history at %d entries, got %d", cfg.HistoryMaxEntries, h.Len())
	}
}

func TestLastCommittedOrder(t *testing.T) {
	cfg := config.Default()
	h, _ := New(cfg)
	h.Record("いち", "一", 1, 0)
	h.Record("に", "二", 2, 0)
	h.Record("さん", "三", 3, 0)

	last := h.LastCommitted(2)
	if len(last) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(last))
	}
	if last[0].Surface != "三" || last[1].Surface != "二" {
		t.Fatalf("expected most-recent-first order, got %+v", last)
	}
}

func TestNewRejectsInvalidCapacity(t *testing.T) {
	cfg := config.Default()
	cfg.HistoryMaxEntries = 0
	if _, err := New(cfg); err == nil {
		t.Fatalf("expected error for zero HistoryMaxEntries")
	}
}
