package session

import (
	"testing"

	"kanaime/config"
	"kanaime/dict"
	"kanaime/model"
)

func newTestSession() *Session {
	d := dict.New()
	d.Insert(model.Candidate{Reading: "きょう", Surface: "今日", Cost: 50})
	return New(Options{Dict: d, Config: config.Default()})
}

func TestHandleRuneComposesKana(t *testing.T) {
	s := newTestSession()
	for _, r := range "kyou" {
		resp := s.HandleRune(r)
		if !resp.Consumed {
			t.Fatalf("expected rune to be consumed")
		}
	}
	if s.composed != "きょう" && s.applyConversionMode(s.composed)+s.pending != "きょう" {
		t.Fatalf("expected composed kana きょう, got composed=%q pending=%q", s.composed, s.pending)
	}
}

func TestReturnCommitsComposedKanaWithoutCandidates(t *testing.T) {
	s := newTestSession()
	for _, r := range "a" {
		s.HandleRune(r)
	}
	resp := s.HandleKey(KeyReturn, false)
	if !resp.Consumed || resp.CommitText != "あ" {
		t.Fatalf("expected commit of あ, got %+v", resp)
	}
	if s.IsComposing() {
		t.Fatalf("expected session to reset to non-composing after commit")
	}
}

func TestSpaceRequestsCandidatesThenOpensOnSecondPress(t *testing.T) {
	s := newTestSession()
	for _, r := range "kyou" {
		s.HandleRune(r)
	}
	resp := s.HandleKey(KeySpace, false)
	if !resp.NeedsCandidates || resp.CandidateReading != "きょう" {
		t.Fatalf("expected first Space to request candidates for きょう, got %+v", resp)
	}

	delivered := s.ReceiveCandidates(s.currentGeneration(), "きょう", []model.Candidate{
		{Reading: "きょう", Surface: "今日", Cost: 50},
	})
	if delivered.Consumed {
		t.Fatalf("expected delivery before second Space to stay closed, got %+v", delivered)
	}

	resp2 := s.HandleKey(KeySpace, false)
	if !resp2.ShowCandidates || len(resp2.Candidates) != 1 {
		t.Fatalf("expected second Space to open the candidate panel, got %+v", resp2)
	}
}

func TestSetDeferCandidatesFalseOpensPanelImmediately(t *testing.T) {
	s := newTestSession()
	s.SetDeferCandidates(false)
	for _, r := range "kyou" {
		s.HandleRune(r)
	}
	s.HandleKey(KeySpace, false)
	resp := s.ReceiveCandidates(s.currentGeneration(), "きょう", []model.Candidate{
		{Reading: "きょう", Surface: "今日", Cost: 50},
	})
	if !resp.ShowCandidates || len(resp.Candidates) != 1 {
		t.Fatalf("expected immediate panel open with defer-candidates off, got %+v", resp)
	}
}

func TestEscapeCancelsComposition(t *testing.T) {
	s := newTestSession()
	s.HandleRune('a')
	resp := s.HandleKey(KeyEscape, false)
	if !resp.Consumed || !resp.HideCandidates {
		t.Fatalf("expected Escape to cancel composition, got %+v", resp)
	}
	if s.IsComposing() {
		t.Fatalf("expected composition cleared after Escape")
	}
}

func TestEscapeWithNothingComposedSwitchesToABC(t *testing.T) {
	s := newTestSession()
	resp := s.HandleKey(KeyEscape, false)
	if !resp.SwitchToABC {
		t.Fatalf("expected SwitchToABC when nothing is composing, got %+v", resp)
	}
}

func TestBackspaceRemovesLastKanaUnit(t *testing.T) {
	s := newTestSession()
	s.HandleRune('a')
	s.HandleRune('i')
	resp := s.HandleKey(KeyBackspace, false)
	if !resp.Consumed {
		t.Fatalf("expected Backspace consumed")
	}
	if s.composed != "あ" {
		t.Fatalf("expected あ left after backspacing い, got %q", s.composed)
	}
}

func TestBackspaceToEmptyResetsSession(t *testing.T) {
	s := newTestSession()
	s.HandleRune('a')
	s.HandleKey(KeyBackspace, false)
	if s.IsComposing() {
		t.Fatalf("expected session not composing after deleting the only character")
	}
}

func TestStaleCandidateDeliveryIsDropped(t *testing.T) {
	s := newTestSession()
	s.HandleRune('a')
	gen := s.currentGeneration()
	s.HandleKey(KeyBackspace, false) // bumps generation, invalidates gen
	resp := s.ReceiveCandidates(gen, "あ", []model.Candidate{{Reading: "あ", Surface: "亜"}})
	if resp.Consumed {
		t.Fatalf("expected stale candidate delivery to be dropped, got %+v", resp)
	}
}

func TestProgrammerModeSuppressesRomajiTransduction(t *testing.T) {
	s := newTestSession()
	s.SetProgrammerMode(true)
	resp := s.HandleRune('k')
	if resp.MarkedText != "k" {
		t.Fatalf("expected programmer mode to pass k through verbatim, got %q", resp.MarkedText)
	}
}

func TestCommittedContextAccumulatesAndCaps(t *testing.T) {
	cfg := config.Default()
	cfg.CommittedContextCap = 3
	d := dict.New()
	s := New(Options{Dict: d, Config: cfg})
	s.pushContext("ab")
	s.pushContext("cd")
	if got := s.CommittedContext(); got != "bcd" {
		t.Fatalf("expected committed context capped to last 3 runes 'bcd', got %q", got)
	}
}
