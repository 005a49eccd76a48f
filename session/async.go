package session

import "kanaime/model"

// ReceiveCandidates delivers an asynchronously-computed candidate list
// back to the session. generation and reading must match the session's
// current values at delivery time or the result is discarded as stale
// (spec.md §5: "async results are discarded if generation or reading is
// stale"), since a Backspace or further typing may have moved the session
// on while the computation was in flight. With defer-candidates on (the
// default) the candidates are stashed but the panel is not opened yet —
// per spec.md §4.G's defer-candidates behavior the panel only opens on the
// Space press that follows delivery (see handleSpace's AwaitingCandidates
// branch), so a caller whose computation finishes instantly does not
// surprise the user with a panel popping open before they asked a second
// time. With defer-candidates off, a non-empty delivery opens the panel
// here.
func (s *Session) ReceiveCandidates(generation int64, reading string, candidates []model.Candidate) Response {
	if generation != s.currentGeneration() || reading != s.composed {
		return Response{Consumed: false}
	}
	s.candidates = candidates
	s.selectedIndex = 0
	if !s.showOnDeliver || len(candidates) == 0 {
		return Response{Consumed: false}
	}
	s.showCandidates = true
	s.state = Selecting
	return Response{
		Consumed:       true,
		MarkedText:     s.applyConversionMode(s.composed),
		Candidates:     candidates,
		SelectedIndex:  0,
		ShowCandidates: true,
	}
}

// RequestGhostText asks the caller to asynchronously compute a ghost-text
// completion for the session's current committed context, tagging the
// request with the session's live generation so a late-arriving result
// for stale context can be dropped on delivery.
func (s *Session) RequestGhostText(maxTokens int) Response {
	if s.neural == nil {
		return Response{Consumed: false}
	}
	gen := s.nextGeneration()
	return Response{
		Consumed:        true,
		NeedsGhostText:  true,
		GhostContext:    s.CommittedContext(),
		GhostGeneration: gen,
	}
}

// ReceiveGhostText delivers an asynchronously-computed ghost-text
// completion. It is discarded if generation no longer matches the
// session's current generation (the user kept typing while the neural
// backend was still working).
func (s *Session) ReceiveGhostText(generation int64, text string) Response {
	if generation != s.currentGeneration() {
		return Response{Consumed: false}
	}
	if text == "" {
		return Response{Consumed: false}
	}
	return Response{Consumed: true, GhostText: text}
}
