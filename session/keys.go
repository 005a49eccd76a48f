package session

// Key names the non-printable keys the session's state machine treats
// specially; printable input arrives through HandleRune instead.
type Key int

const (
	KeyReturn Key = iota
	KeySpace
	KeyEscape
	KeyBackspace
	KeyTab
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

// candidatePageSize is how far Shift+Arrow moves the candidate cursor in
// one step, versus a single entry for a plain Arrow.
const candidatePageSize = 5

// HandleRune feeds one printable keystroke (already decoded to its
// lowercase romaji form by the caller) into the composition. In
// ProgrammerMode the rune is appended to MarkedText verbatim with no
// romaji transduction, per spec.md §4.G.
func (s *Session) HandleRune(r rune) Response {
	if s.state == EnglishSubMode {
		return Response{Consumed: false}
	}
	s.feedRomaji(string(r))
	s.state = Composing
	s.showCandidates = false
	s.candidates = nil
	return Response{
		Consumed:   true,
		MarkedText: s.applyConversionMode(s.composed) + s.pending,
	}
}

// HandleKey dispatches one special key against the current state.
func (s *Session) HandleKey(k Key, shift bool) Response {
	switch k {
	case KeyReturn:
		return s.handleReturn()
	case KeySpace:
		return s.handleSpace(shift)
	case KeyEscape:
		return s.handleEscape()
	case KeyBackspace:
		return s.handleBackspace()
	case KeyTab:
		if shift {
			return s.handleCycle(shift, -1)
		}
		return s.handleCycle(shift, 1)
	case KeyArrowDown:
		return s.handleCycle(shift, step(shift, 1))
	case KeyArrowUp:
		return s.handleCycle(shift, -step(shift, 1))
	case KeyArrowLeft, KeyArrowRight:
		// Cursor movement within MarkedText is a host-side rendering
		// concern once text is committed; while composing it has no
		// effect on the underlying kana/candidate state.
		return consumedResponse()
	default:
		return Response{Consumed: false}
	}
}

func step(shift bool, base int) int {
	if shift {
		return base * candidatePageSize
	}
	return base
}

// handleReturn commits the current composition: the selected candidate's
// surface if the panel is open, otherwise the composed kana verbatim.
func (s *Session) handleReturn() Response {
	if !s.IsComposing() {
		return Response{Consumed: false}
	}
	s.flushPending()

	var reading, surface string
	if s.showCandidates && len(s.candidates) > 0 {
		c := s.candidates[s.selectedIndex]
		reading, surface = c.Reading, c.Surface
	} else {
		reading, surface = s.composed, s.applyConversionMode(s.composed)
	}

	s.pushContext(surface)
	if s.history != nil && reading != "" {
		s.history.Record(reading, surface, s.currentGeneration(), s.contextHashOfLast())
	}
	s.resetComposition()

	return Response{
		Consumed:       true,
		CommitText:     surface,
		HideCandidates: true,
		SaveHistory:    true,
	}
}

// contextHashOfLast is the context key recorded for the bigram-adjacency
// bonus: an FNV-1a hash of the reading and surface of the segment the
// bound History committed just before this one, the same key the
// lattice's Viterbi computes for a predecessor node when it queries
// AdjacentBonus. Zero when there is no History or no earlier commit.
func (s *Session) contextHashOfLast() uint64 {
	if s.history == nil {
		return 0
	}
	last := s.history.LastCommitted(1)
	if len(last) == 0 {
		return 0
	}
	return adjacencyContextHash(last[0].Reading + "\x00" + last[0].Surface)
}

func adjacencyContextHash(key string) uint64 {
	h := uint64(1469598103934665603)
	for _, b := range []byte(key) {
		h ^= uint64(b)
		h *= 1099511628211
	}
	return h
}

// Commit force-flushes any composing text and commits it exactly as
// Return does; not consumed when nothing is composing.
func (s *Session) Commit() Response { return s.handleReturn() }

// handleSpace requests conversion candidates the first time it is
// pressed while composing, then opens or advances the candidate panel on
// subsequent presses — spec.md §4.G's defer-candidates behavior: with
// defer-candidates on (the default), the panel opens on the first Space
// after the candidates arrive; with it off, ReceiveCandidates has already
// opened the panel, so a further Space moves the selection.
func (s *Session) handleSpace(shift bool) Response {
	if !s.IsComposing() {
		return Response{Consumed: false}
	}
	if s.showCandidates {
		return s.handleCycle(shift, step(shift, 1))
	}
	if s.state == AwaitingCandidates {
		if len(s.candidates) > 0 {
			s.showCandidates = true
			s.state = Selecting
			return Response{
				Consumed:       true,
				MarkedText:     s.applyConversionMode(s.composed),
				Candidates:     s.candidates,
				SelectedIndex:  s.selectedIndex,
				ShowCandidates: true,
			}
		}
		return consumedResponse()
	}

	s.flushPending()
	s.state = AwaitingCandidates
	reading := s.composed
	return Response{
		Consumed:          true,
		MarkedText:        s.applyConversionMode(s.composed),
		NeedsCandidates:   true,
		CandidateReading:  reading,
		CandidateDispatch: DispatchStandard,
	}
}

// handleEscape cancels the current composition, or requests a drop out
// of IME mode entirely if nothing was composing.
func (s *Session) handleEscape() Response {
	if !s.IsComposing() {
		return Response{Consumed: false, SwitchToABC: true}
	}
	s.resetComposition()
	return Response{Consumed: true, HideCandidates: true}
}

// handleBackspace deletes one romaji/kana unit, closing the candidate
// panel if one was open (editing invalidates any in-flight candidates).
func (s *Session) handleBackspace() Response {
	if !s.IsComposing() {
		return Response{Consumed: false}
	}
	s.nextGeneration() // invalidate any in-flight async candidate/ghost result
	switch {
	case s.pending != "":
		r := []rune(s.pending)
		s.pending = string(r[:len(r)-1])
	case s.composed != "":
		r := []rune(s.composed)
		s.composed = string(r[:len(r)-1])
	}
	s.showCandidates = false
	s.candidates = nil
	s.selectedIndex = 0
	if !s.IsComposing() {
		s.resetComposition()
		return Response{Consumed: true, HideCandidates: true}
	}
	s.state = Composing
	return Response{
		Consumed:       true,
		MarkedText:     s.applyConversionMode(s.composed) + s.pending,
		HideCandidates: true,
	}
}

// handleCycle moves the candidate panel's selection cursor by delta
// (positive is forward), clamped to the candidate list bounds.
func (s *Session) handleCycle(shift bool, delta int) Response {
	if !s.showCandidates || len(s.candidates) == 0 {
		return consumedResponse()
	}
	idx := s.selectedIndex + delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(s.candidates) {
		idx = len(s.candidates) - 1
	}
	s.selectedIndex = idx
	return Response{
		Consumed:          true,
		MarkedText:        s.applyConversionMode(s.composed),
		IsDashedUnderline: s.selectedIndex != 0,
		Candidates:        s.candidates,
		SelectedIndex:     s.selectedIndex,
		ShowCandidates:    true,
	}
}
