package session

import "kanaime/model"

// Response is what a key event (or an async candidate/ghost-text
// delivery) produces: every field spec.md §4.G lists as part of the
// session's output contract.
type Response struct {
	// Consumed reports whether the session handled the key itself (true)
	// or the caller should pass it through unmodified (false) — e.g.
	// Return or Space while nothing is being composed.
	Consumed bool

	// CommitText, when non-empty, is text the caller should insert into
	// the host document right now.
	CommitText string
	// MarkedText is the in-progress composition string to preedit-render;
	// empty when nothing is being composed.
	MarkedText string
	// IsDashedUnderline requests the host render MarkedText with a dashed
	// rather than solid underline, used while a candidate other than the
	// first is tentatively selected.
	IsDashedUnderline bool

	// Candidates is the current candidate list to show, valid only when
	// ShowCandidates is true.
	Candidates []model.Candidate
	// SelectedIndex is the candidate panel's current cursor position.
	SelectedIndex int
	// ShowCandidates/HideCandidates request the host open or close the
	// candidate panel; at most one is ever true for a given Response.
	ShowCandidates bool
	HideCandidates bool

	// SwitchToABC requests the host drop out of IME composition entirely
	// (e.g. after Escape with nothing composed).
	SwitchToABC bool
	// SaveHistory requests the caller flush the bound History to disk;
	// set on commit per spec.md §5's "History ... flushed only on an
	// explicit save call".
	SaveHistory bool

	// NeedsCandidates requests the caller asynchronously compute and
	// deliver a candidate list via ReceiveCandidates, for CandidateReading
	// under CandidateDispatch's strategy.
	NeedsCandidates   bool
	CandidateReading  string
	CandidateDispatch CandidateDispatch

	// GhostText is a completion suggestion to render inline, set on the
	// Response ReceiveGhostText returns for a fresh delivery;
	// NeedsGhostText requests the caller dispatch an async GhostText call
	// and deliver it via ReceiveGhostText tagged with GhostGeneration.
	GhostText       string
	NeedsGhostText  bool
	GhostContext    string
	GhostGeneration int64
}

// consumedResponse is a one-line constructor for the common "consumed,
// nothing else to report" case.
func consumedResponse() Response { return Response{Consumed: true} }
