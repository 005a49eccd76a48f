// Package session implements component G: the input session state
// machine mediating romaji composition, candidate selection, asynchronous
// candidate/ghost-text generation with staleness, and committed-context
// tracking.
//
// Grounded on the teacher's ingest.go (IngestChan, fire-and-forget
// dispatch) + tokenize.go's StartTokenizer consumer loop for the async
// dispatch/consume shape, generalized here from a one-shot tokenize
// pipeline to a per-keystroke generation-counted protocol (spec.md §4.G).
package session

import (
	"sync/atomic"

	"kanaime/config"
	"kanaime/connection"
	"kanaime/dict"
	"kanaime/history"
	"kanaime/model"
	"kanaime/neural"
	"kanaime/romaji"
)

// State is the session's primary mode.
type State int

const (
	Idle State = iota
	Composing
	Selecting
	AwaitingCandidates
	EnglishSubMode
)

// CandidateDispatch labels which merge strategy a needs_candidates
// response is asking the caller to run.
type CandidateDispatch int

const (
	DispatchStandard CandidateDispatch = iota
	DispatchPrediction
	DispatchNeural
)

// Session is the per-conversation state machine. Not safe for concurrent
// use from more than one thread at a time — spec.md §5: "a Session is
// owned by one thread at a time (the UI thread)".
type Session struct {
	dict    *dict.Dictionary
	conn    *connection.Matrix
	history *history.History
	neural  neural.Scorer
	cfg     config.Engine

	state State

	composed string // kana composed so far
	pending  string // romaji tail not yet resolved to kana

	candidates     []model.Candidate
	selectedIndex  int
	showCandidates bool

	programmerMode bool
	conversionMode ConversionMode
	// showOnDeliver, when true, opens the candidate panel as soon as
	// ReceiveCandidates lands instead of waiting for the next Space.
	// Zero value is false: the default is to defer, matching
	// SetDeferCandidates's zero-value contract.
	showOnDeliver bool

	generation   int64
	committedCtx []rune
	contextCap   int

	closed bool
}

// ConversionMode is the orthogonal display-form flag spec.md §4.G names
// (applied as a post-process transform over composed kana, per
// DESIGN.md's Open Question decision).
type ConversionMode int

const (
	Hiragana ConversionMode = iota
	Katakana
	HalfWidth
)

// Options configures a new Session; Dict is required, Conn/History/Neural
// may be nil. The session holds Conn but does not consult it itself
// (candidate computation runs in the caller); a nil History means commits
// are not recorded, and a nil Neural makes RequestGhostText a no-op.
type Options struct {
	Dict    *dict.Dictionary
	Conn    *connection.Matrix
	History *history.History
	Neural  neural.Scorer
	Config  config.Engine
}

// New constructs a Session bound to the given dictionary/connection/
// history. It takes a reference on Dict and History via AddRef so their
// Close calls refuse to run while this Session is alive (spec.md §5).
func New(opt Options) *Session {
	if opt.Dict != nil {
		opt.Dict.AddRef()
	}
	if opt.History != nil {
		opt.History.AddRef()
	}
	return &Session{
		dict:       opt.Dict,
		conn:       opt.Conn,
		history:    opt.History,
		neural:     opt.Neural,
		cfg:        opt.Config,
		state:      Idle,
		contextCap: opt.Config.CommittedContextCap,
	}
}

// Close releases this session's references on Dict/History. Subsequent
// use of the Session is undefined, matching the owned-handle discipline
// supplemented from original_source/engine/include/engine.h.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if s.dict != nil {
		s.dict.Release()
	}
	if s.history != nil {
		s.history.Release()
	}
}

// IsComposing reports whether the session currently has uncommitted
// romaji/kana input, the supplemented lex_session_is_composing operation.
func (s *Session) IsComposing() bool {
	return s.state == Composing || s.composed != "" || s.pending != ""
}

// SetProgrammerMode toggles the orthogonal flag that suppresses romaji
// transduction (spec.md §4.G).
func (s *Session) SetProgrammerMode(on bool) { s.programmerMode = on }

// SetConversionMode sets the display-form flag applied to composed kana
// before it is shown or committed verbatim; the reading sent out for
// candidate computation stays hiragana.
func (s *Session) SetConversionMode(m ConversionMode) { s.conversionMode = m }

// SetDeferCandidates toggles defer-candidates mode. With it on (the
// default), the candidate panel only opens on the Space press that
// follows delivery; with it off, the panel opens as soon as the
// candidate computation completes, with no second Space required.
func (s *Session) SetDeferCandidates(on bool) { s.showOnDeliver = !on }

// nextGeneration increments and returns the session's async generation
// counter, used to drop stale receive_candidates/receive_ghost_text
// results (spec.md §5 "Cancellation").
func (s *Session) nextGeneration() int64 {
	return atomic.AddInt64(&s.generation, 1)
}

// currentGeneration reports the session's live generation value.
func (s *Session) currentGeneration() int64 {
	return atomic.LoadInt64(&s.generation)
}

// Generation exposes the session's live async generation counter so a
// caller dispatching its own candidate/ghost-text computation inline (for
// example a synchronous demo driver) can tag its delivery correctly.
func (s *Session) Generation() int64 { return s.currentGeneration() }

// pushContext appends surface's runes to the bounded committed-context
// suffix, trimming from the left once over contextCap.
func (s *Session) pushContext(surface string) {
	s.committedCtx = append(s.committedCtx, []rune(surface)...)
	if over := len(s.committedCtx) - s.contextCap; over > 0 {
		s.committedCtx = s.committedCtx[over:]
	}
}

// CommittedContext returns the current committed-context suffix as a
// string, used as neural context and as the bigram-context seed for
// history scoring.
func (s *Session) CommittedContext() string { return string(s.committedCtx) }

// resetComposition clears romaji/kana state and the candidate panel
// without touching committed context.
func (s *Session) resetComposition() {
	s.composed = ""
	s.pending = ""
	s.candidates = nil
	s.selectedIndex = 0
	s.showCandidates = false
	s.state = Idle
}

// applyConversionMode renders composed kana through the session's
// ConversionMode before display.
func (s *Session) applyConversionMode(kana string) string {
	switch s.conversionMode {
	case Katakana:
		return hiraganaToKatakana(kana)
	case HalfWidth:
		return toHalfWidth(kana)
	default:
		return kana
	}
}

func hiraganaToKatakana(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= 0x3041 && r <= 0x3096 {
			out = append(out, r+0x60)
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}

// toHalfWidth maps the subset of kana with a standard halfwidth form
// (U+FF61-U+FF9F block); kana outside that block pass through unchanged,
// matching how host IMEs commonly degrade halfwidth rendering. composed is
// hiragana (romaji.Convert never emits anything else), but halfWidthTable is
// keyed by katakana, so fold through hiraganaToKatakana first.
func toHalfWidth(s string) string {
	kata := hiraganaToKatakana(s)
	out := make([]rune, 0, len(kata))
	for _, r := range kata {
		if hw, ok := halfWidthTable[r]; ok {
			out = append(out, hw)
		} else {
			out = append(out, r)
		}
	}
	return string(out)
}

var halfWidthTable = map[rune]rune{
	'ア': 0xFF71, 'イ': 0xFF72, 'ウ': 0xFF73, 'エ': 0xFF74, 'オ': 0xFF75,
	'カ': 0xFF76, 'キ': 0xFF77, 'ク': 0xFF78, 'ケ': 0xFF79, 'コ': 0xFF7A,
	'サ': 0xFF7B, 'シ': 0xFF7C, 'ス': 0xFF7D, 'セ': 0xFF7E, 'ソ': 0xFF7F,
	'タ': 0xFF80, 'チ': 0xFF81, 'ツ': 0xFF82, 'テ': 0xFF83, 'ト': 0xFF84,
	'ナ': 0xFF85, 'ニ': 0xFF86, 'ヌ': 0xFF87, 'ネ': 0xFF88, 'ノ': 0xFF89,
	'ハ': 0xFF8A, 'ヒ': 0xFF8B, 'フ': 0xFF8C, 'ヘ': 0xFF8D, 'ホ': 0xFF8E,
	'マ': 0xFF8F, 'ミ': 0xFF90, 'ム': 0xFF91, 'メ': 0xFF92, 'モ': 0xFF93,
	'ヤ': 0xFF94, 'ユ': 0xFF95, 'ヨ': 0xFF96,
	'ラ': 0xFF97, 'リ': 0xFF98, 'ル': 0xFF99, 'レ': 0xFF9A, 'ロ': 0xFF9B,
	'ワ': 0xFF9C, 'ン': 0xFF9D, 'ー': 0xFF70, '。': 0xFF61, '、': 0xFF64,
}

// feedRomaji feeds ch into the romaji transducer, or appends it verbatim
// in ProgrammerMode.
func (s *Session) feedRomaji(ch string) {
	if s.programmerMode {
		s.composed += ch
		return
	}
	s.composed, s.pending = romaji.Convert(s.composed, s.pending+ch, false)
}

// flushPending force-flushes any residual romaji tail into composed kana,
// used on commit/conversion-request.
func (s *Session) flushPending() {
	s.composed, s.pending = romaji.Convert(s.composed, s.pending, true)
}
