package schedule

import (
	"math"
	"sync"
	"time"

	"github.com/dgnsrekt/studypace/document"
)

// State is a snapshot of everything a renderer needs about a session. It
// is a plain value and safe to hand across goroutines.
type State struct {
	Phase          Phase
	ParagraphIndex int
	ReviewIndex    int
	HasStarted     bool

	ElapsedSeconds   int
	RemainingSeconds int
	TotalSeconds     int
	Running          bool

	SegmentElapsedSeconds int
	SegmentBudgetSeconds  int
	Overtime              bool

	ScaleFactor float64
}

// Session sequences the segments of one presentation: introduction,
// paragraphs, review questions, conclusion. It owns the countdown clock
// and the current-position pointers and re-runs the budget calculator on
// every transition and every tick.
//
// The session guards its state with a mutex: ticks arrive from the host's
// event loop, while reload and notifier callbacks may arrive from other
// goroutines, and a torn read of remaining time against position would
// produce an inconsistent budget.
type Session struct {
	mu sync.Mutex

	doc      *document.Document
	cfg      Config
	clock    *Clock
	scaler   *Scaler
	segment  *SegmentTimer
	notifier Notifier

	pos        Position
	hasStarted bool
	finalFired bool

	budget Budget

	now func() time.Time

	onPhaseChange func(State)
	onBudget      func(Budget)
}

// NewSession creates a session over doc with the given settings. A nil
// notifier disables alerts.
func NewSession(doc *document.Document, cfg Config, notifier Notifier) (*Session, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	cfg = cfg.Clamp()

	s := &Session{
		doc:      doc,
		cfg:      cfg,
		scaler:   NewScaler(doc, cfg.TotalDurationSeconds(), cfg.IntroductionSeconds, cfg.ConclusionSeconds, cfg.AnswerSeconds),
		clock:    NewClock(cfg.TotalDurationSeconds()),
		segment:  NewSegmentTimer(cfg.OvertimeGraceSeconds),
		notifier: notifier,
		pos:      Position{Phase: PhaseNotStarted},
		now:      time.Now,
	}
	s.recompute()
	return s, nil
}

// OnPhaseChange registers a callback invoked after every transition.
func (s *Session) OnPhaseChange(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPhaseChange = fn
}

// OnBudget registers a callback invoked after every recomputation.
func (s *Session) OnBudget(fn func(Budget)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onBudget = fn
}

// Start begins the study: the clock starts and the introduction becomes
// the active segment.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasStarted {
		return ErrAlreadyStarted
	}
	s.hasStarted = true
	s.clock.Start()
	s.applyPosition(Position{Phase: PhaseIntro})
	return nil
}

// Pause freezes the clock. In-flight state is untouched; Resume continues
// from the same second.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock.Pause()
}

// Resume restarts a paused clock.
func (s *Session) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasStarted {
		return ErrNotStarted
	}
	if s.pos.Phase != PhaseFinished {
		s.clock.Start()
	}
	return nil
}

// Advance moves to the next segment in delivery order. Advancing past the
// last segment saturates at Finished; entering Finished pauses the clock.
func (s *Session) Advance() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasStarted {
		return
	}
	next := s.pos.next(len(s.doc.Paragraphs), len(s.doc.FinalQuestions))
	if next == s.pos {
		return
	}
	s.applyPosition(next)
}

// Retreat moves to the previous segment; it is the exact inverse of
// Advance except at the not-started boundary, where it saturates at the
// introduction.
func (s *Session) Retreat() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasStarted {
		return
	}
	prev := s.pos.prev(len(s.doc.Paragraphs), len(s.doc.FinalQuestions))
	if prev == s.pos {
		return
	}
	s.applyPosition(prev)
}

// Reset returns the session to its initial not-started state and resets
// the clock to the full duration.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hasStarted = false
	s.finalFired = false
	s.pos = Position{Phase: PhaseNotStarted}
	s.clock.Reset(s.cfg.TotalDurationSeconds())
	s.segment.Restart(0)
	s.recompute()
	s.notifyPhaseChange()
}

// JumpToParagraph positions the session at paragraph index i, seeking the
// clock to that paragraph's scale-only offset as if the session had run
// on schedule up to it. Used when the presenter joins mid-document.
func (s *Session) JumpToParagraph(i int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.doc.Paragraphs) {
		return
	}

	offset := float64(s.scaler.ScaledIntroductionSeconds())
	for j := 0; j < i; j++ {
		offset += float64(s.doc.Paragraphs[j].TotalTimeSeconds) * s.scaler.Factor()
	}

	s.hasStarted = true
	s.clock.Seek(int(math.Round(offset)))
	s.enterPosition(Position{Phase: PhaseParagraph, Paragraph: i})
}

// Tick advances the session by one second. The clock mutation is applied
// first, then the budget is recomputed from the new remaining time, and
// only then is the segment timer checked against its (possibly adjusted)
// budget. Alerts fire at most once per segment activation; the final
// alert fires once per session.
func (s *Session) Tick() {
	s.mu.Lock()

	if !s.clock.IsRunning() {
		s.mu.Unlock()
		return
	}

	s.clock.Tick()
	s.recompute()

	var fire []Severity
	if s.hasStarted && s.pos.Phase != PhaseFinished {
		s.segment.SetBudget(s.segmentBudgetSeconds())
		if severity, ok := s.segment.Tick(); ok {
			fire = append(fire, severity)
		}
	}
	if !s.finalFired && s.clock.Remaining() <= 0 {
		s.finalFired = true
		fire = append(fire, SeverityFinal)
	}

	notifier := s.notifier
	s.mu.Unlock()

	// Outside the lock: notifiers may block on audio devices.
	for _, severity := range fire {
		notifier.Notify(severity)
	}
}

// Seek jumps the clock to an absolute elapsed position without changing
// the current segment.
func (s *Session) Seek(cumulativeSeconds int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasStarted {
		return ErrNotStarted
	}
	s.clock.Seek(cumulativeSeconds)
	s.recompute()
	return nil
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// BudgetSnapshot returns the most recent budget computation.
func (s *Session) BudgetSnapshot() Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budget
}

// Document returns the session's document.
func (s *Session) Document() *document.Document { return s.doc }

// Config returns the session's resolved configuration.
func (s *Session) Config() Config { return s.cfg }

// ScaleFactor returns the session's fixed scale factor.
func (s *Session) ScaleFactor() float64 { return s.scaler.Factor() }

// Scaler returns the session's scale calculator.
func (s *Session) Scaler() *Scaler { return s.scaler }

// applyPosition performs a transition after checking it against the
// phase graph. Callers hold the mutex.
func (s *Session) applyPosition(next Position) {
	if !canTransition(s.pos.Phase, next.Phase) {
		return
	}
	s.enterPosition(next)
}

// enterPosition moves to a position unconditionally: position update,
// segment timer restart, clock side effects at the Finished boundary,
// and a budget recomputation. Stepwise navigation goes through
// applyPosition; explicit jumps land here directly, since a jump target
// is validated against the document rather than the phase graph.
// Callers hold the mutex.
func (s *Session) enterPosition(next Position) {
	leavingFinished := s.pos.Phase == PhaseFinished && next.Phase != PhaseFinished
	s.pos = next

	switch {
	case next.Phase == PhaseFinished:
		s.clock.Pause()
	case leavingFinished:
		s.clock.Start()
	}

	s.recompute()
	s.segment.Restart(s.segmentBudgetSeconds())
	s.notifyPhaseChange()
}

// segmentBudgetSeconds returns the active segment's estimated duration:
// nominal scaled values for intro and conclusion, the adjusted duration
// for paragraphs, and the adjusted per-question time for review
// questions. Callers hold the mutex.
func (s *Session) segmentBudgetSeconds() int {
	switch s.pos.Phase {
	case PhaseIntro:
		return s.scaler.ScaledIntroductionSeconds()
	case PhaseParagraph:
		if pb, ok := s.budget.ParagraphAt(s.pos.Paragraph); ok {
			return pb.DurationSeconds
		}
		return 0
	case PhaseReview:
		return s.budget.PerQuestionSeconds
	case PhaseConclusion:
		return s.scaler.ScaledConclusionSeconds()
	default:
		return 0
	}
}

// recompute re-runs the budget calculator from the current position and
// remaining time. Callers hold the mutex.
func (s *Session) recompute() {
	s.budget = ComputeBudget(
		s.doc,
		s.pos.budgetIndex(len(s.doc.Paragraphs)),
		s.clock.Remaining(),
		s.scaler.Factor(),
		s.cfg.AnswerSeconds,
		s.clock.StartTime(),
		s.now(),
	)
	if s.onBudget != nil {
		s.onBudget(s.budget)
	}
}

func (s *Session) snapshotLocked() State {
	return State{
		Phase:                 s.pos.Phase,
		ParagraphIndex:        s.pos.Paragraph,
		ReviewIndex:           s.pos.Review,
		HasStarted:            s.hasStarted,
		ElapsedSeconds:        s.clock.Elapsed(),
		RemainingSeconds:      s.clock.Remaining(),
		TotalSeconds:          s.clock.Total(),
		Running:               s.clock.IsRunning(),
		SegmentElapsedSeconds: s.segment.Elapsed(),
		SegmentBudgetSeconds:  s.segment.Budget(),
		Overtime:              s.segment.Overtime(),
		ScaleFactor:           s.scaler.Factor(),
	}
}

func (s *Session) notifyPhaseChange() {
	if s.onPhaseChange != nil {
		s.onPhaseChange(s.snapshotLocked())
	}
}
