package schedule

import (
	"errors"
	"sync"
	"testing"

	"github.com/dgnsrekt/studypace/document"
)

// recordingNotifier collects alerts for assertions.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []Severity
}

func (r *recordingNotifier) Notify(severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, severity)
}

func (r *recordingNotifier) Calls() []Severity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Severity, len(r.calls))
	copy(out, r.calls)
	return out
}

func testDocument() *document.Document {
	return &document.Document{
		Paragraphs: []document.Paragraph{
			{Number: 1, ReadingTimeSeconds: 40, TotalTimeSeconds: 75, Questions: []document.Question{{Text: "q1"}}},
			{Number: 2, ReadingTimeSeconds: 50, TotalTimeSeconds: 50},
			{Number: 3, ReadingTimeSeconds: 60, TotalTimeSeconds: 95, Questions: []document.Question{{Text: "q2"}}},
		},
		FinalQuestions: []document.Question{
			{Text: "f1", IsFinalQuestion: true},
			{Text: "f2", IsFinalQuestion: true},
		},
	}
}

func newTestSession(t *testing.T, doc *document.Document, notifier Notifier) *Session {
	t.Helper()
	s, err := NewSession(doc, DefaultConfig(), notifier)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return s
}

// TestNewSessionNilDocument tests that a document is required.
func TestNewSessionNilDocument(t *testing.T) {
	if _, err := NewSession(nil, DefaultConfig(), nil); !errors.Is(err, ErrNoDocument) {
		t.Errorf("NewSession(nil) error = %v, want %v", err, ErrNoDocument)
	}
}

// TestSessionStart tests the first transition and double-start rejection.
func TestSessionStart(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)

	if state := s.Snapshot(); state.Phase != PhaseNotStarted || state.HasStarted {
		t.Fatalf("initial state = %+v, want not-started", state)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	state := s.Snapshot()
	if state.Phase != PhaseIntro {
		t.Errorf("Phase = %v after start, want %v", state.Phase, PhaseIntro)
	}
	if !state.Running {
		t.Error("Running = false after start, want true")
	}

	if err := s.Start(); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start() error = %v, want %v", err, ErrAlreadyStarted)
	}
}

// TestSessionAdvanceOrder tests the full delivery order over a document
// with final questions.
func TestSessionAdvanceOrder(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	expected := []struct {
		phase     Phase
		paragraph int
		review    int
	}{
		{PhaseParagraph, 0, 0},
		{PhaseParagraph, 1, 0},
		{PhaseParagraph, 2, 0},
		{PhaseReview, 0, 0},
		{PhaseReview, 0, 1},
		{PhaseConclusion, 0, 0},
		{PhaseFinished, 0, 0},
		{PhaseFinished, 0, 0}, // saturates
	}

	for i, want := range expected {
		s.Advance()
		state := s.Snapshot()
		if state.Phase != want.phase {
			t.Errorf("step %d: Phase = %v, want %v", i, state.Phase, want.phase)
		}
		if state.Phase == PhaseParagraph && state.ParagraphIndex != want.paragraph {
			t.Errorf("step %d: ParagraphIndex = %v, want %v", i, state.ParagraphIndex, want.paragraph)
		}
		if state.Phase == PhaseReview && state.ReviewIndex != want.review {
			t.Errorf("step %d: ReviewIndex = %v, want %v", i, state.ReviewIndex, want.review)
		}
	}
}

// TestSessionSkipsReviewWithoutFinalQuestions tests that advancing from
// the last paragraph lands directly on the conclusion when the document
// has no final review block.
func TestSessionSkipsReviewWithoutFinalQuestions(t *testing.T) {
	doc := testDocument()
	doc.FinalQuestions = nil
	s := newTestSession(t, doc, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for i := 0; i < len(doc.Paragraphs); i++ {
		s.Advance()
	}
	s.Advance()
	if state := s.Snapshot(); state.Phase != PhaseConclusion {
		t.Errorf("Phase = %v after last paragraph, want %v", state.Phase, PhaseConclusion)
	}
}

// TestSessionNoParagraphs tests a document holding only final review
// questions: the session runs intro, review, conclusion, finished, and
// retreats back the same way.
func TestSessionNoParagraphs(t *testing.T) {
	doc := &document.Document{
		FinalQuestions: []document.Question{
			{Text: "f1", IsFinalQuestion: true},
		},
	}
	s := newTestSession(t, doc, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	forward := []Phase{PhaseReview, PhaseConclusion, PhaseFinished}
	for i, want := range forward {
		s.Advance()
		if got := s.Snapshot().Phase; got != want {
			t.Fatalf("step %d: Phase = %v, want %v", i, got, want)
		}
	}

	backward := []Phase{PhaseConclusion, PhaseReview, PhaseIntro}
	for i, want := range backward {
		s.Retreat()
		if got := s.Snapshot().Phase; got != want {
			t.Fatalf("retreat %d: Phase = %v, want %v", i, got, want)
		}
	}
}

// TestSessionIntroOnly tests that the conclusion follows the
// introduction directly when there are neither paragraphs nor final
// questions to visit.
func TestSessionIntroOnly(t *testing.T) {
	s := newTestSession(t, &document.Document{}, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s.Advance()
	if got := s.Snapshot().Phase; got != PhaseConclusion {
		t.Errorf("Phase = %v after advance from intro, want %v", got, PhaseConclusion)
	}
	s.Retreat()
	if got := s.Snapshot().Phase; got != PhaseIntro {
		t.Errorf("Phase = %v after retreat from conclusion, want %v", got, PhaseIntro)
	}
}

// TestSessionRetreat tests backward movement and saturation at the
// introduction.
func TestSessionRetreat(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	s.Advance() // paragraph 0
	s.Advance() // paragraph 1
	s.Retreat()
	if state := s.Snapshot(); state.Phase != PhaseParagraph || state.ParagraphIndex != 0 {
		t.Errorf("state = %+v after retreat, want paragraph 0", s.Snapshot())
	}

	s.Retreat() // intro
	s.Retreat() // saturates
	if state := s.Snapshot(); state.Phase != PhaseIntro {
		t.Errorf("Phase = %v, want saturation at %v", state.Phase, PhaseIntro)
	}
}

// TestSessionFinishedPausesClock tests that entering the terminal state
// stops the countdown and leaving it resumes.
func TestSessionFinishedPausesClock(t *testing.T) {
	doc := testDocument()
	doc.FinalQuestions = nil
	s := newTestSession(t, doc, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	for s.Snapshot().Phase != PhaseFinished {
		s.Advance()
	}
	if s.Snapshot().Running {
		t.Error("Running = true in finished state, want false")
	}

	s.Retreat()
	state := s.Snapshot()
	if state.Phase != PhaseConclusion {
		t.Fatalf("Phase = %v after retreat from finished, want %v", state.Phase, PhaseConclusion)
	}
	if !state.Running {
		t.Error("Running = false after leaving finished, want true")
	}
}

// TestSessionAdvanceBeforeStart tests that movement is ignored until the
// session starts.
func TestSessionAdvanceBeforeStart(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)
	s.Advance()
	s.Retreat()
	if state := s.Snapshot(); state.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v, want %v", state.Phase, PhaseNotStarted)
	}
}

// TestSessionPauseResume tests freezing and resuming the countdown.
func TestSessionPauseResume(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)

	if err := s.Resume(); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Resume() before start error = %v, want %v", err, ErrNotStarted)
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Tick()
	s.Pause()
	elapsed := s.Snapshot().ElapsedSeconds
	s.Tick()
	if got := s.Snapshot().ElapsedSeconds; got != elapsed {
		t.Errorf("ElapsedSeconds = %v after paused tick, want %v", got, elapsed)
	}

	if err := s.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	s.Tick()
	if got := s.Snapshot().ElapsedSeconds; got != elapsed+1 {
		t.Errorf("ElapsedSeconds = %v after resume, want %v", got, elapsed+1)
	}
}

// TestSessionReset tests the return to the initial state.
func TestSessionReset(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Advance()
	s.Tick()
	s.Tick()

	s.Reset()
	state := s.Snapshot()
	if state.Phase != PhaseNotStarted {
		t.Errorf("Phase = %v after reset, want %v", state.Phase, PhaseNotStarted)
	}
	if state.HasStarted {
		t.Error("HasStarted = true after reset, want false")
	}
	if state.ElapsedSeconds != 0 {
		t.Errorf("ElapsedSeconds = %v after reset, want 0", state.ElapsedSeconds)
	}
	if state.RemainingSeconds != state.TotalSeconds {
		t.Errorf("RemainingSeconds = %v after reset, want %v", state.RemainingSeconds, state.TotalSeconds)
	}

	// The session is usable again after a reset.
	if err := s.Start(); err != nil {
		t.Errorf("Start() after reset error = %v", err)
	}
}

// TestSessionTickRecomputesBudget tests that every tick refreshes the
// budget from the new remaining time.
func TestSessionTickRecomputesBudget(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Advance()

	before := s.BudgetSnapshot().RemainingSeconds
	s.Tick()
	after := s.BudgetSnapshot().RemainingSeconds
	if after != before-1 {
		t.Errorf("budget RemainingSeconds = %v after tick, want %v", after, before-1)
	}
}

// TestSessionFinalAlert tests that the final alert fires exactly once
// when overall remaining time reaches zero.
func TestSessionFinalAlert(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newTestSession(t, testDocument(), notifier)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	total := s.Snapshot().TotalSeconds
	if err := s.Seek(total - 1); err != nil {
		t.Fatalf("Seek() error = %v", err)
	}

	s.Tick()
	s.Tick()
	s.Tick()

	finals := 0
	for _, severity := range notifier.Calls() {
		if severity == SeverityFinal {
			finals++
		}
	}
	if finals != 1 {
		t.Errorf("final alert fired %v times, want 1", finals)
	}
}

// TestSessionSegmentOvertime tests that lingering on a segment past its
// budget raises the warning and flips the overtime flag.
func TestSessionSegmentOvertime(t *testing.T) {
	notifier := &recordingNotifier{}
	s := newTestSession(t, testDocument(), notifier)
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	// Stay in the introduction one second past its scaled budget.
	budget := s.Scaler().ScaledIntroductionSeconds()
	for i := 0; i <= budget; i++ {
		s.Tick()
	}

	if !s.Snapshot().Overtime {
		t.Error("Overtime = false past the intro budget, want true")
	}
	calls := notifier.Calls()
	if len(calls) == 0 || calls[0] != SeverityWarning {
		t.Errorf("alerts = %v, want a leading warning", calls)
	}

	// Moving on re-arms the segment timer.
	s.Advance()
	if s.Snapshot().Overtime {
		t.Error("Overtime = true immediately after advancing, want false")
	}
}

// TestSessionJumpToParagraph tests joining mid-document: the position
// moves and the clock seeks to the paragraph's scale-only offset.
func TestSessionJumpToParagraph(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)

	s.JumpToParagraph(1)
	state := s.Snapshot()
	if state.Phase != PhaseParagraph || state.ParagraphIndex != 1 {
		t.Fatalf("state = %+v after jump, want paragraph 1", state)
	}
	if !state.HasStarted {
		t.Error("HasStarted = false after jump, want true")
	}
	if !state.Running {
		t.Error("Running = false after jump, want true")
	}

	// scaled intro + scaled total of paragraph 1
	factor := s.ScaleFactor()
	want := s.Scaler().ScaledIntroductionSeconds() + int(float64(75)*factor+0.5)
	if state.ElapsedSeconds != want {
		t.Errorf("ElapsedSeconds = %v after jump, want %v", state.ElapsedSeconds, want)
	}

	// Out-of-range jumps are ignored.
	s.JumpToParagraph(99)
	if got := s.Snapshot().ParagraphIndex; got != 1 {
		t.Errorf("ParagraphIndex = %v after invalid jump, want 1", got)
	}
}

// TestSessionAnswerTimeOverride tests that the configured answer time
// reaches the budget calculator: with no questions anywhere the
// per-question fallback is the override scaled by the session factor.
func TestSessionAnswerTimeOverride(t *testing.T) {
	doc := &document.Document{
		Paragraphs: []document.Paragraph{
			{Number: 1, ReadingTimeSeconds: 60, TotalTimeSeconds: 60},
		},
	}
	cfg := DefaultConfig()
	cfg.AnswerSeconds = 60

	s, err := NewSession(doc, cfg, nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}

	// nominal 180 against a 60-minute total clamps the factor at 2.0,
	// so the fallback is 60 * 2 = 120.
	if got := s.ScaleFactor(); got != MaxScaleFactor {
		t.Fatalf("ScaleFactor() = %v, want %v", got, MaxScaleFactor)
	}
	if got := s.BudgetSnapshot().PerQuestionSeconds; got != 120 {
		t.Errorf("PerQuestionSeconds = %v, want 120", got)
	}
}

// TestSessionCallbacks tests the phase-change and budget hooks.
func TestSessionCallbacks(t *testing.T) {
	s := newTestSession(t, testDocument(), nil)

	var phases []Phase
	s.OnPhaseChange(func(state State) {
		phases = append(phases, state.Phase)
	})
	budgets := 0
	s.OnBudget(func(Budget) { budgets++ })

	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	s.Advance()
	s.Tick()

	wantPhases := []Phase{PhaseIntro, PhaseParagraph}
	if len(phases) != len(wantPhases) {
		t.Fatalf("phase callbacks = %v, want %v", phases, wantPhases)
	}
	for i := range wantPhases {
		if phases[i] != wantPhases[i] {
			t.Errorf("phases[%d] = %v, want %v", i, phases[i], wantPhases[i])
		}
	}
	if budgets < 3 {
		t.Errorf("budget callbacks = %v, want at least 3", budgets)
	}
}
