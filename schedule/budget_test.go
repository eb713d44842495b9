package schedule

import (
	"testing"
	"time"

	"github.com/dgnsrekt/studypace/document"
)

// twoParagraphDoc builds the budget calculator's worked example: two
// remaining paragraphs reading 40s and 50s with one question each, plus
// two final review questions.
func twoParagraphDoc() *document.Document {
	return &document.Document{
		Paragraphs: []document.Paragraph{
			{
				Number:             1,
				ReadingTimeSeconds: 40,
				TotalTimeSeconds:   75,
				Questions:          []document.Question{{Text: "q1"}},
			},
			{
				Number:             2,
				ReadingTimeSeconds: 50,
				TotalTimeSeconds:   85,
				Questions:          []document.Question{{Text: "q2"}},
			},
		},
		FinalQuestions: []document.Question{
			{Text: "f1", IsFinalQuestion: true},
			{Text: "f2", IsFinalQuestion: true},
		},
	}
}

// TestComputeBudgetEqualSplit tests the equal split of question time:
// 200s remaining minus 90s reading leaves 110s across 4 questions, 28s
// each.
func TestComputeBudgetEqualSplit(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	b := ComputeBudget(twoParagraphDoc(), 0, 200, 1.0, 0, time.Time{}, now)

	if b.ScaledReadingSeconds != 90 {
		t.Errorf("ScaledReadingSeconds = %v, want 90", b.ScaledReadingSeconds)
	}
	if b.QuestionCount != 4 {
		t.Errorf("QuestionCount = %v, want 4", b.QuestionCount)
	}
	if b.TimeForAllQuestionsSeconds != 110 {
		t.Errorf("TimeForAllQuestionsSeconds = %v, want 110", b.TimeForAllQuestionsSeconds)
	}
	if b.PerQuestionSeconds != 28 {
		t.Errorf("PerQuestionSeconds = %v, want 28", b.PerQuestionSeconds)
	}
}

// TestComputeBudgetExhausted tests the pressure-feedback floor: when
// remaining time cannot even cover the reading, the question pool is zero
// and so is the per-question allowance.
func TestComputeBudgetExhausted(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	b := ComputeBudget(twoParagraphDoc(), 0, 50, 1.0, 0, time.Time{}, now)

	if b.TimeForAllQuestionsSeconds != 0 {
		t.Errorf("TimeForAllQuestionsSeconds = %v, want 0", b.TimeForAllQuestionsSeconds)
	}
	if b.PerQuestionSeconds != 0 {
		t.Errorf("PerQuestionSeconds = %v, want 0", b.PerQuestionSeconds)
	}
}

// TestComputeBudgetNegativeRemaining tests that an overtime session never
// produces negative allocations.
func TestComputeBudgetNegativeRemaining(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	b := ComputeBudget(twoParagraphDoc(), 0, -30, 1.0, 0, time.Time{}, now)

	if b.TimeForAllQuestionsSeconds < 0 {
		t.Errorf("TimeForAllQuestionsSeconds = %v, want >= 0", b.TimeForAllQuestionsSeconds)
	}
	if b.PerQuestionSeconds < 0 {
		t.Errorf("PerQuestionSeconds = %v, want >= 0", b.PerQuestionSeconds)
	}
}

// TestComputeBudgetNoQuestions tests the fallback per-question time of the
// scaled default answer time when no questions remain.
func TestComputeBudgetNoQuestions(t *testing.T) {
	doc := &document.Document{
		Paragraphs: []document.Paragraph{
			{Number: 1, ReadingTimeSeconds: 60, TotalTimeSeconds: 60},
		},
	}

	tests := []struct {
		name     string
		factor   float64
		expected int
	}{
		{"factor 1", 1.0, 35},
		{"factor 0.6", 0.6, 21},
		{"factor 2", 2.0, 70},
	}

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeBudget(doc, 0, 300, tt.factor, 0, time.Time{}, now)
			if b.PerQuestionSeconds != tt.expected {
				t.Errorf("PerQuestionSeconds = %v, want %v", b.PerQuestionSeconds, tt.expected)
			}
		})
	}
}

// TestComputeBudgetAnswerTimeOverride tests that the operator's
// answer-time override replaces the 35-second default in the no-question
// fallback.
func TestComputeBudgetAnswerTimeOverride(t *testing.T) {
	doc := &document.Document{
		Paragraphs: []document.Paragraph{
			{Number: 1, ReadingTimeSeconds: 60, TotalTimeSeconds: 60},
		},
	}

	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	b := ComputeBudget(doc, 0, 300, 1.0, 50, time.Time{}, now)
	if b.PerQuestionSeconds != 50 {
		t.Errorf("PerQuestionSeconds = %v, want the overridden 50", b.PerQuestionSeconds)
	}

	b = ComputeBudget(doc, 0, 300, 0.5, 50, time.Time{}, now)
	if b.PerQuestionSeconds != 25 {
		t.Errorf("PerQuestionSeconds = %v, want the scaled override 25", b.PerQuestionSeconds)
	}
}

// TestComputeBudgetCompletedProjection tests the asymmetry between
// history and the live schedule: completed paragraphs keep the scale-only
// projection anchored at the study start, while current and upcoming
// paragraphs project forward from the computation instant.
func TestComputeBudgetCompletedProjection(t *testing.T) {
	studyStart := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	now := studyStart.Add(2 * time.Minute)

	b := ComputeBudget(twoParagraphDoc(), 1, 100, 1.0, 0, studyStart, now)

	first, ok := b.ParagraphAt(0)
	if !ok {
		t.Fatal("ParagraphAt(0) missing")
	}
	if first.Status != StatusCompleted {
		t.Errorf("Paragraphs[0].Status = %v, want %v", first.Status, StatusCompleted)
	}
	if !first.Start.Equal(studyStart) {
		t.Errorf("Paragraphs[0].Start = %v, want study start %v", first.Start, studyStart)
	}
	if first.DurationSeconds != 75 {
		t.Errorf("Paragraphs[0].DurationSeconds = %v, want the static scaled 75", first.DurationSeconds)
	}

	second, ok := b.ParagraphAt(1)
	if !ok {
		t.Fatal("ParagraphAt(1) missing")
	}
	if second.Status != StatusCurrent {
		t.Errorf("Paragraphs[1].Status = %v, want %v", second.Status, StatusCurrent)
	}
	if !second.Start.Equal(now) {
		t.Errorf("Paragraphs[1].Start = %v, want now %v", second.Start, now)
	}

	// remaining 100 - reading 50 = 50 across 3 questions -> 17 each.
	if b.PerQuestionSeconds != 17 {
		t.Fatalf("PerQuestionSeconds = %v, want 17", b.PerQuestionSeconds)
	}
	wantDur := 50 + 17
	if second.DurationSeconds != wantDur {
		t.Errorf("Paragraphs[1].DurationSeconds = %v, want adaptive %v", second.DurationSeconds, wantDur)
	}
}

// TestComputeBudgetReviewSchedule tests the review block placement and
// the per-question ladder inside it.
func TestComputeBudgetReviewSchedule(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	b := ComputeBudget(twoParagraphDoc(), 0, 200, 1.0, 0, time.Time{}, now)

	// reading 90 + 2 embedded questions at 28 = 146 seconds out.
	wantReview := now.Add(146 * time.Second)
	if !b.ReviewStart.Equal(wantReview) {
		t.Errorf("ReviewStart = %v, want %v", b.ReviewStart, wantReview)
	}

	if len(b.ReviewQuestions) != 2 {
		t.Fatalf("len(ReviewQuestions) = %v, want 2", len(b.ReviewQuestions))
	}
	for j, q := range b.ReviewQuestions {
		want := wantReview.Add(time.Duration(j*28) * time.Second)
		if !q.Start.Equal(want) {
			t.Errorf("ReviewQuestions[%d].Start = %v, want %v", j, q.Start, want)
		}
		if q.DurationSeconds != 28 {
			t.Errorf("ReviewQuestions[%d].DurationSeconds = %v, want 28", j, q.DurationSeconds)
		}
	}
}

// TestComputeBudgetClampsPosition tests that out-of-range current
// paragraph indices are clamped instead of panicking.
func TestComputeBudgetClampsPosition(t *testing.T) {
	now := time.Now()
	doc := twoParagraphDoc()

	b := ComputeBudget(doc, -5, 200, 1.0, 0, time.Time{}, now)
	if got := b.Paragraphs[0].Status; got != StatusCurrent {
		t.Errorf("negative index: Paragraphs[0].Status = %v, want %v", got, StatusCurrent)
	}

	b = ComputeBudget(doc, 99, 200, 1.0, 0, time.Time{}, now)
	for i, pb := range b.Paragraphs {
		if pb.Status != StatusCompleted {
			t.Errorf("past-end index: Paragraphs[%d].Status = %v, want %v", i, pb.Status, StatusCompleted)
		}
	}
}
