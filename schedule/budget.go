package schedule

import (
	"math"
	"time"

	"github.com/dgnsrekt/studypace/document"
)

// SegmentStatus classifies a paragraph relative to the current playback
// position.
type SegmentStatus int

const (
	// StatusCompleted marks a paragraph strictly before the current one.
	StatusCompleted SegmentStatus = iota
	// StatusCurrent marks the paragraph at the current position.
	StatusCurrent
	// StatusUpcoming marks a paragraph not yet reached.
	StatusUpcoming
)

// String returns the string representation of the status.
func (s SegmentStatus) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusCurrent:
		return "current"
	case StatusUpcoming:
		return "upcoming"
	default:
		return "unknown"
	}
}

// ParagraphBudget is the projected timing for one paragraph.
//
// Completed paragraphs carry the scale-only projection from the original
// study start; history is shown as originally scheduled, not adaptively
// rebalanced. Current and upcoming paragraphs carry the live projection
// from the computation instant.
type ParagraphBudget struct {
	Number          int
	Status          SegmentStatus
	Start           time.Time
	End             time.Time
	DurationSeconds int
	QuestionCount   int
}

// QuestionBudget is the projected timing for one review question.
type QuestionBudget struct {
	Index           int
	Start           time.Time
	DurationSeconds int
}

// Budget is the output of one re-budgeting pass: a full projection of the
// remaining schedule given the current position and remaining time. It is
// a value; nothing carries over between recomputations.
type Budget struct {
	ComputedAt       time.Time
	RemainingSeconds int

	ScaledReadingSeconds       int
	TimeForAllQuestionsSeconds int
	QuestionCount              int
	PerQuestionSeconds         int

	Paragraphs      []ParagraphBudget
	ReviewStart     time.Time
	ReviewQuestions []QuestionBudget
}

// ComputeBudget redistributes remainingSeconds across the segments at and
// after currentParagraph. Remaining reading time is scaled by factor and
// subtracted; what is left is split equally across every not-yet-delivered
// question, embedded and final alike. A negative remaining time floors the
// question pool at zero, which drives the per-question allowance to zero
// as pressure feedback rather than an error. When no questions remain the
// per-question allowance falls back to answerSeconds scaled by factor; a
// non-positive answerSeconds means the default answer time.
//
// studyStart anchors the scale-only projection used for completed
// paragraphs; now anchors the live projection for everything else.
func ComputeBudget(doc *document.Document, currentParagraph, remainingSeconds int, factor float64, answerSeconds int, studyStart, now time.Time) Budget {
	if answerSeconds <= 0 {
		answerSeconds = document.DefaultAnswerTimeSeconds
	}
	if currentParagraph < 0 {
		currentParagraph = 0
	}
	if currentParagraph > len(doc.Paragraphs) {
		currentParagraph = len(doc.Paragraphs)
	}
	if studyStart.IsZero() {
		studyStart = now
	}

	scaledReading := 0.0
	remainingQuestions := 0
	for i := currentParagraph; i < len(doc.Paragraphs); i++ {
		scaledReading += float64(doc.Paragraphs[i].ReadingTimeSeconds) * factor
		remainingQuestions += doc.Paragraphs[i].QuestionCount()
	}
	questionCount := remainingQuestions + len(doc.FinalQuestions)

	timeForAllQuestions := math.Max(0, float64(remainingSeconds)-scaledReading)

	perQuestion := 0
	if questionCount > 0 {
		perQuestion = int(math.Round(timeForAllQuestions / float64(questionCount)))
	} else {
		perQuestion = int(math.Round(float64(answerSeconds) * factor))
	}

	b := Budget{
		ComputedAt:                 now,
		RemainingSeconds:           remainingSeconds,
		ScaledReadingSeconds:       int(math.Round(scaledReading)),
		TimeForAllQuestionsSeconds: int(math.Round(timeForAllQuestions)),
		QuestionCount:              questionCount,
		PerQuestionSeconds:         perQuestion,
		Paragraphs:                 make([]ParagraphBudget, 0, len(doc.Paragraphs)),
	}

	// Completed paragraphs: scale-only projection from the original start.
	completedOffset := 0.0
	for i := 0; i < currentParagraph; i++ {
		p := &doc.Paragraphs[i]
		dur := float64(p.TotalTimeSeconds) * factor
		b.Paragraphs = append(b.Paragraphs, ParagraphBudget{
			Number:          p.Number,
			Status:          StatusCompleted,
			Start:           studyStart.Add(seconds(completedOffset)),
			End:             studyStart.Add(seconds(completedOffset + dur)),
			DurationSeconds: int(math.Round(dur)),
			QuestionCount:   p.QuestionCount(),
		})
		completedOffset += dur
	}

	// Current and upcoming paragraphs: live projection from now.
	liveOffset := 0.0
	for i := currentParagraph; i < len(doc.Paragraphs); i++ {
		p := &doc.Paragraphs[i]
		dur := float64(p.ReadingTimeSeconds)*factor + float64(p.QuestionCount()*perQuestion)
		status := StatusUpcoming
		if i == currentParagraph {
			status = StatusCurrent
		}
		b.Paragraphs = append(b.Paragraphs, ParagraphBudget{
			Number:          p.Number,
			Status:          status,
			Start:           now.Add(seconds(liveOffset)),
			End:             now.Add(seconds(liveOffset + dur)),
			DurationSeconds: int(math.Round(dur)),
			QuestionCount:   p.QuestionCount(),
		})
		liveOffset += dur
	}

	// Review block: after all remaining reading and embedded questions.
	reviewOffset := scaledReading + float64(remainingQuestions*perQuestion)
	b.ReviewStart = now.Add(seconds(reviewOffset))
	b.ReviewQuestions = make([]QuestionBudget, 0, len(doc.FinalQuestions))
	for j := range doc.FinalQuestions {
		b.ReviewQuestions = append(b.ReviewQuestions, QuestionBudget{
			Index:           j,
			Start:           now.Add(seconds(reviewOffset + float64(j*perQuestion))),
			DurationSeconds: perQuestion,
		})
	}

	return b
}

// ParagraphAt returns the budget entry for the paragraph at index i.
func (b *Budget) ParagraphAt(i int) (ParagraphBudget, bool) {
	if i < 0 || i >= len(b.Paragraphs) {
		return ParagraphBudget{}, false
	}
	return b.Paragraphs[i], true
}

// seconds converts fractional seconds to a Duration rounded to a whole
// second, keeping projected clock times stable for display.
func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s)) * time.Second
}
