package ui

import (
	"fmt"
	"strings"

	"github.com/dgnsrekt/studypace/document"
	"github.com/dgnsrekt/studypace/schedule"
)

// exportSchedule renders the current projection as plain text for the
// clipboard, one line per segment with wall-clock start times.
func exportSchedule(session *schedule.Session) string {
	budget := session.BudgetSnapshot()
	doc := session.Document()
	scaler := session.Scaler()

	var b strings.Builder
	fmt.Fprintf(&b, "Schedule (scale %.2fx, %s remaining)\n",
		scaler.Factor(), formatClock(budget.RemainingSeconds))
	fmt.Fprintf(&b, "Introduction  %s\n", formatDuration(scaler.ScaledIntroductionSeconds()))

	for _, pb := range budget.Paragraphs {
		fmt.Fprintf(&b, "%s  Paragraph %d  %s",
			pb.Start.Format("15:04:05"), pb.Number, formatDuration(pb.DurationSeconds))
		if pb.QuestionCount > 0 {
			fmt.Fprintf(&b, "  (%d questions)", pb.QuestionCount)
		}
		b.WriteString("\n")
	}

	if n := len(doc.FinalQuestions); n > 0 {
		fmt.Fprintf(&b, "%s  Review  %d questions, %s each\n",
			budget.ReviewStart.Format("15:04:05"), n, formatDuration(budget.PerQuestionSeconds))
		for _, q := range budget.ReviewQuestions {
			text := document.PlainText(doc.FinalQuestions[q.Index].Text)
			fmt.Fprintf(&b, "    %s  Q%d  %s\n", q.Start.Format("15:04:05"), q.Index+1, text)
		}
	}

	fmt.Fprintf(&b, "Conclusion  %s\n", formatDuration(scaler.ScaledConclusionSeconds()))
	return b.String()
}
