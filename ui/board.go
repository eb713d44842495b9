package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize/english"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"

	"github.com/dgnsrekt/studypace/document"
	"github.com/dgnsrekt/studypace/schedule"
)

// segmentLabelWidth keeps the duration column aligned across rows.
const segmentLabelWidth = 14

// View implements tea.Model. It renders the schedule board: the master
// clock, the per-paragraph projections with wall-clock start times, the
// review and conclusion lines, and the text of the current paragraph.
func (m *model) View() string {
	if m.fatalErr != nil {
		return fmt.Sprintf("fatal: %v\n", m.fatalErr)
	}

	state := m.session.Snapshot()
	budget := m.session.BudgetSnapshot()
	width := m.contentWidth()

	var b strings.Builder

	b.WriteString(m.headerView(state, width))
	b.WriteString("\n")
	b.WriteString(m.progressView(state))
	b.WriteString("\n\n")
	b.WriteString(m.scheduleView(state, budget, width))
	b.WriteString("\n")
	b.WriteString(m.paragraphView(state, width))
	b.WriteString("\n")

	if m.statusMessage != "" {
		b.WriteString(m.styles.StatusNote.Render(m.statusMessage))
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *model) headerView(state schedule.State, width int) string {
	phase := m.styles.Phase.Render(phaseLabel(state))

	clockStyle := m.styles.Clock
	remaining := state.RemainingSeconds
	if remaining < 0 || state.Overtime {
		clockStyle = m.styles.ClockOver
	}
	clock := clockStyle.Render(formatClock(remaining))

	factor := m.styles.Subtle.Render(fmt.Sprintf("scale %.2fx", state.ScaleFactor))

	running := ""
	switch {
	case !state.HasStarted:
		running = m.styles.Subtle.Render("press s to start")
	case !state.Running:
		running = m.styles.Overtime.Render("paused")
	}

	left := lipgloss.JoinHorizontal(lipgloss.Center, phase, "  ", clock, "  ", factor)
	if running == "" {
		return left
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(running)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + running
}

func (m *model) progressView(state schedule.State) string {
	if state.TotalSeconds == 0 {
		return ""
	}
	ratio := float64(state.ElapsedSeconds) / float64(state.TotalSeconds)
	if ratio > 1 {
		ratio = 1
	}
	return m.progress.ViewAs(ratio)
}

func (m *model) scheduleView(state schedule.State, budget schedule.Budget, width int) string {
	doc := m.session.Document()
	var b strings.Builder

	intro := m.session.Scaler().ScaledIntroductionSeconds()
	b.WriteString(m.segmentLine(state.Phase == schedule.PhaseIntro, state.Phase > schedule.PhaseIntro,
		"Introduction", formatDuration(intro), "", width))

	for _, pb := range budget.Paragraphs {
		note := ""
		if pb.QuestionCount > 0 {
			note = english.Plural(pb.QuestionCount, "question", "")
		}
		label := runewidth.FillRight(fmt.Sprintf("Paragraph %d", pb.Number), segmentLabelWidth)
		line := fmt.Sprintf("%s  %s  %s",
			pb.Start.Format("15:04:05"), label, formatDuration(pb.DurationSeconds))
		if note != "" {
			line += "  " + note
		}
		b.WriteString(m.statusLine(pb.Status, line, width))
	}

	if n := len(doc.FinalQuestions); n > 0 {
		line := fmt.Sprintf("%s  Review  %s each, %s",
			budget.ReviewStart.Format("15:04:05"),
			formatDuration(budget.PerQuestionSeconds),
			english.Plural(n, "question", ""))
		b.WriteString(m.segmentLine(state.Phase == schedule.PhaseReview,
			state.Phase > schedule.PhaseReview, "", line, "", width))
		if state.Phase == schedule.PhaseReview && state.ReviewIndex < n {
			q := document.PlainText(doc.FinalQuestions[state.ReviewIndex].Text)
			b.WriteString(m.styles.Current.Render("    › " + truncate.StringWithTail(q, uint(max(width-8, 10)), "…")))
			b.WriteString("\n")
		}
	}

	conclusion := m.session.Scaler().ScaledConclusionSeconds()
	b.WriteString(m.segmentLine(state.Phase == schedule.PhaseConclusion,
		state.Phase > schedule.PhaseConclusion, "Conclusion", formatDuration(conclusion), "", width))

	return b.String()
}

// segmentLine renders a fixed (non-paragraph) schedule row.
func (m *model) segmentLine(current, done bool, label, detail, note string, width int) string {
	line := detail
	if label != "" {
		line = runewidth.FillRight(label, segmentLabelWidth) + "  " + detail
	}
	if note != "" {
		line += "  " + note
	}
	status := schedule.StatusUpcoming
	if current {
		status = schedule.StatusCurrent
	} else if done {
		status = schedule.StatusCompleted
	}
	return m.statusLine(status, line, width)
}

func (m *model) statusLine(status schedule.SegmentStatus, line string, width int) string {
	glyph := "  "
	style := m.styles.Upcoming
	switch status {
	case schedule.StatusCompleted:
		glyph = "✓ "
		style = m.styles.Completed
	case schedule.StatusCurrent:
		glyph = "▶ "
		style = m.styles.Current
	}
	return style.Render(glyph+truncate.StringWithTail(line, uint(max(width-4, 10)), "…")) + "\n"
}

func (m *model) paragraphView(state schedule.State, width int) string {
	if state.Phase != schedule.PhaseParagraph {
		return ""
	}
	doc := m.session.Document()
	if state.ParagraphIndex >= len(doc.Paragraphs) {
		return ""
	}
	p := doc.Paragraphs[state.ParagraphIndex]

	segment := fmt.Sprintf("%s / %s in segment", formatClock(state.SegmentElapsedSeconds), formatClock(state.SegmentBudgetSeconds))
	if state.Overtime {
		segment = m.styles.Overtime.Render(segment + "  over budget")
	} else {
		segment = m.styles.Subtle.Render(segment)
	}

	meta := m.styles.Subtle.Render(english.Plural(p.WordCount, "word", ""))

	body := p.Text
	if m.renderer != nil {
		if out, err := m.renderer.Render(p.Text); err == nil {
			body = strings.TrimRight(out, "\n")
		}
	} else {
		body = wordwrapPlain(body, width)
	}

	return segment + "  " + meta + "\n" + body + "\n"
}

// phaseLabel renders the phase badge text, with the position suffix for
// indexed phases.
func phaseLabel(state schedule.State) string {
	switch state.Phase {
	case schedule.PhaseParagraph:
		return fmt.Sprintf("PARAGRAPH %d", state.ParagraphIndex+1)
	case schedule.PhaseReview:
		return fmt.Sprintf("REVIEW Q%d", state.ReviewIndex+1)
	default:
		return strings.ToUpper(state.Phase.String())
	}
}

// wordwrapPlain wraps text without any markdown rendering, used when
// glamour is disabled.
func wordwrapPlain(text string, width int) string {
	return wordwrap.String(text, max(width-2, 10))
}

// formatClock renders seconds as M:SS, or H:MM:SS past an hour. Negative
// values keep their sign so overtime reads as overtime.
func formatClock(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}

// formatDuration renders a short duration like "2m30s" or "45s".
func formatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	m := seconds / 60
	s := seconds % 60
	switch {
	case m == 0:
		return fmt.Sprintf("%ds", s)
	case s == 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%dm%02ds", m, s)
	}
}
