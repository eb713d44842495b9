package audio

import (
	"io"

	"github.com/dgnsrekt/studypace/schedule"
)

// Bell writes the terminal bell character for every alert. It is the
// fallback when the audio device cannot be opened, and serves terminals
// configured for visual bells. Write failures are ignored; the notifier
// contract forbids failing the caller.
type Bell struct {
	w io.Writer
}

// NewBell creates a bell notifier writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// Notify implements schedule.Notifier. Urgent and final alerts ring the
// bell more than once.
func (b *Bell) Notify(severity schedule.Severity) {
	rings := 1
	switch severity {
	case schedule.SeverityUrgent:
		rings = 2
	case schedule.SeverityFinal:
		rings = 3
	}
	for i := 0; i < rings; i++ {
		_, _ = b.w.Write([]byte{'\a'})
	}
}
