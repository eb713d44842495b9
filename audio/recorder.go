package audio

import (
	"sync"

	"github.com/dgnsrekt/studypace/schedule"
)

// Recorder captures alerts for tests.
type Recorder struct {
	mu    sync.Mutex
	calls []schedule.Severity
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Notify implements schedule.Notifier.
func (r *Recorder) Notify(severity schedule.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, severity)
}

// Calls returns a copy of the recorded alerts in order.
func (r *Recorder) Calls() []schedule.Severity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]schedule.Severity, len(r.calls))
	copy(out, r.calls)
	return out
}

// Reset clears recorded alerts.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
