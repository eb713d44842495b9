package schedule

// Severity tags an overtime alert. Notifiers map it to an audio or
// vibration pattern; the engine only decides when to fire.
type Severity string

const (
	// SeverityWarning fires when a segment first exceeds its budget.
	SeverityWarning Severity = "warning"
	// SeverityUrgent fires when a segment stays in overtime past the
	// configured grace period.
	SeverityUrgent Severity = "urgent"
	// SeverityFinal fires once when the overall remaining time reaches
	// zero.
	SeverityFinal Severity = "final"
)

// Notifier receives overtime alerts. Implementations are fire-and-forget:
// they have no return value and must never panic into the caller.
type Notifier interface {
	Notify(severity Severity)
}

// NopNotifier discards all alerts.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(Severity) {}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(Severity)

// Notify implements Notifier.
func (f NotifierFunc) Notify(severity Severity) { f(severity) }
