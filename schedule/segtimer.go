package schedule

// SegmentTimer tracks elapsed time since a segment became active and
// raises one-shot overtime alerts against the segment's estimated budget.
// One timer instance serves every segment kind; each transition restarts
// it, which re-arms the alerts.
type SegmentTimer struct {
	elapsedSeconds int
	budgetSeconds  int
	graceSeconds   int

	warned bool
	urged  bool
}

// NewSegmentTimer creates a timer with the given escalation grace period.
func NewSegmentTimer(graceSeconds int) *SegmentTimer {
	return &SegmentTimer{graceSeconds: graceSeconds}
}

// Restart zeroes the timer for a newly activated segment with the given
// budget. A non-positive budget disables overtime detection for the
// segment.
func (t *SegmentTimer) Restart(budgetSeconds int) {
	t.elapsedSeconds = 0
	t.budgetSeconds = budgetSeconds
	t.warned = false
	t.urged = false
}

// SetBudget updates the budget without restarting, for segments whose
// estimated duration is itself recomputed on every tick.
func (t *SegmentTimer) SetBudget(budgetSeconds int) {
	t.budgetSeconds = budgetSeconds
}

// Tick advances the timer by one second and returns the alert to fire,
// if any. Each severity fires at most once per activation.
func (t *SegmentTimer) Tick() (Severity, bool) {
	t.elapsedSeconds++
	if t.budgetSeconds <= 0 {
		return "", false
	}
	if !t.warned && t.elapsedSeconds > t.budgetSeconds {
		t.warned = true
		return SeverityWarning, true
	}
	if t.warned && !t.urged && t.elapsedSeconds > t.budgetSeconds+t.graceSeconds {
		t.urged = true
		return SeverityUrgent, true
	}
	return "", false
}

// Elapsed returns seconds since the segment became active.
func (t *SegmentTimer) Elapsed() int { return t.elapsedSeconds }

// Budget returns the segment's estimated duration in seconds.
func (t *SegmentTimer) Budget() int { return t.budgetSeconds }

// Overtime reports whether the segment has exceeded its budget.
func (t *SegmentTimer) Overtime() bool {
	return t.budgetSeconds > 0 && t.elapsedSeconds > t.budgetSeconds
}
