package audio

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/dgnsrekt/studypace/schedule"
)

// Throttled wraps a Notifier with a rate limit so a noisy session cannot
// turn into a wall of sound. Final alerts always pass; warning and urgent
// alerts are dropped while the limiter is exhausted.
type Throttled struct {
	inner   schedule.Notifier
	limiter *rate.Limiter
}

// NewThrottled wraps inner, allowing at most one warning/urgent alert per
// minInterval with a burst of one.
func NewThrottled(inner schedule.Notifier, minInterval time.Duration) *Throttled {
	return &Throttled{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Notify implements schedule.Notifier.
func (t *Throttled) Notify(severity schedule.Severity) {
	if severity != schedule.SeverityFinal && !t.limiter.Allow() {
		return
	}
	t.inner.Notify(severity)
}
