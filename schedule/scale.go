package schedule

import (
	"math"

	"github.com/dgnsrekt/studypace/document"
)

const (
	// MinScaleFactor and MaxScaleFactor bound the proportional scale
	// factor regardless of how extreme the requested total duration is
	// relative to the document's nominal total.
	MinScaleFactor = 0.5
	MaxScaleFactor = 2.0

	// DefaultIntroductionSeconds is the nominal introduction duration.
	DefaultIntroductionSeconds = 60
	// DefaultConclusionSeconds is the nominal conclusion duration.
	DefaultConclusionSeconds = 60
)

// ScaleFactor maps a nominal total duration onto an operator-chosen total
// duration, clamped to [MinScaleFactor, MaxScaleFactor]. A zero nominal
// total yields 1 so degenerate documents never divide by zero.
func ScaleFactor(nominalTotalSeconds, operatorTotalSeconds int) float64 {
	if nominalTotalSeconds == 0 {
		return 1
	}
	factor := float64(operatorTotalSeconds) / float64(nominalTotalSeconds)
	return math.Min(MaxScaleFactor, math.Max(MinScaleFactor, factor))
}

// Scaler holds the scale factor for a fixed (document, operator total)
// pair. The factor never depends on playback position; only the budget
// calculator does.
type Scaler struct {
	factor            float64
	introSeconds      int
	conclusionSeconds int
	answerSeconds     int
}

// NewScaler computes the scale factor for doc against the operator's
// chosen total. The introduction, conclusion, and answer-time overrides
// are nominal base values and are scaled like everything else; pass zero
// to use the defaults.
func NewScaler(doc *document.Document, operatorTotalSeconds, introSeconds, conclusionSeconds, answerSeconds int) *Scaler {
	if introSeconds <= 0 {
		introSeconds = DefaultIntroductionSeconds
	}
	if conclusionSeconds <= 0 {
		conclusionSeconds = DefaultConclusionSeconds
	}
	if answerSeconds <= 0 {
		answerSeconds = document.DefaultAnswerTimeSeconds
	}
	nominal := doc.NominalTotalDuration(introSeconds, conclusionSeconds, answerSeconds)
	return &Scaler{
		factor:            ScaleFactor(nominal, operatorTotalSeconds),
		introSeconds:      introSeconds,
		conclusionSeconds: conclusionSeconds,
		answerSeconds:     answerSeconds,
	}
}

// Factor returns the clamped scale factor.
func (s *Scaler) Factor() float64 { return s.factor }

// ScaledIntroductionSeconds returns the introduction duration after
// scaling, rounded to whole seconds.
func (s *Scaler) ScaledIntroductionSeconds() int {
	return int(math.Round(float64(s.introSeconds) * s.factor))
}

// ScaledConclusionSeconds returns the conclusion duration after scaling,
// rounded to whole seconds.
func (s *Scaler) ScaledConclusionSeconds() int {
	return int(math.Round(float64(s.conclusionSeconds) * s.factor))
}

// IntroductionSeconds returns the nominal introduction base value.
func (s *Scaler) IntroductionSeconds() int { return s.introSeconds }

// ConclusionSeconds returns the nominal conclusion base value.
func (s *Scaler) ConclusionSeconds() int { return s.conclusionSeconds }

// AnswerSeconds returns the nominal per-question answer time.
func (s *Scaler) AnswerSeconds() int { return s.answerSeconds }
