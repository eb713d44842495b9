package schedule

// Phase identifies the active segment kind of a presentation session.
type Phase int

const (
	// PhaseNotStarted is the state before the first start.
	PhaseNotStarted Phase = iota
	// PhaseIntro is the introduction segment.
	PhaseIntro
	// PhaseParagraph is a paragraph segment; the session tracks which one.
	PhaseParagraph
	// PhaseReview is a final review question segment.
	PhaseReview
	// PhaseConclusion is the closing words segment.
	PhaseConclusion
	// PhaseFinished is the terminal state after the conclusion.
	PhaseFinished
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not-started"
	case PhaseIntro:
		return "intro"
	case PhaseParagraph:
		return "paragraph"
	case PhaseReview:
		return "review"
	case PhaseConclusion:
		return "conclusion"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// phaseTransitions is the set of valid phase changes. Paragraph and
// review self-loops cover index movement within the same phase kind.
// The introduction connects directly to review and conclusion so that
// documents without paragraphs can still run front to back.
var phaseTransitions = map[Phase][]Phase{
	PhaseNotStarted: {PhaseIntro},
	PhaseIntro:      {PhaseParagraph, PhaseReview, PhaseConclusion, PhaseNotStarted},
	PhaseParagraph:  {PhaseParagraph, PhaseReview, PhaseConclusion, PhaseIntro, PhaseNotStarted},
	PhaseReview:     {PhaseReview, PhaseConclusion, PhaseParagraph, PhaseIntro, PhaseNotStarted},
	PhaseConclusion: {PhaseFinished, PhaseReview, PhaseParagraph, PhaseIntro, PhaseNotStarted},
	PhaseFinished:   {PhaseConclusion, PhaseNotStarted},
}

// canTransition reports whether moving from one phase to another is valid.
func canTransition(from, to Phase) bool {
	for _, p := range phaseTransitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Position is the session's current place in the delivery order:
// the phase plus the paragraph and review indices (meaningful only in
// their respective phases).
type Position struct {
	Phase     Phase
	Paragraph int
	Review    int
}

// next returns the position after one forward step. Advancing past
// Finished saturates. Review is skipped when the document has no final
// questions.
func (pos Position) next(paragraphs, finalQuestions int) Position {
	switch pos.Phase {
	case PhaseNotStarted:
		return Position{Phase: PhaseIntro}
	case PhaseIntro:
		if paragraphs == 0 {
			if finalQuestions > 0 {
				return Position{Phase: PhaseReview}
			}
			return Position{Phase: PhaseConclusion}
		}
		return Position{Phase: PhaseParagraph}
	case PhaseParagraph:
		if pos.Paragraph < paragraphs-1 {
			return Position{Phase: PhaseParagraph, Paragraph: pos.Paragraph + 1}
		}
		if finalQuestions > 0 {
			return Position{Phase: PhaseReview}
		}
		return Position{Phase: PhaseConclusion}
	case PhaseReview:
		if pos.Review < finalQuestions-1 {
			return Position{Phase: PhaseReview, Review: pos.Review + 1}
		}
		return Position{Phase: PhaseConclusion}
	case PhaseConclusion:
		return Position{Phase: PhaseFinished}
	default:
		return pos
	}
}

// prev returns the position after one backward step; it is the exact
// inverse of next at every state. Retreating from Intro saturates rather
// than crossing the not-started boundary.
func (pos Position) prev(paragraphs, finalQuestions int) Position {
	switch pos.Phase {
	case PhaseFinished:
		return Position{Phase: PhaseConclusion}
	case PhaseConclusion:
		if finalQuestions > 0 {
			return Position{Phase: PhaseReview, Review: finalQuestions - 1}
		}
		if paragraphs > 0 {
			return Position{Phase: PhaseParagraph, Paragraph: paragraphs - 1}
		}
		return Position{Phase: PhaseIntro}
	case PhaseReview:
		if pos.Review > 0 {
			return Position{Phase: PhaseReview, Review: pos.Review - 1}
		}
		if paragraphs > 0 {
			return Position{Phase: PhaseParagraph, Paragraph: paragraphs - 1}
		}
		return Position{Phase: PhaseIntro}
	case PhaseParagraph:
		if pos.Paragraph > 0 {
			return Position{Phase: PhaseParagraph, Paragraph: pos.Paragraph - 1}
		}
		return Position{Phase: PhaseIntro}
	default:
		return pos
	}
}

// budgetIndex returns the paragraph index the budget calculator should
// treat as the first not-yet-completed paragraph for this position.
func (pos Position) budgetIndex(paragraphs int) int {
	switch pos.Phase {
	case PhaseNotStarted, PhaseIntro:
		return 0
	case PhaseParagraph:
		return pos.Paragraph
	default:
		return paragraphs
	}
}
