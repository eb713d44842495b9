// Package document defines the analyzed-document model consumed by the
// schedule engine, along with loading helpers and the nominal time model.
// Documents are produced by the external PDF analyzer and are read-only
// here; none of their cached aggregates are recomputed.
package document

// DefaultAnswerTimeSeconds is the nominal time budgeted for answering a
// single question when the analyzer does not supply one.
const DefaultAnswerTimeSeconds = 35

// ContentType marks supplemental material referenced by a question.
type ContentType string

const (
	// ContentImage indicates the question refers to an illustration.
	ContentImage ContentType = "image"
	// ContentScripture indicates the question refers to a scripture citation.
	ContentScripture ContentType = "scripture"
	// ContentBoth indicates the question refers to both.
	ContentBoth ContentType = "both"
)

// Question is a single discussion question, either embedded in a
// paragraph or part of the final review block.
type Question struct {
	Text               string      `json:"text"`
	AnswerTimeSeconds  int         `json:"answer_time"`
	IsFinalQuestion    bool        `json:"is_final_question"`
	ParenthesisContent string      `json:"parenthesis_content,omitempty"`
	ContentType        ContentType `json:"content_type,omitempty"`
}

// Paragraph is one delivery unit of the document. Number is 1-based and
// unique; paragraph order is the canonical delivery order.
type Paragraph struct {
	Number             int        `json:"number"`
	Text               string     `json:"text"`
	WordCount          int        `json:"word_count"`
	ReadingTimeSeconds int        `json:"reading_time_seconds"`
	TotalTimeSeconds   int        `json:"total_time_seconds"`
	Questions          []Question `json:"questions"`
}

// QuestionCount returns the number of questions embedded in the paragraph.
func (p *Paragraph) QuestionCount() int {
	return len(p.Questions)
}

// Document is the analyzer's output. Aggregate fields are derived by the
// analyzer and trusted as given.
type Document struct {
	Paragraphs     []Paragraph `json:"paragraphs"`
	FinalQuestions []Question  `json:"final_questions"`

	TotalParagraphs          int `json:"total_paragraphs"`
	TotalWords               int `json:"total_words"`
	TotalQuestions           int `json:"total_questions"`
	TotalReadingTimeSeconds  int `json:"total_reading_time_seconds"`
	TotalQuestionTimeSeconds int `json:"total_question_time_seconds"`
	TotalTimeSeconds         int `json:"total_time_seconds"`
	FinalQuestionsStartTime  int `json:"final_questions_start_time"`
}

// ParagraphQuestionCount returns the total number of questions embedded in
// paragraphs, excluding the final review questions.
func (d *Document) ParagraphQuestionCount() int {
	n := 0
	for i := range d.Paragraphs {
		n += d.Paragraphs[i].QuestionCount()
	}
	return n
}

// IsEmpty reports whether the document has no deliverable content.
func (d *Document) IsEmpty() bool {
	return len(d.Paragraphs) == 0 && len(d.FinalQuestions) == 0
}
