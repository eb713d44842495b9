package document

// The time model is a set of pure functions over a Document. Values are
// recomputed on demand; nothing here caches mutable state.

// NominalTotalDuration returns the document's authored total duration in
// seconds: paragraph reading and question time, the final review block at
// answerSeconds per question, plus the given introduction and conclusion
// durations. A non-positive answerSeconds falls back to the default
// answer time.
func (d *Document) NominalTotalDuration(introSeconds, conclusionSeconds, answerSeconds int) int {
	if answerSeconds <= 0 {
		answerSeconds = DefaultAnswerTimeSeconds
	}
	total := introSeconds + conclusionSeconds
	for i := range d.Paragraphs {
		total += d.Paragraphs[i].TotalTimeSeconds
	}
	total += len(d.FinalQuestions) * answerSeconds
	return total
}

// TimeUntilLastQuestion returns the cumulative reading time, in seconds,
// through the last paragraph that has at least one question. Question time
// is not included. If no paragraph has questions the total reading time of
// all paragraphs is returned.
func (d *Document) TimeUntilLastQuestion() int {
	last := -1
	for i := len(d.Paragraphs) - 1; i >= 0; i-- {
		if d.Paragraphs[i].QuestionCount() > 0 {
			last = i
			break
		}
	}

	total := 0
	for i := range d.Paragraphs {
		if last >= 0 && i > last {
			break
		}
		total += d.Paragraphs[i].ReadingTimeSeconds
	}
	return total
}

// NominalReadingTime returns the summed unscaled reading time of all
// paragraphs, ignoring the analyzer's cached aggregate.
func (d *Document) NominalReadingTime() int {
	total := 0
	for i := range d.Paragraphs {
		total += d.Paragraphs[i].ReadingTimeSeconds
	}
	return total
}
