package grading

// Summary tallies graded questions of one task.
type Summary struct {
	Correct    int `json:"correct"`
	Incorrect  int `json:"incorrect"`
	Unanswered int `json:"unanswered"`
	Skipped    int `json:"skipped"`
}

func (s Summary) Total() int {
	return s.Correct + s.Incorrect + s.Unanswered + s.Skipped
}

// Record classifies one question by the verdicts of its options. A question
// is correct when a selected option was marked correct and none incorrect.
func (s *Summary) Record(options []Option, verdicts []Verdict) {
	answered := false
	incorrect := false
	for i, opt := range options {
		if !opt.Selected {
			continue
		}
		answered = true
		if i < len(verdicts) && verdicts[i] == VerdictIncorrect {
			incorrect = true
		}
	}

	switch {
	case !answered:
		s.Unanswered++
	case incorrect:
		s.Incorrect++
	default:
		s.Correct++
	}
}
