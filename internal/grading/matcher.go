package grading

import (
	"sort"

	"github.com/SAP-F-2025/quizmark/internal/models"
)

// CorrectSet holds the positions of the answers flagged correct in one question.
type CorrectSet map[int]struct{}

func (s CorrectSet) Has(position int) bool {
	_, ok := s[position]
	return ok
}

func (s CorrectSet) Len() int {
	return len(s)
}

// Positions returns the members in ascending order.
func (s CorrectSet) Positions() []int {
	out := make([]int, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// MatchCorrect returns, keyed by question position, the set of answer
// positions flagged correct. A question without correct answers maps to an
// empty set.
func MatchCorrect(keys []models.QuestionKey) map[int]CorrectSet {
	out := make(map[int]CorrectSet, len(keys))
	for qi, key := range keys {
		out[qi] = correctPositions(key)
	}
	return out
}

func correctPositions(key models.QuestionKey) CorrectSet {
	set := make(CorrectSet)
	for ai, a := range key.Answers {
		if a.IsCorrect {
			set[ai] = struct{}{}
		}
	}
	return set
}

// answerIDs maps every answer ID of the key to its correctness. ok is false
// when the key is empty or any answer lacks an ID.
func answerIDs(key models.QuestionKey) (ids map[uint]bool, ok bool) {
	if len(key.Answers) == 0 {
		return nil, false
	}
	ids = make(map[uint]bool, len(key.Answers))
	for _, a := range key.Answers {
		if a.AnswerID == 0 {
			return nil, false
		}
		ids[a.AnswerID] = a.IsCorrect
	}
	return ids, true
}
