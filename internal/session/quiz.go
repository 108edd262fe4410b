package session

import (
	"maps"
	"slices"

	"github.com/abhisek/studybuddy/internal/studygen"
)

// Phase is the quiz lifecycle state.
type Phase int

const (
	PhaseInProgress Phase = iota
	PhaseFinished
)

func (p Phase) String() string {
	if p == PhaseFinished {
		return "finished"
	}
	return "in progress"
}

// Quiz is the progress through one generated set of questions.
//
// Score always equals the number of answered questions whose recorded
// option is the correct one, and each index is answered at most once.
type Quiz struct {
	Questions    []studygen.Question `json:"questions"`
	CurrentIndex int                 `json:"currentIndex"`
	Score        int                 `json:"score"`
	Answers      map[int]int         `json:"answers"`
	Finished     bool                `json:"finished"`
}

func newQuiz(questions []studygen.Question) Quiz {
	return Quiz{
		Questions: cloneQuestions(questions),
		Answers:   map[int]int{},
	}
}

// Phase reports whether the quiz is still being taken.
func (q Quiz) Phase() Phase {
	if q.Finished {
		return PhaseFinished
	}
	return PhaseInProgress
}

// Empty reports whether the quiz has no questions, which is also the state
// of a session that never started one.
func (q Quiz) Empty() bool {
	return len(q.Questions) == 0
}

// IsLast reports whether the current question is the final one.
func (q Quiz) IsLast() bool {
	return q.CurrentIndex >= len(q.Questions)-1
}

// Current returns the question at CurrentIndex.
func (q Quiz) Current() (studygen.Question, bool) {
	if q.CurrentIndex < 0 || q.CurrentIndex >= len(q.Questions) {
		return studygen.Question{}, false
	}
	return q.Questions[q.CurrentIndex], true
}

// Answered returns the recorded option for question i.
func (q Quiz) Answered(i int) (int, bool) {
	opt, ok := q.Answers[i]
	return opt, ok
}

// Percentage is the score as a whole percentage of all questions. An empty
// quiz scores 0.
func (q Quiz) Percentage() int {
	if len(q.Questions) == 0 {
		return 0
	}
	return q.Score * 100 / len(q.Questions)
}

func (q Quiz) correctCount() int {
	n := 0
	for i, opt := range q.Answers {
		if i >= 0 && i < len(q.Questions) && q.Questions[i].IsCorrect(opt) {
			n++
		}
	}
	return n
}

func (q Quiz) clone() Quiz {
	q.Questions = cloneQuestions(q.Questions)
	q.Answers = maps.Clone(q.Answers)
	if q.Answers == nil {
		q.Answers = map[int]int{}
	}
	return q
}

func cloneQuestions(qs []studygen.Question) []studygen.Question {
	if qs == nil {
		return nil
	}
	out := make([]studygen.Question, len(qs))
	for i, q := range qs {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}
