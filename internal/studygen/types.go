package studygen

// OptionCount is the number of options every multiple-choice question carries.
const OptionCount = 4

// Question is a generated multiple-choice question. Immutable once generated.
type Question struct {
	// Text is the question prompt shown to the student.
	Text string `json:"text"`

	// Options holds exactly OptionCount answer choices, in display order.
	Options []string `json:"options"`

	// CorrectAnswerIndex is the index into Options of the right answer (0-3).
	CorrectAnswerIndex int `json:"correctAnswerIndex"`

	// Explanation is shown after the student answers.
	Explanation string `json:"explanation"`
}

// IsCorrect reports whether option is the right answer.
func (q Question) IsCorrect(option int) bool {
	return option == q.CorrectAnswerIndex
}

// Grade is the model's assessment of a free-text answer.
type Grade struct {
	// Score is on a 0-10 scale.
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// QuizInput holds the context for quiz generation.
type QuizInput struct {
	ClassName  string
	Subject    string
	Topic      string
	Difficulty string
}

// PaperInput holds the context for board-paper generation.
type PaperInput struct {
	ClassName string
	Subject   string
	Board     string
}
