package studygen

import "github.com/abhisek/studybuddy/internal/llm"

// DefaultBoard is the curriculum board used when none is given.
const DefaultBoard = "CBSE"

// Config controls the behavior of the Gateway.
type Config struct {
	// Temperature is sent with every request.
	Temperature float64

	// MaxTokens is the token budget per response; zero leaves the
	// provider default.
	MaxTokens int

	// QuestionCount is how many questions a quiz prompt asks for. The
	// model may return a different count; callers must tolerate that.
	QuestionCount int
}

// DefaultConfig returns the recommended Gateway settings.
func DefaultConfig() Config {
	return Config{
		Temperature:   llm.DefaultTemperature,
		QuestionCount: 5,
	}
}
