package studygen

// schema is a named JSON Schema definition, compiled once on first use.
type schema struct {
	Name       string
	Definition map[string]any
}

var questionItem = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"text": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"options": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "string"},
			"minItems": OptionCount,
			"maxItems": OptionCount,
		},
		"correctAnswerIndex": map[string]any{
			"type":    "integer",
			"minimum": 0,
			"maximum": OptionCount - 1,
		},
		"explanation": map[string]any{
			"type": "string",
		},
	},
	"required": []any{"text", "options", "correctAnswerIndex", "explanation"},
}

// questionListSchema accepts the unwrapped question array. The number of
// questions is not constrained.
var questionListSchema = &schema{
	Name: "quiz-questions",
	Definition: map[string]any{
		"type":  "array",
		"items": questionItem,
	},
}

var gradeSchema = &schema{
	Name: "answer-grade",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":    "integer",
				"minimum": 0,
				"maximum": 10,
			},
			"feedback": map[string]any{
				"type": "string",
			},
		},
		"required": []any{"score", "feedback"},
	},
}
