package studygen

import (
	"fmt"
	"strings"
)

const tutorPromptTemplate = `You are a helpful AI tutor for a school student. Context: %s. Keep answers simple, friendly, and educational.`

// buildQuizPrompt asks for a JSON object with a "questions" array in the
// exact Question shape.
func buildQuizPrompt(input QuizInput, count int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a quiz for a Class %s student.\n", input.ClassName)
	fmt.Fprintf(&b, "Subject: %s\n", input.Subject)
	fmt.Fprintf(&b, "Topic: %s\n", input.Topic)
	fmt.Fprintf(&b, "Difficulty: %s\n\n", input.Difficulty)

	fmt.Fprintf(&b, "Generate %d distinct multiple-choice questions.\n", count)
	b.WriteString(`Return ONLY a VALID JSON object with a "questions" key containing an array.
Structure:
{
  "questions": [
    {
      "text": "Question text",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctAnswerIndex": 0,
      "explanation": "Brief explanation"
    }
  ]
}
Each question has exactly 4 options. correctAnswerIndex is the 0-based index of the correct option (0-3).`)

	return b.String()
}

func buildPaperPrompt(input PaperInput) string {
	board := input.Board
	if board == "" {
		board = DefaultBoard
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Create a sample board exam paper for Class %s %s following %s pattern.\n",
		input.ClassName, input.Subject, board)
	b.WriteString(`Include 3 sections:
1. Section A: 5 MCQs (with answers at the end)
2. Section B: 3 Short Answer Questions (Theoretical)
3. Section C: 2 Long Answer Questions (Theoretical)

Format with clear Markdown headers.`)
	return b.String()
}

func buildTutorSystemPrompt(contextSummary string) string {
	return fmt.Sprintf(tutorPromptTemplate, contextSummary)
}

func buildGradePrompt(question, userAnswer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", question)
	fmt.Fprintf(&b, "Student Answer: %s\n\n", userAnswer)
	b.WriteString(`Grade this answer on a scale of 0-10.
Return JSON: { "score": <integer 0-10>, "feedback": "string" }`)
	return b.String()
}
