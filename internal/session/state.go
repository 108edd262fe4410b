// Package session holds the study session: the student's profile, what they
// are studying, the active quiz and the tutor transcript. A Store is the
// only writer of that state and persists it after every mutation.
package session

import (
	"maps"
	"slices"

	"github.com/abhisek/studybuddy/internal/studygen"
)

// StateVersion is the schema version written with every persisted State.
const StateVersion = 1

// Profile describes the student.
type Profile struct {
	Name      string `json:"name"`
	ClassName string `json:"className"`
	Board     string `json:"board"`
}

// DefaultProfile is the profile of a fresh session.
func DefaultProfile() Profile {
	return Profile{Name: "Student", ClassName: "10", Board: studygen.DefaultBoard}
}

// ProfileUpdate is a partial Profile. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name      *string
	ClassName *string
	Board     *string
}

func (p Profile) merge(u ProfileUpdate) Profile {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.ClassName != nil {
		p.ClassName = *u.ClassName
	}
	if u.Board != nil {
		p.Board = *u.Board
	}
	return p
}

// Mode is the activity the student selected for the current context.
type Mode string

const (
	ModeNone Mode = ""
	ModeQuiz Mode = "quiz"
	ModePrep Mode = "prep"
	ModeChat Mode = "chat"
)

// ParseMode converts user input to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(s); m {
	case ModeNone, ModeQuiz, ModePrep, ModeChat:
		return m, true
	}
	return ModeNone, false
}

// Context is what the student is currently studying.
type Context struct {
	Subject string `json:"subject"`
	Topic   string `json:"topic"`
	Mode    Mode   `json:"mode"`
}

// Ready reports whether both subject and topic are set. Entry points check
// this before starting a quiz or paper; the Store does not.
func (c Context) Ready() bool {
	return c.Subject != "" && c.Topic != ""
}

// Role identifies the author of a ChatMessage.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// ChatMessage is one entry in the tutor transcript.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// State is the whole session, and the persisted document.
type State struct {
	Version     int           `json:"version"`
	Profile     Profile       `json:"profile"`
	Context     Context       `json:"context"`
	Quiz        Quiz          `json:"quiz"`
	ChatHistory []ChatMessage `json:"chatHistory"`
}

// NewState returns the state of a fresh session.
func NewState() State {
	return State{
		Version:     StateVersion,
		Profile:     DefaultProfile(),
		Quiz:        newQuiz(nil),
		ChatHistory: []ChatMessage{},
	}
}

func (s State) clone() State {
	s.Quiz = s.Quiz.clone()
	s.ChatHistory = slices.Clone(s.ChatHistory)
	if s.ChatHistory == nil {
		s.ChatHistory = []ChatMessage{}
	}
	return s
}

// normalize repairs a decoded State so the quiz invariants hold: answers
// outside the question range are dropped and the score is recomputed.
func (s *State) normalize() {
	s.Version = StateVersion
	if s.ChatHistory == nil {
		s.ChatHistory = []ChatMessage{}
	}
	if s.Quiz.Answers == nil {
		s.Quiz.Answers = map[int]int{}
	}
	maps.DeleteFunc(s.Quiz.Answers, func(i, _ int) bool {
		return i < 0 || i >= len(s.Quiz.Questions)
	})
	s.Quiz.Score = s.Quiz.correctCount()
	if s.Quiz.CurrentIndex < 0 {
		s.Quiz.CurrentIndex = 0
	}
}
