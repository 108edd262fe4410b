package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/studygen"
)

// saveTimeout bounds a single snapshot write.
const saveTimeout = 5 * time.Second

// Saver persists a whole-state snapshot. Each call overwrites the previous one.
type Saver interface {
	Save(ctx context.Context, st State) error
}

// Loader restores the last saved snapshot. A nil State means nothing has
// been saved yet.
type Loader interface {
	Load(ctx context.Context) (*State, error)
}

// Store owns the session state. Every mutation is applied under a lock and
// followed by a snapshot save, so the persisted document always reflects
// the latest mutation. Mutations never fail; save errors are logged.
type Store struct {
	mu    sync.Mutex
	state State
	saver Saver
	log   *logger.Logger
}

// New creates a Store holding a fresh session. saver and log may be nil.
func New(saver Saver, log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{state: NewState(), saver: saver, log: log}
}

// Open creates a Store restored from loader, or holding a fresh session if
// nothing was saved yet. saver receives every subsequent mutation.
func Open(ctx context.Context, loader Loader, saver Saver, log *logger.Logger) (*Store, error) {
	s := New(saver, log)
	if loader == nil {
		return s, nil
	}

	st, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if st != nil {
		s.Load(*st)
	}
	return s, nil
}

// Load replaces the in-memory state with st without saving it.
func (s *Store) Load(st State) {
	st = st.clone()
	st.normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

// Reset returns the session to its initial state.
func (s *Store) Reset() {
	s.mutate("reset", func(st *State) bool {
		*st = NewState()
		return true
	})
}

// UpdateProfile shallow-merges the non-nil fields of u into the profile.
func (s *Store) UpdateProfile(u ProfileUpdate) {
	s.mutate("update profile", func(st *State) bool {
		st.Profile = st.Profile.merge(u)
		return true
	})
}

// SetContext replaces the study context.
func (s *Store) SetContext(c Context) {
	s.mutate("set context", func(st *State) bool {
		st.Context = c
		return true
	})
}

// StartQuiz replaces the quiz with a fresh one over questions. An empty
// slice is accepted.
func (s *Store) StartQuiz(questions []studygen.Question) {
	s.mutate("start quiz", func(st *State) bool {
		st.Quiz = newQuiz(questions)
		return true
	})
}

// AnswerCurrent records option as the answer to question index. Only the
// first answer for an index counts; later calls are no-ops. An index
// outside the quiz is ignored.
func (s *Store) AnswerCurrent(index, option int) {
	s.mutate("answer", func(st *State) bool {
		q := &st.Quiz
		if index < 0 || index >= len(q.Questions) {
			s.log.Warn("ignoring answer for unknown question", "index", index, "questions", len(q.Questions))
			return false
		}
		if _, done := q.Answers[index]; done {
			return false
		}
		q.Answers[index] = option
		if q.Questions[index].IsCorrect(option) {
			q.Score++
		}
		return true
	})
}

// Advance moves to the next question. Callers must not advance past the
// last question.
func (s *Store) Advance() {
	s.mutate("advance", func(st *State) bool {
		st.Quiz.CurrentIndex++
		return true
	})
}

// Finish marks the quiz finished. Calling it again changes nothing.
func (s *Store) Finish() {
	s.mutate("finish", func(st *State) bool {
		if st.Quiz.Finished {
			return false
		}
		st.Quiz.Finished = true
		return true
	})
}

// AppendMessage adds m to the end of the transcript.
func (s *Store) AppendMessage(m ChatMessage) {
	s.mutate("append message", func(st *State) bool {
		st.ChatHistory = append(st.ChatHistory, m)
		return true
	})
}

// ClearTranscript empties the transcript.
func (s *Store) ClearTranscript() {
	s.mutate("clear transcript", func(st *State) bool {
		st.ChatHistory = []ChatMessage{}
		return true
	})
}

// Profile returns the current profile.
func (s *Store) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Profile
}

// Context returns the current study context.
func (s *Store) Context() Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Context
}

// Quiz returns a copy of the current quiz.
func (s *Store) Quiz() Quiz {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Quiz.clone()
}

// Transcript returns a copy of the chat transcript.
func (s *Store) Transcript() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone().ChatHistory
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// mutate applies fn and saves the result. fn reports whether it changed
// anything; a no-op is not saved.
func (s *Store) mutate(op string, fn func(*State) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(&s.state) || s.saver == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.saver.Save(ctx, s.state.clone()); err != nil {
		s.log.Warn("failed to persist session", "op", op, "error", err)
	}
}
