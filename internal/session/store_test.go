package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/studygen"
)

type memSaver struct {
	mu    sync.Mutex
	saves []State
	err   error
}

func (m *memSaver) Save(_ context.Context, st State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves = append(m.saves, st)
	return m.err
}

func (m *memSaver) Load(context.Context) (*State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return nil, nil
	}
	st := m.saves[len(m.saves)-1]
	return &st, nil
}

func (m *memSaver) last(t *testing.T) State {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	require.NotEmpty(t, m.saves, "expected at least one save")
	return m.saves[len(m.saves)-1]
}

func q(text string, correct int) studygen.Question {
	return studygen.Question{
		Text:               text,
		Options:            []string{"a", "b", "c", "d"},
		CorrectAnswerIndex: correct,
		Explanation:        "because",
	}
}

func ptr(s string) *string { return &s }

func TestNew_Defaults(t *testing.T) {
	s := New(nil, nil)

	assert.Equal(t, Profile{Name: "Student", ClassName: "10", Board: "CBSE"}, s.Profile())
	assert.Equal(t, Context{}, s.Context())
	assert.True(t, s.Quiz().Empty())
	assert.Empty(t, s.Transcript())
	assert.Equal(t, StateVersion, s.Snapshot().Version)
}

func TestUpdateProfile_ShallowMerge(t *testing.T) {
	s := New(nil, nil)

	s.UpdateProfile(ProfileUpdate{ClassName: ptr("12")})
	assert.Equal(t, Profile{Name: "Student", ClassName: "12", Board: "CBSE"}, s.Profile())

	s.UpdateProfile(ProfileUpdate{Name: ptr("Asha"), Board: ptr("")})
	assert.Equal(t, Profile{Name: "Asha", ClassName: "12", Board: ""}, s.Profile())
}

func TestSetContext_ReplacesWholesale(t *testing.T) {
	s := New(nil, nil)
	s.SetContext(Context{Subject: "Physics", Topic: "Optics", Mode: ModeQuiz})
	s.SetContext(Context{Subject: "Maths"})

	assert.Equal(t, Context{Subject: "Maths"}, s.Context())
	assert.False(t, s.Context().Ready())
}

func TestAnswerCurrent_FirstAnswerWins(t *testing.T) {
	s := New(nil, nil)
	s.StartQuiz([]studygen.Question{q("Q1", 2), q("Q2", 0)})

	s.AnswerCurrent(0, 1) // wrong
	s.AnswerCurrent(0, 2) // would be right, ignored
	s.AnswerCurrent(0, 2)

	quiz := s.Quiz()
	assert.Equal(t, map[int]int{0: 1}, quiz.Answers)
	assert.Equal(t, 0, quiz.Score)

	s.AnswerCurrent(1, 0)
	s.AnswerCurrent(1, 3)
	quiz = s.Quiz()
	assert.Equal(t, map[int]int{0: 1, 1: 0}, quiz.Answers)
	assert.Equal(t, 1, quiz.Score)
}

func TestAnswerCurrent_ScoreMatchesCorrectAnswers(t *testing.T) {
	questions := []studygen.Question{q("Q1", 0), q("Q2", 1), q("Q3", 2), q("Q4", 3), q("Q5", 0)}
	answers := [][2]int{{0, 0}, {1, 2}, {1, 1}, {2, 2}, {4, 3}, {3, 3}, {2, 0}, {4, 0}}

	s := New(nil, nil)
	s.StartQuiz(questions)
	for _, a := range answers {
		s.AnswerCurrent(a[0], a[1])

		quiz := s.Quiz()
		want := 0
		for i, opt := range quiz.Answers {
			if quiz.Questions[i].CorrectAnswerIndex == opt {
				want++
			}
		}
		require.Equal(t, want, quiz.Score, "after answer %v", a)
	}
	assert.Equal(t, 3, s.Quiz().Score)
}

func TestAnswerCurrent_OutOfRangeIgnored(t *testing.T) {
	s := New(nil, nil)
	s.StartQuiz([]studygen.Question{q("Q1", 0)})

	s.AnswerCurrent(5, 0)
	s.AnswerCurrent(-1, 0)

	quiz := s.Quiz()
	assert.Empty(t, quiz.Answers)
	assert.Zero(t, quiz.Score)
}

func TestStartQuiz_NoLeakageFromPriorQuiz(t *testing.T) {
	first := []studygen.Question{q("A", 0), q("B", 1), q("C", 2)}
	second := []studygen.Question{q("X", 3), q("Y", 2)}

	used := New(nil, nil)
	used.StartQuiz(first)
	used.AnswerCurrent(0, 0)
	used.Advance()
	used.AnswerCurrent(1, 1)
	used.Advance()
	used.Finish()
	used.StartQuiz(second)

	fresh := New(nil, nil)
	fresh.StartQuiz(second)

	if diff := cmp.Diff(fresh.Quiz(), used.Quiz()); diff != "" {
		t.Errorf("quiz after restart differs from fresh quiz (-fresh +used):\n%s", diff)
	}
	assert.Equal(t, PhaseInProgress, used.Quiz().Phase())
}

func TestStartQuiz_Empty(t *testing.T) {
	s := New(nil, nil)
	s.StartQuiz([]studygen.Question{})

	quiz := s.Quiz()
	assert.True(t, quiz.Empty())
	assert.Equal(t, 0, quiz.Percentage())
	assert.Equal(t, PhaseInProgress, quiz.Phase())
}

func TestFinish_Idempotent(t *testing.T) {
	s := New(nil, nil)
	s.StartQuiz([]studygen.Question{q("Q1", 1), q("Q2", 0)})
	s.AnswerCurrent(0, 1)
	s.Advance()
	s.Finish()
	before := s.Snapshot()

	s.Finish()

	if diff := cmp.Diff(before, s.Snapshot()); diff != "" {
		t.Errorf("second Finish changed state (-before +after):\n%s", diff)
	}
	assert.True(t, s.Quiz().Finished)
	assert.Equal(t, PhaseFinished, s.Quiz().Phase())
}

func TestQuizScenario_PerfectScore(t *testing.T) {
	s := New(nil, nil)
	s.StartQuiz([]studygen.Question{{
		Text:               "2+2?",
		Options:            []string{"3", "4", "5", "6"},
		CorrectAnswerIndex: 1,
		Explanation:        "basic",
	}})

	s.AnswerCurrent(0, 1)
	quiz := s.Quiz()
	assert.Equal(t, 1, quiz.Score)
	assert.Equal(t, map[int]int{0: 1}, quiz.Answers)
	assert.True(t, quiz.IsLast())

	s.Finish()
	quiz = s.Quiz()
	assert.True(t, quiz.Finished)
	assert.Equal(t, 100, quiz.Percentage())
}

func TestAdvance(t *testing.T) {
	s := New(nil, nil)
	s.StartQuiz([]studygen.Question{q("Q1", 0), q("Q2", 0), q("Q3", 0)})

	assert.False(t, s.Quiz().IsLast())
	s.Advance()
	s.Advance()

	quiz := s.Quiz()
	assert.Equal(t, 2, quiz.CurrentIndex)
	assert.True(t, quiz.IsLast())
	cur, ok := quiz.Current()
	require.True(t, ok)
	assert.Equal(t, "Q3", cur.Text)
}

func TestTranscript(t *testing.T) {
	s := New(nil, nil)
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hi"})
	s.AppendMessage(ChatMessage{Role: RoleAI, Content: "hello"})

	assert.Equal(t, []ChatMessage{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAI, Content: "hello"},
	}, s.Transcript())

	s.ClearTranscript()
	assert.Empty(t, s.Transcript())
}

func TestAccessorsReturnCopies(t *testing.T) {
	s := New(nil, nil)
	s.StartQuiz([]studygen.Question{q("Q1", 0)})
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hi"})

	quiz := s.Quiz()
	quiz.Answers[0] = 0
	quiz.Questions[0].Options[0] = "mutated"
	tr := s.Transcript()
	tr[0].Content = "mutated"

	fresh := s.Quiz()
	assert.Empty(t, fresh.Answers)
	assert.Equal(t, "a", fresh.Questions[0].Options[0])
	assert.Equal(t, "hi", s.Transcript()[0].Content)
}

func TestStartQuiz_CopiesInput(t *testing.T) {
	questions := []studygen.Question{q("Q1", 0)}
	s := New(nil, nil)
	s.StartQuiz(questions)

	questions[0].Text = "mutated"
	assert.Equal(t, "Q1", s.Quiz().Questions[0].Text)
}

func TestEveryMutationIsSaved(t *testing.T) {
	saver := &memSaver{}
	s := New(saver, nil)

	steps := []func(){
		func() { s.UpdateProfile(ProfileUpdate{Name: ptr("Ravi")}) },
		func() { s.SetContext(Context{Subject: "Biology", Topic: "Cells", Mode: ModeQuiz}) },
		func() { s.StartQuiz([]studygen.Question{q("Q1", 1)}) },
		func() { s.AnswerCurrent(0, 1) },
		func() { s.Finish() },
		func() { s.AppendMessage(ChatMessage{Role: RoleUser, Content: "hi"}) },
		func() { s.ClearTranscript() },
	}
	for i, step := range steps {
		step()
		require.Len(t, saver.saves, i+1)
		if diff := cmp.Diff(s.Snapshot(), saver.last(t)); diff != "" {
			t.Fatalf("step %d: saved state differs (-store +saved):\n%s", i, diff)
		}
	}
}

func TestNoOpMutationsAreNotSaved(t *testing.T) {
	saver := &memSaver{}
	s := New(saver, nil)
	s.StartQuiz([]studygen.Question{q("Q1", 1), q("Q2", 0)})
	s.AnswerCurrent(0, 1)
	require.Len(t, saver.saves, 2)

	s.AnswerCurrent(0, 3)  // already answered
	s.AnswerCurrent(5, 0)  // unknown question
	s.AnswerCurrent(-1, 0) // unknown question
	assert.Len(t, saver.saves, 2, "no-op answers must not be saved")

	s.Finish()
	s.Finish()
	assert.Len(t, saver.saves, 3, "only the first Finish is saved")
	assert.True(t, saver.last(t).Quiz.Finished)
	assert.Equal(t, map[int]int{0: 1}, saver.last(t).Quiz.Answers)
}

func TestSaveFailureIsLoggedNotReturned(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}
	saver := &memSaver{err: errors.New("disk full")}
	s := New(saver, log)

	s.UpdateProfile(ProfileUpdate{Name: ptr("Ravi")})

	assert.Equal(t, "Ravi", s.Profile().Name)
	entries := logs.FilterMessage("failed to persist session").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "update profile", entries[0].ContextMap()["op"])
}

func TestOpen_RestoresAndNormalizes(t *testing.T) {
	saved := NewState()
	saved.Profile.Name = "Meera"
	saved.Quiz = Quiz{
		Questions: []studygen.Question{q("Q1", 1), q("Q2", 2)},
		Answers:   map[int]int{0: 1, 1: 0, 7: 3},
		Score:     99,
	}
	saver := &memSaver{saves: []State{saved}}

	s, err := Open(context.Background(), saver, saver, nil)
	require.NoError(t, err)

	assert.Equal(t, "Meera", s.Profile().Name)
	quiz := s.Quiz()
	assert.Equal(t, map[int]int{0: 1, 1: 0}, quiz.Answers)
	assert.Equal(t, 1, quiz.Score)
	assert.Len(t, saver.saves, 1, "Open must not save")
}

func TestOpen_NothingSaved(t *testing.T) {
	s, err := Open(context.Background(), &memSaver{}, nil, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(NewState(), s.Snapshot()); diff != "" {
		t.Errorf("unexpected initial state (-want +got):\n%s", diff)
	}
}

type failingLoader struct{}

func (failingLoader) Load(context.Context) (*State, error) { return nil, errors.New("corrupt") }

func TestOpen_LoadError(t *testing.T) {
	_, err := Open(context.Background(), failingLoader{}, nil, nil)
	require.Error(t, err)
}

func TestReset(t *testing.T) {
	saver := &memSaver{}
	s := New(saver, nil)
	s.UpdateProfile(ProfileUpdate{Name: ptr("Ravi")})
	s.StartQuiz([]studygen.Question{q("Q1", 0)})

	s.Reset()

	if diff := cmp.Diff(NewState(), s.Snapshot()); diff != "" {
		t.Errorf("state after reset (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(NewState(), saver.last(t)); diff != "" {
		t.Errorf("saved state after reset (-want +got):\n%s", diff)
	}
}

func TestConcurrentMutationsKeepInvariant(t *testing.T) {
	s := New(&memSaver{}, nil)
	questions := make([]studygen.Question, 20)
	for i := range questions {
		questions[i] = q("Q", i%4)
	}
	s.StartQuiz(questions)

	var wg sync.WaitGroup
	for i := range questions {
		for opt := range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				s.AnswerCurrent(i, opt)
			}()
		}
	}
	wg.Wait()

	quiz := s.Quiz()
	assert.Len(t, quiz.Answers, len(questions))
	assert.Equal(t, quiz.correctCount(), quiz.Score)
}
