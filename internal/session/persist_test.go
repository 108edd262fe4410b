package session

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/studygen"
)

func openTestDB(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSnapshotPersister_RoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	p := NewSnapshotPersister(db.SnapshotRepo())

	s, err := Open(ctx, p, p, nil)
	require.NoError(t, err)
	s.UpdateProfile(ProfileUpdate{Name: ptr("Kabir"), ClassName: ptr("9")})
	s.SetContext(Context{Subject: "History", Topic: "Mughals", Mode: ModeQuiz})
	s.StartQuiz([]studygen.Question{q("Q1", 2), q("Q2", 1)})
	s.AnswerCurrent(0, 2)
	s.Advance()
	s.AppendMessage(ChatMessage{Role: RoleUser, Content: "Who was Akbar?"})

	restored, err := Open(ctx, p, p, nil)
	require.NoError(t, err)

	if diff := cmp.Diff(s.Snapshot(), restored.Snapshot()); diff != "" {
		t.Errorf("restored state differs (-saved +restored):\n%s", diff)
	}
}

func TestSnapshotPersister_DocumentLayout(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	p := NewSnapshotPersister(db.SnapshotRepo())

	s := New(p, nil)
	s.StartQuiz([]studygen.Question{q("Q1", 0)})
	s.AnswerCurrent(0, 0)

	snap, err := db.SnapshotRepo().Load(ctx, store.StateRecordName)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, StateVersion, snap.Version)

	doc := string(snap.Data)
	for _, key := range []string{`"version":1`, `"profile"`, `"context"`, `"quiz"`, `"chatHistory"`, `"answers":{"0":0}`, `"correctAnswerIndex":0`} {
		assert.Contains(t, doc, key)
	}
}

func TestSnapshotPersister_Missing(t *testing.T) {
	p := NewSnapshotPersister(openTestDB(t).SnapshotRepo())

	st, err := p.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, st)
}

func TestSnapshotPersister_RejectsNewerVersion(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	require.NoError(t, db.SnapshotRepo().Save(ctx, &store.Snapshot{
		Name:    store.StateRecordName,
		Version: StateVersion + 1,
		Data:    []byte(`{}`),
	}))

	_, err := NewSnapshotPersister(db.SnapshotRepo()).Load(ctx)
	require.Error(t, err)
}

func TestSnapshotPersister_Clear(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	p := NewSnapshotPersister(db.SnapshotRepo())

	s := New(p, nil)
	s.UpdateProfile(ProfileUpdate{Name: ptr("Zoya")})
	require.NoError(t, p.Clear(ctx))

	st, err := p.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, st)
}
