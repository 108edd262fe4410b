package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studybuddy/internal/store"
)

// SnapshotPersister saves and loads State as a single named JSON record in
// a store.SnapshotRepo.
type SnapshotPersister struct {
	repo store.SnapshotRepo
	name string
}

// NewSnapshotPersister persists under store.StateRecordName.
func NewSnapshotPersister(repo store.SnapshotRepo) *SnapshotPersister {
	return &SnapshotPersister{repo: repo, name: store.StateRecordName}
}

func (p *SnapshotPersister) Save(ctx context.Context, st State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return p.repo.Save(ctx, &store.Snapshot{
		Name:    p.name,
		Version: st.Version,
		Data:    data,
	})
}

func (p *SnapshotPersister) Load(ctx context.Context) (*State, error) {
	snap, err := p.repo.Load(ctx, p.name)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, nil
	}
	if snap.Version > StateVersion {
		return nil, fmt.Errorf("session record version %d is newer than supported version %d", snap.Version, StateVersion)
	}

	st := NewState()
	if err := json.Unmarshal(snap.Data, &st); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &st, nil
}

// Clear deletes the persisted record.
func (p *SnapshotPersister) Clear(ctx context.Context) error {
	return p.repo.Delete(ctx, p.name)
}
