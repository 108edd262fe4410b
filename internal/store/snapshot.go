package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// snapshotRepo implements SnapshotRepo on the state_records table.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	if snap.Name == "" {
		return fmt.Errorf("save snapshot: name is required")
	}
	ts := snap.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	version := snap.Version
	if version == 0 {
		version = 1
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO state_records (name, version, updated_at_ms, data) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			version = excluded.version,
			updated_at_ms = excluded.updated_at_ms,
			data = excluded.data`,
		snap.Name, version, ts.UnixMilli(), string(snap.Data),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", snap.Name, err)
	}
	return nil
}

func (r *snapshotRepo) Load(ctx context.Context, name string) (*Snapshot, error) {
	var (
		snap      Snapshot
		updatedMs int64
		data      string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT name, version, updated_at_ms, data FROM state_records WHERE name = ?`, name,
	).Scan(&snap.Name, &snap.Version, &updatedMs, &data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	snap.UpdatedAt = time.UnixMilli(updatedMs)
	snap.Data = []byte(data)
	return &snap, nil
}

func (r *snapshotRepo) Delete(ctx context.Context, name string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM state_records WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", name, err)
	}
	return nil
}
