package store

import (
	"context"
	"encoding/json"
	"time"
)

// StateRecordName is the key of the single durable record holding the
// serialized study session.
const StateRecordName = "study-assistant-storage"

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Purpose string    // exact purpose match ("" = any)
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To

	FailedOnly bool // only unsuccessful requests
}

// Snapshot is a named, whole-state JSON document. Saving a snapshot with
// an existing name overwrites it (last write wins).
type Snapshot struct {
	Name      string
	Version   int
	UpdatedAt time.Time
	Data      json.RawMessage
}

// SnapshotRepo manages named state snapshots.
type SnapshotRepo interface {
	// Save upserts the snapshot by name.
	Save(ctx context.Context, snap *Snapshot) error

	// Load returns the snapshot with the given name, or nil if none exists.
	Load(ctx context.Context, name string) (*Snapshot, error)

	// Delete removes the snapshot with the given name. Missing is not an error.
	Delete(ctx context.Context, name string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	StatusCode   int
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a recorded LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// UsageStat aggregates token usage for a purpose or model.
type UsageStat struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error
}
