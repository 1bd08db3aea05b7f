package customer

import (
	"context"
	"time"
)

// Snapshot is a portfolio summary recorded at a point in time.
type Snapshot struct {
	ID        int64     `json:"id"`
	TakenAt   time.Time `json:"takenAt"`
	Portfolio Portfolio `json:"portfolio"`
}

type SnapshotRepository interface {
	Save(ctx context.Context, snapshot Snapshot) (Snapshot, error)
	ListLatest(ctx context.Context, limit int) ([]Snapshot, error)
}
