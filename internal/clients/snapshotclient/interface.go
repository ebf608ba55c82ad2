package snapshotclient

import (
	"context"

	"github.com/ledgerpulse/xrpl-metrics-indexer/internal/types"
)

type SnapshotInterface interface {
	// GetSnapshot fetches the canonical daily-snapshot document. A fetch
	// failure is returned as an error; callers treat it as "no remote data
	// available" and reconcile with local sources only.
	GetSnapshot(ctx context.Context) (*types.RemoteSnapshot, error)
}
