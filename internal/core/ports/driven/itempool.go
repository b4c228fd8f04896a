package driven

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// ItemPool is the read-only contract with the upstream collection
// pool. The pool owns item content; Curator never writes to it.
type ItemPool interface {
	// FetchUnclaimed returns unclaimed items with QualityScore >=
	// minQuality, at most limit of them, in the pool's native order.
	// The order is deterministic for a given pool state. Items
	// already claimed by an existing batch are never returned.
	FetchUnclaimed(ctx context.Context, minQuality float64, limit int) ([]domain.Item, error)

	// GetItems returns the full payload for the given item IDs, in
	// the order the IDs were requested. Unknown IDs are skipped.
	GetItems(ctx context.Context, ids []string) ([]domain.Item, error)
}
