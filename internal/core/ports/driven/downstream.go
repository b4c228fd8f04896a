package driven

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// DownstreamConsumer is the contract with the external service that
// receives transmitted items. It accepts one item at a time and
// reports per-item acceptance; the Transmitter treats any non-accept
// response or transport error identically as a per-item failure.
type DownstreamConsumer interface {
	// SubmitItem delivers a single item. A nil return means the
	// downstream accepted it; any error counts as one item failure.
	SubmitItem(ctx context.Context, item domain.Item) error

	// Ping checks downstream availability without submitting data.
	Ping(ctx context.Context) error
}
