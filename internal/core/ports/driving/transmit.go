package driving

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// TransmitService sends approved batches to the downstream consumer.
type TransmitService interface {
	// Send submits every item of an approved batch downstream,
	// tallying per-item outcomes, then finalises the batch as sent
	// exactly once with a TransmissionRecord. Per-item downstream
	// failures never fail the call; they surface only in the counts.
	Send(ctx context.Context, batchID, actor string) (*domain.SendResult, error)
}
