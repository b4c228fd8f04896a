package driving

import (
	"context"

	"github.com/pipedata/curator/internal/core/domain"
)

// ExportService serialises batches for offline inspection.
type ExportService interface {
	// Export writes the batch's items in the given format and
	// returns a descriptor of the produced artifact. Export is pure
	// with respect to batch state and is legal at any status.
	Export(ctx context.Context, batchID string, format domain.ExportFormat, actor string) (*domain.ExportArtifact, error)
}
