package mcp

import (
	"github.com/pipedata/curator/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. This provides a single injection point.
type Ports struct {
	// Batch provides read access to pending batches.
	Batch driving.BatchService

	// History provides transmission history and statistics.
	History driving.HistoryService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Batch == nil {
		return ErrMissingBatchService
	}
	if p.History == nil {
		return ErrMissingHistoryService
	}
	return nil
}
