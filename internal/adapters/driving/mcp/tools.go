package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListPendingInput is the input schema for the list_pending_batches tool.
type ListPendingInput struct{}

// PendingBatchOutput represents one pending batch.
type PendingBatchOutput struct {
	ID              string   `json:"id"`
	CreatedAt       string   `json:"created_at"`
	TotalItems      int      `json:"total_items"`
	AvgQualityScore float64  `json:"avg_quality_score"`
	Sources         []string `json:"sources"`
}

// ListPendingOutput is the output schema for the list_pending_batches tool.
type ListPendingOutput struct {
	Batches []PendingBatchOutput `json:"batches"`
	Count   int                  `json:"count"`
}

// StatsInput is the input schema for the get_curation_stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the get_curation_stats tool.
type StatsOutput struct {
	TotalBatches       int     `json:"total_batches"`
	Pending            int     `json:"pending"`
	Approved           int     `json:"approved"`
	Rejected           int     `json:"rejected"`
	Sent               int     `json:"sent"`
	TotalItems         int     `json:"total_items"`
	OverallAvgQuality  float64 `json:"overall_avg_quality"`
	TotalTransmissions int     `json:"total_transmissions"`
	TotalItemsSent     int     `json:"total_items_sent"`
	TotalSuccess       int     `json:"total_success"`
	TotalErrors        int     `json:"total_errors"`
}

// HistoryInput is the input schema for the get_transmission_history tool.
type HistoryInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 50)"`
}

// TransmissionOutput represents one transmission record.
type TransmissionOutput struct {
	BatchID      string `json:"batch_id"`
	SentAt       string `json:"sent_at"`
	SentBy       string `json:"sent_by"`
	ItemsCount   int    `json:"items_count"`
	SuccessCount int    `json:"success_count"`
	ErrorCount   int    `json:"error_count"`
}

// HistoryOutput is the output schema for the get_transmission_history tool.
type HistoryOutput struct {
	Transmissions []TransmissionOutput `json:"transmissions"`
	Count         int                  `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_pending_batches",
		Description: "List batches awaiting human review",
	}, s.handleListPending)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_curation_stats",
		Description: "Get aggregate batch and transmission statistics",
	}, s.handleStats)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_transmission_history",
		Description: "Get the history of batch transmissions, newest first",
	}, s.handleHistory)
}

// handleListPending handles the list_pending_batches tool invocation.
func (s *Server) handleListPending(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListPendingInput,
) (*mcp.CallToolResult, ListPendingOutput, error) {
	batches, err := s.ports.Batch.ListPending(ctx)
	if err != nil {
		return nil, ListPendingOutput{}, err
	}

	output := ListPendingOutput{
		Batches: make([]PendingBatchOutput, len(batches)),
		Count:   len(batches),
	}
	for i := range batches {
		output.Batches[i] = PendingBatchOutput{
			ID:              batches[i].ID,
			CreatedAt:       batches[i].CreatedAt.UTC().Format(time.RFC3339),
			TotalItems:      batches[i].TotalItems,
			AvgQualityScore: batches[i].AvgQualityScore,
			Sources:         batches[i].Sources,
		}
	}

	return nil, output, nil
}

// handleStats handles the get_curation_stats tool invocation.
func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	snapshot, err := s.ports.History.Stats(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}

	return nil, StatsOutput{
		TotalBatches:       snapshot.Batches.TotalBatches,
		Pending:            snapshot.Batches.Pending,
		Approved:           snapshot.Batches.Approved,
		Rejected:           snapshot.Batches.Rejected,
		Sent:               snapshot.Batches.Sent,
		TotalItems:         snapshot.Batches.TotalItems,
		OverallAvgQuality:  snapshot.Batches.OverallAvgQuality,
		TotalTransmissions: snapshot.Transmissions.TotalTransmissions,
		TotalItemsSent:     snapshot.Transmissions.TotalItemsSent,
		TotalSuccess:       snapshot.Transmissions.TotalSuccess,
		TotalErrors:        snapshot.Transmissions.TotalErrors,
	}, nil
}

// handleHistory handles the get_transmission_history tool invocation.
func (s *Server) handleHistory(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input HistoryInput,
) (*mcp.CallToolResult, HistoryOutput, error) {
	records, err := s.ports.History.Transmissions(ctx, input.Limit)
	if err != nil {
		return nil, HistoryOutput{}, err
	}

	output := HistoryOutput{
		Transmissions: make([]TransmissionOutput, len(records)),
		Count:         len(records),
	}
	for i := range records {
		output.Transmissions[i] = TransmissionOutput{
			BatchID:      records[i].BatchID,
			SentAt:       records[i].SentAt.UTC().Format(time.RFC3339),
			SentBy:       records[i].SentBy,
			ItemsCount:   records[i].ItemsCount,
			SuccessCount: records[i].SuccessCount,
			ErrorCount:   records[i].ErrorCount,
		}
	}

	return nil, output, nil
}
