package domain

import "time"

// BatchStats aggregates batch counts across all statuses.
// TotalBatches == Pending + Approved + Rejected + Sent at all times.
type BatchStats struct {
	// TotalBatches is the number of batches ever created.
	TotalBatches int

	// Pending is the number of batches awaiting review.
	Pending int

	// Approved is the number of batches approved but not yet sent.
	Approved int

	// Rejected is the number of rejected batches.
	Rejected int

	// Sent is the number of transmitted batches.
	Sent int

	// TotalItems is the sum of item counts across all batches.
	TotalItems int

	// OverallAvgQuality is the item-weighted mean quality across all
	// batches: SUM(total_items * avg_quality_score) / SUM(total_items).
	// Zero when no batches exist.
	OverallAvgQuality float64
}

// TransmissionStats aggregates transmission outcomes.
type TransmissionStats struct {
	// TotalTransmissions is the number of TransmissionRecords.
	TotalTransmissions int

	// TotalItemsSent is the sum of items dispatched across records.
	TotalItemsSent int

	// TotalSuccess is the sum of downstream accepts.
	TotalSuccess int

	// TotalErrors is the sum of downstream failures.
	TotalErrors int
}

// StatsSnapshot is a point-in-time read of both aggregate views.
type StatsSnapshot struct {
	Batches       BatchStats
	Transmissions TransmissionStats

	// GeneratedAt is when the snapshot was taken.
	GeneratedAt time.Time
}
