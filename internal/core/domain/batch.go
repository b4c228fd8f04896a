package domain

import "time"

// BatchStatus is the review/transmission state of a batch.
type BatchStatus string

// Batch lifecycle states. The only legal transitions are
// pending -> approved -> sent and pending -> rejected.
const (
	StatusPending  BatchStatus = "pending"
	StatusApproved BatchStatus = "approved"
	StatusRejected BatchStatus = "rejected"
	StatusSent     BatchStatus = "sent"
)

// AllStatuses lists every batch status, in lifecycle order.
var AllStatuses = []BatchStatus{StatusPending, StatusApproved, StatusRejected, StatusSent}

// ParseBatchStatus converts a string to a BatchStatus.
// Unknown values are rejected with ErrInvalidInput.
func ParseBatchStatus(s string) (BatchStatus, error) {
	switch BatchStatus(s) {
	case StatusPending, StatusApproved, StatusRejected, StatusSent:
		return BatchStatus(s), nil
	default:
		return "", ErrInvalidInput
	}
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle edge. rejected and sent are terminal.
func (s BatchStatus) CanTransitionTo(next BatchStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusSent
	default:
		return false
	}
}

// Batch is a frozen, claimed group of items moving through review and
// transmission. Membership and the quality summary are fixed at
// creation; only the status and review fields ever change.
type Batch struct {
	// ID is the unique, opaque batch identifier.
	ID string

	// CreatedAt is when the batch was created.
	CreatedAt time.Time

	// ItemIDs are the member item identifiers in pool return order.
	// The set is frozen once the batch exists.
	ItemIDs []string

	// TotalItems is the member count, fixed at creation.
	TotalItems int

	// AvgQualityScore is the arithmetic mean of member scores,
	// computed at creation and never recomputed.
	AvgQualityScore float64

	// Sources are the distinct source tags present, sorted.
	Sources []string

	// Status is the current lifecycle state.
	Status BatchStatus

	// ReviewedBy is the reviewing actor. Empty until reviewed.
	ReviewedBy string

	// ReviewedAt is when the review decision was recorded.
	// Zero until reviewed.
	ReviewedAt time.Time

	// Notes holds free-text review notes. Empty until reviewed.
	Notes string
}
