package domain

import "time"

// ActionKind identifies the administrative operation being audited.
type ActionKind string

// Audited operation kinds.
const (
	ActionCreate ActionKind = "create"
	ActionReview ActionKind = "review"
	ActionSend   ActionKind = "send"
	ActionExport ActionKind = "export"
)

// AdminAction is one entry in the append-only administrative audit
// log. Entries are never mutated or deleted.
type AdminAction struct {
	// ID is assigned by the store on append.
	ID int64

	// ActorID is the opaque identifier of the acting administrator.
	ActorID string

	// Kind is the audited operation.
	Kind ActionKind

	// BatchID references the batch the action touched.
	BatchID string

	// Notes carries operation details (review decision, export
	// format, transmission counts).
	Notes string

	// CreatedAt is when the action was recorded.
	CreatedAt time.Time
}
