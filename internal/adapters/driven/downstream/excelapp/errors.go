package excelapp

import "fmt"

// SubmitError describes a single rejected item submission. The
// transmitter only tallies these; they never abort a batch send.
type SubmitError struct {
	// ItemID is the rejected item.
	ItemID string

	// StatusCode is the HTTP status, 0 for transport failures.
	StatusCode int

	// Reason is the downstream-provided rejection reason, if any.
	Reason string
}

func (e *SubmitError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("item %s rejected (status %d): %s", e.ItemID, e.StatusCode, e.Reason)
	}
	return fmt.Sprintf("item %s rejected (status %d)", e.ItemID, e.StatusCode)
}
