package domain

import "time"

// TransmissionRecord is the immutable outcome of one send of a batch
// to the downstream consumer. A batch has exactly one record once its
// status reaches sent; send is not re-invocable.
//
// SuccessCount + ErrorCount == ItemsCount always holds. A batch whose
// every item failed still finalises as sent with ErrorCount ==
// ItemsCount: delivery is an attempt with a recorded outcome, and
// operators read these counts to decide whether to re-curate.
type TransmissionRecord struct {
	// ID is the unique record identifier.
	ID string

	// BatchID references the transmitted batch.
	BatchID string

	// SentAt is when the transmission completed.
	SentAt time.Time

	// SentBy is the actor that triggered the send.
	SentBy string

	// ItemsCount is the number of items in the batch.
	ItemsCount int

	// SuccessCount is the number of items the downstream accepted.
	SuccessCount int

	// ErrorCount is the number of items that failed downstream.
	ErrorCount int
}

// SendResult is the caller-facing summary of a completed send.
type SendResult struct {
	// BatchID is the transmitted batch.
	BatchID string

	// RecordID is the persisted TransmissionRecord's ID.
	RecordID string

	// ItemsSent is the total number of items dispatched.
	ItemsSent int

	// SuccessCount is the number of downstream accepts.
	SuccessCount int

	// ErrorCount is the number of downstream failures.
	ErrorCount int
}
