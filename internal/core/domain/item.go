package domain

import "time"

// Item is an immutable scored question/answer record owned by the
// collection pool. Curator only ever references items by ID; content
// is never mutated here.
type Item struct {
	// ID is the unique identifier assigned by the pool.
	ID string

	// Question is the collected question text.
	Question string

	// Answer is the collected answer text.
	Answer string

	// QualityScore is the pool's quality score for this record.
	QualityScore float64

	// Source tags where the record was collected from.
	Source string

	// Difficulty is an optional difficulty tag.
	Difficulty string

	// Tags are optional free-form labels from the collector.
	Tags []string

	// CreatedAt is when the pool collected the record.
	CreatedAt time.Time
}
