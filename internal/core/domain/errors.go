package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid parameters.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState indicates an operation is illegal for the
	// batch's current status. The batch is left unchanged.
	ErrInvalidState = errors.New("invalid batch state")

	// ErrNoEligibleItems indicates the pool yielded no unclaimed items
	// at or above the requested quality threshold. No batch is created.
	ErrNoEligibleItems = errors.New("no eligible items")

	// ErrItemClaimed indicates an item is already owned by another
	// batch. Claims are enforced by a uniqueness constraint, so a
	// create racing over the same pool snapshot fails whole.
	ErrItemClaimed = errors.New("item already claimed")

	// ErrStorage indicates a persistence layer failure. The triggering
	// operation aborts with no partial state change.
	ErrStorage = errors.New("storage failure")
)
