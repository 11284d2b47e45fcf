package domain

import "errors"

var (
	// ErrValidation is returned when input is malformed; nothing has been mutated
	ErrValidation = errors.New("validation failed")

	// ErrAssetNotFound is returned when an asset id is unknown
	ErrAssetNotFound = errors.New("asset not found")

	// ErrInvalidTransition is returned when a state machine precondition does not hold
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrAlreadySettled is returned when settling an asset that is already SETTLED
	ErrAlreadySettled = errors.New("asset already settled")

	// ErrAlreadyFractionalized is returned when fractionalizing an asset twice
	ErrAlreadyFractionalized = errors.New("asset already fractionalized")

	// ErrNotCleared is returned when an operation requires clearance status CLEARED
	ErrNotCleared = errors.New("asset not cleared")

	// ErrProvenanceBreak is returned when a custody transfer does not continue the chain
	ErrProvenanceBreak = errors.New("provenance break")

	// ErrInsufficientBalance is returned when a holder transfers more fractions than it holds
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrInvariantViolation signals a broken fraction ledger invariant (bug or concurrency failure)
	ErrInvariantViolation = errors.New("invariant violation")
)
