package types

import "errors"

// Shelf defines the interface for the durable account store. Callers attach
// to a backend, load and commit the full account list, and detach when done.
//
// Commit is a wholesale replace: either every given account is durable
// afterwards or none is. A swap that touches two accounts is therefore
// committed as one call, never as two.
type Shelf interface {
	// Attach connects the Shelf to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, Load and Commit return ErrShelfDetached.
	Detach() error

	// Load returns a copy of the last committed account list.
	Load() ([]Account, error)

	// Commit replaces the durable account list with the given one.
	// Idempotent under repeated identical input.
	Commit(accounts []Account) error
}

// Shelf lifecycle errors.
var (
	ErrShelfDetached   = errors.New("shelf is detached")
	ErrAlreadyAttached = errors.New("shelf is already attached")
)
