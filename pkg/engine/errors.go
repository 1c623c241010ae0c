package engine

import "errors"

// Swap precondition errors. Every failure path leaves all accounts
// untouched; these are reported before anything is computed for commit.
var (
	ErrInvalidSelection    = errors.New("invalid swap selection")
	ErrStaleSelection      = errors.New("selected game is no longer in the collection")
	ErrCounterpartNotFound = errors.New("counterpart account not found")
	ErrAccountNotFound     = errors.New("active account not found")
)

// Session errors.
var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionExpired = errors.New("session expired")
)
