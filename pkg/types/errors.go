package types

import "errors"

// Entity lookup errors.
var (
	ErrNotFound  = errors.New("entity not found")
	ErrInvalidID = errors.New("invalid entity ID")
)

// Entity validation errors.
var (
	ErrInvalidTitle    = errors.New("title must not be empty")
	ErrInvalidPlatform = errors.New("invalid platform value")
	ErrInvalidCustody  = errors.New("invalid custody state")
	ErrInvalidHandle   = errors.New("handle must not be empty")
	ErrDuplicateGame   = errors.New("duplicate game ID in collection")
	ErrDuplicateHandle = errors.New("duplicate account handle")
)

// Game state-transition errors.
var (
	ErrGameInUse   = errors.New("game is marked in use")
	ErrGameOnLoan  = errors.New("game is lent out")
	ErrAlreadyLent = errors.New("game is already part of a swap")
	ErrNotOnLoan   = errors.New("game is not lent out")
)
