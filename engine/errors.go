package engine

import "errors"

// Errors returned by FromSnapshot and the mode constructors (§7). Once a
// Board is constructed the engine is total: no other operation returns
// an error.
var (
	// ErrSizeMismatch is returned when a snapshot's board is larger than
	// MaxBoardCells, or declares more snakes than MaxAgents.
	ErrSizeMismatch = errors.New("engine: board exceeds maximum capacity")

	// ErrMalformedBody is returned when an agent's body mixes a
	// three-identical-position stack with any other distinct position,
	// an ambiguous state between a legal post-spawn triple-stack and an
	// illegal body.
	ErrMalformedBody = errors.New("engine: snake body is malformed")

	// ErrWrongMode is returned when a mode-specific board constructor is
	// called against a snapshot whose ruleset disagrees.
	ErrWrongMode = errors.New("engine: ruleset does not match requested mode")
)
