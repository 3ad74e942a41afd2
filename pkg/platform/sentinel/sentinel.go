package sentinel

import "errors"

// Sentinel errors for repository facts. Stores return these (optionally
// wrapped) and services translate them into domain errors:
//   - ErrNotFound: no record with that identifier
//   - ErrAlreadyUsed: a unique key (ISBN, email) is taken
//   - ErrInvalidState: the record cannot take the requested transition
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
)
