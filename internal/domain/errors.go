package domain

import "errors"

// Every failure surfaced by the services wraps exactly one of these
// sentinels so the transport layer can map it without string matching.
var (
	// ErrNotFound means a referenced community, membership, user or
	// join request does not exist.
	ErrNotFound = errors.New("not found")

	// ErrPermissionDenied means the actor lacks the required role or
	// ownership for the attempted action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidState means the requested transition is not valid from
	// the current relationship state, e.g. approving a request that is
	// not pending.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict means a duplicate of something that must be unique:
	// a second pin of the same post, a second join request.
	ErrConflict = errors.New("conflict")

	// ErrValidation means malformed input, e.g. an empty community name.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidArgument means a structurally valid but unacceptable
	// argument, e.g. a reorder list that is not a permutation of the
	// pinned set, or transferring ownership to a non-member.
	ErrInvalidArgument = errors.New("invalid argument")
)
