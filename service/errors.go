package services

import "errors"

// Sentinel errors for the review pipeline. Controllers map these with
// errors.Is: ErrNotFound -> 404, ErrInvalidTransition -> 409,
// ErrMissingTarget -> 400. Everything else surfaces as a 500.
var (
	// ErrNotFound means the client, suggestion or downstream entity does not
	// exist (or belongs to another client, which callers cannot distinguish).
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition means a review action was attempted on a
	// suggestion that is no longer pending. Re-approving never re-applies.
	ErrInvalidTransition = errors.New("suggestion already reviewed")

	// ErrMissingTarget means an answer-type suggestion has no target
	// question to write the answer into.
	ErrMissingTarget = errors.New("answer suggestion has no target question")
)
