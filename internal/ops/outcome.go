package ops

import "errors"

var (
	// ErrNetwork means the recipe or remix service could not be reached
	// or answered with a non-2xx status.
	ErrNetwork = errors.New("service unavailable")
	// ErrEmptyResult means a lookup succeeded but matched nothing.
	ErrEmptyResult = errors.New("no matching recipe")
	// ErrNoRecipe means an operation needed a current recipe and none is loaded.
	ErrNoRecipe = errors.New("no recipe loaded")
)

// Outcome describes what an operation did.
type Outcome string

const (
	// OutcomeSaved means a name was appended to the saved list.
	OutcomeSaved Outcome = "saved"
	// OutcomeRemoved means at least one entry was filtered out of the saved list.
	OutcomeRemoved Outcome = "removed"
	// OutcomeUnchanged means the operation had nothing to do, such as saving
	// a name that is already saved.
	OutcomeUnchanged Outcome = "unchanged"
	// OutcomeNoRecipe means the operation needed a current recipe.
	OutcomeNoRecipe Outcome = "no-recipe"
	// OutcomeLoaded means a fetched recipe became current.
	OutcomeLoaded Outcome = "loaded"
	// OutcomeNotFound means a by-name lookup matched nothing.
	OutcomeNotFound Outcome = "not-found"
	// OutcomeFailed means the remote service failed; a message was shown.
	OutcomeFailed Outcome = "failed"
	// OutcomeStale means a completion was dropped because a newer request
	// had been issued.
	OutcomeStale Outcome = "stale"
	// OutcomeRemixed means remix text was rendered.
	OutcomeRemixed Outcome = "remixed"
)

// Result is returned by operations that never propagate errors to the
// caller. Err holds the error that was handled (and logged) at the
// operation boundary, if any; it is informational only.
type Result struct {
	Outcome Outcome
	Err     error
}

// OK reports whether the operation achieved its purpose.
// Unchanged counts as success since the operations are idempotent.
func (r Result) OK() bool {
	switch r.Outcome {
	case OutcomeSaved, OutcomeRemoved, OutcomeUnchanged, OutcomeLoaded, OutcomeRemixed:
		return true
	}
	return false
}
