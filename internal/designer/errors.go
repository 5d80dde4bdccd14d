package designer

import "errors"

var (
	// ErrStepIncomplete rejects Advance while the current step's required choices are missing.
	ErrStepIncomplete = errors.New("current step is incomplete")
	ErrLastStep       = errors.New("already at the last step")
	ErrNotAtReview    = errors.New("design can only be finalized from the review step")
	ErrUnknownField   = errors.New("unknown design field")
)

// IsPrecondition reports whether err is a rejected wizard operation rather than a fault.
func IsPrecondition(err error) bool {
	return errors.Is(err, ErrStepIncomplete) ||
		errors.Is(err, ErrLastStep) ||
		errors.Is(err, ErrNotAtReview) ||
		errors.Is(err, ErrUnknownField)
}
