package encounter

import (
	"errors"
	"fmt"
)

// Error kinds reported by encounter generation. Callers classify failures
// with errors.Is; no partial Encounter is ever returned alongside an error.
var (
	// ErrInvalidParameter indicates a parameter that fails validation,
	// such as a non-positive sampling frequency or aircraft dimension.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDegenerateScenario indicates a parameter set the model cannot
	// generate a bounded encounter for, such as near-zero relative
	// longitudinal velocity with a longitudinal-overlap requirement.
	ErrDegenerateScenario = errors.New("degenerate scenario")

	// ErrNonConvergence indicates a numeric root-find that failed to
	// bracket or converge.
	ErrNonConvergence = errors.New("numeric non-convergence")

	// ErrUnknownModel indicates a model identifier outside ListModels.
	ErrUnknownModel = errors.New("unknown model")

	// ErrOutsideWindow indicates an evaluation time outside [t0, t1].
	ErrOutsideWindow = errors.New("time outside encounter window")
)

// Phase is the lifecycle state of one generation run. Generation advances
// parameterized -> sampling -> interpolated -> ready; a failure lands in
// the terminal failed phase and is surfaced as a GenerationError.
type Phase string

const (
	PhaseParameterized Phase = "parameterized"
	PhaseSampling      Phase = "sampling"
	PhaseInterpolated  Phase = "interpolated"
	PhaseReady         Phase = "ready"
	PhaseFailed        Phase = "failed"
)

// GenerationError reports a failed generation run along with the model and
// the phase the run had reached when it failed.
type GenerationError struct {
	Model string
	Phase Phase
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed during %s: %v", e.Model, e.Phase, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// failed wraps err as a GenerationError for the given model and phase.
func failed(model string, phase Phase, err error) error {
	return &GenerationError{Model: model, Phase: phase, Err: err}
}
