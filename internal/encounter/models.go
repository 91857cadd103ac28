package encounter

import (
	"fmt"
	"math/rand"
	"time"
)

// Model identifiers.
const (
	ModelDiscrete = "discrete-sampling"
	ModelReich    = "reich-overlap"
)

// Model is one parameterised motion model. A Model value is a complete
// parameter set; Generate produces one fresh encounter from it. Exactly two
// implementations exist: DiscreteParams and ReichParams.
type Model interface {
	// ModelID returns the model identifier, one of ListModels.
	ModelID() string

	// Validate checks the parameter set, returning an error wrapping
	// ErrInvalidParameter when it cannot be generated from.
	Validate() error

	// Generate produces one encounter using rng for all random draws.
	// It never returns a partially built encounter.
	Generate(rng *rand.Rand) (*Encounter, error)
}

// ListModels returns the identifiers of the available motion models, in
// stable order for selection UIs.
func ListModels() []string {
	return []string{ModelDiscrete, ModelReich}
}

// New returns the default parameter set for the named model. The defaults
// describe a small-UAS parallel-paths scenario and generate successfully
// as-is.
func New(modelID string) (Model, error) {
	switch modelID {
	case ModelDiscrete:
		p, err := DiscreteFromReich(DefaultReichParams())
		if err != nil {
			return nil, err
		}
		return p, nil
	case ModelReich:
		return DefaultReichParams(), nil
	default:
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrUnknownModel, modelID, ListModels())
	}
}

// Generate validates m and produces one encounter. A nil rng is replaced
// with a time-seeded generator; pass a seeded rng for deterministic output.
func Generate(m Model, rng *rand.Rand) (*Encounter, error) {
	if err := m.Validate(); err != nil {
		return nil, failed(m.ModelID(), PhaseParameterized, err)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return m.Generate(rng)
}
