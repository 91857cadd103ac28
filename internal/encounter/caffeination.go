package encounter

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Caffeination is the rate at which the discrete sampling model redraws an
// aircraft's position deviation. The expected speed at which a sampled
// trajectory crosses its containment boundary is a deterministic function
// of that rate: sampling more often detects excursions sooner, so the
// average exit speed scales linearly with sampling frequency. The
// proportionality constant k depends only on the containment fraction and
// comes from a first-passage calibration of the normal-deviation walk:
//
//	E[exit interval] = k(p) * boundSize / exitSpeed
//
// so exitSpeed(f) = k(p) * boundSize * f, which is continuous and strictly
// increasing in f and therefore invertible.

// kTable maps containment fraction to the first-passage coefficient k.
var kTable = struct {
	containment []float64
	k           []float64
}{
	containment: []float64{0.8, 0.9, 0.95, 0.99, 0.999},
	k:           []float64{0.633, 0.579, 0.554, 0.531, 0.52},
}

var kInterp interp.PiecewiseLinear

func init() {
	if err := kInterp.Fit(kTable.containment, kTable.k); err != nil {
		panic(fmt.Sprintf("encounter: bad caffeination k-table: %v", err))
	}
}

// Root-find tuning for InferCaffeination.
const (
	inferRelTolerance = 1e-12
	inferMaxBracket   = 200
	inferMaxBisect    = 200
)

// ExitSpeed returns the expected speed at which a trajectory sampled at
// frequency hz crosses the boundary of a containment interval of width
// boundSize sized to contain the given fraction of samples.
func ExitSpeed(hz, containment, boundSize float64) (float64, error) {
	if hz <= 0 {
		return 0, fmt.Errorf("%w: sampling frequency must be positive, got %g", ErrInvalidParameter, hz)
	}
	if boundSize <= 0 {
		return 0, fmt.Errorf("%w: bound size must be positive, got %g", ErrInvalidParameter, boundSize)
	}
	if containment <= 0 || containment >= 1 {
		return 0, fmt.Errorf("%w: containment fraction must be in (0, 1), got %g", ErrInvalidParameter, containment)
	}
	// Fractions outside the calibrated range take the nearest table value.
	return kInterp.Predict(containment) * boundSize * hz, nil
}

// InferCaffeination solves ExitSpeed for the sampling frequency that
// produces the target average boundary-exit speed. The forward function is
// monotonic, so the solution is unique; it is found by bracketing and
// bisection, returning ErrNonConvergence if either step fails.
func InferCaffeination(targetExitSpeed, containment, boundSize float64) (float64, error) {
	if targetExitSpeed <= 0 {
		return 0, fmt.Errorf("%w: target exit speed must be positive, got %g", ErrInvalidParameter, targetExitSpeed)
	}
	// Validate the remaining inputs once up front.
	if _, err := ExitSpeed(1, containment, boundSize); err != nil {
		return 0, err
	}

	speedAt := func(hz float64) float64 {
		v, _ := ExitSpeed(hz, containment, boundSize)
		return v
	}

	// Expand the upper bracket until it straddles the target. ExitSpeed(0)
	// would be 0, so the lower bracket always starts below the target.
	lo, hi := 0.0, 1.0
	bracketed := false
	for i := 0; i < inferMaxBracket; i++ {
		if speedAt(hi) >= targetExitSpeed {
			bracketed = true
			break
		}
		hi *= 2
	}
	if !bracketed {
		return 0, fmt.Errorf("%w: cannot bracket exit speed %g m/s", ErrNonConvergence, targetExitSpeed)
	}

	for i := 0; i < inferMaxBisect; i++ {
		mid := (lo + hi) / 2
		v := speedAt(mid)
		if relDiff(v, targetExitSpeed) <= inferRelTolerance {
			return mid, nil
		}
		if v < targetExitSpeed {
			lo = mid
		} else {
			hi = mid
		}
	}
	mid := (lo + hi) / 2
	if relDiff(speedAt(mid), targetExitSpeed) <= 1e-6 {
		return mid, nil
	}
	return 0, fmt.Errorf("%w: bisection did not converge for exit speed %g m/s", ErrNonConvergence, targetExitSpeed)
}

func relDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		d = -d
	}
	m := b
	if m < 0 {
		m = -m
	}
	if m == 0 {
		return d
	}
	return d / m
}
