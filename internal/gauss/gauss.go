// Package gauss provides normal-distribution containment arithmetic.
//
// The encounter models size operational intent volumes so that a fixed
// fraction of an aircraft's sampled positions falls inside the volume in
// each axis. This package converts between the width of a mean-centred
// containment interval and the standard deviation of the underlying
// zero-mean normal distribution.
package gauss

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultContainment is the fraction of position samples an operational
// intent volume is sized to contain, per axis.
const DefaultContainment = 0.95

// SigmaForInterval returns the standard deviation that places the
// containment fraction of N(0, sigma) mass within a mean-centred interval
// of width size.
func SigmaForInterval(size, containment float64) (float64, error) {
	if size <= 0 {
		return 0, fmt.Errorf("interval size must be positive, got %g", size)
	}
	z, err := twoSidedQuantile(containment)
	if err != nil {
		return 0, err
	}
	return size / 2 / z, nil
}

// IntervalForSigma returns the width of the mean-centred interval that
// contains the containment fraction of N(0, sigma) mass.
func IntervalForSigma(sigma, containment float64) (float64, error) {
	if sigma <= 0 {
		return 0, fmt.Errorf("sigma must be positive, got %g", sigma)
	}
	z, err := twoSidedQuantile(containment)
	if err != nil {
		return 0, err
	}
	return 2 * sigma * z, nil
}

// twoSidedQuantile returns the standard normal quantile at 1-(1-p)/2,
// the half-width in sigmas of a two-sided interval containing fraction p.
func twoSidedQuantile(p float64) (float64, error) {
	if p <= 0 || p >= 1 {
		return 0, fmt.Errorf("containment fraction must be in (0, 1), got %g", p)
	}
	return distuv.UnitNormal.Quantile(1 - (1-p)/2), nil
}
