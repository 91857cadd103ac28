package encounter

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/banshee-data/encounter.report/internal/gauss"
	"github.com/banshee-data/encounter.report/internal/geom"
	"github.com/banshee-data/encounter.report/internal/units"
)

// MinRelativeLongitudinalSpeed is the smallest |V1 - V2| (m/s) the Reich
// model accepts. Below it the longitudinal overlap window grows without
// bound and no bounded encounter exists; generation fails explicitly with
// ErrDegenerateScenario instead of producing a pathological window.
const MinRelativeLongitudinalSpeed = 0.01

// viewWindowMargin stretches the window beyond the longest per-axis overlap
// period; viewWindowMin is the floor on the window length in seconds.
const (
	viewWindowMargin = 1.2
	viewWindowMin    = 3.0
)

// ReichParams parameterises the Reich overlap model for a pair of aircraft
// on parallel routes.
//
// The model constructs one separation-loss event per axis. Longitudinally
// the aircraft are pinned to cross x=0 at the window midpoint. Laterally
// each aircraft holds its route centre, then ramps toward the other at a
// randomly drawn speed to a randomly drawn overlap position and back.
// Vertically a single deviation sample per aircraft is held for the whole
// encounter; VerticalOverlapSpeed is accepted and used for window sizing
// but is not yet consumed by the vertical generator. That simplification is
// a known modelling gap carried over deliberately; changing it is a
// model-behaviour change, not a fix.
type ReichParams struct {
	// LateralSpacing is the minimum planned lateral separation S_y (m).
	LateralSpacing float64

	// AircraftLength, AircraftWingspan and AircraftHeight are the average
	// collision-box dimensions lambda_x, lambda_y, lambda_z (m).
	AircraftLength   float64
	AircraftWingspan float64
	AircraftHeight   float64

	// HalfWidth and HalfHeight are the operational volume half
	// cross-sections w and h (m), lateral and vertical.
	HalfWidth  float64
	HalfHeight float64

	// V1 and V2 are the nominal longitudinal velocities (m/s) of the two
	// aircraft.
	V1 float64
	V2 float64

	// LateralOverlapSpeed is the target average relative lateral speed
	// YS_y (m/s) of the pair at loss of planned lateral separation.
	LateralOverlapSpeed float64

	// VerticalOverlapSpeed is the average relative vertical speed
	// delta_z (m/s) of a co-altitude pair on the same route.
	VerticalOverlapSpeed float64
}

// DefaultReichParams returns the published small-UAS parallel-paths
// parameter set (quoted in feet and feet per second).
func DefaultReichParams() ReichParams {
	return ReichParams{
		LateralSpacing:       units.FeetToMeters(15),
		AircraftLength:       units.FeetToMeters(2),
		AircraftWingspan:     units.FeetToMeters(2),
		AircraftHeight:       units.FeetToMeters(2),
		HalfWidth:            units.FeetToMeters(7),
		HalfHeight:           units.FeetToMeters(7),
		V1:                   units.FeetToMeters(20),
		V2:                   units.FeetToMeters(15),
		LateralOverlapSpeed:  units.FeetToMeters(7.75),
		VerticalOverlapSpeed: units.FeetToMeters(7.75),
	}
}

// ModelID implements Model.
func (ReichParams) ModelID() string { return ModelReich }

// Validate implements Model.
func (p ReichParams) Validate() error {
	switch {
	case p.LateralSpacing <= 0:
		return fmt.Errorf("%w: lateral spacing must be positive, got %g", ErrInvalidParameter, p.LateralSpacing)
	case p.AircraftLength <= 0 || p.AircraftWingspan <= 0 || p.AircraftHeight <= 0:
		return fmt.Errorf("%w: aircraft dimensions must be positive, got %g x %g x %g",
			ErrInvalidParameter, p.AircraftLength, p.AircraftWingspan, p.AircraftHeight)
	case p.HalfWidth <= 0 || p.HalfHeight <= 0:
		return fmt.Errorf("%w: operational volume half-dimensions must be positive, got %g x %g",
			ErrInvalidParameter, p.HalfWidth, p.HalfHeight)
	case p.LateralOverlapSpeed <= 0:
		return fmt.Errorf("%w: lateral overlap speed must be positive, got %g", ErrInvalidParameter, p.LateralOverlapSpeed)
	case p.VerticalOverlapSpeed <= 0:
		return fmt.Errorf("%w: vertical overlap speed must be positive, got %g", ErrInvalidParameter, p.VerticalOverlapSpeed)
	}
	return nil
}

// lateralRamp is one aircraft's lateral path: hold the route centre, ramp
// at a fixed speed to the overlap position so that it is reached exactly at
// overlapTime, then ramp straight back.
type lateralRamp struct {
	nominal     float64
	overlap     float64
	overlapTime float64
	speed       float64 // magnitude, m/s
}

// transition returns the duration of one ramp leg.
func (r lateralRamp) transition() float64 {
	return math.Abs(r.overlap-r.nominal) / r.speed
}

// at returns the lateral position at time t.
func (r lateralRamp) at(t float64) float64 {
	if r.speed <= 0 {
		return r.nominal
	}
	dt := r.transition()
	switch {
	case t <= r.overlapTime-dt || t >= r.overlapTime+dt:
		return r.nominal
	case t < r.overlapTime:
		f := (t - (r.overlapTime - dt)) / dt
		return geom.Lerp(r.nominal, r.overlap, f)
	default:
		f := (t - r.overlapTime) / dt
		return geom.Lerp(r.overlap, r.nominal, f)
	}
}

// keyTimes returns the times at which the ramp changes slope.
func (r lateralRamp) keyTimes() []float64 {
	dt := r.transition()
	return []float64{r.overlapTime - dt, r.overlapTime, r.overlapTime + dt}
}

// Generate implements Model.
//
// Random draws are taken from rng in a fixed order (lateral overlap
// position, overlap time, two lateral speeds, two vertical deviations) so
// that a seeded rng reproduces the encounter exactly.
func (p ReichParams) Generate(rng *rand.Rand) (*Encounter, error) {
	deltaV := p.V1 - p.V2
	if math.Abs(deltaV) < MinRelativeLongitudinalSpeed {
		return nil, failed(ModelReich, PhaseSampling,
			fmt.Errorf("%w: relative longitudinal speed %g m/s below minimum %g m/s",
				ErrDegenerateScenario, math.Abs(deltaV), MinRelativeLongitudinalSpeed))
	}

	// Per-axis overlap durations, assuming the relative speed applies for
	// the full crossing of the paired collision boxes.
	overlapX := 2 * p.AircraftLength / math.Abs(deltaV)
	overlapY := 2 * p.AircraftWingspan / p.LateralOverlapSpeed
	overlapZ := 2 * p.AircraftHeight / p.VerticalOverlapSpeed

	// The window must contain every potential overlap, plus a margin.
	dtView := viewWindowMargin * math.Max(overlapX, math.Max(overlapY, overlapZ))
	if dtView < viewWindowMin {
		dtView = viewWindowMin
	}

	// Longitudinal: both aircraft cross x=0 at the window midpoint, so
	// x_i(t) = V_i * (t - dtView/2).
	x1 := func(t float64) float64 { return p.V1 * (t - dtView/2) }
	x2 := func(t float64) float64 { return p.V2 * (t - dtView/2) }

	sigmaY, err := gauss.SigmaForInterval(2*p.HalfWidth, gauss.DefaultContainment)
	if err != nil {
		return nil, failed(ModelReich, PhaseSampling, fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}
	sigmaZ, err := gauss.SigmaForInterval(2*p.HalfHeight, gauss.DefaultContainment)
	if err != nil {
		return nil, failed(ModelReich, PhaseSampling, fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}

	// Lateral positions are Y1 ~ N(-S_y/2, sigma_y), Y2 ~ N(S_y/2, sigma_y);
	// conditioned on Y1 = Y2, the overlap position is N(0, sigma_y/sqrt(2)).
	yOverlap := rng.NormFloat64() * sigmaY / math.Sqrt2

	// Reich assumes the probability of lateral overlap is proportional to
	// the fraction of lateral spacing occupied by the aircraft, so the
	// overlap instant is uniform over an interval wider than the overlap
	// duration by the spacing-to-wingspan ratio. The instant may fall
	// outside the window, in which case the visible trajectory shows no
	// lateral movement; that is intended, not an error.
	overlapInterval := overlapY * p.LateralSpacing / p.AircraftWingspan
	tOverlap := (rng.Float64() - 0.5) * overlapInterval

	// Draw the two lateral deviation speeds from the symmetric triangular
	// distribution on [0, YS_y]: the pair averages to the configured
	// relative speed, and neither draw can be negative. Aircraft 1 always
	// moves +y and aircraft 2 always moves -y, toward each other.
	s1 := p.LateralOverlapSpeed * triangular01(rng.Float64())
	s2 := p.LateralOverlapSpeed * triangular01(rng.Float64())

	ramp1 := lateralRamp{nominal: -p.LateralSpacing / 2, overlap: yOverlap, overlapTime: tOverlap, speed: s1}
	ramp2 := lateralRamp{nominal: p.LateralSpacing / 2, overlap: yOverlap, overlapTime: tOverlap, speed: s2}

	// Vertical: a single deviation sample per aircraft, held constant for
	// the whole encounter. VerticalOverlapSpeed deliberately plays no part
	// here; see the ReichParams doc comment.
	z1 := rng.NormFloat64() * sigmaZ
	z2 := rng.NormFloat64() * sigmaZ

	f1, err := p.makeFlight(dtView, x1, ramp1, z1)
	if err != nil {
		return nil, err
	}
	f2, err := p.makeFlight(dtView, x2, ramp2, z2)
	if err != nil {
		return nil, err
	}

	return &Encounter{
		Model:   ModelReich,
		T0:      0,
		T1:      dtView,
		Flights: [2]Flight{f1, f2},
		Phase:   PhaseReady,
	}, nil
}

// makeFlight samples one aircraft's path at its slope-change times and
// sizes its operational intent volume around the nominal route.
func (p ReichParams) makeFlight(dtView float64, x func(float64) float64, ramp lateralRamp, z float64) (Flight, error) {
	times := []float64{0, dtView}
	// A zero-speed draw never leaves the route centre, so there are no
	// slope changes to record for it.
	if ramp.speed > 0 {
		for _, t := range ramp.keyTimes() {
			if t > 0 && t < dtView {
				times = append(times, t)
			}
		}
	}
	sort.Float64s(times)
	times = dedupeSorted(times)

	pts := make([]Keypoint, len(times))
	for i, t := range times {
		pts[i] = Keypoint{T: t, Pos: geom.Vec3{X: x(t), Y: ramp.at(t), Z: z}}
	}
	path, err := NewTrajectory(pts)
	if err != nil {
		return Flight{}, failed(ModelReich, PhaseInterpolated, err)
	}

	xStart, xEnd := x(0), x(dtView)
	opIntent := geom.Box{
		Min: geom.Vec3{
			X: math.Min(xStart, xEnd) - p.AircraftLength,
			Y: ramp.nominal - p.HalfWidth,
			Z: -p.HalfHeight,
		},
		Max: geom.Vec3{
			X: math.Max(xStart, xEnd) + p.AircraftLength,
			Y: ramp.nominal + p.HalfWidth,
			Z: p.HalfHeight,
		},
	}

	size := geom.Vec3{X: p.AircraftLength, Y: p.AircraftWingspan, Z: p.AircraftHeight}
	return Flight{Path: path, OpIntent: opIntent, Size: size}, nil
}

// triangular01 maps a uniform [0, 1) variate onto the symmetric triangular
// distribution on [0, 1] with mode and mean 1/2.
func triangular01(u float64) float64 {
	if u < 0.5 {
		return math.Sqrt(u / 2)
	}
	return 1 - math.Sqrt((1-u)/2)
}

// dedupeSorted removes exactly-equal neighbours from a sorted slice.
func dedupeSorted(xs []float64) []float64 {
	out := xs[:1]
	for _, x := range xs[1:] {
		if x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
