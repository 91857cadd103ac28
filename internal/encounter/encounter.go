// Package encounter generates synthetic near-collision encounters between
// pairs of aircraft.
//
// An encounter is one finite-duration scenario: two 4D (x, y, z, t)
// trajectories plus the operational intent volume each aircraft is expected
// to remain within. Two statistical motion models produce encounters behind
// a common Model interface: a discrete sampling model that redraws position
// deviations at a fixed sampling frequency, and a Reich overlap model that
// constructs per-axis separation-loss events from relative-speed
// parameters. Generation is pure and synchronous; determinism is obtained
// by passing a seeded *rand.Rand.
package encounter

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/banshee-data/encounter.report/internal/geom"
)

// Keypoint is one discretely generated sample of a trajectory: a time and
// the (already deviation-adjusted) position at that time.
type Keypoint struct {
	T   float64
	Pos geom.Vec3
}

// Trajectory is an ordered sequence of keypoints interpolated linearly in
// time to produce a continuous 4D position. It is immutable once built.
type Trajectory struct {
	points  []Keypoint
	x, y, z interp.PiecewiseLinear
}

// NewTrajectory builds a trajectory from keypoints. Keypoint times must be
// strictly increasing and at least two keypoints are required.
func NewTrajectory(points []Keypoint) (*Trajectory, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: trajectory needs at least 2 keypoints, got %d", ErrInvalidParameter, len(points))
	}
	ts := make([]float64, len(points))
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	zs := make([]float64, len(points))
	for i, p := range points {
		// interp.PiecewiseLinear.Fit panics on unordered xs, so the time
		// ordering must be checked here.
		if i > 0 && p.T <= points[i-1].T {
			return nil, fmt.Errorf("%w: keypoint times must be strictly increasing, got %g after %g",
				ErrInvalidParameter, p.T, points[i-1].T)
		}
		ts[i] = p.T
		xs[i] = p.Pos.X
		ys[i] = p.Pos.Y
		zs[i] = p.Pos.Z
	}
	tr := &Trajectory{points: append([]Keypoint(nil), points...)}
	for _, fit := range []struct {
		pl *interp.PiecewiseLinear
		vs []float64
	}{{&tr.x, xs}, {&tr.y, ys}, {&tr.z, zs}} {
		if err := fit.pl.Fit(ts, fit.vs); err != nil {
			return nil, fmt.Errorf("%w: fit keypoints: %v", ErrInvalidParameter, err)
		}
	}
	return tr, nil
}

// PositionAt returns the interpolated position at time t. Outside the
// keypoint time range the nearest endpoint position is returned.
func (tr *Trajectory) PositionAt(t float64) geom.Vec3 {
	return geom.Vec3{
		X: tr.x.Predict(t),
		Y: tr.y.Predict(t),
		Z: tr.z.Predict(t),
	}
}

// Start returns the time of the first keypoint.
func (tr *Trajectory) Start() float64 {
	return tr.points[0].T
}

// End returns the time of the last keypoint.
func (tr *Trajectory) End() float64 {
	return tr.points[len(tr.points)-1].T
}

// Keypoints returns a copy of the trajectory's keypoints.
func (tr *Trajectory) Keypoints() []Keypoint {
	return append([]Keypoint(nil), tr.points...)
}

// Offset returns a new trajectory with dt added to every keypoint time and
// d added to every keypoint position.
func (tr *Trajectory) Offset(dt float64, d geom.Vec3) (*Trajectory, error) {
	moved := make([]Keypoint, len(tr.points))
	for i, p := range tr.points {
		moved[i] = Keypoint{T: p.T + dt, Pos: p.Pos.Add(d)}
	}
	return NewTrajectory(moved)
}

// Flight is one aircraft's part of an encounter: its trajectory, its
// operational intent volume and its collision bounding-box dimensions.
type Flight struct {
	Path     *Trajectory
	OpIntent geom.Box
	Size     geom.Vec3
}

// OpIntentAt returns the operational intent volume at time t. Both current
// models produce volumes that are constant over the encounter window, but
// consumers should treat the volume as time-varying.
func (f Flight) OpIntentAt(t float64) geom.Box {
	return f.OpIntent
}

// Encounter is one generated scenario: a finite time window [T0, T1] and
// exactly two flights. An encounter is immutable once its phase is ready
// and may be read concurrently without synchronisation.
type Encounter struct {
	Model   string
	T0, T1  float64
	Flights [2]Flight
	Phase   Phase
}

// Duration returns the encounter window.
func (e *Encounter) Duration() (t0, t1 float64) {
	return e.T0, e.T1
}

// Evaluate returns both aircraft positions and operational intent volumes
// at time t. Times outside [T0, T1] are an error.
func (e *Encounter) Evaluate(t float64) (p1, p2 geom.Vec3, oiv1, oiv2 geom.Box, err error) {
	if t < e.T0 || t > e.T1 {
		return geom.Vec3{}, geom.Vec3{}, geom.Box{}, geom.Box{},
			fmt.Errorf("%w: t=%g not in [%g, %g]", ErrOutsideWindow, t, e.T0, e.T1)
	}
	p1 = e.Flights[0].Path.PositionAt(t)
	p2 = e.Flights[1].Path.PositionAt(t)
	return p1, p2, e.Flights[0].OpIntentAt(t), e.Flights[1].OpIntentAt(t), nil
}
