package encounter

import (
	"fmt"
	"math/rand"

	"github.com/banshee-data/encounter.report/internal/gauss"
	"github.com/banshee-data/encounter.report/internal/geom"
)

// defaultDiscreteTimeLength is the time horizon used when deriving discrete
// parameters from a Reich setup. The discrete model has no built-in
// time-limiting event, so the horizon is an arbitrary viewing window.
const defaultDiscreteTimeLength = 5

// DiscreteParams parameterises the discrete sampling model.
//
// Each aircraft flies a nominal constant-speed track along x. At every
// sampling interval an independent zero-mean normal deviation is drawn per
// axis and added to the nominal position; consecutive keypoints are joined
// by linear interpolation. Raising the sampling frequency raises the number
// of independent position trials per unit time, and with it the per-time
// collision probability. That is a property of the model, reproduced
// exactly: no smoothing or clamping is applied between keypoints.
type DiscreteParams struct {
	// TimeLength is the encounter duration in seconds.
	TimeLength float64

	// V1Ground and V2Ground are the longitudinal ground speeds (m/s,
	// directional) of the two aircraft.
	V1Ground float64
	V2Ground float64

	// LateralSeparation is the nominal lateral separation (m) between the
	// two parallel tracks.
	LateralSeparation float64

	// SamplingFrequency is the rate (Hz) at which new deviation samples
	// are drawn.
	SamplingFrequency float64

	// Sigma holds the per-axis deviation distribution scales (m). The
	// lateral and vertical scales must be positive; the longitudinal
	// scale may be zero.
	Sigma geom.Vec3

	// AircraftSize is the collision bounding box of each aircraft (m).
	AircraftSize geom.Vec3
}

// ModelID implements Model.
func (DiscreteParams) ModelID() string { return ModelDiscrete }

// Validate implements Model.
func (p DiscreteParams) Validate() error {
	switch {
	case p.SamplingFrequency <= 0:
		return fmt.Errorf("%w: sampling frequency must be positive, got %g", ErrInvalidParameter, p.SamplingFrequency)
	case p.TimeLength <= 0:
		return fmt.Errorf("%w: time length must be positive, got %g", ErrInvalidParameter, p.TimeLength)
	case p.AircraftSize.X <= 0 || p.AircraftSize.Y <= 0 || p.AircraftSize.Z <= 0:
		return fmt.Errorf("%w: aircraft size must be positive in all axes, got %+v", ErrInvalidParameter, p.AircraftSize)
	case p.Sigma.X < 0:
		return fmt.Errorf("%w: longitudinal sigma must be non-negative, got %g", ErrInvalidParameter, p.Sigma.X)
	case p.Sigma.Y <= 0 || p.Sigma.Z <= 0:
		return fmt.Errorf("%w: lateral and vertical sigma must be positive, got %+v", ErrInvalidParameter, p.Sigma)
	case p.LateralSeparation < 0:
		return fmt.Errorf("%w: lateral separation must be non-negative, got %g", ErrInvalidParameter, p.LateralSeparation)
	}
	return nil
}

// Generate implements Model. The two flights fly parallel tracks along x,
// offset laterally by +/- half the separation, with independent deviations
// sampled per keypoint from rng.
func (p DiscreteParams) Generate(rng *rand.Rand) (*Encounter, error) {
	f1, err := p.makeFlight(rng, p.V1Ground, -p.LateralSeparation/2)
	if err != nil {
		return nil, err
	}
	f2, err := p.makeFlight(rng, p.V2Ground, p.LateralSeparation/2)
	if err != nil {
		return nil, err
	}
	return &Encounter{
		Model:   ModelDiscrete,
		T0:      0,
		T1:      p.TimeLength,
		Flights: [2]Flight{f1, f2},
		Phase:   PhaseReady,
	}, nil
}

// makeFlight samples one aircraft's keypoints, centres the track on x=0,
// and sizes its operational intent volume from the deviation scales.
func (p DiscreteParams) makeFlight(rng *rand.Rand, groundSpeed, lateralPos float64) (Flight, error) {
	dt := 1 / p.SamplingFrequency
	dx := groundSpeed * dt

	// Generate keypoints until the horizon is passed. Deviations apply to
	// the keypoint only, never to the nominal position that follows it.
	var pts []Keypoint
	t, x := -dt, -dx
	for t < p.TimeLength {
		t += dt
		x += dx
		pts = append(pts, Keypoint{T: t, Pos: geom.Vec3{
			X: x + rng.NormFloat64()*p.Sigma.X,
			Y: rng.NormFloat64() * p.Sigma.Y,
			Z: rng.NormFloat64() * p.Sigma.Z,
		}})
	}

	// Truncate the final keypoint back onto the horizon.
	n := len(pts)
	f := (p.TimeLength - pts[n-2].T) / dt
	pts[n-1] = Keypoint{
		T:   geom.Lerp(pts[n-2].T, pts[n-1].T, f),
		Pos: geom.LerpVec3(pts[n-2].Pos, pts[n-1].Pos, f),
	}

	path, err := NewTrajectory(pts)
	if err != nil {
		return Flight{}, failed(ModelDiscrete, PhaseSampling, err)
	}

	// Centre the track on x=0 and move it onto its lateral offset.
	pathLength := p.TimeLength * groundSpeed
	path, err = path.Offset(0, geom.Vec3{X: -pathLength / 2, Y: lateralPos})
	if err != nil {
		return Flight{}, failed(ModelDiscrete, PhaseInterpolated, err)
	}

	widthY, err := gauss.IntervalForSigma(p.Sigma.Y, gauss.DefaultContainment)
	if err != nil {
		return Flight{}, failed(ModelDiscrete, PhaseInterpolated, fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}
	widthZ, err := gauss.IntervalForSigma(p.Sigma.Z, gauss.DefaultContainment)
	if err != nil {
		return Flight{}, failed(ModelDiscrete, PhaseInterpolated, fmt.Errorf("%w: %v", ErrInvalidParameter, err))
	}

	center := geom.Vec3{Y: lateralPos}
	opIntent := geom.BoxAround(center, geom.Vec3{
		X: pathLength + 2*4*p.Sigma.X + p.AircraftSize.X,
		Y: widthY,
		Z: widthZ,
	})

	return Flight{Path: path, OpIntent: opIntent, Size: p.AircraftSize}, nil
}

// DiscreteFromReich derives discrete sampling parameters that match, as
// closely as practical, the physical setup of a Reich parameter set: the
// sampling frequency is inferred from the Reich overlap-speed parameters
// (taking the faster of the lateral and vertical rates, the conservative
// choice) and the deviation scales from the intent-volume cross-section.
func DiscreteFromReich(r ReichParams) (DiscreteParams, error) {
	if err := r.Validate(); err != nil {
		return DiscreteParams{}, err
	}

	hzY, err := InferCaffeination(r.LateralOverlapSpeed, gauss.DefaultContainment, 2*r.HalfWidth)
	if err != nil {
		return DiscreteParams{}, err
	}
	hzZ, err := InferCaffeination(r.VerticalOverlapSpeed, gauss.DefaultContainment, 2*r.HalfHeight)
	if err != nil {
		return DiscreteParams{}, err
	}
	hz := hzY
	if hzZ > hz {
		hz = hzZ
	}

	sigmaY, err := gauss.SigmaForInterval(2*r.HalfWidth, gauss.DefaultContainment)
	if err != nil {
		return DiscreteParams{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	sigmaZ, err := gauss.SigmaForInterval(2*r.HalfHeight, gauss.DefaultContainment)
	if err != nil {
		return DiscreteParams{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}

	return DiscreteParams{
		TimeLength:        defaultDiscreteTimeLength,
		V1Ground:          r.V1,
		V2Ground:          r.V2,
		LateralSeparation: r.LateralSpacing,
		SamplingFrequency: hz,
		Sigma:             geom.Vec3{X: 0, Y: sigmaY, Z: sigmaZ},
		AircraftSize:      geom.Vec3{X: r.AircraftLength, Y: r.AircraftWingspan, Z: r.AircraftHeight},
	}, nil
}
