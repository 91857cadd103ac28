package encounter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/encounter.report/internal/gauss"
	"github.com/banshee-data/encounter.report/internal/geom"
	"github.com/banshee-data/encounter.report/internal/testutil"
)

// testDiscreteParams is the end-to-end scenario profile: sigma_x=10m,
// sigma_y=5m, sigma_z=2m, 1 Hz over a 60s window.
func testDiscreteParams() DiscreteParams {
	return DiscreteParams{
		TimeLength:        60,
		V1Ground:          50,
		V2Ground:          40,
		LateralSeparation: 0,
		SamplingFrequency: 1,
		Sigma:             geom.Vec3{X: 10, Y: 5, Z: 2},
		AircraftSize:      geom.Vec3{X: 2, Y: 2, Z: 1},
	}
}

func TestDiscreteValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*DiscreteParams)
	}{
		{"zero frequency", func(p *DiscreteParams) { p.SamplingFrequency = 0 }},
		{"negative frequency", func(p *DiscreteParams) { p.SamplingFrequency = -1 }},
		{"zero time length", func(p *DiscreteParams) { p.TimeLength = 0 }},
		{"zero aircraft size", func(p *DiscreteParams) { p.AircraftSize.Y = 0 }},
		{"negative sigma x", func(p *DiscreteParams) { p.Sigma.X = -1 }},
		{"zero sigma y", func(p *DiscreteParams) { p.Sigma.Y = 0 }},
		{"negative separation", func(p *DiscreteParams) { p.LateralSeparation = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testDiscreteParams()
			tt.mutate(&p)
			_, err := Generate(p, testutil.SeededRand(1))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidParameter), "got %v", err)

			var genErr *GenerationError
			require.True(t, errors.As(err, &genErr))
			assert.Equal(t, PhaseParameterized, genErr.Phase)
			assert.Equal(t, ModelDiscrete, genErr.Model)
		})
	}
}

func TestDiscreteEndToEnd(t *testing.T) {
	p := testDiscreteParams()
	enc, err := Generate(p, testutil.SeededRand(42))
	require.NoError(t, err)
	require.Equal(t, PhaseReady, enc.Phase)
	assert.Equal(t, ModelDiscrete, enc.Model)

	t0, t1 := enc.Duration()
	assert.Equal(t, 0.0, t0)
	assert.Equal(t, 60.0, t1)

	// 60 seconds at 1 Hz gives 61 keypoints per aircraft.
	for i, f := range enc.Flights {
		pts := f.Path.Keypoints()
		assert.Len(t, pts, 61, "flight %d", i)
		assert.Equal(t, 0.0, pts[0].T)
		assert.InDelta(t, 60.0, pts[len(pts)-1].T, 1e-9)
	}

	// Mid-window evaluation stays within the plausible deviation range
	// around the (centred) nominal positions.
	p1, p2, oiv1, oiv2, err := enc.Evaluate(30)
	require.NoError(t, err)
	for i, pos := range []geom.Vec3{p1, p2} {
		assert.Less(t, math.Abs(pos.X), 100.0, "flight %d x", i)
		assert.Less(t, math.Abs(pos.Y), 6*p.Sigma.Y, "flight %d y", i)
		assert.Less(t, math.Abs(pos.Z), 6*p.Sigma.Z, "flight %d z", i)
	}

	// Intent volumes are centred on the nominal tracks and sized from the
	// deviation scales at 95% containment.
	wantY, err := gauss.IntervalForSigma(p.Sigma.Y, gauss.DefaultContainment)
	require.NoError(t, err)
	wantZ, err := gauss.IntervalForSigma(p.Sigma.Z, gauss.DefaultContainment)
	require.NoError(t, err)
	for i, oiv := range []geom.Box{oiv1, oiv2} {
		assert.InDelta(t, wantY, oiv.Size().Y, 1e-9, "flight %d", i)
		assert.InDelta(t, wantZ, oiv.Size().Z, 1e-9, "flight %d", i)
	}
	assert.InDelta(t, p.TimeLength*p.V1Ground+2*4*p.Sigma.X+p.AircraftSize.X, oiv1.Size().X, 1e-9)
	assert.InDelta(t, p.TimeLength*p.V2Ground+2*4*p.Sigma.X+p.AircraftSize.X, oiv2.Size().X, 1e-9)
}

func TestDiscreteTruncatesToHorizon(t *testing.T) {
	p := testDiscreteParams()
	p.TimeLength = 2.5
	enc, err := Generate(p, testutil.SeededRand(3))
	require.NoError(t, err)

	for _, f := range enc.Flights {
		pts := f.Path.Keypoints()
		assert.Len(t, pts, 4) // 0, 1, 2 and the blended 2.5
		assert.InDelta(t, 2.5, pts[len(pts)-1].T, 1e-12)
	}
}

func TestDiscreteFrequencyControlsTrialCount(t *testing.T) {
	// Doubling the sampling frequency doubles the number of independent
	// position trials per unit time. This is the modelled caffeination
	// effect, not an artefact.
	slow := testDiscreteParams()
	fast := testDiscreteParams()
	fast.SamplingFrequency = 2

	encSlow, err := Generate(slow, testutil.SeededRand(5))
	require.NoError(t, err)
	encFast, err := Generate(fast, testutil.SeededRand(5))
	require.NoError(t, err)

	assert.Len(t, encSlow.Flights[0].Path.Keypoints(), 61)
	assert.Len(t, encFast.Flights[0].Path.Keypoints(), 121)
}

func TestDiscreteContainmentFraction(t *testing.T) {
	// Lateral and vertical keypoint deviations fall within the intent
	// volume half-width 95% of the time by construction.
	p := testDiscreteParams()
	p.TimeLength = 600
	p.SamplingFrequency = 10

	enc, err := Generate(p, testutil.SeededRand(99))
	require.NoError(t, err)

	halfY, err := gauss.IntervalForSigma(p.Sigma.Y, gauss.DefaultContainment)
	require.NoError(t, err)
	halfY /= 2
	halfZ, err := gauss.IntervalForSigma(p.Sigma.Z, gauss.DefaultContainment)
	require.NoError(t, err)
	halfZ /= 2

	insideY, insideZ, n := 0, 0, 0
	for _, f := range enc.Flights {
		for _, kp := range f.Path.Keypoints() {
			n++
			if math.Abs(kp.Pos.Y) <= halfY {
				insideY++
			}
			if math.Abs(kp.Pos.Z) <= halfZ {
				insideZ++
			}
		}
	}
	require.Greater(t, n, 10000)
	testutil.AssertInDelta(t, float64(insideY)/float64(n), gauss.DefaultContainment, 0.01)
	testutil.AssertInDelta(t, float64(insideZ)/float64(n), gauss.DefaultContainment, 0.01)
}

func TestDiscreteFromReich(t *testing.T) {
	r := DefaultReichParams()
	p, err := DiscreteFromReich(r)
	require.NoError(t, err)
	require.NoError(t, p.Validate())

	assert.Equal(t, r.V1, p.V1Ground)
	assert.Equal(t, r.V2, p.V2Ground)
	assert.Equal(t, r.LateralSpacing, p.LateralSeparation)
	assert.Equal(t, geom.Vec3{X: r.AircraftLength, Y: r.AircraftWingspan, Z: r.AircraftHeight}, p.AircraftSize)
	assert.Zero(t, p.Sigma.X)

	wantSigmaY, err := gauss.SigmaForInterval(2*r.HalfWidth, gauss.DefaultContainment)
	require.NoError(t, err)
	assert.InDelta(t, wantSigmaY, p.Sigma.Y, 1e-12)

	// The sampling frequency is the faster of the two per-axis rates;
	// equal half-dimensions and overlap speeds make them coincide here.
	wantHz, err := InferCaffeination(r.LateralOverlapSpeed, gauss.DefaultContainment, 2*r.HalfWidth)
	require.NoError(t, err)
	assert.InDelta(t, wantHz, p.SamplingFrequency, 1e-6*wantHz)

	// The derived parameters generate successfully.
	enc, err := Generate(p, testutil.SeededRand(11))
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, enc.Phase)
}
