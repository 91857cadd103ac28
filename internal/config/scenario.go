// Package config loads encounter scenario parameters from JSON files.
//
// The core generators accept plain parameter structs; this package is the
// file-facing convenience layer used by the command-line tools. Fields
// omitted from the JSON retain their defaults, so partial configs are safe.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/encounter.report/internal/encounter"
)

// ScenarioConfig is the root configuration for encounter generation. One
// schema covers both models; each converter reads the fields its model
// consumes.
type ScenarioConfig struct {
	// Model selection
	Model *string `json:"model,omitempty"`
	Seed  *int64  `json:"seed,omitempty"`

	// Shared geometry
	AircraftLengthM   *float64 `json:"aircraft_length_m,omitempty"`
	AircraftWingspanM *float64 `json:"aircraft_wingspan_m,omitempty"`
	AircraftHeightM   *float64 `json:"aircraft_height_m,omitempty"`
	LateralSpacingM   *float64 `json:"lateral_spacing_m,omitempty"`
	V1MPS             *float64 `json:"v1_mps,omitempty"`
	V2MPS             *float64 `json:"v2_mps,omitempty"`

	// Reich params
	VolumeHalfWidthM   *float64 `json:"volume_half_width_m,omitempty"`
	VolumeHalfHeightM  *float64 `json:"volume_half_height_m,omitempty"`
	LateralOverlapMPS  *float64 `json:"lateral_overlap_speed_mps,omitempty"`
	VerticalOverlapMPS *float64 `json:"vertical_overlap_speed_mps,omitempty"`

	// Discrete params
	TimeLengthSecs      *float64 `json:"time_length_secs,omitempty"`
	SamplingFrequencyHz *float64 `json:"sampling_frequency_hz,omitempty"`
	SigmaXM             *float64 `json:"sigma_x_m,omitempty"`
	SigmaYM             *float64 `json:"sigma_y_m,omitempty"`
	SigmaZM             *float64 `json:"sigma_z_m,omitempty"`
}

// EmptyScenarioConfig returns a ScenarioConfig with all fields set to nil.
func EmptyScenarioConfig() *ScenarioConfig {
	return &ScenarioConfig{}
}

// Load reads a ScenarioConfig from a JSON file. The file must have a .json
// extension and be under the max file size.
func Load(path string) (*ScenarioConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyScenarioConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration values that can be checked without
// knowing the target model; full parameter validation happens when the
// model parameters are built.
func (c *ScenarioConfig) Validate() error {
	if c.Model != nil {
		valid := false
		for _, id := range encounter.ListModels() {
			if *c.Model == id {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("unknown model %q (valid: %v)", *c.Model, encounter.ListModels())
		}
	}
	if c.SamplingFrequencyHz != nil && *c.SamplingFrequencyHz <= 0 {
		return fmt.Errorf("sampling_frequency_hz must be positive, got %f", *c.SamplingFrequencyHz)
	}
	if c.TimeLengthSecs != nil && *c.TimeLengthSecs <= 0 {
		return fmt.Errorf("time_length_secs must be positive, got %f", *c.TimeLengthSecs)
	}
	return nil
}

// GetModel returns the configured model identifier or the default.
func (c *ScenarioConfig) GetModel() string {
	if c.Model == nil {
		return encounter.ModelReich
	}
	return *c.Model
}

// GetSeed returns the configured random seed, or 0 when unset (callers
// treat 0 as "seed from the clock").
func (c *ScenarioConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 0
	}
	return *c.Seed
}

// ReichParams builds Reich model parameters, with defaults for any field
// the config leaves unset.
func (c *ScenarioConfig) ReichParams() encounter.ReichParams {
	p := encounter.DefaultReichParams()
	setIf(&p.AircraftLength, c.AircraftLengthM)
	setIf(&p.AircraftWingspan, c.AircraftWingspanM)
	setIf(&p.AircraftHeight, c.AircraftHeightM)
	setIf(&p.LateralSpacing, c.LateralSpacingM)
	setIf(&p.HalfWidth, c.VolumeHalfWidthM)
	setIf(&p.HalfHeight, c.VolumeHalfHeightM)
	setIf(&p.V1, c.V1MPS)
	setIf(&p.V2, c.V2MPS)
	setIf(&p.LateralOverlapSpeed, c.LateralOverlapMPS)
	setIf(&p.VerticalOverlapSpeed, c.VerticalOverlapMPS)
	return p
}

// DiscreteParams builds discrete sampling model parameters. Defaults are
// derived from the Reich parameter set so the two models describe the same
// physical setup unless the config overrides the discrete fields directly.
func (c *ScenarioConfig) DiscreteParams() (encounter.DiscreteParams, error) {
	p, err := encounter.DiscreteFromReich(c.ReichParams())
	if err != nil {
		return encounter.DiscreteParams{}, err
	}
	setIf(&p.TimeLength, c.TimeLengthSecs)
	setIf(&p.SamplingFrequency, c.SamplingFrequencyHz)
	setIf(&p.Sigma.X, c.SigmaXM)
	setIf(&p.Sigma.Y, c.SigmaYM)
	setIf(&p.Sigma.Z, c.SigmaZM)
	setIf(&p.V1Ground, c.V1MPS)
	setIf(&p.V2Ground, c.V2MPS)
	setIf(&p.LateralSeparation, c.LateralSpacingM)
	return p, nil
}

// ModelParams builds the parameter set for the configured model.
func (c *ScenarioConfig) ModelParams() (encounter.Model, error) {
	switch c.GetModel() {
	case encounter.ModelDiscrete:
		return c.DiscreteParams()
	case encounter.ModelReich:
		return c.ReichParams(), nil
	default:
		return nil, fmt.Errorf("unknown model %q", c.GetModel())
	}
}

func setIf(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}
