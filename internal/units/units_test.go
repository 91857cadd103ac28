package units

import (
	"math"
	"testing"
)

func TestConvertSpeed(t *testing.T) {
	tests := []struct {
		name     string
		speedMPS float64
		units    string
		expected float64
	}{
		{"10 m/s to kts", 10.0, KTS, 19.4384},
		{"10 m/s to mph", 10.0, MPH, 22.3694},
		{"10 m/s to kmph", 10.0, KMPH, 36.0},
		{"10 m/s to mps", 10.0, MPS, 10.0},
		{"1 m/s to fpm", 1.0, FPM, 196.8504},
		{"unknown units default to mps", 10.0, "unknown", 10.0},
		{"0 m/s to kts", 0.0, KTS, 0.0},
		{"cruise speed 200 m/s to kts", 200.0, KTS, 388.7689}, // ~389 kts
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ConvertSpeed(tt.speedMPS, tt.units)
			if math.Abs(result-tt.expected) > 0.01 {
				t.Errorf("ConvertSpeed(%f, %s) = %f, want %f", tt.speedMPS, tt.units, result, tt.expected)
			}
		})
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name     string
		unit     string
		expected bool
	}{
		{"valid mps", MPS, true},
		{"valid kts", KTS, true},
		{"valid mph", MPH, true},
		{"valid kmph", KMPH, true},
		{"valid fpm", FPM, true},
		{"invalid unit", "invalid", false},
		{"empty string", "", false},
		{"case sensitive", "KTS", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsValid(tt.unit)
			if result != tt.expected {
				t.Errorf("IsValid(%s) = %v, want %v", tt.unit, result, tt.expected)
			}
		})
	}
}

func TestFeetToMeters(t *testing.T) {
	if got := FeetToMeters(1); got != 0.3048 {
		t.Errorf("FeetToMeters(1) = %g, want 0.3048", got)
	}
	if got := FeetToMeters(15); math.Abs(got-4.572) > 1e-12 {
		t.Errorf("FeetToMeters(15) = %g, want 4.572", got)
	}
}
