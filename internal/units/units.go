// Package units provides shared constants and conversions for speed and
// length units used when presenting encounter parameters and results
package units

// MetersPerFoot converts feet to metres. Model parameters are metric
// internally; several published descriptor values are quoted in feet.
const MetersPerFoot = 0.3048

// Unit constants
const (
	MPS  = "mps"
	KTS  = "kts"
	MPH  = "mph"
	KMPH = "kmph"
	FPM  = "fpm"
)

// ValidUnits contains all valid speed unit values
var ValidUnits = []string{MPS, KTS, MPH, KMPH, FPM}

// IsValid checks if the given unit is in the list of valid units
func IsValid(unit string) bool {
	for _, validUnit := range ValidUnits {
		if unit == validUnit {
			return true
		}
	}
	return false
}

// GetValidUnitsString returns a comma-separated string of valid units for error messages
func GetValidUnitsString() string {
	return "mps, kts, mph, kmph, fpm"
}

// ConvertSpeed converts a speed from metres per second to the target units.
// The models work in m/s throughout.
func ConvertSpeed(speedMPS float64, targetUnits string) float64 {
	switch targetUnits {
	case MPS:
		return speedMPS
	case KTS:
		return speedMPS * 1.9438444924406
	case MPH:
		return speedMPS * 2.2369362920544
	case KMPH:
		return speedMPS * 3.6
	case FPM:
		return speedMPS / MetersPerFoot * 60
	default:
		return speedMPS
	}
}

// FeetToMeters converts a length in feet to metres.
func FeetToMeters(ft float64) float64 {
	return ft * MetersPerFoot
}
