// Package features transforms raw weather observations into the fixed-order
// numeric vectors the trained models were fitted on.
//
// Feature order is a correctness contract, not a style choice: the scaler and
// model for each task were fitted on a specific column order, and a silent
// reorder produces plausible-looking but wrong predictions with no runtime
// error. Each task therefore declares its schema as a fixed-size array with
// named index constants, making the order a compile-time property.
//
// The derived encodings (wind direction sin/cos, heavy-rain indicator, season
// sin/cos) must reproduce the training-time formulas exactly.
package features

import "math"

// heavyRainCodes are the two WMO weather codes the classifier was trained to
// treat as a positive indicator: 63 (moderate rain) and 65 (heavy rain).
const (
	weatherCodeModerateRain = 63
	weatherCodeHeavyRain    = 65
)

// windDirectionEncoding converts a dominant wind direction in degrees into a
// (sin, cos) pair. Wind direction is circular: 359 degrees and 1 degree are
// nearly the same direction, so raw degrees would wrongly treat the two ends
// of the range as maximally dissimilar.
func windDirectionEncoding(degrees float64) (sin, cos float64) {
	radians := degrees * math.Pi / 180
	return math.Sin(radians), math.Cos(radians)
}

// heavyRainIndicator collapses the unordered categorical weather code into the
// binary feature the models expect: 1 iff the code is exactly 63 or 65.
// A missing code reads as 0 upstream, which maps to indicator 0.
func heavyRainIndicator(code float64) float64 {
	if code == weatherCodeModerateRain || code == weatherCodeHeavyRain {
		return 1
	}
	return 0
}

// seasonEncoding maps a calendar month (1-12) onto the unit circle so that
// December and January are numerically adjacent. The angle is 2*pi*(m-1)/12,
// matching the training pipeline.
func seasonEncoding(month int) (sin, cos float64) {
	angle := 2 * math.Pi * float64(month-1) / 12
	return math.Sin(angle), math.Cos(angle)
}
