// Package helpers provides clamping conversions for values that arrive as
// int from configuration and leave as fixed-width wire or runtime fields.
package helpers

import "math"

// ClampInt restricts v to the range [lowerLimit, upperLimit].
func ClampInt(v, lowerLimit, upperLimit int) int {
	if v < lowerLimit {
		return lowerLimit
	}
	if v > upperLimit {
		return upperLimit
	}
	return v
}

// ClampIntToUint32 converts v to uint32. Negative values become 0 and values
// above math.MaxUint32 become math.MaxUint32.
func ClampIntToUint32(v int) uint32 {
	if v < 0 {
		return 0
	}
	if uint64(v) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v) //nolint:gosec // range checked above
}

// ClampIntToInt32 converts v to int32, saturating at both ends.
func ClampIntToInt32(v int) int32 {
	return int32(ClampInt(v, math.MinInt32, math.MaxInt32)) //nolint:gosec // clamped to valid range
}
