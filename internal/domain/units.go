package domain

import "math"

const (
	magnusA = 17.27
	magnusB = 237.7

	knotsPerKmh = 0.539957

	// dewpointFallbackSpread is subtracted from the temperature when humidity
	// is unusable.
	dewpointFallbackSpread = 5.0
)

// DewpointFromHumidity estimates the dew point with the Magnus formula.
// Humidity outside (0,100] returns tempC − 5 instead of failing; use
// [HumidityInRange] to detect (and log) the fallback.
func DewpointFromHumidity(tempC, rhPct float64) float64 {
	if !HumidityInRange(rhPct) {
		return tempC - dewpointFallbackSpread
	}
	alpha := (magnusA*tempC)/(magnusB+tempC) + math.Log(rhPct/100.0)
	return (magnusB * alpha) / (magnusA - alpha)
}

// HumidityInRange reports whether rhPct is usable by the Magnus formula.
func HumidityInRange(rhPct float64) bool {
	return rhPct > 0 && rhPct <= 100
}

// KmhToKnots converts km/h to whole knots, rounding half away from zero.
func KmhToKnots(v float64) int {
	return int(math.Round(v * knotsPerKmh))
}

// KmhToKnotsExact converts km/h to knots without rounding, for vector math.
func KmhToKnotsExact(v float64) float64 {
	return v * knotsPerKmh
}

// NormalizeAngleDelta returns the signed angle from runwayHeading to windDir
// in (-180, 180].
func NormalizeAngleDelta(windDir, runwayHeading float64) float64 {
	d := math.Mod(windDir-runwayHeading+180, 360)
	if d < 0 {
		d += 360
	}
	d -= 180
	if d == -180 {
		return 180
	}
	return d
}

// WindFromVector converts model u/v components (m/s, positive towards east
// and north) into a speed in km/h and the direction the wind blows from.
func WindFromVector(u, v float64) (speedKmh, dirFromDeg float64) {
	speedKmh = math.Hypot(u, v) * 3.6
	dirFromDeg = math.Mod(math.Atan2(-u, -v)*180/math.Pi+360, 360)
	return speedKmh, dirFromDeg
}
