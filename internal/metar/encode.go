// Package metar synthesizes surface reports from weather-model samples and
// classifies reports into flight categories.
package metar

import (
	"fmt"
	"math"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
)

const (
	fogToken = "FG"

	// Implicit fog: near-saturated air under an overcast low layer.
	implicitFogMaxSpread = 1.0
	implicitFogMinLowPct = 87.0

	// Dew-point spread thresholds that force fog visibility.
	denseFogSpread = 0.5
	denseFogVisM   = 300
	fogSpread      = 1.0
	fogVisM        = 1000

	// Fog layers are reported no higher than this (hundreds of feet).
	maxFogCeiling = 4

	// lclFeetPerDegree approximates cloud base from the dew-point spread.
	lclFeetPerDegree = 400

	// Gusts are reported when they exceed the mean wind by this much.
	minGustDeltaKt = 10
	// Below this the wind is reported as variable.
	variableMaxKt = 3
)

// Encode builds a report for sample at station. Temperature, humidity or dew
// point, wind speed, wind direction, pressure and the sample time are
// required; a missing one returns an error wrapping
// domain.ErrMissingRequiredField.
func Encode(s domain.WeatherSample, station string, elevationM float64) (EncodedReport, error) {
	if err := requireFields(s); err != nil {
		return EncodedReport{}, err
	}

	temp := *s.TemperatureC
	dewpoint, _ := s.Dewpoint()
	spread := temp - dewpoint

	fog := s.Phenomenon.IsFog()
	token := s.Phenomenon.Token()
	if !fog && spread <= implicitFogMaxSpread && s.CloudCoverLowPct != nil && *s.CloudCoverLowPct > implicitFogMinLowPct {
		fog = true
		if s.Phenomenon.IsClear() {
			token = fogToken
		}
	}

	r := EncodedReport{
		Station:      station,
		Time:         s.Time,
		ElevationM:   elevationM,
		Wind:         encodeWind(*s.WindSpeedKmh, *s.WindDirectionDeg, s.WindGustKmh),
		Visibility:   encodeVisibility(s, fog, spread),
		Phenomenon:   token,
		Cloud:        encodeCloud(s.CloudCoverLowPct, fog, spread),
		TemperatureC: roundInt(temp),
		DewpointC:    roundInt(dewpoint),
		PressureHPa:  roundInt(*s.PressureHPa),
	}
	_, ncd := r.Cloud.(NoCloudDetected)
	r.CAVOK = r.Visibility.Unlimited && r.Phenomenon == "" && ncd
	return r, nil
}

func requireFields(s domain.WeatherSample) error {
	missing := ""
	switch {
	case s.Time.IsZero():
		missing = "time"
	case s.TemperatureC == nil:
		missing = "temperature_c"
	case s.DewpointC == nil && s.RelativeHumidityPct == nil:
		missing = "relative_humidity_pct"
	case s.WindSpeedKmh == nil:
		missing = "wind_speed_kmh"
	case s.WindDirectionDeg == nil:
		missing = "wind_direction_deg"
	case s.PressureHPa == nil:
		missing = "pressure_hpa"
	}
	if missing != "" {
		return fmt.Errorf("encode report: %w: %s", domain.ErrMissingRequiredField, missing)
	}
	return nil
}

func encodeWind(speedKmh, dirDeg float64, gustKmh *float64) WindGroup {
	speed := domain.KmhToKnots(speedKmh)
	switch {
	case speed == 0:
		return Calm{}
	case speed < variableMaxKt:
		return Variable{SpeedKt: speed}
	}

	// 0° is reserved for calm; a northerly is reported as 360.
	dir := int(math.Round(dirDeg/10)) * 10
	if dir%360 == 0 {
		dir = 360
	}

	w := Directional{DirectionDeg: dir, SpeedKt: speed}
	if gustKmh != nil {
		if gust := domain.KmhToKnots(*gustKmh); gust-speed >= minGustDeltaKt {
			w.GustKt = gust
		}
	}
	return w
}

func encodeVisibility(s domain.WeatherSample, fog bool, spread float64) Visibility {
	if fog {
		switch {
		case spread <= denseFogSpread:
			return Visibility{Meters: denseFogVisM}
		case spread <= fogSpread:
			return Visibility{Meters: fogVisM}
		}
	}

	limitKm := math.Inf(1)
	if capKm, ok := s.Phenomenon.VisibilityCapKm(); ok {
		limitKm = capKm
	}
	if s.VisibilityKm != nil {
		limitKm = math.Min(limitKm, *s.VisibilityKm)
	}
	return visibilityFromKm(limitKm)
}

// visibilityFromKm rounds down to reportable steps: 100 m below 5 km,
// 1000 m up to 10 km, unlimited beyond.
func visibilityFromKm(km float64) Visibility {
	if km >= UnlimitedVisibilityM/1000 {
		return Visibility{Unlimited: true}
	}
	m := math.Max(km*1000, 0)
	step := 100.0
	if m >= 5000 {
		step = 1000
	}
	return Visibility{Meters: int(math.Floor(m/step) * step)}
}

func encodeCloud(lowPct *float64, fog bool, spread float64) CloudGroup {
	base := roundInt(spread * lclFeetPerDegree / 100)
	if fog {
		return Layer{Coverage: Overcast, HeightHundredsFt: max(min(base, maxFogCeiling), 0)}
	}
	if lowPct == nil {
		return NoCloudDetected{}
	}
	coverage, ok := CoverageFor(*lowPct)
	if !ok {
		return NoCloudDetected{}
	}
	return Layer{Coverage: coverage, HeightHundredsFt: max(1, base)}
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
