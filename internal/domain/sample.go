package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSample is returned by [WeatherSample.Validate].
var ErrInvalidSample = errors.New("invalid weather sample")

// WeatherSample is a single point-in-time (or hourly forecast) model value set.
type WeatherSample struct {
	Time time.Time `json:"time"`

	TemperatureC        *float64 `json:"temperature_c,omitempty"`
	DewpointC           *float64 `json:"dewpoint_c,omitempty"`
	RelativeHumidityPct *float64 `json:"relative_humidity_pct,omitempty"`

	WindSpeedKmh     *float64 `json:"wind_speed_kmh,omitempty"`
	WindDirectionDeg *float64 `json:"wind_direction_deg,omitempty"`
	WindGustKmh      *float64 `json:"wind_gust_kmh,omitempty"`

	PressureHPa *float64 `json:"pressure_hpa,omitempty"`

	CloudCoverTotalPct *float64 `json:"cloud_cover_total_pct,omitempty"`
	CloudCoverLowPct   *float64 `json:"cloud_cover_low_pct,omitempty"`
	CloudCoverMidPct   *float64 `json:"cloud_cover_mid_pct,omitempty"`
	CloudCoverHighPct  *float64 `json:"cloud_cover_high_pct,omitempty"`

	VisibilityKm *float64   `json:"visibility_km,omitempty"`
	Phenomenon   Phenomenon `json:"weather_code"`

	PrecipitationProbabilityPct *float64 `json:"precipitation_probability_pct,omitempty"`
	PrecipitationMM             *float64 `json:"precipitation_mm,omitempty"`
	CAPE                        *float64 `json:"cape_j_per_kg,omitempty"`
	LiftedIndex                 *float64 `json:"lifted_index,omitempty"`
}

// Float returns a pointer to v, for building samples in code.
func Float(v float64) *float64 { return &v }

// Dewpoint returns the explicit dew point when present, otherwise one derived
// from humidity and clamped to the temperature. ok is false when neither path
// is available.
func (s WeatherSample) Dewpoint() (dp float64, ok bool) {
	if s.DewpointC != nil {
		return *s.DewpointC, true
	}
	if s.TemperatureC == nil || s.RelativeHumidityPct == nil {
		return 0, false
	}
	dp = DewpointFromHumidity(*s.TemperatureC, *s.RelativeHumidityPct)
	return math.Min(dp, *s.TemperatureC), true
}

// Spread returns temperature minus dew point.
func (s WeatherSample) Spread() (float64, bool) {
	if s.TemperatureC == nil {
		return 0, false
	}
	dp, ok := s.Dewpoint()
	if !ok {
		return 0, false
	}
	return *s.TemperatureC - dp, true
}

// UsesHumidityFallback reports whether Dewpoint falls back to the conservative
// temperature − 5 °C estimate because humidity is out of range.
func (s WeatherSample) UsesHumidityFallback() bool {
	return s.DewpointC == nil && s.TemperatureC != nil && s.RelativeHumidityPct != nil &&
		!HumidityInRange(*s.RelativeHumidityPct)
}

// Validate checks the value invariants of the sample. Absent optional fields
// are always valid.
func (s WeatherSample) Validate() error {
	covers := []struct {
		name string
		v    *float64
	}{
		{"cloud_cover_total_pct", s.CloudCoverTotalPct},
		{"cloud_cover_low_pct", s.CloudCoverLowPct},
		{"cloud_cover_mid_pct", s.CloudCoverMidPct},
		{"cloud_cover_high_pct", s.CloudCoverHighPct},
	}
	for _, c := range covers {
		if c.v != nil && (*c.v < 0 || *c.v > 100) {
			return fmt.Errorf("%w: %s %.1f outside [0,100]", ErrInvalidSample, c.name, *c.v)
		}
	}
	if s.WindSpeedKmh != nil && *s.WindSpeedKmh < 0 {
		return fmt.Errorf("%w: negative wind speed %.1f", ErrInvalidSample, *s.WindSpeedKmh)
	}
	if s.WindGustKmh != nil && *s.WindGustKmh < 0 {
		return fmt.Errorf("%w: negative wind gust %.1f", ErrInvalidSample, *s.WindGustKmh)
	}
	if s.WindSpeedKmh != nil && s.WindGustKmh != nil && *s.WindGustKmh < *s.WindSpeedKmh {
		return fmt.Errorf("%w: gust %.1f below mean wind %.1f", ErrInvalidSample, *s.WindGustKmh, *s.WindSpeedKmh)
	}
	if s.WindDirectionDeg != nil && (*s.WindDirectionDeg < 0 || *s.WindDirectionDeg >= 360) {
		return fmt.Errorf("%w: wind direction %.1f outside [0,360)", ErrInvalidSample, *s.WindDirectionDeg)
	}
	return nil
}
