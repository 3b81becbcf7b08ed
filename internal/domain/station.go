package domain

import "time"

// Station describes an aerodrome the advisories are computed for.
type Station struct {
	ICAO       string  `koanf:"icao" json:"icao"`
	Name       string  `koanf:"name" json:"name,omitempty"`
	ElevationM float64 `koanf:"elevation_m" json:"elevation_m"`

	// Opposite runway ends, magnetic headings in degrees.
	RunwayHeadingA float64 `koanf:"runway_heading_a" json:"runway_heading_a"`
	RunwayHeadingB float64 `koanf:"runway_heading_b" json:"runway_heading_b"`

	// LightWindKt is the speed at or below which both ends are acceptable.
	LightWindKt float64 `koanf:"light_wind_kt" json:"light_wind_kt"`
	// PreferredHeading is the end locally favoured in light wind, nil for none.
	PreferredHeading *float64 `koanf:"preferred_heading" json:"preferred_heading,omitempty"`
	// CrosswindLimitKt flags recommendations above this crosswind (0 = off).
	CrosswindLimitKt float64 `koanf:"crosswind_limit_kt" json:"crosswind_limit_kt,omitempty"`

	// Timezone is the IANA zone used for local-time windows.
	Timezone string `koanf:"timezone" json:"timezone"`
	// ReferenceICAO is a nearby station with an official report, if any.
	ReferenceICAO string `koanf:"reference_icao" json:"reference_icao,omitempty"`
}

// Location resolves Timezone, falling back to UTC.
func (s Station) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
