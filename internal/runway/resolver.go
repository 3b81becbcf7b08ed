// Package runway picks the runway end best aligned with the wind.
package runway

import (
	"fmt"
	"math"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
)

const (
	// DefaultLightWindKt is the speed at or below which either end is acceptable.
	DefaultLightWindKt = 5.0

	tieEpsilon = 1e-9
)

// End is the wind resolved onto one runway end. HeadwindKt is negative for a
// tailwind; CrosswindKt is always non-negative.
type End struct {
	HeadingDeg  float64 `json:"heading_deg"`
	Designator  string  `json:"designator"`
	HeadwindKt  float64 `json:"headwind_kt"`
	CrosswindKt float64 `json:"crosswind_kt"`
}

// Recommendation is the resolver's pick for one wind observation.
type Recommendation struct {
	WindDirectionDeg float64 `json:"wind_direction_deg"`
	WindSpeedKt      float64 `json:"wind_speed_kt"`

	Recommended End `json:"recommended"`
	Alternate   End `json:"alternate"`

	// LightWind is set when the speed is at or below the comfort threshold.
	// ComfortHeading then names the end that is also acceptable (or locally
	// preferred) and Note describes it. It never changes Recommended.
	LightWind      bool    `json:"light_wind"`
	ComfortHeading float64 `json:"comfort_heading,omitempty"`
	Note           string  `json:"note,omitempty"`

	CrosswindExceeded bool `json:"crosswind_exceeded"`
	Tailwind          bool `json:"tailwind"`
}

// Resolver resolves wind onto a runway pair. The zero value is not usable;
// construct with New or ForStation.
type Resolver struct {
	lightWindKt      float64
	preferredHeading float64
	hasPreferred     bool
	crosswindLimitKt float64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLightWindThreshold sets the comfort-annotation threshold in knots.
func WithLightWindThreshold(kt float64) Option {
	return func(r *Resolver) {
		if kt > 0 {
			r.lightWindKt = kt
		}
	}
}

// WithPreferredHeading names the end favoured locally in light wind. It only
// applies when it matches one of the resolved ends.
func WithPreferredHeading(deg float64) Option {
	return func(r *Resolver) { r.preferredHeading, r.hasPreferred = deg, true }
}

// WithCrosswindLimit flags recommendations whose crosswind exceeds kt.
func WithCrosswindLimit(kt float64) Option {
	return func(r *Resolver) { r.crosswindLimitKt = kt }
}

// New returns a Resolver with the default light-wind threshold.
func New(opts ...Option) *Resolver {
	r := &Resolver{lightWindKt: DefaultLightWindKt}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ForStation configures a Resolver from a station's runway settings.
func ForStation(st domain.Station) *Resolver {
	opts := []Option{
		WithLightWindThreshold(st.LightWindKt),
		WithCrosswindLimit(st.CrosswindLimitKt),
	}
	if st.PreferredHeading != nil {
		opts = append(opts, WithPreferredHeading(*st.PreferredHeading))
	}
	return New(opts...)
}

// Resolve uses a default Resolver.
func Resolve(windDirDeg, windSpeedKt, headingA, headingB float64) Recommendation {
	return New().Resolve(windDirDeg, windSpeedKt, headingA, headingB)
}

// Resolve recommends the end with the larger headwind; on a tie the lower
// heading wins. It panics on a negative or NaN speed and on headings outside
// [0, 360].
func (r *Resolver) Resolve(windDirDeg, windSpeedKt, headingA, headingB float64) Recommendation {
	if math.IsNaN(windSpeedKt) || windSpeedKt < 0 {
		panic(fmt.Sprintf("runway: invalid wind speed %v", windSpeedKt))
	}
	if math.IsNaN(windDirDeg) {
		panic("runway: invalid wind direction NaN")
	}
	checkHeading(headingA)
	checkHeading(headingB)

	a := Components(windDirDeg, windSpeedKt, headingA)
	b := Components(windDirDeg, windSpeedKt, headingB)

	best, alt := a, b
	switch d := b.HeadwindKt - a.HeadwindKt; {
	case d > tieEpsilon:
		best, alt = b, a
	case math.Abs(d) <= tieEpsilon && headingB < headingA:
		best, alt = b, a
	}

	rec := Recommendation{
		WindDirectionDeg: windDirDeg,
		WindSpeedKt:      windSpeedKt,
		Recommended:      best,
		Alternate:        alt,
		Tailwind:         best.HeadwindKt < -tieEpsilon,
	}
	if r.crosswindLimitKt > 0 && best.CrosswindKt > r.crosswindLimitKt {
		rec.CrosswindExceeded = true
	}

	if windSpeedKt <= r.lightWindKt {
		rec.LightWind = true
		rec.ComfortHeading = alt.HeadingDeg
		if r.hasPreferred && (r.preferredHeading == best.HeadingDeg || r.preferredHeading == alt.HeadingDeg) {
			rec.ComfortHeading = r.preferredHeading
		}
		if rec.ComfortHeading == best.HeadingDeg {
			rec.Note = fmt.Sprintf("viento flojo (%.0f kt): pista %s preferida localmente", windSpeedKt, best.Designator)
		} else {
			rec.Note = fmt.Sprintf("viento flojo (%.0f kt): pista %s también aceptable", windSpeedKt, Designator(rec.ComfortHeading))
		}
	}
	return rec
}

// Components resolves the wind onto a single runway heading.
func Components(windDirDeg, windSpeedKt, headingDeg float64) End {
	angle := domain.NormalizeAngleDelta(windDirDeg, headingDeg) * math.Pi / 180
	return End{
		HeadingDeg:  headingDeg,
		Designator:  Designator(headingDeg),
		HeadwindKt:  windSpeedKt * math.Cos(angle),
		CrosswindKt: math.Abs(windSpeedKt * math.Sin(angle)),
	}
}

// Designator is the two-digit runway number for a heading, 36 for north.
func Designator(headingDeg float64) string {
	n := int(math.Round(headingDeg/10)) % 36
	if n == 0 {
		n = 36
	}
	return fmt.Sprintf("%02d", n)
}

func checkHeading(h float64) {
	if math.IsNaN(h) || h < 0 || h > 360 {
		panic(fmt.Sprintf("runway: heading %v outside [0, 360]", h))
	}
}
