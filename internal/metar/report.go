package metar

import (
	"fmt"
	"strings"
	"time"
)

// UnlimitedVisibilityM is the value the unlimited token (9999) stands for.
const UnlimitedVisibilityM = 10000

// EncodedReport is a synthesized surface report. It is built once per sample
// and rendered to text only at the boundary via String.
type EncodedReport struct {
	Station    string
	Time       time.Time
	ElevationM float64

	Wind       WindGroup
	Visibility Visibility
	Phenomenon string
	Cloud      CloudGroup
	// CAVOK replaces the visibility, phenomenon and cloud groups when set.
	CAVOK bool

	TemperatureC int
	DewpointC    int
	PressureHPa  int
}

// Groups returns the space-separated groups in report order.
func (r EncodedReport) Groups() []string {
	groups := []string{r.Station, r.Time.UTC().Format("021504") + "Z", r.Wind.String()}
	if r.CAVOK {
		groups = append(groups, "CAVOK")
	} else {
		groups = append(groups, r.Visibility.String())
		if r.Phenomenon != "" {
			groups = append(groups, r.Phenomenon)
		}
		groups = append(groups, r.Cloud.String())
	}
	return append(groups,
		fmt.Sprintf("%s/%s", signed(r.TemperatureC), signed(r.DewpointC)),
		fmt.Sprintf("Q%04d", r.PressureHPa),
	)
}

func (r EncodedReport) String() string {
	return strings.Join(r.Groups(), " ")
}

// Ceiling returns the ceiling in feet above ground, if the cloud group is a
// broken or overcast layer.
func (r EncodedReport) Ceiling() (int, bool) {
	if r.CAVOK {
		return 0, false
	}
	l, ok := r.Cloud.(Layer)
	if !ok || (l.Coverage != Broken && l.Coverage != Overcast) {
		return 0, false
	}
	return l.HeightHundredsFt * 100, true
}

func signed(v int) string {
	if v < 0 {
		return fmt.Sprintf("M%02d", -v)
	}
	return fmt.Sprintf("%02d", v)
}

// WindGroup is one of Calm, Variable or Directional.
type WindGroup interface {
	fmt.Stringer
	windGroup()
}

// Calm is a zero-knot wind.
type Calm struct{}

// Variable is a light wind without a meaningful direction.
type Variable struct {
	SpeedKt int
}

// Directional is a wind from DirectionDeg (10° steps, 360 for north).
// GustKt is zero when no gust is reported.
type Directional struct {
	DirectionDeg int
	SpeedKt      int
	GustKt       int
}

func (Calm) windGroup()        {}
func (Variable) windGroup()    {}
func (Directional) windGroup() {}

func (Calm) String() string { return "00000KT" }

func (v Variable) String() string { return fmt.Sprintf("VRB%02dKT", v.SpeedKt) }

func (d Directional) String() string {
	if d.GustKt > 0 {
		return fmt.Sprintf("%03d%02dG%02dKT", d.DirectionDeg, d.SpeedKt, d.GustKt)
	}
	return fmt.Sprintf("%03d%02dKT", d.DirectionDeg, d.SpeedKt)
}

// Visibility is prevailing visibility in metres or the unlimited token.
type Visibility struct {
	Meters    int
	Unlimited bool
}

func (v Visibility) String() string {
	if v.Unlimited {
		return "9999"
	}
	return fmt.Sprintf("%04d", v.Meters)
}

// Value returns the visibility in metres, UnlimitedVisibilityM when unlimited.
func (v Visibility) Value() int {
	if v.Unlimited {
		return UnlimitedVisibilityM
	}
	return v.Meters
}

// Coverage is the sky-cover tier of a cloud layer.
type Coverage int

const (
	Few Coverage = iota + 1
	Scattered
	Broken
	Overcast
)

func (c Coverage) String() string {
	switch c {
	case Few:
		return "FEW"
	case Scattered:
		return "SCT"
	case Broken:
		return "BKN"
	case Overcast:
		return "OVC"
	default:
		return "???"
	}
}

// CoverageFor maps low-cloud percent to a tier. ok is false for a clear
// layer (zero or less), which encodes as NoCloudDetected.
func CoverageFor(lowPct float64) (c Coverage, ok bool) {
	switch {
	case lowPct <= 0:
		return 0, false
	case lowPct <= 25:
		return Few, true
	case lowPct <= 50:
		return Scattered, true
	case lowPct <= 87:
		return Broken, true
	default:
		return Overcast, true
	}
}

// CloudGroup is NoCloudDetected or a Layer.
type CloudGroup interface {
	fmt.Stringer
	cloudGroup()
}

// NoCloudDetected is the NCD group.
type NoCloudDetected struct{}

// Layer is a cloud layer at HeightHundredsFt above ground.
type Layer struct {
	Coverage         Coverage
	HeightHundredsFt int
}

func (NoCloudDetected) cloudGroup() {}
func (Layer) cloudGroup()           {}

func (NoCloudDetected) String() string { return "NCD" }

func (l Layer) String() string {
	return fmt.Sprintf("%s%03d", l.Coverage, l.HeightHundredsFt)
}
