package domain

import (
	"encoding/json"
	"fmt"
)

// PhenomenonKind classifies present weather.
type PhenomenonKind int

const (
	KindClear PhenomenonKind = iota
	KindFog
	KindDrizzle
	KindFreezingDrizzle
	KindRain
	KindFreezingRain
	KindSnow
	KindSnowGrains
	KindRainShowers
	KindSnowShowers
	KindThunderstorm
	KindThunderstormHail
)

var kindNames = [...]string{
	KindClear:            "clear",
	KindFog:              "fog",
	KindDrizzle:          "drizzle",
	KindFreezingDrizzle:  "freezing_drizzle",
	KindRain:             "rain",
	KindFreezingRain:     "freezing_rain",
	KindSnow:             "snow",
	KindSnowGrains:       "snow_grains",
	KindRainShowers:      "rain_showers",
	KindSnowShowers:      "snow_showers",
	KindThunderstorm:     "thunderstorm",
	KindThunderstormHail: "thunderstorm_hail",
}

func (k PhenomenonKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Intensity is the tier reported with a phenomenon.
type Intensity int

const (
	IntensityNone Intensity = iota
	IntensityLight
	IntensityModerate
	IntensityHeavy
)

func (i Intensity) String() string {
	switch i {
	case IntensityLight:
		return "light"
	case IntensityModerate:
		return "moderate"
	case IntensityHeavy:
		return "heavy"
	default:
		return "none"
	}
}

// Phenomenon is present weather as a (kind, intensity) pair. The zero value
// is clear sky. On the wire it is the WMO 4677 weather code.
type Phenomenon struct {
	Kind      PhenomenonKind
	Intensity Intensity
}

// phenomenonEntry is one row of the WMO decoding table: the report token and
// the visibility ceiling the phenomenon imposes (0 = no cap).
type phenomenonEntry struct {
	code     int
	p        Phenomenon
	token    string
	visCapKm float64
}

var phenomenonTable = []phenomenonEntry{
	{0, Phenomenon{KindClear, IntensityNone}, "", 0},
	{1, Phenomenon{KindClear, IntensityNone}, "", 0},
	{2, Phenomenon{KindClear, IntensityNone}, "", 0},
	{3, Phenomenon{KindClear, IntensityNone}, "", 0},
	{45, Phenomenon{KindFog, IntensityNone}, "FG", 0.8},
	{48, Phenomenon{KindFog, IntensityNone}, "FG", 0.8},
	{51, Phenomenon{KindDrizzle, IntensityLight}, "-DZ", 8},
	{53, Phenomenon{KindDrizzle, IntensityModerate}, "DZ", 6},
	{55, Phenomenon{KindDrizzle, IntensityHeavy}, "+DZ", 3},
	{56, Phenomenon{KindFreezingDrizzle, IntensityLight}, "-FZDZ", 2},
	{57, Phenomenon{KindFreezingDrizzle, IntensityHeavy}, "FZDZ", 1.5},
	{61, Phenomenon{KindRain, IntensityLight}, "-RA", 8},
	{63, Phenomenon{KindRain, IntensityModerate}, "RA", 6},
	{65, Phenomenon{KindRain, IntensityHeavy}, "+RA", 3},
	{66, Phenomenon{KindFreezingRain, IntensityLight}, "-FZRA", 2},
	{67, Phenomenon{KindFreezingRain, IntensityHeavy}, "FZRA", 1.5},
	{71, Phenomenon{KindSnow, IntensityLight}, "-SN", 8},
	{73, Phenomenon{KindSnow, IntensityModerate}, "SN", 5},
	{75, Phenomenon{KindSnow, IntensityHeavy}, "+SN", 2},
	{77, Phenomenon{KindSnowGrains, IntensityModerate}, "SG", 0},
	{80, Phenomenon{KindRainShowers, IntensityLight}, "-SHRA", 8},
	{81, Phenomenon{KindRainShowers, IntensityModerate}, "SHRA", 6},
	{82, Phenomenon{KindRainShowers, IntensityHeavy}, "+SHRA", 2},
	{85, Phenomenon{KindSnowShowers, IntensityLight}, "-SHSN", 6},
	{86, Phenomenon{KindSnowShowers, IntensityHeavy}, "+SHSN", 2},
	{95, Phenomenon{KindThunderstorm, IntensityModerate}, "TS", 3},
	{96, Phenomenon{KindThunderstormHail, IntensityLight}, "TSGS", 1.5},
	{99, Phenomenon{KindThunderstormHail, IntensityHeavy}, "+TSGR", 1.5},
}

// PhenomenonFromWMO decodes a WMO 4677 weather code. Unknown codes decode to
// clear sky.
func PhenomenonFromWMO(code int) Phenomenon {
	for _, s := range phenomenonTable {
		if s.code == code {
			return s.p
		}
	}
	return Phenomenon{}
}

func (p Phenomenon) entry() (phenomenonEntry, bool) {
	for _, s := range phenomenonTable {
		if s.p == p {
			return s, true
		}
	}
	return phenomenonEntry{}, false
}

// WMOCode returns the canonical WMO code for p (0 when p is not in the table).
func (p Phenomenon) WMOCode() int {
	s, _ := p.entry()
	return s.code
}

// Token returns the report token, e.g. "-RA" or "FG". Clear sky has none.
func (p Phenomenon) Token() string {
	s, _ := p.entry()
	return s.token
}

// VisibilityCapKm returns the visibility ceiling imposed by p, if any.
func (p Phenomenon) VisibilityCapKm() (float64, bool) {
	s, ok := p.entry()
	if !ok || s.visCapKm == 0 {
		return 0, false
	}
	return s.visCapKm, true
}

// IsFog reports whether p is explicit fog.
func (p Phenomenon) IsFog() bool { return p.Kind == KindFog }

// IsThunderstorm reports whether p is any thunderstorm, with or without hail.
func (p Phenomenon) IsThunderstorm() bool {
	return p.Kind == KindThunderstorm || p.Kind == KindThunderstormHail
}

// IsClear reports whether no phenomenon is present.
func (p Phenomenon) IsClear() bool { return p.Kind == KindClear }

func (p Phenomenon) String() string {
	if p.Intensity == IntensityNone {
		return p.Kind.String()
	}
	return p.Intensity.String() + " " + p.Kind.String()
}

// MarshalJSON encodes p as its WMO code.
func (p Phenomenon) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.WMOCode())
}

// UnmarshalJSON decodes a WMO code; null leaves p clear.
func (p *Phenomenon) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = Phenomenon{}
		return nil
	}
	var code int
	if err := json.Unmarshal(data, &code); err != nil {
		return fmt.Errorf("decode weather code: %w", err)
	}
	*p = PhenomenonFromWMO(code)
	return nil
}
