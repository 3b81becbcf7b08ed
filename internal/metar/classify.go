package metar

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// FlightCategory is a ceiling/visibility band. Higher values are more
// restrictive; CategoryUnknown sorts below VFR.
type FlightCategory int

const (
	CategoryUnknown FlightCategory = iota
	VFR
	MVFR
	IFR
	LIFR
)

func (c FlightCategory) String() string {
	switch c {
	case VFR:
		return "VFR"
	case MVFR:
		return "MVFR"
	case IFR:
		return "IFR"
	case LIFR:
		return "LIFR"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the category name.
func (c FlightCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name; unrecognized names are Unknown.
func (c *FlightCategory) UnmarshalText(b []byte) error {
	switch strings.ToUpper(string(b)) {
	case "VFR":
		*c = VFR
	case "MVFR":
		*c = MVFR
	case "IFR":
		*c = IFR
	case "LIFR":
		*c = LIFR
	default:
		*c = CategoryUnknown
	}
	return nil
}

const metersPerStatuteMile = 1609.344

var (
	// cloudRe matches layer groups, e.g. "BKN012", "OVC004CB", "VV002".
	cloudRe = regexp.MustCompile(`^(FEW|SCT|BKN|OVC|VV)(\d{3})(CB|TCU)?$`)
	// visMetersRe matches prevailing visibility in metres, e.g. "0800", "9999".
	visMetersRe = regexp.MustCompile(`^(\d{4})(NDV)?$`)
	// visMilesRe matches whole statute miles, e.g. "10SM", "P6SM".
	visMilesRe = regexp.MustCompile(`^[PM]?(\d{1,2})SM$`)
	// visFractionRe matches fractional statute miles, e.g. "1/2SM", "M1/4SM".
	visFractionRe = regexp.MustCompile(`^M?(\d)/(\d{1,2})SM$`)
	wholeMilesRe  = regexp.MustCompile(`^\d$`)
)

// trendMarkers end the observation part of a report.
var trendMarkers = map[string]bool{"RMK": true, "NOSIG": true, "TEMPO": true, "BECMG": true}

// Conditions are the ceiling and visibility extracted from a report.
type Conditions struct {
	CeilingFt     int
	HasCeiling    bool
	VisibilityM   int
	HasVisibility bool
}

// Extract pulls the lowest broken/overcast (or vertical visibility) layer and
// the first prevailing visibility group out of report text. CAVOK and 9999
// count as UnlimitedVisibilityM.
func Extract(report string) Conditions {
	var c Conditions
	fields := strings.Fields(report)

	for i, tok := range fields {
		if trendMarkers[tok] {
			break
		}

		if tok == "CAVOK" {
			c.setVisibility(UnlimitedVisibilityM)
			continue
		}

		if m := cloudRe.FindStringSubmatch(tok); m != nil {
			if m[1] == "BKN" || m[1] == "OVC" || m[1] == "VV" {
				h, _ := strconv.Atoi(m[2])
				if ft := h * 100; !c.HasCeiling || ft < c.CeilingFt {
					c.CeilingFt = ft
					c.HasCeiling = true
				}
			}
			continue
		}

		if c.HasVisibility {
			continue
		}
		if m := visMetersRe.FindStringSubmatch(tok); m != nil {
			v, _ := strconv.Atoi(m[1])
			if v == 9999 {
				v = UnlimitedVisibilityM
			}
			c.setVisibility(v)
			continue
		}
		if m := visMilesRe.FindStringSubmatch(tok); m != nil {
			miles, _ := strconv.Atoi(m[1])
			c.setVisibility(milesToMeters(float64(miles)))
			continue
		}
		if wholeMilesRe.MatchString(tok) && i+1 < len(fields) {
			if m := visFractionRe.FindStringSubmatch(fields[i+1]); m != nil {
				whole, _ := strconv.Atoi(tok)
				c.setVisibility(milesToMeters(float64(whole) + fraction(m)))
			}
			continue
		}
		if m := visFractionRe.FindStringSubmatch(tok); m != nil {
			c.setVisibility(milesToMeters(fraction(m)))
		}
	}
	return c
}

func (c *Conditions) setVisibility(m int) {
	if c.HasVisibility {
		return
	}
	c.VisibilityM = m
	c.HasVisibility = true
}

func fraction(m []string) float64 {
	num, _ := strconv.Atoi(m[1])
	den, _ := strconv.Atoi(m[2])
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func milesToMeters(miles float64) int {
	return int(math.Round(miles * metersPerStatuteMile))
}

// Classify maps report text to a flight category. The most restrictive of
// the ceiling and visibility bands wins; a report with neither is Unknown.
func Classify(report string) FlightCategory {
	return Categorize(Extract(report))
}

// Categorize maps extracted conditions to a flight category.
func Categorize(c Conditions) FlightCategory {
	if !c.HasCeiling && !c.HasVisibility {
		return CategoryUnknown
	}
	cat := VFR
	if c.HasCeiling {
		cat = max(cat, ceilingCategory(c.CeilingFt))
	}
	if c.HasVisibility {
		cat = max(cat, visibilityCategory(c.VisibilityM))
	}
	return cat
}

func ceilingCategory(ft int) FlightCategory {
	switch {
	case ft < 500:
		return LIFR
	case ft < 1000:
		return IFR
	case ft <= 3000:
		return MVFR
	default:
		return VFR
	}
}

func visibilityCategory(m int) FlightCategory {
	switch {
	case m < 1000:
		return LIFR
	case m < 3000:
		return IFR
	case m <= 5000:
		return MVFR
	default:
		return VFR
	}
}

// Describe renders conditions for logs and advisories.
func (c Conditions) Describe() string {
	ceiling, vis := "none", "unknown"
	if c.HasCeiling {
		ceiling = fmt.Sprintf("%d ft", c.CeilingFt)
	}
	if c.HasVisibility {
		vis = fmt.Sprintf("%d m", c.VisibilityM)
	}
	return fmt.Sprintf("ceiling %s, visibility %s", ceiling, vis)
}
