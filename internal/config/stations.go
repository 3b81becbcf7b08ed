package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultStation is La Morgal (LEMR), used when no catalog file is given.
var DefaultStation = domain.Station{
	ICAO:             "LEMR",
	Name:             "Aeródromo de La Morgal",
	ElevationM:       180,
	RunwayHeadingA:   100,
	RunwayHeadingB:   280,
	LightWindKt:      5,
	CrosswindLimitKt: 12,
	Timezone:         "Europe/Madrid",
	ReferenceICAO:    "LEAS",
}

// Station defaults applied to catalog entries that leave them unset.
const (
	defaultLightWindKt      = 5
	defaultCrosswindLimitKt = 12
)

// LoadStations reads a YAML catalog of the form
//
//	stations:
//	  - icao: LEMR
//	    elevation_m: 180
//	    runway_heading_a: 100
//	    runway_heading_b: 280
//
// keyed by upper-case ICAO code. An empty path returns the built-in catalog.
func LoadStations(path string) (map[string]domain.Station, error) {
	if path == "" {
		return map[string]domain.Station{DefaultStation.ICAO: DefaultStation}, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load stations %s: %w", path, err)
	}

	var list []domain.Station
	if err := k.UnmarshalWithConf("stations", &list, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode stations %s: %w", path, err)
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("load stations %s: %w", path, errors.New("no stations defined"))
	}

	stations := make(map[string]domain.Station, len(list))
	for i, st := range list {
		st.ICAO = strings.ToUpper(strings.TrimSpace(st.ICAO))
		st.ReferenceICAO = strings.ToUpper(strings.TrimSpace(st.ReferenceICAO))
		if err := validateStation(st); err != nil {
			return nil, fmt.Errorf("stations[%d]: %w", i, err)
		}
		if st.LightWindKt == 0 {
			st.LightWindKt = defaultLightWindKt
		}
		if st.CrosswindLimitKt == 0 {
			st.CrosswindLimitKt = defaultCrosswindLimitKt
		}
		if _, dup := stations[st.ICAO]; dup {
			return nil, fmt.Errorf("stations[%d]: duplicate icao %s", i, st.ICAO)
		}
		stations[st.ICAO] = st
	}
	return stations, nil
}

func validateStation(st domain.Station) error {
	if st.ICAO == "" {
		return errors.New("icao is required")
	}
	for _, h := range []float64{st.RunwayHeadingA, st.RunwayHeadingB} {
		if h < 0 || h > 360 {
			return fmt.Errorf("%s: runway heading %v outside [0, 360]", st.ICAO, h)
		}
	}
	if st.RunwayHeadingA == st.RunwayHeadingB {
		return fmt.Errorf("%s: runway headings must differ", st.ICAO)
	}
	return nil
}
