// Package hazard scores fog, convective and wind risk from weather samples.
// Every assessment carries the findings that produced it so an advisory can
// explain itself.
package hazard

import (
	"fmt"
	"strings"
)

// FogLevel orders fog risk. FogNone means no assessment was possible and is
// distinct from FogBajo.
type FogLevel int

const (
	FogNone FogLevel = iota
	FogBajo
	FogModerado
	FogAlto
)

var fogLevelNames = [...]string{"none", "bajo", "moderado", "alto"}

func (l FogLevel) String() string { return levelName(fogLevelNames[:], int(l)) }

func (l FogLevel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *FogLevel) UnmarshalText(b []byte) error {
	i, err := parseLevel(fogLevelNames[:], string(b))
	if err != nil {
		return fmt.Errorf("fog level: %w", err)
	}
	*l = FogLevel(i)
	return nil
}

// ConvectiveLevel orders convective risk from Nulo to Critico.
type ConvectiveLevel int

const (
	ConvectiveNulo ConvectiveLevel = iota
	ConvectiveBajo
	ConvectiveModerado
	ConvectiveAlto
	ConvectiveCritico
)

var convectiveLevelNames = [...]string{"nulo", "bajo", "moderado", "alto", "critico"}

func (l ConvectiveLevel) String() string { return levelName(convectiveLevelNames[:], int(l)) }

func (l ConvectiveLevel) MarshalText() ([]byte, error) { return []byte(l.String()), nil }

func (l *ConvectiveLevel) UnmarshalText(b []byte) error {
	i, err := parseLevel(convectiveLevelNames[:], string(b))
	if err != nil {
		return fmt.Errorf("convective level: %w", err)
	}
	*l = ConvectiveLevel(i)
	return nil
}

func levelName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("level(%d)", i)
	}
	return names[i]
}

func parseLevel(names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q", s)
}
