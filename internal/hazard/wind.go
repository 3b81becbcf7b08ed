package hazard

import (
	"fmt"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
)

// Finding tags produced by AssessWind.
const (
	TagMechanicalTurbulence = "mechanical_turbulence"
	TagStructuralLimit      = "structural_limit"
)

const (
	turbulenceGustDeltaKt = 10
	structuralGustKt      = 20
)

// AssessWind flags gust conditions that limit light aircraft: a gust more
// than 10 kt above the mean wind (mechanical turbulence) and a gust above
// 20 kt. It returns nil when the sample has no gust.
func AssessWind(s domain.WeatherSample) []domain.Finding {
	if s.WindGustKmh == nil {
		return nil
	}
	gust := domain.KmhToKnots(*s.WindGustKmh)

	var findings []domain.Finding
	if delta, ok := gustDeltaKt(s); ok && delta > turbulenceGustDeltaKt {
		findings = append(findings, domain.Finding{
			Tag:    TagMechanicalTurbulence,
			Value:  float64(delta),
			Weight: 1,
			Detail: fmt.Sprintf("rachas %d kt sobre el viento medio: turbulencia mecánica", delta),
		})
	}
	if gust > structuralGustKt {
		findings = append(findings, domain.Finding{
			Tag:    TagStructuralLimit,
			Value:  float64(gust),
			Weight: 1,
			Detail: fmt.Sprintf("rachas de %d kt por encima del límite estructural de ultraligeros", gust),
		})
	}
	return findings
}
