package hazard

import (
	"testing"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestAssessWind(t *testing.T) {
	tests := []struct {
		name     string
		speed    *float64
		gust     *float64
		expected []string
	}{
		{"no gust", domain.Float(30), nil, nil},
		{"gusty and strong", domain.Float(18.5), domain.Float(55), []string{TagMechanicalTurbulence, TagStructuralLimit}},
		{"at both limits", domain.Float(18.5), domain.Float(37), nil},
		{"strong but steady", domain.Float(35), domain.Float(45), []string{TagStructuralLimit}},
		{"gusty but light", domain.Float(3), domain.Float(25), []string{TagMechanicalTurbulence}},
		{"gust without mean wind", nil, domain.Float(45), []string{TagStructuralLimit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tags []string
			for _, f := range AssessWind(domain.WeatherSample{WindSpeedKmh: tt.speed, WindGustKmh: tt.gust}) {
				tags = append(tags, f.Tag)
			}
			assert.Equal(t, tt.expected, tags)
		})
	}
}
