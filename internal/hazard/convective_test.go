package hazard

import (
	"testing"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssessConvective_UnstableShowerIsCritico(t *testing.T) {
	s := domain.WeatherSample{
		CAPE:             domain.Float(600),
		PrecipitationMM:  domain.Float(1.0),
		WindSpeedKmh:     domain.Float(18.52), // 10 kt
		WindGustKmh:      domain.Float(37.04), // 20 kt
		CloudCoverLowPct: domain.Float(80),
		LiftedIndex:      domain.Float(-4),
	}

	a := AssessConvective(s)

	assert.Equal(t, ConvectiveCritico, a.Level)
	for _, tag := range []string{TagCAPE, TagPrecip, TagGustDelta, TagLowCloud, TagLiftedIndex} {
		_, ok := a.Finding(tag)
		assert.True(t, ok, tag)
	}
	li, _ := a.Finding(TagLiftedIndex)
	assert.Zero(t, li.Weight)
	assert.InDelta(t, -4, li.Value, 0)
	gust, _ := a.Finding(TagGustDelta)
	assert.InDelta(t, 10, gust.Value, 0)
}

func TestAssessConvective_ThunderstormOverrides(t *testing.T) {
	for _, code := range []int{95, 96, 99} {
		s := domain.WeatherSample{
			Phenomenon: domain.PhenomenonFromWMO(code),
			CAPE:       domain.Float(0),
		}
		a := AssessConvective(s)
		assert.Equal(t, ConvectiveCritico, a.Level, "code %d", code)
		require.Len(t, a.Evidence, 1)
		assert.Equal(t, TagThunderstorm, a.Evidence[0].Tag)
	}
}

func TestAssessConvective_Levels(t *testing.T) {
	tests := []struct {
		name     string
		sample   domain.WeatherSample
		expected ConvectiveLevel
	}{
		{"nothing", domain.WeatherSample{}, ConvectiveNulo},
		{"stable values", domain.WeatherSample{CAPE: domain.Float(100), LiftedIndex: domain.Float(2), CloudCoverLowPct: domain.Float(20)}, ConvectiveNulo},
		{"noted only", domain.WeatherSample{CAPE: domain.Float(300)}, ConvectiveBajo},
		{"low cloud only", domain.WeatherSample{CloudCoverLowPct: domain.Float(90)}, ConvectiveBajo},
		{"single indicator", domain.WeatherSample{PrecipitationMM: domain.Float(0.4)}, ConvectiveBajo},
		{"cape and cloud", domain.WeatherSample{CAPE: domain.Float(800), CloudCoverLowPct: domain.Float(90)}, ConvectiveModerado},
		{"cape and rain", domain.WeatherSample{CAPE: domain.Float(800), PrecipitationMM: domain.Float(2)}, ConvectiveModerado},
		{"cape, rain and cloud", domain.WeatherSample{CAPE: domain.Float(800), PrecipitationMM: domain.Float(2), CloudCoverLowPct: domain.Float(76)}, ConvectiveAlto},
		{"three full indicators", domain.WeatherSample{CAPE: domain.Float(800), PrecipitationMM: domain.Float(2), LiftedIndex: domain.Float(-7)}, ConvectiveCritico},
		{"zero precipitation is not evidence", domain.WeatherSample{PrecipitationMM: domain.Float(0)}, ConvectiveNulo},
		{"gust delta noted", domain.WeatherSample{WindSpeedKmh: domain.Float(18.52), WindGustKmh: domain.Float(29.63)}, ConvectiveBajo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AssessConvective(tt.sample).Level)
		})
	}
}

func TestMostConvective(t *testing.T) {
	_, ok := MostConvective(nil)
	assert.False(t, ok)

	samples := []domain.WeatherSample{
		{PrecipitationMM: domain.Float(1)},
		{CAPE: domain.Float(300), PrecipitationMM: domain.Float(2)},
		{CAPE: domain.Float(700), PrecipitationMM: domain.Float(3)},
		{CAPE: domain.Float(700), PrecipitationMM: domain.Float(4)},
		{CAPE: domain.Float(100)},
	}
	got, ok := MostConvective(samples)
	require.True(t, ok)
	assert.InDelta(t, 4, *got.PrecipitationMM, 0)

	got, ok = MostConvective(samples[:1])
	require.True(t, ok)
	assert.InDelta(t, 1, *got.PrecipitationMM, 0)
}

func TestMostConvective_ThunderstormFirst(t *testing.T) {
	storm := domain.PhenomenonFromWMO(95)
	samples := []domain.WeatherSample{
		{CAPE: domain.Float(300), PrecipitationMM: domain.Float(1)},
		{Phenomenon: storm, PrecipitationMM: domain.Float(2)},
		{CAPE: domain.Float(1200), PrecipitationMM: domain.Float(3)},
		{Phenomenon: storm, PrecipitationMM: domain.Float(4)},
	}

	got, ok := MostConvective(samples)
	require.True(t, ok)
	assert.True(t, got.Phenomenon.IsThunderstorm())
	assert.InDelta(t, 2, *got.PrecipitationMM, 0, "first storm when none carries CAPE")
	assert.Equal(t, ConvectiveCritico, AssessConvective(got).Level)

	samples[3].CAPE = domain.Float(50)
	got, _ = MostConvective(samples)
	assert.InDelta(t, 4, *got.PrecipitationMM, 0, "storm with CAPE ranks above storm without")
}

func TestAssessConvectiveSeries(t *testing.T) {
	assert.Equal(t, ConvectiveNulo, AssessConvectiveSeries(nil).Level)

	a := AssessConvectiveSeries([]domain.WeatherSample{
		{CAPE: domain.Float(300)},
		{Phenomenon: domain.PhenomenonFromWMO(95)},
		{CAPE: domain.Float(900)},
	})
	assert.Equal(t, ConvectiveCritico, a.Level)
}
