package hazard

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cet = time.FixedZone("CET", 3600)

func at(day, hour int) time.Time {
	return time.Date(2025, 11, day, hour, 0, 0, 0, cet)
}

// foggy builds a sample with the given spread, wind and precipitation probability.
func foggy(ts time.Time, spread, windKmh, precipProb float64) domain.WeatherSample {
	return domain.WeatherSample{
		Time:                        ts,
		TemperatureC:                domain.Float(12),
		DewpointC:                   domain.Float(12 - spread),
		WindSpeedKmh:                domain.Float(windKmh),
		PrecipitationProbabilityPct: domain.Float(precipProb),
	}
}

func TestAssessFog_MorningRadiationFogIsAlto(t *testing.T) {
	s := domain.WeatherSample{
		Time:                        at(16, 9),
		TemperatureC:                domain.Float(12),
		DewpointC:                   domain.Float(11.5),
		CloudCoverLowPct:            domain.Float(95),
		PrecipitationProbabilityPct: domain.Float(5),
		WindSpeedKmh:                domain.Float(3),
	}

	a := AssessFog([]domain.WeatherSample{s}, cet)

	assert.Equal(t, FogAlto, a.Level)
	peak, ok := a.Finding(TagFogPeakHour)
	require.True(t, ok)
	assert.InDelta(t, 4, peak.Value, 0)
	assert.Equal(t, "09:00", peak.Time.Hour)
	assert.Equal(t, "2025-11-16", peak.Time.Date)

	spread, ok := a.Finding(TagFogMinSpread)
	require.True(t, ok)
	assert.InDelta(t, 0.5, spread.Value, 1e-9)

	ops, ok := a.Finding(TagFogOpsAtRisk)
	require.True(t, ok)
	assert.Equal(t, "09:00", ops.Time.Hour)
	assert.Contains(t, a.Summary, "alto")
}

func TestAssessFog_Levels(t *testing.T) {
	tests := []struct {
		name     string
		sample   domain.WeatherSample
		expected FogLevel
	}{
		{"wide spread scores nothing", foggy(at(16, 8), 4, 2, 0), FogBajo},
		{"spread 2.5 and breeze", foggy(at(16, 8), 2.5, 8, 0), FogBajo},
		{"spread 2.5 and calm", foggy(at(16, 8), 2.5, 3, 0), FogModerado},
		{"spread 2 and strong wind", foggy(at(16, 8), 2, 25, 0), FogBajo},
		{"spread 1.5, breeze and haze", withVisibility(foggy(at(16, 8), 1.5, 8, 0), 4), FogAlto},
		{"spread 2.8, wind and dense haze", withVisibility(foggy(at(16, 8), 2.8, 12, 0), 0.6), FogModerado},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AssessFog([]domain.WeatherSample{tt.sample}, cet)
			assert.Equal(t, tt.expected, a.Level)
		})
	}
}

func TestAssessFog_NoAssessment(t *testing.T) {
	t.Run("empty window", func(t *testing.T) {
		a := AssessFog(nil, cet)
		assert.Equal(t, FogNone, a.Level)
		_, ok := a.Finding(TagFogNoEvidence)
		assert.True(t, ok)
	})

	t.Run("all samples precipitating", func(t *testing.T) {
		a := AssessFog([]domain.WeatherSample{
			foggy(at(16, 6), 0.2, 2, 60),
			foggy(at(16, 7), 0.2, 2, 31),
		}, cet)
		assert.Equal(t, FogNone, a.Level)
	})

	t.Run("no temperature or dew point", func(t *testing.T) {
		a := AssessFog([]domain.WeatherSample{{Time: at(16, 6)}}, cet)
		assert.Equal(t, FogNone, a.Level)
	})

	t.Run("precipitation probability of exactly 30 is scored", func(t *testing.T) {
		a := AssessFog([]domain.WeatherSample{foggy(at(16, 6), 0.2, 2, 30)}, cet)
		assert.Equal(t, FogAlto, a.Level)
	})
}

func TestAssessFog_ExplicitFogIsAlwaysAlto(t *testing.T) {
	fog := domain.PhenomenonFromWMO(45)
	variants := []domain.WeatherSample{
		{Time: at(16, 5), Phenomenon: fog},
		{Time: at(16, 5), Phenomenon: fog, TemperatureC: domain.Float(15), DewpointC: domain.Float(5)},
		{Time: at(16, 5), Phenomenon: fog, WindSpeedKmh: domain.Float(40), PrecipitationProbabilityPct: domain.Float(10)},
	}

	for _, s := range variants {
		window := []domain.WeatherSample{foggy(at(16, 3), 5, 20, 0), s, foggy(at(16, 7), 6, 30, 0)}
		a := AssessFog(window, cet)
		assert.True(t, a.AtLeast(FogAlto))
		confirmed, ok := a.Finding(TagFogConfirmed)
		require.True(t, ok)
		assert.Equal(t, "05:00", confirmed.Time.Hour)
	}
}

func TestAssessFog_OperationalHoursSubset(t *testing.T) {
	window := []domain.WeatherSample{
		foggy(at(16, 2), 2.5, 8, 0),  // at risk, before operations
		foggy(at(16, 7), 0.5, 3, 0),  // peak, before operations
		foggy(at(16, 10), 2.5, 8, 0), // at risk
		foggy(at(16, 11), 5, 3, 0),   // not at risk
		foggy(at(16, 13), 2.5, 3, 0), // at risk, last hour of the window
	}

	a := AssessFog(window, cet)

	var hours []string
	for _, f := range a.Evidence {
		if f.Tag == TagFogOpsAtRisk {
			hours = append(hours, f.Time.Hour)
		}
	}
	assert.Equal(t, []string{"10:00", "13:00"}, hours)

	peak, _ := a.Finding(TagFogPeakHour)
	assert.Equal(t, "07:00", peak.Time.Hour)
	assert.Equal(t, FogAlto, a.Level)
}

func TestFogWindow(t *testing.T) {
	var samples []domain.WeatherSample
	for ts := at(15, 18); !ts.After(at(16, 18)); ts = ts.Add(time.Hour) {
		samples = append(samples, domain.WeatherSample{Time: ts.UTC()})
	}

	window := FogWindow(samples, at(16, 0), cet)

	require.Len(t, window, 16)
	assert.True(t, window[0].Time.Equal(at(15, 22)))
	assert.True(t, window[len(window)-1].Time.Equal(at(16, 13)))
}

func TestFogTargetDate(t *testing.T) {
	assert.Equal(t, at(16, 0), FogTargetDate(at(16, 6), cet))
	assert.Equal(t, at(16, 0), FogTargetDate(at(16, 12).Add(59*time.Minute), cet))
	assert.Equal(t, at(17, 0), FogTargetDate(at(16, 13), cet))
}

func TestFogLevel_Text(t *testing.T) {
	b, err := json.Marshal(FogModerado)
	require.NoError(t, err)
	assert.JSONEq(t, `"moderado"`, string(b))

	var l FogLevel
	require.NoError(t, json.Unmarshal([]byte(`"alto"`), &l))
	assert.Equal(t, FogAlto, l)
	assert.Error(t, json.Unmarshal([]byte(`"extreme"`), &l))

	assert.Less(t, int(FogNone), int(FogBajo))
	assert.Less(t, int(FogModerado), int(FogAlto))
}

func withVisibility(s domain.WeatherSample, km float64) domain.WeatherSample {
	s.VisibilityKm = domain.Float(km)
	return s
}
