package hazard

import (
	"fmt"
	"math"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
)

// FogAssessment is the fog risk over a morning window.
type FogAssessment = domain.RiskAssessment[FogLevel]

const (
	fogMaxPrecipProbPct = 30.0
	fogMaxSpreadC       = 3.0
	fogConfirmedScore   = 5
	fogAtRiskScore      = 2

	// Window bounds in local hours: 22:00 the previous day to 13:00.
	fogWindowStartHour = 22
	fogWindowEndHour   = 13
	// Operational sub-window reported separately.
	fogOpsStartHour = 9
	fogOpsEndHour   = 13
)

// Finding tags produced by AssessFog.
const (
	TagFogPeakHour   = "peak_hour"
	TagFogMinSpread  = "min_spread"
	TagFogConfirmed  = "confirmed_fog"
	TagFogOpsAtRisk  = "at_risk_operational_hour"
	TagFogNoEvidence = "insufficient_data"
)

type fogScore struct {
	sample    domain.WeatherSample
	score     int
	spread    float64
	hasSpread bool
	confirmed bool
}

// AssessFog scores each hourly sample for radiative fog and aggregates the
// window. Local hours in the evidence are rendered in loc (UTC if nil).
// Samples with a precipitation probability above 30% are skipped; when no
// sample can be scored the level is FogNone.
func AssessFog(samples []domain.WeatherSample, loc *time.Location) FogAssessment {
	if loc == nil {
		loc = time.UTC
	}

	scored := make([]fogScore, 0, len(samples))
	for _, s := range samples {
		if fs, ok := scoreFog(s); ok {
			scored = append(scored, fs)
		}
	}

	if len(scored) == 0 {
		return FogAssessment{
			Level:    FogNone,
			Evidence: []domain.Finding{{Tag: TagFogNoEvidence, Detail: "sin muestras evaluables en la ventana"}},
			Summary:  "Niebla: sin evaluación (datos insuficientes)",
		}
	}

	peak := scored[0]
	minSpread := math.Inf(1)
	confirmed := false
	var evidence []domain.Finding
	for _, fs := range scored {
		if fs.score > peak.score {
			peak = fs
		}
		if fs.hasSpread && fs.spread < minSpread {
			minSpread = fs.spread
		}
		if fs.confirmed {
			if !confirmed {
				evidence = append(evidence, domain.Finding{
					Tag:    TagFogConfirmed,
					Value:  float64(fs.score),
					Weight: float64(fs.score),
					Detail: "niebla presente en la previsión",
					Time:   slot(fs.sample.Time, loc),
				})
			}
			confirmed = true
		}
	}

	level := FogBajo
	switch {
	case peak.score < fogAtRiskScore:
	case confirmed || peak.score >= 4:
		level = FogAlto
	case peak.score >= 3:
		level = FogModerado
	}

	evidence = append(evidence, domain.Finding{
		Tag:    TagFogPeakHour,
		Value:  float64(peak.score),
		Weight: float64(peak.score),
		Detail: fmt.Sprintf("puntuación máxima %d", peak.score),
		Time:   slot(peak.sample.Time, loc),
	})
	if !math.IsInf(minSpread, 1) {
		evidence = append(evidence, domain.Finding{
			Tag:    TagFogMinSpread,
			Value:  round1(minSpread),
			Detail: fmt.Sprintf("diferencial T-Td mínimo %.1f °C", minSpread),
		})
	}

	var opsHours []string
	for _, fs := range scored {
		if fs.score < fogAtRiskScore || !inOpsWindow(fs.sample.Time.In(loc)) {
			continue
		}
		ts := slot(fs.sample.Time, loc)
		opsHours = append(opsHours, ts.Hour)
		evidence = append(evidence, domain.Finding{
			Tag:    TagFogOpsAtRisk,
			Value:  float64(fs.score),
			Weight: float64(fs.score),
			Time:   ts,
		})
	}

	return FogAssessment{
		Level:    level,
		Evidence: evidence,
		Summary:  fogSummary(level, peak, loc, opsHours),
	}
}

func scoreFog(s domain.WeatherSample) (fogScore, bool) {
	if s.PrecipitationProbabilityPct != nil && *s.PrecipitationProbabilityPct > fogMaxPrecipProbPct {
		return fogScore{}, false
	}

	fs := fogScore{sample: s}
	if spread, ok := s.Spread(); ok {
		fs.spread, fs.hasSpread = spread, true
	}

	if s.Phenomenon.IsFog() {
		fs.score = fogConfirmedScore
		fs.confirmed = true
		return fs, true
	}
	if !fs.hasSpread {
		return fogScore{}, false
	}
	if fs.spread > fogMaxSpreadC {
		return fs, true
	}

	switch {
	case fs.spread <= 2:
		fs.score += 2
	default:
		fs.score++
	}
	if s.WindSpeedKmh != nil {
		switch w := *s.WindSpeedKmh; {
		case w <= 5:
			fs.score += 2
		case w <= 10:
			fs.score++
		}
	}
	if s.VisibilityKm != nil {
		switch v := *s.VisibilityKm; {
		case v < 1:
			fs.score += 2
		case v < 5:
			fs.score++
		}
	}
	return fs, true
}

// FogWindow returns the samples between 22:00 the day before target and
// 13:00 on target's date, both inclusive, in loc (UTC if nil).
func FogWindow(samples []domain.WeatherSample, target time.Time, loc *time.Location) []domain.WeatherSample {
	if loc == nil {
		loc = time.UTC
	}
	t := target.In(loc)
	end := time.Date(t.Year(), t.Month(), t.Day(), fogWindowEndHour, 0, 0, 0, loc)
	start := time.Date(t.Year(), t.Month(), t.Day()-1, fogWindowStartHour, 0, 0, 0, loc)

	var out []domain.WeatherSample
	for _, s := range samples {
		if s.Time.Before(start) || s.Time.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FogTargetDate is the morning a window should cover at now: today before
// 13:00 local, tomorrow after.
func FogTargetDate(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	t := now.In(loc)
	if t.Hour() >= fogWindowEndHour {
		t = t.AddDate(0, 0, 1)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

func inOpsWindow(t time.Time) bool {
	h := t.Hour()
	if h == fogOpsEndHour {
		return t.Minute() == 0
	}
	return h >= fogOpsStartHour && h < fogOpsEndHour
}

func fogSummary(level FogLevel, peak fogScore, loc *time.Location, opsHours []string) string {
	s := fmt.Sprintf("Riesgo de niebla %s (pico %s, puntuación %d)",
		level, peak.sample.Time.In(loc).Format("15:04"), peak.score)
	if len(opsHours) > 0 {
		s += fmt.Sprintf("; %d hora(s) en horario operativo", len(opsHours))
	}
	return s
}

func slot(t time.Time, loc *time.Location) *domain.TimeSlot {
	lt := t.In(loc)
	return &domain.TimeSlot{Hour: lt.Format("15:04"), Date: lt.Format("2006-01-02")}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
