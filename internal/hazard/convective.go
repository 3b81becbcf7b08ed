package hazard

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
)

// ConvectiveAssessment is the convective risk for one sample.
type ConvectiveAssessment = domain.RiskAssessment[ConvectiveLevel]

// Finding tags produced by AssessConvective.
const (
	TagThunderstorm = "thunderstorm"
	TagCAPE         = "cape"
	TagPrecip       = "precipitation"
	TagGustDelta    = "gust_delta"
	TagLiftedIndex  = "lifted_index"
	TagLowCloud     = "low_cloud"
)

const (
	capeStrong = 500.0
	capeNoted  = 250.0

	gustDeltaStrongKt = 8
	gustDeltaNotedKt  = 5

	liStrong = -6.0
	liNoted  = -3.0

	lowCloudStrongPct = 75.0
	lowCloudNotedPct  = 50.0
)

// AssessConvective weighs instability indicators in s. An explicit
// thunderstorm is Critico regardless of the other values. Indicators below
// their threshold but above the noted level are recorded with zero weight.
func AssessConvective(s domain.WeatherSample) ConvectiveAssessment {
	if s.Phenomenon.IsThunderstorm() {
		return ConvectiveAssessment{
			Level: ConvectiveCritico,
			Evidence: []domain.Finding{{
				Tag:    TagThunderstorm,
				Value:  float64(s.Phenomenon.WMOCode()),
				Detail: s.Phenomenon.Token(),
			}},
			Summary: "Riesgo convectivo critico: tormenta prevista",
		}
	}

	var evidence []domain.Finding
	add := func(tag string, value, weight float64, detail string) {
		evidence = append(evidence, domain.Finding{Tag: tag, Value: value, Weight: weight, Detail: detail})
	}

	if s.CAPE != nil {
		switch v := *s.CAPE; {
		case v > capeStrong:
			add(TagCAPE, v, 1, fmt.Sprintf("CAPE %.0f J/kg", v))
		case v >= capeNoted:
			add(TagCAPE, v, 0, fmt.Sprintf("CAPE %.0f J/kg (moderado)", v))
		}
	}
	if s.PrecipitationMM != nil && *s.PrecipitationMM > 0 {
		add(TagPrecip, *s.PrecipitationMM, 1, fmt.Sprintf("precipitación %.1f mm", *s.PrecipitationMM))
	}
	if delta, ok := gustDeltaKt(s); ok {
		switch {
		case delta >= gustDeltaStrongKt:
			add(TagGustDelta, float64(delta), 1, fmt.Sprintf("rachas %d kt sobre el medio", delta))
		case delta >= gustDeltaNotedKt:
			add(TagGustDelta, float64(delta), 0, fmt.Sprintf("rachas %d kt sobre el medio", delta))
		}
	}
	if s.LiftedIndex != nil {
		switch v := *s.LiftedIndex; {
		case v < liStrong:
			add(TagLiftedIndex, v, 1, fmt.Sprintf("índice de elevación %.1f", v))
		case v < liNoted:
			add(TagLiftedIndex, v, 0, fmt.Sprintf("índice de elevación %.1f", v))
		}
	}
	if s.CloudCoverLowPct != nil {
		switch v := *s.CloudCoverLowPct; {
		case v > lowCloudStrongPct:
			add(TagLowCloud, v, 0.5, fmt.Sprintf("nubosidad baja %.0f%%", v))
		case v > lowCloudNotedPct:
			add(TagLowCloud, v, 0, fmt.Sprintf("nubosidad baja %.0f%%", v))
		}
	}

	total := 0.0
	for _, f := range evidence {
		total += f.Weight
	}

	level := ConvectiveNulo
	switch {
	case total >= 3:
		level = ConvectiveCritico
	case total >= 2.5:
		level = ConvectiveAlto
	case total >= 1.5:
		level = ConvectiveModerado
	case len(evidence) > 0:
		level = ConvectiveBajo
	}

	return ConvectiveAssessment{
		Level:    level,
		Evidence: evidence,
		Summary:  convectiveSummary(level, total, evidence),
	}
}

// MostConvective returns the sample most likely to drive convective risk.
// Explicit thunderstorms rank above everything else; within the same rank the
// highest CAPE wins, the latest one on ties. Samples without CAPE are only
// chosen when none in their rank has it, in which case the first of the rank
// is returned. ok is false for an empty slice.
func MostConvective(samples []domain.WeatherSample) (domain.WeatherSample, bool) {
	if len(samples) == 0 {
		return domain.WeatherSample{}, false
	}
	best := 0
	for i := 1; i < len(samples); i++ {
		if moreConvective(samples[i], samples[best]) {
			best = i
		}
	}
	return samples[best], true
}

// moreConvective reports whether s should replace cur as the pick; s comes
// later in the series.
func moreConvective(s, cur domain.WeatherSample) bool {
	sStorm, curStorm := s.Phenomenon.IsThunderstorm(), cur.Phenomenon.IsThunderstorm()
	if sStorm != curStorm {
		return sStorm
	}
	switch {
	case s.CAPE == nil:
		return false
	case cur.CAPE == nil:
		return true
	default:
		return *s.CAPE >= *cur.CAPE
	}
}

// AssessConvectiveSeries assesses every sample and returns the most severe
// result, the earliest one on ties.
func AssessConvectiveSeries(samples []domain.WeatherSample) ConvectiveAssessment {
	worst := ConvectiveAssessment{Summary: "Riesgo convectivo nulo"}
	for i, s := range samples {
		a := AssessConvective(s)
		if i == 0 || a.Level > worst.Level {
			worst = a
		}
	}
	return worst
}

func gustDeltaKt(s domain.WeatherSample) (int, bool) {
	if s.WindGustKmh == nil || s.WindSpeedKmh == nil {
		return 0, false
	}
	return domain.KmhToKnots(*s.WindGustKmh) - domain.KmhToKnots(*s.WindSpeedKmh), true
}

func convectiveSummary(level ConvectiveLevel, total float64, evidence []domain.Finding) string {
	if len(evidence) == 0 {
		return "Riesgo convectivo nulo"
	}
	tags := make([]string, 0, len(evidence))
	for _, f := range evidence {
		if f.Weight > 0 {
			tags = append(tags, f.Tag)
		}
	}
	s := fmt.Sprintf("Riesgo convectivo %s (peso %.1f)", level, total)
	if len(tags) > 0 {
		s += ": " + strings.Join(tags, ", ")
	}
	return s
}
