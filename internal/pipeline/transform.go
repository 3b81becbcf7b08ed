package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	"github.com/couchcryptid/flight-weather-etl/internal/hazard"
	"github.com/couchcryptid/flight-weather-etl/internal/metar"
	"github.com/couchcryptid/flight-weather-etl/internal/observability"
	"github.com/couchcryptid/flight-weather-etl/internal/runway"
	"github.com/couchcryptid/flight-weather-etl/internal/schedule"
)

// ErrUnknownStation is returned for forecasts of stations not in the catalog.
var ErrUnknownStation = errors.New("unknown station")

const convectiveOutlook = 12 * time.Hour

// AdvisoryTransformer implements Transformer: it turns a forecast message
// into an Advisory for a catalogued station.
type AdvisoryTransformer struct {
	stations map[string]domain.Station
	reports  domain.ReportSource
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates an AdvisoryTransformer. Pass a nil report source to
// disable reference reports.
func NewTransformer(stations map[string]domain.Station, reports domain.ReportSource, logger *slog.Logger, metrics *observability.Metrics) *AdvisoryTransformer {
	return &AdvisoryTransformer{
		stations: stations,
		reports:  reports,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *AdvisoryTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	p, err := domain.ParseForecast(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	st, ok := t.stations[p.Station]
	if !ok {
		return domain.OutputEvent{}, fmt.Errorf("transform: %w: %s", ErrUnknownStation, p.Station)
	}

	return serializeAdvisory(t.Build(ctx, st, p))
}

// Build derives the advisory for st from a parsed forecast. It never fails:
// missing data degrades the affected section only.
func (t *AdvisoryTransformer) Build(ctx context.Context, st domain.Station, p domain.ForecastPayload) Advisory {
	loc := st.Location()
	cur := p.Current

	adv := Advisory{
		ID:          domain.AdvisoryID(st.ICAO, cur.Time),
		Station:     st.ICAO,
		StationName: st.Name,
		Model:       p.Model,
		IssuedAt:    p.IssuedAt,
		ValidAt:     cur.Time,
	}

	t.encodeReport(&adv, st, cur)
	adv.Reference = t.reference(ctx, st)

	if cur.WindSpeedKmh != nil && cur.WindDirectionDeg != nil {
		rec := runway.ForStation(st).Resolve(
			*cur.WindDirectionDeg,
			domain.KmhToKnotsExact(*cur.WindSpeedKmh),
			st.RunwayHeadingA,
			st.RunwayHeadingB,
		)
		adv.Runway = &rec
	}
	adv.WindWarnings = hazard.AssessWind(cur)

	series := p.Series()
	adv.Fog = hazard.AssessFog(hazard.FogWindow(series, hazard.FogTargetDate(cur.Time, loc), loc), loc)
	adv.Convective = hazard.AssessConvective(cur)
	adv.ConvectiveOutlook = hazard.AssessConvectiveSeries(upcoming(cur, p.Hourly, convectiveOutlook))
	adv.Window = schedule.BestWindow(cur.Time, p.Sunrise, p.Sunset, loc)

	adv.ProcessedAt = domain.Now()

	t.metrics.FlightCategories.WithLabelValues("synthetic", adv.FlightCategory.String()).Inc()
	t.metrics.HazardLevels.WithLabelValues("fog", adv.Fog.Level.String()).Inc()
	t.metrics.HazardLevels.WithLabelValues("convective", adv.Convective.Level.String()).Inc()

	return adv
}

func (t *AdvisoryTransformer) encodeReport(adv *Advisory, st domain.Station, s domain.WeatherSample) {
	if s.UsesHumidityFallback() {
		t.logger.Warn("relative humidity out of range, using conservative dew point",
			"station", st.ICAO, "relative_humidity_pct", *s.RelativeHumidityPct)
		t.metrics.ReportFallbacks.WithLabelValues("humidity_out_of_range").Inc()
	}

	r, err := metar.Encode(s, st.ICAO, st.ElevationM)
	if err != nil {
		t.logger.Info("report not synthesized", "station", st.ICAO, "error", err)
		t.metrics.ReportFallbacks.WithLabelValues("missing_field").Inc()
		adv.ReportError = err.Error()
		return
	}

	adv.Report = r.String()
	c := metar.Extract(adv.Report)
	adv.FlightCategory = metar.Categorize(c)
	if c.HasCeiling {
		adv.CeilingFt = &c.CeilingFt
	}
	if c.HasVisibility {
		adv.VisibilityM = &c.VisibilityM
	}
}

func (t *AdvisoryTransformer) reference(ctx context.Context, st domain.Station) Reference {
	ref := Reference{Station: st.ReferenceICAO, Source: ReferenceDisabled}
	if t.reports == nil || st.ReferenceICAO == "" {
		return ref
	}

	text, err := t.reports.LatestReport(ctx, st.ReferenceICAO)
	switch {
	case err != nil:
		t.logger.Warn("reference report lookup failed", "station", st.ICAO, "reference", st.ReferenceICAO, "error", err)
		ref.Source = ReferenceFailed
		ref.Error = err.Error()
		return ref
	case text == "":
		ref.Source = ReferenceUnavailable
		return ref
	}

	ref.Source = ReferenceAvailable
	ref.Report = text
	ref.FlightCategory = metar.Classify(text)
	t.metrics.FlightCategories.WithLabelValues("reference", ref.FlightCategory.String()).Inc()
	return ref
}

// upcoming returns cur followed by the hourly samples after it within span.
func upcoming(cur domain.WeatherSample, hourly []domain.WeatherSample, span time.Duration) []domain.WeatherSample {
	out := []domain.WeatherSample{cur}
	end := cur.Time.Add(span)
	for _, s := range hourly {
		if s.Time.After(cur.Time) && !s.Time.After(end) {
			out = append(out, s)
		}
	}
	return out
}

// Advisory message headers.
const (
	HeaderStation        = "station"
	HeaderAdvisoryID     = "advisory_id"
	HeaderFlightCategory = "flight_category"
	HeaderValidAt        = "valid_at"
	HeaderProcessedAt    = "processed_at"
)

// serializeAdvisory keys the message by station so one station's advisories
// share a partition.
func serializeAdvisory(adv Advisory) (domain.OutputEvent, error) {
	data, err := json.Marshal(adv)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("serialize advisory: %w", err)
	}
	return domain.OutputEvent{
		Key:   []byte(adv.Station),
		Value: data,
		Headers: map[string]string{
			HeaderStation:        adv.Station,
			HeaderAdvisoryID:     adv.ID,
			HeaderFlightCategory: adv.FlightCategory.String(),
			HeaderValidAt:        adv.ValidAt.UTC().Format(time.RFC3339),
			HeaderProcessedAt:    adv.ProcessedAt.Format(time.RFC3339),
		},
	}, nil
}
