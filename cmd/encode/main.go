// Command encode derives a flight-weather summary from a forecast file
// without Kafka. It prints the synthesized report, its flight category, the
// runway pick and the fog and convective assessments.
//
// Usage:
//
//	go run ./cmd/encode -forecast testdata/forecast.json [-stations stations.yaml] [-json]
//	go run ./cmd/encode -classify "LEAS 040700Z 00000KT 0300 FG VV001 09/09 Q1022"
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/couchcryptid/flight-weather-etl/internal/config"
	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	"github.com/couchcryptid/flight-weather-etl/internal/hazard"
	"github.com/couchcryptid/flight-weather-etl/internal/metar"
	"github.com/couchcryptid/flight-weather-etl/internal/runway"
	"github.com/couchcryptid/flight-weather-etl/internal/schedule"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// summary is the CLI's view of one forecast.
type summary struct {
	Station        string                      `json:"station"`
	Report         string                      `json:"report,omitempty"`
	ReportError    string                      `json:"report_error,omitempty"`
	FlightCategory metar.FlightCategory        `json:"flight_category"`
	Conditions     string                      `json:"conditions"`
	Runway         *runway.Recommendation      `json:"runway,omitempty"`
	Fog            hazard.FogAssessment        `json:"fog"`
	Convective     hazard.ConvectiveAssessment `json:"convective"`
	ConvectivePeak *domain.WeatherSample       `json:"convective_peak,omitempty"`
	Window         schedule.Window             `json:"operational_window"`
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(out)
	forecastPath := fs.String("forecast", "", "path to a forecast JSON message")
	stationsPath := fs.String("stations", "", "optional YAML station catalog")
	classify := fs.String("classify", "", "classify a report instead of encoding a forecast")
	asJSON := fs.Bool("json", false, "print JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *classify != "" {
		c := metar.Extract(*classify)
		fmt.Fprintf(out, "%s (%s)\n", metar.Categorize(c), c.Describe())
		return nil
	}
	if *forecastPath == "" {
		fs.Usage()
		return errors.New("missing required flag: -forecast or -classify")
	}

	stations, err := config.LoadStations(*stationsPath)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(*forecastPath)
	if err != nil {
		return fmt.Errorf("read forecast: %w", err)
	}
	p, err := domain.ParseForecast(domain.RawEvent{Value: data})
	if err != nil {
		return err
	}
	st, ok := stations[p.Station]
	if !ok {
		return fmt.Errorf("station %s not in catalog", p.Station)
	}

	s := summarize(st, p)
	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	}
	printSummary(out, s)
	return nil
}

func summarize(st domain.Station, p domain.ForecastPayload) summary {
	loc := st.Location()
	cur := p.Current
	s := summary{Station: st.ICAO}

	if r, err := metar.Encode(cur, st.ICAO, st.ElevationM); err != nil {
		s.ReportError = err.Error()
	} else {
		s.Report = r.String()
	}
	c := metar.Extract(s.Report)
	s.FlightCategory = metar.Categorize(c)
	s.Conditions = c.Describe()

	if cur.WindSpeedKmh != nil && cur.WindDirectionDeg != nil {
		rec := runway.ForStation(st).Resolve(*cur.WindDirectionDeg, domain.KmhToKnotsExact(*cur.WindSpeedKmh),
			st.RunwayHeadingA, st.RunwayHeadingB)
		s.Runway = &rec
	}

	series := p.Series()
	s.Fog = hazard.AssessFog(hazard.FogWindow(series, hazard.FogTargetDate(cur.Time, loc), loc), loc)
	if peak, ok := hazard.MostConvective(series); ok {
		s.ConvectivePeak = &peak
		s.Convective = hazard.AssessConvective(peak)
	}
	s.Window = schedule.BestWindow(cur.Time, p.Sunrise, p.Sunset, loc)
	return s
}

func printSummary(out io.Writer, s summary) {
	if s.Report != "" {
		fmt.Fprintf(out, "METAR      %s\n", s.Report)
	} else {
		fmt.Fprintf(out, "METAR      no disponible: %s\n", s.ReportError)
	}
	fmt.Fprintf(out, "Categoría  %s (%s)\n", s.FlightCategory, s.Conditions)
	if s.Runway != nil {
		line := fmt.Sprintf("Pista      %s (viento cara %.1f kt, cruzado %.1f kt)",
			s.Runway.Recommended.Designator, s.Runway.Recommended.HeadwindKt, s.Runway.Recommended.CrosswindKt)
		if s.Runway.Note != "" {
			line += "; " + s.Runway.Note
		}
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Niebla     %s: %s\n", s.Fog.Level, s.Fog.Summary)
	fmt.Fprintf(out, "Convección %s: %s\n", s.Convective.Level, s.Convective.Summary)
	if len(s.Convective.Evidence) > 0 {
		details := make([]string, 0, len(s.Convective.Evidence))
		for _, f := range s.Convective.Evidence {
			details = append(details, f.Detail)
		}
		fmt.Fprintf(out, "           %s\n", strings.Join(details, ", "))
	}
	fmt.Fprintf(out, "Ventana    %s\n", s.Window.Text)
}
