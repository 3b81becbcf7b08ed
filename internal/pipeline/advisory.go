package pipeline

import (
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	"github.com/couchcryptid/flight-weather-etl/internal/hazard"
	"github.com/couchcryptid/flight-weather-etl/internal/metar"
	"github.com/couchcryptid/flight-weather-etl/internal/runway"
	"github.com/couchcryptid/flight-weather-etl/internal/schedule"
)

// Reference report outcomes.
const (
	ReferenceAvailable   = "aviationweather"
	ReferenceUnavailable = "unavailable"
	ReferenceFailed      = "failed"
	ReferenceDisabled    = "disabled"
)

// Advisory is the flight-weather summary published for one forecast message.
type Advisory struct {
	ID          string    `json:"id"`
	Station     string    `json:"station"`
	StationName string    `json:"station_name,omitempty"`
	Model       string    `json:"model,omitempty"`
	IssuedAt    time.Time `json:"issued_at"`
	ValidAt     time.Time `json:"valid_at"`

	// Report is the synthesized surface report. ReportError is set instead
	// when the sample lacks a required field.
	Report         string               `json:"report,omitempty"`
	ReportError    string               `json:"report_error,omitempty"`
	FlightCategory metar.FlightCategory `json:"flight_category"`
	CeilingFt      *int                 `json:"ceiling_ft,omitempty"`
	VisibilityM    *int                 `json:"visibility_m,omitempty"`

	Reference Reference `json:"reference"`

	Runway       *runway.Recommendation     `json:"runway,omitempty"`
	WindWarnings []domain.Finding           `json:"wind_warnings,omitempty"`
	Fog          hazard.FogAssessment        `json:"fog"`
	Convective   hazard.ConvectiveAssessment `json:"convective"`
	// ConvectiveOutlook is the most severe convective assessment over the
	// next twelve hours of the forecast.
	ConvectiveOutlook hazard.ConvectiveAssessment `json:"convective_outlook"`

	Window schedule.Window `json:"operational_window"`

	ProcessedAt time.Time `json:"processed_at"`
}

// Reference is the official report of a nearby station, classified with the
// same rules as the synthesized one.
type Reference struct {
	Station        string               `json:"station,omitempty"`
	Source         string               `json:"source"`
	Report         string               `json:"report,omitempty"`
	FlightCategory metar.FlightCategory `json:"flight_category"`
	Error          string               `json:"error,omitempty"`
}
