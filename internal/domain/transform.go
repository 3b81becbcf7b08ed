package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// ErrMissingStation is returned when a payload names no station.
var ErrMissingStation = errors.New("missing station")

// ParseForecast deserializes a RawEvent's value into a ForecastPayload and
// normalizes it: the station code is upper-cased, a missing current-sample
// time falls back to the message timestamp, hourly samples are sorted by time,
// and every sample is validated.
func ParseForecast(raw RawEvent) (ForecastPayload, error) {
	var p ForecastPayload
	if err := json.Unmarshal(raw.Value, &p); err != nil {
		return ForecastPayload{}, fmt.Errorf("parse forecast: %w", err)
	}

	p.Station = strings.ToUpper(strings.TrimSpace(p.Station))
	if p.Station == "" {
		return ForecastPayload{}, fmt.Errorf("parse forecast: %w", ErrMissingStation)
	}
	if p.Current.Time.IsZero() {
		p.Current.Time = raw.Timestamp
	}
	if p.IssuedAt.IsZero() {
		p.IssuedAt = raw.Timestamp
	}

	if err := p.Current.Validate(); err != nil {
		return ForecastPayload{}, fmt.Errorf("parse forecast: current: %w", err)
	}
	for i := range p.Hourly {
		if err := p.Hourly[i].Validate(); err != nil {
			return ForecastPayload{}, fmt.Errorf("parse forecast: hourly[%d]: %w", i, err)
		}
	}
	sort.SliceStable(p.Hourly, func(i, j int) bool {
		return p.Hourly[i].Time.Before(p.Hourly[j].Time)
	})

	return p, nil
}

// AdvisoryID produces a deterministic ID from the station and sample time.
// Reprocessing the same forecast yields the same ID, so downstream upserts
// stay idempotent.
func AdvisoryID(station string, at time.Time) string {
	input := fmt.Sprintf("%s|%s", station, at.UTC().Format(time.RFC3339))
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	if station == "" {
		return short
	}
	return strings.ToLower(station) + "-" + short
}
