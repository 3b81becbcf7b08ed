package domain

import (
	"context"
	"sort"
	"time"
)

// ForecastPayload is the JSON message produced by the collector for one
// station and one model run.
type ForecastPayload struct {
	Station  string          `json:"station"`
	Model    string          `json:"model,omitempty"`
	IssuedAt time.Time       `json:"issued_at"`
	Current  WeatherSample   `json:"current"`
	Hourly   []WeatherSample `json:"hourly,omitempty"`

	// Optional sun times for the target day, used for the operational window.
	Sunrise *time.Time `json:"sunrise,omitempty"`
	Sunset  *time.Time `json:"sunset,omitempty"`
}

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Series returns the current sample merged into the hourly samples, ordered
// by time with one sample per instant. An hourly sample wins over the current
// one at the same instant.
func (p ForecastPayload) Series() []WeatherSample {
	all := make([]WeatherSample, 0, len(p.Hourly)+1)
	all = append(all, p.Hourly...)
	all = append(all, p.Current)
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Time.Before(all[j].Time)
	})

	out := all[:0]
	for _, s := range all {
		if n := len(out); n > 0 && out[n-1].Time.Equal(s.Time) {
			continue
		}
		out = append(out, s)
	}
	return out
}
