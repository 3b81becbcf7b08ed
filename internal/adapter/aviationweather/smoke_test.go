//go:build aviationweather

package aviationweather

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/metar"
	"github.com/couchcryptid/flight-weather-etl/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real aviationweather.gov API.
// Run with: go test -tags=aviationweather ./internal/adapter/aviationweather/ -v -count=1

func smokeClient() *Client {
	return NewClient(
		"https://aviationweather.gov/api/data/metar",
		10*time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		observability.NewMetricsForTesting(),
	)
}

func TestSmoke_LatestReport(t *testing.T) {
	c := smokeClient()

	report, err := c.LatestReport(context.Background(), "LEAS")
	require.NoError(t, err)
	require.NotEmpty(t, report, "LEAS should have a current report")

	assert.Contains(t, report, "LEAS")
	assert.NotEqual(t, metar.CategoryUnknown, metar.Classify(report))
	t.Logf("LEAS: %s (%s)", report, metar.Classify(report))
}

func TestSmoke_UnknownStation(t *testing.T) {
	c := smokeClient()

	report, err := c.LatestReport(context.Background(), "ZZZZ")
	if err != nil {
		t.Logf("unknown station returned error: %v", err)
		return
	}
	assert.Empty(t, report)
}
