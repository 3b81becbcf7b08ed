package domain

import "context"

// ReportSource supplies the latest official surface report for a station.
type ReportSource interface {
	// LatestReport returns the raw report text, or "" when the station has
	// no current report.
	LatestReport(ctx context.Context, icao string) (string, error)
}
