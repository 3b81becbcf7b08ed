package aviationweather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- mock for cache tests ---

type countingSource struct {
	calls  int
	report string
	err    error
}

func (m *countingSource) LatestReport(_ context.Context, _ string) (string, error) {
	m.calls++
	return m.report, m.err
}

// --- CachedSource tests ---

func TestCachedSource_CacheHit(t *testing.T) {
	inner := &countingSource{report: leasReport}
	metrics := observability.NewMetricsForTesting()
	cached := NewCachedSource(inner, 10, time.Minute, clockwork.NewFakeClock(), metrics)

	r1, err := cached.LatestReport(context.Background(), "LEAS")
	require.NoError(t, err)
	r2, err := cached.LatestReport(context.Background(), "leas")
	require.NoError(t, err)

	assert.Equal(t, leasReport, r1)
	assert.Equal(t, leasReport, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReferenceCache.WithLabelValues("hit")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(metrics.ReferenceCache.WithLabelValues("miss")), 0)
}

func TestCachedSource_Expiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &countingSource{report: leasReport}
	cached := NewCachedSource(inner, 10, 10*time.Minute, clock, observability.NewMetricsForTesting())

	_, _ = cached.LatestReport(context.Background(), "LEAS")
	clock.Advance(9 * time.Minute)
	_, _ = cached.LatestReport(context.Background(), "LEAS")
	assert.Equal(t, 1, inner.calls)

	clock.Advance(time.Minute)
	_, _ = cached.LatestReport(context.Background(), "LEAS")
	assert.Equal(t, 2, inner.calls, "entry should expire at the TTL")
}

func TestCachedSource_EmptyNotCached(t *testing.T) {
	inner := &countingSource{}
	cached := NewCachedSource(inner, 10, time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

	_, _ = cached.LatestReport(context.Background(), "XXXX")
	_, _ = cached.LatestReport(context.Background(), "XXXX")

	assert.Equal(t, 2, inner.calls)
}

func TestCachedSource_ErrorPassesThrough(t *testing.T) {
	inner := &countingSource{err: errors.New("boom")}
	cached := NewCachedSource(inner, 10, time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

	_, err := cached.LatestReport(context.Background(), "LEAS")
	require.Error(t, err)
	assert.Equal(t, 0, cached.cache.len())
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3, time.Minute, clockwork.NewFakeClock())

	c.put("a", "A")
	c.put("b", "B")

	value, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A", value)

	_, ok = c.get("missing")
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2, time.Minute, clockwork.NewFakeClock())

	c.put("a", "A")
	c.put("b", "B")
	c.put("c", "C") // evicts "a"

	_, ok := c.get("a")
	assert.False(t, ok, "a should have been evicted")

	value, ok := c.get("b")
	assert.True(t, ok)
	assert.Equal(t, "B", value)

	value, ok = c.get("c")
	assert.True(t, ok)
	assert.Equal(t, "C", value)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2, time.Minute, clockwork.NewFakeClock())

	c.put("a", "A")
	c.put("b", "B")

	c.get("a")

	// "b" is now least recently used.
	c.put("c", "C")

	_, ok := c.get("a")
	assert.True(t, ok, "a was accessed recently, should not be evicted")

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_UpdateExistingRefreshesExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newLRUCache(2, time.Minute, clock)

	c.put("a", "A1")
	clock.Advance(50 * time.Second)
	c.put("a", "A2")
	clock.Advance(50 * time.Second)

	value, ok := c.get("a")
	assert.True(t, ok)
	assert.Equal(t, "A2", value)
	assert.Equal(t, 1, c.len())
}

func TestLRUCache_ExpiredEntryIsRemoved(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newLRUCache(2, time.Minute, clock)

	c.put("a", "A")
	c.put("b", "B")
	clock.Advance(time.Minute)

	_, ok := c.get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.len())

	c.put("c", "C")
	_, ok = c.get("c")
	assert.True(t, ok)
}
