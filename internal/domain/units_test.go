package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDewpointFromHumidity(t *testing.T) {
	tests := []struct {
		name     string
		temp     float64
		rh       float64
		expected float64
	}{
		{"mild half humidity", 20, 50, 9.25},
		{"saturated", 12, 100, 12},
		{"cold moist", -5, 80, -7.9},
		{"zero humidity falls back", 15, 0, 10},
		{"negative humidity falls back", 15, -3, 10},
		{"humidity above 100 falls back", 15, 120, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, DewpointFromHumidity(tt.temp, tt.rh), 0.05)
		})
	}
}

func TestHumidityInRange(t *testing.T) {
	assert.False(t, HumidityInRange(0))
	assert.True(t, HumidityInRange(0.5))
	assert.True(t, HumidityInRange(100))
	assert.False(t, HumidityInRange(100.1))
}

func TestKmhToKnots(t *testing.T) {
	tests := []struct {
		kmh      float64
		expected int
	}{
		{0, 0},
		{2.78, 2},
		{10, 5},
		{33.8, 18},
		{100, 54},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, KmhToKnots(tt.kmh), "kmh=%v", tt.kmh)
	}
	assert.InDelta(t, 18.25, KmhToKnotsExact(33.8), 0.01)
}

func TestNormalizeAngleDelta(t *testing.T) {
	tests := []struct {
		name     string
		wind     float64
		heading  float64
		expected float64
	}{
		{"slightly left of runway", 270, 280, -10},
		{"nearly opposite", 270, 100, 170},
		{"exactly opposite folds to +180", 0, 180, 180},
		{"across north from the left", 10, 350, 20},
		{"across north from the right", 350, 10, -20},
		{"aligned", 280, 280, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAngleDelta(tt.wind, tt.heading)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.Greater(t, got, -180.0)
			assert.LessOrEqual(t, got, 180.0)
		})
	}
}

func TestWindFromVector(t *testing.T) {
	t.Run("northerly", func(t *testing.T) {
		speed, dir := WindFromVector(0, -5)
		assert.InDelta(t, 18, speed, 1e-9)
		assert.InDelta(t, 0, dir, 1e-9)
	})

	t.Run("easterly", func(t *testing.T) {
		speed, dir := WindFromVector(-5, 0)
		assert.InDelta(t, 18, speed, 1e-9)
		assert.InDelta(t, 90, dir, 1e-9)
	})

	t.Run("south-westerly", func(t *testing.T) {
		_, dir := WindFromVector(3, 3)
		assert.InDelta(t, 225, dir, 1e-9)
	})
}
