package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/flight-weather-etl/internal/domain"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// Reference report (aviationweather.gov) configuration.
	ReferenceEnabled         bool
	AviationWeatherURL       string
	AviationWeatherTimeout   time.Duration
	AviationWeatherCacheSize int
	AviationWeatherCacheTTL  time.Duration

	// StationsFile is an optional YAML station catalog; empty uses the built-in one.
	StationsFile string
	Stations     map[string]domain.Station
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	awTimeout, err := parsePositiveDuration("AVIATIONWEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	awTTL, err := parsePositiveDuration("AVIATIONWEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}

	referenceEnabled := true
	if v := os.Getenv("REFERENCE_REPORTS_ENABLED"); v != "" {
		referenceEnabled = v == "true"
	}

	stationsFile := os.Getenv("STATIONS_FILE")
	stations, err := LoadStations(stationsFile)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-model-forecasts"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "flight-advisories"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "flight-weather-etl"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		ReferenceEnabled:         referenceEnabled,
		AviationWeatherURL:       sharedcfg.EnvOrDefault("AVIATIONWEATHER_URL", "https://aviationweather.gov/api/data/metar"),
		AviationWeatherTimeout:   awTimeout,
		AviationWeatherCacheSize: parseCacheSize(),
		AviationWeatherCacheTTL:  awTTL,

		StationsFile: stationsFile,
		Stations:     stations,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.ReferenceEnabled && cfg.AviationWeatherURL == "" {
		return nil, errors.New("REFERENCE_REPORTS_ENABLED is true but AVIATIONWEATHER_URL is empty")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseCacheSize() int {
	if s := os.Getenv("AVIATIONWEATHER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 256
}
