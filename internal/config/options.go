package config

import (
	"os"
	"strconv"
	"time"
)

// Options are the tracker knobs that don't belong to the database DSN.
type Options struct {
	// ServiceIntervalKm is the odometer distance between services used by
	// the next-service estimate.
	ServiceIntervalKm float64
	// ToastTTL is how long a toast notification stays visible.
	ToastTTL time.Duration
	// ActivityFeedSize is how many entries the dashboard activity feed shows.
	ActivityFeedSize int
}

// LoadOptions reads the tracker options from the environment with defaults.
func LoadOptions() Options {
	return Options{
		ServiceIntervalKm: getEnvFloat("SERVICE_INTERVAL_KM", 5000),
		ToastTTL:          getEnvDuration("TOAST_TTL", 3*time.Second),
		ActivityFeedSize:  getEnvInt("ACTIVITY_FEED_SIZE", 5),
	}
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
