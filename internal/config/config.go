package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	// DefaultLogLevel controls verbosity for core logs.
	DefaultLogLevel = "info"
	// DefaultLogPath is where structured logs are written.
	DefaultLogPath = "vdyncore.log"
	// DefaultLogMaxSizeMB caps the size of a single log file before rotation.
	DefaultLogMaxSizeMB = 100
	// DefaultLogMaxBackups limits retained rotated log files.
	DefaultLogMaxBackups = 10
	// DefaultLogMaxAgeDays controls how long rotated log files are kept on disk.
	DefaultLogMaxAgeDays = 7
	// DefaultLogCompress toggles gzip compression for rotated log files.
	DefaultLogCompress = true

	// DefaultTelemetryDir is where recorded telemetry sessions are written.
	DefaultTelemetryDir = "telemetry"
	// DefaultTelemetryFrameIntervalMS sets the spacing between recorded
	// CarState/DriftMetrics frame snapshots, in milliseconds.
	DefaultTelemetryFrameIntervalMS = 200
)

// Config captures the runtime tunables for the simulation core: how it
// logs and where it records telemetry. It has no networking, transport, or
// session surface of its own — the core is an embedded library, not a
// service.
type Config struct {
	Logging   LoggingConfig
	Telemetry TelemetryConfig
}

// LoggingConfig captures structured logging configuration options.
type LoggingConfig struct {
	Level      string
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// TelemetryConfig controls where and how often the recorder writes
// compressed session telemetry.
type TelemetryConfig struct {
	OutputDir       string
	FrameIntervalMS int
}

// Load reads the core configuration from environment variables, applying
// sane defaults and returning a single error accumulating every invalid
// override.
func Load() (*Config, error) {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:      strings.TrimSpace(getString("VDYN_LOG_LEVEL", DefaultLogLevel)),
			Path:       strings.TrimSpace(getString("VDYN_LOG_PATH", DefaultLogPath)),
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
			MaxAgeDays: DefaultLogMaxAgeDays,
			Compress:   DefaultLogCompress,
		},
		Telemetry: TelemetryConfig{
			OutputDir:       strings.TrimSpace(getString("VDYN_TELEMETRY_DIR", DefaultTelemetryDir)),
			FrameIntervalMS: DefaultTelemetryFrameIntervalMS,
		},
	}

	var problems []string

	if raw := strings.TrimSpace(os.Getenv("VDYN_LOG_MAX_SIZE_MB")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("VDYN_LOG_MAX_SIZE_MB must be a positive integer, got %q", raw))
		} else {
			cfg.Logging.MaxSizeMB = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("VDYN_LOG_MAX_BACKUPS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("VDYN_LOG_MAX_BACKUPS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxBackups = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("VDYN_LOG_MAX_AGE_DAYS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			problems = append(problems, fmt.Sprintf("VDYN_LOG_MAX_AGE_DAYS must be a non-negative integer, got %q", raw))
		} else {
			cfg.Logging.MaxAgeDays = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("VDYN_LOG_COMPRESS")); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("VDYN_LOG_COMPRESS must be a boolean value, got %q", raw))
		} else {
			cfg.Logging.Compress = value
		}
	}

	if raw := strings.TrimSpace(os.Getenv("VDYN_TELEMETRY_FRAME_INTERVAL_MS")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("VDYN_TELEMETRY_FRAME_INTERVAL_MS must be a positive integer, got %q", raw))
		} else {
			cfg.Telemetry.FrameIntervalMS = value
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("VDYN_LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.Logging.Level))
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf(strings.Join(problems, "; "))
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
