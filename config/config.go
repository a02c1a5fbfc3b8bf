package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the complete introspection-core configuration
type Config struct {
	Tracker  TrackerConfig  `yaml:"tracker"`
	EventLog EventLogConfig `yaml:"event_log"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// TrackerConfig contains memory sampler settings
type TrackerConfig struct {
	// SampleIntervalSeconds is the time between sampling passes. Values at or
	// below zero fall back to the default; the sampler applies its own floor.
	SampleIntervalSeconds float64 `yaml:"sample_interval_seconds"`
	// ReportIntervalSeconds is how often the main loop dumps the snapshot to
	// the log. Zero disables periodic reports.
	ReportIntervalSeconds float64 `yaml:"report_interval_seconds"`
}

// EventLogConfig contains event log settings
type EventLogConfig struct {
	// DebugEcho mirrors each accepted event to the process log.
	DebugEcho bool `yaml:"debug_echo"`
	// DedupeWindowSeconds suppresses identical repeated events for this long.
	// Zero disables suppression.
	DedupeWindowSeconds int `yaml:"dedupe_window_seconds"`
	// DedupeMaxKeys bounds the suppression table.
	DedupeMaxKeys int `yaml:"dedupe_max_keys"`
	// ExportCSVPath, when set, receives a CSV export of the log on shutdown.
	ExportCSVPath string `yaml:"export_csv_path"`
	// ExportJSONPath, when set, receives a JSON export of the log on shutdown.
	ExportJSONPath string `yaml:"export_json_path"`
}

// LoggingConfig contains process log settings
type LoggingConfig struct {
	// File appends the process log to this path in addition to stderr.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Tracker: TrackerConfig{
			SampleIntervalSeconds: 5.0,
			ReportIntervalSeconds: 30.0,
		},
		EventLog: EventLogConfig{
			DedupeMaxKeys: 512,
		},
	}
}

// Load loads configuration from a YAML file and repairs out-of-range values.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize clamps out-of-range values back to defaults instead of failing:
// a diagnostic subsystem should degrade, not refuse to start.
func (c *Config) Normalize() {
	def := Default()
	if c.Tracker.SampleIntervalSeconds <= 0 {
		c.Tracker.SampleIntervalSeconds = def.Tracker.SampleIntervalSeconds
	}
	if c.Tracker.ReportIntervalSeconds < 0 {
		c.Tracker.ReportIntervalSeconds = 0
	}
	if c.EventLog.DedupeWindowSeconds < 0 {
		c.EventLog.DedupeWindowSeconds = 0
	}
	if c.EventLog.DedupeMaxKeys <= 0 {
		c.EventLog.DedupeMaxKeys = def.EventLog.DedupeMaxKeys
	}
}

// Print displays the configuration
func (c *Config) Print() {
	fmt.Printf("Tracker: sample every %.2fs, report every %.2fs\n",
		c.Tracker.SampleIntervalSeconds, c.Tracker.ReportIntervalSeconds)
	if c.EventLog.DedupeWindowSeconds > 0 {
		fmt.Printf("Event log: dedupe window %ds (max %d keys)\n",
			c.EventLog.DedupeWindowSeconds, c.EventLog.DedupeMaxKeys)
	}
	if c.EventLog.ExportCSVPath != "" {
		fmt.Printf("Event log: CSV export to %s on shutdown\n", c.EventLog.ExportCSVPath)
	}
	if c.EventLog.ExportJSONPath != "" {
		fmt.Printf("Event log: JSON export to %s on shutdown\n", c.EventLog.ExportJSONPath)
	}
	if c.Logging.File != "" {
		fmt.Printf("Logging: also appending to %s\n", c.Logging.File)
	}
}
