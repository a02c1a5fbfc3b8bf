// Program objscope runs the runtime introspection core as a self-observing
// process: a memory sampler walking the registered object graph on a fixed
// interval, and a thread-safe event log recording what happens along the way.
// The main loop is the external scheduler the core is written against — it
// owns the clock and feeds elapsed time into the sampler tick by tick.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"objscope/config"
	"objscope/eventlog"
	"objscope/memtrack"
	"objscope/objmodel"
)

const (
	defaultConfigPath = "data/config.yaml"
	envConfigPath     = "OBJSCOPE_CONFIG_PATH"

	// tickInterval is the scheduler granularity. The sampler accumulates
	// these deltas against its own sampling interval.
	tickInterval = 100 * time.Millisecond
)

func main() {
	configPath := flag.String("config", resolveConfigPath(), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Warning: %v; using defaults", err)
		cfg = config.Default()
	}
	cfg.Print()

	restoreLogging, err := setupLogging(cfg.Logging)
	if err != nil {
		log.Printf("Warning: log file unavailable: %v", err)
	} else {
		defer restoreLogging()
	}

	start := time.Now()
	events := eventlog.NewLog(eventlog.Options{
		GameTime:      func() float64 { return time.Since(start).Seconds() },
		DebugEcho:     cfg.EventLog.DebugEcho,
		DedupeWindow:  time.Duration(cfg.EventLog.DedupeWindowSeconds) * time.Second,
		DedupeMaxKeys: cfg.EventLog.DedupeMaxKeys,
	})

	registry := objmodel.NewRegistry()
	tracker := memtrack.NewTracker(registry)

	// The log is the first tracked object: the process watches its own
	// diagnostic buffer grow.
	tracker.RegisterObject(events)
	tracker.StartTracking(cfg.Tracker.SampleIntervalSeconds)
	events.LogEvent("TrackingStarted", *configPath)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("objscope is running. Press Ctrl+C to stop.")
	log.Printf("Sampling every %.2fs, reporting every %.2fs",
		cfg.Tracker.SampleIntervalSeconds, cfg.Tracker.ReportIntervalSeconds)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	last := time.Now()
	var reportAccum float64

	for {
		select {
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			tracker.Advance(dt)

			if cfg.Tracker.ReportIntervalSeconds > 0 {
				reportAccum += dt
				if reportAccum >= cfg.Tracker.ReportIntervalSeconds {
					reportAccum = 0
					tracker.DumpReport()
					events.LogEvent("MemoryReport", "")
				}
			}

		case sig := <-sigChan:
			log.Printf("Received signal: %v", sig)
			events.LogEvent("TrackingStopped", sig.String())
			tracker.StopTracking()
			shutdownExports(cfg.EventLog, events)
			tracker.DumpReport()
			log.Println("Shutdown complete")
			return
		}
	}
}

// shutdownExports flushes the event log to the configured export paths.
// Failures are already logged by the exporters; nothing here is fatal.
func shutdownExports(cfg config.EventLogConfig, events *eventlog.Log) {
	if cfg.ExportCSVPath != "" {
		if events.ExportToCSV(cfg.ExportCSVPath) {
			log.Printf("Event log exported to %s", cfg.ExportCSVPath)
		}
	}
	if cfg.ExportJSONPath != "" {
		if events.ExportToJSON(cfg.ExportJSONPath) {
			log.Printf("Event log exported to %s", cfg.ExportJSONPath)
		}
	}
}

func resolveConfigPath() string {
	if p := os.Getenv(envConfigPath); p != "" {
		return p
	}
	return defaultConfigPath
}
