package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"objscope/config"
)

// setupLogging points the process log at stderr plus, when configured, an
// append-only file. Returns a restore func that detaches the file sink.
func setupLogging(cfg config.LoggingConfig) (func(), error) {
	log.SetFlags(log.LstdFlags | log.LUTC)
	if cfg.File == "" {
		return func() {}, nil
	}
	if dir := filepath.Dir(cfg.File); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return func() {}, fmt.Errorf("failed to create log directory %q: %w", dir, err)
		}
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return func() {}, fmt.Errorf("failed to open log file %q: %w", cfg.File, err)
	}
	log.SetOutput(io.MultiWriter(os.Stderr, f))
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
