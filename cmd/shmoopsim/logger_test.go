package main

import (
	"testing"

	"github.com/shmoopmanager/sim/internal/config"
	"go.uber.org/zap"
)

func TestNewLogger_Level(t *testing.T) {
	for _, format := range []string{"console", "json", ""} {
		log, err := newLogger(config.LoggingConfig{Level: "warn", Format: format})
		if err != nil {
			t.Fatalf("%q: %v", format, err)
		}
		if log.Core().Enabled(zap.InfoLevel) || !log.Core().Enabled(zap.WarnLevel) {
			t.Errorf("%q: expected warn and above only", format)
		}
	}
}

func TestNewLogger_RejectsUnknownSettings(t *testing.T) {
	if _, err := newLogger(config.LoggingConfig{Level: "loud", Format: "console"}); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
	if _, err := newLogger(config.LoggingConfig{Level: "info", Format: "xml"}); err == nil {
		t.Errorf("expected an error for an unknown format")
	}
}

func TestNewLogger_DefaultConfigBuilds(t *testing.T) {
	cfg := config.Default().Logging
	cfg.Caller = true
	cfg.Stacktrace = true
	if _, err := newLogger(cfg); err != nil {
		t.Fatalf("default logging config: %v", err)
	}
}
