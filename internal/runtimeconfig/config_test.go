package runtimeconfig

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Logging.Provider != "noop" {
		t.Fatalf("unexpected provider %q", cfg.Logging.Provider)
	}
	if cfg.Documents.Pattern != "*.md" || !cfg.Documents.Recursive {
		t.Fatalf("unexpected documents defaults %+v", cfg.Documents)
	}
	if cfg.Commands.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Commands.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestValidateZeroValue(t *testing.T) {
	if err := (Config{}).Validate(); err != nil {
		t.Fatalf("expected zero value to validate, got %v", err)
	}
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unknown provider rejected")
	}
}

func TestValidateRejectsBadLevelAndFormat(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid level rejected")
	}

	cfg = DefaultConfig()
	cfg.Logging.Format = "xml"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected invalid format rejected")
	}
}
