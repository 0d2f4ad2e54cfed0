package di

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goliatone/go-mdserve/internal/logging/gologger"
	"github.com/goliatone/go-mdserve/internal/logging/slogtint"
	"github.com/goliatone/go-mdserve/internal/runtimeconfig"
)

func TestConfigureLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	provider, ok := container.loggerProvider.(*gologger.Provider)
	if !ok {
		t.Fatalf("expected go-logger provider, got %T", container.loggerProvider)
	}
	if logger := provider.GetLogger("mdserve.test"); logger == nil {
		t.Fatal("expected logger from go-logger provider, got nil")
	}
}

func TestConfigureLoggerProviderUsesTintAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "TINT"

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.loggerProvider.(*slogtint.Provider); !ok {
		t.Fatalf("expected tint provider, got %T", container.loggerProvider)
	}
}

func TestConfigureLoggerProviderDefaultsToConsole(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "debug"

	var out bytes.Buffer
	container, err := NewContainer(cfg, WithStdout(&out))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	container.loggerProvider.GetLogger("mdserve.test").Debug("probe")
	if !bytes.Contains(out.Bytes(), []byte("DEBUG probe logger=mdserve.test")) {
		t.Fatalf("expected console entry on configured stdout, got %q", out.String())
	}
}

func TestConfigureLoggerProviderHonoursLevel(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Level = "warn"

	var out bytes.Buffer
	container, err := NewContainer(cfg, WithStdout(&out))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	logger := container.loggerProvider.GetLogger("mdserve.test")
	logger.Info("hidden")
	logger.Warn("shown")
	if bytes.Contains(out.Bytes(), []byte("hidden")) || !bytes.Contains(out.Bytes(), []byte("shown")) {
		t.Fatalf("unexpected console output %q", out.String())
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}
