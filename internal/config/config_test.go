package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.Server.Port)
	}
	if cfg.Fetch.TimeoutSeconds != 10 {
		t.Fatalf("expected default fetch timeout 10s, got %d", cfg.Fetch.TimeoutSeconds)
	}
	if cfg.Events.Buffer != 64 {
		t.Fatalf("expected default events buffer 64, got %d", cfg.Events.Buffer)
	}
	if !cfg.Logging.Development {
		t.Fatal("expected development logging by default")
	}
}

func TestLoadWithFileOverrides(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	configYAML := `
server:
  port: 9090
  request_timeout_seconds: 15
fetch:
  timeout_seconds: 5
  user_agent: urlboard-test/1.0
css:
  timeout_seconds: 3
events:
  buffer: 8
logging:
  development: false
`
	if err := os.WriteFile(path, []byte(configYAML), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Fetch.UserAgent != "urlboard-test/1.0" {
		t.Fatalf("expected user agent override, got %q", cfg.Fetch.UserAgent)
	}
	if cfg.Logging.Development {
		t.Fatal("expected development logging to be disabled")
	}
	if got := cfg.FetchTimeout(); got != 5*time.Second {
		t.Fatalf("expected fetch timeout 5s, got %v", got)
	}
	if got := cfg.RequestTimeout(); got != 15*time.Second {
		t.Fatalf("expected request timeout 15s, got %v", got)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	t.Parallel()

	base := Config{
		Server: ServerConfig{Port: 3000, RequestTimeoutSeconds: 30},
		Fetch:  FetchConfig{TimeoutSeconds: 10},
		CSS:    CSSConfig{TimeoutSeconds: 10},
		Events: EventsConfig{Buffer: 64},
	}

	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{
			name: "invalid port",
			cfg: func() Config {
				c := base
				c.Server.Port = 0
				return c
			}(),
			want: "server.port",
		},
		{
			name: "invalid request timeout",
			cfg: func() Config {
				c := base
				c.Server.RequestTimeoutSeconds = 0
				return c
			}(),
			want: "server.request_timeout_seconds",
		},
		{
			name: "invalid fetch timeout",
			cfg: func() Config {
				c := base
				c.Fetch.TimeoutSeconds = 0
				return c
			}(),
			want: "fetch.timeout_seconds",
		},
		{
			name: "invalid css timeout",
			cfg: func() Config {
				c := base
				c.CSS.TimeoutSeconds = 0
				return c
			}(),
			want: "css.timeout_seconds",
		},
		{
			name: "invalid events buffer",
			cfg: func() Config {
				c := base
				c.Events.Buffer = 0
				return c
			}(),
			want: "events.buffer",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}
