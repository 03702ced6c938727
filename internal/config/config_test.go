package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig_Validate_Success(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() should pass, got %v", err)
	}
}

func TestConfig_Validate_MissingBaseDomain(t *testing.T) {
	cfg := Default()
	cfg.Server.BaseDomain = ""

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for missing BASE_DOMAIN")
	}
}

func TestConfig_Validate_Storage(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StorageConfig
		wantErr bool
	}{
		{"sqlite with path", StorageConfig{Driver: DriverSQLite, SQLitePath: "x.db"}, false},
		{"sqlite without path", StorageConfig{Driver: DriverSQLite}, true},
		{"postgres with dsn", StorageConfig{Driver: DriverPostgres, PostgresDSN: "postgres://localhost/splits"}, false},
		{"postgres without dsn", StorageConfig{Driver: DriverPostgres}, true},
		{"memory", StorageConfig{Driver: DriverMemory}, false},
		{"unknown driver", StorageConfig{Driver: "mongo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Storage = tt.cfg

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestConfig_Validate_Scheme(t *testing.T) {
	cfg := Default()
	cfg.Server.Scheme = "ftp"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for unsupported scheme")
	}
}

func TestConfig_Validate_LogLevel(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "chatty"

	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail for unknown log level")
	}
}

func TestLogConfig_SlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			c := LogConfig{Level: tt.level}
			got, err := c.SlogLevel()
			if err != nil {
				t.Fatalf("SlogLevel() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("SlogLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServerConfig_Address(t *testing.T) {
	tests := []struct {
		name string
		cfg  ServerConfig
		want string
	}{
		{
			name: "default",
			cfg:  ServerConfig{Host: "0.0.0.0", Port: 5000},
			want: "0.0.0.0:5000",
		},
		{
			name: "localhost",
			cfg:  ServerConfig{Host: "localhost", Port: 8080},
			want: "localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.Address(); got != tt.want {
				t.Errorf("Address() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestServerConfig_AuthEnabled(t *testing.T) {
	if (&ServerConfig{}).AuthEnabled() {
		t.Error("AuthEnabled() should be false without keys")
	}
	if !(&ServerConfig{APIKey: "k"}).AuthEnabled() {
		t.Error("AuthEnabled() should be true with APIKey")
	}
	if !(&ServerConfig{APIKeyHash: "$2a$10$x"}).AuthEnabled() {
		t.Error("AuthEnabled() should be true with APIKeyHash")
	}
}

func TestLoad_FromYAMLFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
server:
  port: 8080
  base_domain: "splits.lan"
storage:
  driver: memory
proxy:
  timeout: 3s
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.BaseDomain != "splits.lan" {
		t.Errorf("BaseDomain = %q, want %q", cfg.Server.BaseDomain, "splits.lan")
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("Driver = %q, want %q", cfg.Storage.Driver, DriverMemory)
	}
	if cfg.Proxy.Timeout != 3*time.Second {
		t.Errorf("Proxy.Timeout = %v, want 3s", cfg.Proxy.Timeout)
	}
	// Untouched values keep their defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
server:
  host: "localhost"
  port: 8080
  base_domain: "yaml.lan"
storage:
  sqlite_path: "/yaml/splits.db"
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("BASE_DOMAIN", "env.lan")
	t.Setenv("SQLITE_PATH", "/env/splits.db")

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.BaseDomain != "env.lan" {
		t.Errorf("BaseDomain should be from env, got %q", cfg.Server.BaseDomain)
	}
	if cfg.Storage.SQLitePath != "/env/splits.db" {
		t.Errorf("SQLitePath should be from env, got %q", cfg.Storage.SQLitePath)
	}
	if cfg.Server.Host != "localhost" {
		t.Errorf("Host should stay from YAML, got %q", cfg.Server.Host)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("BASE_DOMAIN", "home.example")
	t.Setenv("API_KEY", "test-api-key")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.BaseDomain != "home.example" {
		t.Errorf("BaseDomain = %q, want %q", cfg.Server.BaseDomain, "home.example")
	}
	if cfg.Server.APIKey != "test-api-key" {
		t.Errorf("APIKey = %q, want %q", cfg.Server.APIKey, "test-api-key")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
server:
  host: "localhost
  port: 8080
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := Load(configPath)
	if err == nil {
		t.Error("Load should fail for invalid YAML")
	}
}

func TestLoad_NonexistentFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load should fail for nonexistent file")
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("POSTGRES_DSN", "")

	_, err := Load("")
	if err == nil {
		t.Error("Load should fail validation without a postgres DSN")
	}
}
