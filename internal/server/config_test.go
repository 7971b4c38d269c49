package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/loan-calculator/pkg/constants"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != constants.DefaultServerAddress {
		t.Fatalf("expected default address, got %q", cfg.Address)
	}
	if cfg.UploadSizeBytes() != constants.DefaultMaxUploadSizeBytes {
		t.Fatalf("expected default max upload size, got %d", cfg.UploadSizeBytes())
	}
	if cfg.HistorySize != constants.DefaultHistorySize {
		t.Fatalf("expected default history size, got %d", cfg.HistorySize)
	}
	if cfg.RedisAddress != "" || cfg.Tracing.Endpoint != "" {
		t.Fatalf("expected redis and tracing disabled by default, got %q %q", cfg.RedisAddress, cfg.Tracing.Endpoint)
	}
	if cfg.Tracing.ServiceName != constants.DefaultServiceName {
		t.Fatalf("expected default service name, got %q", cfg.Tracing.ServiceName)
	}
	if cfg.Logging.Level != "" || cfg.Logging.Format != "" || cfg.Logging.OutputFile != "" {
		t.Fatalf("expected empty logging defaults, got %+v", cfg.Logging)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server-config.yaml")

	contents := []byte(`address: 127.0.0.1:9000
maxUploadSize: 2M
historySize: 25
redisAddress: localhost:6379
redisDB: 2
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
tracing:
  endpoint: collector:4318
  serviceName: loans-test
  insecure: true
`)
	if err := os.WriteFile(path, contents, 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Address != "127.0.0.1:9000" {
		t.Fatalf("expected address override, got %s", cfg.Address)
	}
	if cfg.UploadSizeBytes() != 2*1024*1024 {
		t.Fatalf("expected max upload override, got %d", cfg.UploadSizeBytes())
	}
	if cfg.HistorySize != 25 {
		t.Fatalf("expected history size 25, got %d", cfg.HistorySize)
	}
	if cfg.RedisAddress != "localhost:6379" || cfg.RedisDB != 2 {
		t.Fatalf("expected redis settings, got %s db %d", cfg.RedisAddress, cfg.RedisDB)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Fatalf("expected console debug logging, got %+v", cfg.Logging)
	}
	if cfg.Logging.OutputFile != "/tmp/server.log" {
		t.Fatalf("expected logging outputFile /tmp/server.log, got %s", cfg.Logging.OutputFile)
	}
	if cfg.Tracing.Endpoint != "collector:4318" || cfg.Tracing.ServiceName != "loans-test" || !cfg.Tracing.Insecure {
		t.Fatalf("unexpected tracing config %+v", cfg.Tracing)
	}
}

func TestLoadConfigInvalidYaml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")

	if err := os.WriteFile(path, []byte("maxUploadSize: invalid"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for invalid size but got nil")
	}

	if err := os.WriteFile(path, []byte("address: [unclosed"), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected error for malformed YAML but got nil")
	}
}

func TestApplyEnv(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	contents := []byte("LOAN_REDIS_ADDRESS=redis.internal:6379\nOTEL_ENDPOINT=otel.internal:4318\n")
	if err := os.WriteFile(envFile, contents, 0600); err != nil {
		t.Fatalf("failed to write env file: %v", err)
	}

	// Variables already in the environment win over the file.
	t.Setenv(EnvServerAddress, ":9999")
	t.Setenv(EnvRedisAddress, "")
	t.Setenv(EnvOTELEndpoint, "")
	os.Unsetenv(EnvRedisAddress)
	os.Unsetenv(EnvOTELEndpoint)

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if err := cfg.ApplyEnv(envFile); err != nil {
		t.Fatalf("ApplyEnv() error = %v", err)
	}

	if cfg.Address != ":9999" {
		t.Errorf("expected address from environment, got %s", cfg.Address)
	}
	if cfg.RedisAddress != "redis.internal:6379" {
		t.Errorf("expected redis address from env file, got %s", cfg.RedisAddress)
	}
	if cfg.Tracing.Endpoint != "otel.internal:4318" {
		t.Errorf("expected OTEL endpoint from env file, got %s", cfg.Tracing.Endpoint)
	}
}

func TestApplyEnvMissingFile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if err := cfg.ApplyEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("expected a missing env file to be ignored, got %v", err)
	}
}

func TestParseSize(t *testing.T) {
	tests := map[string]int64{
		"":          constants.DefaultMaxUploadSizeBytes,
		"1024":      1024,
		"512b":      512,
		"256K":      256 * 1024,
		"1m":        1024 * 1024,
		"3MB":       3 * 1024 * 1024,
		"2G":        2 * 1024 * 1024 * 1024,
		"  4096   ": 4096,
	}

	for input, expected := range tests {
		got, err := ParseSize(input)
		if err != nil {
			t.Fatalf("ParseSize(%q) returned error: %v", input, err)
		}
		if got != expected {
			t.Fatalf("ParseSize(%q) = %d, expected %d", input, got, expected)
		}
	}

	for _, input := range []string{"1TB", "abc", "99999999999G"} {
		if _, err := ParseSize(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}
