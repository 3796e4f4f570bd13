package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"docutrail/internal/config"
)

// Load validates database and storage sections, so every Load test supplies
// the required values through the environment.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DOCUTRAIL_DB_NAME", "docutrail")
	t.Setenv("DOCUTRAIL_DB_USER", "docutrail")
	t.Setenv("DOCUTRAIL_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadDefaultsWithoutFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.ShutdownTimeout != "30s" {
		t.Errorf("shutdown_timeout = %q, want 30s", cfg.ShutdownTimeout)
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("base_path = %q, want /api", cfg.API.BasePath)
	}
	if got := cfg.API.MaxUploadSizeBytes(); got != 50*1024*1024 {
		t.Errorf("max upload = %d, want 50MB", got)
	}
	if cfg.API.Pagination.DefaultPageSize != 25 {
		t.Errorf("default page size = %d, want 25", cfg.API.Pagination.DefaultPageSize)
	}
	if cfg.Storage.ContainerName != "docutrail" {
		t.Errorf("container = %q, want docutrail", cfg.Storage.ContainerName)
	}
}

func TestLoadMissingDatabaseName(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOCUTRAIL_DB_USER", "docutrail")
	t.Setenv("DOCUTRAIL_STORAGE_CONNECTION_STRING", "UseDevelopmentStorage=true")

	if _, err := config.Load(); err == nil {
		t.Error("Load should fail without a database name")
	}
}

func TestLoadBaseFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
shutdown_timeout = "45s"

[server]
port = 9090

[api]
max_upload_size = "10MB"
`)
	t.Chdir(dir)
	setRequiredEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.ShutdownTimeout != "45s" {
		t.Errorf("shutdown_timeout = %q, want 45s", cfg.ShutdownTimeout)
	}
	if got := cfg.API.MaxUploadSizeBytes(); got != 10*1024*1024 {
		t.Errorf("max upload = %d, want 10MB", got)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("host = %q, want default 0.0.0.0", cfg.Server.Host)
	}
}

func TestLoadEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `
[server]
port = 9090

[database]
host = "db.internal"
`)
	writeFile(t, dir, "config.test.toml", `
[server]
port = 9091
`)
	t.Chdir(dir)
	setRequiredEnv(t)
	t.Setenv(config.EnvDocutrailEnv, "test")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9091 {
		t.Errorf("server port = %d, want overlay 9091", cfg.Server.Port)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("database host = %q, want base value retained", cfg.Database.Host)
	}
}

func TestLoadEnvVariableOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	setRequiredEnv(t)
	t.Setenv(config.EnvServerPort, "7070")
	t.Setenv("DOCUTRAIL_API_MAX_UPLOAD_SIZE", "5MB")
	t.Setenv(config.EnvDocutrailShutdownTimeout, "10s")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("server port = %d, want env 7070", cfg.Server.Port)
	}
	if got := cfg.API.MaxUploadSizeBytes(); got != 5*1024*1024 {
		t.Errorf("max upload = %d, want 5MB", got)
	}
	if cfg.ShutdownTimeout != "10s" {
		t.Errorf("shutdown_timeout = %q, want 10s", cfg.ShutdownTimeout)
	}
}

func TestLoadInvalidShutdownTimeout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "config.toml", `shutdown_timeout = "soon"`)
	t.Chdir(dir)
	setRequiredEnv(t)

	if _, err := config.Load(); err == nil {
		t.Error("Load should fail on unparseable shutdown_timeout")
	}
}

func TestMaxUploadSizeBytesFallback(t *testing.T) {
	cfg := config.APIConfig{MaxUploadSize: "not-a-size"}
	if got := cfg.MaxUploadSizeBytes(); got != 50*1024*1024 {
		t.Errorf("max upload = %d, want 50MB fallback", got)
	}
}

func TestServerConfigMerge(t *testing.T) {
	base := config.ServerConfig{Host: "0.0.0.0", Port: 8080, ReadTimeout: "1m"}
	overlay := config.ServerConfig{Port: 9090}

	base.Merge(&overlay)

	if base.Port != 9090 {
		t.Errorf("port = %d, want overlay 9090", base.Port)
	}
	if base.Host != "0.0.0.0" || base.ReadTimeout != "1m" {
		t.Error("zero overlay fields should leave base values untouched")
	}
}
