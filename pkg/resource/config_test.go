package resource

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultRemoteConfig(t *testing.T) {
	cfg := DefaultRemoteConfig()

	if !cfg.UseSSL {
		t.Error("Expected SSL by default")
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", cfg.MaxRetries)
	}
	if cfg.initialBackoff() != 100*time.Millisecond {
		t.Errorf("Expected 100ms initial backoff, got %v", cfg.initialBackoff())
	}
	if cfg.maxBackoff() != 2*time.Second {
		t.Errorf("Expected 2s max backoff, got %v", cfg.maxBackoff())
	}
}

func TestLoadRemoteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remote.toml")
	content := `
endpoint = "http://storage.internal:9000"
region = "eu-west-1"
path_style = true
use_ssl = false
max_retries = 5
retry_initial_ms = 50
retry_max_ms = 1000
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadRemoteConfig(path)
	if err != nil {
		t.Fatalf("LoadRemoteConfig failed: %v", err)
	}

	if cfg.Endpoint != "http://storage.internal:9000" {
		t.Errorf("Expected endpoint from file, got %q", cfg.Endpoint)
	}
	if cfg.Region != "eu-west-1" {
		t.Errorf("Expected region eu-west-1, got %q", cfg.Region)
	}
	if !cfg.PathStyle {
		t.Error("Expected path-style addressing")
	}
	if cfg.UseSSL {
		t.Error("Expected SSL disabled")
	}
	if cfg.MaxRetries != 5 {
		t.Errorf("Expected 5 retries, got %d", cfg.MaxRetries)
	}
	if cfg.initialBackoff() != 50*time.Millisecond {
		t.Errorf("Expected 50ms initial backoff, got %v", cfg.initialBackoff())
	}
}

func TestLoadRemoteConfigKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remote.toml")
	if err := os.WriteFile(path, []byte(`endpoint = "http://other:9000"`), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadRemoteConfig(path)
	if err != nil {
		t.Fatalf("LoadRemoteConfig failed: %v", err)
	}
	if cfg.MaxRetries != 3 {
		t.Errorf("Expected default retries preserved, got %d", cfg.MaxRetries)
	}
}

func TestLoadRemoteConfigMissingFile(t *testing.T) {
	if _, err := LoadRemoteConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestApplyEnvEndpointOverride(t *testing.T) {
	t.Setenv(EnvS3Endpoint, "http://minio.test:9000")
	t.Setenv(EnvS3Region, "us-west-2")

	cfg := DefaultRemoteConfig()
	cfg.ApplyEnv()

	if cfg.Endpoint != "http://minio.test:9000" {
		t.Errorf("Expected env endpoint, got %q", cfg.Endpoint)
	}
	if !cfg.PathStyle {
		t.Error("Expected endpoint override to force path-style addressing")
	}
	if cfg.Region != "us-west-2" {
		t.Errorf("Expected env region, got %q", cfg.Region)
	}
}

func TestApplyEnvNoOverride(t *testing.T) {
	t.Setenv(EnvS3Endpoint, "")
	t.Setenv(EnvS3Region, "")

	cfg := DefaultRemoteConfig()
	cfg.ApplyEnv()

	if cfg.Endpoint != "" || cfg.PathStyle {
		t.Errorf("Expected untouched config, got %+v", cfg)
	}
}

func TestParseLocation(t *testing.T) {
	tests := []struct {
		raw     string
		bucket  string
		object  string
		wantErr bool
	}{
		{"s3://movies/track1.mxf", "movies", "track1.mxf", false},
		{"s3://movies/imf/pkg/track1.mxf", "movies", "imf/pkg/track1.mxf", false},
		{"http://movies/track1.mxf", "", "", true},
		{"s3://movies", "", "", true},
		{"s3:///track1.mxf", "", "", true},
		{"s3://movies/", "", "", true},
	}

	for _, tt := range tests {
		bucket, object, err := ParseLocation(tt.raw)
		if tt.wantErr {
			var invalid *InvalidLocationError
			if !errors.As(err, &invalid) {
				t.Errorf("%s: expected InvalidLocationError, got %v", tt.raw, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.raw, err)
			continue
		}
		if bucket != tt.bucket || object != tt.object {
			t.Errorf("%s: expected %s/%s, got %s/%s", tt.raw, tt.bucket, tt.object, bucket, object)
		}
	}
}
