package resource

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables honored by ApplyEnv. AWS_S3_ENDPOINT keeps parity
// with existing deployments that point the reader at an S3-compatible store.
const (
	EnvS3Endpoint = "AWS_S3_ENDPOINT"
	EnvS3Region   = "AWS_REGION"
)

// RemoteConfig configures the S3-compatible byte-range backend. A config
// value is constructed once by the caller and passed into each
// RemoteResource; there is no process-wide client.
type RemoteConfig struct {
	// Endpoint overrides the object-store endpoint (host[:port], with an
	// optional http:// or https:// scheme). Empty means the provider
	// default.
	Endpoint string `toml:"endpoint"`
	// Region is the bucket region.
	Region string `toml:"region"`
	// AccessKey and SecretKey are static credentials. When empty, the
	// standard AWS environment variables are used.
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	// UseSSL selects https for schemeless endpoints.
	UseSSL bool `toml:"use_ssl"`
	// PathStyle forces path-style bucket addressing, required by most
	// S3-compatible deployments behind a custom endpoint.
	PathStyle bool `toml:"path_style"`

	// MaxRetries bounds retries of transient fetch failures per request.
	MaxRetries int `toml:"max_retries"`
	// RetryInitialMS and RetryMaxMS bound the exponential backoff between
	// retries, in milliseconds.
	RetryInitialMS int `toml:"retry_initial_ms"`
	RetryMaxMS     int `toml:"retry_max_ms"`
}

// DefaultRemoteConfig returns the provider-default endpoint with bounded
// retry behavior.
func DefaultRemoteConfig() RemoteConfig {
	return RemoteConfig{
		UseSSL:         true,
		MaxRetries:     3,
		RetryInitialMS: 100,
		RetryMaxMS:     2000,
	}
}

// LoadRemoteConfig reads a TOML config file over the defaults.
func LoadRemoteConfig(path string) (RemoteConfig, error) {
	cfg := DefaultRemoteConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return RemoteConfig{}, fmt.Errorf("loading remote config %s: %w", path, err)
	}
	return cfg, nil
}

// RemoteConfigFromEnv returns the defaults with environment overrides
// applied.
func RemoteConfigFromEnv() RemoteConfig {
	cfg := DefaultRemoteConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overlays environment overrides onto cfg. Setting an endpoint this
// way also switches to path-style addressing, matching how S3-compatible
// deployments are addressed.
func (cfg *RemoteConfig) ApplyEnv() {
	if endpoint := os.Getenv(EnvS3Endpoint); endpoint != "" {
		cfg.Endpoint = endpoint
		cfg.PathStyle = true
	}
	if region := os.Getenv(EnvS3Region); region != "" {
		cfg.Region = region
	}
}

func (cfg *RemoteConfig) initialBackoff() time.Duration {
	if cfg.RetryInitialMS <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(cfg.RetryInitialMS) * time.Millisecond
}

func (cfg *RemoteConfig) maxBackoff() time.Duration {
	if cfg.RetryMaxMS <= 0 {
		return 2 * time.Second
	}
	return time.Duration(cfg.RetryMaxMS) * time.Millisecond
}

// ParseLocation splits an s3://bucket/key location into bucket and object
// key. Malformed locations fail with *InvalidLocationError.
func ParseLocation(raw string) (bucket, object string, err error) {
	const scheme = "s3://"
	if !strings.HasPrefix(raw, scheme) {
		return "", "", &InvalidLocationError{Raw: raw, Reason: "missing s3:// scheme"}
	}
	rest := strings.TrimPrefix(raw, scheme)
	bucket, object, found := strings.Cut(rest, "/")
	if !found || bucket == "" || object == "" {
		return "", "", &InvalidLocationError{Raw: raw, Reason: "expected s3://bucket/key"}
	}
	return bucket, object, nil
}
