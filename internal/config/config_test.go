package config_test

import (
	"testing"
	"time"

	"github.com/veridict/veridict/internal/config"
)

func TestServerConfigDefaults(t *testing.T) {
	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
	if cfg.ReadTimeoutDuration() != time.Minute {
		t.Errorf("ReadTimeout = %v", cfg.ReadTimeoutDuration())
	}
}

func TestServerConfigEnvOverride(t *testing.T) {
	t.Setenv(config.EnvServerPort, "9090")
	t.Setenv(config.EnvServerHost, "127.0.0.1")

	var cfg config.ServerConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("Addr = %q", cfg.Addr())
	}
}

func TestServerConfigValidation(t *testing.T) {
	cfg := config.ServerConfig{Port: 99999}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for out-of-range port")
	}

	cfg = config.ServerConfig{ReadTimeout: "not-a-duration"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for invalid read_timeout")
	}
}

func TestServerConfigMerge(t *testing.T) {
	base := config.ServerConfig{Host: "0.0.0.0", Port: 8080}
	overlay := config.ServerConfig{Port: 9090}

	base.Merge(&overlay)

	if base.Host != "0.0.0.0" {
		t.Errorf("Host = %q, zero overlay field must not clobber", base.Host)
	}
	if base.Port != 9090 {
		t.Errorf("Port = %d, want overlay value", base.Port)
	}
}

func TestAPIConfigDefaults(t *testing.T) {
	var cfg config.APIConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.BasePath != "/api" {
		t.Errorf("BasePath = %q", cfg.BasePath)
	}
	if cfg.MaxUploadSizeBytes() != 100*1024*1024 {
		t.Errorf("MaxUploadSizeBytes = %d", cfg.MaxUploadSizeBytes())
	}
	if cfg.Pagination.DefaultPageSize != 20 {
		t.Errorf("DefaultPageSize = %d", cfg.Pagination.DefaultPageSize)
	}
}

func TestAPIConfigUploadSizeFallback(t *testing.T) {
	cfg := config.APIConfig{MaxUploadSize: "garbage"}
	if got := cfg.MaxUploadSizeBytes(); got != 100*1024*1024 {
		t.Errorf("MaxUploadSizeBytes = %d, want fallback", got)
	}
}

func TestAnalysisConfigDefaults(t *testing.T) {
	var cfg config.AnalysisConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.ImageProber != "native" {
		t.Errorf("ImageProber = %q", cfg.ImageProber)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
	if cfg.ProbeTimeoutDuration() != 20*time.Second {
		t.Errorf("ProbeTimeout = %v", cfg.ProbeTimeoutDuration())
	}
	if len(cfg.Detect.AITools) == 0 {
		t.Error("Detect.AITools not defaulted")
	}
}

func TestAnalysisConfigValidation(t *testing.T) {
	cfg := config.AnalysisConfig{ImageProber: "magic"}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for unknown image_prober")
	}

	cfg = config.AnalysisConfig{Workers: -1}
	if err := cfg.Finalize(); err == nil {
		t.Error("expected error for negative workers")
	}
}

func TestAnalysisConfigEnvOverride(t *testing.T) {
	t.Setenv(config.EnvAnalysisImageProber, "exiftool")
	t.Setenv(config.EnvAnalysisWorkers, "8")

	var cfg config.AnalysisConfig
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if cfg.ImageProber != "exiftool" {
		t.Errorf("ImageProber = %q", cfg.ImageProber)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d", cfg.Workers)
	}
}

func TestConfigMerge(t *testing.T) {
	base := config.Config{
		ShutdownTimeout: "30s",
		Version:         "0.1.0",
	}
	overlay := config.Config{Version: "0.2.0"}

	base.Merge(&overlay)

	if base.ShutdownTimeout != "30s" {
		t.Errorf("ShutdownTimeout = %q", base.ShutdownTimeout)
	}
	if base.Version != "0.2.0" {
		t.Errorf("Version = %q", base.Version)
	}
}
