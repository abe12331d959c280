package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/veridict/veridict/internal/detect"
)

const (
	EnvAnalysisImageProber  = "VERIDICT_ANALYSIS_IMAGE_PROBER"
	EnvAnalysisExifToolPath = "VERIDICT_ANALYSIS_EXIFTOOL_PATH"
	EnvAnalysisFFProbePath  = "VERIDICT_ANALYSIS_FFPROBE_PATH"
	EnvAnalysisProbeTimeout = "VERIDICT_ANALYSIS_PROBE_TIMEOUT"
	EnvAnalysisItemTimeout  = "VERIDICT_ANALYSIS_ITEM_TIMEOUT"
	EnvAnalysisWorkers      = "VERIDICT_ANALYSIS_WORKERS"
)

// AnalysisConfig holds pipeline tuning: which image prober to use, where
// the probe binaries live, per-probe and per-item time bounds, embedded
// image concurrency, and the detector configuration.
type AnalysisConfig struct {
	ImageProber  string        `toml:"image_prober"`
	ExifToolPath string        `toml:"exiftool_path"`
	FFProbePath  string        `toml:"ffprobe_path"`
	ProbeTimeout string        `toml:"probe_timeout"`
	ItemTimeout  string        `toml:"item_timeout"`
	Workers      int           `toml:"workers"`
	Detect       detect.Config `toml:"detect"`
}

// ProbeTimeoutDuration returns ProbeTimeout as a time.Duration.
func (c *AnalysisConfig) ProbeTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ProbeTimeout)
	return d
}

// ItemTimeoutDuration returns ItemTimeout as a time.Duration.
func (c *AnalysisConfig) ItemTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ItemTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AnalysisConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	c.Detect.Finalize()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AnalysisConfig) Merge(overlay *AnalysisConfig) {
	if overlay.ImageProber != "" {
		c.ImageProber = overlay.ImageProber
	}
	if overlay.ExifToolPath != "" {
		c.ExifToolPath = overlay.ExifToolPath
	}
	if overlay.FFProbePath != "" {
		c.FFProbePath = overlay.FFProbePath
	}
	if overlay.ProbeTimeout != "" {
		c.ProbeTimeout = overlay.ProbeTimeout
	}
	if overlay.ItemTimeout != "" {
		c.ItemTimeout = overlay.ItemTimeout
	}
	if overlay.Workers != 0 {
		c.Workers = overlay.Workers
	}
	c.Detect.Merge(&overlay.Detect)
}

func (c *AnalysisConfig) loadDefaults() {
	if c.ImageProber == "" {
		c.ImageProber = "native"
	}
	if c.ExifToolPath == "" {
		c.ExifToolPath = "exiftool"
	}
	if c.FFProbePath == "" {
		c.FFProbePath = "ffprobe"
	}
	if c.ProbeTimeout == "" {
		c.ProbeTimeout = "20s"
	}
	if c.ItemTimeout == "" {
		c.ItemTimeout = "30s"
	}
	if c.Workers == 0 {
		c.Workers = 4
	}
}

func (c *AnalysisConfig) loadEnv() {
	if v := os.Getenv(EnvAnalysisImageProber); v != "" {
		c.ImageProber = v
	}
	if v := os.Getenv(EnvAnalysisExifToolPath); v != "" {
		c.ExifToolPath = v
	}
	if v := os.Getenv(EnvAnalysisFFProbePath); v != "" {
		c.FFProbePath = v
	}
	if v := os.Getenv(EnvAnalysisProbeTimeout); v != "" {
		c.ProbeTimeout = v
	}
	if v := os.Getenv(EnvAnalysisItemTimeout); v != "" {
		c.ItemTimeout = v
	}
	if v := os.Getenv(EnvAnalysisWorkers); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Workers = n
		}
	}
}

func (c *AnalysisConfig) validate() error {
	if c.ImageProber != "native" && c.ImageProber != "exiftool" {
		return fmt.Errorf("invalid image_prober: %s", c.ImageProber)
	}
	if _, err := time.ParseDuration(c.ProbeTimeout); err != nil {
		return fmt.Errorf("invalid probe_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.ItemTimeout); err != nil {
		return fmt.Errorf("invalid item_timeout: %w", err)
	}
	if c.Workers < 1 {
		return fmt.Errorf("invalid workers: %d", c.Workers)
	}
	return nil
}
