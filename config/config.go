package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/dataset"
	"github.com/uyouii/latency-figures/derive"
	"github.com/uyouii/latency-figures/model"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v2"
)

const (
	DefaultOutputDir = "figures"
	DefaultDPI       = 150

	maxFileSize = 1 * 1024 * 1024
)

type Config struct {
	// OutputDir receives one sub directory per suite.
	OutputDir string `yaml:"output_dir"`
	DPI       int    `yaml:"dpi"`
	// HTML also writes an interactive page per suite.
	HTML bool `yaml:"html"`
	// Timestamp adds a "Generated:" line to markdown reports, which makes
	// reruns differ.
	Timestamp bool `yaml:"timestamp"`
	// Suites to run, empty means all.
	Suites    []string             `yaml:"suites"`
	Baselines []model.BaselineSpec `yaml:"baselines"`
}

func Default() *Config {
	return &Config{
		OutputDir: DefaultOutputDir,
		DPI:       DefaultDPI,
		HTML:      true,
		Timestamp: false,
		Suites:    []string{},
		Baselines: dataset.DefaultBaselines(),
	}
}

// LoadConfig reads a YAML file on top of the defaults. Keys missing from the
// file keep their default value.
func LoadConfig(filePath string) (*Config, error) {
	cleanPath := filepath.Clean(filePath)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	file, err := os.Open(cleanPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := Default()
	decoder := yaml.NewDecoder(file)
	decoder.SetStrict(true)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", cleanPath, err)
	}

	return config, nil
}

// Validate checks the configuration. knownSuites may be nil to skip the suite
// name check.
func (c *Config) Validate(knownSuites []string) error {
	var err error

	if c.OutputDir == "" {
		err = multierr.Append(err, fmt.Errorf("%w: empty output_dir", common.ErrorInvalidValue))
	}
	if c.DPI <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: dpi must be positive, got %d", common.ErrorInvalidValue, c.DPI))
	}

	if knownSuites != nil {
		known := map[string]bool{}
		for _, name := range knownSuites {
			known[name] = true
		}
		for _, name := range c.Suites {
			if !known[name] {
				err = multierr.Append(err, fmt.Errorf("%w: unknown suite %q", common.ErrorInvalidValue, name))
			}
		}
	}

	seen := map[string]bool{}
	for i, baseline := range c.Baselines {
		if baseline.Name == "" {
			err = multierr.Append(err, fmt.Errorf("%w: baselines[%d] has no name", common.ErrorInvalidValue, i))
		} else if seen[baseline.Name] {
			err = multierr.Append(err, fmt.Errorf("%w: baseline %q", common.ErrorDuplicatePolicy, baseline.Name))
		}
		seen[baseline.Name] = true

		if len(baseline.Teachers) == 0 {
			err = multierr.Append(err, fmt.Errorf("%w: baseline %q has no teacher", common.ErrorInvalidValue, baseline.Name))
		}
		for _, class := range model.AllTrafficClasses {
			if _, factorErr := derive.EstimateFactor(baseline.Accuracy, baseline.Degradation.Get(class)); factorErr != nil {
				err = multierr.Append(err, fmt.Errorf("baseline %q %s: %w", baseline.Name, class, factorErr))
			}
		}
	}

	return err
}

// SelectedSuites returns the suites to run given all available ones.
func (c *Config) SelectedSuites(all []string) []string {
	if len(c.Suites) == 0 {
		res := make([]string, len(all))
		copy(res, all)
		return res
	}
	res := make([]string, len(c.Suites))
	copy(res, c.Suites)
	return res
}
