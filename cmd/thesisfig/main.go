// Command thesisfig writes the latency comparison figures and tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/uyouii/latency-figures/config"
	"github.com/uyouii/latency-figures/dataset"
	"github.com/uyouii/latency-figures/report"
	"github.com/uyouii/latency-figures/utils"
)

func main() {
	configPath := flag.String("config", "", "optional YAML run configuration")
	outputDir := flag.String("out", "", "output directory, overrides the configuration")
	suites := flag.String("suite", "", "comma separated suites to run (default all: "+strings.Join(report.SuiteNames(), ",")+")")
	flag.Parse()

	ctx := context.Background()
	logger := utils.GetLogger(ctx)
	defer logger.Sync()

	if err := run(ctx, *configPath, *outputDir, *suites); err != nil {
		logger.Error("thesisfig failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath, outputDir, suites string) error {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if suites != "" {
		cfg.Suites = []string{}
		for _, name := range strings.Split(suites, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.Suites = append(cfg.Suites, name)
			}
		}
	}
	if err := cfg.Validate(report.SuiteNames()); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ds := dataset.Case1()
	if err := ds.Synthesize(ctx, cfg.Baselines); err != nil {
		return err
	}
	if err := ds.Validate(); err != nil {
		return err
	}

	selected := []*report.Suite{}
	for _, name := range cfg.SelectedSuites(report.SuiteNames()) {
		suite, err := report.LookupSuite(name)
		if err != nil {
			return err
		}
		selected = append(selected, suite)
	}

	utils.GetLogger(ctx).Info("generating figures", zap.String("output_dir", cfg.OutputDir),
		zap.Int("dpi", cfg.DPI), zap.Int("suites", len(selected)), zap.Int("policies", ds.Size()))

	runner := &report.Runner{
		OutputDir: cfg.OutputDir,
		DPI:       cfg.DPI,
		HTML:      cfg.HTML,
		Console:   os.Stdout,
	}
	env := &report.Env{Dataset: ds, Now: time.Now(), Timestamp: cfg.Timestamp}
	return runner.Run(ctx, env, selected)
}
