package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/uyouii/latency-figures/figure"
	"github.com/uyouii/latency-figures/utils"
)

// Runner builds suites and writes their artifacts under OutputDir/<suite>/.
type Runner struct {
	OutputDir string
	DPI       int
	HTML      bool
	// Console receives the suite summaries, nil discards them.
	Console io.Writer
}

// Run builds and writes every suite. A failed figure does not stop the
// others, all errors are returned together.
func (r *Runner) Run(ctx context.Context, env *Env, suites []*Suite) error {
	var errs error
	for _, suite := range suites {
		suiteCtx := utils.WithLogger(ctx, utils.GetLogger(ctx).With(zap.String("suite", suite.Name)))
		written, err := r.RunSuite(suiteCtx, env, suite)
		if err != nil {
			utils.GetLogger(suiteCtx).Error("suite failed", zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("suite %s: %w", suite.Name, err))
			continue
		}
		utils.GetLogger(suiteCtx).Info("suite done", zap.Strings("artifacts", written))
	}
	return errs
}

// RunSuite writes one suite and returns the paths of the written artifacts.
func (r *Runner) RunSuite(ctx context.Context, env *Env, suite *Suite) ([]string, error) {
	out, err := suite.Build(ctx, env)
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(r.OutputDir, suite.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	written := []string{}
	var errs error
	for _, fig := range out.Figures {
		path := filepath.Join(dir, fig.Name+".png")
		if err := r.savePNG(ctx, fig, path); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		utils.GetLogger(ctx).Debug("figure saved", zap.String("path", path))
		written = append(written, path)
	}
	for _, table := range out.Tables {
		path := filepath.Join(dir, table.FileName)
		if err := os.WriteFile(path, []byte(table.Content), 0644); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("failed to write %s: %w", path, err))
			continue
		}
		written = append(written, path)
	}
	if r.HTML && len(out.Figures) > 0 {
		path := filepath.Join(dir, suite.Name+".html")
		if err := r.saveHTML(ctx, suite, out, path); err != nil {
			errs = multierr.Append(errs, err)
		} else {
			written = append(written, path)
		}
	}

	if r.Console != nil && out.Summary != "" {
		fmt.Fprintln(r.Console, out.Summary)
		for _, path := range written {
			fmt.Fprintf(r.Console, "Saved: %s\n", path)
		}
	}
	return written, errs
}

// savePNG turns a panic inside the plotting library into an error.
func (r *Runner) savePNG(ctx context.Context, fig *figure.Figure, path string) (err error) {
	defer func() {
		if e := recover(); e != nil {
			utils.GetLogger(ctx).Error("render figure panic", zap.String("figure", fig.Name),
				zap.Any("err", e), zap.String("stack", utils.GetPanicInfo()))
			err = fmt.Errorf("figure %s: render panic: %v", fig.Name, e)
		}
	}()
	return figure.SavePNG(fig, path, r.DPI)
}

func (r *Runner) saveHTML(ctx context.Context, suite *Suite, out *Output, path string) (err error) {
	defer func() {
		if e := recover(); e != nil {
			utils.GetLogger(ctx).Error("render html panic", zap.Any("err", e), zap.String("stack", utils.GetPanicInfo()))
			err = fmt.Errorf("suite %s: html panic: %v", suite.Name, e)
		}
	}()
	return figure.SaveHTML(path, suite.Title, out.Figures)
}
