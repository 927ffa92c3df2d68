package report

import (
	"context"
	"fmt"
	"time"

	"github.com/uyouii/latency-figures/common"
	"github.com/uyouii/latency-figures/dataset"
	"github.com/uyouii/latency-figures/figure"
)

// Table is a text artifact written next to the figures.
type Table struct {
	FileName string
	Content  string
}

// Output is everything one suite produces.
type Output struct {
	Figures []*figure.Figure
	Tables  []Table
	// Summary is printed to the console.
	Summary string
}

// Env carries the inputs shared by every suite of one run.
type Env struct {
	Dataset *dataset.Dataset
	// Now is only used when Timestamp is set.
	Now       time.Time
	Timestamp bool
}

type Suite struct {
	Name  string
	Title string
	Build func(ctx context.Context, env *Env) (*Output, error)
}

func AllSuites() []*Suite {
	return []*Suite{
		styleFixSuite(),
		nonShareSuite(),
		allBaselinesSuite(),
		completeSuite(),
	}
}

func SuiteNames() []string {
	suites := AllSuites()
	res := make([]string, len(suites))
	for i, suite := range suites {
		res[i] = suite.Name
	}
	return res
}

func LookupSuite(name string) (*Suite, error) {
	for _, suite := range AllSuites() {
		if suite.Name == name {
			return suite, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown suite %q", common.ErrorInvalidValue, name)
}
