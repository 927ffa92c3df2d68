package figure

import (
	"fmt"

	"github.com/uyouii/latency-figures/common"
)

type Kind int

const (
	BarChart     Kind = 1
	LineChart    Kind = 2
	ScatterChart Kind = 3
)

type Marker string

const (
	MarkerNone     Marker = ""
	MarkerCircle   Marker = "circle"
	MarkerSquare   Marker = "square"
	MarkerTriangle Marker = "triangle"
	MarkerDown     Marker = "triangle-down"
	MarkerDiamond  Marker = "diamond"
	MarkerStar     Marker = "star"
	MarkerPlus     Marker = "plus"
	MarkerCross    Marker = "cross"
	MarkerRing     Marker = "ring"
)

type Dash string

const (
	DashSolid   Dash = "solid"
	DashDashed  Dash = "dashed"
	DashDotted  Dash = "dotted"
	DashDashDot Dash = "dashdot"
)

type Style struct {
	Color  string // "#RRGGBB"
	Marker Marker
	Dash   Dash
	// Width is the line width in points, 0 uses the default.
	Width float64
}

type Series struct {
	Name   string
	Values []float64
	// X overrides Chart.X for this series.
	X     []float64
	Style Style
	// PointColors colors bars individually, BarChart only.
	PointColors []string
	// PointLabels are drawn next to each point, ScatterChart only.
	PointLabels []string
}

// RefLine is a horizontal reference line.
type RefLine struct {
	Name  string
	Y     float64
	Style Style
}

type Chart struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// Categories label the bar groups of a BarChart.
	Categories []string
	// X holds the shared x values of line and scatter series.
	X      []float64
	Series []Series

	// YMax fixes the top of the y axis, 0 means automatic.
	YMax float64
	// XMin and XMax fix the x axis when XMax > XMin.
	XMin float64
	XMax float64

	// Cap clips values above it and annotates them with the real value.
	// 0 disables clipping.
	Cap         float64
	Grid        bool
	ValueLabels bool
	RefLines    []RefLine
}

// Figure is one output image made of one or more panels laid out in a row.
type Figure struct {
	Name   string // file name without extension
	Width  float64
	Height float64 // inches
	Panels []*Chart
}

func (c *Chart) seriesX(s Series) []float64 {
	if len(s.X) > 0 {
		return s.X
	}
	return c.X
}

// Validate checks that every series fits the chart's axes.
func (c *Chart) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil chart", common.ErrorInvalidValue)
	}
	if len(c.Series) == 0 {
		return fmt.Errorf("%w: chart %q has no series", common.ErrorInvalidValue, c.Title)
	}
	for _, s := range c.Series {
		switch c.Kind {
		case BarChart:
			if len(s.Values) != len(c.Categories) {
				return fmt.Errorf("%w: chart %q series %q has %d values for %d categories",
					common.ErrorLengthMismatch, c.Title, s.Name, len(s.Values), len(c.Categories))
			}
			if len(s.PointColors) > 0 && len(s.PointColors) != len(s.Values) {
				return fmt.Errorf("%w: chart %q series %q point colors",
					common.ErrorLengthMismatch, c.Title, s.Name)
			}
		case LineChart, ScatterChart:
			if len(s.Values) != len(c.seriesX(s)) {
				return fmt.Errorf("%w: chart %q series %q has %d values for %d x values",
					common.ErrorLengthMismatch, c.Title, s.Name, len(s.Values), len(c.seriesX(s)))
			}
			if len(s.PointLabels) > 0 && len(s.PointLabels) != len(s.Values) {
				return fmt.Errorf("%w: chart %q series %q point labels",
					common.ErrorLengthMismatch, c.Title, s.Name)
			}
		default:
			return fmt.Errorf("%w: chart %q has unknown kind %d", common.ErrorInvalidValue, c.Title, c.Kind)
		}
	}
	return nil
}

func (f *Figure) Validate() error {
	if f == nil || f.Name == "" {
		return fmt.Errorf("%w: figure without name", common.ErrorInvalidValue)
	}
	if len(f.Panels) == 0 {
		return fmt.Errorf("%w: figure %s has no panel", common.ErrorInvalidValue, f.Name)
	}
	if f.Width <= 0 || f.Height <= 0 {
		return fmt.Errorf("%w: figure %s size %vx%v", common.ErrorInvalidValue, f.Name, f.Width, f.Height)
	}
	for _, panel := range f.Panels {
		if err := panel.Validate(); err != nil {
			return fmt.Errorf("figure %s: %w", f.Name, err)
		}
	}
	return nil
}
