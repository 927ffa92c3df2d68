package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/uyouii/latency-figures/dataset"
	"github.com/uyouii/latency-figures/figure"
	"github.com/uyouii/latency-figures/model"
)

const SuiteStyleFix = "style-fix"

// jitter line style per traffic class
var (
	classMarkers = map[model.TrafficClass]figure.Marker{
		model.ClassLP: figure.MarkerCircle,
		model.ClassMP: figure.MarkerSquare,
		model.ClassHP: figure.MarkerTriangle,
	}
	classDashes = map[model.TrafficClass]figure.Dash{
		model.ClassLP: figure.DashSolid,
		model.ClassMP: figure.DashDashed,
		model.ClassHP: figure.DashDashDot,
	}
)

func styleFixSuite() *Suite {
	return &Suite{
		Name:  SuiteStyleFix,
		Title: "Section 7 figures with consistent style",
		Build: buildStyleFix,
	}
}

func buildStyleFix(ctx context.Context, env *Env) (*Output, error) {
	b := newBuilder(env.Dataset, thesisPalette)
	list := []entry{
		{Policy: dataset.PolicyPBM, Label: "PBM Scheduler"},
		{Policy: dataset.PolicyMPS, Label: "MPS Scheduler"},
		{Policy: dataset.PolicySU, Label: "SU Scheduler"},
		{Policy: dataset.PolicyNonMU, Label: "Non-MU-TXOP Scheduler"},
		{Policy: dataset.PolicyMLOldV2, Label: "ML Scheduler"},
	}
	bar, err := b.classBar("Latency Comparison - LP Traffic", model.ClassLP, list)
	if err != nil {
		return nil, err
	}
	bar.YLabel = "Latency (ms)"
	bar.YMax = 1.8

	jitter, err := jitterChart(b)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(banner(60, "Fixing style inconsistencies in Section 7 & 8 figures"))
	sb.WriteString("Fixed: 7.2c1lat_bar_lp_with_ML.png\n")
	sb.WriteString("  - Title: 'Latency Comparison - LP Traffic'\n")
	sb.WriteString("  - Legend: 'Scheduler' suffix, 'Non-MU-TXOP' naming\n")
	sb.WriteString("Fixed: 7.7c1jitt_line.png\n")
	sb.WriteString("  - ML - LP, ML - MP, ML - HP jitter lines\n")

	return &Output{
		Figures: []*figure.Figure{
			{Name: "7.2c1lat_bar_lp_with_ML", Width: 14, Height: 7, Panels: []*figure.Chart{bar}},
			{Name: "7.7c1jitt_line", Width: 14, Height: 9, Panels: []*figure.Chart{jitter}},
		},
		Summary: sb.String(),
	}, nil
}

// jitterChart draws one line per policy and class: color by policy, marker
// and dash by class. Non-MU-TXOP is always dotted, ML always a star.
func jitterChart(b *builder) (*figure.Chart, error) {
	groups := []entry{
		{Policy: dataset.PolicyPBM, Label: "PBM"},
		{Policy: dataset.PolicyMPS, Label: "MPS"},
		{Policy: dataset.PolicySU, Label: "SU"},
		{Policy: dataset.PolicyNonMU, Label: "Non-MU-TXOP"},
		{Policy: dataset.PolicyMLOldV2, Label: "ML"},
	}
	chart := &figure.Chart{
		Kind:   figure.LineChart,
		Title:  "Jitter Comparison",
		XLabel: xLabelStations,
		YLabel: "Jitter (Std Dev) (ms)",
		X:      b.ds.StationCounts(),
		YMax:   1.5,
		XMin:   5,
		XMax:   31,
	}
	for i, g := range groups {
		base := b.palette.style(g.Policy, i)
		for _, class := range model.AllTrafficClasses {
			series, err := b.series([]entry{g}, jitterOf(class))
			if err != nil {
				return nil, err
			}
			s := series[0]
			s.Name = fmt.Sprintf("%s - %s", g.label(), class)
			s.Style = figure.Style{
				Color:  base.Color,
				Marker: classMarkers[class],
				Dash:   classDashes[class],
				Width:  base.Width,
			}
			switch g.Policy {
			case dataset.PolicyNonMU:
				s.Style.Dash = figure.DashDotted
			case dataset.PolicyMLOldV2:
				s.Style.Marker = figure.MarkerStar
			}
			chart.Series = append(chart.Series, s)
		}
	}
	return chart, nil
}
