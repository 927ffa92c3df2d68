package report

import (
	"context"
	"fmt"
	"strings"

	"github.com/uyouii/latency-figures/dataset"
	"github.com/uyouii/latency-figures/derive"
	"github.com/uyouii/latency-figures/figure"
	"github.com/uyouii/latency-figures/model"
)

const (
	SuiteNonShare = "ml-nonshare"
	nonShareLPCap = 2.5
)

func nonShareSuite() *Suite {
	return &Suite{
		Name:  SuiteNonShare,
		Title: "Latency figures with ML-NonShare",
		Build: buildNonShare,
	}
}

func nonShareEntries() []entry {
	return []entry{
		{Policy: dataset.PolicyPBM},
		{Policy: dataset.PolicyMPS},
		{Policy: dataset.PolicySU},
		{Policy: dataset.PolicyNonMU},
		{Policy: dataset.BaselineB0, Label: "ML-NonShare"},
		{Policy: dataset.PolicyMLOldV2, Label: "ML-Old"},
	}
}

func buildNonShare(ctx context.Context, env *Env) (*Output, error) {
	b := newBuilder(env.Dataset, nonSharePalette)
	list := nonShareEntries()

	lp, err := b.classBar("Latency Comparison - LP Traffic (AC_BK)", model.ClassLP, list)
	if err != nil {
		return nil, err
	}
	lp.YLabel = "Latency (ms)"
	lp.Cap = nonShareLPCap

	vi, err := b.classBar("Latency Comparison - AC_VI Traffic", model.ClassMP, list)
	if err != nil {
		return nil, err
	}
	vi.YLabel = "Latency (ms)"
	vi.Cap = 1.0
	vo, err := b.classBar("Latency Comparison - AC_VO Traffic", model.ClassHP, list)
	if err != nil {
		return nil, err
	}
	vo.YLabel = "Latency (ms)"
	vo.YMax = 0.4

	weighted, err := b.weightedLine(titleWeighted, list)
	if err != nil {
		return nil, err
	}
	weighted.Cap = 3.0
	weighted.Grid = true

	summary, err := nonShareSummary(env.Dataset)
	if err != nil {
		return nil, err
	}
	return &Output{
		Figures: []*figure.Figure{
			{Name: "fig7_lat_lp_with_ml_nonshare", Width: 14, Height: 7, Panels: []*figure.Chart{lp}},
			{Name: "fig7_lat_hp_with_ml_nonshare", Width: 16, Height: 6, Panels: []*figure.Chart{vi, vo}},
			{Name: "fig8_weighted_lat_with_ml_nonshare", Width: 14, Height: 8, Panels: []*figure.Chart{weighted}},
		},
		Summary: summary,
	}, nil
}

// nonShareSummary lists the data sources and the AC_BK latencies.
func nonShareSummary(ds *dataset.Dataset) (string, error) {
	var sb strings.Builder
	sb.WriteString(banner(70, "DATA SOURCE VERIFICATION"))
	sb.WriteString("Scheduler Mapping:\n")
	for _, name := range []string{dataset.PolicyPBM, dataset.PolicyMPS, dataset.PolicySU, dataset.PolicyNonMU} {
		policy, err := ds.Policy(name)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&sb, "  - %-12s -> %s\n", policy.Name, policy.Source)
	}
	sb.WriteString("  - ML-NonShare -> same as Non-MU-TXOP (100% accuracy imitation)\n\n")

	table := &markdownTable{Headers: []string{"nWifi", "PBM", "MPS", "SU", "Non-MU", "ML-NS"}}
	curves := make([]model.Curve, 0, 5)
	for _, name := range []string{dataset.PolicyPBM, dataset.PolicyMPS, dataset.PolicySU, dataset.PolicyNonMU, dataset.BaselineB0} {
		policy, err := ds.Policy(name)
		if err != nil {
			return "", err
		}
		curves = append(curves, policy.Latency.BK)
	}
	for i, n := range ds.StationCounts() {
		row := []string{fmt.Sprintf("%d", int(n))}
		for _, c := range curves {
			row = append(row, fmtMs(c[i]))
		}
		table.AddRow(row...)
	}
	sb.WriteString("AC_BK latency (ms):\n")
	sb.WriteString(table.Console([]int{6, 8, 8, 8, 8, 8}))
	if peak := derive.MaxOf(curves...); peak > nonShareLPCap {
		fmt.Fprintf(&sb, "Peak AC_BK latency %.3f ms, LP bars are capped at %.1f ms\n", peak, nonShareLPCap)
	}
	return sb.String(), nil
}
