package report

import (
	"fmt"
	"strconv"

	"github.com/uyouii/latency-figures/dataset"
	"github.com/uyouii/latency-figures/derive"
	"github.com/uyouii/latency-figures/figure"
	"github.com/uyouii/latency-figures/model"
)

const (
	xLabelStations  = "Total STA Number"
	yLabelWeighted  = "Weighted Latency (ms)"
	yLabelAverage   = "Average Weighted Latency (ms)"
	titleWeighted   = "Weighted Latency Comparison (HP×1.5 + LP×0.5)"
	weightedCaption = "Weighted Latency (HP×1.5 + MP×1.5 + LP×0.5)"
)

// entry selects a policy for a chart, Label overrides the legend name.
type entry struct {
	Policy string
	Label  string
}

func (e entry) label() string {
	if e.Label != "" {
		return e.Label
	}
	return e.Policy
}

func entries(names ...string) []entry {
	res := make([]entry, len(names))
	for i, name := range names {
		res[i] = entry{Policy: name}
	}
	return res
}

// builder turns dataset policies into chart series.
type builder struct {
	ds      *dataset.Dataset
	palette palette
}

func newBuilder(ds *dataset.Dataset, p palette) *builder {
	return &builder{ds: ds, palette: p}
}

func (b *builder) stationCategories() []string {
	counts := b.ds.StationCounts()
	res := make([]string, len(counts))
	for i, n := range counts {
		res[i] = strconv.Itoa(int(n))
	}
	return res
}

// series builds one series per entry with curve picking the values.
func (b *builder) series(list []entry, curve func(*model.Policy) (model.Curve, error)) ([]figure.Series, error) {
	res := make([]figure.Series, 0, len(list))
	for i, e := range list {
		policy, err := b.ds.Policy(e.Policy)
		if err != nil {
			return nil, err
		}
		values, err := curve(policy)
		if err != nil {
			return nil, err
		}
		res = append(res, figure.Series{
			Name:   e.label(),
			Values: values,
			Style:  b.palette.style(e.Policy, i),
		})
	}
	return res, nil
}

func latencyOf(class model.TrafficClass) func(*model.Policy) (model.Curve, error) {
	return func(p *model.Policy) (model.Curve, error) {
		return p.Latency.Get(class).Clone(), nil
	}
}

func jitterOf(class model.TrafficClass) func(*model.Policy) (model.Curve, error) {
	return func(p *model.Policy) (model.Curve, error) {
		if !p.HasJitter() {
			return nil, fmt.Errorf("policy %s has no jitter data", p.Name)
		}
		return p.Jitter.Get(class).Clone(), nil
	}
}

func classYLabel(class model.TrafficClass) string {
	return class.AccessCategory() + " Latency (ms)"
}

// classBar is a grouped bar chart of one class latency per station count.
func (b *builder) classBar(title string, class model.TrafficClass, list []entry) (*figure.Chart, error) {
	series, err := b.series(list, latencyOf(class))
	if err != nil {
		return nil, err
	}
	return &figure.Chart{
		Kind:       figure.BarChart,
		Title:      title,
		XLabel:     xLabelStations,
		YLabel:     classYLabel(class),
		Categories: b.stationCategories(),
		Series:     series,
	}, nil
}

// classLine plots one class latency against the station count.
func (b *builder) classLine(title string, class model.TrafficClass, list []entry) (*figure.Chart, error) {
	series, err := b.series(list, latencyOf(class))
	if err != nil {
		return nil, err
	}
	return &figure.Chart{
		Kind:   figure.LineChart,
		Title:  title,
		XLabel: xLabelStations,
		YLabel: "Latency (ms)",
		X:      b.ds.StationCounts(),
		Series: series,
		Grid:   true,
	}, nil
}

// weightedLine plots the weighted latency against the station count.
func (b *builder) weightedLine(title string, list []entry) (*figure.Chart, error) {
	series, err := b.series(list, derive.PolicyWeightedLatency)
	if err != nil {
		return nil, err
	}
	return &figure.Chart{
		Kind:   figure.LineChart,
		Title:  title,
		XLabel: xLabelStations,
		YLabel: yLabelWeighted,
		X:      b.ds.StationCounts(),
		Series: series,
	}, nil
}

// perClassLines is one line panel per traffic class, ymax per class.
func (b *builder) perClassLines(list []entry, ymax map[model.TrafficClass]float64) ([]*figure.Chart, error) {
	panels := make([]*figure.Chart, 0, len(model.AllTrafficClasses))
	for _, class := range model.AllTrafficClasses {
		chart, err := b.classLine(classTitle(class), class, list)
		if err != nil {
			return nil, err
		}
		chart.YLabel = classYLabel(class)
		chart.YMax = ymax[class]
		panels = append(panels, chart)
	}
	return panels, nil
}

func classTitle(class model.TrafficClass) string {
	switch class {
	case model.ClassLP:
		return "AC_BK (Low Priority)"
	case model.ClassMP:
		return "AC_VI (Video)"
	case model.ClassHP:
		return "AC_VO (Voice)"
	}
	return class.String()
}

type weightedRow struct {
	Policy   *model.Policy
	Label    string
	Weighted model.Curve
	Average  float64
}

// weightedRows computes the weighted latency and its average per entry.
func (b *builder) weightedRows(list []entry) ([]weightedRow, error) {
	names := make([]string, len(list))
	for i, e := range list {
		names[i] = e.Policy
	}
	weighted, err := b.ds.WeightedLatencies(names...)
	if err != nil {
		return nil, err
	}
	rows := make([]weightedRow, 0, len(list))
	for _, e := range list {
		rows = append(rows, weightedRow{
			Policy:   b.ds.MustPolicy(e.Policy),
			Label:    e.label(),
			Weighted: weighted[e.Policy],
			Average:  derive.Mean(weighted[e.Policy]),
		})
	}
	return rows, nil
}

func synthEntries(ds *dataset.Dataset) []entry {
	res := []entry{}
	for _, policy := range ds.Synthetics() {
		res = append(res, entry{Policy: policy.Name})
	}
	return res
}

// presentEntries drops the entries whose policy is not in the dataset.
func presentEntries(ds *dataset.Dataset, list []entry) []entry {
	res := make([]entry, 0, len(list))
	for _, e := range list {
		if ds.Has(e.Policy) {
			res = append(res, e)
		}
	}
	return res
}
