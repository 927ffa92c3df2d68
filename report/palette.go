package report

import (
	"github.com/uyouii/latency-figures/dataset"
	"github.com/uyouii/latency-figures/figure"
)

type palette map[string]figure.Style

// fallbackColors are used for policies a palette does not know, e.g.
// baselines added through the configuration.
var fallbackColors = []string{"#bcbd22", "#8c564b", "#17becf", "#7f7f7f", "#e377c2", "#1f77b4"}

func (p palette) style(name string, idx int) figure.Style {
	if s, ok := p[name]; ok {
		return s
	}
	return figure.Style{
		Color:  fallbackColors[idx%len(fallbackColors)],
		Marker: figure.MarkerCross,
		Dash:   figure.DashDashed,
	}
}

// thesis chapter 7 colors, MPS red
var thesisPalette = palette{
	dataset.PolicyPBM:     {Color: "#1f77b4", Marker: figure.MarkerCircle, Dash: figure.DashSolid},
	dataset.PolicyMPS:     {Color: "#d62728", Marker: figure.MarkerSquare, Dash: figure.DashSolid},
	dataset.PolicySU:      {Color: "#2ca02c", Marker: figure.MarkerTriangle, Dash: figure.DashSolid},
	dataset.PolicyNonMU:   {Color: "#8B4513", Marker: figure.MarkerDiamond, Dash: figure.DashDotted},
	dataset.PolicyMLOldV2: {Color: "#9467bd", Marker: figure.MarkerStar, Dash: figure.DashSolid, Width: 2},
}

var nonSharePalette = palette{
	dataset.PolicyPBM:     {Color: "#1f77b4", Marker: figure.MarkerCircle, Dash: figure.DashSolid},
	dataset.PolicyMPS:     {Color: "#d62728", Marker: figure.MarkerSquare, Dash: figure.DashSolid},
	dataset.PolicySU:      {Color: "#2ca02c", Marker: figure.MarkerTriangle, Dash: figure.DashSolid},
	dataset.PolicyNonMU:   {Color: "#8B4513", Marker: figure.MarkerDiamond, Dash: figure.DashDotted},
	dataset.BaselineB0:    {Color: "#9467bd", Marker: figure.MarkerStar, Dash: figure.DashDashed},
	dataset.PolicyMLOldV2: {Color: "#ff7f0e", Marker: figure.MarkerRing, Dash: figure.DashDashDot},
}

// rule-based in cool colors, learned in warm ones
var baselinePalette = palette{
	dataset.PolicyPBM:     {Color: "#1f77b4", Marker: figure.MarkerCircle, Dash: figure.DashSolid},
	dataset.PolicyMPS:     {Color: "#2ca02c", Marker: figure.MarkerSquare, Dash: figure.DashSolid},
	dataset.PolicySU:      {Color: "#17becf", Marker: figure.MarkerTriangle, Dash: figure.DashSolid},
	dataset.PolicyNonMU:   {Color: "#8B4513", Marker: figure.MarkerDiamond, Dash: figure.DashDotted, Width: 1.5},
	dataset.PolicyMLOld:   {Color: "#d62728", Marker: figure.MarkerDown, Dash: figure.DashDashed},
	dataset.PolicyMLOldV2: {Color: "#ff7f0e", Marker: figure.MarkerRing, Dash: figure.DashDashed},
	dataset.BaselineB0:    {Color: "#9467bd", Marker: figure.MarkerStar, Dash: figure.DashDotted, Width: 1.5},
	dataset.BaselineB1:    {Color: "#ff7f0e", Marker: figure.MarkerRing, Dash: figure.DashDashed},
	dataset.BaselineB2:    {Color: "#e377c2", Marker: figure.MarkerPlus, Dash: figure.DashDashed},
	dataset.BaselineB3:    {Color: "#7f7f7f", Marker: figure.MarkerCross, Dash: figure.DashDashed},
}
