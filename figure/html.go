package figure

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	htmlChartWidth  = "1100px"
	htmlChartHeight = "560px"
)

// RenderHTML writes one interactive page holding every panel of the figures.
// Values are not clipped: tooltips show the measured numbers.
func RenderHTML(w io.Writer, title string, figs []*Figure) error {
	page := components.NewPage()
	page.PageTitle = title

	for _, fig := range figs {
		if err := fig.Validate(); err != nil {
			return err
		}
		for _, panel := range fig.Panels {
			chart, err := newEChart(fig.Name, panel)
			if err != nil {
				return fmt.Errorf("figure %s: %w", fig.Name, err)
			}
			page.AddCharts(chart)
		}
	}

	return page.Render(w)
}

func SaveHTML(path, title string, figs []*Figure) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	if err := RenderHTML(file, title, figs); err != nil {
		return err
	}
	return file.Close()
}

func globalOpts(name string, c *Chart) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{PageTitle: c.Title, Width: htmlChartWidth, Height: htmlChartHeight}),
		charts.WithTitleOpts(opts.Title{Title: c.Title, Subtitle: name}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: c.YLabel}),
	}
}

func newEChart(name string, c *Chart) (components.Charter, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.Kind {
	case BarChart:
		bar := charts.NewBar()
		bar.SetGlobalOptions(append(globalOpts(name, c),
			charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel}))...)
		bar.SetXAxis(c.Categories)
		for k, s := range c.Series {
			data := make([]opts.BarData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.BarData{Value: v}
				if len(s.PointColors) > 0 {
					data[i].ItemStyle = &opts.ItemStyle{Color: s.PointColors[i]}
				}
			}
			seriesOpts := []charts.SeriesOpts{charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Style.Color})}
			if k == 0 {
				seriesOpts = append(seriesOpts, markLines(c)...)
			}
			bar.AddSeries(s.Name, data, seriesOpts...)
		}
		return bar, nil

	case LineChart:
		line := charts.NewLine()
		line.SetGlobalOptions(append(globalOpts(name, c),
			charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel}))...)
		xs := make([]string, len(c.X))
		for i, x := range c.X {
			xs[i] = strconv.FormatFloat(x, 'f', -1, 64)
		}
		line.SetXAxis(xs)
		for k, s := range c.Series {
			data := make([]opts.LineData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.LineData{Value: v}
			}
			seriesOpts := []charts.SeriesOpts{
				charts.WithLineStyleOpts(opts.LineStyle{Color: s.Style.Color, Type: echartsLineType(s.Style.Dash)}),
				charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Style.Color}),
				charts.WithLineChartOpts(opts.LineChart{Symbol: echartsSymbol(s.Style.Marker)}),
			}
			if k == 0 {
				seriesOpts = append(seriesOpts, markLines(c)...)
			}
			line.AddSeries(s.Name, data, seriesOpts...)
		}
		return line, nil

	case ScatterChart:
		scatter := charts.NewScatter()
		scatter.SetGlobalOptions(append(globalOpts(name, c),
			charts.WithXAxisOpts(opts.XAxis{Name: c.XLabel, Type: "value"}))...)
		for _, s := range c.Series {
			xs := c.seriesX(s)
			data := make([]opts.ScatterData, len(s.Values))
			for i, v := range s.Values {
				data[i] = opts.ScatterData{Value: []interface{}{xs[i], v}, SymbolSize: 16}
				if len(s.PointLabels) > 0 {
					data[i].Name = s.PointLabels[i]
				}
			}
			scatter.AddSeries(s.Name, data, charts.WithItemStyleOpts(opts.ItemStyle{Color: s.Style.Color}))
		}
		return scatter, nil
	}
	return nil, fmt.Errorf("chart %q: unsupported kind %d", c.Title, c.Kind)
}

// markLines attaches the reference lines to the first series.
func markLines(c *Chart) []charts.SeriesOpts {
	res := []charts.SeriesOpts{}
	for _, ref := range c.RefLines {
		res = append(res, charts.WithMarkLineNameYAxisItemOpts(opts.MarkLineNameYAxisItem{Name: ref.Name, YAxis: ref.Y}))
	}
	return res
}

func echartsLineType(d Dash) string {
	switch d {
	case DashDashed, DashDashDot:
		return "dashed"
	case DashDotted:
		return "dotted"
	}
	return "solid"
}

func echartsSymbol(m Marker) string {
	switch m {
	case MarkerCircle, MarkerRing:
		return "circle"
	case MarkerSquare:
		return "rect"
	case MarkerTriangle, MarkerDown:
		return "triangle"
	case MarkerDiamond:
		return "diamond"
	case MarkerStar, MarkerPlus, MarkerCross:
		return "pin"
	}
	return "emptyCircle"
}
