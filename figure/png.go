package figure

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	// share of a bar group occupied by bars
	barGroupFill = 0.8
	// share of a panel occupied by the plotting area
	plotAreaFill = 0.8
	// clipped values are annotated just below the cap
	capLabelPos = 0.96
)

var gridColor = color.Gray{Y: 210}

// SavePNG renders the figure to path at the given resolution, creating the
// parent directory when needed.
func SavePNG(fig *Figure, path string, dpi int) error {
	if err := fig.Validate(); err != nil {
		return err
	}

	plots := make([]*plot.Plot, 0, len(fig.Panels))
	panelWidth := fig.Width / float64(len(fig.Panels))
	for _, panel := range fig.Panels {
		p, err := NewPlot(panel, panelWidth)
		if err != nil {
			return fmt.Errorf("figure %s: %w", fig.Name, err)
		}
		plots = append(plots, p)
	}

	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(fig.Width)*vg.Inch, vg.Length(fig.Height)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	dc := draw.New(canvas)
	if len(plots) == 1 {
		plots[0].Draw(dc)
	} else {
		tiles := draw.Tiles{
			Rows:      1,
			Cols:      len(plots),
			PadX:      vg.Millimeter * 4,
			PadTop:    vg.Millimeter * 2,
			PadBottom: vg.Millimeter * 2,
			PadLeft:   vg.Millimeter * 2,
			PadRight:  vg.Millimeter * 2,
		}
		canvases := plot.Align([][]*plot.Plot{plots}, tiles, dc)
		for j, p := range plots {
			p.Draw(canvases[0][j])
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(file); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return file.Close()
}

// NewPlot builds a gonum plot for one chart. panelWidth is the width in
// inches the chart will be drawn at, used to size bars.
func NewPlot(c *Chart, panelWidth float64) (*plot.Plot, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = vg.Points(8)
	p.Legend.YOffs = -vg.Points(8)

	var err error
	switch c.Kind {
	case BarChart:
		err = addBars(p, c, panelWidth)
	case LineChart:
		err = addLines(p, c)
	case ScatterChart:
		err = addScatter(p, c)
	}
	if err != nil {
		return nil, err
	}

	for _, ref := range c.RefLines {
		if err := addRefLine(p, ref); err != nil {
			return nil, err
		}
	}

	p.Y.Min = 0
	if top := c.yTop(); top > 0 {
		p.Y.Max = top
	}
	if c.XMax > c.XMin {
		p.X.Min = c.XMin
		p.X.Max = c.XMax
	}
	return p, nil
}

// yTop is the fixed top of the y axis, 0 when automatic.
func (c *Chart) yTop() float64 {
	if c.YMax > 0 {
		return c.YMax
	}
	if c.Cap > 0 {
		return c.Cap * 1.04
	}
	return 0
}

// capValues clips at Cap, falling back to YMax so nothing is drawn past the axis.
func (c *Chart) capValues(values []float64) ([]float64, []int) {
	upper := c.Cap
	if upper <= 0 {
		upper = c.YMax
	}
	res := make([]float64, len(values))
	copy(res, values)
	clipped := []int{}
	if upper <= 0 {
		return res, clipped
	}
	for i, v := range res {
		if v > upper {
			res[i] = upper
			clipped = append(clipped, i)
		}
	}
	return res, clipped
}

func addBars(p *plot.Plot, c *Chart, panelWidth float64) error {
	if c.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Width = 0
		grid.Horizontal.Color = gridColor
		p.Add(grid)
	}
	p.NominalX(c.Categories...)

	group := vg.Length(panelWidth*plotAreaFill/float64(len(c.Categories))*barGroupFill) * vg.Inch
	width := group / vg.Length(len(c.Series))

	for i, s := range c.Series {
		offset := vg.Length(float64(i)-float64(len(c.Series))/2+0.5) * width
		clr, err := styleColor(s.Style)
		if err != nil {
			return err
		}
		values, clipped := c.capValues(s.Values)

		if len(s.PointColors) > 0 {
			for j, v := range values {
				pc, err := ParseColor(s.PointColors[j])
				if err != nil {
					return err
				}
				bar, err := plotter.NewBarChart(plotter.Values{v}, width)
				if err != nil {
					return err
				}
				bar.XMin = float64(j)
				bar.Offset = offset
				bar.Color = pc
				bar.LineStyle.Width = vg.Points(defaultBarEdgeSize)
				p.Add(bar)
			}
		} else {
			bar, err := plotter.NewBarChart(plotter.Values(values), width)
			if err != nil {
				return err
			}
			bar.Offset = offset
			bar.Color = clr
			bar.LineStyle.Width = vg.Points(defaultBarEdgeSize)
			p.Add(bar)
			p.Legend.Add(s.Name, bar)
		}

		if c.Cap > 0 && len(clipped) > 0 {
			if err := addCapLabels(p, c.Cap, clipped, s.Values, func(j int) float64 { return float64(j) },
				vg.Point{X: offset}, clr); err != nil {
				return err
			}
		}
		if c.ValueLabels {
			xys := make(plotter.XYs, len(values))
			labels := make([]string, len(values))
			for j, v := range values {
				xys[j] = plotter.XY{X: float64(j), Y: v}
				labels[j] = strconv.FormatFloat(s.Values[j], 'f', 2, 64)
			}
			if err := addLabels(p, xys, labels, vg.Point{X: offset, Y: vg.Points(3)}, color.Black); err != nil {
				return err
			}
		}
	}
	return nil
}

func addLines(p *plot.Plot, c *Chart) error {
	if c.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = gridColor
		grid.Horizontal.Color = gridColor
		p.Add(grid)
	}
	p.X.Tick.Marker = constantTicks(c.X)

	for _, s := range c.Series {
		clr, err := styleColor(s.Style)
		if err != nil {
			return err
		}
		xs := c.seriesX(s)
		values, clipped := c.capValues(s.Values)

		pts := make(plotter.XYs, len(values))
		for i, v := range values {
			pts[i] = plotter.XY{X: xs[i], Y: v}
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Color = clr
		line.LineStyle.Width = lineWidth(s.Style)
		line.LineStyle.Dashes = dashes(s.Style.Dash)
		p.Add(line)

		if shape := glyph(s.Style.Marker); shape != nil {
			points.GlyphStyle.Shape = shape
			points.GlyphStyle.Color = clr
			points.GlyphStyle.Radius = vg.Points(defaultMarkerSize)
			p.Add(points)
			p.Legend.Add(s.Name, line, points)
		} else {
			p.Legend.Add(s.Name, line)
		}

		if c.Cap > 0 && len(clipped) > 0 {
			if err := addCapLabels(p, c.Cap, clipped, s.Values, func(j int) float64 { return xs[j] },
				vg.Point{}, clr); err != nil {
				return err
			}
		}
	}
	return nil
}

func addScatter(p *plot.Plot, c *Chart) error {
	if c.Grid {
		grid := plotter.NewGrid()
		grid.Vertical.Color = gridColor
		grid.Horizontal.Color = gridColor
		p.Add(grid)
	}

	for _, s := range c.Series {
		clr, err := styleColor(s.Style)
		if err != nil {
			return err
		}
		xs := c.seriesX(s)
		pts := make(plotter.XYs, len(s.Values))
		for i, v := range s.Values {
			pts[i] = plotter.XY{X: xs[i], Y: v}
		}
		scatter, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		shape := glyph(s.Style.Marker)
		if shape == nil {
			shape = draw.CircleGlyph{}
		}
		scatter.GlyphStyle.Shape = shape
		scatter.GlyphStyle.Color = clr
		scatter.GlyphStyle.Radius = vg.Points(defaultMarkerSize * 2)
		p.Add(scatter)
		p.Legend.Add(s.Name, scatter)

		if len(s.PointLabels) > 0 {
			if err := addLabels(p, pts, s.PointLabels, vg.Point{X: vg.Points(6), Y: vg.Points(6)}, color.Black); err != nil {
				return err
			}
		}
	}
	return nil
}

func addRefLine(p *plot.Plot, ref RefLine) error {
	clr, err := styleColor(ref.Style)
	if err != nil {
		return err
	}
	y := ref.Y
	fn := plotter.NewFunction(func(float64) float64 { return y })
	fn.LineStyle.Color = clr
	fn.LineStyle.Width = lineWidth(ref.Style)
	fn.LineStyle.Dashes = dashes(ref.Style.Dash)
	p.Add(fn)
	if ref.Name != "" {
		p.Legend.Add(ref.Name, fn)
	}
	return nil
}

func addCapLabels(p *plot.Plot, upper float64, clipped []int, raw []float64,
	xAt func(int) float64, offset vg.Point, clr color.Color) error {
	xys := make(plotter.XYs, len(clipped))
	labels := make([]string, len(clipped))
	for i, j := range clipped {
		xys[i] = plotter.XY{X: xAt(j), Y: upper * capLabelPos}
		labels[i] = strconv.FormatFloat(raw[j], 'f', 1, 64)
	}
	return addLabels(p, xys, labels, offset, clr)
}

func addLabels(p *plot.Plot, xys plotter.XYs, labels []string, offset vg.Point, clr color.Color) error {
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].Color = clr
		l.TextStyle[i].XAlign = text.XCenter
	}
	l.Offset = offset
	p.Add(l)
	return nil
}

func constantTicks(xs []float64) plot.ConstantTicks {
	ticks := make(plot.ConstantTicks, 0, len(xs))
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: x, Label: strconv.FormatFloat(x, 'f', -1, 64)})
	}
	return ticks
}
