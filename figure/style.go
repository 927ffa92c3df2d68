package figure

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/uyouii/latency-figures/common"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	defaultLineWidth   = 2.0
	defaultMarkerSize  = 4.0
	defaultBarEdgeSize = 0.5
)

// ParseColor parses "#RRGGBB" or "#RGB".
func ParseColor(hex string) (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: color %q", common.ErrorInvalidValue, hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q", common.ErrorInvalidValue, hex)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

func styleColor(s Style) (color.Color, error) {
	if s.Color == "" {
		return color.Black, nil
	}
	return ParseColor(s.Color)
}

func lineWidth(s Style) vg.Length {
	if s.Width > 0 {
		return vg.Points(s.Width)
	}
	return vg.Points(defaultLineWidth)
}

func dashes(d Dash) []vg.Length {
	switch d {
	case DashDashed:
		return []vg.Length{vg.Points(6), vg.Points(3)}
	case DashDotted:
		return []vg.Length{vg.Points(1.5), vg.Points(2.5)}
	case DashDashDot:
		return []vg.Length{vg.Points(6), vg.Points(2.5), vg.Points(1.5), vg.Points(2.5)}
	}
	return nil
}

func glyph(m Marker) draw.GlyphDrawer {
	switch m {
	case MarkerCircle:
		return draw.CircleGlyph{}
	case MarkerSquare:
		return draw.BoxGlyph{}
	case MarkerTriangle:
		return draw.PyramidGlyph{}
	case MarkerDown:
		return downTriangleGlyph{}
	case MarkerDiamond:
		return diamondGlyph{}
	case MarkerStar:
		return starGlyph{}
	case MarkerPlus:
		return draw.PlusGlyph{}
	case MarkerCross:
		return draw.CrossGlyph{}
	case MarkerRing:
		return draw.RingGlyph{}
	}
	return nil
}

type diamondGlyph struct{}

func (diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	c.Fill(p)
}

type downTriangleGlyph struct{}

func (downTriangleGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X - r, Y: pt.Y + r*0.7})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y + r*0.7})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Close()
	c.Fill(p)
}

type starGlyph struct{}

func (starGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	draw.PlusGlyph{}.DrawGlyph(c, sty, pt)
	draw.CrossGlyph{}.DrawGlyph(c, sty, pt)
}
