package report

import (
	"image/color"
	"io"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
)

// GonumRenderer draws with gonum/plot and writes png, jpg, pdf and svg.
type GonumRenderer struct {
	style Style
}

func NewGonumRenderer(style Style) *GonumRenderer {
	return &GonumRenderer{style: style}
}

func (g *GonumRenderer) Name() string { return RendererGonum }

// Render draws a monochrome line or scatter plot of y over x.
func (g *GonumRenderer) Render(w io.Writer, x, y []float64, req PlotRequest, format Format) error {
	bg := background(req, format)
	p, err := g.newPlot(x, y, req, bg)
	if err != nil {
		return err
	}

	width := vg.Length(g.style.WidthInches) * vg.Inch
	height := vg.Length(g.style.HeightInches) * vg.Inch

	switch format {
	case PNG, JPG:
		c := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(req.DPI), vgimg.UseBackgroundColor(bg))
		p.Draw(draw.New(c))
		if format == PNG {
			_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(w)
		} else {
			_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(w)
		}
	case PDF:
		c := vgpdf.New(width, height)
		p.Draw(draw.New(c))
		_, err = c.WriteTo(w)
	case SVG:
		c := vgsvg.New(width, height)
		p.Draw(draw.New(c))
		_, err = c.WriteTo(w)
	default:
		return errors.Wrapf(errs.ErrUnsupportedFormat, "gonum renderer cannot write %q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to write %s plot", format)
	}
	return nil
}

func (g *GonumRenderer) newPlot(x, y []float64, req PlotRequest, bg color.Color) (*plot.Plot, error) {
	if len(x) != len(y) {
		return nil, errors.Wrapf(errs.ErrMalformedInput, "x has %d values, y has %d", len(x), len(y))
	}
	ink := g.style.ink()

	p := plot.New()
	p.BackgroundColor = bg
	p.X.Label.Text = req.XLabel
	p.Y.Label.Text = req.YLabel
	for _, ax := range []*plot.Axis{&p.X, &p.Y} {
		ax.Label.TextStyle.Font.Size = vg.Points(g.style.LabelSize)
		ax.Label.TextStyle.Color = ink
		ax.Label.Padding = vg.Points(g.style.LabelPadding)
		ax.Tick.Label.Font.Size = vg.Points(g.style.TickLabelSize)
		ax.Tick.Label.Color = ink
		ax.Tick.LineStyle.Color = ink
		ax.LineStyle.Color = ink
		if !g.style.MinorTicks {
			ax.Tick.Marker = majorTicks{}
		}
	}
	if g.style.InwardTicks {
		length := p.X.Tick.Length
		p.X.Tick.Length = 0
		p.Y.Tick.Length = 0
		p.Add(inwardTicks{length: length})
	}

	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}

	switch req.Style {
	case Scatter:
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrapf(errs.ErrMalformedInput, "failed to create scatter: %v", err)
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Color = ink
		s.GlyphStyle.Radius = markerRadius(req.Size)
		p.Add(s)
	default:
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, errors.Wrapf(errs.ErrMalformedInput, "failed to create line: %v", err)
		}
		line.Color = ink
		line.LineStyle.Width = vg.Points(float64(req.Size))
		p.Add(line)
	}

	// Hard bounds are applied after Add, which widens the axes to the data.
	if req.XRange != nil {
		p.X.Min, p.X.Max = req.XRange.Min, req.XRange.Max
	}
	if req.YRange != nil {
		p.Y.Min, p.Y.Max = req.YRange.Min, req.YRange.Max
	}
	return p, nil
}

// markerRadius keeps the marker area proportional to size: a marker of
// size n covers 2n square points.
func markerRadius(size int) vg.Length {
	return vg.Points(math.Sqrt(2*float64(size)) / 2)
}

// background is transparent on request, except for jpg which has no alpha.
func background(req PlotRequest, format Format) color.Color {
	if req.Transparent && format != JPG {
		return color.Transparent
	}
	return color.White
}

// majorTicks drops the unlabeled minor ticks of the default ticker.
type majorTicks struct{}

func (majorTicks) Ticks(min, max float64) []plot.Tick {
	var out []plot.Tick
	for _, t := range (plot.DefaultTicks{}).Ticks(min, max) {
		if !t.IsMinor() {
			out = append(out, t)
		}
	}
	return out
}

// inwardTicks draws the tick marks of both axes inside the data area,
// along its bottom and left edges. Minor ticks are half length.
type inwardTicks struct {
	length vg.Length
}

func (t inwardTicks) Plot(c draw.Canvas, p *plot.Plot) {
	for _, tk := range p.X.Tick.Marker.Ticks(p.X.Min, p.X.Max) {
		x := c.X(p.X.Norm(tk.Value))
		if c.ContainsX(x) {
			c.StrokeLine2(p.X.Tick.LineStyle, x, c.Min.Y, x, c.Min.Y+t.tickLength(tk))
		}
	}
	for _, tk := range p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max) {
		y := c.Y(p.Y.Norm(tk.Value))
		if c.ContainsY(y) {
			c.StrokeLine2(p.Y.Tick.LineStyle, c.Min.X, y, c.Min.X+t.tickLength(tk), y)
		}
	}
}

func (t inwardTicks) tickLength(tk plot.Tick) vg.Length {
	if tk.IsMinor() {
		return t.length / 2
	}
	return t.length
}
