package report

import (
	"bytes"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
)

// GoChartRenderer draws with go-chart. It writes png, jpg and svg; pdf is
// only available from the gonum renderer.
type GoChartRenderer struct {
	style Style
}

func NewGoChartRenderer(style Style) *GoChartRenderer {
	return &GoChartRenderer{style: style}
}

func (g *GoChartRenderer) Name() string { return RendererGoChart }

func (g *GoChartRenderer) Render(w io.Writer, x, y []float64, req PlotRequest, format Format) error {
	switch format {
	case PNG, JPG, SVG:
	default:
		return errors.Wrapf(errs.ErrUnsupportedFormat, "go-chart renderer cannot write %q", format)
	}
	if len(x) != len(y) {
		return errors.Wrapf(errs.ErrMalformedInput, "x has %d values, y has %d", len(x), len(y))
	}

	x, y = clipToRanges(x, y, req.XRange, req.YRange)
	if len(x) == 0 {
		return errors.Wrap(errs.ErrMissingData, "no points inside the axis ranges")
	}

	ch := g.newChart(x, y, req, background(req, format))

	var err error
	switch format {
	case PNG:
		err = ch.Render(chart.PNG, w)
	case SVG:
		err = ch.Render(chart.SVG, w)
	case JPG:
		var buf bytes.Buffer
		if err = ch.Render(chart.PNG, &buf); err == nil {
			err = reencodeJPEG(w, &buf)
		}
	}
	if err != nil {
		return errors.Wrapf(err, "failed to render %s chart", format)
	}
	return nil
}

func (g *GoChartRenderer) newChart(x, y []float64, req PlotRequest, bg color.Color) chart.Chart {
	dpi := float64(req.DPI)
	ink := toDrawingColor(g.style.ink())
	fill := toDrawingColor(bg)
	if fill.A == 0 {
		// go-chart reads the all-zero color as unset and paints white.
		fill = drawing.Color{R: 255, G: 255, B: 255, A: 0}
	}

	st := chart.Style{
		StrokeColor: ink,
		StrokeWidth: float64(req.Size),
	}
	if req.Style == Scatter {
		st = chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    markerRadius(req.Size).Points(),
			DotColor:    ink,
		}
	}

	axisStyle := chart.Style{FontSize: g.style.TickLabelSize, FontColor: ink, StrokeColor: ink}
	nameStyle := chart.Style{FontSize: g.style.LabelSize, FontColor: ink}

	ch := chart.Chart{
		Width:      int(g.style.WidthInches * dpi),
		Height:     int(g.style.HeightInches * dpi),
		DPI:        dpi,
		Background: chart.Style{FillColor: fill},
		Canvas:     chart.Style{FillColor: fill},
		XAxis:      chart.XAxis{Name: req.XLabel, NameStyle: nameStyle, Style: axisStyle},
		YAxis:      chart.YAxis{Name: req.YLabel, NameStyle: nameStyle, Style: axisStyle},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: x, YValues: y, Style: st},
		},
	}
	if req.XRange != nil {
		ch.XAxis.Range = &chart.ContinuousRange{Min: req.XRange.Min, Max: req.XRange.Max}
	}
	if req.YRange != nil {
		ch.YAxis.Range = &chart.ContinuousRange{Min: req.YRange.Min, Max: req.YRange.Max}
	}
	return ch
}

// clipToRanges drops the points outside the hard axis bounds. go-chart
// draws series values past a fixed ContinuousRange outside the plot area.
func clipToRanges(x, y []float64, xr, yr *Range) ([]float64, []float64) {
	if xr == nil && yr == nil {
		return x, y
	}
	cx := make([]float64, 0, len(x))
	cy := make([]float64, 0, len(y))
	for i := range x {
		if xr != nil && (x[i] < xr.Min || x[i] > xr.Max) {
			continue
		}
		if yr != nil && (y[i] < yr.Min || y[i] > yr.Max) {
			continue
		}
		cx = append(cx, x[i])
		cy = append(cy, y[i])
	}
	return cx, cy
}

func toDrawingColor(c color.Color) drawing.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return drawing.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

func reencodeJPEG(w io.Writer, pngData io.Reader) error {
	img, err := png.Decode(pngData)
	if err != nil {
		return err
	}
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}
