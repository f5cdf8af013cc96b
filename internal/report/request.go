package report

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/units"
)

// Variable names a plottable quantity.
type Variable string

const (
	VarTime        Variable = "Time"
	VarPressure    Variable = "Pressure"
	VarTemperature Variable = "Temperature"
)

// ParseVariable is case-insensitive.
func ParseVariable(s string) (Variable, error) {
	for _, v := range []Variable{VarTime, VarPressure, VarTemperature} {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", errors.Wrapf(errs.ErrInvalidParameter, "unknown variable %q", s)
}

// RenderStyle is Line (connected strokes) or Scatter (markers).
type RenderStyle string

const (
	Line    RenderStyle = "Line"
	Scatter RenderStyle = "Scatter"
)

func ParseRenderStyle(s string) (RenderStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "line":
		return Line, nil
	case "scatter":
		return Scatter, nil
	}
	return "", errors.Wrapf(errs.ErrInvalidParameter, "unknown render style %q", s)
}

// Range is a hard axis bound.
type Range struct {
	Min, Max float64
}

// ParseRange reads "min,max". Empty text means no override and returns nil.
func ParseRange(text string) (*Range, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	parts := strings.Split(text, ",")
	if len(parts) != 2 {
		return nil, errors.Wrapf(errs.ErrInvalidParameter, "axis range %q must be \"min,max\"", text)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrInvalidParameter, "axis range %q: bad min", text)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return nil, errors.Wrapf(errs.ErrInvalidParameter, "axis range %q: bad max", text)
	}
	r := &Range{Min: lo, Max: hi}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Range) validate() error {
	if r == nil {
		return nil
	}
	if math.IsNaN(r.Min) || math.IsNaN(r.Max) || math.IsInf(r.Min, 0) || math.IsInf(r.Max, 0) {
		return errors.Wrapf(errs.ErrInvalidParameter, "axis range %g,%g must be finite", r.Min, r.Max)
	}
	if r.Min >= r.Max {
		return errors.Wrapf(errs.ErrInvalidParameter, "axis range min %g must be below max %g", r.Min, r.Max)
	}
	return nil
}

// String formats r the way ParseRange reads it.
func (r *Range) String() string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(r.Min, 'g', -1, 64) + "," + strconv.FormatFloat(r.Max, 'g', -1, 64)
}

// PlotRequest is one plot as asked for by a front end.
type PlotRequest struct {
	X           Variable
	Y           Variable
	XLabel      string
	YLabel      string
	TimeUnit    units.TimeUnit
	Style       RenderStyle
	Size        int // line width in points, or scatter marker size
	DPI         int
	Transparent bool
	XRange      *Range
	YRange      *Range
}

// DefaultRequest mirrors the form defaults: pressure over time in
// seconds, 2pt black line, 300 dpi.
func DefaultRequest() PlotRequest {
	return PlotRequest{
		X:        VarTime,
		Y:        VarPressure,
		XLabel:   "Time",
		YLabel:   "Pressure",
		TimeUnit: units.Seconds,
		Style:    Line,
		Size:     2,
		DPI:      300,
	}
}

// Validate checks everything that does not depend on the data.
func (req PlotRequest) Validate() error {
	switch req.X {
	case VarTime, VarPressure, VarTemperature:
	default:
		return errors.Wrapf(errs.ErrInvalidParameter, "unknown x variable %q", req.X)
	}
	switch req.Y {
	case VarPressure, VarTemperature:
	default:
		return errors.Wrapf(errs.ErrInvalidParameter, "y variable must be Pressure or Temperature, got %q", req.Y)
	}
	if req.Style != Line && req.Style != Scatter {
		return errors.Wrapf(errs.ErrInvalidParameter, "unknown render style %q", req.Style)
	}
	if req.Size <= 0 {
		return errors.Wrapf(errs.ErrInvalidParameter, "line width or marker size must be positive, got %d", req.Size)
	}
	if req.DPI <= 0 {
		return errors.Wrapf(errs.ErrInvalidParameter, "dpi must be positive, got %d", req.DPI)
	}
	if err := req.XRange.validate(); err != nil {
		return errors.WithMessage(err, "x")
	}
	if err := req.YRange.validate(); err != nil {
		return errors.WithMessage(err, "y")
	}
	return nil
}

// Format is an output image format.
type Format string

const (
	PNG Format = "png"
	JPG Format = "jpg"
	PDF Format = "pdf"
	SVG Format = "svg"
)

// ParseFormat accepts a bare extension with or without the dot.
func ParseFormat(ext string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), ".")) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPG, nil
	case "pdf":
		return PDF, nil
	case "svg":
		return SVG, nil
	}
	return "", errors.Wrapf(errs.ErrUnsupportedFormat, "unsupported output format %q (want png, jpg, pdf or svg)", ext)
}

// FormatFromPath picks the format from the destination's extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.Wrapf(errs.ErrUnsupportedFormat, "%s has no file extension", path)
	}
	return ParseFormat(ext)
}
