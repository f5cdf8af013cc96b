package report

import (
	"github.com/pkg/errors"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/units"
)

// PlotForm is a plot request as typed into a form or given as flags:
// choices and ranges are still text.
type PlotForm struct {
	X           string `json:"x"`
	Y           string `json:"y"`
	XLabel      string `json:"xLabel"`
	YLabel      string `json:"yLabel"`
	TimeUnit    string `json:"timeUnit"`
	Style       string `json:"style"`
	Size        int    `json:"size"`
	DPI         int    `json:"dpi"`
	Transparent bool   `json:"transparent"`
	XRange      string `json:"xRange"`
	YRange      string `json:"yRange"`
}

// DefaultForm is DefaultRequest in text form.
func DefaultForm() PlotForm {
	req := DefaultRequest()
	return PlotForm{
		X:        string(req.X),
		Y:        string(req.Y),
		XLabel:   req.XLabel,
		YLabel:   req.YLabel,
		TimeUnit: req.TimeUnit.String(),
		Style:    string(req.Style),
		Size:     req.Size,
		DPI:      req.DPI,
	}
}

// Request parses the form into a validated PlotRequest.
func (f PlotForm) Request() (PlotRequest, error) {
	var req PlotRequest
	var err error
	if req.X, err = ParseVariable(f.X); err != nil {
		return req, errors.WithMessage(err, "x")
	}
	if req.Y, err = ParseVariable(f.Y); err != nil {
		return req, errors.WithMessage(err, "y")
	}
	if req.TimeUnit, err = units.ParseTimeUnit(f.TimeUnit); err != nil {
		return req, errors.Wrap(errs.ErrInvalidParameter, err.Error())
	}
	if req.Style, err = ParseRenderStyle(f.Style); err != nil {
		return req, err
	}
	if req.XRange, err = ParseRange(f.XRange); err != nil {
		return req, errors.WithMessage(err, "x")
	}
	if req.YRange, err = ParseRange(f.YRange); err != nil {
		return req, errors.WithMessage(err, "y")
	}
	req.XLabel = f.XLabel
	req.YLabel = f.YLabel
	req.Size = f.Size
	req.DPI = f.DPI
	req.Transparent = f.Transparent
	return req, req.Validate()
}
