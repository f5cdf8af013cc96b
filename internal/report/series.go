package report

import (
	"github.com/pkg/errors"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/units"
)

// ResolveSeries picks the x and y values for req out of series. Time uses
// req.TimeUnit; the other variables ignore it. Time is only allowed on x.
func ResolveSeries(series *analysis.DerivedSeries, req PlotRequest) (x, y []float64, err error) {
	if series == nil || series.Len() == 0 {
		return nil, nil, errors.Wrap(errs.ErrMissingData, "no data loaded")
	}
	x = pick(series, req.X, req.TimeUnit)
	if req.Y != VarTime {
		y = pick(series, req.Y, req.TimeUnit)
	}
	if len(x) == 0 {
		return nil, nil, errors.Wrapf(errs.ErrMissingData, "x variable %q does not resolve to a series", req.X)
	}
	if len(y) == 0 {
		return nil, nil, errors.Wrapf(errs.ErrMissingData, "y variable %q does not resolve to a series", req.Y)
	}
	return x, y, nil
}

func pick(series *analysis.DerivedSeries, v Variable, unit units.TimeUnit) []float64 {
	switch v {
	case VarTime:
		return series.Time(unit)
	case VarPressure:
		return series.Pressure
	case VarTemperature:
		return series.Temperature
	}
	return nil
}
