package analysis

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/parser"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/units"
)

// Validate checks channel ranges and divisors.
func (sel ChannelSelection) Validate() error {
	if sel.PressureChannel < 1 || sel.PressureChannel > MaxPressureChannel {
		return errors.Wrapf(errs.ErrInvalidParameter, "pressure channel must be 1-%d, got %d", MaxPressureChannel, sel.PressureChannel)
	}
	if sel.TemperatureChannel < 1 || sel.TemperatureChannel > MaxTemperatureChannel {
		return errors.Wrapf(errs.ErrInvalidParameter, "temperature channel must be 1-%d, got %d", MaxTemperatureChannel, sel.TemperatureChannel)
	}
	if !validDivisor(sel.PressureDivisor) {
		return errors.Wrapf(errs.ErrInvalidParameter, "pressure divisor must be positive, got %g", sel.PressureDivisor)
	}
	if !validDivisor(sel.TemperatureDivisor) {
		return errors.Wrapf(errs.ErrInvalidParameter, "temperature divisor must be positive, got %g", sel.TemperatureDivisor)
	}
	return nil
}

func validDivisor(d float64) bool {
	return d > 0 && !math.IsInf(d, 1)
}

// PressureColumn is the table column read for the selected pressure channel.
func (sel ChannelSelection) PressureColumn() int {
	return sel.PressureChannel + parser.PressureColumnBase
}

// TemperatureColumn is the table column read for the selected temperature channel.
func (sel ChannelSelection) TemperatureColumn() int {
	return sel.TemperatureChannel + parser.TemperatureColumnBase
}

// Extract drops the units row, converts the selected columns and computes
// summary statistics for pressure and temperature. It does not modify table.
func Extract(table *parser.RawTable, sel ChannelSelection) (*Extraction, error) {
	if err := sel.Validate(); err != nil {
		return nil, err
	}
	if table == nil {
		return nil, errors.Wrap(errs.ErrMissingData, "no table loaded")
	}
	if table.RowCount() < 2 {
		return nil, errors.Wrapf(errs.ErrMalformedInput, "need a units row and at least one sample, got %d data rows", table.RowCount())
	}
	pCol, tCol := sel.PressureColumn(), sel.TemperatureColumn()
	cols := table.ColumnCount()
	if pCol >= cols {
		return nil, errors.Wrapf(errs.ErrMalformedInput, "pressure channel %d needs column %d, table has %d columns", sel.PressureChannel, pCol, cols)
	}
	if tCol >= cols {
		return nil, errors.Wrapf(errs.ErrMalformedInput, "temperature channel %d needs column %d, table has %d columns", sel.TemperatureChannel, tCol, cols)
	}

	n := table.RowCount() - 1
	res := &Extraction{
		Selection: sel,
		Series: DerivedSeries{
			TimeSeconds: make([]float64, n),
			TimeMinutes: make([]float64, n),
			Pressure:    make([]float64, n),
			Temperature: make([]float64, n),
		},
	}

	for i := 0; i < n; i++ {
		row := parser.UnitsRow + 1 + i
		seconds, err := cell(table, row, parser.TimeColumn)
		if err != nil {
			return nil, err
		}
		rawPressure, err := cell(table, row, pCol)
		if err != nil {
			return nil, err
		}
		rawTemperature, err := cell(table, row, tCol)
		if err != nil {
			return nil, err
		}

		elapsed := units.NewElapsedSeconds(seconds)
		res.Series.TimeSeconds[i] = elapsed.Seconds()
		res.Series.TimeMinutes[i] = elapsed.Minutes()
		res.Series.Pressure[i] = rawPressure / sel.PressureDivisor
		res.Series.Temperature[i] = rawTemperature / sel.TemperatureDivisor
	}

	var err error
	if res.Pressure, err = Summarize(res.Series.Pressure); err != nil {
		return nil, errors.WithMessage(err, "pressure")
	}
	if res.Temperature, err = Summarize(res.Series.Temperature); err != nil {
		return nil, errors.WithMessage(err, "temperature")
	}
	return res, nil
}

// cell parses one numeric cell of the data region.
func cell(table *parser.RawTable, row, col int) (float64, error) {
	r := table.Rows[row]
	if col >= len(r) {
		return 0, errors.Wrapf(errs.ErrMalformedInput, "row %d (line %d) has %d columns, need column %d", row, table.Line(row), len(r), col)
	}
	text := strings.TrimSpace(r[col])
	v, err := strconv.ParseFloat(text, 64)
	if err == nil && !isDecimal(text, v) {
		err = &strconv.NumError{Func: "ParseFloat", Num: text, Err: strconv.ErrSyntax}
	}
	if err != nil {
		return 0, &errs.CellError{Row: row, Line: table.Line(row), Column: col, Value: r[col], Err: err}
	}
	return v, nil
}

// isDecimal rejects what ParseFloat accepts beyond plain decimal notation:
// NaN, infinities and hex floats.
func isDecimal(text string, v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	digits := strings.TrimLeft(text, "+-")
	return !strings.HasPrefix(digits, "0x") && !strings.HasPrefix(digits, "0X")
}

// Summarize returns the mean and sample standard deviation of xs.
// The standard deviation needs at least two samples.
func Summarize(xs []float64) (SummaryStats, error) {
	if len(xs) < 2 {
		return SummaryStats{N: len(xs)}, errors.Wrapf(errs.ErrInsufficientData, "standard deviation needs at least 2 samples, got %d", len(xs))
	}
	mean, std := stat.MeanStdDev(xs, nil)
	return SummaryStats{Mean: mean, StdDev: std, N: len(xs)}, nil
}
