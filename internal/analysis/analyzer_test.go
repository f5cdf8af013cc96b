package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/parser"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/units"
)

const scenarioLog = `No,Time,P1,P2,T1,T2,T3,T4
,s,bar,bar,0.1C,0.1C,0.1C,0.1C
1,0,10,11,200,201,202,203
2,60,20,21,210,211,212,213
3,120,30,31,220,221,222,223
`

func mustTable(t *testing.T, text string) *parser.RawTable {
	t.Helper()
	table, err := parser.ParseRawTable(strings.NewReader(text), parser.Options{})
	if err != nil {
		t.Fatalf("ParseRawTable: %v", err)
	}
	return table
}

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func assertSeries(t *testing.T, name string, got, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if !near(got[i], want[i], 1e-9) {
			t.Errorf("%s[%d] = %v, want %v", name, i, got[i], want[i])
		}
	}
}

func TestExtractScenario(t *testing.T) {
	res, err := Extract(mustTable(t, scenarioLog), DefaultSelection())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	assertSeries(t, "pressure", res.Series.Pressure, []float64{10, 20, 30})
	assertSeries(t, "temperature", res.Series.Temperature, []float64{20, 21, 22})
	assertSeries(t, "timeSeconds", res.Series.TimeSeconds, []float64{0, 60, 120})
	assertSeries(t, "timeMinutes", res.Series.TimeMinutes, []float64{0, 1, 2})

	if !near(res.Pressure.Mean, 20, 1e-9) || !near(res.Pressure.StdDev, 10, 1e-9) {
		t.Errorf("pressure stats = %+v, want mean 20 std 10", res.Pressure)
	}
	if !near(res.Temperature.Mean, 21, 1e-9) || !near(res.Temperature.StdDev, 1, 1e-9) {
		t.Errorf("temperature stats = %+v, want mean 21 std 1", res.Temperature)
	}
	if res.Pressure.N != 3 || res.Temperature.N != 3 {
		t.Errorf("N = %d/%d, want 3", res.Pressure.N, res.Temperature.N)
	}
}

func TestExtractHours(t *testing.T) {
	res, err := Extract(mustTable(t, scenarioLog), DefaultSelection())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	assertSeries(t, "hours", res.Series.Time(units.Hours), []float64{0, 1.0 / 60, 2.0 / 60})
	assertSeries(t, "minutes", res.Series.Time(units.Minutes), []float64{0, 1, 2})
	assertSeries(t, "seconds", res.Series.Time(units.Seconds), []float64{0, 60, 120})
}

func TestExtractChannelOffsets(t *testing.T) {
	table := mustTable(t, scenarioLog)
	sel := ChannelSelection{PressureChannel: 2, TemperatureChannel: 4, PressureDivisor: 2, TemperatureDivisor: 10}
	res, err := Extract(table, sel)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	assertSeries(t, "pressure", res.Series.Pressure, []float64{5.5, 10.5, 15.5})
	assertSeries(t, "temperature", res.Series.Temperature, []float64{20.3, 21.3, 22.3})
}

// randomLog builds a table with rows samples of random readings and
// returns the raw pressure channel 1 and temperature channel 1 columns.
func randomLog(rng *rand.Rand, rows int) (string, []float64, []float64, []float64) {
	var b strings.Builder
	b.WriteString("No,Time,P1,P2,T1,T2,T3,T4\n,s,bar,bar,0.1C,0.1C,0.1C,0.1C\n")
	secs := make([]float64, rows)
	press := make([]float64, rows)
	temps := make([]float64, rows)
	for i := 0; i < rows; i++ {
		secs[i] = float64(i) * (1 + rng.Float64())
		press[i] = rng.NormFloat64()*50 + 100
		temps[i] = rng.NormFloat64()*30 + 250
		fmt.Fprintf(&b, "%d,%v,%v,0,%v,0,0,0\n", i+1, secs[i], press[i], temps[i])
	}
	return b.String(), secs, press, temps
}

func TestExtractProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		rows := 2 + rng.Intn(50)
		text, secs, press, temps := randomLog(rng, rows)
		sel := ChannelSelection{
			PressureChannel:    1,
			TemperatureChannel: 1,
			PressureDivisor:    0.5 + rng.Float64()*10,
			TemperatureDivisor: 0.5 + rng.Float64()*10,
		}
		res, err := Extract(mustTable(t, text), sel)
		if err != nil {
			t.Fatalf("trial %d: Extract: %v", trial, err)
		}
		if res.Series.Len() != rows {
			t.Fatalf("trial %d: Len = %d, want %d", trial, res.Series.Len(), rows)
		}
		for i := 0; i < rows; i++ {
			if !near(res.Series.TimeMinutes[i], secs[i]/60, 1e-9) {
				t.Fatalf("trial %d: minutes[%d] = %v, want %v", trial, i, res.Series.TimeMinutes[i], secs[i]/60)
			}
			if !near(res.Series.Pressure[i], press[i]/sel.PressureDivisor, 1e-9) {
				t.Fatalf("trial %d: pressure[%d] mismatch", trial, i)
			}
			if !near(res.Series.Temperature[i], temps[i]/sel.TemperatureDivisor, 1e-9) {
				t.Fatalf("trial %d: temperature[%d] mismatch", trial, i)
			}
		}
		checkStats(t, res.Series.Pressure, res.Pressure)
		checkStats(t, res.Series.Temperature, res.Temperature)
	}
}

func checkStats(t *testing.T, xs []float64, got SummaryStats) {
	t.Helper()
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	var ss float64
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	std := math.Sqrt(ss / float64(len(xs)-1))
	if math.Abs(got.Mean-mean) > 1e-6*math.Max(1, math.Abs(mean)) {
		t.Errorf("mean = %v, want %v", got.Mean, mean)
	}
	if math.Abs(got.StdDev-std) > 1e-6*math.Max(1, std) {
		t.Errorf("std = %v, want %v", got.StdDev, std)
	}
}

func TestExtractErrors(t *testing.T) {
	good := DefaultSelection()
	cases := []struct {
		name  string
		table string
		sel   ChannelSelection
		want  error
	}{
		{"zero pressure divisor", scenarioLog, ChannelSelection{1, 1, 0, 10}, errs.ErrInvalidParameter},
		{"negative temperature divisor", scenarioLog, ChannelSelection{1, 1, 1, -10}, errs.ErrInvalidParameter},
		{"NaN divisor", scenarioLog, ChannelSelection{1, 1, math.NaN(), 10}, errs.ErrInvalidParameter},
		{"pressure channel 3", scenarioLog, ChannelSelection{3, 1, 1, 10}, errs.ErrInvalidParameter},
		{"temperature channel 0", scenarioLog, ChannelSelection{1, 0, 1, 10}, errs.ErrInvalidParameter},
		{"units row only", "No,Time,P1,P2,T1\n,s,bar,bar,C\n", good, errs.ErrMalformedInput},
		{"no rows", "No,Time,P1,P2,T1\n", good, errs.ErrMalformedInput},
		{"too few columns", "No,Time,P1,P2\n,s,bar,bar\n1,0,1,2\n2,1,1,2\n", good, errs.ErrMalformedInput},
		{"short sample row", "No,Time,P1,P2,T1\n,s,bar,bar,C\n1,0,1,2,3\n2,1,1\n", good, errs.ErrMalformedInput},
		{"single sample", "No,Time,P1,P2,T1\n,s,bar,bar,C\n1,0,1,2,3\n", good, errs.ErrInsufficientData},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Extract(mustTable(t, tc.table), tc.sel)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestExtractParseErrorLocation(t *testing.T) {
	text := "No,Time,P1,P2,T1\n,s,bar,bar,C\n1,0,1,2,3\n2,60,1,2,oops\n"
	_, err := Extract(mustTable(t, text), DefaultSelection())
	if !errors.Is(err, errs.ErrParse) {
		t.Fatalf("err = %v, want parse error", err)
	}
	var cellErr *errs.CellError
	if !errors.As(err, &cellErr) {
		t.Fatalf("err = %T, want *errs.CellError", err)
	}
	if cellErr.Row != 2 || cellErr.Column != 4 || cellErr.Line != 4 {
		t.Errorf("location = row %d col %d line %d, want row 2 col 4 line 4", cellErr.Row, cellErr.Column, cellErr.Line)
	}
	if cellErr.Value != "oops" {
		t.Errorf("Value = %q", cellErr.Value)
	}
}

func TestExtractRejectsNonDecimalNumbers(t *testing.T) {
	for _, value := range []string{"NaN", "nan", "Inf", "-Infinity", "0x1p3", "-0X10", "1e400"} {
		text := "No,Time,P1,P2,T1\n,s,bar,bar,C\n1,0,1,2,3\n2,60," + value + ",2,3\n"
		_, err := Extract(mustTable(t, text), DefaultSelection())
		var cellErr *errs.CellError
		if !errors.As(err, &cellErr) {
			t.Errorf("%s: err = %v, want *errs.CellError", value, err)
			continue
		}
		if cellErr.Row != 2 || cellErr.Column != 2 || cellErr.Value != value {
			t.Errorf("%s: location = row %d col %d value %q", value, cellErr.Row, cellErr.Column, cellErr.Value)
		}
		if !errors.Is(err, errs.ErrParse) {
			t.Errorf("%s: err = %v, want parse error", value, err)
		}
	}
}

func TestExtractNilTable(t *testing.T) {
	_, err := Extract(nil, DefaultSelection())
	if !errors.Is(err, errs.ErrMissingData) {
		t.Fatalf("err = %v, want missing data", err)
	}
}
