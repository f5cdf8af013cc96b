package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/parser"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/report"
)

const scenarioLog = `No,Time,P1,P2,T1,T2,T3,T4
,s,bar,bar,0.1C,0.1C,0.1C,0.1C
1,0,10,11,200,201,202,203
2,60,20,21,210,211,212,213
3,120,30,31,220,221,222,223
`

func writeFile(t *testing.T, dir, name, text string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newSession() *Session {
	return New(parser.Options{Encoding: "utf-8"}, report.NewGonumRenderer(report.DefaultStyle()))
}

func TestPlotBeforeLoad(t *testing.T) {
	s := newSession()
	dest := filepath.Join(t.TempDir(), "plot.png")
	err := s.SavePlot(analysis.DefaultSelection(), report.DefaultRequest(), dest)
	if !errors.Is(err, errs.ErrMissingData) {
		t.Fatalf("err = %v, want missing data", err)
	}
	if _, ok := s.Loaded(); ok {
		t.Fatal("session reports a table before any load")
	}
}

func TestFailedLoadKeepsPreviousTable(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.csv", scenarioLog)
	bad := writeFile(t, dir, "bad.csv", "No,Time,P1,P2,T1\n,s,bar,bar,C\n1,0,x,2,3\n2,1,1,2,3\n")

	s := newSession()
	if _, err := s.Load(good, analysis.DefaultSelection()); err != nil {
		t.Fatalf("Load(good): %v", err)
	}
	if _, err := s.Load(bad, analysis.DefaultSelection()); !errors.Is(err, errs.ErrParse) {
		t.Fatalf("Load(bad) err = %v, want parse error", err)
	}
	if _, err := s.Load(filepath.Join(dir, "missing.csv"), analysis.DefaultSelection()); !errors.Is(err, errs.ErrFileAccess) {
		t.Fatalf("Load(missing) err = %v, want file access error", err)
	}
	if src, _ := s.Loaded(); src != good {
		t.Fatalf("Loaded = %q, want %q", src, good)
	}
	ext, err := s.Extract(analysis.DefaultSelection())
	if err != nil {
		t.Fatal(err)
	}
	if ext.Pressure.Mean != 20 {
		t.Errorf("pressure mean = %v, want 20 from the first file", ext.Pressure.Mean)
	}
}

func TestSelectionChangeIsNotStale(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "log.csv", scenarioLog)
	s := newSession()
	if _, err := s.Load(path, analysis.DefaultSelection()); err != nil {
		t.Fatal(err)
	}

	sel := analysis.DefaultSelection()
	sel.PressureChannel = 2
	ext, err := s.Extract(sel)
	if err != nil {
		t.Fatal(err)
	}
	if ext.Series.Pressure[0] != 11 {
		t.Errorf("pressure[0] = %v, want channel 2 value 11", ext.Series.Pressure[0])
	}

	sel.PressureDivisor = 0
	dest := filepath.Join(dir, "plot.png")
	if err := s.SavePlot(sel, report.DefaultRequest(), dest); !errors.Is(err, errs.ErrInvalidParameter) {
		t.Fatalf("err = %v, want invalid parameter", err)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("plot written for an invalid selection")
	}
}

func TestMalformedRangeWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "log.csv", scenarioLog)
	s := newSession()
	if _, err := s.Load(path, analysis.DefaultSelection()); err != nil {
		t.Fatal(err)
	}

	form := report.DefaultForm()
	form.XRange = "0,"
	if _, err := form.Request(); !errors.Is(err, errs.ErrInvalidParameter) {
		t.Fatalf("err = %v, want invalid parameter", err)
	}

	req := report.DefaultRequest()
	req.DPI = 50
	dest := filepath.Join(dir, "plot.svg")
	if err := s.SavePlot(analysis.DefaultSelection(), req, dest); err != nil {
		t.Fatalf("SavePlot: %v", err)
	}
}

func TestSaveReport(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "log.csv", scenarioLog)
	s := newSession()
	if _, err := s.Load(path, analysis.DefaultSelection()); err != nil {
		t.Fatal(err)
	}
	req := report.DefaultRequest()
	req.DPI = 72
	dest := filepath.Join(dir, "summary.pdf")
	if err := s.SaveReport(analysis.DefaultSelection(), req, 0, dest); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
	if info, err := os.Stat(dest); err != nil || info.Size() == 0 {
		t.Fatalf("stat: %v", err)
	}
}

func TestReportSourceMatchesNumbersDuringReload(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.csv", scenarioLog)
	second := writeFile(t, dir, "second.csv", strings.Replace(scenarioLog, "1,0,10,", "1,0,40,", 1))
	wantMean := map[string]float64{first: 20, second: 30}

	s := newSession()
	if _, err := s.Load(first, analysis.DefaultSelection()); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			path := first
			if i%2 == 0 {
				path = second
			}
			if _, err := s.Load(path, analysis.DefaultSelection()); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	defer wg.Wait()

	req := report.DefaultRequest()
	req.DPI = 30
	for i := 0; i < 50; i++ {
		table, err := s.current()
		if err != nil {
			t.Fatal(err)
		}
		ext, err := analysis.Extract(table, analysis.DefaultSelection())
		if err != nil {
			t.Fatal(err)
		}
		if ext.Pressure.Mean != wantMean[table.Source] {
			t.Fatalf("%s: pressure mean = %v, want %v", table.Source, ext.Pressure.Mean, wantMean[table.Source])
		}
	}
	if err := s.SaveReport(analysis.DefaultSelection(), req, 0, filepath.Join(dir, "summary.pdf")); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}
}
