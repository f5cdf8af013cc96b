package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
)

const scenarioLog = `No,Time,P1,P2,T1,T2,T3,T4
,s,bar,bar,0.1C,0.1C,0.1C,0.1C
1,0,10,11,200,201,202,203
2,60,20,21,210,211,212,213
3,120,30,31,220,221,222,223
`

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&out)
	RootCmd.SetArgs(args)
	err := RootCmd.Execute()
	return out.String(), err
}

// Flag values stick to the package-level commands between runs, so the
// invocations share one test and go from valid to invalid.
func TestCommands(t *testing.T) {
	dir := t.TempDir()
	csv := filepath.Join(dir, "log.csv")
	if err := os.WriteFile(csv, []byte(scenarioLog), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "preview", "--rows", "2", csv)
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	for _, want := range []string{"Pressure mean", "20.00", "Temperature std", "1.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview output has no %q:\n%s", want, out)
		}
	}

	svg := filepath.Join(dir, "plot.svg")
	if _, err := run(t, "plot", "--dpi", "50", "--style", "Scatter", "--time-unit", "Minutes", csv, svg); err != nil {
		t.Fatalf("plot: %v", err)
	}
	if info, err := os.Stat(svg); err != nil || info.Size() == 0 {
		t.Fatalf("stat %s: %v", svg, err)
	}

	pdf := filepath.Join(dir, "summary.pdf")
	if _, err := run(t, "report", "--dpi", "50", csv, pdf); err != nil {
		t.Fatalf("report: %v", err)
	}

	bad := filepath.Join(dir, "bad.png")
	if _, err := run(t, "plot", "--x-range", "0,", csv, bad); !errors.Is(err, errs.ErrInvalidParameter) {
		t.Fatalf("plot with malformed range: err = %v, want invalid parameter", err)
	}
	if _, err := os.Stat(bad); !os.IsNotExist(err) {
		t.Fatal("plot written for a malformed range")
	}

	if _, err := run(t, "preview", filepath.Join(dir, "missing.csv")); !errors.Is(err, errs.ErrFileAccess) {
		t.Fatalf("preview of a missing file: err = %v, want file access error", err)
	}
}
