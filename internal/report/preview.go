package report

import (
	"fmt"
	"strings"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
)

// DefaultPreviewRows is how many samples the preview panes show.
const DefaultPreviewRows = 5

// PreviewRow is one aligned sample of the derived series.
type PreviewRow struct {
	Index       int     `json:"index"`
	TimeSeconds float64 `json:"timeSeconds"`
	Pressure    float64 `json:"pressure"`
	Temperature float64 `json:"temperature"`
}

// PreviewRows returns the first n samples. n <= 0 returns all of them.
func PreviewRows(series *analysis.DerivedSeries, n int) []PreviewRow {
	total := series.Len()
	if n <= 0 || n > total {
		n = total
	}
	rows := make([]PreviewRow, n)
	for i := 0; i < n; i++ {
		rows[i] = PreviewRow{
			Index:       i,
			TimeSeconds: series.TimeSeconds[i],
			Pressure:    series.Pressure[i],
			Temperature: series.Temperature[i],
		}
	}
	return rows
}

// StatLine is one labeled statistic, formatted to two decimals.
type StatLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// StatLines lists mean and standard deviation for both channels.
func StatLines(ext *analysis.Extraction) []StatLine {
	if ext == nil {
		return nil
	}
	return []StatLine{
		{"Pressure mean", fmt.Sprintf("%.2f", ext.Pressure.Mean)},
		{"Pressure std", fmt.Sprintf("%.2f", ext.Pressure.StdDev)},
		{"Temperature mean", fmt.Sprintf("%.2f", ext.Temperature.Mean)},
		{"Temperature std", fmt.Sprintf("%.2f", ext.Temperature.StdDev)},
	}
}

// FormatPreview renders rows as a plain fixed-width table.
func FormatPreview(rows []PreviewRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%5s %12s %12s %12s\n", "#", "Time (s)", "Pressure", "Temperature")
	for _, r := range rows {
		fmt.Fprintf(&b, "%5d %12.2f %12.4g %12.4g\n", r.Index, r.TimeSeconds, r.Pressure, r.Temperature)
	}
	return b.String()
}
