package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"path/filepath"

	jww "github.com/spf13/jwalterweatherman"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/config"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/report"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/session"
)

// App is the desktop window's bridge to a session. Every exported method is
// callable from the page's JavaScript.
type App struct {
	ctx     context.Context
	cfg     *config.Config
	session *session.Session
}

// SelectionForm is a channel selection as sent by the page.
type SelectionForm struct {
	PressureChannel    int     `json:"pressureChannel"`
	TemperatureChannel int     `json:"temperatureChannel"`
	PressureDivisor    float64 `json:"pressureDivisor"`
	TemperatureDivisor float64 `json:"temperatureDivisor"`
}

func (f SelectionForm) selection() analysis.ChannelSelection {
	return analysis.ChannelSelection{
		PressureChannel:    f.PressureChannel,
		TemperatureChannel: f.TemperatureChannel,
		PressureDivisor:    f.PressureDivisor,
		TemperatureDivisor: f.TemperatureDivisor,
	}
}

// Settings seeds the page's controls.
type Settings struct {
	Selection SelectionForm   `json:"selection"`
	Plot      report.PlotForm `json:"plot"`
	Rows      int             `json:"rows"`
}

// Preview is what the page shows after a load.
type Preview struct {
	Source  string              `json:"source"`
	Samples int                 `json:"samples"`
	Rows    []report.PreviewRow `json:"rows"`
	Stats   []report.StatLine   `json:"stats"`
}

func NewApp(cfg *config.Config) (*App, error) {
	r, err := cfg.NewRenderer()
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:     cfg,
		session: session.New(cfg.ParserOptions(), r),
	}, nil
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods.
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
}

func (a *App) sendStatus(message string) {
	if a.ctx != nil {
		runtime.EventsEmit(a.ctx, "statusUpdate", message)
	}
	jww.INFO.Println(message)
}

// fail reports err on the status line and hands it back to the page.
func (a *App) fail(err error) error {
	a.sendStatus(fmt.Sprintf("%s: %v", errs.Title(err), err))
	return err
}

func (a *App) Defaults() Settings {
	sel := a.cfg.Selection()
	return Settings{
		Selection: SelectionForm{
			PressureChannel:    sel.PressureChannel,
			TemperatureChannel: sel.TemperatureChannel,
			PressureDivisor:    sel.PressureDivisor,
			TemperatureDivisor: sel.TemperatureDivisor,
		},
		Plot: a.cfg.PlotForm(),
		Rows: a.cfg.Rows,
	}
}

// ChooseCSV asks for a CSV file. An empty path means the dialog was
// cancelled.
func (a *App) ChooseCSV() (string, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title: "Open CSV",
		Filters: []runtime.FileFilter{
			{DisplayName: "CSV files (*.csv)", Pattern: "*.csv"},
			{DisplayName: "All files", Pattern: "*.*"},
		},
	})
	if err != nil {
		return "", a.fail(err)
	}
	return path, nil
}

// LoadCSV replaces the session's table with path and returns the preview.
// On failure the previously loaded file stays active.
func (a *App) LoadCSV(path string, sel SelectionForm) (*Preview, error) {
	a.sendStatus(fmt.Sprintf("Loading: %s", path))
	ext, err := a.session.Load(path, sel.selection())
	if err != nil {
		return nil, a.fail(err)
	}
	a.sendStatus(fmt.Sprintf("Loaded %d samples from %s", ext.Series.Len(), filepath.Base(path)))
	return &Preview{
		Source:  path,
		Samples: ext.Series.Len(),
		Rows:    report.PreviewRows(&ext.Series, a.cfg.Rows),
		Stats:   report.StatLines(ext),
	}, nil
}

// PreviewPlot renders the request as a PNG data URL for the page's image.
func (a *App) PreviewPlot(sel SelectionForm, form report.PlotForm) (string, error) {
	req, err := form.Request()
	if err != nil {
		return "", a.fail(err)
	}
	img, err := a.session.RenderPlot(sel.selection(), req, report.PNG)
	if err != nil {
		return "", a.fail(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}

// SavePlot asks for a destination and writes the plot there. It returns the
// saved path, or "" when the dialog was cancelled.
func (a *App) SavePlot(sel SelectionForm, form report.PlotForm) (string, error) {
	req, err := form.Request()
	if err != nil {
		return "", a.fail(err)
	}
	dest, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save Plot",
		DefaultFilename: "plot.png",
		Filters: []runtime.FileFilter{
			{DisplayName: "PNG (*.png)", Pattern: "*.png"},
			{DisplayName: "JPEG (*.jpg)", Pattern: "*.jpg;*.jpeg"},
			{DisplayName: "PDF (*.pdf)", Pattern: "*.pdf"},
			{DisplayName: "SVG (*.svg)", Pattern: "*.svg"},
		},
	})
	if err != nil {
		return "", a.fail(err)
	}
	if dest == "" {
		return "", nil
	}
	if err := a.session.SavePlot(sel.selection(), req, dest); err != nil {
		return "", a.fail(err)
	}
	a.sendStatus(fmt.Sprintf("Plot saved successfully: %s", dest))
	return dest, nil
}

// SaveReport asks for a PDF destination and writes the summary report with
// the current plot. It returns the saved path, or "" when cancelled.
func (a *App) SaveReport(sel SelectionForm, form report.PlotForm) (string, error) {
	req, err := form.Request()
	if err != nil {
		return "", a.fail(err)
	}
	dest, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Save Report",
		DefaultFilename: "summary.pdf",
		Filters: []runtime.FileFilter{
			{DisplayName: "PDF (*.pdf)", Pattern: "*.pdf"},
		},
	})
	if err != nil {
		return "", a.fail(err)
	}
	if dest == "" {
		return "", nil
	}
	return a.saveReport(sel.selection(), req, dest)
}

func (a *App) saveReport(sel analysis.ChannelSelection, req report.PlotRequest, dest string) (string, error) {
	if err := a.session.SaveReport(sel, req, a.cfg.Rows, dest); err != nil {
		return "", a.fail(err)
	}
	a.sendStatus(fmt.Sprintf("Report saved successfully: %s", dest))
	return dest, nil
}
