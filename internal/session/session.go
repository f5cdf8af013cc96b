// Package session holds the sensor log a front end is working on.
//
// Only the raw table is kept. Series and statistics are derived again from
// it for every preview, plot and report, so a changed channel selection can
// never be drawn against numbers computed for the previous one.
package session

import (
	"sync"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/parser"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/report"
)

type Session struct {
	opts     parser.Options
	renderer report.Renderer

	mu    sync.Mutex
	table *parser.RawTable
}

// New returns an empty session that reads files with opts and draws with r.
func New(opts parser.Options, r report.Renderer) *Session {
	return &Session{opts: opts, renderer: r}
}

// Load reads path and extracts it with sel. The loaded table replaces the
// current one only when both steps succeed.
func (s *Session) Load(path string, sel analysis.ChannelSelection) (*analysis.Extraction, error) {
	table, err := parser.ReadRawTable(path, s.opts)
	if err != nil {
		return nil, err
	}
	ext, err := analysis.Extract(table, sel)
	if err != nil {
		return nil, errors.WithMessage(err, path)
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	jww.INFO.Printf("Loaded %s: %d samples, %d columns", path, ext.Series.Len(), table.ColumnCount())
	return ext, nil
}

// Loaded reports the source path of the current table, if any.
func (s *Session) Loaded() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return "", false
	}
	return s.table.Source, true
}

// Extract derives series and statistics from the current table with sel.
func (s *Session) Extract(sel analysis.ChannelSelection) (*analysis.Extraction, error) {
	table, err := s.current()
	if err != nil {
		return nil, err
	}
	return analysis.Extract(table, sel)
}

// current returns the held table. Tables are never modified after load, so
// callers may use it without the lock.
func (s *Session) current() (*parser.RawTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.table == nil {
		return nil, errors.Wrap(errs.ErrMissingData, "no CSV file loaded")
	}
	return s.table, nil
}

// RenderPlot extracts with sel and returns the encoded plot.
func (s *Session) RenderPlot(sel analysis.ChannelSelection, req report.PlotRequest, format report.Format) ([]byte, error) {
	ext, err := s.Extract(sel)
	if err != nil {
		return nil, err
	}
	return report.RenderPlot(s.renderer, &ext.Series, req, format)
}

// SavePlot extracts with sel and writes the plot to dest.
func (s *Session) SavePlot(sel analysis.ChannelSelection, req report.PlotRequest, dest string) error {
	ext, err := s.Extract(sel)
	if err != nil {
		return err
	}
	return report.SavePlot(s.renderer, &ext.Series, req, dest)
}

// SaveReport extracts with sel and writes a summary PDF with an embedded
// PNG of req to dest.
func (s *Session) SaveReport(sel analysis.ChannelSelection, req report.PlotRequest, previewRows int, dest string) error {
	table, err := s.current()
	if err != nil {
		return err
	}
	ext, err := analysis.Extract(table, sel)
	if err != nil {
		return err
	}
	img, err := report.RenderPlot(s.renderer, &ext.Series, req, report.PNG)
	if err != nil {
		return err
	}
	return report.BuildSummaryReport(dest, report.SummaryReport{
		Source:      table.Source,
		Extraction:  ext,
		Request:     req,
		Plot:        img,
		PreviewRows: previewRows,
	})
}
