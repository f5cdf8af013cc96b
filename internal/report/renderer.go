package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
)

// Renderer draws one x/y series pair into w. Implementations get a
// request that has already been validated and series of equal length.
type Renderer interface {
	Name() string
	Render(w io.Writer, x, y []float64, req PlotRequest, format Format) error
}

// Renderer back ends.
const (
	RendererGonum   = "gonum"
	RendererGoChart = "gochart"
)

// NewRenderer returns the named back end configured with style.
func NewRenderer(name string, style Style) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RendererGonum:
		return NewGonumRenderer(style), nil
	case RendererGoChart:
		return NewGoChartRenderer(style), nil
	}
	return nil, errors.Wrapf(errs.ErrInvalidParameter, "unknown renderer %q (want %s or %s)", name, RendererGonum, RendererGoChart)
}

// RenderPlot validates req, resolves the series and returns the encoded image.
func RenderPlot(r Renderer, series *analysis.DerivedSeries, req PlotRequest, format Format) ([]byte, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	x, y, err := ResolveSeries(series, req)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	if err := r.Render(buf, x, y, req, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePlot renders into memory and then replaces dest in one step, so a
// failed request never leaves a partial file behind.
func SavePlot(r Renderer, series *analysis.DerivedSeries, req PlotRequest, dest string) error {
	format, err := FormatFromPath(dest)
	if err != nil {
		return err
	}
	img, err := RenderPlot(r, series, req, format)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(dest, img); err != nil {
		return err
	}
	jww.INFO.Printf("Saved %s plot (%s vs %s, %d bytes) to %s", strings.ToUpper(string(format)), req.Y, req.X, len(img), dest)
	return nil
}

func writeFileAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".tmp-*")
	if err != nil {
		return errors.WithMessagef(errs.ErrFileAccess, "failed to create %s: %v", dest, err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return errors.WithMessagef(errs.ErrFileAccess, "failed to write %s: %v", dest, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return errors.WithMessagef(errs.ErrFileAccess, "failed to write %s: %v", dest, err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		jww.DEBUG.Printf("chmod %s: %v", name, err)
	}
	if err := os.Rename(name, dest); err != nil {
		os.Remove(name)
		return errors.WithMessagef(errs.ErrFileAccess, "failed to replace %s: %v", dest, err)
	}
	return nil
}
