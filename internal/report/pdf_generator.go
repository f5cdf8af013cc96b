package report

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"
	jww "github.com/spf13/jwalterweatherman"

	"github.com/wjgoarxiv/dwspapyrus_go/internal/analysis"
	"github.com/wjgoarxiv/dwspapyrus_go/internal/errs"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// SummaryReport is the content of one summary PDF.
type SummaryReport struct {
	Source      string
	Extraction  *analysis.Extraction
	Request     PlotRequest
	Plot        []byte // PNG; omitted from the page when empty
	PreviewRows int
	Generated   time.Time
}

// pdfStyler keeps the named text styles and the flowing Y position.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightLandscape - pdfMargin,
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) checkAddPage(needed float64) {
	if s.currentY+needed > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = s.contentTopY
	}
}

func (s *pdfStyler) writeLine(text, style, align string) {
	s.applyStyle(style)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable draws a header row and body rows with relative column widths.
func (s *pdfStyler) writeTable(headers []string, widthsRel []float64, rows [][]string) {
	widths := make([]float64, len(widthsRel))
	for i, rel := range widthsRel {
		widths[i] = rel * pdfContentWidth
	}
	s.checkAddPage(s.lineHeight * 2)

	x := pdfMargin
	s.applyStyle("tableHeader")
	for i, h := range headers {
		s.pdf.SetXY(x, s.currentY)
		s.pdf.CellFormat(widths[i], s.lineHeight, h, "1", 0, "C", true, 0, "")
		x += widths[i]
	}
	s.currentY += s.lineHeight

	s.applyStyle("tableCell")
	for _, row := range rows {
		s.checkAddPage(s.lineHeight)
		x = pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(widths[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += widths[i]
		}
		s.currentY += s.lineHeight
	}
}

func (s *pdfStyler) addImage(img []byte, name string, width, height float64, caption string) {
	s.pdf.RegisterImageReader(name, "PNG", bytes.NewReader(img))
	s.checkAddPage(height + s.lineHeight)
	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.Image(name, x, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height
	if caption != "" {
		s.addSpacer(1)
		s.writeLine(caption, "normal", "C")
	}
}

// BuildSummaryReport writes the selection, statistics, the first preview
// rows and the plot to a landscape Letter PDF at path.
func BuildSummaryReport(path string, rep SummaryReport) error {
	ext := rep.Extraction
	if ext == nil {
		return errors.Wrap(errs.ErrMissingData, "no extraction to report")
	}
	if rep.Generated.IsZero() {
		rep.Generated = time.Now()
	}
	n := rep.PreviewRows
	if n == 0 {
		n = DefaultPreviewRows
	}

	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()
	styler := newPDFStyler(pdf)

	styler.writeLine("Sensor Log Summary", "h1", "C")
	styler.addSpacer(3)
	styler.writeLine(fmt.Sprintf("Source: %s", filepath.Base(rep.Source)), "normal", "L")
	styler.writeLine(fmt.Sprintf("Generated: %s", rep.Generated.Format("2006-01-02 15:04")), "normal", "L")
	sel := ext.Selection
	styler.writeLine(fmt.Sprintf("Pressure channel %d (column %d), divisor %g", sel.PressureChannel, sel.PressureColumn(), sel.PressureDivisor), "normal", "L")
	styler.writeLine(fmt.Sprintf("Temperature channel %d (column %d), divisor %g", sel.TemperatureChannel, sel.TemperatureColumn(), sel.TemperatureDivisor), "normal", "L")
	styler.addSpacer(4)

	styler.writeLine("Treated data", "h2", "L")
	styler.writeTable(
		[]string{"Quantity", "Mean", "Std Dev", "Samples"},
		[]float64{0.4, 0.2, 0.2, 0.2},
		[][]string{
			{"Pressure", fmt.Sprintf("%.2f", ext.Pressure.Mean), fmt.Sprintf("%.2f", ext.Pressure.StdDev), fmt.Sprintf("%d", ext.Pressure.N)},
			{"Temperature", fmt.Sprintf("%.2f", ext.Temperature.Mean), fmt.Sprintf("%.2f", ext.Temperature.StdDev), fmt.Sprintf("%d", ext.Temperature.N)},
		},
	)
	styler.addSpacer(4)

	styler.writeLine("Data preview", "h2", "L")
	var body [][]string
	for _, r := range PreviewRows(&ext.Series, n) {
		body = append(body, []string{
			fmt.Sprintf("%d", r.Index),
			fmt.Sprintf("%.2f", r.TimeSeconds),
			fmt.Sprintf("%.4g", r.Pressure),
			fmt.Sprintf("%.4g", r.Temperature),
		})
	}
	styler.writeTable([]string{"#", "Time (s)", "Pressure", "Temperature"}, []float64{0.1, 0.3, 0.3, 0.3}, body)

	if len(rep.Plot) > 0 {
		pdf.AddPage()
		styler.currentY = styler.contentTopY
		styler.writeLine("Plot", "h2", "L")
		width := pdfContentWidth * 0.6
		height := width * 4 / 5
		caption := fmt.Sprintf("%s vs %s", rep.Request.Y, rep.Request.X)
		styler.addImage(rep.Plot, "plot", width, height, caption)
	}

	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "failed to build PDF report")
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return errors.Wrap(err, "failed to build PDF report")
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return err
	}
	jww.INFO.Printf("Wrote summary report (%d bytes) to %s", buf.Len(), path)
	return nil
}
