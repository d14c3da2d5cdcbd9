package render

import "github.com/jung-kurt/gofpdf"

const (
	fontFamily = "Helvetica"
	fontStyle  = "B"

	// Helvetica-Bold AFM vertical metrics, per 1000 units of em.
	helveticaBoldAscender  = 718
	helveticaBoldDescender = -207
)

// pdfMetrics measures with the core Helvetica-Bold widths of a gofpdf
// document. It changes the document's font size, so each document gets its
// own instance.
type pdfMetrics struct {
	pdf *gofpdf.Fpdf
}

func newPDFMetrics(pdf *gofpdf.Fpdf) *pdfMetrics {
	pdf.SetFont(fontFamily, fontStyle, MaxFontSize)
	return &pdfMetrics{pdf: pdf}
}

func (m *pdfMetrics) Width(text string, size float64) float64 {
	m.pdf.SetFontSize(size)
	return m.pdf.GetStringWidth(text)
}

func (m *pdfMetrics) Height(size float64) float64 {
	return float64(helveticaBoldAscender-helveticaBoldDescender) / 1000 * size
}

// HelveticaBold returns Metrics backed by a scratch gofpdf document.
func HelveticaBold() Metrics {
	return newPDFMetrics(newDocument())
}
