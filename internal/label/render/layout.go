// Package render lays out a code on a 4x6 inch label and writes it as PDF.
package render

// Page geometry in PDF points (72 per inch).
const (
	PageWidth   = 4 * 72
	PageHeight  = 6 * 72
	Margin      = 24
	UsableWidth = PageWidth - 2*Margin

	MaxFontSize  = 220
	MinFontSize  = 24
	FontSizeStep = 4
)

// Metrics measures text in a single font face.
type Metrics interface {
	// Width of text set at size, in points.
	Width(text string, size float64) float64
	// Height of a line at size, in points.
	Height(size float64) float64
}

// Layout is the computed placement of a code on the page. X and Y use PDF
// coordinates: origin bottom-left, Y is the baseline.
type Layout struct {
	FontSize   float64
	TextWidth  float64
	TextHeight float64
	X          float64
	Y          float64
	// Overflow is set when the text is wider than the usable width even at
	// MinFontSize.
	Overflow bool
}

// FitFontSize returns the largest size, stepping down from MaxFontSize by
// FontSizeStep, at which text fits UsableWidth. It never goes below
// MinFontSize; the floor is returned even when it still overflows.
func FitFontSize(m Metrics, text string) float64 {
	size := float64(MaxFontSize)
	for size > MinFontSize && m.Width(text, size) > UsableWidth {
		size -= FontSizeStep
	}
	return size
}

// ComputeLayout fits text and centers the block on the page.
func ComputeLayout(m Metrics, text string) Layout {
	size := FitFontSize(m, text)
	w := m.Width(text, size)
	h := m.Height(size)

	return Layout{
		FontSize:   size,
		TextWidth:  w,
		TextHeight: h,
		X:          (PageWidth - w) / 2,
		Y:          (PageHeight - h) / 2,
		Overflow:   w > UsableWidth,
	}
}
