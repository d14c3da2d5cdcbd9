package render

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"labelprint/internal/label"
	dErrors "labelprint/pkg/domain-errors"
)

// OverflowPolicy decides what happens when a code overflows the usable width
// at the minimum font size.
type OverflowPolicy string

const (
	// OverflowDegrade prints at the minimum size and lets the text run into
	// the margin.
	OverflowDegrade OverflowPolicy = "degrade"
	// OverflowReject refuses to render.
	OverflowReject OverflowPolicy = "reject"
)

// ParseOverflowPolicy validates a configured overflow policy name.
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch OverflowPolicy(s) {
	case OverflowDegrade, OverflowReject:
		return OverflowPolicy(s), nil
	default:
		return "", fmt.Errorf("unknown overflow policy %q", s)
	}
}

// Label is a rendered page ready for submission.
type Label struct {
	Code   label.Code
	Title  string
	Layout Layout
	PDF    []byte
}

// Renderer turns codes into single-page PDF labels. It holds no mutable
// state and is safe for concurrent use.
type Renderer struct {
	overflow OverflowPolicy
	creator  string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithOverflowPolicy sets the overflow behaviour. The default is OverflowDegrade.
func WithOverflowPolicy(p OverflowPolicy) Option {
	return func(r *Renderer) {
		r.overflow = p
	}
}

// WithCreator sets the PDF creator field.
func WithCreator(creator string) Option {
	return func(r *Renderer) {
		r.creator = creator
	}
}

// New constructs a Renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{overflow: OverflowDegrade, creator: "labelprint"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Title is the print job title for a code.
func Title(code label.Code) string {
	return "Label " + string(code)
}

// Render lays out code and writes the PDF. at stamps the document's
// creation date.
func (r *Renderer) Render(code label.Code, at time.Time) (*Label, error) {
	pdf := newDocument()
	layout := ComputeLayout(newPDFMetrics(pdf), string(code))

	if layout.Overflow && r.overflow == OverflowReject {
		return nil, dErrors.New(dErrors.CodeValidation, fmt.Sprintf(
			"invalid code: too wide to fit %dpt at %dpt type; use a shorter code", UsableWidth, MinFontSize))
	}

	title := Title(code)
	pdf.SetTitle(title, true)
	pdf.SetCreator(r.creator, true)
	pdf.SetCreationDate(at)
	pdf.AddPage()
	pdf.SetFont(fontFamily, fontStyle, layout.FontSize)
	// gofpdf measures y from the top edge.
	pdf.Text(layout.X, PageHeight-layout.Y, string(code))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to write label pdf")
	}

	return &Label{
		Code:   code,
		Title:  title,
		Layout: layout,
		PDF:    buf.Bytes(),
	}, nil
}

func newDocument() *gofpdf.Fpdf {
	return gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
}
