// Package pdf implements the document-encoding collaborator on gofpdf and
// verifies generated files with pdfcpu.
package pdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/rezonia/invoice-studio/internal/export"
)

// Encoder produces single-page PDF documents.
type Encoder struct{}

// NewEncoder creates a gofpdf-backed encoder
func NewEncoder() *Encoder {
	return &Encoder{}
}

// NewDocument starts a document with one page of the requested geometry.
func (e *Encoder) NewDocument(opts export.PageOptions) (export.Doc, error) {
	orientation := "P"
	switch opts.Orientation {
	case "", "portrait":
		orientation = "P"
	case "landscape":
		orientation = "L"
	default:
		return nil, fmt.Errorf("unsupported orientation %q", opts.Orientation)
	}

	unit := opts.Unit
	if unit == "" {
		unit = "mm"
	}
	format := opts.Format
	if format == "" {
		format = "A4"
	}

	f := gofpdf.New(orientation, unit, format, "")
	f.SetMargins(0, 0, 0)
	f.SetAutoPageBreak(false, 0)
	f.AddPage()
	if err := f.Error(); err != nil {
		return nil, err
	}

	w, h := f.GetPageSize()
	return &document{pdf: f, width: w, height: h}, nil
}

type document struct {
	pdf    *gofpdf.Fpdf
	width  float64
	height float64
	images int
}

func (d *document) PageWidth() float64  { return d.width }
func (d *document) PageHeight() float64 { return d.height }

// AddImage places an encoded image payload at the given page-unit rect.
func (d *document) AddImage(payload []byte, format string, x, y, w, h float64) error {
	d.images++
	name := fmt.Sprintf("capture-%d", d.images)
	opts := gofpdf.ImageOptions{ImageType: format}
	d.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(payload))
	d.pdf.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return d.pdf.Error()
}

// Save writes the document and closes it.
func (d *document) Save(filename string) error {
	return d.pdf.OutputFileAndClose(filename)
}
