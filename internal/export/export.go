// Package export sequences the capture-then-encode pathway that turns the
// rendered preview into a single-page PDF.
//
// Rasterization and document encoding are external collaborators; both are
// injected as interfaces at construction so tests can substitute fakes.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rezonia/invoice-studio/internal/model"
)

// Busy-flag sentinels. Each flag models one idle->active->idle operation;
// the two flags are independent.
var (
	ErrExportInProgress = errors.New("export already in progress")
	ErrUploadInProgress = errors.New("upload already in progress")
)

// Region is a reference to renderable content a Rasterizer can capture.
type Region interface {
	// HTML returns the rendered markup of the region.
	HTML() (string, error)
}

// Bitmap is a captured pixel image.
type Bitmap interface {
	Width() int
	Height() int
	EncodePNG() ([]byte, error)
}

// CaptureOptions configure a rasterization request.
type CaptureOptions struct {
	Scale      float64 // oversampling factor, >= 1
	Background string  // CSS color, optional
}

// Rasterizer converts a renderable region into a Bitmap.
type Rasterizer interface {
	Capture(ctx context.Context, region Region, opts CaptureOptions) (Bitmap, error)
}

// PageOptions configure the encoded document's page geometry.
type PageOptions struct {
	Orientation string // "portrait" or "landscape"
	Unit        string // length unit, e.g. "mm"
	Format      string // page format, e.g. "A4"
}

// DefaultPageOptions is an A4 portrait page measured in millimeters.
func DefaultPageOptions() PageOptions {
	return PageOptions{Orientation: "portrait", Unit: "mm", Format: "A4"}
}

// Doc is a one-page paginated document under construction.
type Doc interface {
	PageWidth() float64
	PageHeight() float64
	AddImage(payload []byte, format string, x, y, w, h float64) error
	Save(filename string) error
}

// Encoder produces paginated documents.
type Encoder interface {
	NewDocument(opts PageOptions) (Doc, error)
}

// Notifier surfaces user-visible outcome messages. The export pathway is
// the only one that reports errors to the user, and only as a single
// undifferentiated notification.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

type writerNotifier struct {
	w io.Writer
}

func (n writerNotifier) Success(msg string) { fmt.Fprintln(n.w, msg) }
func (n writerNotifier) Failure(msg string) { fmt.Fprintln(n.w, "Error:", msg) }

// NewWriterNotifier notifies by writing lines to w.
func NewWriterNotifier(w io.Writer) Notifier {
	return writerNotifier{w: w}
}

const (
	// DefaultScale is the capture oversampling factor for print quality.
	DefaultScale = 2.0
	// DefaultUploadDelay is the simulated remote-upload duration.
	DefaultUploadDelay = 2 * time.Second
)

// Orchestrator runs exports and uploads against the injected collaborators
// and tracks the two independent busy flags.
type Orchestrator struct {
	rasterizer Rasterizer
	encoder    Encoder
	notifier   Notifier

	scale       float64
	valign      VerticalAlign
	page        PageOptions
	outputDir   string
	uploadDelay time.Duration

	mu        sync.Mutex
	exporting bool
	uploading bool
}

// Option configures the orchestrator
type Option func(*Orchestrator)

// WithNotifier sets the user-notification sink
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithScale sets the capture oversampling factor, floored at 1
func WithScale(scale float64) Option {
	return func(o *Orchestrator) {
		if scale < 1 {
			scale = 1
		}
		o.scale = scale
	}
}

// WithVerticalAlign sets the page placement of the captured image
func WithVerticalAlign(v VerticalAlign) Option {
	return func(o *Orchestrator) { o.valign = v }
}

// WithPageOptions sets the encoded page geometry
func WithPageOptions(p PageOptions) Option {
	return func(o *Orchestrator) { o.page = p }
}

// WithOutputDir sets the directory exported files are saved under
func WithOutputDir(dir string) Option {
	return func(o *Orchestrator) { o.outputDir = dir }
}

// WithUploadDelay sets the simulated upload duration
func WithUploadDelay(d time.Duration) Option {
	return func(o *Orchestrator) { o.uploadDelay = d }
}

// New creates an orchestrator bound to the given collaborators.
func New(rasterizer Rasterizer, encoder Encoder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		rasterizer:  rasterizer,
		encoder:     encoder,
		notifier:    NewWriterNotifier(os.Stderr),
		scale:       DefaultScale,
		valign:      AlignTop,
		page:        DefaultPageOptions(),
		uploadDelay: DefaultUploadDelay,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Exporting reports whether an export is active.
func (o *Orchestrator) Exporting() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.exporting
}

// Uploading reports whether an upload is active.
func (o *Orchestrator) Uploading() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.uploading
}

// ExportPDF captures the region, fits the bitmap onto one page and saves
// the document as Invoice-<invoiceNumber>.pdf under the output directory.
// The exporting flag is released on every path; a failure surfaces exactly
// one user notification and is also returned. There is no cancellation and
// no timeout once the capture has started.
func (o *Orchestrator) ExportPDF(ctx context.Context, region Region, invoiceNumber string) (path string, err error) {
	if !o.begin(&o.exporting) {
		return "", ErrExportInProgress
	}
	defer func() {
		o.end(&o.exporting)
		if err != nil {
			o.notifier.Failure("An error occurred while generating the PDF. Please try again.")
		} else {
			o.notifier.Success(fmt.Sprintf("Invoice %s exported to %s", invoiceNumber, path))
		}
	}()

	bmp, err := o.rasterizer.Capture(ctx, region, CaptureOptions{Scale: o.scale, Background: "#ffffff"})
	if err != nil {
		return "", model.NewExportError("capture", "rasterization failed", err)
	}
	if bmp.Width() <= 0 || bmp.Height() <= 0 {
		return "", model.NewExportError("capture", "captured bitmap is empty", nil)
	}

	payload, err := bmp.EncodePNG()
	if err != nil {
		return "", model.NewExportError("capture", "bitmap encoding failed", err)
	}

	doc, err := o.encoder.NewDocument(o.page)
	if err != nil {
		return "", model.NewExportError("encode", "document creation failed", err)
	}

	placement := FitToPage(bmp.Width(), bmp.Height(), doc.PageWidth(), doc.PageHeight(), o.valign)
	if err := doc.AddImage(payload, "PNG", placement.X, placement.Y, placement.W, placement.H); err != nil {
		return "", model.NewExportError("encode", "image placement failed", err)
	}

	path = filepath.Join(o.outputDir, Filename(invoiceNumber))
	if err := doc.Save(path); err != nil {
		return "", model.NewExportError("save", "could not save document", err)
	}
	return path, nil
}

// UploadToRemote simulates a remote-storage upload: it holds the uploading
// flag for a fixed delay, notifies success and releases the flag. It never
// performs network I/O and never fails once started.
func (o *Orchestrator) UploadToRemote(invoiceNumber string) error {
	if !o.begin(&o.uploading) {
		return ErrUploadInProgress
	}
	defer o.end(&o.uploading)

	time.Sleep(o.uploadDelay)
	o.notifier.Success(fmt.Sprintf("Invoice %s has been uploaded to remote storage (simulation)", invoiceNumber))
	return nil
}

func (o *Orchestrator) begin(flag *bool) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if *flag {
		return false
	}
	*flag = true
	return true
}

func (o *Orchestrator) end(flag *bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	*flag = false
}

// Filename derives the deterministic export name for an invoice number.
// Path separators in the free-text number are replaced so the name stays a
// single path element.
func Filename(invoiceNumber string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\':
			return '-'
		}
		return r
	}, invoiceNumber)
	return "Invoice-" + clean + ".pdf"
}
