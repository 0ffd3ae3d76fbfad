package export_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/model"
)

// fakeRegion satisfies Region for the fakes below; none of them render it.
type fakeRegion struct{}

func (fakeRegion) HTML() (string, error) { return "<div>invoice</div>", nil }

type fakeBitmap struct {
	width     int
	height    int
	encodeErr error
}

func (b fakeBitmap) Width() int  { return b.width }
func (b fakeBitmap) Height() int { return b.height }

func (b fakeBitmap) EncodePNG() ([]byte, error) {
	if b.encodeErr != nil {
		return nil, b.encodeErr
	}
	return []byte("png-bytes"), nil
}

type fakeRasterizer struct {
	bitmap export.Bitmap
	err    error
	opts   export.CaptureOptions
}

func (r *fakeRasterizer) Capture(_ context.Context, _ export.Region, opts export.CaptureOptions) (export.Bitmap, error) {
	r.opts = opts
	if r.err != nil {
		return nil, r.err
	}
	return r.bitmap, nil
}

type fakeDoc struct {
	pageW, pageH float64
	addErr       error
	saveErr      error
	placed       *export.Placement
	savedAs      string
}

func (d *fakeDoc) PageWidth() float64  { return d.pageW }
func (d *fakeDoc) PageHeight() float64 { return d.pageH }

func (d *fakeDoc) AddImage(_ []byte, _ string, x, y, w, h float64) error {
	if d.addErr != nil {
		return d.addErr
	}
	d.placed = &export.Placement{X: x, Y: y, W: w, H: h}
	return nil
}

func (d *fakeDoc) Save(filename string) error {
	if d.saveErr != nil {
		return d.saveErr
	}
	d.savedAs = filename
	return nil
}

type fakeEncoder struct {
	doc *fakeDoc
	err error
}

func (e *fakeEncoder) NewDocument(_ export.PageOptions) (export.Doc, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.doc, nil
}

type recordingNotifier struct {
	mu        sync.Mutex
	successes []string
	failures  []string
}

func (n *recordingNotifier) Success(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.successes = append(n.successes, msg)
}

func (n *recordingNotifier) Failure(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.failures = append(n.failures, msg)
}

func newTestOrchestrator(r export.Rasterizer, e export.Encoder, n export.Notifier, opts ...export.Option) *export.Orchestrator {
	base := []export.Option{export.WithNotifier(n), export.WithUploadDelay(time.Millisecond)}
	return export.New(r, e, append(base, opts...)...)
}

func TestExportPDF(t *testing.T) {
	raster := &fakeRasterizer{bitmap: fakeBitmap{width: 1000, height: 1414}}
	doc := &fakeDoc{pageW: 210, pageH: 297}
	notifier := &recordingNotifier{}
	o := newTestOrchestrator(raster, &fakeEncoder{doc: doc}, notifier)

	path, err := o.ExportPDF(context.Background(), fakeRegion{}, "INV-001")
	require.NoError(t, err)

	assert.Equal(t, "Invoice-INV-001.pdf", path)
	assert.Equal(t, path, doc.savedAs)
	require.NotNil(t, doc.placed)
	assert.InDelta(t, float64(1000)/float64(1414), doc.placed.W/doc.placed.H, 1e-9)

	require.Len(t, notifier.successes, 1)
	assert.Contains(t, notifier.successes[0], "INV-001")
	assert.Empty(t, notifier.failures)
	assert.False(t, o.Exporting())
}

func TestExportPDF_OutputDir(t *testing.T) {
	raster := &fakeRasterizer{bitmap: fakeBitmap{width: 100, height: 100}}
	doc := &fakeDoc{pageW: 210, pageH: 297}
	o := newTestOrchestrator(raster, &fakeEncoder{doc: doc}, &recordingNotifier{},
		export.WithOutputDir("out"))

	path, err := o.ExportPDF(context.Background(), fakeRegion{}, "INV-001")
	require.NoError(t, err)
	assert.Equal(t, "out/Invoice-INV-001.pdf", path)
}

func TestExportPDF_CaptureScale(t *testing.T) {
	raster := &fakeRasterizer{bitmap: fakeBitmap{width: 100, height: 100}}
	doc := &fakeDoc{pageW: 210, pageH: 297}
	o := newTestOrchestrator(raster, &fakeEncoder{doc: doc}, &recordingNotifier{})

	_, err := o.ExportPDF(context.Background(), fakeRegion{}, "INV-001")
	require.NoError(t, err)
	assert.Equal(t, export.DefaultScale, raster.opts.Scale)

	// A scale under one is floored at one.
	o = newTestOrchestrator(raster, &fakeEncoder{doc: doc}, &recordingNotifier{},
		export.WithScale(0.25))
	_, err = o.ExportPDF(context.Background(), fakeRegion{}, "INV-001")
	require.NoError(t, err)
	assert.Equal(t, 1.0, raster.opts.Scale)
}

func TestExportPDF_FailureReleasesFlag(t *testing.T) {
	tests := []struct {
		name       string
		rasterizer *fakeRasterizer
		encoder    *fakeEncoder
		stage      string
	}{
		{
			name:       "capture failure",
			rasterizer: &fakeRasterizer{err: errors.New("boom")},
			encoder:    &fakeEncoder{doc: &fakeDoc{pageW: 210, pageH: 297}},
			stage:      "capture",
		},
		{
			name:       "empty bitmap",
			rasterizer: &fakeRasterizer{bitmap: fakeBitmap{width: 0, height: 0}},
			encoder:    &fakeEncoder{doc: &fakeDoc{pageW: 210, pageH: 297}},
			stage:      "capture",
		},
		{
			name:       "encode failure",
			rasterizer: &fakeRasterizer{bitmap: fakeBitmap{width: 100, height: 100, encodeErr: errors.New("bad pixels")}},
			encoder:    &fakeEncoder{doc: &fakeDoc{pageW: 210, pageH: 297}},
			stage:      "capture",
		},
		{
			name:       "document creation failure",
			rasterizer: &fakeRasterizer{bitmap: fakeBitmap{width: 100, height: 100}},
			encoder:    &fakeEncoder{err: errors.New("no doc")},
			stage:      "encode",
		},
		{
			name:       "image placement failure",
			rasterizer: &fakeRasterizer{bitmap: fakeBitmap{width: 100, height: 100}},
			encoder:    &fakeEncoder{doc: &fakeDoc{pageW: 210, pageH: 297, addErr: errors.New("bad image")}},
			stage:      "encode",
		},
		{
			name:       "save failure",
			rasterizer: &fakeRasterizer{bitmap: fakeBitmap{width: 100, height: 100}},
			encoder:    &fakeEncoder{doc: &fakeDoc{pageW: 210, pageH: 297, saveErr: errors.New("disk full")}},
			stage:      "save",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &recordingNotifier{}
			o := newTestOrchestrator(tt.rasterizer, tt.encoder, notifier)

			_, err := o.ExportPDF(context.Background(), fakeRegion{}, "INV-001")
			require.Error(t, err)

			var xerr *model.ExportError
			require.ErrorAs(t, err, &xerr)
			assert.Equal(t, tt.stage, xerr.Stage)

			// Exactly one user-facing failure message, and the flag is back
			// down so the next attempt can start.
			require.Len(t, notifier.failures, 1)
			assert.Empty(t, notifier.successes)
			assert.False(t, o.Exporting())
		})
	}
}

type blockingRasterizer struct {
	started chan struct{}
	release chan struct{}
}

func (r *blockingRasterizer) Capture(_ context.Context, _ export.Region, _ export.CaptureOptions) (export.Bitmap, error) {
	close(r.started)
	<-r.release
	return fakeBitmap{width: 100, height: 100}, nil
}

func TestExportPDF_BusyGuard(t *testing.T) {
	raster := &blockingRasterizer{started: make(chan struct{}), release: make(chan struct{})}
	doc := &fakeDoc{pageW: 210, pageH: 297}
	o := newTestOrchestrator(raster, &fakeEncoder{doc: doc}, &recordingNotifier{})

	done := make(chan error, 1)
	go func() {
		_, err := o.ExportPDF(context.Background(), fakeRegion{}, "INV-001")
		done <- err
	}()
	<-raster.started

	assert.True(t, o.Exporting())
	_, err := o.ExportPDF(context.Background(), fakeRegion{}, "INV-001")
	assert.ErrorIs(t, err, export.ErrExportInProgress)

	// The export flag does not block uploads.
	require.NoError(t, o.UploadToRemote("INV-001"))

	close(raster.release)
	require.NoError(t, <-done)
	assert.False(t, o.Exporting())
}

func TestUploadToRemote(t *testing.T) {
	notifier := &recordingNotifier{}
	o := newTestOrchestrator(&fakeRasterizer{}, &fakeEncoder{}, notifier)

	require.NoError(t, o.UploadToRemote("INV-007"))
	require.Len(t, notifier.successes, 1)
	assert.Contains(t, notifier.successes[0], "INV-007")
	assert.False(t, o.Uploading())
}

func TestFilename(t *testing.T) {
	tests := []struct {
		name     string
		number   string
		expected string
	}{
		{"plain", "INV-001", "Invoice-INV-001.pdf"},
		{"empty number", "", "Invoice-.pdf"},
		{"forward slash replaced", "2025/04", "Invoice-2025-04.pdf"},
		{"backslash replaced", "A\\B", "Invoice-A-B.pdf"},
		{"spaces kept", "COT 2025", "Invoice-COT 2025.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, export.Filename(tt.number))
		})
	}
}

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBitmapFromPNG(t *testing.T) {
	payload := encodePNG(t, 40, 30)

	bmp, err := export.BitmapFromPNG(payload)
	require.NoError(t, err)
	assert.Equal(t, 40, bmp.Width())
	assert.Equal(t, 30, bmp.Height())

	// The payload passes through untouched.
	out, err := bmp.EncodePNG()
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestBitmapFromPNG_Invalid(t *testing.T) {
	_, err := export.BitmapFromPNG([]byte("not a png"))
	require.Error(t, err)
	var xerr *model.ExportError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "capture", xerr.Stage)
}

func TestInboxRasterizer(t *testing.T) {
	inbox := &export.InboxRasterizer{}
	payload := encodePNG(t, 10, 10)

	// Empty inbox fails the capture.
	_, err := inbox.Capture(context.Background(), fakeRegion{}, export.CaptureOptions{})
	require.Error(t, err)

	inbox.Deliver(payload)
	bmp, err := inbox.Capture(context.Background(), fakeRegion{}, export.CaptureOptions{})
	require.NoError(t, err)
	assert.Equal(t, 10, bmp.Width())

	// Capture consumes the delivery.
	_, err = inbox.Capture(context.Background(), fakeRegion{}, export.CaptureOptions{})
	require.Error(t, err)
}

func TestFileRasterizer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "capture.png")
	require.NoError(t, os.WriteFile(path, encodePNG(t, 64, 48), 0o644))

	r := export.FileRasterizer{Path: path}
	bmp, err := r.Capture(context.Background(), fakeRegion{}, export.CaptureOptions{})
	require.NoError(t, err)
	assert.Equal(t, 64, bmp.Width())
	assert.Equal(t, 48, bmp.Height())
}

func TestFileRasterizer_Missing(t *testing.T) {
	r := export.FileRasterizer{Path: "does/not/exist.png"}
	_, err := r.Capture(context.Background(), fakeRegion{}, export.CaptureOptions{})
	require.Error(t, err)
	var xerr *model.ExportError
	require.ErrorAs(t, err, &xerr)
	assert.Equal(t, "capture", xerr.Stage)
}
