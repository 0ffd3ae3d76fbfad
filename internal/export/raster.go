package export

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"sync"

	"github.com/rezonia/invoice-studio/internal/model"
)

// pngBitmap wraps an already-encoded PNG payload as a Bitmap. The payload
// is returned as-is by EncodePNG; only the header is decoded for the pixel
// dimensions.
type pngBitmap struct {
	data   []byte
	width  int
	height int
}

func (b *pngBitmap) Width() int  { return b.width }
func (b *pngBitmap) Height() int { return b.height }

func (b *pngBitmap) EncodePNG() ([]byte, error) { return b.data, nil }

// BitmapFromPNG wraps an encoded PNG payload as a Bitmap.
func BitmapFromPNG(data []byte) (Bitmap, error) {
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, model.NewExportError("capture", "invalid PNG payload", err)
	}
	return &pngBitmap{data: data, width: cfg.Width, height: cfg.Height}, nil
}

// FileRasterizer serves a capture produced outside the process from a PNG
// file on disk. The region reference and capture options are ignored; the
// external tool that produced the file already applied them.
type FileRasterizer struct {
	Path string
}

func (r FileRasterizer) Capture(_ context.Context, _ Region, _ CaptureOptions) (Bitmap, error) {
	data, err := os.ReadFile(r.Path)
	if err != nil {
		return nil, model.NewExportError("capture", "could not read capture file", err)
	}
	return BitmapFromPNG(data)
}

// InboxRasterizer hands over captures delivered by an external client,
// such as a browser posting its own canvas capture of the preview. Deliver
// stores the next capture; Capture consumes it.
type InboxRasterizer struct {
	mu   sync.Mutex
	data []byte
}

// Deliver stores the PNG payload for the next Capture call.
func (r *InboxRasterizer) Deliver(pngData []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = pngData
}

func (r *InboxRasterizer) Capture(_ context.Context, _ Region, _ CaptureOptions) (Bitmap, error) {
	r.mu.Lock()
	data := r.data
	r.data = nil
	r.mu.Unlock()

	if data == nil {
		return nil, model.NewExportError("capture", "no capture delivered", nil)
	}
	return BitmapFromPNG(data)
}
