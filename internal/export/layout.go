package export

// VerticalAlign selects the vertical placement of the fitted image on the
// page. Both variants exist in practice; the choice is configuration, not
// a constant.
type VerticalAlign string

const (
	AlignTop    VerticalAlign = "top"
	AlignCenter VerticalAlign = "center"
)

// Placement is the page-unit rectangle an image is drawn into.
type Placement struct {
	X, Y, W, H float64
}

// FitToPage scales a bitmap of imgW x imgH pixels to exactly fit a page of
// pageW x pageH units while preserving the aspect ratio: scale-to-width if
// the image is relatively wider than the page, else scale-to-height. The
// image is centered horizontally; vertically it is top-aligned or centered
// per valign.
func FitToPage(imgW, imgH int, pageW, pageH float64, valign VerticalAlign) Placement {
	ratio := float64(imgW) / float64(imgH)

	w := pageW
	h := pageW / ratio
	if h > pageH {
		h = pageH
		w = pageH * ratio
	}

	x := (pageW - w) / 2
	y := 0.0
	if valign == AlignCenter {
		y = (pageH - h) / 2
	}
	return Placement{X: x, Y: y, W: w, H: h}
}
