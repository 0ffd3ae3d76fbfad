package pdf

import (
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// Verify validates a generated PDF file and returns its page count.
func Verify(path string) (int, error) {
	if err := api.ValidateFile(path, nil); err != nil {
		return 0, err
	}
	return api.PageCountFile(path)
}
