package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/export"
	"github.com/rezonia/invoice-studio/internal/export/pdf"
	"github.com/rezonia/invoice-studio/internal/render"
)

var (
	exportCapture string
	exportVAlign  string
	exportScale   float64
	exportVerify  bool
)

var exportCmd = &cobra.Command{
	Use:   "export [document.json]",
	Short: "Export a captured preview as a single-page PDF",
	Long: `Export an invoice as Invoice-<number>.pdf.

Rasterization happens outside this process: capture the rendered preview
(see the render command) as a PNG with a browser or screenshot tool and
pass it via --capture. The capture is scaled to fit one page while keeping
its aspect ratio, centered horizontally and aligned per --valign.

Examples:
  # Export the commission template with a captured preview
  invoice-studio export --template commission --capture preview.png

  # Export a saved document, verify the result, center vertically
  invoice-studio export invoice.json --capture preview.png --valign center --verify`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportCapture, "capture", "", "PNG capture of the rendered preview (required)")
	exportCmd.Flags().StringVar(&exportVAlign, "valign", "top", "Vertical placement on the page (top, center)")
	exportCmd.Flags().Float64Var(&exportScale, "scale", export.DefaultScale, "Capture oversampling factor")
	exportCmd.Flags().BoolVar(&exportVerify, "verify", false, "Validate the exported PDF and report its page count")
	_ = exportCmd.MarkFlagRequired("capture")
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args)
	if err != nil {
		return err
	}

	valign := export.VerticalAlign(exportVAlign)
	switch valign {
	case export.AlignTop, export.AlignCenter:
	default:
		return fmt.Errorf("unsupported vertical alignment %q", exportVAlign)
	}

	orchestrator := export.New(
		export.FileRasterizer{Path: exportCapture},
		pdf.NewEncoder(),
		export.WithOutputDir(outputDir),
		export.WithVerticalAlign(valign),
		export.WithScale(exportScale),
		export.WithNotifier(export.NewWriterNotifier(os.Stderr)),
	)

	printVerbose("Exporting invoice %s with capture %s\n", doc.Number, exportCapture)

	path, err := orchestrator.ExportPDF(context.Background(), render.NewPreview(doc), doc.Number)
	if err != nil {
		return err
	}
	fmt.Printf("Saved %s\n", path)

	if exportVerify {
		pages, err := pdf.Verify(path)
		if err != nil {
			return fmt.Errorf("verifying %s: %w", path, err)
		}
		fmt.Printf("Verified: %d page(s)\n", pages)
	}
	return nil
}
