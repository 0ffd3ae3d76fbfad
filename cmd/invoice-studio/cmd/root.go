package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Global flags
	verbose      bool
	templateName string
	outputDir    string
)

var rootCmd = &cobra.Command{
	Use:   "invoice-studio",
	Short: "Edit invoices and export them as single-page PDF documents",
	Long: `Invoice Studio is a single-session invoice editing and export tool.

A document starts from a built-in template, is edited through field and
line-item operations, rendered into an HTML preview, and exported as a
one-page PDF containing a capture of that preview.

Examples:
  # Start the editing API server
  invoice-studio serve

  # Render the preview of the commission template
  invoice-studio render --template commission -o preview.html

  # Export a document using a browser- or tool-captured preview PNG
  invoice-studio export --template commission --capture preview.png

  # Validate an exported PDF
  invoice-studio verify Invoice-COT2025-04-30.pdf`,
	Version: version,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&templateName, "template", "t", "service", "Document template (env: INVOICE_TEMPLATE)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", ".", "Directory exported files are written to (env: INVOICE_OUTPUT_DIR)")

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if !rootCmd.PersistentFlags().Changed("template") {
		if v := os.Getenv("INVOICE_TEMPLATE"); v != "" {
			templateName = v
		}
	}
	if !rootCmd.PersistentFlags().Changed("output-dir") {
		if v := os.Getenv("INVOICE_OUTPUT_DIR"); v != "" {
			outputDir = v
		}
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
