package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/export/pdf"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <file.pdf> [more.pdf ...]",
	Short: "Validate exported PDF files",
	Long: `Validate one or more exported PDF files and report their page count.

Examples:
  invoice-studio verify Invoice-INV-001.pdf
  invoice-studio verify exports/*.pdf`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	failed := 0
	for _, path := range args {
		pages, err := pdf.Verify(path)
		if err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "FAIL  %s: %v\n", path, err)
			continue
		}
		fmt.Printf("OK    %s (%d page(s))\n", path, pages)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
	}
	return nil
}
