package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/render"
)

var renderOut string

var renderCmd = &cobra.Command{
	Use:   "render [document.json]",
	Short: "Render the invoice preview as HTML",
	Long: `Render the HTML preview of a document.

The document comes from a JSON file when one is given, otherwise from the
selected built-in template.

Examples:
  # Preview the commission template
  invoice-studio render --template commission --out preview.html

  # Preview a saved document
  invoice-studio render invoice.json --out preview.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(&renderOut, "out", "", "Output file (default: stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args)
	if err != nil {
		return err
	}

	html, err := render.NewPreview(doc).HTML()
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}

	if renderOut == "" {
		fmt.Println(html)
		return nil
	}

	if err := os.WriteFile(renderOut, []byte(html), 0o644); err != nil {
		return err
	}
	printVerbose("Preview written to %s\n", renderOut)
	return nil
}

// loadDocument resolves the document for file-driven commands: an explicit
// JSON file wins, otherwise the selected template is instantiated.
func loadDocument(args []string) (model.Document, error) {
	if len(args) == 0 {
		return model.NewDocument(templateName)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return model.Document{}, err
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Document{}, fmt.Errorf("parsing %s: %w", args[0], err)
	}
	return doc, nil
}
