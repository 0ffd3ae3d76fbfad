package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/invoice-studio/internal/model"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the built-in document templates",
	Long: `List the built-in document templates.

A template fixes the tax policy and the item-table layout of the session;
select one with --template on the serve, render and export commands.`,
	RunE: runTemplates,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
}

func runTemplates(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOLICY\tLAYOUT\tDESCRIPTION")

	for _, id := range model.TemplateIDs() {
		doc, err := model.NewDocument(id)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", id, doc.TaxPolicy, doc.TableLayout, model.TemplateDescription(id))
	}
	return w.Flush()
}
