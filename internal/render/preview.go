// Package render builds the HTML preview of an invoice document. The
// preview is the renderable region handed to the export rasterizer.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/rezonia/invoice-studio/internal/derive"
	"github.com/rezonia/invoice-studio/internal/format"
	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
)

//go:embed preview.html.tmpl
var previewSrc string

var previewTmpl = template.Must(template.New("preview").Parse(previewSrc))

// Preview is a renderable snapshot of one document. The document value is
// copied at construction, so edits made after a capture starts do not leak
// into an export already in flight.
type Preview struct {
	doc model.Document
}

// NewPreview snapshots doc for rendering.
func NewPreview(doc model.Document) *Preview {
	return &Preview{doc: doc}
}

// HTML renders the preview markup.
func (p *Preview) HTML() (string, error) {
	var buf bytes.Buffer
	if err := previewTmpl.Execute(&buf, buildView(p.doc)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type itemView struct {
	Description string
	Quantity    string
	UnitPrice   string
	Amount      string
}

type view struct {
	Number string

	IssuerName  string
	IssuerLines []string
	IssuerEmail string
	IssuerPhone string

	BillToName  string
	BillToLines []string
	BillToEmail string

	IssueDate string
	DueDate   string

	Compact bool
	Items   []itemView

	Subtotal   string
	TaxLabel   string
	TaxAmount  string
	Withheld   bool
	TotalLabel string
	Total      string

	Notes string
	Bank  *model.BankDetails
}

func buildView(doc model.Document) view {
	totals := derive.Derive(doc, doc.TaxPolicy)

	v := view{
		Number:      doc.Number,
		IssuerName:  doc.Issuer.Name,
		IssuerLines: splitLines(doc.Issuer.Address),
		IssuerEmail: doc.Issuer.Email,
		IssuerPhone: doc.Issuer.Phone,
		BillToName:  doc.BillTo.Name,
		BillToLines: splitLines(doc.BillTo.Address),
		BillToEmail: doc.BillTo.Email,
		IssueDate:   format.Date(doc.Date),
		DueDate:     format.Date(doc.DueDate),
		Compact:     doc.TableLayout == model.TableLayoutCompact,
		Subtotal:    format.Currency(totals.Subtotal, doc.Currency),
		Total:       format.Currency(totals.Total, doc.Currency),
		Notes:       doc.Notes,
		Bank:        doc.Bank,
	}

	if doc.TaxPolicy == model.TaxPolicyWithholding {
		v.TaxLabel = fmt.Sprintf("Withholding Tax (%s%%)", doc.TaxRate.String())
		v.TaxAmount = format.Currency(totals.TaxAmount, doc.Currency)
		v.Withheld = true
		v.TotalLabel = "Amount Due"
	} else {
		v.TaxLabel = fmt.Sprintf("Tax (%s%%)", doc.TaxRate.String())
		v.TaxAmount = format.Currency(totals.TaxAmount, doc.Currency)
		v.TotalLabel = "Total"
	}

	for _, it := range doc.Items {
		iv := itemView{Description: it.Description}
		if v.Compact {
			// Each line is a flat priced unit in the compact layout.
			iv.Amount = format.Currency(it.Price, doc.Currency)
		} else {
			iv.Quantity = it.Quantity.String()
			iv.UnitPrice = format.Currency(it.Price, doc.Currency)
			iv.Amount = format.Currency(money.Mul(it.Quantity, it.Price), doc.Currency)
		}
		v.Items = append(v.Items, iv)
	}
	return v
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
