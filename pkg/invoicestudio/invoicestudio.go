// Package invoicestudio provides a public API for editing invoice
// documents and deriving their totals.
//
// This package exposes the document model, the pure mutation operations,
// the tax-policy derivation engine and the display formatters.
//
// Example usage:
//
//	doc, err := invoicestudio.NewDocument(invoicestudio.TemplateCommission)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	totals := invoicestudio.Derive(doc, doc.TaxPolicy)
//	fmt.Println(invoicestudio.FormatCurrency(totals.Total, doc.Currency))
package invoicestudio

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-studio/internal/derive"
	"github.com/rezonia/invoice-studio/internal/format"
	"github.com/rezonia/invoice-studio/internal/model"
)

// Re-export core types for public API
type (
	Document    = model.Document
	LineItem    = model.LineItem
	Party       = model.Party
	BankDetails = model.BankDetails
	TaxPolicy   = model.TaxPolicy
	TableLayout = model.TableLayout
	Field       = model.Field
	PartyField  = model.PartyField
	Totals      = derive.Totals
)

// Re-export tax policies
const (
	TaxPolicyAdditive    = model.TaxPolicyAdditive
	TaxPolicyWithholding = model.TaxPolicyWithholding
)

// Re-export table layouts
const (
	TableLayoutDetailed = model.TableLayoutDetailed
	TableLayoutCompact  = model.TableLayoutCompact
)

// Re-export built-in templates
const (
	TemplateBlank      = model.TemplateBlank
	TemplateService    = model.TemplateService
	TemplateCommission = model.TemplateCommission
)

// Re-export error types
type (
	ValidationError = model.ValidationError
	IndexError      = model.IndexError
	ExportError     = model.ExportError
)

// NewDocument creates a document from a built-in template.
func NewDocument(template string) (Document, error) {
	return model.NewDocument(template)
}

// Derive computes the totals of doc under the given tax policy.
func Derive(doc Document, policy TaxPolicy) Totals {
	return derive.Derive(doc, policy)
}

// SetField returns a copy of doc with one top-level scalar field replaced.
func SetField(doc Document, field Field, value string) (Document, error) {
	return model.SetField(doc, field, value)
}

// AddItem returns a copy of doc with a fresh line item appended.
func AddItem(doc Document) Document {
	return model.AddItem(doc)
}

// ReplaceItem returns a copy of doc with the item at index replaced.
func ReplaceItem(doc Document, index int, item LineItem) (Document, error) {
	return model.ReplaceItem(doc, index, item)
}

// RemoveItem returns a copy of doc without the item at index.
func RemoveItem(doc Document, index int) Document {
	return model.RemoveItem(doc, index)
}

// FormatCurrency renders an amount with the symbol, two fixed decimals and
// en-US digit grouping.
func FormatCurrency(amount decimal.Decimal, symbol string) string {
	return format.Currency(amount, symbol)
}

// FormatDate renders an ISO date in long form.
func FormatDate(iso string) string {
	return format.Date(iso)
}
