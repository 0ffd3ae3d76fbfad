// Package derive computes invoice totals from the document model.
//
// The engine is pure: it reads the document, never mutates it, and has no
// failure modes. Evaluation order is fixed: subtotal first, then tax
// amount, then total. Malformed numeric input never reaches this package;
// coercion to zero happens at the edit boundary.
package derive

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/money"
)

// Totals are the derived amounts of a document under one tax policy.
type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
}

// Derive computes subtotal, tax amount and total for doc under the given
// policy. The policy is an explicit parameter: both policies are
// first-class and the calling context decides which applies.
func Derive(doc model.Document, policy model.TaxPolicy) Totals {
	if policy == model.TaxPolicyWithholding {
		return deriveWithholding(doc)
	}
	return deriveAdditive(doc)
}

// deriveAdditive prices items per unit and adds tax on top:
// subtotal = sum(qty*price), tax = subtotal*rate/100, total = subtotal+tax.
func deriveAdditive(doc model.Document) Totals {
	subtotal := money.Zero
	for _, it := range doc.Items {
		subtotal = subtotal.Add(money.Mul(it.Quantity, it.Price))
	}
	subtotal = subtotal.Round(2)
	if doc.TaxRate.IsZero() {
		return Totals{Subtotal: subtotal, TaxAmount: money.Zero, Total: subtotal}
	}
	tax := money.Percent(subtotal, doc.TaxRate)
	return Totals{Subtotal: subtotal, TaxAmount: tax, Total: subtotal.Add(tax)}
}

// deriveWithholding treats each line as a flat, tax-inclusive amount and
// backs the tax out: subtotal = sum(price), total = subtotal/(1+rate/100),
// tax = subtotal-total. Quantity is deliberately not part of this policy.
func deriveWithholding(doc model.Document) Totals {
	subtotal := money.Zero
	for _, it := range doc.Items {
		subtotal = subtotal.Add(it.Price)
	}
	subtotal = subtotal.Round(2)
	if doc.TaxRate.IsZero() {
		return Totals{Subtotal: subtotal, TaxAmount: money.Zero, Total: subtotal}
	}
	divisor := decimal.NewFromInt(1).Add(doc.TaxRate.Div(decimal.NewFromInt(100)))
	// A rate of -100 makes the divisor zero; money.Div yields zero rather
	// than dividing.
	total := money.Div(subtotal, divisor)
	return Totals{Subtotal: subtotal, TaxAmount: subtotal.Sub(total), Total: total}
}
