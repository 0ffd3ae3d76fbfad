package model

import (
	"github.com/shopspring/decimal"
)

// TaxPolicy selects how tax is derived from the document's line items.
// The two policies are semantically incompatible and are never reconciled;
// each document template fixes one of them.
type TaxPolicy string

const (
	// TaxPolicyAdditive adds tax on top of the summed item amounts.
	TaxPolicyAdditive TaxPolicy = "additive"
	// TaxPolicyWithholding treats quoted prices as tax-inclusive and backs
	// the tax out by division.
	TaxPolicyWithholding TaxPolicy = "withholding"
)

// TableLayout selects the item-table presentation of the preview.
type TableLayout string

const (
	// TableLayoutDetailed shows quantity and unit price columns.
	TableLayoutDetailed TableLayout = "detailed"
	// TableLayoutCompact shows description and amount only.
	TableLayoutCompact TableLayout = "compact"
)

// Party represents the issuer or the billed client
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address"` // newline-delimited
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"` // issuer only
}

// LineItem represents one billable row
type LineItem struct {
	ID          string          `json:"id"` // unique within the document at insertion
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"` // negative represents a credit
}

// BankDetails is the remit-to block shown on the preview
type BankDetails struct {
	AccountHolder string `json:"account_holder"`
	AccountNumber string `json:"account_number"`
	BankName      string `json:"bank_name"`
	SwiftCode     string `json:"swift_code"`
	BankAddress   string `json:"bank_address"`
}

// Document is the canonical in-memory invoice. It holds source-of-truth
// fields only; derived amounts live in the derive package. Every mutation
// operation returns a new Document, the value is never mutated in place.
type Document struct {
	Issuer Party `json:"issuer"`
	BillTo Party `json:"bill_to"`

	Number  string `json:"number"`   // free text, not required unique
	Date    string `json:"date"`     // YYYY-MM-DD
	DueDate string `json:"due_date"` // YYYY-MM-DD, no ordering constraint

	// Items keep display order; order changes only on append or removal.
	Items []LineItem `json:"items"`

	Notes    string          `json:"notes,omitempty"`
	TaxRate  decimal.Decimal `json:"tax_rate"` // percentage, unconstrained
	Currency string          `json:"currency"` // display symbol prefix

	// Template-fixed presentation and policy choices.
	TaxPolicy       TaxPolicy    `json:"tax_policy"`
	TableLayout     TableLayout  `json:"table_layout"`
	ItemPlaceholder string       `json:"item_placeholder,omitempty"`
	Bank            *BankDetails `json:"bank,omitempty"`

	// ItemSeq is the counter behind generated line item ids.
	ItemSeq int `json:"item_seq"`
}
