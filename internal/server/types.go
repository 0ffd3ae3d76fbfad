package server

import (
	"github.com/rezonia/invoice-studio/internal/derive"
	"github.com/rezonia/invoice-studio/internal/model"
)

// FieldEdit is the request body for scalar field edits
type FieldEdit struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// ItemEdit is the request body for line item replacement. Quantity and
// price arrive as free text and are coerced to zero when malformed.
type ItemEdit struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	Price       string `json:"price"`
}

// DocumentResponse is the response for document reads and edits
type DocumentResponse struct {
	Document model.Document `json:"document"`
	Totals   derive.Totals  `json:"totals"`
}

// TotalsResponse is the response for the totals endpoint
type TotalsResponse struct {
	Policy    model.TaxPolicy `json:"policy"`
	Totals    derive.Totals   `json:"totals"`
	Subtotal  string          `json:"subtotal"`
	TaxAmount string          `json:"tax_amount"`
	Total     string          `json:"total"`
}

// ItemResponse is the response for item creation
type ItemResponse struct {
	Item     model.LineItem `json:"item"`
	Document model.Document `json:"document"`
}

// ExportResponse is the response for a completed export
type ExportResponse struct {
	File string `json:"file"`
}

// StatusResponse reports the busy flags of the export orchestrator
type StatusResponse struct {
	Exporting bool `json:"exporting"`
	Uploading bool `json:"uploading"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
