package model

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-studio/internal/money"
)

// Field names a top-level scalar field of Document.
type Field string

const (
	FieldNumber   Field = "number"
	FieldDate     Field = "date"
	FieldDueDate  Field = "due_date"
	FieldNotes    Field = "notes"
	FieldTaxRate  Field = "tax_rate"
	FieldCurrency Field = "currency"
)

// PartyField names a field of a Party.
type PartyField string

const (
	PartyName    PartyField = "name"
	PartyAddress PartyField = "address"
	PartyEmail   PartyField = "email"
	PartyPhone   PartyField = "phone"
)

// SetField returns a copy of doc with one top-level scalar field replaced.
// Malformed numeric input is coerced to zero, never rejected.
func SetField(doc Document, field Field, value string) (Document, error) {
	switch field {
	case FieldNumber:
		doc.Number = value
	case FieldDate:
		doc.Date = value
	case FieldDueDate:
		doc.DueDate = value
	case FieldNotes:
		doc.Notes = value
	case FieldCurrency:
		doc.Currency = value
	case FieldTaxRate:
		doc.TaxRate = money.Coerce(value)
	default:
		return doc, NewValidationError("field", string(field), "known", "unknown document field")
	}
	return doc, nil
}

// SetIssuerField returns a copy of doc with one issuer field replaced.
func SetIssuerField(doc Document, field PartyField, value string) (Document, error) {
	p, err := setPartyField(doc.Issuer, field, value, true)
	if err != nil {
		return doc, err
	}
	doc.Issuer = p
	return doc, nil
}

// SetClientField returns a copy of doc with one bill-to field replaced.
// The bill-to party carries no phone.
func SetClientField(doc Document, field PartyField, value string) (Document, error) {
	p, err := setPartyField(doc.BillTo, field, value, false)
	if err != nil {
		return doc, err
	}
	doc.BillTo = p
	return doc, nil
}

func setPartyField(p Party, field PartyField, value string, allowPhone bool) (Party, error) {
	switch field {
	case PartyName:
		p.Name = value
	case PartyAddress:
		p.Address = value
	case PartyEmail:
		p.Email = value
	case PartyPhone:
		if !allowPhone {
			return p, NewValidationError("field", string(field), "issuer-only", "bill-to party has no phone")
		}
		p.Phone = value
	default:
		return p, NewValidationError("field", string(field), "known", "unknown party field")
	}
	return p, nil
}

// ReplaceItem returns a copy of doc with the item at index replaced.
// The item order is unchanged. An out-of-range index is a caller bug and
// yields an IndexError.
func ReplaceItem(doc Document, index int, item LineItem) (Document, error) {
	if index < 0 || index >= len(doc.Items) {
		return doc, NewIndexError("replace item", index, len(doc.Items))
	}
	items := make([]LineItem, len(doc.Items))
	copy(items, doc.Items)
	items[index] = item
	doc.Items = items
	return doc, nil
}

// AddItem returns a copy of doc with a fresh line item appended: a
// document-unique id from the item counter, the template's placeholder
// description, quantity 1 and zero price.
func AddItem(doc Document) Document {
	doc.ItemSeq++
	placeholder := doc.ItemPlaceholder
	if placeholder == "" {
		placeholder = "New Item"
	}
	items := make([]LineItem, len(doc.Items), len(doc.Items)+1)
	copy(items, doc.Items)
	doc.Items = append(items, LineItem{
		ID:          strconv.Itoa(doc.ItemSeq),
		Description: placeholder,
		Quantity:    decimal.NewFromInt(1),
		Price:       decimal.Zero,
	})
	return doc
}

// RemoveItem returns a copy of doc without the item at index. Removing a
// non-existent index is a no-op that returns the document unchanged.
func RemoveItem(doc Document, index int) Document {
	if index < 0 || index >= len(doc.Items) {
		return doc
	}
	items := make([]LineItem, 0, len(doc.Items)-1)
	for i, it := range doc.Items {
		if i == index {
			continue
		}
		items = append(items, it)
	}
	doc.Items = items
	return doc
}
