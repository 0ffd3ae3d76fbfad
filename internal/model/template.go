package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/invoice-studio/internal/money"
)

// Built-in document templates. A template fixes the tax policy and table
// layout for the session; neither is toggled mid-session.
const (
	TemplateBlank      = "blank"
	TemplateService    = "service"
	TemplateCommission = "commission"
)

// TemplateIDs lists the built-in templates in display order.
func TemplateIDs() []string {
	return []string{TemplateBlank, TemplateService, TemplateCommission}
}

// TemplateDescription returns a short description of a built-in template.
func TemplateDescription(id string) string {
	switch id {
	case TemplateBlank:
		return "Empty document, additive tax"
	case TemplateService:
		return "Per-unit service billing, additive tax"
	case TemplateCommission:
		return "Flat commission lines, withholding tax"
	}
	return ""
}

// NewDocument creates a document from a built-in template.
func NewDocument(template string) (Document, error) {
	switch template {
	case "", TemplateBlank:
		return blankDocument(), nil
	case TemplateService:
		return serviceDocument(), nil
	case TemplateCommission:
		return commissionDocument(), nil
	}
	return Document{}, NewValidationError("template", template, "known", "unknown template")
}

func blankDocument() Document {
	return Document{
		Number:      "INV-001",
		Date:        time.Now().Format("2006-01-02"),
		DueDate:     time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
		TaxRate:     decimal.Zero,
		Currency:    "$",
		TaxPolicy:   TaxPolicyAdditive,
		TableLayout: TableLayoutDetailed,
	}
}

func serviceDocument() Document {
	return Document{
		Issuer: Party{
			Name:    "Your Company",
			Address: "123 Street, City, Country",
			Email:   "contact@yourcompany.com",
			Phone:   "+123 456 7890",
		},
		BillTo: Party{
			Name:    "Client Inc.",
			Address: "456 Avenue, Town, Country",
			Email:   "contact@client.com",
		},
		Number:  "INV-001",
		Date:    time.Now().Format("2006-01-02"),
		DueDate: time.Now().AddDate(0, 0, 30).Format("2006-01-02"),
		Items: []LineItem{
			{ID: "1", Description: "Web Design Services", Quantity: decimal.NewFromInt(10), Price: money.MustFromString("150.00")},
			{ID: "2", Description: "SEO Optimization", Quantity: decimal.NewFromInt(1), Price: money.MustFromString("800.00")},
		},
		Notes:           "Thank you for your business. Please pay within 30 days.",
		TaxRate:         money.MustFromString("8.0"),
		Currency:        "$",
		TaxPolicy:       TaxPolicyAdditive,
		TableLayout:     TableLayoutDetailed,
		ItemPlaceholder: "New Item",
		ItemSeq:         2,
	}
}

func commissionDocument() Document {
	return Document{
		Issuer: Party{
			Name:    "Curators Travel Co., Ltd.",
			Address: "6F-2, No. 35, Sec. 1, Chengde Rd.,\nDatong Dist., 103613\nTaipei City, Taiwan",
			Email:   "irwin@curatorstravel.com",
			Phone:   "+886 277 515 076",
		},
		BillTo: Party{
			Name:    "Park Hyatt HangZhou",
			Address: "No. 1366 Qianjiang Road\nHangzhou, Zhejiang, China, 310020",
		},
		Number:  "COT2025-04-30",
		Date:    "2025-04-30",
		DueDate: "2025-06-30",
		Items: []LineItem{
			{ID: "1", Description: "Commission #HY0009275814", Quantity: decimal.NewFromInt(1), Price: money.MustFromString("188.80")},
			{ID: "2", Description: "Commission #HY0054408812", Quantity: decimal.NewFromInt(1), Price: money.MustFromString("446.00")},
			{ID: "3", Description: "Commission #HY0024698305", Quantity: decimal.NewFromInt(1), Price: money.MustFromString("387.60")},
			{ID: "4", Description: "Commission #HY0048495186", Quantity: decimal.NewFromInt(1), Price: money.MustFromString("228.80")},
		},
		TaxRate:         money.MustFromString("6.0"),
		Currency:        "¥",
		TaxPolicy:       TaxPolicyWithholding,
		TableLayout:     TableLayoutCompact,
		ItemPlaceholder: "New Commission",
		Bank: &BankDetails{
			AccountHolder: "CURATORS TRAVEL CO., LTD.",
			AccountNumber: "208885481",
			BankName:      "DBS BANK (TAIWAN) LTD.",
			SwiftCode:     "DBSSTWTP",
			BankAddress:   "13F., No.399, Ruiguang Rd., Neihu Dist\n114 Taipei City\nTaiwan",
		},
		ItemSeq: 4,
	}
}
