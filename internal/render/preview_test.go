package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/invoice-studio/internal/model"
	"github.com/rezonia/invoice-studio/internal/render"
)

func renderTemplate(t *testing.T, template string) string {
	t.Helper()
	doc, err := model.NewDocument(template)
	require.NoError(t, err)
	html, err := render.NewPreview(doc).HTML()
	require.NoError(t, err)
	return html
}

func TestPreview_Detailed(t *testing.T) {
	html := renderTemplate(t, model.TemplateService)

	assert.Contains(t, html, "INV-001")
	assert.Contains(t, html, "Your Company")
	assert.Contains(t, html, "Client Inc.")
	assert.Contains(t, html, "Web Design Services")

	// Per-unit columns and line amounts.
	assert.Contains(t, html, "Qty")
	assert.Contains(t, html, "$1,500.00")
	assert.Contains(t, html, "$800.00")

	// Additive totals at 8%.
	assert.Contains(t, html, "$2,300.00")
	assert.Contains(t, html, "Tax (8%)")
	assert.Contains(t, html, "$184.00")
	assert.Contains(t, html, "Total")
	assert.Contains(t, html, "$2,484.00")

	assert.Contains(t, html, "Thank you for your business")
}

func TestPreview_Compact(t *testing.T) {
	html := renderTemplate(t, model.TemplateCommission)

	assert.Contains(t, html, "COT2025-04-30")
	assert.Contains(t, html, "Park Hyatt HangZhou")
	assert.Contains(t, html, "Commission #HY0009275814")

	// Flat amounts, no quantity column.
	assert.NotContains(t, html, "Qty")
	assert.Contains(t, html, "¥188.80")
	assert.Contains(t, html, "¥446.00")

	// Withholding totals at 6%, shown as a deduction.
	assert.Contains(t, html, "¥1,251.20")
	assert.Contains(t, html, "Withholding Tax (6%)")
	assert.Contains(t, html, "¥70.82")
	assert.Contains(t, html, "Amount Due")
	assert.Contains(t, html, "¥1,180.38")

	// Dates render in long form.
	assert.Contains(t, html, "April 30, 2025")
	assert.Contains(t, html, "June 30, 2025")

	// Bank block.
	assert.Contains(t, html, "DBS BANK (TAIWAN) LTD.")
	assert.Contains(t, html, "DBSSTWTP")
}

func TestPreview_EmptyDates(t *testing.T) {
	doc, err := model.NewDocument(model.TemplateService)
	require.NoError(t, err)
	doc, err = model.SetField(doc, model.FieldDate, "")
	require.NoError(t, err)
	doc, err = model.SetField(doc, model.FieldDueDate, "garbage")
	require.NoError(t, err)

	html, err := render.NewPreview(doc).HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "N/A")
	assert.Contains(t, html, "Invalid Date")
}

func TestPreview_SnapshotsDocument(t *testing.T) {
	doc, err := model.NewDocument(model.TemplateService)
	require.NoError(t, err)

	preview := render.NewPreview(doc)

	// Edits after construction do not show up in the snapshot.
	doc, err = model.SetField(doc, model.FieldNumber, "CHANGED-999")
	require.NoError(t, err)
	_ = doc

	html, err := preview.HTML()
	require.NoError(t, err)
	assert.Contains(t, html, "INV-001")
	assert.NotContains(t, html, "CHANGED-999")
}

func TestPreview_MultilineAddress(t *testing.T) {
	html := renderTemplate(t, model.TemplateCommission)

	// Newlines in the stored address become separate markup lines, so the
	// raw newline-joined string never appears verbatim.
	assert.Contains(t, html, "No. 1366 Qianjiang Road")
	assert.Contains(t, html, "Hangzhou, Zhejiang, China, 310020")
}

func TestPreview_EscapesMarkup(t *testing.T) {
	doc, err := model.NewDocument(model.TemplateBlank)
	require.NoError(t, err)
	doc, err = model.SetIssuerField(doc, model.PartyName, "<script>alert(1)</script>")
	require.NoError(t, err)

	html, err := render.NewPreview(doc).HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}
