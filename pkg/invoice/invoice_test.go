package invoice

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDerivedAmounts(t *testing.T) {
	inv := Invoice{
		Items: []LineItem{
			NewLineItem("Design work", dec("2"), dec("50")),
			NewLineItem("Hosting", dec("1"), dec("25")),
		},
		TaxRate: dec("0.08"),
	}

	assert.True(t, dec("125").Equal(inv.Subtotal()), "subtotal %s", inv.Subtotal())
	assert.True(t, dec("10").Equal(inv.TaxAmount()), "tax %s", inv.TaxAmount())
	assert.True(t, dec("135").Equal(inv.Total()), "total %s", inv.Total())
}

func TestTaxAmountRoundsToCents(t *testing.T) {
	inv := Invoice{
		Items:   []LineItem{NewLineItem("Consulting", dec("1"), dec("10.05"))},
		TaxRate: dec("0.075"),
	}

	// 10.05 × 0.075 = 0.75375
	assert.Equal(t, "0.75", inv.TaxAmount().StringFixed(2))
	assert.Equal(t, "10.80", inv.Total().StringFixed(2))
}

func TestEmptyInvoiceTotalsAreZero(t *testing.T) {
	var inv Invoice
	assert.True(t, inv.Subtotal().IsZero())
	assert.True(t, inv.TaxAmount().IsZero())
	assert.True(t, inv.Total().IsZero())
}

func TestKind(t *testing.T) {
	tests := []struct {
		kind  Kind
		mark  string
		title string
		label string
	}{
		{"", "INVOICE", "Invoice", "Invoice #"},
		{KindInvoice, "INVOICE", "Invoice", "Invoice #"},
		{KindEstimate, "ESTIMATE", "Estimate", "Estimate #"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			k := Invoice{Kind: tt.kind}.DocumentKind()
			assert.Equal(t, tt.mark, k.Mark())
			assert.Equal(t, tt.title, k.Title())
			assert.Equal(t, tt.label, k.NumberLabel())
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		inv   Invoice
		field string
	}{
		{name: "empty record is valid", inv: Invoice{}},
		{name: "unknown kind", inv: Invoice{Kind: "receipt"}, field: "kind"},
		{name: "unknown status", inv: Invoice{Status: "lost"}, field: "status"},
		{name: "unknown template", inv: Invoice{Template: "baroque"}, field: "template"},
		{name: "negative tax", inv: Invoice{TaxRate: dec("-0.1")}, field: "tax_rate"},
		{
			name:  "negative quantity",
			inv:   Invoice{Items: []LineItem{NewLineItem("x", dec("1"), dec("1")), NewLineItem("y", dec("-1"), dec("1"))}},
			field: "line_items[1].quantity",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.inv.Validate()
			if tt.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestUnmarshalJSONDates(t *testing.T) {
	body := `{
		"number": "INV-001",
		"issue_date": "2024-01-15",
		"due_date": "2024-02-14T00:00:00Z",
		"status": "sent",
		"client": {"name": "Acme"},
		"line_items": [{"description": "Design", "quantity": 2, "unit_price": "50", "total": "100"}],
		"tax_rate": 0.08
	}`

	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(body), &inv))
	assert.Equal(t, "INV-001", inv.Number)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), inv.IssueDate)
	assert.Equal(t, time.Date(2024, 2, 14, 0, 0, 0, 0, time.UTC), inv.DueDate)
	assert.Equal(t, StatusSent, inv.Status)
	assert.Equal(t, "Acme", inv.Client.Name)
	require.Len(t, inv.Items, 1)
	assert.True(t, dec("100").Equal(inv.Items[0].Total))
	assert.True(t, dec("0.08").Equal(inv.TaxRate))
}

func TestLineItemUnmarshalFillsMissingTotal(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"absent", `{"description": "Workshop", "quantity": 2, "unit_price": 12.5}`, "25"},
		{"null", `{"quantity": 3, "unit_price": "40", "total": null}`, "120"},
		{"given", `{"quantity": 2, "unit_price": 12.5, "total": 24}`, "24"},
		{"explicit zero", `{"quantity": 2, "unit_price": 12.5, "total": 0}`, "0"},
		{"no price", `{"description": "Note only"}`, "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var li LineItem
			require.NoError(t, json.Unmarshal([]byte(tt.body), &li))
			assert.True(t, dec(tt.want).Equal(li.Total), "total %s", li.Total)
		})
	}
}

func TestInvoiceUnmarshalComputesItemTotals(t *testing.T) {
	body := `{"line_items": [
		{"description": "Workshop", "quantity": 2, "unit_price": 12.5},
		{"description": "Travel", "quantity": 1, "unit_price": 30}
	]}`

	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(body), &inv))
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Workshop", inv.Items[0].Description)
	assert.True(t, dec("55").Equal(inv.Subtotal()), "subtotal %s", inv.Subtotal())
}

func TestUnmarshalJSONBlankAndBadDates(t *testing.T) {
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(`{"number":"A"}`), &inv))
	assert.True(t, inv.IssueDate.IsZero())
	assert.True(t, inv.DueDate.IsZero())

	err := json.Unmarshal([]byte(`{"issue_date":"15/01/2024"}`), &inv)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "issue_date", verr.Field)
}

func TestMarshalRoundTripKeepsDates(t *testing.T) {
	in := Invoice{
		Number:    "INV-7",
		IssueDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Template:  TemplateLegal,
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out Invoice
	require.NoError(t, json.Unmarshal(data, &out))
	assert.True(t, in.IssueDate.Equal(out.IssueDate))
	assert.True(t, out.DueDate.IsZero())
	assert.Equal(t, TemplateLegal, out.Template)
}
