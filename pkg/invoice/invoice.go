// pkg/invoice/invoice.go

package invoice

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes invoices from estimates. Both share the same layout; only
// the header mark and the number label differ.
type Kind string

const (
	KindInvoice  Kind = "invoice"
	KindEstimate Kind = "estimate"
)

// Mark is the word printed in the header band.
func (k Kind) Mark() string {
	if k == KindEstimate {
		return "ESTIMATE"
	}
	return "INVOICE"
}

// Title is the capitalised kind, used in document metadata.
func (k Kind) Title() string {
	if k == KindEstimate {
		return "Estimate"
	}
	return "Invoice"
}

// NumberLabel is the label of the document number in the metadata row.
func (k Kind) NumberLabel() string {
	if k == KindEstimate {
		return "Estimate #"
	}
	return "Invoice #"
}

// Invoice represents the invoice data model.
type Invoice struct {
	Number    string          `json:"number"`
	Kind      Kind            `json:"kind,omitempty"`
	IssueDate time.Time       `json:"issue_date"`
	DueDate   time.Time       `json:"due_date"`
	Status    Status          `json:"status"`
	Client    Client          `json:"client"`
	Items     []LineItem      `json:"line_items"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	Notes     string          `json:"notes,omitempty"`
	Template  Template        `json:"template,omitempty"`
}

// LineItem represents one billable row. Total is computed by the caller and
// must equal Quantity × UnitPrice; the renderer never recomputes it.
type LineItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// NewLineItem builds a line item with its total filled in.
func NewLineItem(description string, quantity, unitPrice decimal.Decimal) LineItem {
	return LineItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Total:       quantity.Mul(unitPrice),
	}
}

// UnmarshalJSON fills an absent or null total with Quantity × UnitPrice. A
// total that is present is kept as given.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type plain LineItem
	aux := struct {
		*plain
		Total *decimal.Decimal `json:"total"`
	}{plain: (*plain)(li)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Total != nil {
		li.Total = *aux.Total
	} else {
		li.Total = li.Quantity.Mul(li.UnitPrice)
	}
	return nil
}

// Subtotal is the sum of all line item totals.
func (inv Invoice) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range inv.Items {
		sum = sum.Add(item.Total)
	}
	return sum
}

// TaxAmount is Subtotal × TaxRate rounded to cents, so that the printed
// subtotal and tax always add up to the printed total.
func (inv Invoice) TaxAmount() decimal.Decimal {
	return inv.Subtotal().Mul(inv.TaxRate).Round(2)
}

// Total is Subtotal + TaxAmount.
func (inv Invoice) Total() decimal.Decimal {
	return inv.Subtotal().Add(inv.TaxAmount())
}

// DocumentKind returns the kind, defaulting to an invoice.
func (inv Invoice) DocumentKind() Kind {
	if inv.Kind == "" {
		return KindInvoice
	}
	return inv.Kind
}

// Validate checks caller-supplied enumerations and amounts. Blank strings are
// valid everywhere; the renderer omits them.
func (inv Invoice) Validate() error {
	if inv.Kind != "" && inv.Kind != KindInvoice && inv.Kind != KindEstimate {
		return &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown kind %q", inv.Kind)}
	}
	if inv.Status != "" {
		if _, err := ParseStatus(string(inv.Status)); err != nil {
			return err
		}
	}
	if inv.Template != "" {
		if _, err := ParseTemplate(string(inv.Template)); err != nil {
			return err
		}
	}
	if inv.TaxRate.IsNegative() {
		return &ValidationError{Field: "tax_rate", Message: "must not be negative"}
	}
	for i, item := range inv.Items {
		if item.Quantity.IsNegative() {
			return &ValidationError{Field: fmt.Sprintf("line_items[%d].quantity", i), Message: "must not be negative"}
		}
	}
	return nil
}

// UnmarshalJSON accepts dates either as RFC 3339 timestamps or as plain
// calendar dates (2006-01-02).
func (inv *Invoice) UnmarshalJSON(data []byte) error {
	type plain Invoice
	aux := struct {
		*plain
		IssueDate string `json:"issue_date"`
		DueDate   string `json:"due_date"`
	}{plain: (*plain)(inv)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	var err error
	if inv.IssueDate, err = parseDate("issue_date", aux.IssueDate); err != nil {
		return err
	}
	if inv.DueDate, err = parseDate("due_date", aux.DueDate); err != nil {
		return err
	}
	return nil
}

func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Message: fmt.Sprintf("invalid date %q", s)}
	}
	return t, nil
}

// ValidationError reports a malformed input record.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
