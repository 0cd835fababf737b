package invoice

import "fmt"

// Status is the payment state of an invoice.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusSent          Status = "sent"
	StatusPaid          Status = "paid"
	StatusOverdue       Status = "overdue"
	StatusCancelled     Status = "cancelled"
	StatusPartiallyPaid Status = "partially_paid"
)

var statusLabels = map[Status]string{
	StatusDraft:         "Draft",
	StatusSent:          "Sent",
	StatusPaid:          "Paid",
	StatusOverdue:       "Overdue",
	StatusCancelled:     "Cancelled",
	StatusPartiallyPaid: "Partially Paid",
}

// Label is the human readable status shown in the metadata row.
func (s Status) Label() string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return statusLabels[StatusDraft]
}

// ParseStatus accepts the wire names, plus "partially-paid".
func ParseStatus(s string) (Status, error) {
	if s == "partially-paid" {
		return StatusPartiallyPaid, nil
	}
	st := Status(s)
	if _, ok := statusLabels[st]; !ok {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", s)}
	}
	return st, nil
}
