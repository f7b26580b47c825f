package posting

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Effects describe what a posting does beyond writing GL entries: running
// customer/vendor balances and payment applications against open documents.
// Generators compute them alongside the entries; the orchestrator applies
// them inside the posting transaction, and applies them negated when the
// document is voided.
type Effects struct {
	CustomerDeltas  []BalanceDelta
	VendorDeltas    []BalanceDelta
	InvoicePayments []Application
	BillPayments    []Application
}

// BalanceDelta is a relative change to a customer's or vendor's running balance.
type BalanceDelta struct {
	ID    uuid.UUID
	Delta decimal.Decimal
}

// Application settles part of an open invoice or bill.
type Application struct {
	DocID  uuid.UUID
	Amount decimal.Decimal
}

func (e *Effects) customer(id uuid.UUID, delta decimal.Decimal) {
	e.CustomerDeltas = append(e.CustomerDeltas, BalanceDelta{ID: id, Delta: delta})
}

func (e *Effects) vendor(id uuid.UUID, delta decimal.Decimal) {
	e.VendorDeltas = append(e.VendorDeltas, BalanceDelta{ID: id, Delta: delta})
}

// Negated returns the effects with every delta and application amount
// negated. Voiding a document applies the negated effects so customer and
// vendor balances return to their pre-posting values.
func (e Effects) Negated() Effects {
	var neg Effects
	for _, d := range e.CustomerDeltas {
		neg.customer(d.ID, d.Delta.Neg())
	}
	for _, d := range e.VendorDeltas {
		neg.vendor(d.ID, d.Delta.Neg())
	}
	for _, a := range e.InvoicePayments {
		neg.InvoicePayments = append(neg.InvoicePayments, Application{DocID: a.DocID, Amount: a.Amount.Neg()})
	}
	for _, a := range e.BillPayments {
		neg.BillPayments = append(neg.BillPayments, Application{DocID: a.DocID, Amount: a.Amount.Neg()})
	}
	return neg
}
