package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sales-side documents. Headers own their lines; Customer and Item pointers
// are populated by the store's graph loads and stay nil on bare reads.

type Invoice struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	Customer      *Customer
	InvoiceNumber string
	Date          time.Time
	DueDate       time.Time
	Subtotal      decimal.Decimal
	TaxTotal      decimal.Decimal
	Total         decimal.Decimal
	AmountPaid    decimal.Decimal
	BalanceDue    decimal.Decimal
	Status        DocStatus
	Memo          *string
	Lines         []InvoiceLine
}

type InvoiceLine struct {
	ID          uuid.UUID
	InvoiceID   uuid.UUID
	ItemID      *uuid.UUID
	Item        *Item
	Description *string
	Qty         decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	ClassRef    *string
}

type SalesReceipt struct {
	ID                 uuid.UUID
	CustomerID         *uuid.UUID
	Customer           *Customer
	ReceiptNumber      string
	Date               time.Time
	DepositToAccountID *uuid.UUID
	Subtotal           decimal.Decimal
	Tax                decimal.Decimal
	Total              decimal.Decimal
	Status             DocStatus
	Memo               *string
	Lines              []SalesReceiptLine
}

type SalesReceiptLine struct {
	ID             uuid.UUID
	SalesReceiptID uuid.UUID
	ItemID         *uuid.UUID
	Item           *Item
	Description    *string
	Qty            decimal.Decimal
	Rate           decimal.Decimal
	Amount         decimal.Decimal
	ClassRef       *string
}

type CreditMemo struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	Customer     *Customer
	CreditNumber string
	Date         time.Time
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	Total        decimal.Decimal
	Status       DocStatus
	Memo         *string
	Lines        []CreditMemoLine
}

type CreditMemoLine struct {
	ID           uuid.UUID
	CreditMemoID uuid.UUID
	ItemID       *uuid.UUID
	Item         *Item
	Description  *string
	Qty          decimal.Decimal
	Rate         decimal.Decimal
	Amount       decimal.Decimal
	ClassRef     *string
}

type ReceivePayment struct {
	ID                 uuid.UUID
	CustomerID         uuid.UUID
	Customer           *Customer
	PaymentDate        time.Time
	Amount             decimal.Decimal
	ReferenceNumber    *string
	DepositToAccountID *uuid.UUID
	Status             DocStatus
	Memo               *string
	Applications       []PaymentApplication
}

// PaymentApplication ties part of a received payment to one open invoice.
type PaymentApplication struct {
	ID               uuid.UUID
	ReceivePaymentID uuid.UUID
	InvoiceID        uuid.UUID
	AmountApplied    decimal.Decimal
}

// Estimate is a non-posting document: saved and numbered, never ledgered.
type Estimate struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	Customer       *Customer
	EstimateNumber string
	Date           time.Time
	ExpiryDate     *time.Time
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	Status         DocStatus
	Memo           *string
}
