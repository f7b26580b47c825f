package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Bill struct {
	ID           uuid.UUID
	VendorID     uuid.UUID
	Vendor       *Vendor
	BillNumber   *string
	VendorRefNo  *string
	Date         time.Time
	DueDate      time.Time
	AmountDue    decimal.Decimal
	AmountPaid   decimal.Decimal
	BalanceDue   decimal.Decimal
	Status       DocStatus
	Memo         *string
	ExpenseLines []BillExpenseLine
	ItemLines    []BillItemLine
}

// BillExpenseLine charges an explicit expense account.
type BillExpenseLine struct {
	ID        uuid.UUID
	BillID    uuid.UUID
	AccountID uuid.UUID
	Amount    decimal.Decimal
	Memo      *string
	ClassRef  *string
}

// BillItemLine charges the item's expense account, falling back to the
// company default when the item has none.
type BillItemLine struct {
	ID          uuid.UUID
	BillID      uuid.UUID
	ItemID      *uuid.UUID
	Item        *Item
	Description *string
	Qty         decimal.Decimal
	Cost        decimal.Decimal
	Amount      decimal.Decimal
	ClassRef    *string
}

type BillPayment struct {
	ID               uuid.UUID
	Date             time.Time
	PaymentAccountID uuid.UUID
	Amount           decimal.Decimal
	Status           DocStatus
	Memo             *string
	Applications     []BillPaymentApplication
}

type BillPaymentApplication struct {
	ID            uuid.UUID
	BillPaymentID uuid.UUID
	BillID        uuid.UUID
	AmountApplied decimal.Decimal
}

type VendorCredit struct {
	ID       uuid.UUID
	VendorID uuid.UUID
	Vendor   *Vendor
	Date     time.Time
	RefNo    *string
	Total    decimal.Decimal
	Status   DocStatus
	Lines    []VendorCreditLine
}

type VendorCreditLine struct {
	ID             uuid.UUID
	VendorCreditID uuid.UUID
	AccountID      *uuid.UUID
	Amount         decimal.Decimal
	Memo           *string
	ClassRef       *string
}

// PurchaseOrder is a non-posting document, like Estimate on the sales side.
type PurchaseOrder struct {
	ID       uuid.UUID
	VendorID uuid.UUID
	Vendor   *Vendor
	PONumber string
	Date     time.Time
	Total    decimal.Decimal
	Status   DocStatus
	Memo     *string
}
