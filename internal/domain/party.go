package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer and Vendor carry a running balance maintained by the posting
// engine: open receivables for customers, open payables for vendors.

type Customer struct {
	ID            uuid.UUID
	Name          string
	Company       *string
	Email         *string
	Phone         *string
	BillToAddress *string
	CreditLimit   decimal.Decimal
	Balance       decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
}

type Vendor struct {
	ID          uuid.UUID
	Name        string
	Company     *string
	Email       *string
	Phone       *string
	Address     *string
	CreditLimit decimal.Decimal
	Balance     decimal.Decimal
	TaxID       *string
	IsActive    bool
	CreatedAt   time.Time
}
