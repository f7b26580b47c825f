package posting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

const (
	nameTypeCustomer = "Customer"
	nameTypeVendor   = "Vendor"
)

func newEntry(date time.Time, accountID uuid.UUID, debit, credit decimal.Decimal, docType domain.DocType, docID uuid.UUID) domain.GLEntry {
	return domain.GLEntry{
		ID:          uuid.New(),
		PostingDate: date,
		AccountID:   accountID,
		Debit:       debit,
		Credit:      credit,
		DocType:     docType,
		DocID:       docID,
	}
}

func strp(s string) *string { return &s }

func uuidp(id uuid.UUID) *uuid.UUID { return &id }

func coalesce(a, b *string) *string {
	if a != nil {
		return a
	}
	return b
}

// lineIncomeAccount picks the income account a sales line credits: the
// item's own income account when one is linked, the company default income
// account otherwise.
func lineIncomeAccount(ctx context.Context, res AccountResolver, item *domain.Item) (uuid.UUID, error) {
	if item != nil && item.IncomeAccountID != nil {
		return *item.IncomeAccountID, nil
	}
	def, err := res.DefaultIncome(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return def.ID, nil
}

// lineExpenseAccount is the purchase-side counterpart of lineIncomeAccount.
func lineExpenseAccount(ctx context.Context, res AccountResolver, item *domain.Item) (uuid.UUID, error) {
	if item != nil && item.ExpenseAccountID != nil {
		return *item.ExpenseAccountID, nil
	}
	def, err := res.DefaultExpense(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	return def.ID, nil
}
