package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
	"github.com/openbooks-dev/openbooks/internal/logging"
	"github.com/openbooks-dev/openbooks/internal/repository"
)

type chartAccount struct {
	Number   string
	Name     string
	Type     domain.AccountType
	IsSystem bool
}

// defaultChart is the starter chart of accounts for a new company file.
// The system accounts are the ones posting resolves implicitly: AR, AP,
// Undeposited Funds, Sales Tax Payable.
var defaultChart = []chartAccount{
	{"1000", "Checking", domain.AccountTypeBank, false},
	{"1010", "Savings", domain.AccountTypeBank, false},
	{"1100", "Accounts Receivable", domain.AccountTypeAccountsReceivable, true},
	{"1200", "Undeposited Funds", domain.AccountTypeOtherCurrentAsset, true},
	{"2000", "Accounts Payable", domain.AccountTypeAccountsPayable, true},
	{"2100", "Sales Tax Payable", domain.AccountTypeOtherCurrentLiability, true},
	{"3000", "Opening Balance Equity", domain.AccountTypeEquity, true},
	{"3100", "Retained Earnings", domain.AccountTypeEquity, false},
	{"4000", "Services", domain.AccountTypeIncome, false},
	{"4100", "Product Sales", domain.AccountTypeIncome, false},
	{"5000", "Cost of Goods Sold", domain.AccountTypeCostOfGoodsSold, false},
	{"6000", "Office Supplies", domain.AccountTypeExpense, false},
	{"6100", "Rent", domain.AccountTypeExpense, false},
	{"6200", "Utilities", domain.AccountTypeExpense, false},
}

// Apply inserts any default chart accounts that don't already exist.
// Safe to run repeatedly; existing accounts are left alone.
func Apply(ctx context.Context, stores *repository.Stores) error {
	log := logging.FromContext(ctx)
	conn := stores.DB.Conn()

	created := 0
	for _, ca := range defaultChart {
		_, err := stores.Accounts.FindByNameAndType(ctx, conn, ca.Name, ca.Type)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("seed.Apply: %w", err)
		}

		number := ca.Number
		account := &domain.Account{
			ID:              uuid.New(),
			Number:          &number,
			Name:            ca.Name,
			AccountType:     ca.Type,
			Balance:         decimal.Zero,
			OpeningBalance:  decimal.Zero,
			IsActive:        true,
			IsDebitNormal:   ca.Type.IsDebitNormal(),
			IsSystemAccount: ca.IsSystem,
			Version:         1,
			CreatedAt:       time.Now().UTC(),
		}
		if err := stores.Accounts.Create(ctx, conn, account); err != nil {
			return fmt.Errorf("seed.Apply: %s: %w", ca.Name, err)
		}
		created++
	}

	log.Info("chart of accounts seeded", "created", created, "total", len(defaultChart))
	return nil
}
