package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

// SeedAccount inserts an active top-level account and returns it.
func SeedAccount(t *testing.T, db *sql.DB, name string, accountType domain.AccountType) *domain.Account {
	t.Helper()

	a := &domain.Account{
		ID:             uuid.New(),
		Name:           name,
		AccountType:    accountType,
		Balance:        decimal.Zero,
		OpeningBalance: decimal.Zero,
		IsActive:       true,
		IsDebitNormal:  accountType.IsDebitNormal(),
		Version:        1,
		CreatedAt:      time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO accounts (id, name, account_type, balance, opening_balance,
			is_active, is_debit_normal, is_system_account, version, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, a.Name, a.AccountType, a.Balance, a.OpeningBalance,
		a.IsActive, a.IsDebitNormal, a.IsSystemAccount, a.Version, a.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed account %s: %v", name, err)
	}
	return a
}

func SeedCustomer(t *testing.T, db *sql.DB, name string) *domain.Customer {
	t.Helper()

	c := &domain.Customer{
		ID:        uuid.New(),
		Name:      name,
		Balance:   decimal.Zero,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO customers (id, name, balance, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Name, c.Balance, c.IsActive, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed customer %s: %v", name, err)
	}
	return c
}

func SeedVendor(t *testing.T, db *sql.DB, name string) *domain.Vendor {
	t.Helper()

	v := &domain.Vendor{
		ID:        uuid.New(),
		Name:      name,
		Balance:   decimal.Zero,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO vendors (id, name, balance, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		v.ID, v.Name, v.Balance, v.IsActive, v.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed vendor %s: %v", name, err)
	}
	return v
}

// SeedItem inserts a service item. Either account id may be nil to exercise
// the default-account fallbacks.
func SeedItem(t *testing.T, db *sql.DB, name string, incomeAccountID, expenseAccountID *uuid.UUID) *domain.Item {
	t.Helper()

	i := &domain.Item{
		ID:               uuid.New(),
		Name:             name,
		ItemType:         domain.ItemTypeService,
		SalesPrice:       decimal.Zero,
		PurchaseCost:     decimal.Zero,
		IncomeAccountID:  incomeAccountID,
		ExpenseAccountID: expenseAccountID,
		IsActive:         true,
		CreatedAt:        time.Now().UTC(),
	}
	_, err := db.Exec(
		`INSERT INTO items (id, name, item_type, sales_price, purchase_cost,
			income_account_id, expense_account_id, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		i.ID, i.Name, i.ItemType, i.SalesPrice, i.PurchaseCost,
		i.IncomeAccountID, i.ExpenseAccountID, i.IsActive, i.CreatedAt,
	)
	if err != nil {
		t.Fatalf("seed item %s: %v", name, err)
	}
	return i
}

func GetAccountBalance(t *testing.T, db *sql.DB, accountID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	if err := db.QueryRow(`SELECT balance FROM accounts WHERE id = $1`, accountID).Scan(&balance); err != nil {
		t.Fatalf("get account balance %s: %v", accountID, err)
	}
	return balance
}

func GetCustomerBalance(t *testing.T, db *sql.DB, customerID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	if err := db.QueryRow(`SELECT balance FROM customers WHERE id = $1`, customerID).Scan(&balance); err != nil {
		t.Fatalf("get customer balance %s: %v", customerID, err)
	}
	return balance
}

func GetVendorBalance(t *testing.T, db *sql.DB, vendorID uuid.UUID) decimal.Decimal {
	t.Helper()

	var balance decimal.Decimal
	if err := db.QueryRow(`SELECT balance FROM vendors WHERE id = $1`, vendorID).Scan(&balance); err != nil {
		t.Fatalf("get vendor balance %s: %v", vendorID, err)
	}
	return balance
}

func CountEntries(t *testing.T, db *sql.DB, docType domain.DocType, docID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM gl_entries WHERE doc_type = $1 AND doc_id = $2`,
		docType, docID,
	).Scan(&count)
	if err != nil {
		t.Fatalf("count entries for %s %s: %v", docType, docID, err)
	}
	return count
}
