package posting_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/domain"
	"github.com/openbooks-dev/openbooks/internal/posting"
	"github.com/openbooks-dev/openbooks/internal/repository"
	"github.com/openbooks-dev/openbooks/internal/testutil"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func setupEngine(t *testing.T) (*sql.DB, *repository.Stores, *posting.Service) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	stores := repository.NewStores(db)
	return db, stores, posting.NewService(stores)
}

func docStatus(t *testing.T, db *sql.DB, table string, id uuid.UUID) domain.DocStatus {
	t.Helper()
	var status domain.DocStatus
	require.NoError(t, db.QueryRow(`SELECT status FROM `+table+` WHERE id = $1`, id).Scan(&status))
	return status
}

func TestPostInvoice(t *testing.T) {
	db, stores, svc := setupEngine(t)
	ctx := context.Background()

	ar := testutil.SeedAccount(t, db, "Accounts Receivable", domain.AccountTypeAccountsReceivable)
	services := testutil.SeedAccount(t, db, "Services", domain.AccountTypeIncome)
	customer := testutil.SeedCustomer(t, db, "Acme Co")

	inv := &domain.Invoice{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		InvoiceNumber: "INV-00001",
		Date:          time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:       time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC),
		Subtotal:      dec("1000.00"),
		TaxTotal:      dec("90.00"),
		Total:         dec("1090.00"),
		BalanceDue:    dec("1090.00"),
		Status:        domain.DocStatusDraft,
		Lines:         []domain.InvoiceLine{{ID: uuid.New(), Qty: dec("1"), Rate: dec("1000.00"), Amount: dec("1000.00")}},
	}
	require.NoError(t, stores.Invoices.Create(ctx, db, inv))

	entries, err := svc.Post(ctx, domain.DocTypeInvoice, inv.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, ar.ID, entries[0].AccountID)
	assert.True(t, entries[0].Debit.Equal(dec("1090.00")))
	assert.Equal(t, services.ID, entries[1].AccountID)
	assert.True(t, entries[1].Credit.Equal(dec("1000.00")))
	assert.True(t, entries[2].Credit.Equal(dec("90.00")))

	// Sales Tax Payable was created on the fly inside the posting.
	taxBalance := struct {
		id      uuid.UUID
		balance decimal.Decimal
	}{}
	require.NoError(t, db.QueryRow(
		`SELECT id, balance FROM accounts WHERE name = 'Sales Tax Payable'`,
	).Scan(&taxBalance.id, &taxBalance.balance))
	assert.True(t, taxBalance.balance.Equal(dec("90.00")))

	assert.True(t, testutil.GetAccountBalance(t, db, ar.ID).Equal(dec("1090.00")))
	assert.True(t, testutil.GetAccountBalance(t, db, services.ID).Equal(dec("1000.00")))
	assert.Equal(t, domain.DocStatusPosted, docStatus(t, db, "invoices", inv.ID))

	balanced, err := svc.ValidateBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balanced)
}

func TestPostTransfer(t *testing.T) {
	db, stores, svc := setupEngine(t)
	ctx := context.Background()

	checking := testutil.SeedAccount(t, db, "Checking", domain.AccountTypeBank)
	savings := testutil.SeedAccount(t, db, "Savings", domain.AccountTypeBank)

	tr := &domain.Transfer{
		ID:            uuid.New(),
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Date:          time.Now().UTC(),
		Amount:        dec("500.00"),
		Status:        domain.DocStatusDraft,
	}
	require.NoError(t, stores.Transfers.Create(ctx, db, tr))

	entries, err := svc.Post(ctx, domain.DocTypeTransfer, tr.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.True(t, testutil.GetAccountBalance(t, db, savings.ID).Equal(dec("500.00")))
	assert.True(t, testutil.GetAccountBalance(t, db, checking.ID).Equal(dec("-500.00")))
}

func TestPostBill_VoidRoundTrip(t *testing.T) {
	db, stores, svc := setupEngine(t)
	ctx := context.Background()

	ap := testutil.SeedAccount(t, db, "Accounts Payable", domain.AccountTypeAccountsPayable)
	supplies := testutil.SeedAccount(t, db, "Office Supplies", domain.AccountTypeExpense)
	vendor := testutil.SeedVendor(t, db, "Supply Depot")

	bill := &domain.Bill{
		ID:         uuid.New(),
		VendorID:   vendor.ID,
		Date:       time.Now().UTC(),
		DueDate:    time.Now().UTC().AddDate(0, 1, 0),
		AmountDue:  dec("250.00"),
		BalanceDue: dec("250.00"),
		Status:     domain.DocStatusDraft,
		ExpenseLines: []domain.BillExpenseLine{
			{ID: uuid.New(), AccountID: supplies.ID, Amount: dec("250.00")},
		},
	}
	require.NoError(t, stores.Bills.Create(ctx, db, bill))

	_, err := svc.Post(ctx, domain.DocTypeBill, bill.ID)
	require.NoError(t, err)

	assert.True(t, testutil.GetVendorBalance(t, db, vendor.ID).Equal(dec("250.00")))
	assert.True(t, testutil.GetAccountBalance(t, db, ap.ID).Equal(dec("250.00")))
	assert.True(t, testutil.GetAccountBalance(t, db, supplies.ID).Equal(dec("250.00")))

	reversed, err := svc.Void(ctx, domain.DocTypeBill, bill.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reversed)

	// 2 originals + 2 reversals, every one flagged void.
	assert.Equal(t, 4, testutil.CountEntries(t, db, domain.DocTypeBill, bill.ID))
	var voidCount int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM gl_entries WHERE doc_type = 'bill' AND doc_id = $1 AND is_void`,
		bill.ID,
	).Scan(&voidCount))
	assert.Equal(t, 4, voidCount)

	// Balances are back where they started.
	assert.True(t, testutil.GetAccountBalance(t, db, ap.ID).IsZero())
	assert.True(t, testutil.GetAccountBalance(t, db, supplies.ID).IsZero())
	assert.True(t, testutil.GetVendorBalance(t, db, vendor.ID).IsZero())

	balanced, err := svc.ValidateBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balanced)
}

func TestVoid_Twice(t *testing.T) {
	db, stores, svc := setupEngine(t)
	ctx := context.Background()

	checking := testutil.SeedAccount(t, db, "Checking", domain.AccountTypeBank)
	savings := testutil.SeedAccount(t, db, "Savings", domain.AccountTypeBank)

	tr := &domain.Transfer{
		ID:            uuid.New(),
		FromAccountID: checking.ID,
		ToAccountID:   savings.ID,
		Date:          time.Now().UTC(),
		Amount:        dec("100.00"),
		Status:        domain.DocStatusDraft,
	}
	require.NoError(t, stores.Transfers.Create(ctx, db, tr))

	_, err := svc.Post(ctx, domain.DocTypeTransfer, tr.ID)
	require.NoError(t, err)

	reversed, err := svc.Void(ctx, domain.DocTypeTransfer, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reversed)

	// Second void finds nothing left to reverse.
	reversed, err = svc.Void(ctx, domain.DocTypeTransfer, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reversed)

	assert.Equal(t, 4, testutil.CountEntries(t, db, domain.DocTypeTransfer, tr.ID))
	assert.True(t, testutil.GetAccountBalance(t, db, checking.ID).IsZero())
	assert.True(t, testutil.GetAccountBalance(t, db, savings.ID).IsZero())
}

func TestPost_Twice(t *testing.T) {
	db, stores, svc := setupEngine(t)
	ctx := context.Background()

	ar := testutil.SeedAccount(t, db, "Accounts Receivable", domain.AccountTypeAccountsReceivable)
	services := testutil.SeedAccount(t, db, "Services", domain.AccountTypeIncome)
	customer := testutil.SeedCustomer(t, db, "Acme Co")

	inv := &domain.Invoice{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		InvoiceNumber: "INV-00001",
		Date:          time.Now().UTC(),
		DueDate:       time.Now().UTC(),
		Subtotal:      dec("200.00"),
		Total:         dec("200.00"),
		BalanceDue:    dec("200.00"),
		Status:        domain.DocStatusDraft,
		Lines:         []domain.InvoiceLine{{ID: uuid.New(), Qty: dec("1"), Rate: dec("200.00"), Amount: dec("200.00")}},
	}
	require.NoError(t, stores.Invoices.Create(ctx, db, inv))

	entries, err := svc.Post(ctx, domain.DocTypeInvoice, inv.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Posted is terminal: a second post is rejected, not re-applied.
	_, err = svc.Post(ctx, domain.DocTypeInvoice, inv.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDocumentNotDraft))

	// No duplicate entries, no doubled balances.
	assert.Equal(t, 2, testutil.CountEntries(t, db, domain.DocTypeInvoice, inv.ID))
	assert.True(t, testutil.GetAccountBalance(t, db, ar.ID).Equal(dec("200.00")))
	assert.True(t, testutil.GetAccountBalance(t, db, services.ID).Equal(dec("200.00")))
	assert.Equal(t, domain.DocStatusPosted, docStatus(t, db, "invoices", inv.ID))
}

func TestPost_NonPostingType(t *testing.T) {
	_, _, svc := setupEngine(t)

	_, err := svc.Post(context.Background(), domain.DocTypeEstimate, uuid.New())
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedDocumentType))
}

func TestPost_MissingSystemAccount(t *testing.T) {
	db, stores, svc := setupEngine(t)
	ctx := context.Background()

	testutil.SeedAccount(t, db, "Services", domain.AccountTypeIncome)
	customer := testutil.SeedCustomer(t, db, "Acme Co")

	inv := &domain.Invoice{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		InvoiceNumber: "INV-00001",
		Date:          time.Now().UTC(),
		DueDate:       time.Now().UTC(),
		Subtotal:      dec("10.00"),
		Total:         dec("10.00"),
		BalanceDue:    dec("10.00"),
		Status:        domain.DocStatusDraft,
		Lines:         []domain.InvoiceLine{{ID: uuid.New(), Qty: dec("1"), Rate: dec("10.00"), Amount: dec("10.00")}},
	}
	require.NoError(t, stores.Invoices.Create(ctx, db, inv))

	// No Accounts Receivable account exists.
	_, err := svc.Post(ctx, domain.DocTypeInvoice, inv.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSystemAccountMissing))

	// Nothing was persisted and the document stayed draft.
	assert.Equal(t, 0, testutil.CountEntries(t, db, domain.DocTypeInvoice, inv.ID))
	assert.Equal(t, domain.DocStatusDraft, docStatus(t, db, "invoices", inv.ID))
}

func TestPostReceivePayment_SettlesInvoice(t *testing.T) {
	db, stores, svc := setupEngine(t)
	ctx := context.Background()

	testutil.SeedAccount(t, db, "Accounts Receivable", domain.AccountTypeAccountsReceivable)
	testutil.SeedAccount(t, db, "Services", domain.AccountTypeIncome)
	checking := testutil.SeedAccount(t, db, "Checking", domain.AccountTypeBank)
	customer := testutil.SeedCustomer(t, db, "Acme Co")

	inv := &domain.Invoice{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		InvoiceNumber: "INV-00001",
		Date:          time.Now().UTC(),
		DueDate:       time.Now().UTC(),
		Subtotal:      dec("600.00"),
		Total:         dec("600.00"),
		BalanceDue:    dec("600.00"),
		Status:        domain.DocStatusDraft,
		Lines:         []domain.InvoiceLine{{ID: uuid.New(), Qty: dec("1"), Rate: dec("600.00"), Amount: dec("600.00")}},
	}
	require.NoError(t, stores.Invoices.Create(ctx, db, inv))
	_, err := svc.Post(ctx, domain.DocTypeInvoice, inv.ID)
	require.NoError(t, err)

	p := &domain.ReceivePayment{
		ID:                 uuid.New(),
		CustomerID:         customer.ID,
		PaymentDate:        time.Now().UTC(),
		Amount:             dec("600.00"),
		DepositToAccountID: &checking.ID,
		Status:             domain.DocStatusDraft,
		Applications: []domain.PaymentApplication{
			{ID: uuid.New(), InvoiceID: inv.ID, AmountApplied: dec("600.00")},
		},
	}
	require.NoError(t, stores.Payments.Create(ctx, db, p))

	entries, err := svc.Post(ctx, domain.DocTypeReceivePayment, p.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	loaded, err := stores.Invoices.Get(ctx, db, inv.ID)
	require.NoError(t, err)
	assert.True(t, loaded.AmountPaid.Equal(dec("600.00")))
	assert.True(t, loaded.BalanceDue.IsZero())

	assert.True(t, testutil.GetCustomerBalance(t, db, customer.ID).Equal(dec("-600.00")))
	assert.True(t, testutil.GetAccountBalance(t, db, checking.ID).Equal(dec("600.00")))

	balanced, err := svc.ValidateBalance(ctx)
	require.NoError(t, err)
	assert.True(t, balanced)
}
