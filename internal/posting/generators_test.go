package posting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

// fixtureResolver serves account lookups from memory so generators can be
// tested without a store.
type fixtureResolver struct {
	byType map[domain.AccountType]*domain.Account
	byName map[string]*domain.Account
}

func newFixtureResolver() *fixtureResolver {
	return &fixtureResolver{
		byType: make(map[domain.AccountType]*domain.Account),
		byName: make(map[string]*domain.Account),
	}
}

func (r *fixtureResolver) add(name string, accountType domain.AccountType) *domain.Account {
	a := &domain.Account{
		ID:            uuid.New(),
		Name:          name,
		AccountType:   accountType,
		IsActive:      true,
		IsDebitNormal: accountType.IsDebitNormal(),
	}
	if _, ok := r.byType[accountType]; !ok {
		r.byType[accountType] = a
	}
	r.byName[name] = a
	return a
}

func (r *fixtureResolver) System(_ context.Context, accountType domain.AccountType) (*domain.Account, error) {
	if a, ok := r.byType[accountType]; ok {
		return a, nil
	}
	return nil, domain.ErrSystemAccountMissing
}

func (r *fixtureResolver) DefaultIncome(ctx context.Context) (*domain.Account, error) {
	return r.System(ctx, domain.AccountTypeIncome)
}

func (r *fixtureResolver) DefaultExpense(ctx context.Context) (*domain.Account, error) {
	return r.System(ctx, domain.AccountTypeExpense)
}

func (r *fixtureResolver) GetOrCreate(_ context.Context, name string, accountType domain.AccountType) (*domain.Account, error) {
	if a, ok := r.byName[name]; ok {
		return a, nil
	}
	return r.add(name, accountType), nil
}

var testDate = time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

func TestInvoiceEntries(t *testing.T) {
	res := newFixtureResolver()
	ar := res.add("Accounts Receivable", domain.AccountTypeAccountsReceivable)
	services := res.add("Services", domain.AccountTypeIncome)

	customer := &domain.Customer{ID: uuid.New(), Name: "Acme Co"}
	itemAccountID := services.ID
	inv := &domain.Invoice{
		ID:            uuid.New(),
		CustomerID:    customer.ID,
		Customer:      customer,
		InvoiceNumber: "INV-00001",
		Date:          testDate,
		Subtotal:      dec("1000.00"),
		TaxTotal:      dec("90.00"),
		Total:         dec("1090.00"),
		Lines: []domain.InvoiceLine{
			{
				ID:     uuid.New(),
				Amount: dec("1000.00"),
				Item:   &domain.Item{ID: uuid.New(), IncomeAccountID: &itemAccountID},
			},
		},
	}

	entries, eff, err := InvoiceEntries(context.Background(), res, inv)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.NoError(t, Validate(entries))

	assert.Equal(t, ar.ID, entries[0].AccountID)
	assert.True(t, entries[0].Debit.Equal(dec("1090.00")))
	assert.Equal(t, "Invoice INV-00001", *entries[0].Memo)
	assert.Equal(t, "Acme Co", *entries[0].NameDisplay)

	assert.Equal(t, services.ID, entries[1].AccountID)
	assert.True(t, entries[1].Credit.Equal(dec("1000.00")))

	tax := res.byName[SalesTaxPayableName]
	require.NotNil(t, tax)
	assert.Equal(t, domain.AccountTypeOtherCurrentLiability, tax.AccountType)
	assert.Equal(t, tax.ID, entries[2].AccountID)
	assert.True(t, entries[2].Credit.Equal(dec("90.00")))
	assert.Equal(t, "Tax on Invoice INV-00001", *entries[2].Memo)

	assert.Empty(t, eff.CustomerDeltas)
}

func TestInvoiceEntries_DefaultIncomeFallback(t *testing.T) {
	res := newFixtureResolver()
	res.add("Accounts Receivable", domain.AccountTypeAccountsReceivable)
	income := res.add("Sales", domain.AccountTypeIncome)

	inv := &domain.Invoice{
		ID:            uuid.New(),
		CustomerID:    uuid.New(),
		InvoiceNumber: "INV-00002",
		Date:          testDate,
		Total:         dec("50.00"),
		Lines:         []domain.InvoiceLine{{ID: uuid.New(), Amount: dec("50.00")}},
	}

	entries, _, err := InvoiceEntries(context.Background(), res, inv)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, income.ID, entries[1].AccountID)
	assert.Equal(t, "Invoice INV-00002 line", *entries[1].Memo)
}

func TestInvoiceEntries_MissingSystemAccount(t *testing.T) {
	res := newFixtureResolver()
	res.add("Sales", domain.AccountTypeIncome)

	inv := &domain.Invoice{ID: uuid.New(), InvoiceNumber: "INV-00003", Date: testDate, Total: dec("10.00")}

	_, _, err := InvoiceEntries(context.Background(), res, inv)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSystemAccountMissing))
}

func TestReceivePaymentEntries(t *testing.T) {
	res := newFixtureResolver()
	ar := res.add("Accounts Receivable", domain.AccountTypeAccountsReceivable)

	customer := &domain.Customer{ID: uuid.New(), Name: "Acme Co"}
	invoiceID := uuid.New()
	p := &domain.ReceivePayment{
		ID:          uuid.New(),
		CustomerID:  customer.ID,
		Customer:    customer,
		PaymentDate: testDate,
		Amount:      dec("400.00"),
		Applications: []domain.PaymentApplication{
			{ID: uuid.New(), InvoiceID: invoiceID, AmountApplied: dec("400.00")},
		},
	}

	entries, eff, err := ReceivePaymentEntries(context.Background(), res, p)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, Validate(entries))

	// No deposit-to account on the payment: Undeposited Funds is created.
	uf := res.byName[UndepositedFundsName]
	require.NotNil(t, uf)
	assert.Equal(t, domain.AccountTypeOtherCurrentAsset, uf.AccountType)
	assert.Equal(t, uf.ID, entries[0].AccountID)
	assert.True(t, entries[0].Debit.Equal(dec("400.00")))
	assert.Equal(t, "Payment from Acme Co", *entries[0].Memo)

	assert.Equal(t, ar.ID, entries[1].AccountID)
	assert.True(t, entries[1].Credit.Equal(dec("400.00")))

	require.Len(t, eff.InvoicePayments, 1)
	assert.Equal(t, invoiceID, eff.InvoicePayments[0].DocID)
	assert.True(t, eff.InvoicePayments[0].Amount.Equal(dec("400.00")))

	require.Len(t, eff.CustomerDeltas, 1)
	assert.Equal(t, customer.ID, eff.CustomerDeltas[0].ID)
	assert.True(t, eff.CustomerDeltas[0].Delta.Equal(dec("-400.00")))
}

func TestSalesReceiptEntries(t *testing.T) {
	res := newFixtureResolver()
	income := res.add("Sales", domain.AccountTypeIncome)
	bank := res.add("Checking", domain.AccountTypeBank)

	sr := &domain.SalesReceipt{
		ID:                 uuid.New(),
		ReceiptNumber:      "SR-00001",
		Date:               testDate,
		DepositToAccountID: &bank.ID,
		Subtotal:           dec("200.00"),
		Tax:                dec("18.00"),
		Total:              dec("218.00"),
		Lines:              []domain.SalesReceiptLine{{ID: uuid.New(), Amount: dec("200.00")}},
	}

	entries, _, err := SalesReceiptEntries(context.Background(), res, sr)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.NoError(t, Validate(entries))

	assert.Equal(t, bank.ID, entries[0].AccountID)
	assert.True(t, entries[0].Debit.Equal(dec("218.00")))
	// No customer on the receipt: no name reference.
	assert.Nil(t, entries[0].NameType)

	assert.Equal(t, income.ID, entries[1].AccountID)
	assert.Equal(t, "Sales Tax", *entries[2].Memo)
}

func TestCreditMemoEntries(t *testing.T) {
	res := newFixtureResolver()
	ar := res.add("Accounts Receivable", domain.AccountTypeAccountsReceivable)
	income := res.add("Sales", domain.AccountTypeIncome)

	customer := &domain.Customer{ID: uuid.New(), Name: "Acme Co"}
	cm := &domain.CreditMemo{
		ID:           uuid.New(),
		CustomerID:   customer.ID,
		Customer:     customer,
		CreditNumber: "CM-00001",
		Date:         testDate,
		Total:        dec("75.00"),
		Lines:        []domain.CreditMemoLine{{ID: uuid.New(), Amount: dec("75.00")}},
	}

	entries, eff, err := CreditMemoEntries(context.Background(), res, cm)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, Validate(entries))

	// Sides are the reverse of an invoice.
	assert.Equal(t, ar.ID, entries[0].AccountID)
	assert.True(t, entries[0].Credit.Equal(dec("75.00")))
	assert.Equal(t, income.ID, entries[1].AccountID)
	assert.True(t, entries[1].Debit.Equal(dec("75.00")))

	require.Len(t, eff.CustomerDeltas, 1)
	assert.True(t, eff.CustomerDeltas[0].Delta.Equal(dec("-75.00")))
}

func TestBillEntries(t *testing.T) {
	res := newFixtureResolver()
	ap := res.add("Accounts Payable", domain.AccountTypeAccountsPayable)
	defExpense := res.add("Miscellaneous", domain.AccountTypeExpense)
	supplies := res.add("Office Supplies", domain.AccountTypeExpense)

	vendor := &domain.Vendor{ID: uuid.New(), Name: "Supply Depot"}
	b := &domain.Bill{
		ID:        uuid.New(),
		VendorID:  vendor.ID,
		Vendor:    vendor,
		Date:      testDate,
		AmountDue: dec("250.00"),
		ExpenseLines: []domain.BillExpenseLine{
			{ID: uuid.New(), AccountID: supplies.ID, Amount: dec("150.00")},
		},
		// Item carries no expense account: falls back to the default.
		ItemLines: []domain.BillItemLine{
			{ID: uuid.New(), Amount: dec("100.00"), Item: &domain.Item{ID: uuid.New()}},
		},
	}

	entries, eff, err := BillEntries(context.Background(), res, b)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.NoError(t, Validate(entries))

	assert.Equal(t, supplies.ID, entries[0].AccountID)
	assert.True(t, entries[0].Debit.Equal(dec("150.00")))
	assert.Equal(t, "Bill from Supply Depot", *entries[0].Memo)

	assert.Equal(t, defExpense.ID, entries[1].AccountID)
	assert.True(t, entries[1].Debit.Equal(dec("100.00")))

	assert.Equal(t, ap.ID, entries[2].AccountID)
	assert.True(t, entries[2].Credit.Equal(dec("250.00")))

	require.Len(t, eff.VendorDeltas, 1)
	assert.Equal(t, vendor.ID, eff.VendorDeltas[0].ID)
	assert.True(t, eff.VendorDeltas[0].Delta.Equal(dec("250.00")))
}

func TestBillPaymentEntries(t *testing.T) {
	res := newFixtureResolver()
	ap := res.add("Accounts Payable", domain.AccountTypeAccountsPayable)
	bank := res.add("Checking", domain.AccountTypeBank)

	billID := uuid.New()
	p := &domain.BillPayment{
		ID:               uuid.New(),
		Date:             testDate,
		PaymentAccountID: bank.ID,
		Amount:           dec("250.00"),
		Applications: []domain.BillPaymentApplication{
			{ID: uuid.New(), BillID: billID, AmountApplied: dec("250.00")},
		},
	}

	entries, eff, err := BillPaymentEntries(context.Background(), res, p)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, Validate(entries))

	assert.Equal(t, ap.ID, entries[0].AccountID)
	assert.True(t, entries[0].Debit.Equal(dec("250.00")))
	assert.Equal(t, bank.ID, entries[1].AccountID)
	assert.True(t, entries[1].Credit.Equal(dec("250.00")))

	require.Len(t, eff.BillPayments, 1)
	assert.Equal(t, billID, eff.BillPayments[0].DocID)
}

func TestVendorCreditEntries_DefaultExpenseFallback(t *testing.T) {
	res := newFixtureResolver()
	res.add("Accounts Payable", domain.AccountTypeAccountsPayable)
	defExpense := res.add("Miscellaneous", domain.AccountTypeExpense)

	vendor := &domain.Vendor{ID: uuid.New(), Name: "Supply Depot"}
	vc := &domain.VendorCredit{
		ID:       uuid.New(),
		VendorID: vendor.ID,
		Vendor:   vendor,
		Date:     testDate,
		Total:    dec("40.00"),
		Lines:    []domain.VendorCreditLine{{ID: uuid.New(), Amount: dec("40.00")}},
	}

	entries, eff, err := VendorCreditEntries(context.Background(), res, vc)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, Validate(entries))

	assert.True(t, entries[0].Debit.Equal(dec("40.00")))
	assert.Equal(t, defExpense.ID, entries[1].AccountID)
	assert.True(t, entries[1].Credit.Equal(dec("40.00")))

	require.Len(t, eff.VendorDeltas, 1)
	assert.True(t, eff.VendorDeltas[0].Delta.Equal(dec("-40.00")))
}

func TestCheckEntries_MemoFallsBackToHeader(t *testing.T) {
	res := newFixtureResolver()
	bank := res.add("Checking", domain.AccountTypeBank)
	rent := res.add("Rent", domain.AccountTypeExpense)

	headerMemo := "March rent"
	number := "CHK-00042"
	c := &domain.Check{
		ID:            uuid.New(),
		BankAccountID: bank.ID,
		CheckNumber:   &number,
		Date:          testDate,
		Amount:        dec("1200.00"),
		Memo:          &headerMemo,
		ExpenseLines: []domain.CheckExpenseLine{
			{ID: uuid.New(), AccountID: rent.ID, Amount: dec("1200.00")},
		},
	}

	entries, _, err := CheckEntries(context.Background(), res, c)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, Validate(entries))

	assert.Equal(t, "March rent", *entries[0].Memo)
	assert.Equal(t, "CHK-00042", *entries[0].DocNumber)
	assert.Equal(t, bank.ID, entries[1].AccountID)
	assert.True(t, entries[1].Credit.Equal(dec("1200.00")))
}

func TestDepositEntries_UndepositedFundsDefault(t *testing.T) {
	res := newFixtureResolver()
	bank := res.add("Checking", domain.AccountTypeBank)

	from := "Walk-in sale"
	d := &domain.Deposit{
		ID:            uuid.New(),
		BankAccountID: bank.ID,
		Date:          testDate,
		Total:         dec("300.00"),
		Lines: []domain.DepositLine{
			{ID: uuid.New(), Amount: dec("300.00"), ReceivedFrom: &from},
		},
	}

	entries, _, err := DepositEntries(context.Background(), res, d)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, Validate(entries))

	assert.Equal(t, bank.ID, entries[0].AccountID)
	assert.Equal(t, "Deposit", *entries[0].Memo)

	uf := res.byName[UndepositedFundsName]
	require.NotNil(t, uf)
	assert.Equal(t, uf.ID, entries[1].AccountID)
	assert.Equal(t, "From Walk-in sale", *entries[1].Memo)
}

func TestTransferEntries(t *testing.T) {
	checking := &domain.Account{ID: uuid.New(), Name: "Checking"}
	savings := &domain.Account{ID: uuid.New(), Name: "Savings"}

	tr := &domain.Transfer{
		ID:            uuid.New(),
		FromAccountID: checking.ID,
		FromAccount:   checking,
		ToAccountID:   savings.ID,
		ToAccount:     savings,
		Date:          testDate,
		Amount:        dec("500.00"),
	}

	entries, _, err := TransferEntries(context.Background(), nil, tr)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, Validate(entries))

	assert.Equal(t, savings.ID, entries[0].AccountID)
	assert.True(t, entries[0].Debit.Equal(dec("500.00")))
	assert.Equal(t, "Transfer from Checking", *entries[0].Memo)

	assert.Equal(t, checking.ID, entries[1].AccountID)
	assert.True(t, entries[1].Credit.Equal(dec("500.00")))
	assert.Equal(t, "Transfer to Savings", *entries[1].Memo)
}

func TestJournalEntryEntries(t *testing.T) {
	a1, a2 := uuid.New(), uuid.New()
	headerMemo := "Year-end adjustment"
	je := &domain.JournalEntry{
		ID:          uuid.New(),
		EntryNumber: "JE-00007",
		PostingDate: testDate,
		Memo:        &headerMemo,
		Lines: []domain.JournalEntryLine{
			{ID: uuid.New(), AccountID: a1, Debit: dec("80.00"), Credit: decimal.Zero},
			{ID: uuid.New(), AccountID: a2, Debit: decimal.Zero, Credit: dec("80.00")},
		},
	}

	entries, _, err := JournalEntryEntries(context.Background(), nil, je)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NoError(t, Validate(entries))

	assert.Equal(t, "JE-00007", *entries[0].DocNumber)
	assert.Equal(t, "Year-end adjustment", *entries[0].Memo)
	assert.Equal(t, a1, entries[0].AccountID)
	assert.Equal(t, a2, entries[1].AccountID)
}

func TestEffectsNegated(t *testing.T) {
	id := uuid.New()
	var eff Effects
	eff.customer(id, dec("100.00"))
	eff.BillPayments = append(eff.BillPayments, Application{DocID: id, Amount: dec("25.00")})

	neg := eff.Negated()
	assert.True(t, neg.CustomerDeltas[0].Delta.Equal(dec("-100.00")))
	assert.True(t, neg.BillPayments[0].Amount.Equal(dec("-25.00")))
}
