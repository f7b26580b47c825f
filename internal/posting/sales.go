package posting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

// InvoiceEntries debits Accounts Receivable for the invoice total, credits
// each line's income account, and credits Sales Tax Payable when tax was
// charged.
func InvoiceEntries(ctx context.Context, res AccountResolver, inv *domain.Invoice) ([]domain.GLEntry, Effects, error) {
	ar, err := res.System(ctx, domain.AccountTypeAccountsReceivable)
	if err != nil {
		return nil, Effects{}, fmt.Errorf("InvoiceEntries: %w", err)
	}

	var customerName *string
	if inv.Customer != nil {
		customerName = strp(inv.Customer.Name)
	}

	e := newEntry(inv.Date, ar.ID, inv.Total, decimal.Zero, domain.DocTypeInvoice, inv.ID)
	e.DocNumber = &inv.InvoiceNumber
	e.Memo = strp("Invoice " + inv.InvoiceNumber)
	e.NameType = strp(nameTypeCustomer)
	e.NameID = uuidp(inv.CustomerID)
	e.NameDisplay = customerName
	entries := []domain.GLEntry{e}

	for i := range inv.Lines {
		line := &inv.Lines[i]
		incomeID, err := lineIncomeAccount(ctx, res, line.Item)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("InvoiceEntries: %w", err)
		}
		le := newEntry(inv.Date, incomeID, decimal.Zero, line.Amount, domain.DocTypeInvoice, inv.ID)
		le.DocNumber = &inv.InvoiceNumber
		le.Memo = coalesce(line.Description, strp("Invoice "+inv.InvoiceNumber+" line"))
		le.NameType = strp(nameTypeCustomer)
		le.NameID = uuidp(inv.CustomerID)
		le.NameDisplay = customerName
		le.ClassRef = line.ClassRef
		entries = append(entries, le)
	}

	if inv.TaxTotal.IsPositive() {
		tax, err := res.GetOrCreate(ctx, SalesTaxPayableName, domain.AccountTypeOtherCurrentLiability)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("InvoiceEntries: %w", err)
		}
		te := newEntry(inv.Date, tax.ID, decimal.Zero, inv.TaxTotal, domain.DocTypeInvoice, inv.ID)
		te.DocNumber = &inv.InvoiceNumber
		te.Memo = strp("Tax on Invoice " + inv.InvoiceNumber)
		entries = append(entries, te)
	}

	return entries, Effects{}, nil
}

// ReceivePaymentEntries debits the deposit-to account (Undeposited Funds by
// default) and credits Accounts Receivable. Applications settle open
// invoices and the customer's balance drops by the payment amount.
func ReceivePaymentEntries(ctx context.Context, res AccountResolver, p *domain.ReceivePayment) ([]domain.GLEntry, Effects, error) {
	var depositAccountID = p.DepositToAccountID
	if depositAccountID == nil {
		uf, err := res.GetOrCreate(ctx, UndepositedFundsName, domain.AccountTypeOtherCurrentAsset)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("ReceivePaymentEntries: %w", err)
		}
		depositAccountID = uuidp(uf.ID)
	}

	var customerName string
	if p.Customer != nil {
		customerName = p.Customer.Name
	}
	memo := strp("Payment from " + customerName)

	debit := newEntry(p.PaymentDate, *depositAccountID, p.Amount, decimal.Zero, domain.DocTypeReceivePayment, p.ID)
	debit.Memo = memo
	debit.NameType = strp(nameTypeCustomer)
	debit.NameID = uuidp(p.CustomerID)
	debit.NameDisplay = strp(customerName)

	ar, err := res.System(ctx, domain.AccountTypeAccountsReceivable)
	if err != nil {
		return nil, Effects{}, fmt.Errorf("ReceivePaymentEntries: %w", err)
	}
	credit := newEntry(p.PaymentDate, ar.ID, decimal.Zero, p.Amount, domain.DocTypeReceivePayment, p.ID)
	credit.Memo = memo
	credit.NameType = strp(nameTypeCustomer)
	credit.NameID = uuidp(p.CustomerID)
	credit.NameDisplay = strp(customerName)

	var eff Effects
	for _, app := range p.Applications {
		eff.InvoicePayments = append(eff.InvoicePayments, Application{DocID: app.InvoiceID, Amount: app.AmountApplied})
	}
	eff.customer(p.CustomerID, p.Amount.Neg())

	return []domain.GLEntry{debit, credit}, eff, nil
}

// SalesReceiptEntries handles a paid-at-sale transaction: debit the
// deposit-to account for the total, credit income per line, credit Sales
// Tax Payable when tax was collected. No receivable is involved.
func SalesReceiptEntries(ctx context.Context, res AccountResolver, sr *domain.SalesReceipt) ([]domain.GLEntry, Effects, error) {
	var depositAccountID = sr.DepositToAccountID
	if depositAccountID == nil {
		uf, err := res.GetOrCreate(ctx, UndepositedFundsName, domain.AccountTypeOtherCurrentAsset)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("SalesReceiptEntries: %w", err)
		}
		depositAccountID = uuidp(uf.ID)
	}

	debit := newEntry(sr.Date, *depositAccountID, sr.Total, decimal.Zero, domain.DocTypeSalesReceipt, sr.ID)
	debit.Memo = strp("Sales Receipt")
	if sr.CustomerID != nil {
		debit.NameType = strp(nameTypeCustomer)
		debit.NameID = sr.CustomerID
		if sr.Customer != nil {
			debit.NameDisplay = strp(sr.Customer.Name)
		}
	}
	entries := []domain.GLEntry{debit}

	for i := range sr.Lines {
		line := &sr.Lines[i]
		incomeID, err := lineIncomeAccount(ctx, res, line.Item)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("SalesReceiptEntries: %w", err)
		}
		le := newEntry(sr.Date, incomeID, decimal.Zero, line.Amount, domain.DocTypeSalesReceipt, sr.ID)
		le.Memo = line.Description
		le.ClassRef = line.ClassRef
		entries = append(entries, le)
	}

	if sr.Tax.IsPositive() {
		tax, err := res.GetOrCreate(ctx, SalesTaxPayableName, domain.AccountTypeOtherCurrentLiability)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("SalesReceiptEntries: %w", err)
		}
		te := newEntry(sr.Date, tax.ID, decimal.Zero, sr.Tax, domain.DocTypeSalesReceipt, sr.ID)
		te.Memo = strp("Sales Tax")
		entries = append(entries, te)
	}

	return entries, Effects{}, nil
}

// CreditMemoEntries reverses revenue: credit Accounts Receivable for the
// memo total, debit income per line. The customer's balance drops by the
// total.
func CreditMemoEntries(ctx context.Context, res AccountResolver, cm *domain.CreditMemo) ([]domain.GLEntry, Effects, error) {
	ar, err := res.System(ctx, domain.AccountTypeAccountsReceivable)
	if err != nil {
		return nil, Effects{}, fmt.Errorf("CreditMemoEntries: %w", err)
	}

	var customerName *string
	if cm.Customer != nil {
		customerName = strp(cm.Customer.Name)
	}

	credit := newEntry(cm.Date, ar.ID, decimal.Zero, cm.Total, domain.DocTypeCreditMemo, cm.ID)
	credit.DocNumber = &cm.CreditNumber
	credit.Memo = strp("Credit Memo " + cm.CreditNumber)
	credit.NameType = strp(nameTypeCustomer)
	credit.NameID = uuidp(cm.CustomerID)
	credit.NameDisplay = customerName
	entries := []domain.GLEntry{credit}

	for i := range cm.Lines {
		line := &cm.Lines[i]
		incomeID, err := lineIncomeAccount(ctx, res, line.Item)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("CreditMemoEntries: %w", err)
		}
		le := newEntry(cm.Date, incomeID, line.Amount, decimal.Zero, domain.DocTypeCreditMemo, cm.ID)
		le.DocNumber = &cm.CreditNumber
		le.Memo = line.Description
		le.ClassRef = line.ClassRef
		entries = append(entries, le)
	}

	var eff Effects
	eff.customer(cm.CustomerID, cm.Total.Neg())
	return entries, eff, nil
}
