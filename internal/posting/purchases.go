package posting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

// BillEntries debits an expense account per line (explicit on expense
// lines, item-linked or default on item lines) and credits Accounts
// Payable for the full amount due. The vendor's balance rises by the same.
func BillEntries(ctx context.Context, res AccountResolver, b *domain.Bill) ([]domain.GLEntry, Effects, error) {
	ap, err := res.System(ctx, domain.AccountTypeAccountsPayable)
	if err != nil {
		return nil, Effects{}, fmt.Errorf("BillEntries: %w", err)
	}

	var vendorName string
	if b.Vendor != nil {
		vendorName = b.Vendor.Name
	}
	fallbackMemo := strp("Bill from " + vendorName)

	var entries []domain.GLEntry
	for i := range b.ExpenseLines {
		line := &b.ExpenseLines[i]
		e := newEntry(b.Date, line.AccountID, line.Amount, decimal.Zero, domain.DocTypeBill, b.ID)
		e.Memo = coalesce(line.Memo, fallbackMemo)
		e.NameType = strp(nameTypeVendor)
		e.NameID = uuidp(b.VendorID)
		e.NameDisplay = strp(vendorName)
		e.ClassRef = line.ClassRef
		entries = append(entries, e)
	}

	for i := range b.ItemLines {
		line := &b.ItemLines[i]
		expenseID, err := lineExpenseAccount(ctx, res, line.Item)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("BillEntries: %w", err)
		}
		e := newEntry(b.Date, expenseID, line.Amount, decimal.Zero, domain.DocTypeBill, b.ID)
		e.Memo = coalesce(line.Description, fallbackMemo)
		e.NameType = strp(nameTypeVendor)
		e.NameID = uuidp(b.VendorID)
		e.NameDisplay = strp(vendorName)
		e.ClassRef = line.ClassRef
		entries = append(entries, e)
	}

	credit := newEntry(b.Date, ap.ID, decimal.Zero, b.AmountDue, domain.DocTypeBill, b.ID)
	credit.Memo = fallbackMemo
	credit.NameType = strp(nameTypeVendor)
	credit.NameID = uuidp(b.VendorID)
	credit.NameDisplay = strp(vendorName)
	entries = append(entries, credit)

	var eff Effects
	eff.vendor(b.VendorID, b.AmountDue)
	return entries, eff, nil
}

// BillPaymentEntries debits Accounts Payable and credits the payment
// (bank) account. Each application settles part of an open bill and
// reduces that bill's vendor balance; the orchestrator resolves the
// vendor per bill when it applies the effects.
func BillPaymentEntries(ctx context.Context, res AccountResolver, p *domain.BillPayment) ([]domain.GLEntry, Effects, error) {
	ap, err := res.System(ctx, domain.AccountTypeAccountsPayable)
	if err != nil {
		return nil, Effects{}, fmt.Errorf("BillPaymentEntries: %w", err)
	}

	debit := newEntry(p.Date, ap.ID, p.Amount, decimal.Zero, domain.DocTypeBillPayment, p.ID)
	debit.Memo = strp("Bill Payment")

	credit := newEntry(p.Date, p.PaymentAccountID, decimal.Zero, p.Amount, domain.DocTypeBillPayment, p.ID)
	credit.Memo = strp("Bill Payment")

	var eff Effects
	for _, app := range p.Applications {
		eff.BillPayments = append(eff.BillPayments, Application{DocID: app.BillID, Amount: app.AmountApplied})
	}

	return []domain.GLEntry{debit, credit}, eff, nil
}

// VendorCreditEntries reverses expense: debit Accounts Payable for the
// credit total, credit each line's expense account (or the default when a
// line names none). The vendor's balance drops by the total.
func VendorCreditEntries(ctx context.Context, res AccountResolver, vc *domain.VendorCredit) ([]domain.GLEntry, Effects, error) {
	ap, err := res.System(ctx, domain.AccountTypeAccountsPayable)
	if err != nil {
		return nil, Effects{}, fmt.Errorf("VendorCreditEntries: %w", err)
	}

	var vendorName string
	if vc.Vendor != nil {
		vendorName = vc.Vendor.Name
	}

	debit := newEntry(vc.Date, ap.ID, vc.Total, decimal.Zero, domain.DocTypeVendorCredit, vc.ID)
	debit.Memo = strp("Vendor Credit from " + vendorName)
	debit.NameType = strp(nameTypeVendor)
	debit.NameID = uuidp(vc.VendorID)
	debit.NameDisplay = strp(vendorName)
	entries := []domain.GLEntry{debit}

	for i := range vc.Lines {
		line := &vc.Lines[i]
		accountID := line.AccountID
		if accountID == nil {
			def, err := res.DefaultExpense(ctx)
			if err != nil {
				return nil, Effects{}, fmt.Errorf("VendorCreditEntries: %w", err)
			}
			accountID = uuidp(def.ID)
		}
		e := newEntry(vc.Date, *accountID, decimal.Zero, line.Amount, domain.DocTypeVendorCredit, vc.ID)
		e.Memo = line.Memo
		e.ClassRef = line.ClassRef
		entries = append(entries, e)
	}

	var eff Effects
	eff.vendor(vc.VendorID, vc.Total.Neg())
	return entries, eff, nil
}
