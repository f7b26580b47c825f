package posting

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

// CheckEntries debits an expense account per line and credits the bank
// account the check draws on.
func CheckEntries(ctx context.Context, res AccountResolver, c *domain.Check) ([]domain.GLEntry, Effects, error) {
	var entries []domain.GLEntry

	for i := range c.ExpenseLines {
		line := &c.ExpenseLines[i]
		e := newEntry(c.Date, line.AccountID, line.Amount, decimal.Zero, domain.DocTypeCheck, c.ID)
		e.DocNumber = c.CheckNumber
		e.Memo = coalesce(line.Memo, c.Memo)
		e.ClassRef = line.ClassRef
		entries = append(entries, e)
	}

	for i := range c.ItemLines {
		line := &c.ItemLines[i]
		expenseID, err := lineExpenseAccount(ctx, res, line.Item)
		if err != nil {
			return nil, Effects{}, fmt.Errorf("CheckEntries: %w", err)
		}
		e := newEntry(c.Date, expenseID, line.Amount, decimal.Zero, domain.DocTypeCheck, c.ID)
		e.DocNumber = c.CheckNumber
		e.Memo = coalesce(line.Description, c.Memo)
		entries = append(entries, e)
	}

	credit := newEntry(c.Date, c.BankAccountID, decimal.Zero, c.Amount, domain.DocTypeCheck, c.ID)
	credit.DocNumber = c.CheckNumber
	credit.Memo = c.Memo
	entries = append(entries, credit)

	return entries, Effects{}, nil
}

// DepositEntries debits the bank account for the deposit total and credits
// each line's source account, defaulting to Undeposited Funds when a line
// names none.
func DepositEntries(ctx context.Context, res AccountResolver, d *domain.Deposit) ([]domain.GLEntry, Effects, error) {
	debit := newEntry(d.Date, d.BankAccountID, d.Total, decimal.Zero, domain.DocTypeDeposit, d.ID)
	debit.Memo = coalesce(d.Memo, strp("Deposit"))
	entries := []domain.GLEntry{debit}

	for i := range d.Lines {
		line := &d.Lines[i]
		fromID := line.FromAccountID
		if fromID == nil {
			uf, err := res.GetOrCreate(ctx, UndepositedFundsName, domain.AccountTypeOtherCurrentAsset)
			if err != nil {
				return nil, Effects{}, fmt.Errorf("DepositEntries: %w", err)
			}
			fromID = uuidp(uf.ID)
		}
		e := newEntry(d.Date, *fromID, decimal.Zero, line.Amount, domain.DocTypeDeposit, d.ID)
		e.Memo = line.Memo
		if e.Memo == nil && line.ReceivedFrom != nil {
			e.Memo = strp("From " + *line.ReceivedFrom)
		}
		entries = append(entries, e)
	}

	return entries, Effects{}, nil
}

// TransferEntries moves money between two balance-sheet accounts: debit
// the destination, credit the source.
func TransferEntries(_ context.Context, _ AccountResolver, t *domain.Transfer) ([]domain.GLEntry, Effects, error) {
	var fromName, toName string
	if t.FromAccount != nil {
		fromName = t.FromAccount.Name
	}
	if t.ToAccount != nil {
		toName = t.ToAccount.Name
	}

	debit := newEntry(t.Date, t.ToAccountID, t.Amount, decimal.Zero, domain.DocTypeTransfer, t.ID)
	debit.Memo = strp("Transfer from " + fromName)

	credit := newEntry(t.Date, t.FromAccountID, decimal.Zero, t.Amount, domain.DocTypeTransfer, t.ID)
	credit.Memo = strp("Transfer to " + toName)

	return []domain.GLEntry{debit, credit}, Effects{}, nil
}

// JournalEntryEntries copies each journal line into the ledger as entered;
// the lines carry their own debit/credit split.
func JournalEntryEntries(_ context.Context, _ AccountResolver, je *domain.JournalEntry) ([]domain.GLEntry, Effects, error) {
	var entries []domain.GLEntry
	for i := range je.Lines {
		line := &je.Lines[i]
		e := newEntry(je.PostingDate, line.AccountID, line.Debit, line.Credit, domain.DocTypeJournalEntry, je.ID)
		e.DocNumber = &je.EntryNumber
		e.Memo = coalesce(line.Memo, je.Memo)
		e.NameID = line.NameID
		e.ClassRef = line.ClassRef
		entries = append(entries, e)
	}
	return entries, Effects{}, nil
}
