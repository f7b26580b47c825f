package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

type CheckRepository struct {
	db *sql.DB
}

func NewCheckRepository(db *sql.DB) *CheckRepository {
	return &CheckRepository{db: db}
}

func (r *CheckRepository) Create(ctx context.Context, q Querier, c *domain.Check) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO checks (id, bank_account_id, pay_to_name, check_number, date, amount, status, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		c.ID, c.BankAccountID, c.PayToName, c.CheckNumber, c.Date, c.Amount, c.Status, c.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for n, line := range c.ExpenseLines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO check_expense_lines (id, check_id, line_no, account_id, amount, memo, class_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, c.ID, n, line.AccountID, line.Amount, line.Memo, line.ClassRef,
		)
		if err != nil {
			return fmt.Errorf("Create: expense line: %w", err)
		}
	}
	for n, line := range c.ItemLines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO check_item_lines (id, check_id, line_no, item_id, description, qty, cost, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			line.ID, c.ID, n, line.ItemID, line.Description, line.Qty, line.Cost, line.Amount,
		)
		if err != nil {
			return fmt.Errorf("Create: item line: %w", err)
		}
	}
	return nil
}

func (r *CheckRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.Check, error) {
	var c domain.Check
	err := q.QueryRowContext(ctx,
		`SELECT id, bank_account_id, pay_to_name, check_number, date, amount, status, memo
		FROM checks WHERE id = $1`, id,
	).Scan(&c.ID, &c.BankAccountID, &c.PayToName, &c.CheckNumber, &c.Date, &c.Amount, &c.Status, &c.Memo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: check: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	expRows, err := q.QueryContext(ctx,
		`SELECT id, check_id, account_id, amount, memo, class_ref
		FROM check_expense_lines WHERE check_id = $1 ORDER BY line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: expense lines: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var line domain.CheckExpenseLine
		if err := expRows.Scan(&line.ID, &line.CheckID, &line.AccountID, &line.Amount, &line.Memo, &line.ClassRef); err != nil {
			return nil, fmt.Errorf("Get: scan expense line: %w", err)
		}
		c.ExpenseLines = append(c.ExpenseLines, line)
	}
	if err := expRows.Err(); err != nil {
		return nil, fmt.Errorf("Get: expense lines rows: %w", err)
	}

	itemRows, err := q.QueryContext(ctx,
		`SELECT l.id, l.check_id, l.item_id, l.description, l.qty, l.cost, l.amount,
			`+itemJoin+`
		FROM check_item_lines l
		LEFT JOIN items i ON i.id = l.item_id
		WHERE l.check_id = $1 ORDER BY l.line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: item lines: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var line domain.CheckItemLine
		item, err := scanLineWithItem(itemRows,
			&line.ID, &line.CheckID, &line.ItemID, &line.Description,
			&line.Qty, &line.Cost, &line.Amount,
		)
		if err != nil {
			return nil, fmt.Errorf("Get: scan item line: %w", err)
		}
		line.Item = item
		c.ItemLines = append(c.ItemLines, line)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("Get: item lines rows: %w", err)
	}
	return &c, nil
}

type DepositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

func (r *DepositRepository) Create(ctx context.Context, q Querier, d *domain.Deposit) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO deposits (id, bank_account_id, date, total, status, memo)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		d.ID, d.BankAccountID, d.Date, d.Total, d.Status, d.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for n, line := range d.Lines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO deposit_lines (id, deposit_id, line_no, received_from, from_account_id, memo, amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, d.ID, n, line.ReceivedFrom, line.FromAccountID, line.Memo, line.Amount,
		)
		if err != nil {
			return fmt.Errorf("Create: line: %w", err)
		}
	}
	return nil
}

func (r *DepositRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.Deposit, error) {
	var d domain.Deposit
	err := q.QueryRowContext(ctx,
		`SELECT id, bank_account_id, date, total, status, memo
		FROM deposits WHERE id = $1`, id,
	).Scan(&d.ID, &d.BankAccountID, &d.Date, &d.Total, &d.Status, &d.Memo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: deposit: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, deposit_id, received_from, from_account_id, memo, amount
		FROM deposit_lines WHERE deposit_id = $1 ORDER BY line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.DepositLine
		if err := rows.Scan(&line.ID, &line.DepositID, &line.ReceivedFrom, &line.FromAccountID, &line.Memo, &line.Amount); err != nil {
			return nil, fmt.Errorf("Get: scan line: %w", err)
		}
		d.Lines = append(d.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Get: lines rows: %w", err)
	}
	return &d, nil
}

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) *TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Create(ctx context.Context, q Querier, t *domain.Transfer) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO transfers (id, from_account_id, to_account_id, date, amount, status, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.FromAccountID, t.ToAccountID, t.Date, t.Amount, t.Status, t.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// Get loads the transfer with both endpoint accounts, which the generator
// needs for memo text.
func (r *TransferRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.Transfer, error) {
	var t domain.Transfer
	err := q.QueryRowContext(ctx,
		`SELECT id, from_account_id, to_account_id, date, amount, status, memo
		FROM transfers WHERE id = $1`, id,
	).Scan(&t.ID, &t.FromAccountID, &t.ToAccountID, &t.Date, &t.Amount, &t.Status, &t.Memo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: transfer: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	for _, ref := range []struct {
		id   uuid.UUID
		dest **domain.Account
	}{
		{t.FromAccountID, &t.FromAccount},
		{t.ToAccountID, &t.ToAccount},
	} {
		row := q.QueryRowContext(ctx,
			`SELECT `+accountColumns+` FROM accounts WHERE id = $1`, ref.id,
		)
		a, err := scanAccount(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("Get: %w", domain.ErrAccountNotFound)
			}
			return nil, fmt.Errorf("Get: account: %w", err)
		}
		*ref.dest = a
	}
	return &t, nil
}

type JournalEntryRepository struct {
	db *sql.DB
}

func NewJournalEntryRepository(db *sql.DB) *JournalEntryRepository {
	return &JournalEntryRepository{db: db}
}

func (r *JournalEntryRepository) Create(ctx context.Context, q Querier, je *domain.JournalEntry) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO journal_entries (id, entry_number, posting_date, is_adjusting, status, memo)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		je.ID, je.EntryNumber, je.PostingDate, je.IsAdjusting, je.Status, je.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for n, line := range je.Lines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO journal_entry_lines (id, journal_entry_id, line_no, account_id, debit, credit, memo, name_id, class_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			line.ID, je.ID, n, line.AccountID, line.Debit, line.Credit, line.Memo,
			line.NameID, line.ClassRef,
		)
		if err != nil {
			return fmt.Errorf("Create: line: %w", err)
		}
	}
	return nil
}

func (r *JournalEntryRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.JournalEntry, error) {
	var je domain.JournalEntry
	err := q.QueryRowContext(ctx,
		`SELECT id, entry_number, posting_date, is_adjusting, status, memo
		FROM journal_entries WHERE id = $1`, id,
	).Scan(&je.ID, &je.EntryNumber, &je.PostingDate, &je.IsAdjusting, &je.Status, &je.Memo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: journal entry: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, journal_entry_id, account_id, debit, credit, memo, name_id, class_ref
		FROM journal_entry_lines WHERE journal_entry_id = $1 ORDER BY line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.JournalEntryLine
		if err := rows.Scan(&line.ID, &line.JournalEntryID, &line.AccountID, &line.Debit, &line.Credit, &line.Memo, &line.NameID, &line.ClassRef); err != nil {
			return nil, fmt.Errorf("Get: scan line: %w", err)
		}
		je.Lines = append(je.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Get: lines rows: %w", err)
	}
	return &je, nil
}
