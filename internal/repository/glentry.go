package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

const glEntryColumns = `id, seq, posting_date, account_id, debit, credit,
	doc_type, doc_id, doc_number, memo, name_type, name_id, name_display,
	class_ref, is_void, created_at`

type GLEntryRepository struct {
	db *sql.DB
}

func NewGLEntryRepository(db *sql.DB) *GLEntryRepository {
	return &GLEntryRepository{db: db}
}

// Insert persists one entry and fills in its store-assigned sequence number.
// Entries are append-only: there is no update or delete here on purpose.
func (r *GLEntryRepository) Insert(ctx context.Context, tx *sql.Tx, e *domain.GLEntry) error {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO gl_entries (
			id, posting_date, account_id, debit, credit,
			doc_type, doc_id, doc_number, memo, name_type, name_id, name_display,
			class_ref, is_void
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING seq, created_at`,
		e.ID, e.PostingDate, e.AccountID, e.Debit, e.Credit,
		e.DocType, e.DocID, e.DocNumber, e.Memo, e.NameType, e.NameID, e.NameDisplay,
		e.ClassRef, e.IsVoid,
	).Scan(&e.Seq, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("Insert: %w", err)
	}
	return nil
}

func (r *GLEntryRepository) ListByDoc(ctx context.Context, docType domain.DocType, docID uuid.UUID) ([]domain.GLEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+glEntryColumns+` FROM gl_entries
		WHERE doc_type = $1 AND doc_id = $2 ORDER BY seq`, docType, docID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByDoc: %w", err)
	}
	return collectEntries(rows, "ListByDoc")
}

// NonVoidByDocForUpdate loads the live entries of a document with their rows
// locked, so a concurrent void of the same document serializes behind us.
func (r *GLEntryRepository) NonVoidByDocForUpdate(ctx context.Context, tx *sql.Tx, docType domain.DocType, docID uuid.UUID) ([]domain.GLEntry, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT `+glEntryColumns+` FROM gl_entries
		WHERE doc_type = $1 AND doc_id = $2 AND NOT is_void
		ORDER BY seq FOR UPDATE`, docType, docID,
	)
	if err != nil {
		return nil, fmt.Errorf("NonVoidByDocForUpdate: %w", err)
	}
	return collectEntries(rows, "NonVoidByDocForUpdate")
}

func (r *GLEntryRepository) MarkVoid(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE gl_entries SET is_void = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("MarkVoid: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("MarkVoid: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("MarkVoid: %w", domain.ErrNotFound)
	}
	return nil
}

// ListByAccount returns an account's register slice in posting order.
func (r *GLEntryRepository) ListByAccount(ctx context.Context, accountID uuid.UUID, limit, offset int) ([]domain.GLEntry, int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gl_entries WHERE account_id = $1`, accountID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("ListByAccount: count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+glEntryColumns+` FROM gl_entries
		WHERE account_id = $1 ORDER BY seq LIMIT $2 OFFSET $3`,
		accountID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListByAccount: %w", err)
	}
	entries, err := collectEntries(rows, "ListByAccount")
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// Totals sums debit and credit across the whole ledger, void entries
// included: a reversal pair nets to zero on both sides, so the global
// invariant holds regardless.
func (r *GLEntryRepository) Totals(ctx context.Context) (debits, credits decimal.Decimal, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(debit), 0), COALESCE(SUM(credit), 0) FROM gl_entries`,
	).Scan(&debits, &credits)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("Totals: %w", err)
	}
	return debits, credits, nil
}

func collectEntries(rows *sql.Rows, op string) ([]domain.GLEntry, error) {
	defer rows.Close()

	var entries []domain.GLEntry
	for rows.Next() {
		e, err := scanGLEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}
	return entries, nil
}

func scanGLEntry(s scanner) (*domain.GLEntry, error) {
	var e domain.GLEntry
	err := s.Scan(
		&e.ID, &e.Seq, &e.PostingDate, &e.AccountID, &e.Debit, &e.Credit,
		&e.DocType, &e.DocID, &e.DocNumber, &e.Memo, &e.NameType, &e.NameID,
		&e.NameDisplay, &e.ClassRef, &e.IsVoid, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
