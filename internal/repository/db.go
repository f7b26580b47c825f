package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

type scanner interface {
	Scan(dest ...any) error
}

// Querier is satisfied by both *sql.DB and *sql.Tx so graph loads and
// default-account resolution can run inside or outside a posting transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type DB struct {
	pool *sql.DB
}

func NewDB(pool *sql.DB) *DB {
	return &DB{pool: pool}
}

func (d *DB) Conn() *sql.DB {
	return d.pool
}

func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	tx, err := d.pool.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("BeginTx: %w", err)
	}
	return tx, nil
}

// statusTables maps a document type to the table holding its status column.
var statusTables = map[domain.DocType]string{
	domain.DocTypeInvoice:        "invoices",
	domain.DocTypeSalesReceipt:   "sales_receipts",
	domain.DocTypeCreditMemo:     "credit_memos",
	domain.DocTypeReceivePayment: "receive_payments",
	domain.DocTypeEstimate:       "estimates",
	domain.DocTypeBill:           "bills",
	domain.DocTypeBillPayment:    "bill_payments",
	domain.DocTypeVendorCredit:   "vendor_credits",
	domain.DocTypePurchaseOrder:  "purchase_orders",
	domain.DocTypeCheck:          "checks",
	domain.DocTypeDeposit:        "deposits",
	domain.DocTypeTransfer:       "transfers",
	domain.DocTypeJournalEntry:   "journal_entries",
}

// DocStatusForUpdate reads and locks a document header's status row so a
// posting transaction can gate on the document's state.
func DocStatusForUpdate(ctx context.Context, q Querier, docType domain.DocType, id uuid.UUID) (domain.DocStatus, error) {
	table, ok := statusTables[docType]
	if !ok {
		return "", fmt.Errorf("DocStatusForUpdate: %w: %s", domain.ErrUnsupportedDocumentType, docType)
	}
	var status domain.DocStatus
	err := q.QueryRowContext(ctx,
		`SELECT status FROM `+table+` WHERE id = $1 FOR UPDATE`, id,
	).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("DocStatusForUpdate: %w", domain.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("DocStatusForUpdate: %w", err)
	}
	return status, nil
}

// SetDocStatus flips the status column of any document header row.
func SetDocStatus(ctx context.Context, q Querier, docType domain.DocType, id uuid.UUID, status domain.DocStatus) error {
	table, ok := statusTables[docType]
	if !ok {
		return fmt.Errorf("SetDocStatus: %w: %s", domain.ErrUnsupportedDocumentType, docType)
	}
	res, err := q.ExecContext(ctx,
		`UPDATE `+table+` SET status = $1 WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("SetDocStatus: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("SetDocStatus: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("SetDocStatus: %w", domain.ErrNotFound)
	}
	return nil
}
