package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

type BillRepository struct {
	db *sql.DB
}

func NewBillRepository(db *sql.DB) *BillRepository {
	return &BillRepository{db: db}
}

func (r *BillRepository) Create(ctx context.Context, q Querier, b *domain.Bill) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO bills (
			id, vendor_id, bill_number, vendor_ref_no, date, due_date,
			amount_due, amount_paid, balance_due, status, memo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		b.ID, b.VendorID, b.BillNumber, b.VendorRefNo, b.Date, b.DueDate,
		b.AmountDue, b.AmountPaid, b.BalanceDue, b.Status, b.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for n, line := range b.ExpenseLines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO bill_expense_lines (id, bill_id, line_no, account_id, amount, memo, class_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, b.ID, n, line.AccountID, line.Amount, line.Memo, line.ClassRef,
		)
		if err != nil {
			return fmt.Errorf("Create: expense line: %w", err)
		}
	}
	for n, line := range b.ItemLines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO bill_item_lines (id, bill_id, line_no, item_id, description, qty, cost, amount, class_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			line.ID, b.ID, n, line.ItemID, line.Description, line.Qty, line.Cost,
			line.Amount, line.ClassRef,
		)
		if err != nil {
			return fmt.Errorf("Create: item line: %w", err)
		}
	}
	return nil
}

func (r *BillRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.Bill, error) {
	var b domain.Bill
	err := q.QueryRowContext(ctx,
		`SELECT id, vendor_id, bill_number, vendor_ref_no, date, due_date,
			amount_due, amount_paid, balance_due, status, memo
		FROM bills WHERE id = $1`, id,
	).Scan(
		&b.ID, &b.VendorID, &b.BillNumber, &b.VendorRefNo, &b.Date, &b.DueDate,
		&b.AmountDue, &b.AmountPaid, &b.BalanceDue, &b.Status, &b.Memo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: bill: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	vendor, err := scanVendorRow(ctx, q, b.VendorID)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	b.Vendor = vendor

	expRows, err := q.QueryContext(ctx,
		`SELECT id, bill_id, account_id, amount, memo, class_ref
		FROM bill_expense_lines WHERE bill_id = $1 ORDER BY line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: expense lines: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var line domain.BillExpenseLine
		if err := expRows.Scan(&line.ID, &line.BillID, &line.AccountID, &line.Amount, &line.Memo, &line.ClassRef); err != nil {
			return nil, fmt.Errorf("Get: scan expense line: %w", err)
		}
		b.ExpenseLines = append(b.ExpenseLines, line)
	}
	if err := expRows.Err(); err != nil {
		return nil, fmt.Errorf("Get: expense lines rows: %w", err)
	}

	itemRows, err := q.QueryContext(ctx,
		`SELECT l.id, l.bill_id, l.item_id, l.description, l.qty, l.cost, l.amount, l.class_ref,
			`+itemJoin+`
		FROM bill_item_lines l
		LEFT JOIN items i ON i.id = l.item_id
		WHERE l.bill_id = $1 ORDER BY l.line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: item lines: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var line domain.BillItemLine
		item, err := scanLineWithItem(itemRows,
			&line.ID, &line.BillID, &line.ItemID, &line.Description,
			&line.Qty, &line.Cost, &line.Amount, &line.ClassRef,
		)
		if err != nil {
			return nil, fmt.Errorf("Get: scan item line: %w", err)
		}
		line.Item = item
		b.ItemLines = append(b.ItemLines, line)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("Get: item lines rows: %w", err)
	}
	return &b, nil
}

// ApplyPayment records part of a bill payment against this bill.
func (r *BillRepository) ApplyPayment(ctx context.Context, tx *sql.Tx, id uuid.UUID, amount decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE bills SET amount_paid = amount_paid + $1, balance_due = balance_due - $1
		WHERE id = $2`, amount, id,
	)
	if err != nil {
		return fmt.Errorf("ApplyPayment: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ApplyPayment: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("ApplyPayment: bill: %w", domain.ErrNotFound)
	}
	return nil
}

// VendorID resolves the owning vendor of a bill, used when a bill payment
// application needs to relieve the vendor's balance.
func (r *BillRepository) VendorID(ctx context.Context, q Querier, id uuid.UUID) (uuid.UUID, error) {
	var vendorID uuid.UUID
	err := q.QueryRowContext(ctx,
		`SELECT vendor_id FROM bills WHERE id = $1`, id,
	).Scan(&vendorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("VendorID: bill: %w", domain.ErrNotFound)
		}
		return uuid.Nil, fmt.Errorf("VendorID: %w", err)
	}
	return vendorID, nil
}

type BillPaymentRepository struct {
	db *sql.DB
}

func NewBillPaymentRepository(db *sql.DB) *BillPaymentRepository {
	return &BillPaymentRepository{db: db}
}

func (r *BillPaymentRepository) Create(ctx context.Context, q Querier, p *domain.BillPayment) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO bill_payments (id, date, payment_account_id, amount, status, memo)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Date, p.PaymentAccountID, p.Amount, p.Status, p.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for _, app := range p.Applications {
		_, err := q.ExecContext(ctx,
			`INSERT INTO bill_payment_applications (id, bill_payment_id, bill_id, amount_applied)
			VALUES ($1, $2, $3, $4)`,
			app.ID, p.ID, app.BillID, app.AmountApplied,
		)
		if err != nil {
			return fmt.Errorf("Create: application: %w", err)
		}
	}
	return nil
}

func (r *BillPaymentRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.BillPayment, error) {
	var p domain.BillPayment
	err := q.QueryRowContext(ctx,
		`SELECT id, date, payment_account_id, amount, status, memo
		FROM bill_payments WHERE id = $1`, id,
	).Scan(&p.ID, &p.Date, &p.PaymentAccountID, &p.Amount, &p.Status, &p.Memo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: bill payment: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	rows, err := q.QueryContext(ctx,
		`SELECT id, bill_payment_id, bill_id, amount_applied
		FROM bill_payment_applications WHERE bill_payment_id = $1 ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var app domain.BillPaymentApplication
		if err := rows.Scan(&app.ID, &app.BillPaymentID, &app.BillID, &app.AmountApplied); err != nil {
			return nil, fmt.Errorf("Get: scan application: %w", err)
		}
		p.Applications = append(p.Applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Get: applications rows: %w", err)
	}
	return &p, nil
}

type VendorCreditRepository struct {
	db *sql.DB
}

func NewVendorCreditRepository(db *sql.DB) *VendorCreditRepository {
	return &VendorCreditRepository{db: db}
}

func (r *VendorCreditRepository) Create(ctx context.Context, q Querier, vc *domain.VendorCredit) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO vendor_credits (id, vendor_id, date, ref_no, total, status)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		vc.ID, vc.VendorID, vc.Date, vc.RefNo, vc.Total, vc.Status,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for n, line := range vc.Lines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO vendor_credit_lines (id, vendor_credit_id, line_no, account_id, amount, memo, class_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			line.ID, vc.ID, n, line.AccountID, line.Amount, line.Memo, line.ClassRef,
		)
		if err != nil {
			return fmt.Errorf("Create: line: %w", err)
		}
	}
	return nil
}

func (r *VendorCreditRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.VendorCredit, error) {
	var vc domain.VendorCredit
	err := q.QueryRowContext(ctx,
		`SELECT id, vendor_id, date, ref_no, total, status
		FROM vendor_credits WHERE id = $1`, id,
	).Scan(&vc.ID, &vc.VendorID, &vc.Date, &vc.RefNo, &vc.Total, &vc.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: vendor credit: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	vendor, err := scanVendorRow(ctx, q, vc.VendorID)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	vc.Vendor = vendor

	rows, err := q.QueryContext(ctx,
		`SELECT id, vendor_credit_id, account_id, amount, memo, class_ref
		FROM vendor_credit_lines WHERE vendor_credit_id = $1 ORDER BY line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.VendorCreditLine
		if err := rows.Scan(&line.ID, &line.VendorCreditID, &line.AccountID, &line.Amount, &line.Memo, &line.ClassRef); err != nil {
			return nil, fmt.Errorf("Get: scan line: %w", err)
		}
		vc.Lines = append(vc.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Get: lines rows: %w", err)
	}
	return &vc, nil
}

type PurchaseOrderRepository struct {
	db *sql.DB
}

func NewPurchaseOrderRepository(db *sql.DB) *PurchaseOrderRepository {
	return &PurchaseOrderRepository{db: db}
}

func (r *PurchaseOrderRepository) Create(ctx context.Context, q Querier, po *domain.PurchaseOrder) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO purchase_orders (id, vendor_id, po_number, date, total, status, memo)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		po.ID, po.VendorID, po.PONumber, po.Date, po.Total, po.Status, po.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.PurchaseOrder, error) {
	var po domain.PurchaseOrder
	err := q.QueryRowContext(ctx,
		`SELECT id, vendor_id, po_number, date, total, status, memo
		FROM purchase_orders WHERE id = $1`, id,
	).Scan(&po.ID, &po.VendorID, &po.PONumber, &po.Date, &po.Total, &po.Status, &po.Memo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: purchase order: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &po, nil
}

func scanVendorRow(ctx context.Context, q Querier, id uuid.UUID) (*domain.Vendor, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id,
	)
	v, err := scanVendor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vendor: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}
