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

// itemJoin are the nullable item columns selected alongside document lines.
const itemJoin = `i.id, i.name, i.item_type, i.description, i.sales_price,
	i.purchase_cost, i.income_account_id, i.expense_account_id, i.is_active, i.created_at`

type InvoiceRepository struct {
	db *sql.DB
}

func NewInvoiceRepository(db *sql.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

const invoiceColumns = `id, customer_id, invoice_number, date, due_date,
	subtotal, tax_total, total, amount_paid, balance_due, status, memo`

func (r *InvoiceRepository) Create(ctx context.Context, q Querier, inv *domain.Invoice) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO invoices (
			id, customer_id, invoice_number, date, due_date,
			subtotal, tax_total, total, amount_paid, balance_due, status, memo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		inv.ID, inv.CustomerID, inv.InvoiceNumber, inv.Date, inv.DueDate,
		inv.Subtotal, inv.TaxTotal, inv.Total, inv.AmountPaid, inv.BalanceDue,
		inv.Status, inv.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for n, line := range inv.Lines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO invoice_lines (id, invoice_id, line_no, item_id, description, qty, rate, amount, class_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			line.ID, inv.ID, n, line.ItemID, line.Description, line.Qty, line.Rate,
			line.Amount, line.ClassRef,
		)
		if err != nil {
			return fmt.Errorf("Create: line: %w", err)
		}
	}
	return nil
}

// Get loads the full posting graph: header, customer, lines and their items.
func (r *InvoiceRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.Invoice, error) {
	var inv domain.Invoice
	err := q.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id,
	).Scan(
		&inv.ID, &inv.CustomerID, &inv.InvoiceNumber, &inv.Date, &inv.DueDate,
		&inv.Subtotal, &inv.TaxTotal, &inv.Total, &inv.AmountPaid, &inv.BalanceDue,
		&inv.Status, &inv.Memo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: invoice: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	customer, err := scanCustomerRow(ctx, q, inv.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	inv.Customer = customer

	rows, err := q.QueryContext(ctx,
		`SELECT l.id, l.invoice_id, l.item_id, l.description, l.qty, l.rate, l.amount, l.class_ref,
			`+itemJoin+`
		FROM invoice_lines l
		LEFT JOIN items i ON i.id = l.item_id
		WHERE l.invoice_id = $1 ORDER BY l.line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.InvoiceLine
		item, err := scanLineWithItem(rows,
			&line.ID, &line.InvoiceID, &line.ItemID, &line.Description,
			&line.Qty, &line.Rate, &line.Amount, &line.ClassRef,
		)
		if err != nil {
			return nil, fmt.Errorf("Get: scan line: %w", err)
		}
		line.Item = item
		inv.Lines = append(inv.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Get: lines rows: %w", err)
	}
	return &inv, nil
}

// ApplyPayment records part of a received payment against this invoice.
func (r *InvoiceRepository) ApplyPayment(ctx context.Context, tx *sql.Tx, id uuid.UUID, amount decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE invoices SET amount_paid = amount_paid + $1, balance_due = balance_due - $1
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
		return fmt.Errorf("ApplyPayment: invoice: %w", domain.ErrNotFound)
	}
	return nil
}

type SalesReceiptRepository struct {
	db *sql.DB
}

func NewSalesReceiptRepository(db *sql.DB) *SalesReceiptRepository {
	return &SalesReceiptRepository{db: db}
}

func (r *SalesReceiptRepository) Create(ctx context.Context, q Querier, sr *domain.SalesReceipt) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO sales_receipts (
			id, customer_id, receipt_number, date, deposit_to_account_id,
			subtotal, tax, total, status, memo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sr.ID, sr.CustomerID, sr.ReceiptNumber, sr.Date, sr.DepositToAccountID,
		sr.Subtotal, sr.Tax, sr.Total, sr.Status, sr.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for n, line := range sr.Lines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO sales_receipt_lines (id, sales_receipt_id, line_no, item_id, description, qty, rate, amount, class_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			line.ID, sr.ID, n, line.ItemID, line.Description, line.Qty, line.Rate,
			line.Amount, line.ClassRef,
		)
		if err != nil {
			return fmt.Errorf("Create: line: %w", err)
		}
	}
	return nil
}

func (r *SalesReceiptRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.SalesReceipt, error) {
	var sr domain.SalesReceipt
	err := q.QueryRowContext(ctx,
		`SELECT id, customer_id, receipt_number, date, deposit_to_account_id,
			subtotal, tax, total, status, memo
		FROM sales_receipts WHERE id = $1`, id,
	).Scan(
		&sr.ID, &sr.CustomerID, &sr.ReceiptNumber, &sr.Date, &sr.DepositToAccountID,
		&sr.Subtotal, &sr.Tax, &sr.Total, &sr.Status, &sr.Memo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: sales receipt: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	if sr.CustomerID != nil {
		customer, err := scanCustomerRow(ctx, q, *sr.CustomerID)
		if err != nil {
			return nil, fmt.Errorf("Get: %w", err)
		}
		sr.Customer = customer
	}

	rows, err := q.QueryContext(ctx,
		`SELECT l.id, l.sales_receipt_id, l.item_id, l.description, l.qty, l.rate, l.amount, l.class_ref,
			`+itemJoin+`
		FROM sales_receipt_lines l
		LEFT JOIN items i ON i.id = l.item_id
		WHERE l.sales_receipt_id = $1 ORDER BY l.line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.SalesReceiptLine
		item, err := scanLineWithItem(rows,
			&line.ID, &line.SalesReceiptID, &line.ItemID, &line.Description,
			&line.Qty, &line.Rate, &line.Amount, &line.ClassRef,
		)
		if err != nil {
			return nil, fmt.Errorf("Get: scan line: %w", err)
		}
		line.Item = item
		sr.Lines = append(sr.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Get: lines rows: %w", err)
	}
	return &sr, nil
}

type CreditMemoRepository struct {
	db *sql.DB
}

func NewCreditMemoRepository(db *sql.DB) *CreditMemoRepository {
	return &CreditMemoRepository{db: db}
}

func (r *CreditMemoRepository) Create(ctx context.Context, q Querier, cm *domain.CreditMemo) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO credit_memos (
			id, customer_id, credit_number, date, subtotal, tax, total, status, memo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		cm.ID, cm.CustomerID, cm.CreditNumber, cm.Date, cm.Subtotal, cm.Tax,
		cm.Total, cm.Status, cm.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for n, line := range cm.Lines {
		_, err := q.ExecContext(ctx,
			`INSERT INTO credit_memo_lines (id, credit_memo_id, line_no, item_id, description, qty, rate, amount, class_ref)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			line.ID, cm.ID, n, line.ItemID, line.Description, line.Qty, line.Rate,
			line.Amount, line.ClassRef,
		)
		if err != nil {
			return fmt.Errorf("Create: line: %w", err)
		}
	}
	return nil
}

func (r *CreditMemoRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.CreditMemo, error) {
	var cm domain.CreditMemo
	err := q.QueryRowContext(ctx,
		`SELECT id, customer_id, credit_number, date, subtotal, tax, total, status, memo
		FROM credit_memos WHERE id = $1`, id,
	).Scan(
		&cm.ID, &cm.CustomerID, &cm.CreditNumber, &cm.Date, &cm.Subtotal, &cm.Tax,
		&cm.Total, &cm.Status, &cm.Memo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: credit memo: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	customer, err := scanCustomerRow(ctx, q, cm.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	cm.Customer = customer

	rows, err := q.QueryContext(ctx,
		`SELECT l.id, l.credit_memo_id, l.item_id, l.description, l.qty, l.rate, l.amount, l.class_ref,
			`+itemJoin+`
		FROM credit_memo_lines l
		LEFT JOIN items i ON i.id = l.item_id
		WHERE l.credit_memo_id = $1 ORDER BY l.line_no`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.CreditMemoLine
		item, err := scanLineWithItem(rows,
			&line.ID, &line.CreditMemoID, &line.ItemID, &line.Description,
			&line.Qty, &line.Rate, &line.Amount, &line.ClassRef,
		)
		if err != nil {
			return nil, fmt.Errorf("Get: scan line: %w", err)
		}
		line.Item = item
		cm.Lines = append(cm.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Get: lines rows: %w", err)
	}
	return &cm, nil
}

type ReceivePaymentRepository struct {
	db *sql.DB
}

func NewReceivePaymentRepository(db *sql.DB) *ReceivePaymentRepository {
	return &ReceivePaymentRepository{db: db}
}

func (r *ReceivePaymentRepository) Create(ctx context.Context, q Querier, p *domain.ReceivePayment) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO receive_payments (
			id, customer_id, payment_date, amount, reference_number,
			deposit_to_account_id, status, memo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.CustomerID, p.PaymentDate, p.Amount, p.ReferenceNumber,
		p.DepositToAccountID, p.Status, p.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	for _, app := range p.Applications {
		_, err := q.ExecContext(ctx,
			`INSERT INTO payment_applications (id, receive_payment_id, invoice_id, amount_applied)
			VALUES ($1, $2, $3, $4)`,
			app.ID, p.ID, app.InvoiceID, app.AmountApplied,
		)
		if err != nil {
			return fmt.Errorf("Create: application: %w", err)
		}
	}
	return nil
}

func (r *ReceivePaymentRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.ReceivePayment, error) {
	var p domain.ReceivePayment
	err := q.QueryRowContext(ctx,
		`SELECT id, customer_id, payment_date, amount, reference_number,
			deposit_to_account_id, status, memo
		FROM receive_payments WHERE id = $1`, id,
	).Scan(
		&p.ID, &p.CustomerID, &p.PaymentDate, &p.Amount, &p.ReferenceNumber,
		&p.DepositToAccountID, &p.Status, &p.Memo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: receive payment: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}

	customer, err := scanCustomerRow(ctx, q, p.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	p.Customer = customer

	rows, err := q.QueryContext(ctx,
		`SELECT id, receive_payment_id, invoice_id, amount_applied
		FROM payment_applications WHERE receive_payment_id = $1 ORDER BY id`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("Get: applications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var app domain.PaymentApplication
		if err := rows.Scan(&app.ID, &app.ReceivePaymentID, &app.InvoiceID, &app.AmountApplied); err != nil {
			return nil, fmt.Errorf("Get: scan application: %w", err)
		}
		p.Applications = append(p.Applications, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Get: applications rows: %w", err)
	}
	return &p, nil
}

type EstimateRepository struct {
	db *sql.DB
}

func NewEstimateRepository(db *sql.DB) *EstimateRepository {
	return &EstimateRepository{db: db}
}

func (r *EstimateRepository) Create(ctx context.Context, q Querier, e *domain.Estimate) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO estimates (
			id, customer_id, estimate_number, date, expiry_date,
			subtotal, tax, total, status, memo
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.CustomerID, e.EstimateNumber, e.Date, e.ExpiryDate,
		e.Subtotal, e.Tax, e.Total, e.Status, e.Memo,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *EstimateRepository) Get(ctx context.Context, q Querier, id uuid.UUID) (*domain.Estimate, error) {
	var e domain.Estimate
	err := q.QueryRowContext(ctx,
		`SELECT id, customer_id, estimate_number, date, expiry_date,
			subtotal, tax, total, status, memo
		FROM estimates WHERE id = $1`, id,
	).Scan(
		&e.ID, &e.CustomerID, &e.EstimateNumber, &e.Date, &e.ExpiryDate,
		&e.Subtotal, &e.Tax, &e.Total, &e.Status, &e.Memo,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: estimate: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &e, nil
}

func scanCustomerRow(ctx context.Context, q Querier, id uuid.UUID) (*domain.Customer, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id,
	)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("customer: %w", domain.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// scanLineWithItem scans a line row followed by the left-joined item columns,
// returning the item when the join matched.
func scanLineWithItem(s scanner, lineDest ...any) (*domain.Item, error) {
	var (
		itemID       *uuid.UUID
		name         *string
		itemType     *domain.ItemType
		description  *string
		salesPrice   *decimal.Decimal
		purchaseCost *decimal.Decimal
		incomeAcct   *uuid.UUID
		expenseAcct  *uuid.UUID
		isActive     *bool
		createdAt    sql.NullTime
	)
	dest := append(lineDest,
		&itemID, &name, &itemType, &description, &salesPrice, &purchaseCost,
		&incomeAcct, &expenseAcct, &isActive, &createdAt,
	)
	if err := s.Scan(dest...); err != nil {
		return nil, err
	}
	if itemID == nil {
		return nil, nil
	}
	item := &domain.Item{
		ID:               *itemID,
		Name:             *name,
		ItemType:         *itemType,
		Description:      description,
		SalesPrice:       *salesPrice,
		PurchaseCost:     *purchaseCost,
		IncomeAccountID:  incomeAcct,
		ExpenseAccountID: expenseAcct,
		IsActive:         *isActive,
		CreatedAt:        createdAt.Time,
	}
	return item, nil
}
