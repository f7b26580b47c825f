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

const customerColumns = `id, name, company, email, phone, bill_to_address,
	credit_limit, balance, is_active, created_at`

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*domain.Customer, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE id = $1`, id,
	)
	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: customer: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return c, nil
}

func (r *CustomerRepository) Create(ctx context.Context, q Querier, c *domain.Customer) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO customers (
			id, name, company, email, phone, bill_to_address,
			credit_limit, balance, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.Name, c.Company, c.Email, c.Phone, c.BillToAddress,
		c.CreditLimit, c.Balance, c.IsActive, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// AdjustBalance applies a signed delta to the customer's running balance.
// The relative update is atomic, so concurrent postings cannot lose writes.
func (r *CustomerRepository) AdjustBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE customers SET balance = balance + $1 WHERE id = $2`, delta, id,
	)
	if err != nil {
		return fmt.Errorf("AdjustBalance: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("AdjustBalance: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("AdjustBalance: customer: %w", domain.ErrNotFound)
	}
	return nil
}

func scanCustomer(s scanner) (*domain.Customer, error) {
	var c domain.Customer
	err := s.Scan(
		&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.BillToAddress,
		&c.CreditLimit, &c.Balance, &c.IsActive, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

const vendorColumns = `id, name, company, email, phone, address,
	credit_limit, balance, tax_id, is_active, created_at`

type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*domain.Vendor, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id,
	)
	v, err := scanVendor(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: vendor: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return v, nil
}

func (r *VendorRepository) Create(ctx context.Context, q Querier, v *domain.Vendor) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO vendors (
			id, name, company, email, phone, address,
			credit_limit, balance, tax_id, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, v.Name, v.Company, v.Email, v.Phone, v.Address,
		v.CreditLimit, v.Balance, v.TaxID, v.IsActive, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *VendorRepository) AdjustBalance(ctx context.Context, tx *sql.Tx, id uuid.UUID, delta decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE vendors SET balance = balance + $1 WHERE id = $2`, delta, id,
	)
	if err != nil {
		return fmt.Errorf("AdjustBalance: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("AdjustBalance: rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("AdjustBalance: vendor: %w", domain.ErrNotFound)
	}
	return nil
}

func scanVendor(s scanner) (*domain.Vendor, error) {
	var v domain.Vendor
	err := s.Scan(
		&v.ID, &v.Name, &v.Company, &v.Email, &v.Phone, &v.Address,
		&v.CreditLimit, &v.Balance, &v.TaxID, &v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
