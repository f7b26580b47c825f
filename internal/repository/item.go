package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

const itemColumns = `id, name, item_type, description, sales_price, purchase_cost,
	income_account_id, expense_account_id, is_active, created_at`

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) GetByID(ctx context.Context, q Querier, id uuid.UUID) (*domain.Item, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = $1`, id,
	)
	i, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetByID: item: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetByID: %w", err)
	}
	return i, nil
}

func (r *ItemRepository) Create(ctx context.Context, q Querier, i *domain.Item) error {
	_, err := q.ExecContext(ctx,
		`INSERT INTO items (
			id, name, item_type, description, sales_price, purchase_cost,
			income_account_id, expense_account_id, is_active, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		i.ID, i.Name, i.ItemType, i.Description, i.SalesPrice, i.PurchaseCost,
		i.IncomeAccountID, i.ExpenseAccountID, i.IsActive, i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func scanItem(s scanner) (*domain.Item, error) {
	var i domain.Item
	err := s.Scan(
		&i.ID, &i.Name, &i.ItemType, &i.Description, &i.SalesPrice, &i.PurchaseCost,
		&i.IncomeAccountID, &i.ExpenseAccountID, &i.IsActive, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
