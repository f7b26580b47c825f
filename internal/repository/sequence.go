package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

type NumberSequenceRepository struct {
	db *sql.DB
}

func NewNumberSequenceRepository(db *sql.DB) *NumberSequenceRepository {
	return &NumberSequenceRepository{db: db}
}

// EnsureExists lazily creates the counter row for a document type. The
// ON CONFLICT guard makes first-allocation races harmless: whoever loses
// simply finds the row already there.
func (r *NumberSequenceRepository) EnsureExists(ctx context.Context, tx *sql.Tx, entityType, prefix string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO number_sequences (entity_type, prefix, next_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (entity_type) DO NOTHING`,
		entityType, prefix,
	)
	if err != nil {
		return fmt.Errorf("EnsureExists: %w", err)
	}
	return nil
}

// GetForUpdate locks the counter row for the rest of the transaction.
func (r *NumberSequenceRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, entityType string) (*domain.NumberSequence, error) {
	var seq domain.NumberSequence
	err := tx.QueryRowContext(ctx,
		`SELECT entity_type, prefix, next_number FROM number_sequences
		WHERE entity_type = $1 FOR UPDATE`, entityType,
	).Scan(&seq.EntityType, &seq.Prefix, &seq.NextNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("GetForUpdate: sequence: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return &seq, nil
}

func (r *NumberSequenceRepository) Increment(ctx context.Context, tx *sql.Tx, entityType string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE number_sequences SET next_number = next_number + 1
		WHERE entity_type = $1`, entityType,
	)
	if err != nil {
		return fmt.Errorf("Increment: %w", err)
	}
	return nil
}

// Get reads the counter without locking, for inspection and tests.
func (r *NumberSequenceRepository) Get(ctx context.Context, entityType string) (*domain.NumberSequence, error) {
	var seq domain.NumberSequence
	err := r.db.QueryRowContext(ctx,
		`SELECT entity_type, prefix, next_number FROM number_sequences
		WHERE entity_type = $1`, entityType,
	).Scan(&seq.EntityType, &seq.Prefix, &seq.NextNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("Get: sequence: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &seq, nil
}
