package posting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
	"github.com/openbooks-dev/openbooks/internal/repository"
)

// Well-known account names the engine creates on first use.
const (
	UndepositedFundsName = "Undeposited Funds"
	SalesTaxPayableName  = "Sales Tax Payable"
)

// AccountResolver supplies the implicit account lookups generators depend
// on: system accounts (AR, AP), the company default income and expense
// accounts, and well-known accounts created lazily. An interface so
// generator tests can run on fixtures without a database.
type AccountResolver interface {
	System(ctx context.Context, accountType domain.AccountType) (*domain.Account, error)
	DefaultIncome(ctx context.Context) (*domain.Account, error)
	DefaultExpense(ctx context.Context) (*domain.Account, error)
	GetOrCreate(ctx context.Context, name string, accountType domain.AccountType) (*domain.Account, error)
}

type storeResolver struct {
	accounts *repository.AccountRepository
	q        repository.Querier
}

// NewResolver returns an AccountResolver backed by the accounts table.
// Pass a transaction as q so lookups and lazy creation join the posting.
func NewResolver(accounts *repository.AccountRepository, q repository.Querier) AccountResolver {
	return &storeResolver{accounts: accounts, q: q}
}

func (r *storeResolver) System(ctx context.Context, accountType domain.AccountType) (*domain.Account, error) {
	return r.accounts.FirstByType(ctx, r.q, accountType)
}

func (r *storeResolver) DefaultIncome(ctx context.Context) (*domain.Account, error) {
	return r.accounts.FirstByType(ctx, r.q, domain.AccountTypeIncome)
}

func (r *storeResolver) DefaultExpense(ctx context.Context) (*domain.Account, error) {
	return r.accounts.FirstByType(ctx, r.q, domain.AccountTypeExpense)
}

func (r *storeResolver) GetOrCreate(ctx context.Context, name string, accountType domain.AccountType) (*domain.Account, error) {
	a, err := r.accounts.FindByNameAndType(ctx, r.q, name, accountType)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("GetOrCreate: %w", err)
	}

	a = &domain.Account{
		ID:              uuid.New(),
		Name:            name,
		AccountType:     accountType,
		Balance:         decimal.Zero,
		OpeningBalance:  decimal.Zero,
		IsActive:        true,
		IsDebitNormal:   accountType.IsDebitNormal(),
		IsSystemAccount: true,
		Version:         1,
		CreatedAt:       time.Now().UTC(),
	}
	if err := r.accounts.Create(ctx, r.q, a); err != nil {
		return nil, fmt.Errorf("GetOrCreate: %w", err)
	}
	return a, nil
}
