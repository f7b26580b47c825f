package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemType string

const (
	ItemTypeService          ItemType = "service"
	ItemTypeInventoryPart    ItemType = "inventory_part"
	ItemTypeNonInventoryPart ItemType = "non_inventory_part"
	ItemTypeOtherCharge      ItemType = "other_charge"
	ItemTypeDiscount         ItemType = "discount"
)

// Item links sold/purchased things to their income and expense accounts.
// Either account reference may be nil, in which case posting falls back on
// the company default for that side.
type Item struct {
	ID               uuid.UUID
	Name             string
	ItemType         ItemType
	Description      *string
	SalesPrice       decimal.Decimal
	PurchaseCost     decimal.Decimal
	IncomeAccountID  *uuid.UUID
	ExpenseAccountID *uuid.UUID
	IsActive         bool
	CreatedAt        time.Time
}
