package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Check struct {
	ID            uuid.UUID
	BankAccountID uuid.UUID
	PayToName     *string
	CheckNumber   *string
	Date          time.Time
	Amount        decimal.Decimal
	Status        DocStatus
	Memo          *string
	ExpenseLines  []CheckExpenseLine
	ItemLines     []CheckItemLine
}

type CheckExpenseLine struct {
	ID        uuid.UUID
	CheckID   uuid.UUID
	AccountID uuid.UUID
	Amount    decimal.Decimal
	Memo      *string
	ClassRef  *string
}

type CheckItemLine struct {
	ID          uuid.UUID
	CheckID     uuid.UUID
	ItemID      *uuid.UUID
	Item        *Item
	Description *string
	Qty         decimal.Decimal
	Cost        decimal.Decimal
	Amount      decimal.Decimal
}

type Deposit struct {
	ID            uuid.UUID
	BankAccountID uuid.UUID
	Date          time.Time
	Total         decimal.Decimal
	Status        DocStatus
	Memo          *string
	Lines         []DepositLine
}

// DepositLine moves money out of its source account (Undeposited Funds when
// unset) and into the deposit's bank account.
type DepositLine struct {
	ID            uuid.UUID
	DepositID     uuid.UUID
	ReceivedFrom  *string
	FromAccountID *uuid.UUID
	Memo          *string
	Amount        decimal.Decimal
}

type Transfer struct {
	ID            uuid.UUID
	FromAccountID uuid.UUID
	FromAccount   *Account
	ToAccountID   uuid.UUID
	ToAccount     *Account
	Date          time.Time
	Amount        decimal.Decimal
	Status        DocStatus
	Memo          *string
}

type JournalEntry struct {
	ID          uuid.UUID
	EntryNumber string
	PostingDate time.Time
	IsAdjusting bool
	Status      DocStatus
	Memo        *string
	Lines       []JournalEntryLine
}

type JournalEntryLine struct {
	ID             uuid.UUID
	JournalEntryID uuid.UUID
	AccountID      uuid.UUID
	Debit          decimal.Decimal
	Credit         decimal.Decimal
	Memo           *string
	NameID         *uuid.UUID
	ClassRef       *string
}
