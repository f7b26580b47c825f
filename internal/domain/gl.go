package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GLEntry is one immutable debit-or-credit line in the general ledger.
// Seq is assigned by the store on insert and fixes register order.
// Nothing on an entry is ever updated except the IsVoid flag; reversal is
// done by inserting offsetting entries, never by deleting history.
type GLEntry struct {
	ID          uuid.UUID
	Seq         int64
	PostingDate time.Time
	AccountID   uuid.UUID
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	DocType     DocType
	DocID       uuid.UUID
	DocNumber   *string
	Memo        *string
	NameType    *string
	NameID      *uuid.UUID
	NameDisplay *string
	ClassRef    *string
	IsVoid      bool
	CreatedAt   time.Time
}

// Reversal builds the offsetting entry used to void this one: debit and
// credit swapped, same account and classification, memo prefixed "VOID: ".
// Both the original and the reversal end up flagged void so voided documents
// drop out of normal reports but stay on the audit trail.
func (e *GLEntry) Reversal(postingDate time.Time) *GLEntry {
	memo := "VOID: "
	if e.Memo != nil {
		memo += *e.Memo
	}
	return &GLEntry{
		ID:          uuid.New(),
		PostingDate: postingDate,
		AccountID:   e.AccountID,
		Debit:       e.Credit,
		Credit:      e.Debit,
		DocType:     e.DocType,
		DocID:       e.DocID,
		DocNumber:   e.DocNumber,
		Memo:        &memo,
		NameType:    e.NameType,
		NameID:      e.NameID,
		NameDisplay: e.NameDisplay,
		ClassRef:    e.ClassRef,
		IsVoid:      true,
	}
}
