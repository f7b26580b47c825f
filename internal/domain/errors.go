package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound                = errors.New("not found")
	ErrAccountNotFound         = errors.New("account not found")
	ErrSystemAccountMissing    = errors.New("system account not configured")
	ErrUnbalancedEntry         = errors.New("unbalanced entry")
	ErrUnsupportedDocumentType = errors.New("unsupported document type")
	ErrVersionConflict         = errors.New("optimistic lock conflict")
	ErrInvalidAmount           = errors.New("invalid entry amount")
	ErrDocumentNotDraft        = errors.New("document is not a draft")
)

// UnbalancedError carries the computed totals so callers can see which side
// of a posting is off. It matches ErrUnbalancedEntry under errors.Is.
type UnbalancedError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("unbalanced entry: debits=%s credits=%s",
		e.Debits.StringFixed(2), e.Credits.StringFixed(2))
}

func (e *UnbalancedError) Unwrap() error { return ErrUnbalancedEntry }
