package sequence

import (
	"context"
	"fmt"
	"sync"

	"github.com/openbooks-dev/openbooks/internal/domain"
	"github.com/openbooks-dev/openbooks/internal/repository"
)

// defaultPrefixes maps the document types with a well-known numbering
// prefix. Anything else gets "{type}-".
var defaultPrefixes = map[domain.DocType]string{
	domain.DocTypeInvoice:       "INV-",
	domain.DocTypeEstimate:      "EST-",
	domain.DocTypeSalesReceipt:  "SR-",
	domain.DocTypeCreditMemo:    "CM-",
	domain.DocTypeBill:          "BILL-",
	domain.DocTypePurchaseOrder: "PO-",
	domain.DocTypeCheck:         "CHK-",
	domain.DocTypeJournalEntry:  "JE-",
	domain.DocTypeVendorCredit:  "VC-",
}

// Allocator hands out sequential document numbers like "INV-00042". Each
// document type has its own counter, created lazily on first use.
// Allocation serializes on a process-wide mutex and on the counter's row
// lock, so concurrent allocations never see the same number even across
// processes. Counters only move forward: an allocation whose enclosing
// work fails leaves a gap, never a duplicate.
type Allocator struct {
	mu        sync.Mutex
	db        *repository.DB
	sequences *repository.NumberSequenceRepository
	overrides map[string]string
}

// NewAllocator builds an allocator. overrides maps document-type keys to
// custom prefixes and may be nil.
func NewAllocator(db *repository.DB, sequences *repository.NumberSequenceRepository, overrides map[string]string) *Allocator {
	return &Allocator{db: db, sequences: sequences, overrides: overrides}
}

// Prefix returns the numbering prefix for a document type: a configured
// override if present, the well-known default otherwise, "{type}-" as the
// fallback.
func (a *Allocator) Prefix(docType domain.DocType) string {
	if p, ok := a.overrides[string(docType)]; ok {
		return p
	}
	if p, ok := defaultPrefixes[docType]; ok {
		return p
	}
	return string(docType) + "-"
}

// Allocate returns the next number for the document type and advances the
// counter, e.g. "INV-00001".
func (a *Allocator) Allocate(ctx context.Context, docType domain.DocType) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("Allocate: begin: %w", err)
	}
	defer tx.Rollback()

	key := string(docType)
	if err := a.sequences.EnsureExists(ctx, tx, key, a.Prefix(docType)); err != nil {
		return "", fmt.Errorf("Allocate: %w", err)
	}

	seq, err := a.sequences.GetForUpdate(ctx, tx, key)
	if err != nil {
		return "", fmt.Errorf("Allocate: %w", err)
	}

	number := fmt.Sprintf("%s%05d", seq.Prefix, seq.NextNumber)
	if err := a.sequences.Increment(ctx, tx, key); err != nil {
		return "", fmt.Errorf("Allocate: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("Allocate: commit: %w", err)
	}
	return number, nil
}
