package posting

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/domain"
	"github.com/openbooks-dev/openbooks/internal/logging"
	"github.com/openbooks-dev/openbooks/internal/repository"
)

// Service is the posting orchestrator: it turns documents into balanced GL
// entries, keeps running account balances in step, and reverses postings
// when documents are voided. Every Post and Void runs as one transaction;
// a failure anywhere rolls the whole operation back.
type Service struct {
	stores *repository.Stores
}

func NewService(stores *repository.Stores) *Service {
	return &Service{stores: stores}
}

// generatorFunc loads a document graph and produces its proposed entries
// and side effects. The Querier is the posting transaction so loads see
// and join uncommitted work.
type generatorFunc func(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error)

// generators is the closed mapping of posting document types to their
// entry rules. Estimates and purchase orders are deliberately absent:
// posting one is a caller error.
var generators = map[domain.DocType]generatorFunc{
	domain.DocTypeInvoice:        generateInvoice,
	domain.DocTypeReceivePayment: generateReceivePayment,
	domain.DocTypeSalesReceipt:   generateSalesReceipt,
	domain.DocTypeCreditMemo:     generateCreditMemo,
	domain.DocTypeBill:           generateBill,
	domain.DocTypeBillPayment:    generateBillPayment,
	domain.DocTypeVendorCredit:   generateVendorCredit,
	domain.DocTypeCheck:          generateCheck,
	domain.DocTypeDeposit:        generateDeposit,
	domain.DocTypeTransfer:       generateTransfer,
	domain.DocTypeJournalEntry:   generateJournalEntry,
}

// Post converts the document into GL entries and applies them in one
// transaction: entries persisted, account balances updated, side effects
// applied, document status set to posted. Only drafts post; posted and
// voided are terminal states, so re-posting returns ErrDocumentNotDraft
// instead of doubling every balance. Returns the persisted entries.
func (s *Service) Post(ctx context.Context, docType domain.DocType, docID uuid.UUID) ([]domain.GLEntry, error) {
	log := logging.FromContext(ctx)

	gen, ok := generators[docType]
	if !ok {
		return nil, fmt.Errorf("Post: %s: %w", docType, domain.ErrUnsupportedDocumentType)
	}

	tx, err := s.stores.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Post: begin: %w", err)
	}
	defer tx.Rollback()

	status, err := repository.DocStatusForUpdate(ctx, tx, docType, docID)
	if err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}
	if status != domain.DocStatusDraft {
		return nil, fmt.Errorf("Post: %s is %s: %w", docType, status, domain.ErrDocumentNotDraft)
	}

	res := NewResolver(s.stores.Accounts, tx)
	entries, effects, err := gen(ctx, s, tx, res, docID)
	if err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}
	if err := Validate(entries); err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}

	for i := range entries {
		if err := s.stores.Entries.Insert(ctx, tx, &entries[i]); err != nil {
			return nil, fmt.Errorf("Post: %w", err)
		}
	}

	if err := s.applyAccountEffects(ctx, tx, entries); err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}
	if err := s.applyEffects(ctx, tx, effects); err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}
	if err := repository.SetDocStatus(ctx, tx, docType, docID, domain.DocStatusPosted); err != nil {
		return nil, fmt.Errorf("Post: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Post: commit: %w", err)
	}

	log.Info("document posted", "doc_type", docType, "doc_id", docID, "entries", len(entries))
	return entries, nil
}

// Void reverses every remaining non-void entry of a document: originals
// are flagged void, offsetting entries are written, and account, customer
// and vendor balances return to their pre-posting values. Returns the
// number of entries reversed; zero means a double void, which is a no-op.
// The document's own status stays with the caller.
func (s *Service) Void(ctx context.Context, docType domain.DocType, docID uuid.UUID) (int, error) {
	log := logging.FromContext(ctx)

	tx, err := s.stores.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("Void: begin: %w", err)
	}
	defer tx.Rollback()

	originals, err := s.stores.Entries.NonVoidByDocForUpdate(ctx, tx, docType, docID)
	if err != nil {
		return 0, fmt.Errorf("Void: %w", err)
	}
	if len(originals) == 0 {
		return 0, nil
	}

	today := time.Now().UTC()
	reversals := make([]domain.GLEntry, 0, len(originals))
	for i := range originals {
		if err := s.stores.Entries.MarkVoid(ctx, tx, originals[i].ID); err != nil {
			return 0, fmt.Errorf("Void: %w", err)
		}
		rev := originals[i].Reversal(today)
		if err := s.stores.Entries.Insert(ctx, tx, rev); err != nil {
			return 0, fmt.Errorf("Void: %w", err)
		}
		reversals = append(reversals, *rev)
	}

	if err := s.applyAccountEffects(ctx, tx, reversals); err != nil {
		return 0, fmt.Errorf("Void: %w", err)
	}

	// Unwind the document-level side effects the posting applied, so
	// customer/vendor balances and settled invoices/bills roll back too.
	if gen, ok := generators[docType]; ok {
		res := NewResolver(s.stores.Accounts, tx)
		_, effects, err := gen(ctx, s, tx, res, docID)
		if err != nil {
			return 0, fmt.Errorf("Void: %w", err)
		}
		if err := s.applyEffects(ctx, tx, effects.Negated()); err != nil {
			return 0, fmt.Errorf("Void: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("Void: commit: %w", err)
	}

	log.Info("document voided", "doc_type", docType, "doc_id", docID, "reversed", len(originals))
	return len(originals), nil
}

// SetStatus flips a document's status outside any posting transaction.
// Void leaves the source document's status to its caller; this is the
// call that finishes the job.
func (s *Service) SetStatus(ctx context.Context, docType domain.DocType, docID uuid.UUID, status domain.DocStatus) error {
	if err := repository.SetDocStatus(ctx, s.stores.DB.Conn(), docType, docID, status); err != nil {
		return fmt.Errorf("SetStatus: %w", err)
	}
	return nil
}

// ValidateBalance reports whether the whole ledger balances: the sum of
// all debit amounts equals the sum of all credit amounts across every
// entry ever written, void entries included.
func (s *Service) ValidateBalance(ctx context.Context) (bool, error) {
	debits, credits, err := s.stores.Entries.Totals(ctx)
	if err != nil {
		return false, fmt.Errorf("ValidateBalance: %w", err)
	}
	return debits.Equal(credits), nil
}

// applyAccountEffects folds the entries' amounts into each account's
// running balance, honoring the normal side. Accounts are locked in id
// order so concurrent postings touching the same accounts cannot
// deadlock; the write is version-checked.
func (s *Service) applyAccountEffects(ctx context.Context, tx *sql.Tx, entries []domain.GLEntry) error {
	debits := make(map[uuid.UUID]decimal.Decimal)
	credits := make(map[uuid.UUID]decimal.Decimal)
	ids := make([]uuid.UUID, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if _, seen := debits[e.AccountID]; !seen {
			ids = append(ids, e.AccountID)
			debits[e.AccountID] = decimal.Zero
			credits[e.AccountID] = decimal.Zero
		}
		debits[e.AccountID] = debits[e.AccountID].Add(e.Debit)
		credits[e.AccountID] = credits[e.AccountID].Add(e.Credit)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	for _, id := range ids {
		account, err := s.stores.Accounts.GetForUpdate(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("applyAccountEffects: %w", err)
		}
		newBalance := account.Balance.Add(account.NormalEffect(debits[id], credits[id]))
		if err := s.stores.Accounts.UpdateBalance(ctx, tx, id, newBalance, account.Version+1); err != nil {
			return fmt.Errorf("applyAccountEffects: %w", err)
		}
	}
	return nil
}

func (s *Service) applyEffects(ctx context.Context, tx *sql.Tx, eff Effects) error {
	for _, d := range eff.CustomerDeltas {
		if err := s.stores.Customers.AdjustBalance(ctx, tx, d.ID, d.Delta); err != nil {
			return fmt.Errorf("applyEffects: %w", err)
		}
	}
	for _, d := range eff.VendorDeltas {
		if err := s.stores.Vendors.AdjustBalance(ctx, tx, d.ID, d.Delta); err != nil {
			return fmt.Errorf("applyEffects: %w", err)
		}
	}
	for _, a := range eff.InvoicePayments {
		if err := s.stores.Invoices.ApplyPayment(ctx, tx, a.DocID, a.Amount); err != nil {
			return fmt.Errorf("applyEffects: %w", err)
		}
	}
	for _, a := range eff.BillPayments {
		if err := s.stores.Bills.ApplyPayment(ctx, tx, a.DocID, a.Amount); err != nil {
			return fmt.Errorf("applyEffects: %w", err)
		}
		vendorID, err := s.stores.Bills.VendorID(ctx, tx, a.DocID)
		if err != nil {
			return fmt.Errorf("applyEffects: %w", err)
		}
		if err := s.stores.Vendors.AdjustBalance(ctx, tx, vendorID, a.Amount.Neg()); err != nil {
			return fmt.Errorf("applyEffects: %w", err)
		}
	}
	return nil
}

func generateInvoice(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	inv, err := s.stores.Invoices.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return InvoiceEntries(ctx, res, inv)
}

func generateReceivePayment(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	p, err := s.stores.Payments.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return ReceivePaymentEntries(ctx, res, p)
}

func generateSalesReceipt(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	sr, err := s.stores.SalesReceipts.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return SalesReceiptEntries(ctx, res, sr)
}

func generateCreditMemo(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	cm, err := s.stores.CreditMemos.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return CreditMemoEntries(ctx, res, cm)
}

func generateBill(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	b, err := s.stores.Bills.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return BillEntries(ctx, res, b)
}

func generateBillPayment(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	p, err := s.stores.BillPayments.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return BillPaymentEntries(ctx, res, p)
}

func generateVendorCredit(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	vc, err := s.stores.VendorCredits.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return VendorCreditEntries(ctx, res, vc)
}

func generateCheck(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	c, err := s.stores.Checks.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return CheckEntries(ctx, res, c)
}

func generateDeposit(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	d, err := s.stores.Deposits.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return DepositEntries(ctx, res, d)
}

func generateTransfer(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	t, err := s.stores.Transfers.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return TransferEntries(ctx, res, t)
}

func generateJournalEntry(ctx context.Context, s *Service, q repository.Querier, res AccountResolver, id uuid.UUID) ([]domain.GLEntry, Effects, error) {
	je, err := s.stores.Journals.Get(ctx, q, id)
	if err != nil {
		return nil, Effects{}, err
	}
	return JournalEntryEntries(ctx, res, je)
}
