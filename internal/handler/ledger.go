package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/openbooks-dev/openbooks/internal/domain"
	"github.com/openbooks-dev/openbooks/internal/logging"
	"github.com/openbooks-dev/openbooks/internal/repository"
)

type postingService interface {
	Post(ctx context.Context, docType domain.DocType, docID uuid.UUID) ([]domain.GLEntry, error)
	Void(ctx context.Context, docType domain.DocType, docID uuid.UUID) (int, error)
	SetStatus(ctx context.Context, docType domain.DocType, docID uuid.UUID, status domain.DocStatus) error
	ValidateBalance(ctx context.Context) (bool, error)
}

type numberAllocator interface {
	Allocate(ctx context.Context, docType domain.DocType) (string, error)
}

type LedgerHandler struct {
	posting   postingService
	allocator numberAllocator
	entries   *repository.GLEntryRepository
}

func NewLedgerHandler(posting postingService, allocator numberAllocator, entries *repository.GLEntryRepository) *LedgerHandler {
	return &LedgerHandler{posting: posting, allocator: allocator, entries: entries}
}

type glEntryDTO struct {
	ID          uuid.UUID  `json:"id"`
	Seq         int64      `json:"seq"`
	PostingDate string     `json:"posting_date"`
	AccountID   uuid.UUID  `json:"account_id"`
	Debit       string     `json:"debit"`
	Credit      string     `json:"credit"`
	DocType     string     `json:"doc_type"`
	DocID       uuid.UUID  `json:"doc_id"`
	DocNumber   *string    `json:"doc_number,omitempty"`
	Memo        *string    `json:"memo,omitempty"`
	NameType    *string    `json:"name_type,omitempty"`
	NameID      *uuid.UUID `json:"name_id,omitempty"`
	NameDisplay *string    `json:"name_display,omitempty"`
	ClassRef    *string    `json:"class_ref,omitempty"`
	IsVoid      bool       `json:"is_void"`
}

func toGLEntryDTO(e *domain.GLEntry) glEntryDTO {
	return glEntryDTO{
		ID:          e.ID,
		Seq:         e.Seq,
		PostingDate: e.PostingDate.Format("2006-01-02"),
		AccountID:   e.AccountID,
		Debit:       e.Debit.StringFixed(2),
		Credit:      e.Credit.StringFixed(2),
		DocType:     string(e.DocType),
		DocID:       e.DocID,
		DocNumber:   e.DocNumber,
		Memo:        e.Memo,
		NameType:    e.NameType,
		NameID:      e.NameID,
		NameDisplay: e.NameDisplay,
		ClassRef:    e.ClassRef,
		IsVoid:      e.IsVoid,
	}
}

func toGLEntryDTOs(entries []domain.GLEntry) []glEntryDTO {
	dtos := make([]glEntryDTO, len(entries))
	for i := range entries {
		dtos[i] = toGLEntryDTO(&entries[i])
	}
	return dtos
}

// docRef pulls the {type}/{id} pair out of the path, answering a malformed
// id with a field-level validation error. Type validity is the posting
// service's call, not the router's.
func docRef(w http.ResponseWriter, r *http.Request) (domain.DocType, uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: "id", Message: "must be a valid UUID"}})
		return "", uuid.Nil, false
	}
	return domain.DocType(r.PathValue("type")), id, true
}

// Post converts a draft document into GL entries.
func (h *LedgerHandler) Post(w http.ResponseWriter, r *http.Request) {
	docType, docID, ok := docRef(w, r)
	if !ok {
		return
	}

	entries, err := h.posting.Post(r.Context(), docType, docID)
	if err != nil {
		logging.FromContext(r.Context()).Warn("post failed", "doc_type", docType, "doc_id", docID, "error", err)
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, toGLEntryDTOs(entries))
}

// Void reverses a posted document's entries and marks the document voided.
// A document with nothing left to reverse reports zero reversed entries.
func (h *LedgerHandler) Void(w http.ResponseWriter, r *http.Request) {
	docType, docID, ok := docRef(w, r)
	if !ok {
		return
	}

	reversed, err := h.posting.Void(r.Context(), docType, docID)
	if err != nil {
		logging.FromContext(r.Context()).Warn("void failed", "doc_type", docType, "doc_id", docID, "error", err)
		RespondDomainError(w, err)
		return
	}

	if reversed > 0 {
		if err := h.posting.SetStatus(r.Context(), docType, docID, domain.DocStatusVoided); err != nil {
			RespondDomainError(w, err)
			return
		}
	}

	RespondSuccess(w, http.StatusOK, map[string]int{"reversed_entries": reversed})
}

// Entries lists every GL entry a document produced, reversals included.
func (h *LedgerHandler) Entries(w http.ResponseWriter, r *http.Request) {
	docType, docID, ok := docRef(w, r)
	if !ok {
		return
	}

	entries, err := h.entries.ListByDoc(r.Context(), docType, docID)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toGLEntryDTOs(entries))
}

// Validate runs the global ledger integrity check.
func (h *LedgerHandler) Validate(w http.ResponseWriter, r *http.Request) {
	balanced, err := h.posting.ValidateBalance(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}
	RespondSuccess(w, http.StatusOK, map[string]bool{"balanced": balanced})
}

// Allocate hands out the next document number for a type.
func (h *LedgerHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	docType := domain.DocType(r.PathValue("type"))

	number, err := h.allocator.Allocate(r.Context(), docType)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusCreated, map[string]string{"number": number})
}
