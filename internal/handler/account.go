package handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/openbooks-dev/openbooks/internal/domain"
	"github.com/openbooks-dev/openbooks/internal/repository"
)

type AccountHandler struct {
	accounts *repository.AccountRepository
	entries  *repository.GLEntryRepository
}

func NewAccountHandler(accounts *repository.AccountRepository, entries *repository.GLEntryRepository) *AccountHandler {
	return &AccountHandler{accounts: accounts, entries: entries}
}

type accountDTO struct {
	ID              uuid.UUID  `json:"id"`
	Number          *string    `json:"number,omitempty"`
	Name            string     `json:"name"`
	AccountType     string     `json:"account_type"`
	ParentID        *uuid.UUID `json:"parent_id,omitempty"`
	IsSubAccount    bool       `json:"is_sub_account"`
	Balance         string     `json:"balance"`
	IsActive        bool       `json:"is_active"`
	IsDebitNormal   bool       `json:"is_debit_normal"`
	IsSystemAccount bool       `json:"is_system_account"`
}

func toAccountDTO(a *domain.Account) accountDTO {
	return accountDTO{
		ID:              a.ID,
		Number:          a.Number,
		Name:            a.Name,
		AccountType:     string(a.AccountType),
		ParentID:        a.ParentID,
		IsSubAccount:    a.IsSubAccount,
		Balance:         a.Balance.StringFixed(2),
		IsActive:        a.IsActive,
		IsDebitNormal:   a.IsDebitNormal,
		IsSystemAccount: a.IsSystemAccount,
	}
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.List(r.Context())
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	dtos := make([]accountDTO, len(accounts))
	for i := range accounts {
		dtos[i] = toAccountDTO(&accounts[i])
	}
	RespondSuccess(w, http.StatusOK, dtos)
}

func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: "id", Message: "must be a valid UUID"}})
		return
	}

	account, err := h.accounts.GetByID(r.Context(), id)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, toAccountDTO(account))
}

// Register returns an account's ledger history in posting order,
// paginated with limit/offset query parameters.
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		RespondValidationError(w, []FieldError{{Field: "id", Message: "must be a valid UUID"}})
		return
	}

	if _, err := h.accounts.GetByID(r.Context(), id); err != nil {
		RespondDomainError(w, err)
		return
	}

	limit := queryInt(r, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}
	offset := queryInt(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	entries, total, err := h.entries.ListByAccount(r.Context(), id, limit, offset)
	if err != nil {
		RespondDomainError(w, err)
		return
	}

	RespondSuccess(w, http.StatusOK, map[string]any{
		"entries": toGLEntryDTOs(entries),
		"total":   total,
		"limit":   limit,
		"offset":  offset,
	})
}

func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
