package handler

import "net/http"

type AppError struct {
	Status  int
	Code    string
	Message string
}

func (e *AppError) Error() string { return e.Message }

var (
	ErrValidationFailed = &AppError{http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed"}
	ErrResourceNotFound = &AppError{http.StatusNotFound, "RESOURCE_NOT_FOUND", "Resource not found"}
	ErrInternalError    = &AppError{http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"}

	ErrAccountNotFound      = &AppError{http.StatusUnprocessableEntity, "ACCOUNT_NOT_FOUND", "Account not found"}
	ErrSystemAccountMissing = &AppError{http.StatusUnprocessableEntity, "SYSTEM_ACCOUNT_MISSING", "Required system account is not configured; set up the chart of accounts"}
	ErrUnbalancedEntry      = &AppError{http.StatusUnprocessableEntity, "UNBALANCED_ENTRY", "Generated entries do not balance"}
	ErrUnsupportedDocType   = &AppError{http.StatusBadRequest, "UNSUPPORTED_DOCUMENT_TYPE", "Document type cannot be posted"}
	ErrVersionConflict      = &AppError{http.StatusConflict, "VERSION_CONFLICT", "Resource was modified concurrently, please retry"}
	ErrInvalidAmount        = &AppError{http.StatusUnprocessableEntity, "INVALID_AMOUNT", "Entry amounts must be non-negative, with debit or credit but not both"}
	ErrDocumentNotDraft     = &AppError{http.StatusConflict, "DOCUMENT_NOT_DRAFT", "Document has already been posted or voided"}
)
