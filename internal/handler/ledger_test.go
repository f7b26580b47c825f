package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbooks-dev/openbooks/internal/domain"
)

type mockPostingService struct {
	entries []domain.GLEntry
	err     error
}

func (m *mockPostingService) Post(_ context.Context, _ domain.DocType, _ uuid.UUID) ([]domain.GLEntry, error) {
	return m.entries, m.err
}

func (m *mockPostingService) Void(_ context.Context, _ domain.DocType, _ uuid.UUID) (int, error) {
	return 0, m.err
}

func (m *mockPostingService) SetStatus(_ context.Context, _ domain.DocType, _ uuid.UUID, _ domain.DocStatus) error {
	return nil
}

func (m *mockPostingService) ValidateBalance(_ context.Context) (bool, error) {
	return true, nil
}

func TestLedgerHandlerPost(t *testing.T) {
	tests := []struct {
		name       string
		docID      string
		svcErr     error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "posted draft",
			docID:      uuid.NewString(),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed id",
			docID:      "not-a-uuid",
			wantStatus: http.StatusBadRequest,
			wantCode:   "VALIDATION_FAILED",
		},
		{
			name:       "already posted",
			docID:      uuid.NewString(),
			svcErr:     fmt.Errorf("Post: invoice is posted: %w", domain.ErrDocumentNotDraft),
			wantStatus: http.StatusConflict,
			wantCode:   "DOCUMENT_NOT_DRAFT",
		},
		{
			name:       "bad entry amount",
			docID:      uuid.NewString(),
			svcErr:     fmt.Errorf("Post: Validate: entry 0: %w", domain.ErrInvalidAmount),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INVALID_AMOUNT",
		},
		{
			name:       "unknown document",
			docID:      uuid.NewString(),
			svcErr:     fmt.Errorf("Post: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "RESOURCE_NOT_FOUND",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockPostingService{err: tc.svcErr}
			h := NewLedgerHandler(svc, nil, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/invoice/"+tc.docID+"/post", nil)
			req.SetPathValue("type", "invoice")
			req.SetPathValue("id", tc.docID)
			rr := httptest.NewRecorder()

			h.Post(rr, req)

			assert.Equal(t, tc.wantStatus, rr.Code)

			var resp APIResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

			if tc.wantCode == "" {
				assert.True(t, resp.Success)
			} else {
				assert.False(t, resp.Success)
				require.NotNil(t, resp.Error)
				assert.Equal(t, tc.wantCode, resp.Error.Code)
			}
		})
	}
}

func TestLedgerHandlerPost_MalformedIDDetails(t *testing.T) {
	h := NewLedgerHandler(&mockPostingService{}, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/invoice/xyz/post", nil)
	req.SetPathValue("type", "invoice")
	req.SetPathValue("id", "xyz")
	rr := httptest.NewRecorder()

	h.Post(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)

	var fields []FieldError
	raw, err := json.Marshal(resp.Error.Details)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &fields))
	require.Len(t, fields, 1)
	assert.Equal(t, "id", fields[0].Field)
}
