package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketdesk/backend/internal/api/bulk"
	"github.com/ticketdesk/backend/internal/api/domain"
	"github.com/ticketdesk/backend/internal/api/dto"
)

type fakeSubmitter struct {
	result    *bulk.SubmitResult
	err       error
	gotItems  []dto.BulkTicketItem
	gotCaller domain.Principal
}

func (f *fakeSubmitter) Submit(_ context.Context, principal domain.Principal, items []dto.BulkTicketItem) (*bulk.SubmitResult, error) {
	f.gotCaller = principal
	f.gotItems = items
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newBulkTestRouter(submitter BulkSubmitter, principal *domain.Principal) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewTicketHandler(&Dependencies{
		Logger:    slog.New(slog.DiscardHandler),
		Submitter: submitter,
	})

	r := gin.New()
	r.POST("/tickets/bulk", func(c *gin.Context) {
		if principal != nil {
			c.Set(PrincipalContextKey, *principal)
		}
		h.BulkCreateTickets(c)
	})
	return r
}

func postBulk(t *testing.T, r *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/tickets/bulk", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func validBulkBody(n int) []map[string]any {
	items := make([]map[string]any, n)
	for i := range items {
		items[i] = map[string]any{
			"reporter_name":  "Reporter",
			"reporter_email": "reporter@example.com",
			"description":    "laptop will not boot",
		}
	}
	return items
}

func TestBulkCreateTickets_Success(t *testing.T) {
	submitter := &fakeSubmitter{result: &bulk.SubmitResult{
		JobID:           "6f1f0c7a-0000-4000-8000-00000000abcd",
		Status:          "queued",
		PayloadLocation: "s3://ticketdesk-imports/tickets/abc.json",
	}}
	principal := domain.Principal{
		UserID: "8c2f1f9e-0000-4000-8000-000000000001",
		Roles:  []domain.Role{domain.RoleManager},
	}
	r := newBulkTestRouter(submitter, &principal)

	w := postBulk(t, r, validBulkBody(2))
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.BulkCreateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "bulk ticket job queued", resp.Msg)
	assert.Equal(t, submitter.result.JobID, resp.JobID)
	assert.Equal(t, submitter.result.PayloadLocation, resp.S3URL)

	assert.Equal(t, principal.UserID, submitter.gotCaller.UserID)
	assert.Len(t, submitter.gotItems, 2)
}

func TestBulkCreateTickets_Unauthenticated(t *testing.T) {
	submitter := &fakeSubmitter{}
	r := newBulkTestRouter(submitter, nil)

	w := postBulk(t, r, validBulkBody(1))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, submitter.gotItems, "submitter must not run without a principal")
}

func TestBulkCreateTickets_Forbidden(t *testing.T) {
	submitter := &fakeSubmitter{err: domain.ErrForbidden}
	principal := domain.Principal{
		UserID: "8c2f1f9e-0000-4000-8000-000000000002",
		Roles:  []domain.Role{domain.RoleSupport},
	}
	r := newBulkTestRouter(submitter, &principal)

	w := postBulk(t, r, validBulkBody(1))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestBulkCreateTickets_ValidationFailures(t *testing.T) {
	principal := domain.Principal{
		UserID: "8c2f1f9e-0000-4000-8000-000000000001",
		Roles:  []domain.Role{domain.RoleManager},
	}

	tests := []struct {
		name string
		body any
	}{
		{name: "empty batch", body: []map[string]any{}},
		{name: "not an array", body: map[string]any{"reporter_name": "x"}},
		{
			name: "missing reporter email",
			body: []map[string]any{{
				"reporter_name": "Reporter",
				"description":   "no email given",
			}},
		},
		{
			name: "malformed email",
			body: []map[string]any{{
				"reporter_name":  "Reporter",
				"reporter_email": "not-an-email",
				"description":    "bad address",
			}},
		},
		{
			name: "assigned_to_id not a uuid",
			body: []map[string]any{{
				"reporter_name":  "Reporter",
				"reporter_email": "reporter@example.com",
				"description":    "bad assignee",
				"assigned_to_id": "42",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			submitter := &fakeSubmitter{}
			r := newBulkTestRouter(submitter, &principal)

			w := postBulk(t, r, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
			assert.Nil(t, submitter.gotItems, "invalid batches never reach the orchestrator")
		})
	}
}

func TestBulkCreateTickets_SubmissionFailure(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("broker down")}
	principal := domain.Principal{
		UserID: "8c2f1f9e-0000-4000-8000-000000000001",
		Roles:  []domain.Role{domain.RoleManager},
	}
	r := newBulkTestRouter(submitter, &principal)

	w := postBulk(t, r, validBulkBody(1))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
