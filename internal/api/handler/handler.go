package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketdesk/backend/internal/api/bulk"
	"github.com/ticketdesk/backend/internal/api/domain"
	"github.com/ticketdesk/backend/internal/api/dto"
	"github.com/ticketdesk/backend/internal/api/storage"
)

// PrincipalContextKey is where the auth middleware stores the authenticated
// principal on the gin context.
const PrincipalContextKey = "principal"

// BulkSubmitter is the orchestrator surface the bulk endpoint depends on.
type BulkSubmitter interface {
	Submit(ctx context.Context, principal domain.Principal, items []dto.BulkTicketItem) (*bulk.SubmitResult, error)
}

// Dependencies holds all dependencies needed by handlers
type Dependencies struct {
	Logger    *slog.Logger
	Storage   *storage.Storage
	Submitter BulkSubmitter
}

// TicketHandler handles ticket-related HTTP requests
type TicketHandler struct {
	logger    *slog.Logger
	storage   *storage.Storage
	submitter BulkSubmitter
}

func NewTicketHandler(deps *Dependencies) *TicketHandler {
	return &TicketHandler{
		logger:    deps.Logger,
		storage:   deps.Storage,
		submitter: deps.Submitter,
	}
}

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	logger  *slog.Logger
	storage *storage.Storage
}

func NewUserHandler(deps *Dependencies) *UserHandler {
	return &UserHandler{
		logger:  deps.Logger,
		storage: deps.Storage,
	}
}

// principalFromContext retrieves the principal set by the auth middleware.
func principalFromContext(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(PrincipalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := v.(domain.Principal)
	return principal, ok
}

// respondError maps domain errors onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrForbidden),
		errors.Is(err, domain.ErrTicketUnassigned),
		errors.Is(err, domain.ErrNotAssignee):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrTicketNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
