package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ticketdesk/backend/internal/api/domain"
	"github.com/ticketdesk/backend/internal/api/dto"
)

// BulkCreateTickets handles POST /tickets/bulk. The request is acknowledged
// once the batch is staged and dispatched; ingestion happens asynchronously
// in the worker service.
func (h *TicketHandler) BulkCreateTickets(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req dto.BulkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if len(req) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "ticket batch is empty"})
		return
	}

	result, err := h.submitter.Submit(c.Request.Context(), principal, req)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			respondError(c, err)
			return
		}
		h.logger.Error("Bulk submission failed",
			slog.String("user_id", principal.UserID),
			slog.Int("ticket_count", len(req)),
			slog.String("error", err.Error()),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.BulkCreateResponse{
		Msg:   "bulk ticket job queued",
		JobID: result.JobID,
		S3URL: result.PayloadLocation,
	})
}

// GetImportJob handles GET /tickets/bulk/:job_id so callers can poll the
// status of a submitted batch.
func (h *TicketHandler) GetImportJob(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := domain.Authorize(principal.Roles, domain.RoleManager); err != nil {
		respondError(c, err)
		return
	}

	job, err := h.storage.GetImportJobByID(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resp := gin.H{
		"job_id":           job.ID,
		"status":           job.Status,
		"payload_location": job.PayloadLocation,
		"created_at":       job.CreatedAt,
		"updated_at":       job.UpdatedAt,
	}
	if job.ProcessedAt.Valid {
		resp["processed_at"] = job.ProcessedAt.Time
	}

	c.JSON(http.StatusOK, resp)
}
