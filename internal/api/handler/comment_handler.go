package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ticketdesk/backend/internal/api/dto"
	"github.com/ticketdesk/backend/internal/api/model"
)

// CreateComment handles POST /tickets/:ticket_id/comments
func (h *TicketHandler) CreateComment(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	ticketID := c.Param("ticket_id")
	if _, err := uuid.Parse(ticketID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id must be a valid UUID"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	// Comments hang off an existing ticket only.
	if _, err := h.storage.GetTicketByID(c.Request.Context(), ticketID); err != nil {
		respondError(c, err)
		return
	}

	comment := model.Comment{
		ID:        uuid.New().String(),
		TicketID:  ticketID,
		UserID:    req.UserID,
		Content:   req.Content,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.storage.CreateComment(c.Request.Context(), &comment); err != nil {
		h.logger.Error("Failed to create comment",
			slog.String("ticket_id", ticketID),
			slog.String("error", err.Error()),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, commentToDTO(&comment))
}

// ListComments handles GET /tickets/:ticket_id/comments
func (h *TicketHandler) ListComments(c *gin.Context) {
	if _, ok := principalFromContext(c); !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	ticketID := c.Param("ticket_id")
	if _, err := uuid.Parse(ticketID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id must be a valid UUID"})
		return
	}

	comments, err := h.storage.ListCommentsByTicket(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.CommentDTO, len(comments))
	for i := range comments {
		resp[i] = commentToDTO(&comments[i])
	}

	c.JSON(http.StatusOK, resp)
}

func commentToDTO(m *model.Comment) dto.CommentDTO {
	return dto.CommentDTO{
		ID:        m.ID,
		TicketID:  m.TicketID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.Format(time.RFC3339),
	}
}
