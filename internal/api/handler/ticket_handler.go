package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ticketdesk/backend/internal/api/domain"
	"github.com/ticketdesk/backend/internal/api/dto"
	"github.com/ticketdesk/backend/internal/api/model"
	"github.com/ticketdesk/backend/internal/api/storage"
)

// CreateTicket handles POST /tickets
func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var req dto.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	now := time.Now().UTC()
	ticket := model.Ticket{
		ID:            uuid.New().String(),
		ReporterName:  req.ReporterName,
		ReporterEmail: req.ReporterEmail,
		Description:   req.Description,
		Status:        domain.TicketStatusNew,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := h.storage.CreateTicket(c.Request.Context(), &ticket); err != nil {
		h.logger.Error("Failed to create ticket", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	h.logger.Info("Ticket created",
		slog.String("ticket_id", ticket.ID),
		slog.String("reporter_email", ticket.ReporterEmail),
	)

	c.JSON(http.StatusOK, ticketToDTO(&ticket))
}

// GetTicket handles GET /tickets/:ticket_id
func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticketID := c.Param("ticket_id")
	if _, err := uuid.Parse(ticketID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id must be a valid UUID"})
		return
	}

	ticket, err := h.storage.GetTicketByID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticketToDTO(ticket))
}

// ListTickets handles GET /tickets
func (h *TicketHandler) ListTickets(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := domain.Authorize(principal.Roles, domain.RoleAdmin, domain.RoleSupport, domain.RoleManager); err != nil {
		respondError(c, err)
		return
	}

	var req dto.ListTicketsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	tickets, err := h.storage.ListTickets(c.Request.Context(), storage.TicketFilter{
		AssignedToID: req.AssignedToID,
		Status:       req.Status,
	})
	if err != nil {
		h.logger.Error("Failed to list tickets", slog.String("error", err.Error()))
		respondError(c, err)
		return
	}

	resp := make([]dto.TicketDTO, len(tickets))
	for i := range tickets {
		resp[i] = ticketToDTO(&tickets[i])
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTicketStatus handles PATCH /tickets/:ticket_id/status. Only the
// assigned user may move a ticket through its lifecycle.
func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := domain.Authorize(principal.Roles, domain.RoleSupport, domain.RoleManager); err != nil {
		respondError(c, err)
		return
	}

	ticketID := c.Param("ticket_id")
	if _, err := uuid.Parse(ticketID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id must be a valid UUID"})
		return
	}

	var req dto.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if !domain.ValidTicketStatus(req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "unknown ticket status"})
		return
	}

	ticket, err := h.storage.GetTicketByID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	if !ticket.AssignedToID.Valid {
		respondError(c, domain.ErrTicketUnassigned)
		return
	}
	if ticket.AssignedToID.String != principal.UserID {
		respondError(c, domain.ErrNotAssignee)
		return
	}

	if err := h.storage.UpdateTicketStatus(c.Request.Context(), ticketID, req.Status); err != nil {
		h.logger.Error("Failed to update ticket status",
			slog.String("ticket_id", ticketID),
			slog.String("error", err.Error()),
		)
		respondError(c, err)
		return
	}

	ticket.Status = req.Status
	ticket.UpdatedAt = time.Now().UTC()
	c.JSON(http.StatusOK, ticketToDTO(ticket))
}

// AssignTicket handles PATCH /tickets/:ticket_id/assign
func (h *TicketHandler) AssignTicket(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := domain.Authorize(principal.Roles, domain.RoleAdmin, domain.RoleManager); err != nil {
		respondError(c, err)
		return
	}

	ticketID := c.Param("ticket_id")
	if _, err := uuid.Parse(ticketID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id must be a valid UUID"})
		return
	}

	var req dto.AssignTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	if err := h.storage.AssignTicket(c.Request.Context(), ticketID, req.AssignedToID); err != nil {
		respondError(c, err)
		return
	}

	ticket, err := h.storage.GetTicketByID(c.Request.Context(), ticketID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticketToDTO(ticket))
}

func ticketToDTO(t *model.Ticket) dto.TicketDTO {
	d := dto.TicketDTO{
		ID:            t.ID,
		ReporterName:  t.ReporterName,
		ReporterEmail: t.ReporterEmail,
		Description:   t.Description,
		Status:        t.Status,
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     t.UpdatedAt.Format(time.RFC3339),
	}
	if t.AssignedToID.Valid {
		d.AssignedToID = t.AssignedToID.String
	}
	return d
}
