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
)

// CreateUser handles POST /users. The identity provider account is managed
// externally; this only records the local row.
func (h *UserHandler) CreateUser(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := domain.Authorize(principal.Roles, domain.RoleAdmin, domain.RoleManager); err != nil {
		respondError(c, err)
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	user := model.User{
		ID:        uuid.New().String(),
		SubjectID: req.SubjectID,
		Name:      req.Name,
		Email:     req.Email,
		Role:      req.Role,
		CreatedAt: time.Now().UTC(),
	}

	if err := h.storage.CreateUser(c.Request.Context(), &user); err != nil {
		h.logger.Error("Failed to create user",
			slog.String("email", req.Email),
			slog.String("error", err.Error()),
		)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToDTO(&user))
}

// GetUserByEmail handles GET /users/:email
func (h *UserHandler) GetUserByEmail(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := domain.Authorize(principal.Roles, domain.RoleAdmin, domain.RoleManager); err != nil {
		respondError(c, err)
		return
	}

	user, err := h.storage.GetUserByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToDTO(user))
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := domain.Authorize(principal.Roles, domain.RoleAdmin, domain.RoleManager); err != nil {
		respondError(c, err)
		return
	}

	users, err := h.storage.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.UserDTO, len(users))
	for i := range users {
		resp[i] = userToDTO(&users[i])
	}

	c.JSON(http.StatusOK, resp)
}

// DeactivateUser handles PATCH /users/:user_id/deactivate
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	principal, ok := principalFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	if err := domain.Authorize(principal.Roles, domain.RoleAdmin, domain.RoleManager); err != nil {
		respondError(c, err)
		return
	}

	userID := c.Param("user_id")
	if _, err := uuid.Parse(userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be a valid UUID"})
		return
	}

	user, err := h.storage.DeactivateUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, userToDTO(user))
}

func userToDTO(u *model.User) dto.UserDTO {
	d := dto.UserDTO{
		ID:        u.ID,
		SubjectID: u.SubjectID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
	if u.DeactivatedAt.Valid {
		d.DeactivatedAt = u.DeactivatedAt.Time.Format(time.RFC3339)
	}
	return d
}
