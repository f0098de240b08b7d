package dto

type CreateUserRequest struct {
	SubjectID string `json:"subject_id" binding:"required"`
	Name      string `json:"name" binding:"required,min=1,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role" binding:"required,oneof=support manager admin"`
}

type UserDTO struct {
	ID            string `json:"id"`
	SubjectID     string `json:"subject_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	CreatedAt     string `json:"created_at"`
	DeactivatedAt string `json:"deactivated_at,omitempty"`
}

type CreateCommentRequest struct {
	UserID  string `json:"user_id" binding:"required,uuid"`
	Content string `json:"content" binding:"required,min=1"`
}

type CommentDTO struct {
	ID        string `json:"id"`
	TicketID  string `json:"ticket_id"`
	UserID    string `json:"user_id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}
