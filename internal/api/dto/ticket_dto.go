package dto

type CreateTicketRequest struct {
	ReporterName  string `json:"reporter_name" binding:"required,min=1,max=100"`
	ReporterEmail string `json:"reporter_email" binding:"required,email"`
	Description   string `json:"description" binding:"required,min=1,max=500"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignTicketRequest struct {
	AssignedToID string `json:"assigned_to_id" binding:"required,uuid"`
}

type ListTicketsRequest struct {
	AssignedToID string `form:"assigned_to_id"`
	Status       string `form:"status"`
}

type TicketDTO struct {
	ID            string `json:"id"`
	ReporterName  string `json:"reporter_name"`
	ReporterEmail string `json:"reporter_email"`
	Description   string `json:"description"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
	AssignedToID  string `json:"assigned_to_id,omitempty"`
}

// BulkCreateRequest is the body of POST /tickets/bulk: an ordered batch of
// ticket records, each validated with the same rules as interactive creation.
type BulkCreateRequest []BulkTicketItem

type BulkTicketItem struct {
	ReporterName  string `json:"reporter_name" binding:"required,min=1,max=100"`
	ReporterEmail string `json:"reporter_email" binding:"required,email"`
	Description   string `json:"description" binding:"required,min=1,max=500"`
	AssignedToID  string `json:"assigned_to_id,omitempty" binding:"omitempty,uuid"`
}

type BulkCreateResponse struct {
	Msg   string `json:"msg"`
	JobID string `json:"job_id"`
	S3URL string `json:"s3_url"`
}
