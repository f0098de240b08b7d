package domain

// Import job statuses as stored in ticket_import_jobs. COMPLETED and FAILED
// are absorbing.
const (
	JobStatusPending    = "PENDING"
	JobStatusProcessing = "PROCESSING"
	JobStatusCompleted  = "COMPLETED"
	JobStatusFailed     = "FAILED"
)

// ImportJob is the worker-side view of a bulk import job.
type ImportJob struct {
	ID              string
	CreatedBy       string
	PayloadLocation string
	Status          string
}

// JobMessage is one dispatch-queue record.
type JobMessage struct {
	JobID       string `json:"job_id"`
	S3URL       string `json:"s3_url"`
	DeliveryTag uint64 `json:"-"`
}

// TicketRecord is one entry of a staged batch payload.
type TicketRecord struct {
	ReporterName  string `json:"reporter_name"`
	ReporterEmail string `json:"reporter_email"`
	Description   string `json:"description"`
	AssignedToID  string `json:"assigned_to_id,omitempty"`
}
