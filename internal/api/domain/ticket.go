package domain

// Ticket lifecycle statuses.
const (
	TicketStatusNew        = "new"
	TicketStatusTriaging   = "triaging"
	TicketStatusInProgress = "in_progress"
	TicketStatusInReview   = "in_review"
	TicketStatusDone       = "done"
	TicketStatusClosed     = "closed"
)

// ValidTicketStatus reports whether s is a member of the ticket lifecycle.
func ValidTicketStatus(s string) bool {
	switch s {
	case TicketStatusNew, TicketStatusTriaging, TicketStatusInProgress,
		TicketStatusInReview, TicketStatusDone, TicketStatusClosed:
		return true
	}
	return false
}

// Import job lifecycle statuses. PENDING and PROCESSING are transient;
// COMPLETED and FAILED are absorbing.
const (
	JobStatusPending    = "PENDING"
	JobStatusProcessing = "PROCESSING"
	JobStatusCompleted  = "COMPLETED"
	JobStatusFailed     = "FAILED"
)
