package domain

import "errors"

var (
	// ErrForbidden is returned when a principal lacks every required role.
	ErrForbidden = errors.New("user not authorized")

	// ErrTicketNotFound is returned when a ticket id matches no row.
	ErrTicketNotFound = errors.New("ticket not found")

	// ErrTicketUnassigned is returned when a status change is attempted on a
	// ticket that has no assignee.
	ErrTicketUnassigned = errors.New("ticket not assigned to any user")

	// ErrNotAssignee is returned when a caller tries to change the status of
	// a ticket assigned to somebody else.
	ErrNotAssignee = errors.New("user not assigned to this ticket")

	// ErrUserNotFound is returned when a user id or email matches no row.
	ErrUserNotFound = errors.New("user not found")

	// ErrJobNotFound is returned when an import job id matches no row.
	ErrJobNotFound = errors.New("import job not found")
)
