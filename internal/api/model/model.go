package model

import (
	"database/sql"
	"time"
)

type Ticket struct {
	ID            string         `db:"id"`
	ReporterName  string         `db:"reporter_name"`
	ReporterEmail string         `db:"reporter_email"`
	Description   string         `db:"description"`
	Status        string         `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	AssignedToID  sql.NullString `db:"assigned_to_id"`
}

// ImportJob tracks one bulk-ticket-submission attempt. PayloadLocation stays
// empty until the batch has been staged to blob storage.
type ImportJob struct {
	ID              string       `db:"id"`
	CreatedBy       string       `db:"created_by"`
	PayloadLocation string       `db:"payload_location"`
	Status          string       `db:"status"`
	CreatedAt       time.Time    `db:"created_at"`
	UpdatedAt       time.Time    `db:"updated_at"`
	ProcessedAt     sql.NullTime `db:"processed_at"`
}

type User struct {
	ID            string       `db:"id"`
	SubjectID     string       `db:"subject_id"`
	Name          string       `db:"name"`
	Email         string       `db:"email"`
	Role          string       `db:"role"`
	CreatedAt     time.Time    `db:"created_at"`
	DeactivatedAt sql.NullTime `db:"deactivated_at"`
}

type Comment struct {
	ID        string    `db:"id"`
	TicketID  string    `db:"ticket_id"`
	UserID    string    `db:"user_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}
