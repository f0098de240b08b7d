package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/ticketdesk/backend/internal/worker/domain"
)

// Storage handles all database operations for the import worker.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// GetImportJob retrieves an import job by its id.
func (s *Storage) GetImportJob(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	query := `
		SELECT id, created_by, payload_location, status
		FROM ticket_import_jobs
		WHERE id = $1
	`

	var job domain.ImportJob
	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.ID,
		&job.CreatedBy,
		&job.PayloadLocation,
		&job.Status,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get import job: %w", err)
	}

	return &job, nil
}

// MarkJobProcessing moves a job into PROCESSING. There is no status guard:
// a redelivered message for a finished job re-enters PROCESSING and will be
// ingested again (at-least-once semantics, see the regression tests).
func (s *Storage) MarkJobProcessing(ctx context.Context, jobID string) error {
	query := `
		UPDATE ticket_import_jobs
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, domain.JobStatusProcessing, jobID)
	if err != nil {
		return fmt.Errorf("failed to mark job processing: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}

	s.logger.Info("Job marked processing",
		slog.String("job_id", jobID),
	)

	return nil
}

// MarkJobTerminal writes a terminal status together with processed_at.
func (s *Storage) MarkJobTerminal(ctx context.Context, jobID, status string) error {
	query := `
		UPDATE ticket_import_jobs
		SET status = $1, processed_at = NOW(), updated_at = NOW()
		WHERE id = $2
	`

	_, err := s.db.ExecContext(ctx, query, status, jobID)
	if err != nil {
		return fmt.Errorf("failed to mark job %s: %w", status, err)
	}

	s.logger.Info("Job status updated",
		slog.String("job_id", jobID),
		slog.String("status", status),
	)

	return nil
}

// InsertTickets inserts the whole batch in a single transaction. A mid-batch
// failure rolls everything back; there is never a partial commit.
func (s *Storage) InsertTickets(ctx context.Context, records []domain.TicketRecord) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tickets (
			id, reporter_name, reporter_email, description,
			status, created_at, updated_at, assigned_to_id
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		)
	`

	now := time.Now().UTC()
	for i, record := range records {
		var assignedTo sql.NullString
		if record.AssignedToID != "" {
			assignedTo = sql.NullString{String: record.AssignedToID, Valid: true}
		}

		_, err := tx.ExecContext(
			ctx,
			query,
			uuid.New().String(),
			record.ReporterName,
			record.ReporterEmail,
			record.Description,
			"new",
			now,
			now,
			assignedTo,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert ticket %d of %d: %w", i+1, len(records), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit ticket batch: %w", err)
	}

	return len(records), nil
}
