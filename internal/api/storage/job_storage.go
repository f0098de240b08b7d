package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ticketdesk/backend/internal/api/domain"
	"github.com/ticketdesk/backend/internal/api/model"
)

func (s *Storage) CreateImportJob(ctx context.Context, job *model.ImportJob) error {
	query := `
		INSERT INTO ticket_import_jobs (
			id, created_by, payload_location, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		job.ID,
		job.CreatedBy,
		job.PayloadLocation,
		job.Status,
		job.CreatedAt,
		job.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create import job: %w", err)
	}

	return nil
}

func (s *Storage) SetImportJobPayloadLocation(ctx context.Context, jobID, location string) error {
	query := `
		UPDATE ticket_import_jobs
		SET payload_location = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, location, jobID)
	if err != nil {
		return fmt.Errorf("failed to set payload location: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrJobNotFound
	}

	return nil
}

// DeleteImportJob removes a partially created job row during submission
// rollback.
func (s *Storage) DeleteImportJob(ctx context.Context, jobID string) error {
	query := `DELETE FROM ticket_import_jobs WHERE id = $1`

	if _, err := s.db.ExecContext(ctx, query, jobID); err != nil {
		return fmt.Errorf("failed to delete import job: %w", err)
	}

	return nil
}

func (s *Storage) GetImportJobByID(ctx context.Context, jobID string) (*model.ImportJob, error) {
	var job model.ImportJob
	query := `
		SELECT id, created_by, payload_location, status, created_at, updated_at, processed_at
		FROM ticket_import_jobs
		WHERE id = $1
	`

	err := s.db.GetContext(ctx, &job, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get import job: %w", err)
	}

	return &job, nil
}
