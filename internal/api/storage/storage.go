package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/ticketdesk/backend/internal/api/domain"
	"github.com/ticketdesk/backend/internal/api/model"
	"github.com/ticketdesk/backend/shared/postgresql"
)

type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
	}
}

func (s *Storage) CreateTicket(ctx context.Context, ticket *model.Ticket) error {
	query := `
		INSERT INTO tickets (
			id, reporter_name, reporter_email, description,
			status, created_at, updated_at, assigned_to_id
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7, $8
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		ticket.ID,
		ticket.ReporterName,
		ticket.ReporterEmail,
		ticket.Description,
		ticket.Status,
		ticket.CreatedAt,
		ticket.UpdatedAt,
		ticket.AssignedToID,
	)

	if err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	return nil
}

func (s *Storage) GetTicketByID(ctx context.Context, ticketID string) (*model.Ticket, error) {
	var ticket model.Ticket
	query := `
		SELECT
			id, reporter_name, reporter_email, description,
			status, created_at, updated_at, assigned_to_id
		FROM tickets
		WHERE id = $1
	`

	err := s.db.GetContext(ctx, &ticket, query, ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	return &ticket, nil
}

type TicketFilter struct {
	AssignedToID string
	Status       string
}

func (s *Storage) ListTickets(ctx context.Context, filter TicketFilter) ([]model.Ticket, error) {
	query := `
		SELECT
			id, reporter_name, reporter_email, description,
			status, created_at, updated_at, assigned_to_id
		FROM tickets
		WHERE 1=1
	`
	args := []interface{}{}
	argIdx := 1

	if filter.AssignedToID != "" {
		query += fmt.Sprintf(" AND assigned_to_id = $%d", argIdx)
		args = append(args, filter.AssignedToID)
		argIdx++
	}

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filter.Status)
		argIdx++
	}

	query += " ORDER BY created_at DESC, id DESC"

	var tickets []model.Ticket
	err := s.db.SelectContext(ctx, &tickets, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	return tickets, nil
}

func (s *Storage) UpdateTicketStatus(ctx context.Context, ticketID, status string) error {
	query := `
		UPDATE tickets
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, status, ticketID)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrTicketNotFound
	}

	return nil
}

func (s *Storage) AssignTicket(ctx context.Context, ticketID, userID string) error {
	query := `
		UPDATE tickets
		SET assigned_to_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := s.db.ExecContext(ctx, query, userID, ticketID)
	if err != nil {
		return fmt.Errorf("failed to assign ticket: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrTicketNotFound
	}

	return nil
}
