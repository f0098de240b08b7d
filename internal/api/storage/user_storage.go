package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ticketdesk/backend/internal/api/domain"
	"github.com/ticketdesk/backend/internal/api/model"
)

func (s *Storage) CreateUser(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (
			id, subject_id, name, email, role, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.SubjectID,
		user.Name,
		user.Email,
		user.Role,
		user.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `
		SELECT id, subject_id, name, email, role, created_at, deactivated_at
		FROM users
		WHERE email = $1
	`

	err := s.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *Storage) ListUsers(ctx context.Context) ([]model.User, error) {
	query := `
		SELECT id, subject_id, name, email, role, created_at, deactivated_at
		FROM users
		ORDER BY created_at DESC
	`

	var users []model.User
	err := s.db.SelectContext(ctx, &users, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

func (s *Storage) DeactivateUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	query := `
		UPDATE users
		SET deactivated_at = NOW()
		WHERE id = $1
		RETURNING id, subject_id, name, email, role, created_at, deactivated_at
	`

	err := s.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to deactivate user: %w", err)
	}

	return &user, nil
}

func (s *Storage) CreateComment(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (
			id, ticket_id, user_id, content, created_at
		) VALUES (
			$1, $2, $3, $4, $5
		)
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		comment.ID,
		comment.TicketID,
		comment.UserID,
		comment.Content,
		comment.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (s *Storage) ListCommentsByTicket(ctx context.Context, ticketID string) ([]model.Comment, error) {
	query := `
		SELECT id, ticket_id, user_id, content, created_at
		FROM comments
		WHERE ticket_id = $1
		ORDER BY created_at ASC
	`

	var comments []model.Comment
	err := s.db.SelectContext(ctx, &comments, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}
