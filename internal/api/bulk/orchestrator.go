package bulk

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/ticketdesk/backend/internal/api/domain"
	"github.com/ticketdesk/backend/internal/api/dto"
	"github.com/ticketdesk/backend/internal/api/model"
)

// JobStore is the slice of the persistence layer the orchestrator needs.
type JobStore interface {
	CreateImportJob(ctx context.Context, job *model.ImportJob) error
	SetImportJobPayloadLocation(ctx context.Context, jobID, location string) error
	DeleteImportJob(ctx context.Context, jobID string) error
}

// Stager writes a serialized ticket batch to durable blob storage and returns
// its locator. Each call writes a fresh object; keys are never reused.
type Stager interface {
	Stage(ctx context.Context, payload []byte) (string, error)
}

// Publisher enqueues a dispatch message with at-least-once semantics.
type Publisher interface {
	Publish(ctx context.Context, body []byte) error
}

// SubmissionError wraps the root cause of a failed bulk submission, after the
// partially created job row has been rolled back.
type SubmissionError struct {
	Step string
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("bulk submission failed at %s: %v", e.Step, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// dispatchMessage is the queue message body consumed by the import worker.
type dispatchMessage struct {
	JobID string `json:"job_id"`
	S3URL string `json:"s3_url"`
}

// SubmitResult acknowledges that a batch was accepted and dispatched. It is
// not a completion guarantee; the job finishes asynchronously.
type SubmitResult struct {
	JobID           string
	Status          string
	PayloadLocation string
}

// Orchestrator coordinates a bulk submission: persist a PENDING job, stage
// the batch to blob storage, attach the locator, enqueue the dispatch
// message. Any failure after the job row exists triggers a best-effort
// rollback of that row.
type Orchestrator struct {
	logger *slog.Logger
	jobs   JobStore
	stager Stager
	queue  Publisher
}

func NewOrchestrator(logger *slog.Logger, jobs JobStore, stager Stager, queue Publisher) *Orchestrator {
	return &Orchestrator{
		logger: logger,
		jobs:   jobs,
		stager: stager,
		queue:  queue,
	}
}

// Submit runs one bulk submission attempt. Only managers may submit.
func (o *Orchestrator) Submit(ctx context.Context, principal domain.Principal, items []dto.BulkTicketItem) (*SubmitResult, error) {
	if err := domain.Authorize(principal.Roles, domain.RoleManager); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	job := &model.ImportJob{
		ID:              uuid.New().String(),
		CreatedBy:       principal.UserID,
		PayloadLocation: "",
		Status:          domain.JobStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	// Nothing to compensate if this fails; no other side effect happened yet.
	if err := o.jobs.CreateImportJob(ctx, job); err != nil {
		return nil, &SubmissionError{Step: "job creation", Err: err}
	}

	o.logger.Info("Import job created",
		slog.String("job_id", job.ID),
		slog.String("created_by", principal.UserID),
		slog.Int("ticket_count", len(items)),
	)

	// Order is preserved; items were already schema-validated by the caller.
	payload, err := json.Marshal(items)
	if err != nil {
		o.rollback(ctx, job.ID)
		return nil, &SubmissionError{Step: "payload serialization", Err: err}
	}

	location, err := o.stager.Stage(ctx, payload)
	if err != nil {
		o.rollback(ctx, job.ID)
		return nil, &SubmissionError{Step: "staging", Err: err}
	}

	if err := o.jobs.SetImportJobPayloadLocation(ctx, job.ID, location); err != nil {
		o.rollback(ctx, job.ID)
		return nil, &SubmissionError{Step: "locator update", Err: err}
	}

	body, err := json.Marshal(dispatchMessage{JobID: job.ID, S3URL: location})
	if err != nil {
		o.rollback(ctx, job.ID)
		return nil, &SubmissionError{Step: "message encoding", Err: err}
	}

	// On dispatch failure the staged object is orphaned; cleanup is an
	// operational concern, not a correctness requirement.
	if err := o.queue.Publish(ctx, body); err != nil {
		o.rollback(ctx, job.ID)
		return nil, &SubmissionError{Step: "dispatch", Err: err}
	}

	o.logger.Info("Import job dispatched",
		slog.String("job_id", job.ID),
		slog.String("payload_location", location),
	)

	return &SubmitResult{
		JobID:           job.ID,
		Status:          "queued",
		PayloadLocation: location,
	}, nil
}

// rollback deletes the partially created job row. Failure here is logged and
// swallowed; the caller already has a root-cause error to report.
func (o *Orchestrator) rollback(ctx context.Context, jobID string) {
	if err := o.jobs.DeleteImportJob(ctx, jobID); err != nil {
		o.logger.Error("Failed to roll back import job",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		return
	}

	o.logger.Info("Import job rolled back",
		slog.String("job_id", jobID),
	)
}
