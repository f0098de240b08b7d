package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ticketdesk/backend/internal/worker/domain"
)

// processJob runs one import job end to end: load the job row, fetch the
// staged payload, ingest the batch, record the terminal status. A nil return
// acks the message; an error nacks it without requeue.
//
// There is deliberately no guard on the job's current status: a redelivered
// message for a COMPLETED or FAILED job is processed again and duplicates its
// tickets. Dedup beyond at-least-once semantics is not part of this design.
func (w *Worker) processJob(ctx context.Context, msg *domain.JobMessage) error {
	w.logger.Info("Processing import job",
		slog.String("job_id", msg.JobID),
		slog.String("worker_id", w.workerID),
	)

	// The timeout bounds the work only. Terminal status writes run on the
	// parent context so a job that times out mid-fetch still lands FAILED.
	jobCtx := ctx
	if w.jobTimeout > 0 {
		var cancel context.CancelFunc
		jobCtx, cancel = context.WithTimeout(ctx, w.jobTimeout)
		defer cancel()
	}

	job, err := w.store.GetImportJob(jobCtx, msg.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			// Stale or malformed message; drop it without escalation.
			w.logger.Warn("Import job not found, skipping message",
				slog.String("job_id", msg.JobID),
			)
			return nil
		}
		return fmt.Errorf("failed to load job: %w", err)
	}

	if err := w.store.MarkJobProcessing(jobCtx, job.ID); err != nil {
		return fmt.Errorf("failed to mark job processing: %w", err)
	}

	locator, err := domain.ParseLocator(job.PayloadLocation)
	if err != nil {
		return w.failJob(ctx, job.ID, err)
	}

	payload, err := w.objects.Get(jobCtx, locator.Bucket, locator.Key)
	if err != nil {
		return w.failJob(ctx, job.ID, fmt.Errorf("failed to fetch payload %s: %w", job.PayloadLocation, err))
	}

	var records []domain.TicketRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return w.failJob(ctx, job.ID, fmt.Errorf("%w: %v", domain.ErrInvalidPayload, err))
	}

	inserted, err := w.store.InsertTickets(jobCtx, records)
	if err != nil {
		return w.failJob(ctx, job.ID, fmt.Errorf("failed to insert ticket batch: %w", err))
	}

	if err := w.store.MarkJobTerminal(ctx, job.ID, domain.JobStatusCompleted); err != nil {
		// Tickets are in but the row is stuck in PROCESSING; surface the
		// write failure rather than pretend the job finished cleanly.
		return fmt.Errorf("failed to mark job completed: %w", err)
	}

	w.logger.Info("Import job completed",
		slog.String("job_id", job.ID),
		slog.Int("tickets_inserted", inserted),
	)

	return nil
}

// failJob durably records FAILED before propagating the root cause. Status
// durability takes priority: a failure of the status write itself is logged,
// and the original error still reaches the caller.
func (w *Worker) failJob(ctx context.Context, jobID string, cause error) error {
	if err := w.store.MarkJobTerminal(ctx, jobID, domain.JobStatusFailed); err != nil {
		w.logger.Error("Failed to mark job FAILED",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
	}

	return fmt.Errorf("job %s failed: %w", jobID, cause)
}
