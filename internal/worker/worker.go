package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ticketdesk/backend/internal/worker/domain"
	"github.com/ticketdesk/backend/internal/worker/storage"
	"github.com/ticketdesk/backend/shared/postgresql"
	"github.com/ticketdesk/backend/shared/rabbitmq"
)

// JobStore is the persistence surface the import processor needs.
type JobStore interface {
	GetImportJob(ctx context.Context, jobID string) (*domain.ImportJob, error)
	MarkJobProcessing(ctx context.Context, jobID string) error
	MarkJobTerminal(ctx context.Context, jobID, status string) error
	InsertTickets(ctx context.Context, records []domain.TicketRecord) (int, error)
}

// ObjectStore fetches staged payload bytes from blob storage.
type ObjectStore interface {
	Get(ctx context.Context, bucket, key string) ([]byte, error)
}

// Config holds worker configuration
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	ObjectStore   ObjectStore
	Concurrency   int
	PrefetchCount int
	JobTimeout    time.Duration
}

// Worker consumes dispatch messages and runs the import pipeline.
type Worker struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	store         JobStore
	objects       ObjectStore
	workerID      string
	concurrency   int
	prefetchCount int
	jobTimeout    time.Duration
	jobsChan      chan *domain.JobMessage
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

// NewWorker creates a new worker instance
func NewWorker(cfg *Config) *Worker {
	return &Worker{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		store:         storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		objects:       cfg.ObjectStore,
		workerID:      fmt.Sprintf("import-worker-%s", uuid.New().String()[:8]),
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		jobTimeout:    cfg.JobTimeout,
		jobsChan:      make(chan *domain.JobMessage, cfg.Concurrency),
		stopChan:      make(chan struct{}),
	}
}

// Start begins consuming and processing import jobs. Blocks until the
// context is canceled.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("Starting import worker",
		slog.String("worker_id", w.workerID),
		slog.Int("concurrency", w.concurrency),
		slog.Duration("job_timeout", w.jobTimeout),
	)

	deliveries, err := w.setupConsumer(ctx)
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	w.spawnWorkerPool(ctx)
	go w.startMessageDispatcher(ctx, deliveries)

	<-ctx.Done()
	w.logger.Info("Worker context canceled, stopping...")

	return nil
}

// Stop gracefully stops the worker
func (w *Worker) Stop() {
	w.logger.Info("Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("Worker stopped")
}
