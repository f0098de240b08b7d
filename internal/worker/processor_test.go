package worker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ticketdesk/backend/internal/worker/domain"
)

type fakeJobStore struct {
	job *domain.ImportJob

	getErr        error
	processingErr error
	terminalErr   error
	insertErr     error

	statusLog []string
	inserted  [][]domain.TicketRecord
}

func (f *fakeJobStore) GetImportJob(_ context.Context, jobID string) (*domain.ImportJob, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.job == nil || f.job.ID != jobID {
		return nil, domain.ErrJobNotFound
	}
	cp := *f.job
	return &cp, nil
}

func (f *fakeJobStore) MarkJobProcessing(_ context.Context, jobID string) error {
	if f.processingErr != nil {
		return f.processingErr
	}
	f.statusLog = append(f.statusLog, domain.JobStatusProcessing)
	f.job.Status = domain.JobStatusProcessing
	return nil
}

func (f *fakeJobStore) MarkJobTerminal(_ context.Context, jobID, status string) error {
	if f.terminalErr != nil {
		return f.terminalErr
	}
	f.statusLog = append(f.statusLog, status)
	f.job.Status = status
	return nil
}

func (f *fakeJobStore) InsertTickets(_ context.Context, records []domain.TicketRecord) (int, error) {
	if f.insertErr != nil {
		return 0, f.insertErr
	}
	f.inserted = append(f.inserted, records)
	return len(records), nil
}

type fakeObjectStore struct {
	objects map[string][]byte
	err     error
}

func (f *fakeObjectStore) Get(_ context.Context, bucket, key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return body, nil
}

const testJobID = "6f1f0c7a-0000-4000-8000-00000000abcd"

func validPayload(t *testing.T, n int) []byte {
	t.Helper()
	records := make([]domain.TicketRecord, n)
	for i := range records {
		records[i] = domain.TicketRecord{
			ReporterName:  "Reporter",
			ReporterEmail: "reporter@example.com",
			Description:   "vpn keeps dropping",
		}
	}
	body, err := json.Marshal(records)
	require.NoError(t, err)
	return body
}

func newTestWorker(store JobStore, objects ObjectStore) *Worker {
	return &Worker{
		logger:     slog.New(slog.DiscardHandler),
		store:      store,
		objects:    objects,
		workerID:   "import-worker-test",
		jobTimeout: time.Second,
	}
}

func pendingJob(location string) *domain.ImportJob {
	return &domain.ImportJob{
		ID:              testJobID,
		CreatedBy:       "8c2f1f9e-0000-4000-8000-000000000001",
		PayloadLocation: location,
		Status:          domain.JobStatusPending,
	}
}

func TestProcessJob_Success(t *testing.T) {
	store := &fakeJobStore{job: pendingJob("s3://imports/tickets/batch.json")}
	objects := &fakeObjectStore{objects: map[string][]byte{
		"imports/tickets/batch.json": validPayload(t, 3),
	}}
	w := newTestWorker(store, objects)

	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	require.NoError(t, err)

	assert.Equal(t, []string{domain.JobStatusProcessing, domain.JobStatusCompleted}, store.statusLog)
	require.Len(t, store.inserted, 1)
	assert.Len(t, store.inserted[0], 3)
}

func TestProcessJob_StaleMessageIsDropped(t *testing.T) {
	store := &fakeJobStore{}
	w := newTestWorker(store, &fakeObjectStore{})

	// A nil return acks the message; the job row no longer exists.
	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	assert.NoError(t, err)
	assert.Empty(t, store.statusLog)
}

func TestProcessJob_LoadFailurePropagates(t *testing.T) {
	store := &fakeJobStore{getErr: errors.New("db unreachable")}
	w := newTestWorker(store, &fakeObjectStore{})

	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	require.Error(t, err)
	assert.Empty(t, store.statusLog, "no status transition before the job loads")
}

func TestProcessJob_InvalidLocatorFailsJob(t *testing.T) {
	store := &fakeJobStore{job: pendingJob("not-a-locator")}
	w := newTestWorker(store, &fakeObjectStore{})

	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidLocator)
	assert.Equal(t, []string{domain.JobStatusProcessing, domain.JobStatusFailed}, store.statusLog)
}

func TestProcessJob_MissingObjectFailsJob(t *testing.T) {
	store := &fakeJobStore{job: pendingJob("s3://imports/tickets/gone.json")}
	w := newTestWorker(store, &fakeObjectStore{objects: map[string][]byte{}})

	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	require.Error(t, err)
	assert.Equal(t, domain.JobStatusFailed, store.job.Status)
	assert.Empty(t, store.inserted, "no tickets inserted when the payload is unreachable")
}

func TestProcessJob_MalformedPayloadFailsJob(t *testing.T) {
	store := &fakeJobStore{job: pendingJob("s3://imports/tickets/bad.json")}
	objects := &fakeObjectStore{objects: map[string][]byte{
		"imports/tickets/bad.json": []byte("{not json"),
	}}
	w := newTestWorker(store, objects)

	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	assert.Equal(t, domain.JobStatusFailed, store.job.Status)
}

func TestProcessJob_InsertFailureFailsJob(t *testing.T) {
	store := &fakeJobStore{
		job:       pendingJob("s3://imports/tickets/batch.json"),
		insertErr: errors.New("constraint violation"),
	}
	objects := &fakeObjectStore{objects: map[string][]byte{
		"imports/tickets/batch.json": validPayload(t, 2),
	}}
	w := newTestWorker(store, objects)

	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	require.Error(t, err)
	assert.Equal(t, []string{domain.JobStatusProcessing, domain.JobStatusFailed}, store.statusLog)
}

func TestProcessJob_TerminalWriteFailurePropagates(t *testing.T) {
	store := &fakeJobStore{
		job:         pendingJob("s3://imports/tickets/batch.json"),
		terminalErr: errors.New("db write failed"),
	}
	objects := &fakeObjectStore{objects: map[string][]byte{
		"imports/tickets/batch.json": validPayload(t, 1),
	}}
	w := newTestWorker(store, objects)

	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	require.Error(t, err)
	// Tickets landed but the row is stuck in PROCESSING.
	assert.Len(t, store.inserted, 1)
	assert.Equal(t, domain.JobStatusProcessing, store.job.Status)
}

// deadlineJobStore refuses writes once the supplied context has expired, the
// way a real database driver would.
type deadlineJobStore struct {
	*fakeJobStore
}

func (s *deadlineJobStore) GetImportJob(ctx context.Context, jobID string) (*domain.ImportJob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.fakeJobStore.GetImportJob(ctx, jobID)
}

func (s *deadlineJobStore) MarkJobProcessing(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fakeJobStore.MarkJobProcessing(ctx, jobID)
}

func (s *deadlineJobStore) MarkJobTerminal(ctx context.Context, jobID, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fakeJobStore.MarkJobTerminal(ctx, jobID, status)
}

func (s *deadlineJobStore) InsertTickets(ctx context.Context, records []domain.TicketRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.fakeJobStore.InsertTickets(ctx, records)
}

// stalledObjectStore never returns until the caller's deadline fires.
type stalledObjectStore struct{}

func (stalledObjectStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestProcessJob_TimeoutStillEndsFailed(t *testing.T) {
	inner := &fakeJobStore{job: pendingJob("s3://imports/tickets/slow.json")}
	store := &deadlineJobStore{fakeJobStore: inner}
	w := newTestWorker(store, stalledObjectStore{})
	w.jobTimeout = 50 * time.Millisecond

	err := w.processJob(context.Background(), &domain.JobMessage{JobID: testJobID})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// The timeout kills the fetch, not the terminal status write.
	assert.Equal(t, []string{domain.JobStatusProcessing, domain.JobStatusFailed}, inner.statusLog)
	assert.Equal(t, domain.JobStatusFailed, inner.job.Status)
}

func TestProcessJob_RedeliveryDuplicatesTickets(t *testing.T) {
	store := &fakeJobStore{job: pendingJob("s3://imports/tickets/batch.json")}
	objects := &fakeObjectStore{objects: map[string][]byte{
		"imports/tickets/batch.json": validPayload(t, 2),
	}}
	w := newTestWorker(store, objects)

	msg := &domain.JobMessage{JobID: testJobID}
	require.NoError(t, w.processJob(context.Background(), msg))
	require.NoError(t, w.processJob(context.Background(), msg))

	// No status guard: a redelivered message reprocesses a COMPLETED job and
	// inserts the batch a second time.
	assert.Len(t, store.inserted, 2)
	assert.Equal(t, domain.JobStatusCompleted, store.job.Status)
}
