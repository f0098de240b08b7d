package bulk

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ticketdesk/backend/shared/blobstore"
	"github.com/ticketdesk/backend/shared/rabbitmq"
)

type objectPutter interface {
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// S3Stager stages ticket batches into an S3 bucket under a random key. The
// key derives from a fresh identifier rather than the job id so a retried
// submission can never collide with an earlier object.
type S3Stager struct {
	client objectPutter
	bucket string
	prefix string
}

func NewS3Stager(client *blobstore.Client, bucket, prefix string) *S3Stager {
	if prefix == "" {
		prefix = "tickets"
	}
	return &S3Stager{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

func (s *S3Stager) Stage(ctx context.Context, payload []byte) (string, error) {
	key := fmt.Sprintf("%s/%s.json", s.prefix, uuid.New().String())

	if err := s.client.Put(ctx, s.bucket, key, payload, "application/json"); err != nil {
		return "", fmt.Errorf("failed to stage payload: %w", err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}

// RabbitPublisher adapts the shared RabbitMQ client to the Publisher
// interface.
type RabbitPublisher struct {
	client *rabbitmq.Client
}

func NewRabbitPublisher(client *rabbitmq.Client) *RabbitPublisher {
	return &RabbitPublisher{client: client}
}

func (p *RabbitPublisher) Publish(ctx context.Context, body []byte) error {
	return p.client.PublishWithRetry(ctx, body, "application/json")
}
