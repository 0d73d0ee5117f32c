package redisqueue

import (
	"context"
	"fmt"

	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/filekeeper/go-files-manager/pkg/resilience"
	"github.com/redis/go-redis/v9"
)

const (
	fieldUserID = "user_id"
	fieldFileID = "file_id"
)

// Producer implements port.JobProducer on a Redis stream. Enqueues run
// through a circuit breaker so a dead Redis fails fast instead of adding
// a timeout to every upload.
type Producer struct {
	client  *redis.Client
	stream  string
	breaker *resilience.CircuitBreaker
}

var _ port.JobProducer = (*Producer)(nil)

func NewProducer(client *redis.Client, stream string) *Producer {
	return &Producer{
		client: client,
		stream: stream,
		breaker: resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
			Name:             "job-queue",
			FailureThreshold: 5,
		}),
	}
}

func (p *Producer) Enqueue(ctx context.Context, job domain.ThumbnailJob) error {
	return p.breaker.Execute(ctx, func(ctx context.Context) error {
		err := p.client.XAdd(ctx, &redis.XAddArgs{
			Stream: p.stream,
			Values: map[string]interface{}{
				fieldUserID: job.UserID,
				fieldFileID: job.FileID,
			},
		}).Err()
		if err != nil {
			return fmt.Errorf("failed to enqueue job for file %d: %w", job.FileID, err)
		}
		return nil
	})
}
