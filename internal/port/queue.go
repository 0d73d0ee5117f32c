package port

import (
	"context"

	"github.com/filekeeper/go-files-manager/internal/domain"
)

//go:generate mockgen -destination=../service/mocks/queue_mock.go -package=mocks -source=queue.go

// JobProducer enqueues thumbnail jobs for the worker process.
type JobProducer interface {
	Enqueue(ctx context.Context, job domain.ThumbnailJob) error
}

// JobHandler processes one delivered job. A nil return acks the job. An
// error wrapping ErrTerminalJob acks it as unrecoverable; any other error
// leaves it for queue-level redelivery.
type JobHandler func(ctx context.Context, job domain.ThumbnailJob) error

// JobConsumer is the worker-side view of the queue: an infinite delivery
// loop that hands each job to exactly one active consumer.
type JobConsumer interface {
	// Consume blocks until ctx is canceled, delivering jobs to handle.
	Consume(ctx context.Context, handle JobHandler) error
}
