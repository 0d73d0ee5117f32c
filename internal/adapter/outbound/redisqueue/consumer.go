package redisqueue

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/filekeeper/go-files-manager/internal/domain"
	"github.com/filekeeper/go-files-manager/internal/port"
	"github.com/redis/go-redis/v9"
)

// ConsumerConfig tunes the stream consumer loop.
type ConsumerConfig struct {
	Stream    string
	Group     string
	Consumer  string
	Block     time.Duration
	ClaimIdle time.Duration
}

// Consumer implements port.JobConsumer on a Redis stream consumer group.
// The group guarantees each entry is delivered to exactly one active
// consumer; unacked entries are reclaimed after ClaimIdle so jobs from a
// crashed worker get redelivered.
type Consumer struct {
	client *redis.Client
	cfg    ConsumerConfig
}

var _ port.JobConsumer = (*Consumer)(nil)

func NewConsumer(client *redis.Client, cfg ConsumerConfig) *Consumer {
	if cfg.Block <= 0 {
		cfg.Block = 5 * time.Second
	}
	if cfg.ClaimIdle <= 0 {
		cfg.ClaimIdle = time.Minute
	}
	return &Consumer{client: client, cfg: cfg}
}

// Consume blocks, delivering jobs to handle until ctx is canceled.
func (c *Consumer) Consume(ctx context.Context, handle port.JobHandler) error {
	if err := c.ensureGroup(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		c.claimStale(ctx, handle)

		res, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.cfg.Group,
			Consumer: c.cfg.Consumer,
			Streams:  []string{c.cfg.Stream, ">"},
			Count:    10,
			Block:    c.cfg.Block,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Warnw("Queue read failed, retrying", "stream", c.cfg.Stream, "error", err.Error())
			time.Sleep(time.Second)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				c.process(ctx, msg, handle)
			}
		}
	}
}

// ensureGroup creates the consumer group, tolerating concurrent creation.
func (c *Consumer) ensureGroup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.cfg.Stream, c.cfg.Group, "0").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}
	return nil
}

// claimStale takes over entries another consumer left pending too long.
func (c *Consumer) claimStale(ctx context.Context, handle port.JobHandler) {
	msgs, _, err := c.client.XAutoClaim(ctx, &redis.XAutoClaimArgs{
		Stream:   c.cfg.Stream,
		Group:    c.cfg.Group,
		Consumer: c.cfg.Consumer,
		MinIdle:  c.cfg.ClaimIdle,
		Start:    "0-0",
		Count:    10,
	}).Result()
	if err != nil && err != redis.Nil {
		logger.Warnw("Queue claim failed", "stream", c.cfg.Stream, "error", err.Error())
		return
	}

	for _, msg := range msgs {
		c.process(ctx, msg, handle)
	}
}

// process decodes one entry, runs the handler, and acks per the job
// contract: success and terminal failures ack, transient failures stay
// pending for redelivery.
func (c *Consumer) process(ctx context.Context, msg redis.XMessage, handle port.JobHandler) {
	job := decodeJob(msg)

	err := handle(ctx, job)
	switch {
	case err == nil:
		c.ack(ctx, msg.ID)
	case errors.Is(err, port.ErrTerminalJob):
		logger.Errorw("Job failed terminally", "entry_id", msg.ID, "file_id", job.FileID, "user_id", job.UserID, "error", err.Error())
		c.ack(ctx, msg.ID)
	default:
		logger.Warnw("Job failed, leaving for redelivery", "entry_id", msg.ID, "file_id", job.FileID, "error", err.Error())
	}
}

func (c *Consumer) ack(ctx context.Context, id string) {
	if err := c.client.XAck(ctx, c.cfg.Stream, c.cfg.Group, id).Err(); err != nil {
		logger.Warnw("Queue ack failed", "entry_id", id, "error", err.Error())
	}
}

// decodeJob tolerates missing or malformed fields; validation of the ids is
// the handler's concern.
func decodeJob(msg redis.XMessage) domain.ThumbnailJob {
	var job domain.ThumbnailJob
	if v, ok := msg.Values[fieldUserID].(string); ok {
		job.UserID, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := msg.Values[fieldFileID].(string); ok {
		job.FileID, _ = strconv.ParseInt(v, 10, 64)
	}
	return job
}
