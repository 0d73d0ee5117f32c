package idgen

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Clock is the generator's time source, in milliseconds.
type Clock interface {
	Now() int64
}

// SystemClock reads the local system time.
type SystemClock struct{}

func (s *SystemClock) Now() int64 {
	return time.Now().UnixMilli()
}

// RedisClock reads time from the Redis server so that API instances on
// hosts with skewed local clocks still draw from one timeline.
type RedisClock struct {
	client *redis.Client
	ctx    context.Context
}

func NewRedisClock(client *redis.Client) *RedisClock {
	return &RedisClock{
		client: client,
		ctx:    context.Background(),
	}
}

func (r *RedisClock) Now() int64 {
	res, err := r.client.Time(r.ctx).Result()
	if err != nil {
		// Degrade to local time while Redis is unreachable.
		return time.Now().UnixMilli()
	}
	return res.Unix()*1000 + int64(res.Nanosecond())/1e6
}
