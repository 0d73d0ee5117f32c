package idgen

import (
	"errors"
	"sync"
)

// 64-bit layout: sign bit unused, 41 bits of milliseconds since Epoch,
// 10 bits of node, 12 bits of per-millisecond sequence. Listings sort by
// id, so IDs from one node must be strictly increasing.
const (
	nodeBits     = 10
	sequenceBits = 12

	maxNodeID   = -1 ^ (-1 << nodeBits)
	maxSequence = -1 ^ (-1 << sequenceBits)

	nodeShift      = sequenceBits
	timestampShift = sequenceBits + nodeBits

	// Epoch is 2024-01-01 00:00:00 UTC in milliseconds.
	Epoch = 1704067200000
)

var (
	ErrNodeIDTooLarge = errors.New("node ID too large")
	ErrClockMovedBack = errors.New("clock moved backwards")
)

// Snowflake issues unique, time-ordered 64-bit IDs for one node.
type Snowflake struct {
	mu         sync.Mutex
	clock      Clock
	nodeID     int64
	lastMillis int64
	sequence   int64
}

// New builds a generator for the given node. A nil clock selects the
// system clock.
func New(nodeID int64, clock Clock) (*Snowflake, error) {
	if nodeID < 0 || nodeID > int64(maxNodeID) {
		return nil, ErrNodeIDTooLarge
	}

	if clock == nil {
		clock = &SystemClock{}
	}

	return &Snowflake{
		clock:      clock,
		nodeID:     nodeID,
		lastMillis: -1,
	}, nil
}

// Next returns the next ID. It fails rather than emit out-of-order IDs
// when the clock runs backwards.
func (s *Snowflake) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if now < s.lastMillis {
		return 0, ErrClockMovedBack
	}

	if now == s.lastMillis {
		s.sequence = (s.sequence + 1) & int64(maxSequence)
		if s.sequence == 0 {
			// Sequence space for this millisecond is spent; spin to the next.
			for now <= s.lastMillis {
				now = s.clock.Now()
			}
		}
	} else {
		s.sequence = 0
	}

	s.lastMillis = now

	id := ((now - Epoch) << timestampShift) |
		(s.nodeID << nodeShift) |
		s.sequence
	return id, nil
}
