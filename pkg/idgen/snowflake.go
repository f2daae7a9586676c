package idgen

import (
	"errors"
	"path/filepath"
	"strconv"
	"sync"
)

const (
	// 64-bit layout, high to low:
	// 1 bit sign (unused), 41 bits milliseconds since Epoch,
	// 10 bits node ID, 12 bits per-millisecond sequence.
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

// Snowflake generates unique, time-ordered 64-bit IDs. Safe for concurrent use.
type Snowflake struct {
	mu       sync.Mutex
	clock    Clock
	nodeID   int64
	lastTime int64
	sequence int64
}

// New creates a generator for nodeID. A nil clock selects SystemClock.
func New(nodeID int64, clock Clock) (*Snowflake, error) {
	if nodeID < 0 || nodeID > int64(maxNodeID) {
		return nil, ErrNodeIDTooLarge
	}
	if clock == nil {
		clock = SystemClock{}
	}

	return &Snowflake{
		clock:    clock,
		nodeID:   nodeID,
		lastTime: -1,
	}, nil
}

// Next returns the next ID, or ErrClockMovedBack if the clock regressed.
func (s *Snowflake) Next() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if now < s.lastTime {
		return 0, ErrClockMovedBack
	}

	if now == s.lastTime {
		s.sequence = (s.sequence + 1) & int64(maxSequence)
		if s.sequence == 0 {
			now = s.waitNextMillis()
		}
	} else {
		s.sequence = 0
	}
	s.lastTime = now

	return compose(now, s.nodeID, s.sequence), nil
}

// FileName renders id in decimal followed by the extension of reported, so
// "report.PDF" becomes "<id>.PDF" and "README" becomes "<id>".
func FileName(id int64, reported string) string {
	return strconv.FormatInt(id, 10) + filepath.Ext(reported)
}

func compose(millis, nodeID, sequence int64) int64 {
	return ((millis - Epoch) << timestampShift) | (nodeID << nodeShift) | sequence
}

// waitNextMillis spins until the clock passes lastTime.
func (s *Snowflake) waitNextMillis() int64 {
	now := s.clock.Now()
	for now <= s.lastTime {
		now = s.clock.Now()
	}
	return now
}
