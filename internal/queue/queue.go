// Package queue provides the dispatch queue between job submission and the
// worker processes. Delivery is at-least-once: a consumer crash between
// dequeue and terminal commit may cause the same job id to be delivered
// again, which the processing side resolves with a compare-and-swap status
// transition.
package queue

import (
	"context"
	"fmt"
)

// Queue carries job identifiers from producers to consumers.
type Queue interface {
	// Enqueue submits a job id for processing. Fire-and-forget.
	Enqueue(ctx context.Context, jobID string) error

	// Dequeue blocks until a job id is available or ctx is done. It returns
	// ("", nil) on idle timeouts so callers can loop and re-check ctx.
	Dequeue(ctx context.Context) (string, error)
}

// Memory is an in-process Queue backed by a buffered channel. Used in tests
// and single-node setups where the server and worker share a process.
type Memory struct {
	ch chan string
}

// NewMemory creates an in-process queue holding up to size pending ids.
func NewMemory(size int) *Memory {
	if size <= 0 {
		size = 128
	}
	return &Memory{ch: make(chan string, size)}
}

func (m *Memory) Enqueue(ctx context.Context, jobID string) error {
	select {
	case m.ch <- jobID:
		return nil
	default:
		return fmt.Errorf("queue full (%d pending)", cap(m.ch))
	}
}

func (m *Memory) Dequeue(ctx context.Context) (string, error) {
	select {
	case id := <-m.ch:
		return id, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
