package memory

import (
	"container/heap"
	"context"
	"sync"
	"time"

	"storehouse/internal/core/domain/model/order"
	"storehouse/internal/core/ports"
)

// IntakeChannel is an in-process priority queue implementing ports.IntakeChannel.
type IntakeChannel struct {
	mu    sync.Mutex
	queue intakeQueue
	seq   uint64
}

func NewIntakeChannel() *IntakeChannel {
	return &IntakeChannel{}
}

func (c *IntakeChannel) Send(ctx context.Context, o *order.Order, priority ports.Priority) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !o.IsPersisted() {
		return ports.ErrOrderIsNotPersisted
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	heap.Push(&c.queue, queued{
		seq: c.seq,
		msg: ports.IntakeMessage{
			OrderID:    o.ID(),
			CustomerID: o.CustomerID(),
			Quantity:   o.CalculateTotalQuantity(),
			Priority:   priority,
			EnqueuedAt: time.Now().UTC(),
		},
	})
	return nil
}

// Browse returns the head of the queue without removing it.
func (c *IntakeChannel) Browse(ctx context.Context, limit int) ([]ports.IntakeMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Popping from a copy yields delivery order without disturbing the queue.
	peek := make(intakeQueue, len(c.queue))
	copy(peek, c.queue)
	return drain(&peek, limit), nil
}

func (c *IntakeChannel) Consume(ctx context.Context, n int) ([]ports.IntakeMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return drain(&c.queue, n), nil
}

// Len reports the number of pending messages.
func (c *IntakeChannel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Len()
}

func drain(q *intakeQueue, n int) []ports.IntakeMessage {
	n = min(max(n, 0), q.Len())
	out := make([]ports.IntakeMessage, 0, n)
	for range n {
		out = append(out, heap.Pop(q).(queued).msg)
	}
	return out
}

type queued struct {
	seq uint64
	msg ports.IntakeMessage
}

// intakeQueue is a heap ordered by priority descending, then send order.
type intakeQueue []queued

func (q intakeQueue) Len() int { return len(q) }

func (q intakeQueue) Less(i, j int) bool {
	if q[i].msg.Priority != q[j].msg.Priority {
		return q[i].msg.Priority > q[j].msg.Priority
	}
	return q[i].seq < q[j].seq
}

func (q intakeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *intakeQueue) Push(x any) { *q = append(*q, x.(queued)) }

func (q *intakeQueue) Pop() any {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
