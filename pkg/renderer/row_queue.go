package renderer

import (
	"sync/atomic"
)

// RowQueue hands out scanline indices 0..rows-1, each exactly once.
// Takes are lock-free: a worker that loses a compare-and-swap retries.
type RowQueue struct {
	next  atomic.Int64
	total int64
}

// NewRowQueue creates a queue pre-loaded with rows indices
func NewRowQueue(rows int) *RowQueue {
	return &RowQueue{total: int64(rows)}
}

// Steal takes the next row, or returns false once the queue is empty
func (q *RowQueue) Steal() (int, bool) {
	for {
		current := q.next.Load()
		if current >= q.total {
			return 0, false
		}
		if q.next.CompareAndSwap(current, current+1) {
			return int(current), true
		}
	}
}

// Len returns the number of rows the queue was created with
func (q *RowQueue) Len() int {
	return int(q.total)
}
