// Implements the WaitQueue, which holds passengers waiting for a free server at a station.
// Passengers are enqueued when they request a station and dequeued when granted.

package sim

import (
	"fmt"
	"strings"
)

// WaitQueue represents a FIFO queue of passengers waiting to be served.
type WaitQueue struct {
	queue []*Passenger // FIFO queue of passengers
}

// Enqueue adds a passenger to the back of the wait queue.
func (wq *WaitQueue) Enqueue(p *Passenger) {
	wq.queue = append(wq.queue, p)
}

func (wq *WaitQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range wq.queue {
		sb.WriteString(fmt.Sprint(p.ID))
		if i < len(wq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of passengers in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Peek returns the passenger at the front of the queue without removing it.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Peek() *Passenger {
	if len(wq.queue) == 0 {
		return nil
	}
	return wq.queue[0]
}

// Dequeue removes and returns the passenger at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() *Passenger {
	if len(wq.queue) == 0 {
		return nil
	}
	p := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return p
}
