// sim/simulator.go
package sim

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// ErrInvalidDelay is returned when an event is scheduled with a negative (or NaN) delay.
// It is fatal for the run in which it occurs.
var ErrInvalidDelay = errors.New("invalid scheduling delay")

// eventEntry wraps an Event with its absolute time and a sequence ID for deterministic FIFO
// tie-breaking when time and priority are equal.
type eventEntry struct {
	time  float64
	seqID int64
	event Event
}

// EventQueue is a min-heap ordered by (time, priority, seqID).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []eventEntry

func (q EventQueue) Len() int { return len(q) }

func (q EventQueue) Less(i, j int) bool {
	if q[i].time != q[j].time {
		return q[i].time < q[j].time
	}
	if q[i].event.Priority() != q[j].event.Priority() {
		return q[i].event.Priority() < q[j].event.Priority()
	}
	return q[i].seqID < q[j].seqID
}

func (q EventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *EventQueue) Push(x any) {
	*q = append(*q, x.(eventEntry))
}

func (q *EventQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Simulator owns simulated time and the pending event set of one trial.
// It is single-threaded: exactly one event executes at a time, and an event runs to
// completion before the next is popped.
type Simulator struct {
	clock     float64
	events    EventQueue
	nextSeq   int64
	processed int64
	err       error
}

// NewSimulator creates a Simulator at time zero with no pending events.
func NewSimulator() *Simulator {
	return &Simulator{events: make(EventQueue, 0)}
}

// Clock returns the current simulated time in minutes.
func (sim *Simulator) Clock() float64 {
	return sim.clock
}

// Pending returns the number of scheduled events not yet executed.
func (sim *Simulator) Pending() int {
	return len(sim.events)
}

// Processed returns the number of events executed so far.
func (sim *Simulator) Processed() int64 {
	return sim.processed
}

// Err returns the error that aborted the run, if any.
func (sim *Simulator) Err() error {
	return sim.err
}

// Schedule enqueues ev to execute delay minutes from now.
func (sim *Simulator) Schedule(delay float64, ev Event) error {
	if delay < 0 || math.IsNaN(delay) {
		return fmt.Errorf("%w: %v for %T at t=%v", ErrInvalidDelay, delay, ev, sim.clock)
	}
	heap.Push(&sim.events, eventEntry{
		time:  sim.clock + delay,
		seqID: sim.nextSeq,
		event: ev,
	})
	sim.nextSeq++
	return nil
}

// Abort stops the run after the current event. The first error wins.
func (sim *Simulator) Abort(err error) {
	if sim.err == nil {
		sim.err = err
	}
}

// scheduleOrAbort is used from inside Execute, where there is no caller to return to.
func (sim *Simulator) scheduleOrAbort(delay float64, ev Event) {
	if err := sim.Schedule(delay, ev); err != nil {
		sim.Abort(err)
	}
}

// Run executes events in order until the next event lies beyond until, the queue drains,
// or an event aborts the run. When the horizon cuts the run short the clock is left at until.
// Events still queued at that point are discarded with the Simulator.
func (sim *Simulator) Run(until float64) error {
	for len(sim.events) > 0 && sim.err == nil {
		if sim.events[0].time > until {
			sim.clock = until
			break
		}
		entry := heap.Pop(&sim.events).(eventEntry)
		sim.clock = entry.time
		logrus.Tracef("[t=%10.4f] Executing %T", sim.clock, entry.event)
		entry.event.Execute(sim)
		sim.processed++
	}
	if sim.err != nil {
		return sim.err
	}
	logrus.Debugf("[t=%10.4f] Simulation ended after %d events, %d pending", sim.clock, sim.processed, len(sim.events))
	return nil
}
