package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// StationKind distinguishes the two screening stages.
type StationKind string

const (
	KindIDCheck StationKind = "id-check"
	KindScanner StationKind = "scanner"
)

// Station is a service point with a fixed number of parallel servers and a FIFO
// waiting line. Capacity, busy count and the line are mutated only by the event that is
// currently executing, so no locking is needed within a trial.
//
// Invariant: 0 <= busy <= capacity. Waiting passengers are granted strictly in the
// order they requested.
type Station struct {
	Name     string
	Kind     StationKind
	capacity int
	busy     int
	waitQ    *WaitQueue
	sampler  DurationSampler

	// statistics
	served       int
	maxQueueLen  int
	busyArea     float64 // integral of busy servers over time
	lastChangeAt float64
}

// NewStation creates a station with capacity parallel servers whose hold durations are
// drawn from sampler. Panics if capacity < 1 or sampler is nil.
func NewStation(name string, kind StationKind, capacity int, sampler DurationSampler) *Station {
	if capacity < 1 {
		panic(fmt.Sprintf("NewStation(%s): capacity must be >= 1, got %d", name, capacity))
	}
	if sampler == nil {
		panic(fmt.Sprintf("NewStation(%s): sampler must not be nil", name))
	}
	return &Station{
		Name:     name,
		Kind:     kind,
		capacity: capacity,
		waitQ:    &WaitQueue{},
		sampler:  sampler,
	}
}

// Capacity returns the number of parallel servers.
func (s *Station) Capacity() int { return s.capacity }

// Busy returns the number of servers currently held.
func (s *Station) Busy() int { return s.busy }

// QueueLength returns the number of passengers waiting for a server, excluding those
// being served. It has no side effects; routing policies rely on that.
func (s *Station) QueueLength() int { return s.waitQ.Len() }

// Served returns the number of grants made so far.
func (s *Station) Served() int { return s.served }

// MaxQueueLength returns the longest waiting line observed.
func (s *Station) MaxQueueLength() int { return s.maxQueueLen }

// Utilization returns the time-averaged fraction of busy servers over [0, until].
func (s *Station) Utilization(until float64) float64 {
	if until <= 0 {
		return 0
	}
	area := s.busyArea + float64(s.busy)*(until-s.lastChangeAt)
	return area / (float64(s.capacity) * until)
}

// Request puts p in line. If a server is free the head of the line is granted
// immediately (busy is incremented now) and resumed by a zero-delay GrantEvent; otherwise
// p waits until a release reaches it.
func (s *Station) Request(sim *Simulator, p *Passenger) {
	s.waitQ.Enqueue(p)
	s.grantNext(sim)
	if s.waitQ.Len() > s.maxQueueLen {
		s.maxQueueLen = s.waitQ.Len()
	}
}

// Release frees one server. The freed server is offered to the waiting line when the
// resulting ReleaseEvent executes, at the same instant.
// Panics if no server is held.
func (s *Station) Release(sim *Simulator) {
	if s.busy == 0 {
		panic(fmt.Sprintf("Station(%s).Release: no busy server", s.Name))
	}
	s.setBusy(sim.Clock(), s.busy-1)
	sim.scheduleOrAbort(0, &ReleaseEvent{station: s})
}

// grantNext gives a free server to the head of the line, at most one per call.
func (s *Station) grantNext(sim *Simulator) {
	if s.busy >= s.capacity || s.waitQ.Len() == 0 {
		return
	}
	p := s.waitQ.Dequeue()
	s.setBusy(sim.Clock(), s.busy+1)
	s.served++
	logrus.Debugf("[t=%10.4f] %s grants passenger %d (busy %d/%d, waiting %d)",
		sim.Clock(), s.Name, p.ID, s.busy, s.capacity, s.waitQ.Len())
	sim.scheduleOrAbort(0, &GrantEvent{p: p, station: s})
}

func (s *Station) setBusy(now float64, busy int) {
	s.busyArea += float64(s.busy) * (now - s.lastChangeAt)
	s.lastChangeAt = now
	s.busy = busy
}
