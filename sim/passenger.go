// Defines the Passenger struct and the per-passenger state machine that walks one traveller
// through identity check and personal scanning.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// PassengerState represents the lifecycle state of a passenger.
type PassengerState string

const (
	StateArrived         PassengerState = "arrived"
	StateAwaitingIDCheck PassengerState = "awaiting-id-check"
	StateInIDCheck       PassengerState = "in-id-check"
	StateAwaitingScanner PassengerState = "awaiting-scanner"
	StateInScanner       PassengerState = "in-scanner"
	StateDeparted        PassengerState = "departed"
)

// Passenger models a single traveller's journey through the checkpoint.
// Transitions are driven by scheduler events:
//
//	Arrived → AwaitingIDCheck → InIDCheck → AwaitingScanner → InScanner → Departed
//
// A passenger never leaves before completing both stages.
type Passenger struct {
	ID            int64
	ArrivalTime   float64 // simulated time at creation
	State         PassengerState
	Scanner       int // index of the chosen scanner, -1 until routed
	DepartureTime float64
	TotalTime     float64 // DepartureTime - ArrivalTime; valid once State == StateDeparted

	net     *Network
	current *Station
}

func newPassenger(id int64, net *Network) *Passenger {
	return &Passenger{ID: id, State: StateArrived, Scanner: -1, net: net}
}

// String returns a human-readable representation of the passenger.
func (p *Passenger) String() string {
	return fmt.Sprintf("Passenger: (ID: %d, State: %s, ArrivalTime: %.4f)", p.ID, p.State, p.ArrivalTime)
}

func (p *Passenger) setState(sim *Simulator, next PassengerState) {
	logrus.Debugf("[t=%10.4f] passenger %d: %s -> %s", sim.Clock(), p.ID, p.State, next)
	p.State = next
}

// start records the arrival instant and joins the identity-check line.
func (p *Passenger) start(sim *Simulator) {
	p.ArrivalTime = sim.Clock()
	p.setState(sim, StateAwaitingIDCheck)
	p.net.IDCheck.Request(sim, p)
}

// granted resumes the passenger after a station handed it a server.
func (p *Passenger) granted(sim *Simulator, s *Station) {
	p.current = s
	switch p.State {
	case StateAwaitingIDCheck:
		p.setState(sim, StateInIDCheck)
	case StateAwaitingScanner:
		p.setState(sim, StateInScanner)
	default:
		panic(fmt.Sprintf("passenger %d granted %s in state %s", p.ID, s.Name, p.State))
	}
	sim.scheduleOrAbort(0, &holdStartEvent{p: p})
}

// startHold samples the hold duration at the current station.
func (p *Passenger) startHold(sim *Simulator) {
	d := p.current.sampler.Sample(p.net.rng)
	sim.scheduleOrAbort(d, &HoldEndEvent{p: p})
}

// completeStage releases the current station and moves on.
func (p *Passenger) completeStage(sim *Simulator) {
	s := p.current
	p.current = nil
	s.Release(sim)
	switch p.State {
	case StateInIDCheck:
		p.setState(sim, StateAwaitingScanner)
		// Reading the queue lengths and requesting happen within this one event,
		// so no other passenger can change the lines in between.
		idx := p.net.routeScanner(sim, p)
		p.Scanner = idx
		p.net.Scanners[idx].Request(sim, p)
	case StateInScanner:
		p.DepartureTime = sim.Clock()
		p.TotalTime = p.DepartureTime - p.ArrivalTime
		p.setState(sim, StateDeparted)
		p.net.recordDeparture(p)
	default:
		panic(fmt.Sprintf("passenger %d completed a stage in state %s", p.ID, p.State))
	}
}
