package sim

// EventPriority orders events that share a timestamp. Lower values execute first.
type EventPriority int

const (
	// PriorityUrgent is used for process starts: a newly spawned process (generator,
	// passenger, or a service hold) begins before other work pending at the same instant.
	PriorityUrgent EventPriority = 0
	// PriorityNormal is used for everything else.
	PriorityNormal EventPriority = 1
)

// Event defines the interface for all simulation events.
// The scheduled time is owned by the Simulator; Execute advances model state when invoked
// and may schedule further events.
type Event interface {
	Priority() EventPriority
	Execute(*Simulator)
}

// generatorStartEvent starts the arrival generator at time zero.
type generatorStartEvent struct {
	gen *ArrivalGenerator
}

func (e *generatorStartEvent) Priority() EventPriority { return PriorityUrgent }

func (e *generatorStartEvent) Execute(sim *Simulator) {
	e.gen.scheduleNext(sim)
}

// ArrivalEvent represents the generator waking up after an inter-arrival delay.
type ArrivalEvent struct {
	gen *ArrivalGenerator
}

func (e *ArrivalEvent) Priority() EventPriority { return PriorityNormal }

// Execute spawns a passenger and schedules the next arrival.
func (e *ArrivalEvent) Execute(sim *Simulator) {
	e.gen.arrive(sim)
}

// passengerStartEvent begins a passenger's journey at its arrival instant.
type passengerStartEvent struct {
	p *Passenger
}

func (e *passengerStartEvent) Priority() EventPriority { return PriorityUrgent }

func (e *passengerStartEvent) Execute(sim *Simulator) {
	e.p.start(sim)
}

// GrantEvent resumes a passenger that has been given a server at a station.
type GrantEvent struct {
	p       *Passenger
	station *Station
}

func (e *GrantEvent) Priority() EventPriority { return PriorityNormal }

func (e *GrantEvent) Execute(sim *Simulator) {
	e.p.granted(sim, e.station)
}

// holdStartEvent samples the service duration for the passenger's current station.
type holdStartEvent struct {
	p *Passenger
}

func (e *holdStartEvent) Priority() EventPriority { return PriorityUrgent }

func (e *holdStartEvent) Execute(sim *Simulator) {
	e.p.startHold(sim)
}

// HoldEndEvent fires when a service hold expires.
type HoldEndEvent struct {
	p *Passenger
}

func (e *HoldEndEvent) Priority() EventPriority { return PriorityNormal }

func (e *HoldEndEvent) Execute(sim *Simulator) {
	sim.scheduleOrAbort(0, &stageDoneEvent{p: e.p})
}

// stageDoneEvent hands control back to the passenger after a hold has finished.
type stageDoneEvent struct {
	p *Passenger
}

func (e *stageDoneEvent) Priority() EventPriority { return PriorityNormal }

func (e *stageDoneEvent) Execute(sim *Simulator) {
	e.p.completeStage(sim)
}

// ReleaseEvent offers a freed server to the head of a station's waiting line.
type ReleaseEvent struct {
	station *Station
}

func (e *ReleaseEvent) Priority() EventPriority { return PriorityNormal }

func (e *ReleaseEvent) Execute(sim *Simulator) {
	e.station.grantNext(sim)
}
