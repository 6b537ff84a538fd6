// Package sim provides the discrete-event simulation engine for the screening checkpoint.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - passenger.go: Passenger lifecycle (awaiting ID check → scanning → departed) and state machine
//   - event.go: Event types that drive the simulation (Arrival, Grant, HoldEnd, Release, etc.)
//   - simulator.go: The event loop and its (time, priority, sequence) ordering
//
// # Architecture
//
// A Network wires one identity-check Station (C parallel servers, one FIFO line) to a
// bank of single-server scanner Stations. The ArrivalGenerator spawns passengers; each
// passenger requests a station, holds it for a sampled duration, releases it and is
// routed to a scanner by a RoutingPolicy reading every scanner's QueueLength.
//
// Sub-packages:
//   - sim/experiment/: staffing sweeps and the reference report
//   - sim/trace/: routing decision and journey recording
//
// # Key Interfaces
//
//   - Event: one scheduled state change
//   - DurationSampler: hold and inter-arrival durations drawn from a RandomStream
//   - RoutingPolicy: select a scanner given scanner snapshots
package sim
