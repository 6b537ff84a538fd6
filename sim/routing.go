package sim

import "fmt"

// ScannerSnapshot is a read-only view of one scanner station used for routing decisions.
type ScannerSnapshot struct {
	Index       int
	Name        string
	QueueLength int // passengers waiting, excluding the one being scanned
	Busy        int
}

// RoutingDecision encapsulates the scanner choice for a passenger.
type RoutingDecision struct {
	Target int    // index into the scanner slice
	Reason string // Human-readable explanation
}

// RoutingPolicy decides which scanner a passenger joins after identity check.
// Implementations must not mutate the snapshots.
type RoutingPolicy interface {
	Route(p *Passenger, snapshots []ScannerSnapshot) RoutingDecision
}

// ShortestQueue routes to the scanner with the fewest waiting passengers.
// Ties are broken by first occurrence in snapshot order (lowest index).
type ShortestQueue struct{}

// Route implements RoutingPolicy for ShortestQueue.
func (sq *ShortestQueue) Route(p *Passenger, snapshots []ScannerSnapshot) RoutingDecision {
	if len(snapshots) == 0 {
		panic("ShortestQueue.Route: empty snapshots")
	}
	minLen := snapshots[0].QueueLength
	target := 0
	for i := 1; i < len(snapshots); i++ {
		if snapshots[i].QueueLength < minLen {
			minLen = snapshots[i].QueueLength
			target = i
		}
	}
	return RoutingDecision{
		Target: target,
		Reason: fmt.Sprintf("shortest-queue (len=%d)", minLen),
	}
}

// RoundRobin cycles through scanners regardless of their lines.
type RoundRobin struct {
	counter int
}

// Route implements RoutingPolicy for RoundRobin.
func (rr *RoundRobin) Route(p *Passenger, snapshots []ScannerSnapshot) RoutingDecision {
	if len(snapshots) == 0 {
		panic("RoundRobin.Route: empty snapshots")
	}
	target := rr.counter % len(snapshots)
	rr.counter++
	return RoutingDecision{
		Target: target,
		Reason: fmt.Sprintf("round-robin[%d]", rr.counter-1),
	}
}

// ValidRoutingPolicies is the set of recognized routing policy names.
// The empty name selects the default, shortest-queue.
var ValidRoutingPolicies = map[string]bool{"": true, "shortest-queue": true, "round-robin": true}

// NewRoutingPolicy creates a routing policy by name.
// Returns an error for unrecognized names.
func NewRoutingPolicy(name string) (RoutingPolicy, error) {
	switch name {
	case "", "shortest-queue":
		return &ShortestQueue{}, nil
	case "round-robin":
		return &RoundRobin{}, nil
	default:
		return nil, fmt.Errorf("unknown routing policy %q", name)
	}
}
