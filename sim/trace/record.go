// Package trace provides per-passenger decision recording for checkpoint analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// RoutingRecord captures a single scanner choice made after identity check.
type RoutingRecord struct {
	PassengerID  int64
	Clock        float64
	Chosen       int
	Reason       string
	QueueLengths []int // waiting line per scanner as observed at decision time
}

// JourneyRecord captures one completed passenger.
type JourneyRecord struct {
	PassengerID int64
	Arrival     float64
	Departure   float64
	Scanner     int
}

// TotalTime returns the time the passenger spent in the checkpoint.
func (r JourneyRecord) TotalTime() float64 {
	return r.Departure - r.Arrival
}
