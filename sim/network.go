package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/screening-sim/sim/trace"
)

// Network is one fresh instance of the checkpoint: a shared identity-check station, a
// bank of single-server scanners, the arrival generator feeding them, and the random
// stream all of them draw from. A Network runs exactly once.
type Network struct {
	Config   NetworkConfig
	IDCheck  *Station
	Scanners []*Station
	Metrics  *Metrics
	Trace    *trace.SimulationTrace // nil unless EnableTrace was called

	sim       *Simulator
	rng       *RandomStream
	router    RoutingPolicy
	generator *ArrivalGenerator
	hasRun    bool
}

// NewNetwork builds a checkpoint from cfg. When rs is nil a stream is seeded from
// cfg.Seed; callers running several trials pass a freshly seeded stream per trial.
func NewNetwork(cfg NetworkConfig, rs *RandomStream) (*Network, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid network config: %w", err)
	}
	router, err := NewRoutingPolicy(cfg.RoutingPolicy)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = NewRandomStream(NewSimulationKey(cfg.Seed))
	}

	n := &Network{
		Config:  cfg,
		Metrics: NewMetrics(),
		sim:     NewSimulator(),
		rng:     rs,
		router:  router,
	}
	n.IDCheck = NewStation("id-check", KindIDCheck, cfg.Checkers, NewExponentialSampler(cfg.IDServiceTime))
	scanSampler := NewUniformSampler(cfg.ScannerTimeMin, cfg.ScannerTimeMax)
	n.Scanners = make([]*Station, cfg.Scanners)
	for i := range n.Scanners {
		n.Scanners[i] = NewStation(fmt.Sprintf("scanner_%d", i), KindScanner, 1, scanSampler)
	}
	n.generator = NewArrivalGenerator(n, NewExponentialSampler(cfg.ArrivalInterval))

	idLoad, scanLoad := cfg.OfferedLoad()
	if idLoad >= 1 || scanLoad >= 1 {
		logrus.Warnf("Configuration %d checkers / %d scanners is saturated (offered load id=%.2f scanner=%.2f)",
			cfg.Checkers, cfg.Scanners, idLoad, scanLoad)
	}
	return n, nil
}

// EnableTrace turns on decision recording at the given level.
func (n *Network) EnableTrace(level trace.TraceLevel) {
	n.Trace = trace.NewSimulationTrace(level)
}

// Simulator exposes the underlying event loop.
func (n *Network) Simulator() *Simulator {
	return n.sim
}

// Run starts the generator and executes the trial up to the configured horizon.
// Passengers still inside the checkpoint at the horizon are abandoned without a sample.
// Panics if called more than once.
func (n *Network) Run() (*Metrics, error) {
	if n.hasRun {
		panic("Network.Run() called more than once")
	}
	n.hasRun = true

	if err := n.generator.Start(n.sim); err != nil {
		return nil, err
	}
	if err := n.sim.Run(n.Config.Horizon); err != nil {
		return nil, fmt.Errorf("trial %d checkers / %d scanners aborted: %w", n.Config.Checkers, n.Config.Scanners, err)
	}
	n.finalize()
	return n.Metrics, nil
}

func (n *Network) finalize() {
	end := n.sim.Clock()
	n.Metrics.EndTime = end
	n.Metrics.Stations = make([]StationStats, 0, 1+len(n.Scanners))
	for _, s := range append([]*Station{n.IDCheck}, n.Scanners...) {
		n.Metrics.Stations = append(n.Metrics.Stations, StationStats{
			Name:           s.Name,
			Kind:           s.Kind,
			Capacity:       s.Capacity(),
			Served:         s.Served(),
			MaxQueueLength: s.MaxQueueLength(),
			Utilization:    s.Utilization(end),
		})
	}
	logrus.Infof("Trial %d checkers / %d scanners: %d arrivals, %d completed, mean %.4f",
		n.Config.Checkers, n.Config.Scanners, n.Metrics.Arrivals, n.Metrics.Completed, n.Metrics.MeanTotalTime())
}

func (n *Network) recordDeparture(p *Passenger) {
	n.Metrics.recordDeparture(p)
	if n.Trace != nil {
		n.Trace.RecordJourney(trace.JourneyRecord{
			PassengerID: p.ID,
			Arrival:     p.ArrivalTime,
			Departure:   p.DepartureTime,
			Scanner:     p.Scanner,
		})
	}
}

// routeScanner snapshots every scanner and asks the routing policy for a target.
func (n *Network) routeScanner(sim *Simulator, p *Passenger) int {
	snapshots := make([]ScannerSnapshot, len(n.Scanners))
	for i, s := range n.Scanners {
		snapshots[i] = ScannerSnapshot{
			Index:       i,
			Name:        s.Name,
			QueueLength: s.QueueLength(),
			Busy:        s.Busy(),
		}
	}
	decision := n.router.Route(p, snapshots)
	if decision.Target < 0 || decision.Target >= len(n.Scanners) {
		panic(fmt.Sprintf("routeScanner: invalid target %d for %d scanners", decision.Target, len(n.Scanners)))
	}
	if n.Trace != nil {
		lengths := make([]int, len(snapshots))
		for i, s := range snapshots {
			lengths[i] = s.QueueLength
		}
		n.Trace.RecordRouting(trace.RoutingRecord{
			PassengerID:  p.ID,
			Clock:        sim.Clock(),
			Chosen:       decision.Target,
			Reason:       decision.Reason,
			QueueLengths: lengths,
		})
	}
	return decision.Target
}
