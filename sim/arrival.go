package sim

// ArrivalGenerator produces passengers indefinitely at sampled inter-arrival times.
// Each passenger is started as an independent process; the generator never waits for
// one to finish. The generator is cut off only by the simulation horizon.
type ArrivalGenerator struct {
	net     *Network
	sampler DurationSampler
	nextID  int64
}

// NewArrivalGenerator creates a generator feeding net with inter-arrival times drawn
// from sampler.
func NewArrivalGenerator(net *Network, sampler DurationSampler) *ArrivalGenerator {
	if net == nil || sampler == nil {
		panic("NewArrivalGenerator: net and sampler must not be nil")
	}
	return &ArrivalGenerator{net: net, sampler: sampler}
}

// Start schedules the generator's first iteration at the current time.
func (g *ArrivalGenerator) Start(sim *Simulator) error {
	return sim.Schedule(0, &generatorStartEvent{gen: g})
}

// Spawned returns how many passengers have been created.
func (g *ArrivalGenerator) Spawned() int64 {
	return g.nextID
}

func (g *ArrivalGenerator) scheduleNext(sim *Simulator) {
	iat := g.sampler.Sample(g.net.rng)
	sim.scheduleOrAbort(iat, &ArrivalEvent{gen: g})
}

func (g *ArrivalGenerator) arrive(sim *Simulator) {
	p := newPassenger(g.nextID, g.net)
	g.nextID++
	g.net.Metrics.Arrivals++
	sim.scheduleOrAbort(0, &passengerStartEvent{p: p})
	g.scheduleNext(sim)
}
