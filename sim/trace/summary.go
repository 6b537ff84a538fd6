package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions     int
	UniqueTargets      int
	TargetDistribution map[int]int // scanner index → passengers routed there
	MeanObservedQueue  float64     // mean length of the chosen line at decision time
	MaxObservedQueue   int
	CompletedJourneys  int
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TargetDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Routings)
	if len(st.Routings) > 0 {
		total := 0
		for _, r := range st.Routings {
			summary.TargetDistribution[r.Chosen]++
			if r.Chosen >= 0 && r.Chosen < len(r.QueueLengths) {
				q := r.QueueLengths[r.Chosen]
				total += q
				if q > summary.MaxObservedQueue {
					summary.MaxObservedQueue = q
				}
			}
		}
		summary.MeanObservedQueue = float64(total) / float64(len(st.Routings))
	}
	summary.UniqueTargets = len(summary.TargetDistribution)
	summary.CompletedJourneys = len(st.Journeys)

	return summary
}
