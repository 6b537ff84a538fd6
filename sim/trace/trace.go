package trace

// TraceLevel controls the verbosity of passenger tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every scanner routing decision.
	TraceLevelDecisions TraceLevel = "decisions"
	// TraceLevelJourneys additionally captures each completed passenger journey.
	TraceLevelJourneys TraceLevel = "journeys"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	TraceLevelJourneys:  true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// SimulationTrace collects records during one trial.
type SimulationTrace struct {
	Level    TraceLevel
	Routings []RoutingRecord
	Journeys []JourneyRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(level TraceLevel) *SimulationTrace {
	return &SimulationTrace{
		Level:    level,
		Routings: make([]RoutingRecord, 0),
		Journeys: make([]JourneyRecord, 0),
	}
}

// RecordRouting appends a routing decision record.
// No-op when the level is none.
func (st *SimulationTrace) RecordRouting(record RoutingRecord) {
	if st.Level == TraceLevelNone || st.Level == "" {
		return
	}
	st.Routings = append(st.Routings, record)
}

// RecordJourney appends a completed journey. Only kept at the journeys level.
func (st *SimulationTrace) RecordJourney(record JourneyRecord) {
	if st.Level != TraceLevelJourneys {
		return
	}
	st.Journeys = append(st.Journeys, record)
}
