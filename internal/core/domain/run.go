package domain

import "sort"

// IngestRun records one collection run.
type IngestRun struct {
	ID         string
	Repository string
	StartedAt  int64
	FinishedAt int64
	Pages      int
	Issues     int
	OutputPath string
}

// Summary aggregates per-record quality signals for one pipeline step.
// None of these conditions are errors; they are reported at the end of a run.
type Summary struct {
	// Records is the number of raw records processed.
	Records int

	// Defaulted counts records where at least one field fell back to a default.
	Defaulted int

	// States counts extraction outcomes.
	States map[ExtractionState]int

	// RedirectFailures counts publication URLs that could not be resolved.
	RedirectFailures int

	// Emitted counts records written to the output artifact.
	Emitted int
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	return &Summary{States: make(map[ExtractionState]int)}
}

// Record counts one extraction outcome.
func (s *Summary) Record(state ExtractionState) {
	if s.States == nil {
		s.States = make(map[ExtractionState]int)
	}
	s.States[state]++
}

// Skipped returns the number of records in any skipped state.
func (s *Summary) Skipped() int {
	n := 0
	for state, count := range s.States {
		if state != StateNormalized {
			n += count
		}
	}
	return n
}

// StateCounts returns the non-zero state counts in evaluation order.
func (s *Summary) StateCounts() []StateCount {
	counts := make([]StateCount, 0, len(s.States))
	order := make(map[ExtractionState]int)
	for i, st := range AllExtractionStates() {
		order[st] = i
	}
	for state, count := range s.States {
		if count > 0 {
			counts = append(counts, StateCount{State: state, Count: count})
		}
	}
	sort.Slice(counts, func(i, j int) bool {
		return order[counts[i].State] < order[counts[j].State]
	})
	return counts
}

// StateCount pairs a state with its count.
type StateCount struct {
	State ExtractionState
	Count int
}
