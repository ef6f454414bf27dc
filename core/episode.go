package core

import "gonum.org/v1/gonum/floats"

// EpisodeState tracks the episode in progress. One entry per agent in
// Observations and PathReturn, the path length is shared by all agents.
type EpisodeState struct {
	// Observations is nil until the environment has been reset
	Observations [][]float64
	PathLength   int
	PathReturn   []float64
}

func NewEpisodeState(agents int) *EpisodeState {
	return &EpisodeState{
		Observations: nil,
		PathLength:   0,
		PathReturn:   make([]float64, agents),
	}
}

// HasObservation is false before the first reset
func (e *EpisodeState) HasObservation() bool {
	return e.Observations != nil
}

// Advance records one step worth of rewards (one per agent)
func (e *EpisodeState) Advance(rewards []float64) {
	e.PathLength += 1
	floats.Add(e.PathReturn, rewards)
}

// Reset clears the length and the accumulated return.
// Observations are left for the caller to replace.
func (e *EpisodeState) Reset() {
	e.PathLength = 0
	for i := range e.PathReturn {
		e.PathReturn[i] = 0
	}
}

// Done checks the episode boundary condition: every terminal flag set
// or the horizon reached.
func (e *EpisodeState) Done(dones []bool, horizon int) bool {
	return allTrue(dones) || e.PathLength >= horizon
}

func allTrue(flags []bool) bool {
	if len(flags) == 0 {
		return false
	}
	for _, f := range flags {
		if !f {
			return false
		}
	}
	return true
}
