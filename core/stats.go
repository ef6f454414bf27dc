package core

import "math"

// StatisticsTracker keeps the return statistics of completed episodes,
// one entry per agent. The counters are shared by all agents.
type StatisticsTracker struct {
	maxPathReturn  []float64
	lastPathReturn []float64
	meanPathReturn []float64
	episodes       int
	totalSamples   int
}

func NewStatisticsTracker(agents int) *StatisticsTracker {
	maxReturn := make([]float64, agents)
	for i := range maxReturn {
		maxReturn[i] = math.Inf(-1)
	}
	return &StatisticsTracker{
		maxPathReturn:  maxReturn,
		lastPathReturn: make([]float64, agents),
		meanPathReturn: make([]float64, agents),
	}
}

// Sample counts one environment interaction
func (s *StatisticsTracker) Sample() {
	s.totalSamples += 1
}

// Finalize folds a completed episode into the statistics
func (s *StatisticsTracker) Finalize(pathReturn []float64, pathLength int) {
	for i, r := range pathReturn {
		s.maxPathReturn[i] = math.Max(s.maxPathReturn[i], r)
	}
	copy(s.lastPathReturn, pathReturn)
	for i, r := range pathReturn {
		s.meanPathReturn[i] = r / float64(pathLength)
	}
	s.episodes += 1
}

func (s *StatisticsTracker) Snapshot() Snapshot {
	return Snapshot{
		MaxPathReturn:  copyFloats(s.maxPathReturn),
		LastPathReturn: copyFloats(s.lastPathReturn),
		MeanPathReturn: copyFloats(s.meanPathReturn),
		Episodes:       s.episodes,
		TotalSamples:   s.totalSamples,
	}
}

// Snapshot is a copy of the statistics at some point in time
type Snapshot struct {
	MaxPathReturn  []float64 `json:"max_path_return"`
	LastPathReturn []float64 `json:"last_path_return"`
	MeanPathReturn []float64 `json:"mean_path_return"`
	Episodes       int       `json:"episodes"`
	TotalSamples   int       `json:"total_samples"`
}

func copyFloats(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
