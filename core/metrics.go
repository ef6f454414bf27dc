package core

import "strconv"

// Records is one named set of scalar metrics
type Records map[string]float64

// MetricsEmitter receives the record set produced after every completed
// episode and on LogDiagnostics. The order of the keys carries no meaning.
type MetricsEmitter interface {
	Emit(Records)
}

// EpisodeObserver is notified after every completed episode, once the
// statistics have been updated.
type EpisodeObserver interface {
	EpisodeEnd(*EpisodeSummary)
}

// EpisodeSummary describes a completed episode
type EpisodeSummary struct {
	Episode    int
	PathLength int
	// Explore is true when the final step of the episode was an exploration step
	Explore bool
	Stats   Snapshot
	// TerminalObservations holds the last observation of every agent
	// before the environment was reset
	TerminalObservations [][]float64
}

type noOpEmitter struct{}

func (noOpEmitter) Emit(Records) {}

// NoOpEmitter drops every record
func NoOpEmitter() MetricsEmitter {
	return noOpEmitter{}
}

// EmitterFunc adapts a function to MetricsEmitter
type EmitterFunc func(Records)

func (f EmitterFunc) Emit(r Records) {
	f(r)
}

// ObserverFunc adapts a function to EpisodeObserver
type ObserverFunc func(*EpisodeSummary)

func (f ObserverFunc) EpisodeEnd(s *EpisodeSummary) {
	f(s)
}

// diagnosticRecords builds the record set for a snapshot. Single agent
// samplers use the unsuffixed names.
func diagnosticRecords(snapshot Snapshot, poolSize int, single bool) Records {
	records := make(Records)
	for i := range snapshot.MaxPathReturn {
		suffix := "_agent"
		if !single {
			suffix = "_agent_" + strconv.Itoa(i)
		}
		records["max-path-return"+suffix] = snapshot.MaxPathReturn[i]
		records["mean-path-return"+suffix] = snapshot.MeanPathReturn[i]
		records["last-path-return"+suffix] = snapshot.LastPathReturn[i]
	}
	records["episodes"] = float64(snapshot.Episodes)
	records["total-samples"] = float64(snapshot.TotalSamples)
	records["pool-size"] = float64(poolSize)
	return records
}
