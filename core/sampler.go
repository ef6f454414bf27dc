package core

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

var (
	ErrNotInitialized = errors.New("sampler not initialized")
	ErrAgentIndex     = errors.New("agent index out of range")
	ErrShape          = errors.New("unexpected number of per agent values")
	ErrInvalidConfig  = errors.New("invalid sampler config")
)

// Sampler drives the interaction with an environment, one step per call
// to Sample, and stores the experience in the agents' replay buffers.
type Sampler interface {
	// Sample performs exactly one environment step
	Sample(explore bool) error
	// BatchReady is true once enough transitions are stored to train
	BatchReady() bool
	// RandomBatch samples a batch from the replay buffer of the agent
	RandomBatch(agent int) (*Batch, error)
	// LogDiagnostics emits the current statistics
	LogDiagnostics()
	Snapshot() Snapshot
	Agents() int
	// Terminate releases the environment
	Terminate() error
}

// Config of a sampler, fixed at construction
type Config struct {
	// MaxPathLength is the episode horizon
	MaxPathLength int
	// MinPoolSize is the buffer occupancy needed before training
	MinPoolSize float64
	BatchSize   int
	// GlobalReward replaces every agent's reward with the sum of all the rewards.
	// Only used by the multi agent sampler.
	GlobalReward bool
}

func DefaultConfig() Config {
	return Config{
		MaxPathLength: 20,
		MinPoolSize:   1e5,
		BatchSize:     64,
		GlobalReward:  false,
	}
}

func (c Config) Validate() error {
	if c.MaxPathLength <= 0 {
		return fmt.Errorf("%w: max path length %d", ErrInvalidConfig, c.MaxPathLength)
	}
	if c.MinPoolSize <= 0 {
		return fmt.Errorf("%w: min pool size %v", ErrInvalidConfig, c.MinPoolSize)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size %d", ErrInvalidConfig, c.BatchSize)
	}
	return nil
}

// rollout holds the bookkeeping shared by the single and the multi agent
// samplers. A single agent sampler is a rollout over one agent.
type rollout struct {
	config    Config
	numAgents int
	step      int
	episode   *EpisodeState
	stats     *StatisticsTracker

	emitter   MetricsEmitter
	observers []EpisodeObserver
	logger    zerolog.Logger
}

func newRollout(config Config, agents int, emitter MetricsEmitter, logger zerolog.Logger) rollout {
	if emitter == nil {
		emitter = NoOpEmitter()
	}
	return rollout{
		config:    config,
		numAgents: agents,
		episode:   NewEpisodeState(agents),
		stats:     NewStatisticsTracker(agents),
		emitter:   emitter,
		observers: make([]EpisodeObserver, 0),
		logger:    logger,
	}
}

// AddObserver registers an observer called at the end of every episode
func (r *rollout) AddObserver(o EpisodeObserver) {
	r.observers = append(r.observers, o)
}

// Step is the number of calls to Sample so far
func (r *rollout) Step() int {
	return r.step
}

func (r *rollout) Agents() int {
	return r.numAgents
}

func (r *rollout) Snapshot() Snapshot {
	return r.stats.Snapshot()
}

// Episode returns the state of the episode in progress
func (r *rollout) Episode() *EpisodeState {
	return r.episode
}

// advance accounts for one step with the per agent rewards
func (r *rollout) advance(rewards []float64) {
	r.episode.Advance(rewards)
	r.stats.Sample()
}

// finalize closes the current episode. The statistics are updated before
// the environment is reset so that a failed reset does not lose the episode.
func (r *rollout) finalize(explore bool, terminal [][]float64, poolSize int, reset func() ([][]float64, error)) error {
	pathLength := r.episode.PathLength
	r.stats.Finalize(r.episode.PathReturn, pathLength)
	r.episode.Reset()
	r.episode.Observations = nil

	snapshot := r.stats.Snapshot()
	r.logger.Debug().
		Int("episode", snapshot.Episodes).
		Int("path_length", pathLength).
		Floats64("last_return", snapshot.LastPathReturn).
		Floats64("max_return", snapshot.MaxPathReturn).
		Bool("explore", explore).
		Msg("episode finished")

	r.emitter.Emit(diagnosticRecords(snapshot, poolSize, r.numAgents == 1))
	summary := &EpisodeSummary{
		Episode:              snapshot.Episodes,
		PathLength:           pathLength,
		Explore:              explore,
		Stats:                snapshot,
		TerminalObservations: terminal,
	}
	for _, o := range r.observers {
		o.EpisodeEnd(summary)
	}

	observations, err := reset()
	if err != nil {
		return fmt.Errorf("resetting environment: %w", err)
	}
	r.episode.Observations = observations
	return nil
}

func (r *rollout) diagnostics(poolSize int) {
	r.emitter.Emit(diagnosticRecords(r.stats.Snapshot(), poolSize, r.numAgents == 1))
}

func terminate(env interface{}) error {
	if closer, ok := env.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
