package core

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

// SingleAgentSampler samples one environment with one agent
type SingleAgentSampler struct {
	rollout

	env   Environment
	agent Agent
}

var _ Sampler = &SingleAgentSampler{}

// NewSingleAgentSampler creates a sampler, a nil emitter drops the metrics.
// Initialize must be called before sampling.
func NewSingleAgentSampler(config Config, emitter MetricsEmitter, logger zerolog.Logger) (*SingleAgentSampler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &SingleAgentSampler{
		rollout: newRollout(config, 1, emitter, logger.With().Str("component", "single_sampler").Logger()),
	}, nil
}

// Initialize attaches the environment and the agent and forgets the
// current observation.
func (s *SingleAgentSampler) Initialize(env Environment, agent Agent) {
	s.env = env
	s.agent = agent
	s.episode.Observations = nil
}

func (s *SingleAgentSampler) SetPolicy(p Policy) {
	s.agent.SetPolicy(p)
}

func (s *SingleAgentSampler) Sample(explore bool) error {
	if s.env == nil || s.agent == nil {
		return ErrNotInitialized
	}
	s.step += 1

	if !s.episode.HasObservation() {
		obs, err := s.env.Reset()
		if err != nil {
			return fmt.Errorf("resetting environment: %w", err)
		}
		s.episode.Observations = [][]float64{Flatten(obs)}
	}
	observation := s.episode.Observations[0]

	var action []float64
	if explore {
		action = s.env.SampleAction()
	} else {
		// the policy gets its own copy, observation is stored below
		a, err := s.agent.Act(copyFloats(observation))
		if err != nil {
			return fmt.Errorf("selecting action: %w", err)
		}
		action = a
	}
	action = copyFloats(action)

	timeStep, err := s.env.Step(action)
	if err != nil {
		return fmt.Errorf("stepping environment: %w", err)
	}
	nextObservation := Flatten(timeStep.Observation)
	reward := copyFloats(timeStep.Reward)

	s.advance([]float64{stat.Mean(reward, nil)})
	err = s.agent.ReplayBuffer().AddSample(&Transition{
		Observation:     observation,
		Action:          action,
		Reward:          reward,
		Terminal:        terminalFlags(timeStep.Done),
		NextObservation: nextObservation,
	})
	if err != nil {
		return fmt.Errorf("adding sample: %w", err)
	}

	if !s.episode.Done(timeStep.Done, s.config.MaxPathLength) {
		s.episode.Observations = [][]float64{nextObservation}
		return nil
	}
	return s.finalize(explore, [][]float64{nextObservation}, s.poolSize(), s.reset)
}

func (s *SingleAgentSampler) reset() ([][]float64, error) {
	obs, err := s.env.Reset()
	if err != nil {
		return nil, err
	}
	return [][]float64{Flatten(obs)}, nil
}

func (s *SingleAgentSampler) poolSize() int {
	if s.agent == nil {
		return 0
	}
	return s.agent.ReplayBuffer().Size()
}

func (s *SingleAgentSampler) BatchReady() bool {
	return BatchReady([]int{s.poolSize()}, s.config.MinPoolSize)
}

func (s *SingleAgentSampler) RandomBatch(agent int) (*Batch, error) {
	if agent != 0 {
		return nil, fmt.Errorf("%w: %d", ErrAgentIndex, agent)
	}
	if s.agent == nil {
		return nil, ErrNotInitialized
	}
	return s.agent.ReplayBuffer().RandomBatch(s.config.BatchSize)
}

func (s *SingleAgentSampler) LogDiagnostics() {
	s.diagnostics(s.poolSize())
}

func (s *SingleAgentSampler) Terminate() error {
	return terminate(s.env)
}
