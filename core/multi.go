package core

import (
	"fmt"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// MultiAgentSampler samples one environment shared by an ordered list of
// agents. Every agent writes its own view of the joint step into its own
// replay buffer.
type MultiAgentSampler struct {
	rollout

	env    MultiEnvironment
	agents []Agent
}

var _ Sampler = &MultiAgentSampler{}

func NewMultiAgentSampler(agents int, config Config, emitter MetricsEmitter, logger zerolog.Logger) (*MultiAgentSampler, error) {
	if agents <= 0 {
		return nil, fmt.Errorf("%w: %d agents", ErrInvalidConfig, agents)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &MultiAgentSampler{
		rollout: newRollout(config, agents, emitter, logger.With().Str("component", "multi_sampler").Int("agents", agents).Logger()),
	}, nil
}

func (s *MultiAgentSampler) Initialize(env MultiEnvironment, agents []Agent) error {
	if len(agents) != s.numAgents {
		return fmt.Errorf("%w: expected %d agents, got %d", ErrShape, s.numAgents, len(agents))
	}
	s.env = env
	s.agents = agents
	s.episode.Observations = nil
	return nil
}

// SetPolicies assigns policies to agents in order. Extra policies or
// agents are left alone.
func (s *MultiAgentSampler) SetPolicies(policies []Policy) {
	for i := 0; i < len(policies) && i < len(s.agents); i++ {
		s.agents[i].SetPolicy(policies[i])
	}
}

func (s *MultiAgentSampler) Sample(explore bool) error {
	if s.env == nil || s.agents == nil {
		return ErrNotInitialized
	}
	s.step += 1

	if !s.episode.HasObservation() {
		observations, err := s.reset()
		if err != nil {
			return fmt.Errorf("resetting environment: %w", err)
		}
		s.episode.Observations = observations
	}
	observations := s.episode.Observations

	actions := make([][]float64, s.numAgents)
	if explore {
		joint := s.env.SampleJointAction()
		if len(joint) != s.numAgents {
			return fmt.Errorf("%w: joint action for %d agents", ErrShape, len(joint))
		}
		for i, a := range joint {
			actions[i] = copyFloats(a)
		}
	} else {
		for i, agent := range s.agents {
			a, err := agent.Act(copyFloats(observations[i]))
			if err != nil {
				return fmt.Errorf("selecting action for agent %d: %w", i, err)
			}
			actions[i] = copyFloats(a)
		}
	}

	timeStep, err := s.env.Step(actions)
	if err != nil {
		return fmt.Errorf("stepping environment: %w", err)
	}
	if len(timeStep.Observations) != s.numAgents || len(timeStep.Rewards) != s.numAgents || len(timeStep.Dones) != s.numAgents {
		return fmt.Errorf("%w: step returned %d observations, %d rewards, %d dones",
			ErrShape, len(timeStep.Observations), len(timeStep.Rewards), len(timeStep.Dones))
	}
	nextObservations := flattenAll(timeStep.Observations)

	rewards := copyFloats(timeStep.Rewards)
	if s.config.GlobalReward {
		total := floats.Sum(rewards)
		for i := range rewards {
			rewards[i] = total
		}
	}

	s.advance(rewards)
	for i, agent := range s.agents {
		err := agent.ReplayBuffer().AddSample(&Transition{
			Observation:     observations[i],
			Action:          actions[i],
			Reward:          []float64{rewards[i]},
			Terminal:        []int8{terminalFlag(timeStep.Dones[i])},
			NextObservation: nextObservations[i],
			OpponentAction:  OpponentAction(actions, i),
		})
		if err != nil {
			return fmt.Errorf("adding sample for agent %d: %w", i, err)
		}
	}

	if !s.episode.Done(timeStep.Dones, s.config.MaxPathLength) {
		s.episode.Observations = nextObservations
		return nil
	}
	return s.finalize(explore, nextObservations, s.poolSize(), s.reset)
}

func (s *MultiAgentSampler) reset() ([][]float64, error) {
	observations, err := s.env.Reset()
	if err != nil {
		return nil, err
	}
	if len(observations) != s.numAgents {
		return nil, fmt.Errorf("%w: reset returned %d observations", ErrShape, len(observations))
	}
	return flattenAll(observations), nil
}

func (s *MultiAgentSampler) sizes() []int {
	sizes := make([]int, len(s.agents))
	for i, agent := range s.agents {
		sizes[i] = agent.ReplayBuffer().Size()
	}
	return sizes
}

func (s *MultiAgentSampler) poolSize() int {
	max := 0
	for _, size := range s.sizes() {
		if size > max {
			max = size
		}
	}
	return max
}

// BatchReady opens as soon as any agent's buffer reaches the minimum pool size
func (s *MultiAgentSampler) BatchReady() bool {
	return BatchReady(s.sizes(), s.config.MinPoolSize)
}

func (s *MultiAgentSampler) RandomBatch(agent int) (*Batch, error) {
	if s.agents == nil {
		return nil, ErrNotInitialized
	}
	if agent < 0 || agent >= len(s.agents) {
		return nil, fmt.Errorf("%w: %d", ErrAgentIndex, agent)
	}
	return s.agents[agent].ReplayBuffer().RandomBatch(s.config.BatchSize)
}

func (s *MultiAgentSampler) LogDiagnostics() {
	s.diagnostics(s.poolSize())
}

func (s *MultiAgentSampler) Terminate() error {
	return terminate(s.env)
}

func flattenAll(ms []mat.Matrix) [][]float64 {
	out := make([][]float64, len(ms))
	for i, m := range ms {
		out[i] = Flatten(m)
	}
	return out
}
