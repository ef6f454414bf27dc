package core

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

var errFake = errors.New("fake failure")

// countingEnv observes [episode step, resets] and rewards every step with
// rewardFn(step). It terminates after doneAt steps when doneAt > 0.
type countingEnv struct {
	step     int
	resets   int
	doneAt   int
	rewardFn func(int) []float64
	stepErr  error
	sampled  int
	actions  [][]float64
	closed   bool
}

func newCountingEnv(doneAt int, rewardFn func(int) []float64) *countingEnv {
	return &countingEnv{
		doneAt:   doneAt,
		rewardFn: rewardFn,
		actions:  make([][]float64, 0),
	}
}

func (e *countingEnv) observation() mat.Matrix {
	return mat.NewDense(1, 2, []float64{float64(e.step), float64(e.resets)})
}

func (e *countingEnv) Reset() (mat.Matrix, error) {
	e.step = 0
	e.resets += 1
	return e.observation(), nil
}

func (e *countingEnv) Step(action []float64) (*TimeStep, error) {
	if e.stepErr != nil {
		return nil, e.stepErr
	}
	e.actions = append(e.actions, action)
	e.step += 1
	done := e.doneAt > 0 && e.step >= e.doneAt
	return &TimeStep{
		Observation: e.observation(),
		Reward:      e.rewardFn(e.step),
		Done:        []bool{done},
	}, nil
}

func (e *countingEnv) SampleAction() []float64 {
	e.sampled += 1
	return []float64{-1}
}

func (e *countingEnv) Close() error {
	e.closed = true
	return nil
}

type fakeBuffer struct {
	transitions []*Transition
}

func (b *fakeBuffer) Size() int {
	return len(b.transitions)
}

func (b *fakeBuffer) AddSample(t *Transition) error {
	b.transitions = append(b.transitions, t)
	return nil
}

func (b *fakeBuffer) RandomBatch(n int) (*Batch, error) {
	if len(b.transitions) == 0 {
		return nil, errFake
	}
	batch := &Batch{Transitions: make([]*Transition, n)}
	for i := range batch.Transitions {
		batch.Transitions[i] = b.transitions[i%len(b.transitions)]
	}
	return batch, nil
}

func (b *fakeBuffer) last() *Transition {
	return b.transitions[len(b.transitions)-1]
}

type policyFunc func([]float64) ([]float64, error)

func (f policyFunc) Act(obs []float64) ([]float64, error) {
	return f(obs)
}

// scalingPolicy scales its input in place before acting
func scalingPolicy() Policy {
	return policyFunc(func(obs []float64) ([]float64, error) {
		for i := range obs {
			obs[i] *= 100
		}
		return []float64{0.5}, nil
	})
}

func constantPolicy(action ...float64) Policy {
	return policyFunc(func([]float64) ([]float64, error) {
		return action, nil
	})
}

type fakeAgent struct {
	policy Policy
	buffer *fakeBuffer
}

func newFakeAgent(policy Policy) *fakeAgent {
	return &fakeAgent{policy: policy, buffer: &fakeBuffer{}}
}

func (a *fakeAgent) Act(obs []float64) ([]float64, error) {
	return a.policy.Act(obs)
}

func (a *fakeAgent) ReplayBuffer() ReplayBuffer {
	return a.buffer
}

func (a *fakeAgent) SetPolicy(p Policy) {
	a.policy = p
}

// multiEnv hands out scripted rewards and dones, one entry per step,
// and observes [agent, step] for every agent.
type multiEnv struct {
	agents  int
	step    int
	resets  int
	rewards [][]float64
	dones   [][]bool
	actions [][][]float64
}

func (e *multiEnv) observations() []mat.Matrix {
	out := make([]mat.Matrix, e.agents)
	for i := range out {
		out[i] = mat.NewVecDense(2, []float64{float64(i), float64(e.step)})
	}
	return out
}

func (e *multiEnv) Reset() ([]mat.Matrix, error) {
	e.step = 0
	e.resets += 1
	return e.observations(), nil
}

func (e *multiEnv) Step(actions [][]float64) (*MultiTimeStep, error) {
	e.actions = append(e.actions, actions)
	idx := len(e.actions) - 1
	e.step += 1

	rewards := make([]float64, e.agents)
	if idx < len(e.rewards) {
		copy(rewards, e.rewards[idx])
	}
	dones := make([]bool, e.agents)
	if idx < len(e.dones) {
		copy(dones, e.dones[idx])
	}
	return &MultiTimeStep{
		Observations: e.observations(),
		Rewards:      rewards,
		Dones:        dones,
	}, nil
}

func (e *multiEnv) SampleJointAction() [][]float64 {
	out := make([][]float64, e.agents)
	for i := range out {
		out[i] = []float64{100 + float64(i)}
	}
	return out
}
