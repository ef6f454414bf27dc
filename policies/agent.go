package policies

import "github.com/zeu5/rollout-sampler/core"

// BufferedAgent acts with a swappable policy and owns a replay buffer
type BufferedAgent struct {
	policy core.Policy
	buffer core.ReplayBuffer
}

var _ core.Agent = &BufferedAgent{}

func NewBufferedAgent(policy core.Policy, buffer core.ReplayBuffer) *BufferedAgent {
	return &BufferedAgent{
		policy: policy,
		buffer: buffer,
	}
}

func (a *BufferedAgent) Act(observation []float64) ([]float64, error) {
	return a.policy.Act(observation)
}

func (a *BufferedAgent) ReplayBuffer() core.ReplayBuffer {
	return a.buffer
}

func (a *BufferedAgent) SetPolicy(p core.Policy) {
	a.policy = p
}

func (a *BufferedAgent) Policy() core.Policy {
	return a.policy
}
