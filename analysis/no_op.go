package analysis

import "github.com/zeu5/rollout-sampler/core"

// NoOpLearner accepts batches without training on them. It counts the
// batches and transitions it receives per agent.
type NoOpLearner struct {
	Batches     map[int]int
	Transitions map[int]int
}

var _ core.Learner = &NoOpLearner{}

func NewNoOpLearner() *NoOpLearner {
	return &NoOpLearner{
		Batches:     make(map[int]int),
		Transitions: make(map[int]int),
	}
}

func (n *NoOpLearner) Train(agent int, batch *core.Batch) error {
	n.Batches[agent] += 1
	n.Transitions[agent] += batch.Len()
	return nil
}
