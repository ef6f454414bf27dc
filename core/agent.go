package core

// Policy maps a flat observation to a flat action
type Policy interface {
	Act([]float64) ([]float64, error)
}

// Agent acts with its current policy and owns the replay buffer
// its experience is written to.
type Agent interface {
	Policy
	ReplayBuffer() ReplayBuffer
	SetPolicy(Policy)
}

// ReplayBuffer stores transitions and samples batches from them.
type ReplayBuffer interface {
	// Size is the number of transitions currently stored
	Size() int
	AddSample(*Transition) error
	RandomBatch(int) (*Batch, error)
}

// Transition is the unit of experience written to a replay buffer.
// OpponentAction is only populated by the multi agent sampler and holds
// the actions of all the other agents in ascending agent order.
type Transition struct {
	Observation     []float64 `json:"observation"`
	Action          []float64 `json:"action"`
	Reward          []float64 `json:"reward"`
	Terminal        []int8    `json:"terminal"`
	NextObservation []float64 `json:"next_observation"`
	OpponentAction  []float64 `json:"opponent_action,omitempty"`
}

// Batch is a set of transitions sampled from a replay buffer
type Batch struct {
	Transitions []*Transition
}

func (b *Batch) Len() int {
	return len(b.Transitions)
}
