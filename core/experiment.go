package core

// Learner consumes the batches sampled once the sampler is ready to train.
// Optimization itself happens outside this module.
type Learner interface {
	Train(agent int, batch *Batch) error
}

// Experiment is a sampler together with the learner fed from it.
// The sampler must already be initialized.
type Experiment struct {
	Name    string
	Sampler Sampler
	Learner Learner
}

type RunConfig struct {
	// Steps is the total number of calls to Sample
	Steps int
	// ExploreSteps is the number of initial steps with random actions
	ExploreSteps int
	// TrainEvery is the number of steps between training batches
	TrainEvery int

	ThresholdConsecutiveErrors int
}

func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		Steps:                      10000,
		ExploreSteps:               1000,
		TrainEvery:                 1,
		ThresholdConsecutiveErrors: 20,
	}
}

// Comparison runs a set of independent experiments
type Comparison struct {
	Experiments []*Experiment
}

func NewComparison() *Comparison {
	return &Comparison{
		Experiments: make([]*Experiment, 0),
	}
}

func (c *Comparison) AddExperiment(e *Experiment) {
	c.Experiments = append(c.Experiments, e)
}
