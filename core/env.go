package core

import "gonum.org/v1/gonum/mat"

// Environment is a single agent environment. Observations can be of any
// shape, the samplers flatten them before use.
type Environment interface {
	// Reset starts a new episode and returns the initial observation
	Reset() (mat.Matrix, error)
	// Step applies the action and returns the outcome
	Step([]float64) (*TimeStep, error)
	// SampleAction draws a random action from the action space
	SampleAction() []float64
}

// TimeStep is the outcome of a single environment step.
// Reward and Done can have more than one component.
type TimeStep struct {
	Observation mat.Matrix
	Reward      []float64
	Done        []bool
	Info        map[string]interface{}
}

// MultiEnvironment is an environment shared by a fixed number of agents.
// All the slices are indexed by agent.
type MultiEnvironment interface {
	Reset() ([]mat.Matrix, error)
	Step([][]float64) (*MultiTimeStep, error)
	// SampleJointAction draws one action for every agent from the joint action space
	SampleJointAction() [][]float64
}

type MultiTimeStep struct {
	Observations []mat.Matrix
	Rewards      []float64
	Dones        []bool
	Info         map[string]interface{}
}
