package pointmass

import (
	"math"
	"time"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/zeu5/rollout-sampler/core"
)

type EnvConfig struct {
	// Bound of the square [-Bound, Bound]^2 the point lives in
	Bound float64
	// MaxStep is the largest displacement per axis in one step
	MaxStep float64
	// Radius around the goal that ends the episode
	Radius float64
	Goal   [2]float64
	Seed   uint64
}

func DefaultEnvConfig() EnvConfig {
	return EnvConfig{
		Bound:   5,
		MaxStep: 0.5,
		Radius:  0.25,
		Goal:    [2]float64{0, 0},
		Seed:    uint64(time.Now().UnixNano()),
	}
}

// Env is a point that has to be moved to a goal. The observation is the
// 2x2 matrix [[x, y], [goal x, goal y]], the reward the negative distance
// to the goal after the move.
type Env struct {
	config   EnvConfig
	position []float64
	rand     *erand.Rand
}

var _ core.Environment = &Env{}

func NewEnv(config EnvConfig) *Env {
	return &Env{
		config:   config,
		position: make([]float64, 2),
		rand:     erand.New(erand.NewSource(config.Seed)),
	}
}

func (e *Env) observation() mat.Matrix {
	return mat.NewDense(2, 2, []float64{
		e.position[0], e.position[1],
		e.config.Goal[0], e.config.Goal[1],
	})
}

func (e *Env) Position() []float64 {
	return []float64{e.position[0], e.position[1]}
}

func (e *Env) Reset() (mat.Matrix, error) {
	for i := range e.position {
		e.position[i] = (e.rand.Float64()*2 - 1) * e.config.Bound
	}
	return e.observation(), nil
}

func (e *Env) Step(action []float64) (*core.TimeStep, error) {
	for i := range e.position {
		var delta float64
		if i < len(action) {
			delta = clip(action[i], e.config.MaxStep)
		}
		e.position[i] = clip(e.position[i]+delta, e.config.Bound)
	}
	distance := floats.Distance(e.position, e.config.Goal[:], 2)
	return &core.TimeStep{
		Observation: e.observation(),
		Reward:      []float64{-distance},
		Done:        []bool{distance <= e.config.Radius},
		Info:        map[string]interface{}{"distance": distance},
	}, nil
}

func (e *Env) SampleAction() []float64 {
	return []float64{
		(e.rand.Float64()*2 - 1) * e.config.MaxStep,
		(e.rand.Float64()*2 - 1) * e.config.MaxStep,
	}
}

func clip(v, bound float64) float64 {
	return math.Max(-bound, math.Min(bound, v))
}
