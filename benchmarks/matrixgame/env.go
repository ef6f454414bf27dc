package matrixgame

import (
	"math"
	"time"

	erand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/zeu5/rollout-sampler/core"
)

type EnvConfig struct {
	Agents int
	// Rounds played before every agent is done
	Rounds int
	Seed   uint64
}

func DefaultEnvConfig() EnvConfig {
	return EnvConfig{
		Agents: 3,
		Rounds: 25,
		Seed:   uint64(time.Now().UnixNano()),
	}
}

// Env is a repeated coordination game. Every agent plays a scalar in
// [-1, 1] and is rewarded by 1 - |own action - mean action|, so agents
// gain by agreeing. Agent i observes [round fraction, last mean action,
// own last action].
type Env struct {
	config      EnvConfig
	round       int
	lastActions []float64
	rand        *erand.Rand
}

var _ core.MultiEnvironment = &Env{}

func NewEnv(config EnvConfig) *Env {
	return &Env{
		config:      config,
		lastActions: make([]float64, config.Agents),
		rand:        erand.New(erand.NewSource(config.Seed)),
	}
}

func (e *Env) observations() []mat.Matrix {
	mean := stat.Mean(e.lastActions, nil)
	out := make([]mat.Matrix, e.config.Agents)
	for i := range out {
		out[i] = mat.NewVecDense(3, []float64{
			float64(e.round) / float64(e.config.Rounds),
			mean,
			e.lastActions[i],
		})
	}
	return out
}

func (e *Env) Reset() ([]mat.Matrix, error) {
	e.round = 0
	for i := range e.lastActions {
		e.lastActions[i] = 0
	}
	return e.observations(), nil
}

func (e *Env) Step(actions [][]float64) (*core.MultiTimeStep, error) {
	for i := range e.lastActions {
		var a float64
		if i < len(actions) && len(actions[i]) > 0 {
			a = actions[i][0]
		}
		e.lastActions[i] = math.Max(-1, math.Min(1, a))
	}
	e.round += 1

	mean := stat.Mean(e.lastActions, nil)
	rewards := make([]float64, e.config.Agents)
	dones := make([]bool, e.config.Agents)
	for i, a := range e.lastActions {
		rewards[i] = 1 - math.Abs(a-mean)
		dones[i] = e.round >= e.config.Rounds
	}
	return &core.MultiTimeStep{
		Observations: e.observations(),
		Rewards:      rewards,
		Dones:        dones,
		Info:         map[string]interface{}{"round": e.round},
	}, nil
}

func (e *Env) SampleJointAction() [][]float64 {
	out := make([][]float64, e.config.Agents)
	for i := range out {
		out[i] = []float64{e.rand.Float64()*2 - 1}
	}
	return out
}
