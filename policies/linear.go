package policies

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/zeu5/rollout-sampler/core"
)

var ErrObservationSize = errors.New("observation size does not match the policy weights")

// LinearPolicy is a deterministic policy computing Scale * tanh(W·obs + b)
type LinearPolicy struct {
	W     *mat.Dense
	B     *mat.VecDense
	Scale float64
}

var _ core.Policy = &LinearPolicy{}

// NewLinearPolicy creates the policy from row major weights of shape
// actionDim x obsDim
func NewLinearPolicy(actionDim, obsDim int, weights, bias []float64, scale float64) *LinearPolicy {
	return &LinearPolicy{
		W:     mat.NewDense(actionDim, obsDim, weights),
		B:     mat.NewVecDense(actionDim, bias),
		Scale: scale,
	}
}

func (l *LinearPolicy) Act(observation []float64) ([]float64, error) {
	r, c := l.W.Dims()
	if len(observation) != c {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrObservationSize, c, len(observation))
	}
	out := mat.NewVecDense(r, nil)
	out.MulVec(l.W, mat.NewVecDense(c, observation))
	out.AddVec(out, l.B)

	action := make([]float64, r)
	for i := range action {
		action[i] = l.Scale * math.Tanh(out.AtVec(i))
	}
	return action, nil
}
