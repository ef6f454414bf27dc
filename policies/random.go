package policies

import (
	"time"

	erand "golang.org/x/exp/rand"

	"github.com/zeu5/rollout-sampler/core"
)

// RandomPolicy picks every action dimension uniformly in [Low, High)
type RandomPolicy struct {
	ActionDim int
	Low       float64
	High      float64
	rand      *erand.Rand
}

var _ core.Policy = &RandomPolicy{}

func NewRandomPolicy(actionDim int, low, high float64) *RandomPolicy {
	return &RandomPolicy{
		ActionDim: actionDim,
		Low:       low,
		High:      high,
		rand:      erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
	}
}

func (r *RandomPolicy) Seed(seed uint64) {
	r.rand = erand.New(erand.NewSource(seed))
}

func (r *RandomPolicy) Act(_ []float64) ([]float64, error) {
	action := make([]float64, r.ActionDim)
	for i := range action {
		action[i] = r.Low + r.rand.Float64()*(r.High-r.Low)
	}
	return action, nil
}
