package pointmass

import (
	"fmt"

	"github.com/zeu5/rollout-sampler/analysis"
	"github.com/zeu5/rollout-sampler/benchmarks/common"
	"github.com/zeu5/rollout-sampler/buffer"
	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/policies"
)

// controller moves the point straight towards the goal. The flat
// observation is [x, y, goal x, goal y].
func controller(maxStep float64) core.Policy {
	return policies.NewLinearPolicy(2, 4, []float64{
		-1, 0, 1, 0,
		0, -1, 0, 1,
	}, []float64{0, 0}, maxStep)
}

// PrepareComparison builds, for every run, one experiment acting at
// random and one acting with the goal seeking controller.
func PrepareComparison(h *common.Harness) (*core.Comparison, error) {
	cmp := core.NewComparison()
	for run := 0; run < h.Flags.NumRuns; run++ {
		envConfig := DefaultEnvConfig()
		envConfig.Seed += uint64(run)

		candidates := map[string]core.Policy{
			"random":     policies.NewRandomPolicy(2, -envConfig.MaxStep, envConfig.MaxStep),
			"controller": controller(envConfig.MaxStep),
		}
		for _, name := range []string{"random", "controller"} {
			e, err := prepareExperiment(h, fmt.Sprintf("pointmass_%s_%d", name, run), envConfig, candidates[name])
			if err != nil {
				return nil, err
			}
			cmp.AddExperiment(e)
		}
	}
	return cmp, nil
}

func prepareExperiment(h *common.Harness, name string, envConfig EnvConfig, policy core.Policy) (*core.Experiment, error) {
	buf, err := buffer.NewReplayBuffer(h.Flags.BufferCapacity, h.Logger)
	if err != nil {
		return nil, err
	}
	sampler, err := core.NewSingleAgentSampler(h.Flags.SamplerConfig(), h.Emitter(name, buf), h.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating sampler %s: %w", name, err)
	}
	sampler.Initialize(NewEnv(envConfig), policies.NewBufferedAgent(policy, buf))
	h.Observe(name, sampler, 2)

	return &core.Experiment{
		Name:    name,
		Sampler: sampler,
		Learner: analysis.NewNoOpLearner(),
	}, nil
}
