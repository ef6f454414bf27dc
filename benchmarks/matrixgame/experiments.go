package matrixgame

import (
	"fmt"

	"github.com/zeu5/rollout-sampler/analysis"
	"github.com/zeu5/rollout-sampler/benchmarks/common"
	"github.com/zeu5/rollout-sampler/buffer"
	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/policies"
	"github.com/zeu5/rollout-sampler/server"
)

// follower plays towards the last mean action. The flat observation is
// [round fraction, last mean action, own last action].
func follower() core.Policy {
	return policies.NewLinearPolicy(1, 3, []float64{0, 2, 0.5}, []float64{0}, 1)
}

// PrepareComparison builds, for every run, a game of random players and a
// game of followers.
func PrepareComparison(h *common.Harness) (*core.Comparison, error) {
	cmp := core.NewComparison()
	for run := 0; run < h.Flags.NumRuns; run++ {
		envConfig := DefaultEnvConfig()
		envConfig.Agents = h.Flags.Agents
		envConfig.Seed += uint64(run)

		candidates := map[string]func() core.Policy{
			"random": func() core.Policy {
				return policies.NewRandomPolicy(1, -1, 1)
			},
			"follower": follower,
		}
		for _, name := range []string{"random", "follower"} {
			e, err := prepareExperiment(h, fmt.Sprintf("matrixgame_%s_%d", name, run), envConfig, candidates[name])
			if err != nil {
				return nil, err
			}
			cmp.AddExperiment(e)
		}
	}
	return cmp, nil
}

func prepareExperiment(h *common.Harness, name string, envConfig EnvConfig, newPolicy func() core.Policy) (*core.Experiment, error) {
	agents := make([]core.Agent, envConfig.Agents)
	buffers := make([]server.Sizer, envConfig.Agents)
	for i := range agents {
		buf, err := buffer.NewReplayBuffer(h.Flags.BufferCapacity, h.Logger)
		if err != nil {
			return nil, err
		}
		buffers[i] = buf
		agents[i] = policies.NewBufferedAgent(newPolicy(), buf)
	}

	sampler, err := core.NewMultiAgentSampler(envConfig.Agents, h.Flags.SamplerConfig(), h.Emitter(name, buffers...), h.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating sampler %s: %w", name, err)
	}
	if err := sampler.Initialize(NewEnv(envConfig), agents); err != nil {
		return nil, fmt.Errorf("initializing sampler %s: %w", name, err)
	}
	h.Observe(name, sampler, 1)

	return &core.Experiment{
		Name:    name,
		Sampler: sampler,
		Learner: analysis.NewNoOpLearner(),
	}, nil
}
