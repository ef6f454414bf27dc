package common

import (
	"path"

	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/util"
)

type Flags struct {
	SavePath string
	SamplerFlags
	RunFlags
	OutputFlags
	Parallelism int
	Debug       bool
}

type SamplerFlags struct {
	Horizon        int
	MinPoolSize    float64
	BatchSize      int
	GlobalReward   bool
	Agents         int
	BufferCapacity int
}

type RunFlags struct {
	NumRuns              int
	Steps                int
	ExploreSteps         int
	TrainEvery           int
	MaxConsecutiveErrors int
}

type OutputFlags struct {
	HTTPAddr  string
	RedisAddr string
	Plot      bool
	// PlotWindow is the moving average window of the return curves
	PlotWindow int
}

func DefaultFlags() *Flags {
	sampler := core.DefaultConfig()
	run := core.DefaultRunConfig()
	return &Flags{
		SavePath: "results",
		SamplerFlags: SamplerFlags{
			Horizon:        sampler.MaxPathLength,
			MinPoolSize:    1000,
			BatchSize:      sampler.BatchSize,
			GlobalReward:   sampler.GlobalReward,
			Agents:         3,
			BufferCapacity: 100000,
		},
		RunFlags: RunFlags{
			NumRuns:              1,
			Steps:                run.Steps,
			ExploreSteps:         run.ExploreSteps,
			TrainEvery:           run.TrainEvery,
			MaxConsecutiveErrors: run.ThresholdConsecutiveErrors,
		},
		OutputFlags: OutputFlags{
			Plot:       true,
			PlotWindow: 20,
		},
		Parallelism: 4,
		Debug:       false,
	}
}

func (f *Flags) SamplerConfig() core.Config {
	return core.Config{
		MaxPathLength: f.Horizon,
		MinPoolSize:   f.MinPoolSize,
		BatchSize:     f.BatchSize,
		GlobalReward:  f.GlobalReward,
	}
}

func (f *Flags) RunConfig() *core.RunConfig {
	return &core.RunConfig{
		Steps:                      f.Steps,
		ExploreSteps:               f.ExploreSteps,
		TrainEvery:                 f.TrainEvery,
		ThresholdConsecutiveErrors: f.MaxConsecutiveErrors,
	}
}

func (f *Flags) Record() error {
	return util.SaveJson(path.Join(f.SavePath, "config.json"), f)
}
