package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zeu5/rollout-sampler/benchmarks/common"
)

var (
	flags          *common.Flags = common.DefaultFlags()
	savePath       string
	horizon        int
	minPoolSize    float64
	batchSize      int
	globalReward   bool
	agents         int
	bufferCapacity int

	numRuns              int
	steps                int
	exploreSteps         int
	trainEvery           int
	maxConsecutiveErrors int

	httpAddr   string
	redisAddr  string
	plot       bool
	plotWindow int

	parallelism int
	debug       bool
)

func AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&savePath, "save-path", flags.SavePath, "Path to save results")
	cmd.PersistentFlags().IntVar(&horizon, "horizon", flags.Horizon, "Maximum path length of an episode")
	cmd.PersistentFlags().Float64Var(&minPoolSize, "min-pool-size", flags.MinPoolSize, "Buffer size needed before training")
	cmd.PersistentFlags().IntVar(&batchSize, "batch-size", flags.BatchSize, "Training batch size")
	cmd.PersistentFlags().BoolVar(&globalReward, "global-reward", flags.GlobalReward, "Give every agent the sum of the rewards")
	cmd.PersistentFlags().IntVar(&agents, "agents", flags.Agents, "Number of agents in multi agent benchmarks")
	cmd.PersistentFlags().IntVar(&bufferCapacity, "buffer-capacity", flags.BufferCapacity, "Capacity of each replay buffer")

	cmd.PersistentFlags().IntVar(&numRuns, "num-runs", flags.NumRuns, "Number of runs")
	cmd.PersistentFlags().IntVar(&steps, "steps", flags.Steps, "Number of sampling steps")
	cmd.PersistentFlags().IntVar(&exploreSteps, "explore-steps", flags.ExploreSteps, "Number of initial exploration steps")
	cmd.PersistentFlags().IntVar(&trainEvery, "train-every", flags.TrainEvery, "Steps between training batches")
	cmd.PersistentFlags().IntVar(&maxConsecutiveErrors, "max-consecutive-errors", flags.MaxConsecutiveErrors, "Maximum number of consecutive errors")

	cmd.PersistentFlags().StringVar(&httpAddr, "http-addr", flags.HTTPAddr, "Address to serve stats on, disabled when empty")
	cmd.PersistentFlags().StringVar(&redisAddr, "redis-addr", flags.RedisAddr, "Redis address to push diagnostics to, disabled when empty")
	cmd.PersistentFlags().BoolVar(&plot, "plot", flags.Plot, "Plot the episode returns")
	cmd.PersistentFlags().IntVar(&plotWindow, "plot-window", flags.PlotWindow, "Moving average window of the plots")

	cmd.PersistentFlags().IntVar(&parallelism, "parallelism", flags.Parallelism, "Number of parallel runs")
	cmd.PersistentFlags().BoolVar(&debug, "debug", flags.Debug, "Enable debug logging")
}

func UpdateFlags() {
	flags.SavePath = savePath
	flags.Horizon = horizon
	flags.MinPoolSize = minPoolSize
	flags.BatchSize = batchSize
	flags.GlobalReward = globalReward
	flags.Agents = agents
	flags.BufferCapacity = bufferCapacity

	flags.NumRuns = numRuns
	flags.Steps = steps
	flags.ExploreSteps = exploreSteps
	flags.TrainEvery = trainEvery
	flags.MaxConsecutiveErrors = maxConsecutiveErrors

	flags.HTTPAddr = httpAddr
	flags.RedisAddr = redisAddr
	flags.Plot = plot
	flags.PlotWindow = plotWindow

	flags.Parallelism = parallelism
	flags.Debug = debug
}
