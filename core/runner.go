package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/zeu5/rollout-sampler/util"
)

var (
	ErrTooManyErrors = errors.New("too many errors")
)

type ExperimentResult struct {
	Steps      int
	ErrorSteps int
	Episodes   int
	Batches    int

	Error    error
	Snapshot Snapshot
}

func (r *ExperimentResult) IsError() bool {
	return r.Error != nil
}

// Run drives the sampler for the configured number of steps
func (e *Experiment) Run(ctx context.Context, rConfig *RunConfig) *ExperimentResult {
	return e.run(ctx, rConfig, nil)
}

func (e *Experiment) run(ctx context.Context, rConfig *RunConfig, out *util.ParallelOutput) *ExperimentResult {
	result := &ExperimentResult{}

	threshold := rConfig.ThresholdConsecutiveErrors
	if threshold <= 0 {
		threshold = 1
	}
	consecutiveErrors := 0
StepLoop:
	for step := 0; step < rConfig.Steps; step++ {
		select {
		case <-ctx.Done():
			result.Error = ctx.Err()
			break StepLoop
		default:
		}

		if err := e.Sampler.Sample(step < rConfig.ExploreSteps); err != nil {
			result.ErrorSteps++
			if consecutiveErrors++; consecutiveErrors >= threshold {
				result.Error = fmt.Errorf("%w: %w", ErrTooManyErrors, err)
				break StepLoop
			}
			continue
		}
		consecutiveErrors = 0
		result.Steps++

		if e.Learner != nil && rConfig.TrainEvery > 0 && result.Steps%rConfig.TrainEvery == 0 && e.Sampler.BatchReady() {
			for agent := 0; agent < e.Sampler.Agents(); agent++ {
				batch, err := e.Sampler.RandomBatch(agent)
				if err != nil {
					result.Error = fmt.Errorf("sampling batch for agent %d: %w", agent, err)
					break StepLoop
				}
				if err := e.Learner.Train(agent, batch); err != nil {
					result.Error = fmt.Errorf("training agent %d: %w", agent, err)
					break StepLoop
				}
				result.Batches++
			}
		}

		if out != nil {
			snapshot := e.Sampler.Snapshot()
			out.TrySet(fmt.Sprintf(
				"Experiment: %s, Steps: %d/%d, Episodes: %d, Batches: %d, Errors: %d",
				e.Name, result.Steps, rConfig.Steps, snapshot.Episodes, result.Batches, result.ErrorSteps,
			))
		}
	}

	e.Sampler.LogDiagnostics()
	result.Snapshot = e.Sampler.Snapshot()
	result.Episodes = result.Snapshot.Episodes
	if out != nil {
		status := "done"
		if result.Error != nil {
			status = result.Error.Error()
		}
		out.Set(fmt.Sprintf(
			"Experiment: %s, Steps: %d/%d, Episodes: %d, Batches: %d, Errors: %d, Status: %s",
			e.Name, result.Steps, rConfig.Steps, result.Episodes, result.Batches, result.ErrorSteps, status,
		))
	}
	return result
}

// parallelWork is one experiment handed to a worker
type parallelWork struct {
	experiment *Experiment
	output     *util.ParallelOutput
}

type parallelResult struct {
	experimentName string
	result         *ExperimentResult
}

// Worker main loop that consumes work from a channel
func runWorker(ctx context.Context, rConfig *RunConfig, workCh <-chan *parallelWork, resultsCh chan<- *parallelResult, wg *sync.WaitGroup) {
	defer wg.Done()
	for work := range workCh {
		resultsCh <- &parallelResult{
			experimentName: work.experiment.Name,
			result:         work.experiment.run(ctx, rConfig, work.output),
		}
	}
}

// Run executes the experiments on parallelism workers, printing progress
// to out. Every experiment must own its sampler, environment and buffers.
func (c *Comparison) Run(ctx context.Context, rConfig *RunConfig, parallelism int, out io.Writer) map[string]*ExperimentResult {
	if parallelism <= 0 {
		parallelism = 1
	}
	printer := util.NewTerminalPrinter(out, 500*time.Millisecond)

	workCh := make(chan *parallelWork, len(c.Experiments))
	resultsCh := make(chan *parallelResult, len(c.Experiments))
	for _, e := range c.Experiments {
		workCh <- &parallelWork{
			experiment: e,
			output:     printer.NewOutput(),
		}
	}
	close(workCh)

	printer.Start(ctx)
	wg := new(sync.WaitGroup)
	for i := 0; i < parallelism; i++ {
		wg.Add(1)
		go runWorker(ctx, rConfig, workCh, resultsCh, wg)
	}
	wg.Wait()
	close(resultsCh)
	printer.Stop()

	results := make(map[string]*ExperimentResult)
	for r := range resultsCh {
		results[r.experimentName] = r.result
	}
	return results
}
