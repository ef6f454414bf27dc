package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/zeu5/rollout-sampler/benchmarks/common"
	"github.com/zeu5/rollout-sampler/core"
)

type prepareFunc func(*common.Harness) (*core.Comparison, error)

// runComparison runs the prepared experiments until they finish or the
// process is interrupted, then saves the outputs.
func runComparison(prepare prepareFunc) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	doneCh := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-sigCh:
		case <-doneCh:
		}
		cancel()
	}()
	defer close(doneCh)

	h := common.NewHarness(flags)
	cmp, err := prepare(h)
	if err != nil {
		return err
	}
	h.Start(ctx)

	results := cmp.Run(ctx, flags.RunConfig(), flags.Parallelism, os.Stdout)
	return h.Finish(results)
}
