package matrixgame

import (
	"context"
	"io"
	"testing"

	"github.com/zeu5/rollout-sampler/benchmarks/common"
)

func TestPrepareComparison(t *testing.T) {
	flags := common.DefaultFlags()
	flags.SavePath = t.TempDir()
	flags.Agents = 2
	flags.Horizon = 25
	flags.Steps = 50
	flags.ExploreSteps = 0
	flags.MinPoolSize = 5
	flags.BatchSize = 2
	flags.TrainEvery = 10
	flags.BufferCapacity = 100
	flags.Plot = false

	h := common.NewHarness(flags)
	cmp, err := PrepareComparison(h)
	if err != nil {
		t.Fatal(err)
	}
	results := cmp.Run(context.Background(), flags.RunConfig(), 1, io.Discard)

	// 25 rounds per game, all the agents are done together
	for _, name := range []string{"matrixgame_random_0", "matrixgame_follower_0"} {
		r, ok := results[name]
		if !ok {
			t.Fatalf("missing result %s", name)
		}
		if r.IsError() {
			t.Fatalf("%s: unexpected error %v", name, r.Error)
		}
		if r.Episodes != 2 {
			t.Errorf("%s: expected 2 episodes, got %d", name, r.Episodes)
		}
		// training every 10 steps for each of the 2 agents
		if r.Batches != 10 {
			t.Errorf("%s: expected 10 batches, got %d", name, r.Batches)
		}
		if len(r.Snapshot.MaxPathReturn) != 2 {
			t.Errorf("%s: expected per agent statistics", name)
		}
	}
}
