package core

import (
	"context"
	"errors"
	"io"
	"testing"
)

type countingLearner struct {
	batches map[int]int
	err     error
}

func (l *countingLearner) Train(agent int, batch *Batch) error {
	if l.err != nil {
		return l.err
	}
	l.batches[agent] += 1
	return nil
}

func TestExperimentRun(t *testing.T) {
	env := newCountingEnv(4, constantReward(1))
	agent := newFakeAgent(constantPolicy(0))
	s := newSingle(t, 10, env, agent, nil)
	learner := &countingLearner{batches: make(map[int]int)}

	e := &Experiment{Name: "single", Sampler: s, Learner: learner}
	result := e.Run(context.Background(), &RunConfig{
		Steps:                      20,
		ExploreSteps:               2,
		TrainEvery:                 1,
		ThresholdConsecutiveErrors: 3,
	})
	if result.IsError() {
		t.Fatalf("unexpected error %s", result.Error)
	}
	if result.Steps != 20 || result.Episodes != 5 {
		t.Errorf("expected 20 steps and 5 episodes, got %d and %d", result.Steps, result.Episodes)
	}
	if env.sampled != 2 {
		t.Errorf("expected 2 exploration steps, got %d", env.sampled)
	}
	// the buffer reaches the minimum pool size of 5 at step 5
	if result.Batches != 16 || learner.batches[0] != 16 {
		t.Errorf("expected 16 batches, got %d", result.Batches)
	}
}

func TestExperimentTooManyErrors(t *testing.T) {
	env := newCountingEnv(0, constantReward(1))
	env.stepErr = errFake
	s := newSingle(t, 10, env, newFakeAgent(constantPolicy(0)), nil)

	e := &Experiment{Name: "failing", Sampler: s}
	result := e.Run(context.Background(), &RunConfig{Steps: 10, ThresholdConsecutiveErrors: 3})
	if !errors.Is(result.Error, ErrTooManyErrors) || !errors.Is(result.Error, errFake) {
		t.Errorf("expected ErrTooManyErrors wrapping the step error, got %v", result.Error)
	}
	if result.ErrorSteps != 3 {
		t.Errorf("expected 3 failed steps, got %d", result.ErrorSteps)
	}
}

func TestExperimentCancelled(t *testing.T) {
	s := newSingle(t, 10, newCountingEnv(0, constantReward(1)), newFakeAgent(constantPolicy(0)), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := (&Experiment{Name: "cancelled", Sampler: s}).Run(ctx, &RunConfig{Steps: 10})
	if !errors.Is(result.Error, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", result.Error)
	}
	if result.Steps != 0 {
		t.Errorf("expected no steps, got %d", result.Steps)
	}
}

func TestComparisonRun(t *testing.T) {
	cmp := NewComparison()
	learners := make([]*countingLearner, 0)
	for _, name := range []string{"first", "second", "third"} {
		s := newSingle(t, 5, newCountingEnv(0, constantReward(1)), newFakeAgent(constantPolicy(0)), nil)
		learner := &countingLearner{batches: make(map[int]int)}
		learners = append(learners, learner)
		cmp.AddExperiment(&Experiment{Name: name, Sampler: s, Learner: learner})
	}
	multi := newMulti(t, threeAgents(), &multiEnv{agents: 3}, testConfig(5), nil)
	cmp.AddExperiment(&Experiment{Name: "multi", Sampler: multi, Learner: &countingLearner{batches: make(map[int]int)}})

	results := cmp.Run(context.Background(), &RunConfig{Steps: 10, TrainEvery: 5, ThresholdConsecutiveErrors: 1}, 2, io.Discard)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for name, r := range results {
		if r.IsError() || r.Steps != 10 || r.Episodes != 2 {
			t.Errorf("%s: unexpected result %+v", name, r)
		}
	}
	// trains at steps 5 and 10, the buffer is ready from step 5
	if learners[0].batches[0] != 2 {
		t.Errorf("expected 2 batches, got %d", learners[0].batches[0])
	}
	if results["multi"].Batches != 6 {
		t.Errorf("expected a batch per agent per training step, got %d", results["multi"].Batches)
	}
}

func TestExperimentLearnerError(t *testing.T) {
	s := newSingle(t, 10, newCountingEnv(0, constantReward(1)), newFakeAgent(constantPolicy(0)), nil)
	learner := &countingLearner{batches: make(map[int]int), err: errFake}
	result := (&Experiment{Name: "learner", Sampler: s, Learner: learner}).Run(context.Background(), &RunConfig{Steps: 10, TrainEvery: 1})
	if !errors.Is(result.Error, errFake) {
		t.Errorf("expected the learner error, got %v", result.Error)
	}
	if result.Steps != 5 {
		t.Errorf("expected to stop at the first training step, got %d", result.Steps)
	}
}
