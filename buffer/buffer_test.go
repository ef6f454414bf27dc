package buffer

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/zeu5/rollout-sampler/core"
)

func transition(v float64) *core.Transition {
	return &core.Transition{
		Observation:     []float64{v},
		Action:          []float64{v},
		Reward:          []float64{v},
		Terminal:        []int8{0},
		NextObservation: []float64{v + 1},
	}
}

func TestNewReplayBufferCapacity(t *testing.T) {
	if _, err := NewReplayBuffer(0, zerolog.Nop()); !errors.Is(err, ErrInvalidCapacity) {
		t.Errorf("expected ErrInvalidCapacity, got %v", err)
	}
}

func TestReplayBufferOverwritesOldest(t *testing.T) {
	rb, err := NewReplayBuffer(3, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		rb.AddSample(transition(float64(i)))
	}
	if rb.Capacity() != 3 {
		t.Errorf("expected capacity 3, got %d", rb.Capacity())
	}
	if rb.Size() != 3 {
		t.Fatalf("expected size 3, got %d", rb.Size())
	}
	if rb.Added() != 5 {
		t.Errorf("expected 5 added, got %d", rb.Added())
	}

	rb.Seed(1)
	batch, err := rb.RandomBatch(50)
	if err != nil {
		t.Fatal(err)
	}
	for _, tr := range batch.Transitions {
		if tr.Observation[0] < 2 {
			t.Errorf("sampled overwritten transition %v", tr.Observation[0])
		}
	}
}

func TestRandomBatchErrors(t *testing.T) {
	rb, _ := NewReplayBuffer(3, zerolog.Nop())
	if _, err := rb.RandomBatch(4); !errors.Is(err, ErrBufferEmpty) {
		t.Errorf("expected ErrBufferEmpty, got %v", err)
	}
	rb.AddSample(transition(1))
	if _, err := rb.RandomBatch(0); !errors.Is(err, ErrInvalidBatch) {
		t.Errorf("expected ErrInvalidBatch, got %v", err)
	}
	batch, err := rb.RandomBatch(4)
	if err != nil {
		t.Fatal(err)
	}
	if batch.Len() != 4 {
		t.Errorf("expected batch of 4, got %d", batch.Len())
	}
}
