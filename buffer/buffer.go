package buffer

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	erand "golang.org/x/exp/rand"

	"github.com/zeu5/rollout-sampler/core"
)

var (
	ErrBufferEmpty     = errors.New("buffer is empty")
	ErrInvalidCapacity = errors.New("capacity must be greater than zero")
	ErrInvalidBatch    = errors.New("batch size must be greater than zero")
)

// ReplayBuffer is a bounded FIFO store of transitions. Once full, the
// oldest transition is overwritten.
type ReplayBuffer struct {
	mu       sync.Mutex
	items    []*core.Transition
	next     int
	capacity int
	added    int
	rand     *erand.Rand
	logger   zerolog.Logger
}

var _ core.ReplayBuffer = &ReplayBuffer{}

func NewReplayBuffer(capacity int, logger zerolog.Logger) (*ReplayBuffer, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &ReplayBuffer{
		items:    make([]*core.Transition, 0, capacity),
		capacity: capacity,
		rand:     erand.New(erand.NewSource(uint64(time.Now().UnixNano()))),
		logger:   logger.With().Str("component", "replay_buffer").Logger(),
	}, nil
}

// Seed resets the source used to sample batches
func (rb *ReplayBuffer) Seed(seed uint64) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.rand = erand.New(erand.NewSource(seed))
}

func (rb *ReplayBuffer) AddSample(t *core.Transition) error {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.added += 1
	if len(rb.items) < rb.capacity {
		rb.items = append(rb.items, t)
		return nil
	}
	if rb.next == 0 && rb.added == rb.capacity+1 {
		rb.logger.Debug().Int("capacity", rb.capacity).Msg("buffer full, overwriting oldest transitions")
	}
	rb.items[rb.next] = t
	rb.next = (rb.next + 1) % rb.capacity
	return nil
}

// RandomBatch samples batchSize transitions uniformly with replacement
func (rb *ReplayBuffer) RandomBatch(batchSize int) (*core.Batch, error) {
	if batchSize <= 0 {
		return nil, ErrInvalidBatch
	}
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if len(rb.items) == 0 {
		return nil, ErrBufferEmpty
	}
	batch := &core.Batch{Transitions: make([]*core.Transition, batchSize)}
	for i := range batch.Transitions {
		batch.Transitions[i] = rb.items[rb.rand.Intn(len(rb.items))]
	}
	return batch, nil
}

func (rb *ReplayBuffer) Size() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return len(rb.items)
}

func (rb *ReplayBuffer) Capacity() int {
	return rb.capacity
}

// Added is the number of transitions ever added, including overwritten ones
func (rb *ReplayBuffer) Added() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	return rb.added
}
