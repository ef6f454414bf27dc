package metrics

import (
	"sync"

	"github.com/zeu5/rollout-sampler/core"
)

// Memory keeps the latest record set so that it can be read
// concurrently with the sampler writing it.
type Memory struct {
	mu      sync.Mutex
	latest  core.Records
	emitted int
}

var _ core.MetricsEmitter = &Memory{}

func NewMemory() *Memory {
	return &Memory{
		latest: make(core.Records),
	}
}

func (m *Memory) Emit(records core.Records) {
	m.mu.Lock()
	defer m.mu.Unlock()

	latest := make(core.Records, len(records))
	for k, v := range records {
		latest[k] = v
	}
	m.latest = latest
	m.emitted += 1
}

// Latest returns a copy of the last record set emitted
func (m *Memory) Latest() core.Records {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(core.Records, len(m.latest))
	for k, v := range m.latest {
		out[k] = v
	}
	return out
}

// Emitted is the number of record sets received so far
func (m *Memory) Emitted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.emitted
}
