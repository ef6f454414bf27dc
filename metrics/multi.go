package metrics

import "github.com/zeu5/rollout-sampler/core"

// Multi forwards every record set to all of its emitters in order
type Multi []core.MetricsEmitter

var _ core.MetricsEmitter = Multi{}

func (m Multi) Emit(records core.Records) {
	for _, e := range m {
		e.Emit(records)
	}
}
