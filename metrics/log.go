package metrics

import (
	"github.com/rs/zerolog"

	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/util"
)

// Log writes every record set as one structured log event
type Log struct {
	logger zerolog.Logger
	level  zerolog.Level
}

var _ core.MetricsEmitter = &Log{}

func NewLog(logger zerolog.Logger, level zerolog.Level) *Log {
	return &Log{
		logger: logger.With().Str("component", "metrics").Logger(),
		level:  level,
	}
}

func (l *Log) Emit(records core.Records) {
	event := l.logger.WithLevel(l.level)
	for _, key := range util.SortedKeys(records) {
		event = event.Float64(key, records[key])
	}
	event.Msg("diagnostics")
}
