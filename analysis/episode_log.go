package analysis

import (
	"github.com/rs/zerolog"

	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/util"
)

// EpisodeLog appends one JSON line per completed episode to Path, so the
// progress of a long run can be followed while it is still going.
type EpisodeLog struct {
	Path   string
	logger zerolog.Logger
}

var _ core.EpisodeObserver = &EpisodeLog{}

type episodeLine struct {
	Episode        int           `json:"episode"`
	PathLength     int           `json:"path_length"`
	Explore        bool          `json:"explore"`
	LastPathReturn []interface{} `json:"last_path_return"`
	MaxPathReturn  []interface{} `json:"max_path_return"`
	TotalSamples   int           `json:"total_samples"`
}

func NewEpisodeLog(path string, logger zerolog.Logger) *EpisodeLog {
	return &EpisodeLog{
		Path:   path,
		logger: logger.With().Str("component", "episode_log").Logger(),
	}
}

func (l *EpisodeLog) EpisodeEnd(summary *core.EpisodeSummary) {
	err := util.AppendJsonLine(l.Path, &episodeLine{
		Episode:        summary.Episode,
		PathLength:     summary.PathLength,
		Explore:        summary.Explore,
		LastPathReturn: util.FiniteSlice(summary.Stats.LastPathReturn),
		MaxPathReturn:  util.FiniteSlice(summary.Stats.MaxPathReturn),
		TotalSamples:   summary.Stats.TotalSamples,
	})
	if err != nil {
		l.logger.Warn().Err(err).Int("episode", summary.Episode).Msg("failed to append episode")
	}
}
