package analysis

import (
	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/util"
)

// TerminalRecorder records, for every episode that did not end on an
// exploration step, the last return of each agent and the first
// coordinates of each agent's terminal observation.
type TerminalRecorder struct {
	Dimensions int `json:"dimensions"`

	EpisodeRewards   [][]float64   `json:"episode_rewards"`
	EpisodePositions [][][]float64 `json:"episode_positions"`
}

var _ core.EpisodeObserver = &TerminalRecorder{}

// NewTerminalRecorder keeps dimensions coordinates of the terminal observations
func NewTerminalRecorder(dimensions int) *TerminalRecorder {
	return &TerminalRecorder{
		Dimensions:       dimensions,
		EpisodeRewards:   make([][]float64, 0),
		EpisodePositions: make([][][]float64, 0),
	}
}

func (r *TerminalRecorder) EpisodeEnd(summary *core.EpisodeSummary) {
	if summary.Explore {
		return
	}
	r.EpisodeRewards = append(r.EpisodeRewards, util.CopyFloats(summary.Stats.LastPathReturn))

	positions := make([][]float64, len(summary.TerminalObservations))
	for i, obs := range summary.TerminalObservations {
		n := r.Dimensions
		if n > len(obs) {
			n = len(obs)
		}
		positions[i] = util.CopyFloats(obs[:n])
	}
	r.EpisodePositions = append(r.EpisodePositions, positions)
}

func (r *TerminalRecorder) Len() int {
	return len(r.EpisodeRewards)
}

func (r *TerminalRecorder) Save(path string) error {
	return util.SaveJson(path, r)
}
