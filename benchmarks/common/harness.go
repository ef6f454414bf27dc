package common

import (
	"context"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/zeu5/rollout-sampler/analysis"
	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/metrics"
	"github.com/zeu5/rollout-sampler/server"
	"github.com/zeu5/rollout-sampler/util"
)

// Harness wires the outputs shared by every benchmark: logging, the
// diagnostics emitters, the stats server and the saved results.
type Harness struct {
	Flags  *Flags
	RunID  string
	Logger zerolog.Logger

	server    *server.StatsServer
	redis     *redis.Client
	curves    map[string]*analysis.ReturnCurve
	recorders map[string]*analysis.TerminalRecorder
}

func NewLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}

func NewHarness(flags *Flags) *Harness {
	runID := uuid.New().String()
	h := &Harness{
		Flags:     flags,
		RunID:     runID,
		Logger:    NewLogger(flags.Debug).With().Str("run", runID).Logger(),
		curves:    make(map[string]*analysis.ReturnCurve),
		recorders: make(map[string]*analysis.TerminalRecorder),
	}
	if flags.HTTPAddr != "" {
		h.server = server.NewStatsServer(flags.HTTPAddr, h.Logger)
	}
	if flags.RedisAddr != "" {
		h.redis = redis.NewClient(&redis.Options{
			Addr: flags.RedisAddr,
		})
	}
	return h
}

// Emitter for the experiment name. Records always go to the log, and to
// the stats server and redis when those are configured.
func (h *Harness) Emitter(name string, buffers ...server.Sizer) core.MetricsEmitter {
	logger := h.Logger.With().Str("experiment", name).Logger()
	emitters := metrics.Multi{metrics.NewLog(logger, zerolog.InfoLevel)}
	if h.server != nil {
		memory := metrics.NewMemory()
		h.server.Register(name, memory, buffers...)
		emitters = append(emitters, memory)
	}
	if h.redis != nil {
		prefix := fmt.Sprintf("rollout:%s:%s", h.RunID, name)
		emitters = append(emitters, metrics.NewRedis(metrics.NewRedisStore(h.redis), prefix, logger))
	}
	return emitters
}

type observable interface {
	AddObserver(core.EpisodeObserver)
}

// Observe records the terminal observations of the sampler, streams its
// episodes to a JSON lines file and, when plotting is enabled, records
// its return curve.
func (h *Harness) Observe(name string, s observable, dimensions int) {
	recorder := analysis.NewTerminalRecorder(dimensions)
	h.recorders[name] = recorder
	s.AddObserver(recorder)
	s.AddObserver(analysis.NewEpisodeLog(path.Join(h.Flags.SavePath, name+"_episodes.jsonl"), h.Logger))
	if h.Flags.Plot {
		curve := analysis.NewReturnCurve(name, h.Flags.PlotWindow)
		h.curves[name] = curve
		s.AddObserver(curve)
	}
}

func (h *Harness) Start(ctx context.Context) {
	if h.server != nil {
		h.server.Start(ctx)
	}
}

// Finish saves the results, the recorded episodes and the plots under the
// save path.
func (h *Harness) Finish(results map[string]*core.ExperimentResult) error {
	if h.redis != nil {
		defer h.redis.Close()
	}
	for _, name := range util.SortedKeys(results) {
		r := results[name]
		if r.IsError() {
			h.Logger.Error().Err(r.Error).Str("experiment", name).Msg("experiment failed")
			continue
		}
		h.Logger.Info().
			Str("experiment", name).
			Int("steps", r.Steps).
			Int("episodes", r.Episodes).
			Int("batches", r.Batches).
			Msg("experiment done")
	}
	if err := util.SaveJson(path.Join(h.Flags.SavePath, "results.json"), resultRecords(results)); err != nil {
		return fmt.Errorf("saving results: %w", err)
	}
	for _, name := range util.SortedKeys(h.recorders) {
		if err := h.recorders[name].Save(path.Join(h.Flags.SavePath, name+"_episodes.json")); err != nil {
			return fmt.Errorf("saving episodes of %s: %w", name, err)
		}
	}
	for _, name := range util.SortedKeys(h.curves) {
		if err := h.curves[name].Save(path.Join(h.Flags.SavePath, name+"_returns.png")); err != nil {
			return fmt.Errorf("plotting %s: %w", name, err)
		}
	}
	return nil
}

type resultRecord struct {
	Steps          int           `json:"steps"`
	ErrorSteps     int           `json:"error_steps"`
	Episodes       int           `json:"episodes"`
	Batches        int           `json:"batches"`
	Error          string        `json:"error,omitempty"`
	MaxPathReturn  []interface{} `json:"max_path_return"`
	MeanPathReturn []interface{} `json:"mean_path_return"`
	TotalSamples   int           `json:"total_samples"`
}

func resultRecords(results map[string]*core.ExperimentResult) map[string]resultRecord {
	out := make(map[string]resultRecord, len(results))
	for name, r := range results {
		rec := resultRecord{
			Steps:          r.Steps,
			ErrorSteps:     r.ErrorSteps,
			Episodes:       r.Episodes,
			Batches:        r.Batches,
			MaxPathReturn:  util.FiniteSlice(r.Snapshot.MaxPathReturn),
			MeanPathReturn: util.FiniteSlice(r.Snapshot.MeanPathReturn),
			TotalSamples:   r.Snapshot.TotalSamples,
		}
		if r.Error != nil {
			rec.Error = r.Error.Error()
		}
		out[name] = rec
	}
	return out
}
