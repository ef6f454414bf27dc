package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/zeu5/rollout-sampler/metrics"
	"github.com/zeu5/rollout-sampler/util"
)

// Sizer is anything reporting an occupancy, typically a replay buffer
type Sizer interface {
	Size() int
}

type source struct {
	records *metrics.Memory
	buffers []Sizer
}

// StatsServer exposes the latest diagnostics of running experiments over http
type StatsServer struct {
	Addr   string
	server *http.Server
	logger zerolog.Logger

	// shutdownTimeout bounds the wait for open connections once stopped
	shutdownTimeout time.Duration

	lock    *sync.Mutex
	sources map[string]*source
}

func NewStatsServer(addr string, logger zerolog.Logger) *StatsServer {
	s := &StatsServer{
		Addr:            addr,
		logger:          logger.With().Str("component", "stats_server").Logger(),
		shutdownTimeout: 2 * time.Second,
		lock:            new(sync.Mutex),
		sources:         make(map[string]*source),
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/healthz", healthHandler)
	r.GET("/stats", s.handleStats)
	r.GET("/stats/:name", s.handleExperimentStats)
	r.GET("/buffers", s.handleBuffers)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Register adds an experiment whose records and buffer sizes are served
func (s *StatsServer) Register(name string, records *metrics.Memory, buffers ...Sizer) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.sources[name] = &source{
		records: records,
		buffers: buffers,
	}
}

func (s *StatsServer) Handler() http.Handler {
	return s.server.Handler
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ok"})
}

func (s *StatsServer) handleStats(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[string]interface{}, len(s.sources))
	for name, src := range s.sources {
		out[name] = util.FiniteMap(src.records.Latest())
	}
	c.JSON(http.StatusOK, out)
}

func (s *StatsServer) handleExperimentStats(c *gin.Context) {
	s.lock.Lock()
	src, ok := s.sources[c.Param("name")]
	s.lock.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown experiment %s", c.Param("name"))})
		return
	}
	c.JSON(http.StatusOK, util.FiniteMap(src.records.Latest()))
}

func (s *StatsServer) handleBuffers(c *gin.Context) {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make(map[string][]int, len(s.sources))
	for name, src := range s.sources {
		sizes := make([]int, len(src.buffers))
		for i, b := range src.buffers {
			sizes[i] = b.Size()
		}
		out[name] = sizes
	}
	c.JSON(http.StatusOK, out)
}

// Start serves in the background until ctx is cancelled
func (s *StatsServer) Start(ctx context.Context) {
	go func() {
		s.logger.Info().Str("addr", s.Addr).Msg("serving stats")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("stats server stopped")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to shut down stats server")
		}
	}()
}
