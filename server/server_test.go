package server

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zeu5/rollout-sampler/core"
	"github.com/zeu5/rollout-sampler/metrics"
)

type fixedSize int

func (f fixedSize) Size() int {
	return int(f)
}

func get(t *testing.T, s *StatsServer, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestStatsServer(t *testing.T) {
	s := NewStatsServer("localhost:0", zerolog.Nop())
	records := metrics.NewMemory()
	records.Emit(core.Records{"episodes": 3, "max-path-return_agent": math.Inf(-1)})
	s.Register("single", records, fixedSize(12))

	if rec := get(t, s, "/healthz"); rec.Code != http.StatusOK {
		t.Errorf("expected healthz 200, got %d", rec.Code)
	}

	rec := get(t, s, "/stats/single")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := make(map[string]interface{})
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["episodes"] != 3.0 {
		t.Errorf("expected 3 episodes, got %v", body["episodes"])
	}
	if v, ok := body["max-path-return_agent"]; !ok || v != nil {
		t.Errorf("expected null for non finite return, got %v", v)
	}

	if rec := get(t, s, "/stats/missing"); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	rec = get(t, s, "/buffers")
	sizes := make(map[string][]int)
	if err := json.Unmarshal(rec.Body.Bytes(), &sizes); err != nil {
		t.Fatal(err)
	}
	if len(sizes["single"]) != 1 || sizes["single"][0] != 12 {
		t.Errorf("unexpected buffer sizes %v", sizes)
	}
}

// syncBuffer is a log sink safe for the server goroutines
type syncBuffer struct {
	lock sync.Mutex
	buf  bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.buf.String()
}

func freeAddr(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return l.Addr().String()
}

func TestStatsServerLogsFailedShutdown(t *testing.T) {
	logs := new(syncBuffer)
	s := NewStatsServer(freeAddr(t), zerolog.New(logs))
	s.shutdownTimeout = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	// a connection that never sends a request keeps the server from
	// shutting down within the timeout
	var conn net.Conn
	var err error
	for i := 0; i < 50; i++ {
		if conn, err = net.Dial("tcp", s.Addr); err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("server did not start: %s", err)
	}
	defer conn.Close()
	time.Sleep(50 * time.Millisecond)

	cancel()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(logs.String(), "failed to shut down stats server") {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Errorf("expected the failed shutdown to be logged, got %q", logs.String())
}
