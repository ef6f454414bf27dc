package util

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSortedKeys(t *testing.T) {
	keys := SortedKeys(map[string]float64{"b": 1, "c": 2, "a": 3})
	expected := []string{"a", "b", "c"}
	if len(keys) != len(expected) {
		t.Fatalf("expected %d keys, got %d", len(expected), len(keys))
	}
	for i := range expected {
		if keys[i] != expected[i] {
			t.Errorf("key %d: expected %s, got %s", i, expected[i], keys[i])
		}
	}
}

func TestFinite(t *testing.T) {
	if Finite(math.Inf(-1)) != nil {
		t.Errorf("expected nil for -Inf")
	}
	if Finite(math.NaN()) != nil {
		t.Errorf("expected nil for NaN")
	}
	if v, ok := Finite(1.5).(float64); !ok || v != 1.5 {
		t.Errorf("expected 1.5, got %v", Finite(1.5))
	}
}

func TestAppendJsonLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "records.jsonl")
	for i := 0; i < 3; i++ {
		if err := AppendJsonLine(path, map[string]int{"episode": i}); err != nil {
			t.Fatalf("append failed: %s", err)
		}
	}
	bs, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %s", err)
	}
	lines := strings.Split(strings.TrimSpace(string(bs)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[2] != `{"episode":2}` {
		t.Errorf("unexpected last line: %s", lines[2])
	}
}

func TestTerminalPrinterPlainOutput(t *testing.T) {
	buf := new(strings.Builder)
	printer := NewTerminalPrinter(buf, time.Hour)
	out := printer.NewOutput()
	printer.Start(context.Background())
	out.Set("experiment done")
	printer.Stop()

	if !strings.Contains(buf.String(), "experiment done") {
		t.Errorf("expected final output to be printed, got %q", buf.String())
	}
}
