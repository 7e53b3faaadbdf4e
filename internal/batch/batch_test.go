package batch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync/atomic"
	"testing"
)

func TestRunPreservesOrder(t *testing.T) {
	results, err := Run(context.Background(), 20, 4, func(ctx context.Context, i int) (string, error) {
		return fmt.Sprintf("item-%d", i), nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(results) != 20 {
		t.Fatalf("results = %d, want 20", len(results))
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("item %d failed: %v", i, r.Err)
		}
		if want := fmt.Sprintf("item-%d", i); r.Value != want {
			t.Errorf("results[%d] = %q, want %q", i, r.Value, want)
		}
	}
}

func TestRunIsolatesItemFailures(t *testing.T) {
	boom := errors.New("boom")
	results, err := Run(context.Background(), 5, 2, func(ctx context.Context, i int) (int, error) {
		if i == 2 {
			return 0, boom
		}
		return i * 10, nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for i, r := range results {
		if i == 2 {
			if !errors.Is(r.Err, boom) {
				t.Errorf("item 2 err = %v, want boom", r.Err)
			}
			continue
		}
		if r.Err != nil || r.Value != i*10 {
			t.Errorf("results[%d] = %+v", i, r)
		}
	}
}

func TestRunRespectsWorkerLimit(t *testing.T) {
	var inFlight, peak atomic.Int32
	block := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)
		_, _ = Run(context.Background(), 10, 3, func(ctx context.Context, i int) (int, error) {
			n := inFlight.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			<-block
			inFlight.Add(-1)
			return i, nil
		})
	}()

	close(block)
	<-done
	if p := peak.Load(); p > 3 {
		t.Errorf("peak concurrency = %d, want <= 3", p)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, 5, 2, func(ctx context.Context, i int) (int, error) {
		return i, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestRunEmpty(t *testing.T) {
	results, err := Run[int](context.Background(), 0, 2, nil)
	if err != nil || results != nil {
		t.Errorf("Run empty = %v, %v", results, err)
	}
}

func TestMeanConfidence(t *testing.T) {
	if got := MeanConfidence(nil); got != 0 {
		t.Errorf("mean of empty = %v", got)
	}
	got := MeanConfidence([]float64{0.2, 0.4, 0.6})
	if math.Abs(got-0.4) > 1e-9 {
		t.Errorf("mean = %v, want 0.4", got)
	}
}
