package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// TestMapOrdered tests that results come back in item order.
func TestMapOrdered(t *testing.T) {
	pool := NewPool(WithWorkers(4))

	items := make([]int, 50)
	for i := range items {
		items[i] = i
	}

	got := Map(pool, items, func(n int) int {
		// Make later items finish first.
		time.Sleep(time.Duration(50-n) * time.Microsecond)
		return n * n
	})

	want := make([]int, 50)
	for i := range want {
		want[i] = i * i
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}

// TestMapBounded tests that no more than NumWorkers tasks run at once.
func TestMapBounded(t *testing.T) {
	const workers = 3
	pool := NewPool(WithWorkers(workers))

	var running, peak int32
	Map(pool, make([]struct{}, 30), func(struct{}) bool {
		n := atomic.AddInt32(&running, 1)
		for {
			old := atomic.LoadInt32(&peak)
			if n <= old || atomic.CompareAndSwapInt32(&peak, old, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&running, -1)
		return true
	})

	if got := atomic.LoadInt32(&peak); got > workers {
		t.Errorf("peak concurrency = %d; want <= %d", got, workers)
	}
}

// TestMapSingleWorker tests the sequential path.
func TestMapSingleWorker(t *testing.T) {
	pool := NewPool(WithWorkers(1))
	got := Map(pool, []string{"a", "b", "c"}, func(s string) string { return s + s })
	if diff := cmp.Diff([]string{"aa", "bb", "cc"}, got); diff != "" {
		t.Errorf("Map() mismatch (-want +got):\n%s", diff)
	}
}

// TestMapEmpty tests that an empty input yields an empty result.
func TestMapEmpty(t *testing.T) {
	got := Map(NewPool(), nil, func(int) int { return 1 })
	if len(got) != 0 {
		t.Errorf("len(Map(nil)) = %d; want 0", len(got))
	}
}

// TestPoolStopped tests that a stopped pool runs nothing.
func TestPoolStopped(t *testing.T) {
	pool := NewPool(WithWorkers(2))
	pool.Stop()
	if !pool.IsStopped() {
		t.Fatal("IsStopped() = false after Stop()")
	}

	var calls int32
	Map(pool, []int{1, 2, 3}, func(int) int {
		atomic.AddInt32(&calls, 1)
		return 0
	})
	if calls != 0 {
		t.Errorf("calls = %d; want 0", calls)
	}
}

// TestMapContextError tests that the first error is returned.
func TestMapContextError(t *testing.T) {
	errBoom := errors.New("boom")
	pool := NewPool(WithWorkers(2))

	_, err := MapContext(context.Background(), pool, []int{1, 2, 3, 4}, func(ctx context.Context, n int) (int, error) {
		if n == 3 {
			return 0, errBoom
		}
		return n, nil
	})
	if !errors.Is(err, errBoom) {
		t.Errorf("MapContext() error = %v; want %v", err, errBoom)
	}
}

// TestMapContextResults tests that results are ordered when every task succeeds.
func TestMapContextResults(t *testing.T) {
	pool := NewPool(WithWorkers(3))
	got, err := MapContext(context.Background(), pool, []int{3, 1, 2}, func(ctx context.Context, n int) (int, error) {
		return n * 10, nil
	})
	if err != nil {
		t.Fatalf("MapContext() error = %v", err)
	}
	if diff := cmp.Diff([]int{30, 10, 20}, got); diff != "" {
		t.Errorf("MapContext() mismatch (-want +got):\n%s", diff)
	}
}

// TestWithWorkersIgnoresInvalid tests that non-positive counts keep the default.
func TestWithWorkersIgnoresInvalid(t *testing.T) {
	pool := NewPool(WithWorkers(0))
	if pool.NumWorkers() < 1 {
		t.Errorf("NumWorkers() = %d; want >= 1", pool.NumWorkers())
	}
}
