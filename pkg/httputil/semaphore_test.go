package httputil

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSemaphoreTryAcquire(t *testing.T) {
	sem := NewSemaphore(2)

	if !sem.TryAcquire() {
		t.Error("first TryAcquire should succeed")
	}
	if !sem.TryAcquire() {
		t.Error("second TryAcquire should succeed")
	}
	if sem.TryAcquire() {
		t.Error("TryAcquire at capacity should shed")
	}
	if sem.DroppedCount() != 1 {
		t.Errorf("DroppedCount = %d, want 1", sem.DroppedCount())
	}

	sem.Release()
	if !sem.TryAcquire() {
		t.Error("TryAcquire should succeed after Release")
	}
}

func TestSemaphoreAcquireBlocks(t *testing.T) {
	sem := NewSemaphore(1)

	if err := sem.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := sem.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Acquire at capacity = %v, want DeadlineExceeded", err)
	}
}

func TestSemaphoreConcurrentTurns(t *testing.T) {
	sem := NewSemaphore(10)
	var served atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if sem.TryAcquire() {
				served.Add(1)
				time.Sleep(10 * time.Millisecond)
				sem.Release()
			}
		}()
	}
	wg.Wait()

	stats := sem.Stats()
	if served.Load()+int32(stats.Dropped) != 100 {
		t.Errorf("served %d + dropped %d, want 100 total", served.Load(), stats.Dropped)
	}
	if stats.InUse != 0 {
		t.Errorf("InUse = %d after completion, want 0", stats.InUse)
	}
}

func TestSemaphoreStats(t *testing.T) {
	sem := NewSemaphore(5)

	stats := sem.Stats()
	if stats.Capacity != 5 || stats.Available != 5 || stats.InUse != 0 {
		t.Errorf("fresh stats = %+v", stats)
	}

	sem.TryAcquire()
	sem.TryAcquire()

	stats = sem.Stats()
	if stats.InUse != 2 {
		t.Errorf("InUse = %d, want 2", stats.InUse)
	}
	if stats.Available != 3 {
		t.Errorf("Available = %d, want 3", stats.Available)
	}
}

func TestNewSemaphoreDefaultCapacity(t *testing.T) {
	for _, n := range []int{0, -5} {
		if sem := NewSemaphore(n); cap(sem.sem) != 100 {
			t.Errorf("NewSemaphore(%d) capacity = %d, want default 100", n, cap(sem.sem))
		}
	}
}

func BenchmarkSemaphoreTryAcquire(b *testing.B) {
	sem := NewSemaphore(1000)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if sem.TryAcquire() {
				sem.Release()
			}
		}
	})
}
