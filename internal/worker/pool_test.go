package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type stubJob struct {
	executed  *int32
	shouldErr bool
	duration  time.Duration
}

type stubResult struct {
	err error
}

func (r *stubResult) GetError() error { return r.err }

func (j *stubJob) Execute(_ context.Context) Result {
	if j.duration > 0 {
		time.Sleep(j.duration)
	}
	if j.executed != nil {
		atomic.AddInt32(j.executed, 1)
	}
	if j.shouldErr {
		return &stubResult{err: errors.New("job failed")}
	}
	return &stubResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(3)
	pool.Start()

	var executed int32
	count := 12
	for i := 0; i < count; i++ {
		pool.Submit(&stubJob{executed: &executed})
	}

	results := pool.Wait()
	if len(results) != count {
		t.Errorf("len(results) = %d, want %d", len(results), count)
	}
	if got := atomic.LoadInt32(&executed); got != int32(count) {
		t.Errorf("executed = %d, want %d", got, count)
	}
}

func TestPool_CollectsErrors(t *testing.T) {
	pool := NewPool(2)
	pool.Start()

	pool.Submit(&stubJob{shouldErr: true})
	pool.Submit(&stubJob{})
	pool.Submit(&stubJob{shouldErr: true})

	results := pool.Wait()
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	failures := 0
	for _, r := range results {
		if r.GetError() != nil {
			failures++
		}
	}
	if failures != 2 {
		t.Errorf("failures = %d, want 2", failures)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	pool.Start()

	var executed int32
	pool.Submit(&stubJob{executed: &executed})

	results := pool.Wait()
	if len(results) != 1 || atomic.LoadInt32(&executed) != 1 {
		t.Errorf("pool with 0 workers should still run jobs, got %d results", len(results))
	}
}

func TestPool_ManyJobsBeyondBufferCapacity(t *testing.T) {
	// One worker has channel buffers of 2; queueing far more jobs than
	// that before Wait must still finish, with results drained as the
	// workers produce them
	pool := NewPool(1)
	pool.Start()

	var executed int32
	count := 40

	done := make(chan []Result)
	go func() {
		for i := 0; i < count; i++ {
			pool.Submit(&stubJob{executed: &executed})
		}
		done <- pool.Wait()
	}()

	select {
	case results := <-done:
		if len(results) != count {
			t.Errorf("len(results) = %d, want %d", len(results), count)
		}
		if got := atomic.LoadInt32(&executed); got != int32(count) {
			t.Errorf("executed = %d, want %d", got, count)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Submit then Wait stalled with jobs exceeding the buffers")
	}
}

func TestPool_SubmitAfterShutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	done := make(chan struct{})
	go func() {
		pool.Submit(&stubJob{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after Shutdown blocked")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	// 1 rps with burst 1: the second wait must block until the context
	// deadline fires
	l := NewLimiter(1, 1)

	if err := l.Wait(context.Background(), "https://example.com/a"); err != nil {
		t.Fatalf("first Wait() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx, "https://example.com/b"); err == nil {
		t.Error("second Wait() should fail once the context expires")
	}
}

func TestLimiter_PerDomain(t *testing.T) {
	l := NewLimiter(1, 1)

	if !l.Allow("https://one.example.com/") {
		t.Fatal("first request to one.example.com should be allowed")
	}
	if l.Allow("https://one.example.com/") {
		t.Error("second request to the same domain should be throttled")
	}
	if !l.Allow("https://two.example.com/") {
		t.Error("a different domain has its own limiter")
	}
}

func TestLimiter_BadURL(t *testing.T) {
	l := NewLimiter(1, 1)
	if err := l.Wait(context.Background(), "://broken"); err == nil {
		t.Error("Wait() on an unparseable URL should fail")
	}
	if l.Allow("://broken") {
		t.Error("Allow() on an unparseable URL should be false")
	}
}
