package worker

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Pool tracks in-flight operations so shutdown can wait for them to finish
type Pool struct {
	mu       sync.RWMutex
	wg       sync.WaitGroup
	closed   bool
	inFlight atomic.Int64
	logger   *slog.Logger
}

// NewPool creates a new operation pool
func NewPool(logger *slog.Logger) *Pool {
	return &Pool{logger: logger}
}

// Acquire registers one operation. The returned release func must be called
// exactly once when the operation ends. ok is false once Shutdown has started.
func (p *Pool) Acquire() (release func(), ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return nil, false
	}

	p.wg.Add(1)
	p.inFlight.Add(1)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.inFlight.Add(-1)
			p.wg.Done()
		})
	}, true
}

// InFlight returns the number of operations currently registered
func (p *Pool) InFlight() int64 {
	return p.inFlight.Load()
}

// Shutdown stops accepting operations and waits for running ones.
// It reports whether everything finished before the timeout.
func (p *Pool) Shutdown(timeout time.Duration) bool {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()

	p.logger.Info("🛑 [Worker] Draining in-flight operations...", "in_flight", p.InFlight())

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("✅ [Worker] All in-flight operations completed")
		return true
	case <-time.After(timeout):
		p.logger.Warn("⚠️ [Worker] Shutdown timeout exceeded, some operations may not have completed",
			"timeout", timeout,
			"in_flight", p.InFlight(),
		)
		return false
	}
}
