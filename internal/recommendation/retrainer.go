package recommendation

import (
	"context"
	"sync"

	"bnin/internal/logger"
)

// Task is a unit of background work.
type Task func(ctx context.Context) error

// Retrainer runs retraining tasks on a single background worker. At most one
// run is queued at a time; triggers arriving while one is pending are coalesced.
type Retrainer struct {
	task     Task
	queue    chan struct{}
	pending  sync.WaitGroup
	workers  sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	closed   bool
	closeMux sync.Mutex
	log      *logger.Logger
}

func NewRetrainer(task Task, log *logger.Logger) *Retrainer {
	ctx, cancel := context.WithCancel(context.Background())
	return &Retrainer{
		task:   task,
		queue:  make(chan struct{}, 1),
		ctx:    ctx,
		cancel: cancel,
		log:    log.With("component", "retrainer"),
	}
}

// Start launches the worker goroutine.
func (r *Retrainer) Start() {
	r.workers.Add(1)
	go r.worker()
	r.log.Info("retrainer started")
}

// Trigger queues a run and reports whether it was accepted. A false return
// means a run is already pending or the retrainer is stopped.
func (r *Retrainer) Trigger() bool {
	r.closeMux.Lock()
	defer r.closeMux.Unlock()
	if r.closed {
		return false
	}

	r.pending.Add(1)
	select {
	case r.queue <- struct{}{}:
		return true
	default:
		r.pending.Done()
		r.log.Debug("retrain already pending, trigger coalesced")
		return false
	}
}

// Wait blocks until every accepted run has finished.
func (r *Retrainer) Wait() {
	r.pending.Wait()
}

// Shutdown stops accepting triggers, lets a running task finish and stops the worker.
func (r *Retrainer) Shutdown() {
	r.closeMux.Lock()
	if !r.closed {
		r.closed = true
		close(r.queue)
	}
	r.closeMux.Unlock()

	r.workers.Wait()
	r.cancel()
	r.log.Info("retrainer stopped")
}

func (r *Retrainer) worker() {
	defer r.workers.Done()

	for range r.queue {
		if err := r.task(r.ctx); err != nil {
			r.log.Error("retrain failed", "error", err)
		}
		r.pending.Done()
	}
}
