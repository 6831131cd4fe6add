// Package compute runs CPU work for the physics step on a fixed goroutine pool.
package compute

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

var ErrClosed = errors.New("work queue closed")

// Job is one unit of work. userData is whatever was passed to Submit.
type Job func(userData any) error

type queuedJob struct {
	job      Job
	userData any
}

// WorkQueue is a fixed-size pool of long-lived workers. Jobs have no
// cancellation; a job that never returns blocks FinishAll forever.
//
// The queue, the pending count and the error accumulator each have their own
// lock, and no two of them are ever held at once.
type WorkQueue struct {
	size int
	log  *zap.Logger

	// job queue
	mu       sync.Mutex
	ready    *sync.Cond
	jobs     []queuedJob
	shutdown bool

	// submitted but not yet finished
	pendingMu sync.Mutex
	idle      *sync.Cond
	pending   int

	errMu sync.Mutex
	errs  error

	workers sync.WaitGroup
}

// New starts size workers. size <= 0 means one per CPU.
func New(size int, logger *zap.Logger) *WorkQueue {
	if size <= 0 {
		size = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	q := &WorkQueue{
		size: size,
		log:  logger,
	}
	q.ready = sync.NewCond(&q.mu)
	q.idle = sync.NewCond(&q.pendingMu)

	q.workers.Add(size)
	for i := 0; i < size; i++ {
		go q.worker(i)
	}
	return q
}

// Size is the number of workers.
func (q *WorkQueue) Size() int { return q.size }

// Submit queues job and wakes one worker.
func (q *WorkQueue) Submit(job Job, userData any) {
	q.pendingMu.Lock()
	q.pending++
	q.pendingMu.Unlock()

	q.mu.Lock()
	if q.shutdown {
		q.mu.Unlock()
		q.record(ErrClosed)
		q.done()
		return
	}
	q.jobs = append(q.jobs, queuedJob{job: job, userData: userData})
	q.mu.Unlock()
	q.ready.Signal()
}

// FinishAll blocks until every submitted job has run, then returns and clears
// the errors they produced.
func (q *WorkQueue) FinishAll() error {
	q.pendingMu.Lock()
	for q.pending > 0 {
		q.idle.Wait()
	}
	q.pendingMu.Unlock()

	q.errMu.Lock()
	err := q.errs
	q.errs = nil
	q.errMu.Unlock()
	return err
}

// Close runs what is already queued, stops the workers and waits for them.
func (q *WorkQueue) Close() {
	q.mu.Lock()
	if q.shutdown {
		q.mu.Unlock()
		return
	}
	q.shutdown = true
	q.mu.Unlock()
	q.ready.Broadcast()
	q.workers.Wait()
}

func (q *WorkQueue) worker(id int) {
	defer q.workers.Done()
	for {
		q.mu.Lock()
		for len(q.jobs) == 0 && !q.shutdown {
			q.ready.Wait()
		}
		if len(q.jobs) == 0 {
			q.mu.Unlock()
			return
		}
		j := q.jobs[0]
		q.jobs[0] = queuedJob{}
		q.jobs = q.jobs[1:]
		q.mu.Unlock()

		if err := q.run(j); err != nil {
			q.log.Warn("work queue job failed", zap.Int("worker", id), zap.Error(err))
			q.record(err)
		}
		q.done()
	}
}

func (q *WorkQueue) run(j queuedJob) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return j.job(j.userData)
}

func (q *WorkQueue) record(err error) {
	q.errMu.Lock()
	q.errs = multierr.Append(q.errs, err)
	q.errMu.Unlock()
}

func (q *WorkQueue) done() {
	q.pendingMu.Lock()
	q.pending--
	if q.pending == 0 {
		q.idle.Broadcast()
	}
	q.pendingMu.Unlock()
}
