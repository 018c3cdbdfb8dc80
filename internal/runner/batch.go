package runner

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/piwi3910/packt/internal/logger"
	"github.com/piwi3910/packt/internal/model"
)

// ErrWorkerClosed is returned by Submit after Close.
var ErrWorkerClosed = errors.New("worker is closed")

// Job is one queued solver invocation.
type Job struct {
	Entry  *Entry
	Params model.Params
}

// Event reports a finished job. Index is the job's position in its batch.
type Event struct {
	Entry  *Entry
	Record model.Record
	Index  int
	Total  int
}

// Worker solves batches of jobs on a single goroutine. Only one batch may be
// in flight; a second Submit is rejected with *model.BusyError until every
// job of the first has finished.
type Worker struct {
	harness *Harness
	batches chan []Job
	events  chan Event
	running atomic.Int64

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	stopped   chan struct{}
}

// NewWorker starts a worker that runs jobs through harness. Events must be
// drained by the caller; the worker blocks while the events buffer is full.
func NewWorker(harness *Harness, eventBuffer int) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Worker{
		harness: harness,
		batches: make(chan []Job, 1),
		events:  make(chan Event, eventBuffer),
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
	go w.loop()
	return w
}

// Events delivers one event per job in submission order. The channel is
// closed once the worker stops.
func (w *Worker) Events() <-chan Event {
	return w.events
}

// Running returns the number of jobs of the current batch not yet finished.
func (w *Worker) Running() int {
	return int(w.running.Load())
}

// Submit queues a batch. It fails with *model.BusyError while a previous
// batch is still running.
func (w *Worker) Submit(jobs []Job) error {
	if len(jobs) == 0 {
		return nil
	}
	select {
	case <-w.ctx.Done():
		return ErrWorkerClosed
	default:
	}
	if !w.running.CompareAndSwap(0, int64(len(jobs))) {
		return &model.BusyError{Running: w.Running()}
	}
	// The buffer holds one batch and the gate admits one at a time.
	w.batches <- jobs
	logger.L().Info("batch.submitted", "jobs", len(jobs))
	return nil
}

// Close stops the worker, killing any solver in flight, and waits for the
// loop to exit.
func (w *Worker) Close() {
	w.closeOnce.Do(w.cancel)
	<-w.stopped
}

func (w *Worker) loop() {
	defer close(w.stopped)
	defer close(w.events)
	for {
		select {
		case <-w.ctx.Done():
			return
		case jobs := <-w.batches:
			if !w.run(jobs) {
				return
			}
		}
	}
}

func (w *Worker) run(jobs []Job) bool {
	for i, job := range jobs {
		if w.ctx.Err() != nil {
			return false
		}
		eval, err := w.harness.Solve(w.ctx, job.Entry.Problem, job.Params)
		var rec model.Record
		if err != nil {
			rec = model.NewRecord(job.Entry.Source, job.Entry.Problem, job.Params, nil, err)
		} else {
			rec = model.NewRecord(job.Entry.Source, job.Entry.Problem, job.Params, &eval, nil)
		}

		// Release the slot before reporting so the consumer of the last
		// event can submit the next batch straight away.
		w.running.Add(-1)
		select {
		case w.events <- Event{Entry: job.Entry, Record: rec, Index: i, Total: len(jobs)}:
		case <-w.ctx.Done():
			return false
		}
	}
	return true
}
