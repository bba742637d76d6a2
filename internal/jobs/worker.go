package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sjperalta/vehifin-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker runs queued jobs on a fixed pool, fire-and-forget jobs on bounded goroutines and
// named jobs on a schedule.
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	async         sync.WaitGroup
	queue         chan Job
	asyncSem      chan struct{}
	maxConcurrent int

	statsMu   sync.RWMutex
	stats     WorkerStats
	schedules map[string]*ScheduleStats
}

// WorkerStats holds statistics about the worker. CompletedJobs counts every finished job,
// failures included.
type WorkerStats struct {
	ActiveJobs    int             `json:"active_jobs"`
	CompletedJobs int64           `json:"completed_jobs"`
	FailedJobs    int64           `json:"failed_jobs"`
	QueueLength   int             `json:"queue_length"`
	MaxConcurrent int             `json:"max_concurrent"`
	Scheduled     []ScheduleStats `json:"scheduled"`
}

// ScheduleStats describes one scheduled job
type ScheduleStats struct {
	Name      string     `json:"name"`
	Interval  string     `json:"interval"`
	Runs      int64      `json:"runs"`
	LastRunAt *time.Time `json:"last_run_at"`
	LastError string     `json:"last_error,omitempty"`
}

// NewWorker creates a worker with numWorkers queue processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	asyncLimit := max(numWorkers*2, 10)

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan Job, 100),
		asyncSem:      make(chan struct{}, asyncLimit),
		maxConcurrent: asyncLimit,
		schedules:     make(map[string]*ScheduleStats),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the queue. When the queue is full the job runs on the caller's
// goroutine.
func (w *Worker) Enqueue(job Job) {
	select {
	case w.queue <- job:
	default:
		logger.Warn("queue full, running job synchronously")
		w.run(slog.String("mode", "inline"), job)
	}
}

// EnqueueAsync runs a job on its own goroutine, bounded by the async limit
func (w *Worker) EnqueueAsync(job Job) {
	w.async.Add(1)
	go func() {
		defer w.async.Done()
		w.asyncSem <- struct{}{}
		defer func() { <-w.asyncSem }()

		w.run(slog.String("mode", "async"), job)
	}()
}

// WaitAsync blocks until every job started with EnqueueAsync has finished
func (w *Worker) WaitAsync() {
	w.async.Wait()
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(slog.Int("worker", workerID), job)
		}
	}
}

// run executes job with panic recovery and returns its error
func (w *Worker) run(attr slog.Attr, job Job) (err error) {
	w.trackJobStart()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("job panic", attr, slog.Any("panic", r))
			err = errPanic
			w.trackJobFailure()
		}
		w.trackJobEnd()
	}()

	if err = job(w.ctx); err != nil {
		logger.Log.Error("job failed", attr, slog.Any("error", err))
		w.trackJobFailure()
		return err
	}
	logger.Log.Debug("job completed", attr, slog.Duration("duration", time.Since(start)))
	return nil
}

// ScheduleEvery runs a named job at fixed intervals, first after one interval
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, false, job)
}

// ScheduleEveryImmediate runs a named job once at startup, then at fixed intervals
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, true, job)
}

func (w *Worker) schedule(name string, interval time.Duration, immediate bool, job Job) {
	w.statsMu.Lock()
	w.schedules[name] = &ScheduleStats{Name: name, Interval: interval.String()}
	w.statsMu.Unlock()

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if immediate {
			w.runScheduled(name, job)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.runScheduled(name, job)
			}
		}
	}()
}

func (w *Worker) runScheduled(name string, job Job) {
	err := w.run(slog.String("job", name), job)

	now := time.Now().UTC()
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	s := w.schedules[name]
	s.Runs++
	s.LastRunAt = &now
	s.LastError = ""
	if err != nil {
		s.LastError = err.Error()
	}
}

// Shutdown stops the processors and scheduled jobs and waits for async jobs
func (w *Worker) Shutdown() {
	w.cancel()
	close(w.queue)
	w.wg.Wait()
	w.async.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	stats.Scheduled = make([]ScheduleStats, 0, len(w.schedules))
	for _, s := range w.schedules {
		stats.Scheduled = append(stats.Scheduled, *s)
	}
	return stats
}

func (w *Worker) trackJobStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackJobEnd() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	w.stats.CompletedJobs++
}

func (w *Worker) trackJobFailure() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.FailedJobs++
}
