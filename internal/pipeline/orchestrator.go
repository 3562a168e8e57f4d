package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/dgallion1/wordcut/internal/config"
	"github.com/dgallion1/wordcut/internal/parser"
	"github.com/dgallion1/wordcut/internal/stats"
)

var (
	// ErrQueueFull is returned by Submit when the job queue has no room.
	ErrQueueFull = errors.New("job queue is full")
	// ErrStopped is returned by Submit after Stop.
	ErrStopped = errors.New("pipeline is stopped")
)

// cleanupInterval is how often expired jobs are evicted.
const cleanupInterval = 5 * time.Minute

// Orchestrator manages the file cleaning pipeline.
type Orchestrator struct {
	jobs   *JobStore
	queue  chan *Job
	stats  *stats.Recorder
	log    *slog.Logger
	cfg    config.Config
	worker *Worker

	mu      sync.Mutex
	stopped bool

	cancel  context.CancelFunc
	workers sync.WaitGroup
	wg      sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, rec *stats.Recorder, log *slog.Logger) *Orchestrator {
	if rec == nil {
		rec = stats.NewRecorder(cfg.StatsWindow)
	}
	jobs := NewJobStore(cfg.JobTTL)
	return &Orchestrator{
		jobs:   jobs,
		queue:  make(chan *Job, cfg.MaxQueueSize),
		stats:  rec,
		log:    log,
		cfg:    cfg,
		worker: NewWorker(jobs, rec, log, ParserOptions(cfg)),
	}
}

// ParserOptions maps the service configuration onto parser options.
func ParserOptions(cfg config.Config) parser.Options {
	return parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for range o.cfg.WorkerCount {
		o.workers.Add(1)
		go func() {
			defer o.workers.Done()
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					o.worker.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop closes the queue, waits for the workers to finish every job already
// queued, then stops the cleanup loop. Calling Stop again is a no-op.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	o.workers.Wait()
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)

	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		job.Fail("stopped", ErrStopped)
		return ErrStopped
	}
	select {
	case o.queue <- job:
		return nil
	default:
		job.Fail("queue_full", ErrQueueFull)
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// JobCount returns the number of jobs still tracked.
func (o *Orchestrator) JobCount() int {
	return o.jobs.Len()
}

// CleanText cleans text synchronously, recording the run in the stats.
func (o *Orchestrator) CleanText(text string, opts cleaner.Options) cleaner.Result {
	return o.worker.CleanText(text, opts)
}

// CleanFile cleans one file synchronously, recording the run in the stats.
func (o *Orchestrator) CleanFile(ctx context.Context, data []byte, filename string, opts cleaner.Options) (FileResult, error) {
	res, err := CleanFile(ctx, data, filename, opts, o.worker.parserOpts)
	if err != nil {
		return FileResult{}, err
	}
	o.stats.Record(res.Duration, res.OriginalWords, res.FilteredWords)
	return res, nil
}

// Stats returns the rolling clean statistics.
func (o *Orchestrator) Stats() stats.Snapshot {
	return o.stats.Snapshot()
}
