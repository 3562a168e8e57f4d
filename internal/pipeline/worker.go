package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/dgallion1/wordcut/internal/parser"
	"github.com/dgallion1/wordcut/internal/stats"
)

// Worker processes a single file cleaning job.
type Worker struct {
	jobs       *JobStore
	stats      *stats.Recorder
	log        *slog.Logger
	parserOpts parser.Options
}

func NewWorker(jobs *JobStore, rec *stats.Recorder, log *slog.Logger, popts parser.Options) *Worker {
	return &Worker{
		jobs:       jobs,
		stats:      rec,
		log:        log,
		parserOpts: popts,
	}
}

// Process parses, cleans and counts one job's file. A completed job with the
// same bytes and options is reused instead of cleaning again.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)
	data := job.FileData()

	hash := RunHash(data, job.Filename, job.Options)
	job.SetContentHash(hash)
	if prev := w.jobs.FindCompleted(hash, job.ID); prev != nil {
		log.Info("identical run found, reusing result")
		prev.Filename = job.Filename
		job.Complete(*prev, "reused")
		return
	}

	// Phase 1: Parse
	job.SetStatus(StatusParsing, "parsing")
	p, err := parser.ForFile(job.Filename, w.parserOpts)
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.Fail("parsing", err)
		return
	}

	doc, err := p.Parse(bytes.NewReader(data), job.Filename)
	if err != nil {
		log.Error("parse failed", "error", err)
		job.Fail("parsing", fmt.Errorf("parse: %w", err))
		return
	}

	if err := ctx.Err(); err != nil {
		job.Fail("parsing", err)
		return
	}

	// Phase 2: Clean
	job.SetStatus(StatusCleaning, "cleaning")
	start := time.Now()
	res := CleanDocument(doc, job.Options)
	elapsed := time.Since(start)

	if w.stats != nil {
		w.stats.Record(elapsed, res.OriginalWords, res.FilteredWords)
	}
	log.Info("cleaning complete",
		"original_words", res.OriginalWords,
		"filtered_words", res.FilteredWords,
		"pages", doc.Pages(),
		"duration_ms", elapsed.Milliseconds(),
	)

	job.Complete(FileResult{
		Filename: job.Filename,
		Title:    doc.Title,
		Pages:    doc.Pages(),
		Result:   res,
		Duration: elapsed,
	}, "done")
}

// CleanText cleans raw text directly and records the run. It backs the
// synchronous text endpoint.
func (w *Worker) CleanText(text string, opts cleaner.Options) cleaner.Result {
	start := time.Now()
	res := cleaner.Process(text, opts)
	if w.stats != nil {
		w.stats.Record(time.Since(start), res.OriginalWords, res.FilteredWords)
	}
	return res
}
