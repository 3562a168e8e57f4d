package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/dgallion1/wordcut/internal/config"
	"github.com/dgallion1/wordcut/internal/logger"
	"github.com/dgallion1/wordcut/internal/parser"
	"github.com/dgallion1/wordcut/internal/stats"
)

const manuscript = "A Study of Growth\nCells grew fast (Smith, 2019).\n\nReferences\nSmith, J. 2019. Growth.\n"

func testConfig() config.Config {
	return config.Config{
		WorkerCount:  2,
		MaxQueueSize: 4,
		JobTTL:       time.Hour,
		StatsWindow:  time.Hour,
	}
}

func waitForJob(t *testing.T, job *Job) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := job.Snapshot()
		if snap.Status == StatusCompleted || snap.Status == StatusFailed {
			return snap
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not finish", job.ID)
	return JobSnapshot{}
}

func TestCleanFile_Text(t *testing.T) {
	opts := cleaner.Options{ExcludeReferences: true, ExcludeCitations: true}
	res, err := CleanFile(context.Background(), []byte(manuscript), "growth.txt", opts, parser.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "A Study of Growth\nCells grew fast ." {
		t.Errorf("unexpected cleaned text %q", res.Text)
	}
	if res.OriginalWords != 14 || res.FilteredWords != 8 {
		t.Errorf("unexpected counts %d/%d", res.OriginalWords, res.FilteredWords)
	}
	if res.Title != "growth" || res.Filename != "growth.txt" {
		t.Errorf("unexpected metadata %+v", res)
	}
}

func TestCleanFile_Unsupported(t *testing.T) {
	_, err := CleanFile(context.Background(), []byte("a,b"), "data.csv", cleaner.Options{}, parser.Options{})
	if !errors.Is(err, parser.ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCleanFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := CleanFile(ctx, []byte("x"), "a.txt", cleaner.Options{}, parser.Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWorker_ProcessRecordsStats(t *testing.T) {
	store := NewJobStore(time.Hour)
	rec := stats.NewRecorder(time.Hour)
	w := NewWorker(store, rec, logger.Discard(), parser.Options{})

	job := NewJob("growth.txt", []byte(manuscript), cleaner.Options{ExcludeReferences: true})
	store.Put(job)
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (%v)", snap.Status, snap.Errors)
	}
	if snap.Result.FilteredWords != 9 {
		t.Errorf("expected 9 filtered words, got %d", snap.Result.FilteredWords)
	}
	if snap.ContentHash == "" {
		t.Error("expected content hash")
	}
	if got := rec.Snapshot(); got.Count != 1 || got.WordsIn != 14 {
		t.Errorf("expected one recorded run, got %+v", got)
	}
}

func TestWorker_ReusesIdenticalRun(t *testing.T) {
	store := NewJobStore(time.Hour)
	rec := stats.NewRecorder(time.Hour)
	w := NewWorker(store, rec, logger.Discard(), parser.Options{})

	first := NewJob("a.txt", []byte(manuscript), cleaner.AllOptions())
	store.Put(first)
	w.Process(context.Background(), first)

	second := NewJob("b.txt", []byte(manuscript), cleaner.AllOptions())
	store.Put(second)
	w.Process(context.Background(), second)

	snap := second.Snapshot()
	if snap.Status != StatusCompleted || snap.Phase != "reused" {
		t.Fatalf("expected reused result, got %q/%q", snap.Status, snap.Phase)
	}
	if snap.Result.Filename != "b.txt" {
		t.Errorf("expected filename of the new job, got %q", snap.Result.Filename)
	}
	if snap.Result.Text != first.Snapshot().Result.Text {
		t.Error("expected identical cleaned text")
	}
	if rec.Snapshot().Count != 1 {
		t.Error("expected reused run not to be recorded again")
	}
}

func TestWorker_ParseFailure(t *testing.T) {
	store := NewJobStore(time.Hour)
	w := NewWorker(store, nil, logger.Discard(), parser.Options{})

	job := NewJob("scan.pdf", []byte("not a pdf"), cleaner.Options{})
	store.Put(job)
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "parsing" {
		t.Errorf("expected failed/parsing, got %q/%q", snap.Status, snap.Phase)
	}
	if len(snap.Errors) != 1 || !strings.HasPrefix(snap.Errors[0], "parse:") {
		t.Errorf("expected parse error, got %v", snap.Errors)
	}
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	orch := NewOrchestrator(testConfig(), nil, logger.Discard())
	orch.Start(context.Background())
	defer orch.Stop()

	job := NewJob("growth.md", []byte("# Growth\n\nCells grew.\n"), cleaner.Options{})
	if err := orch.Submit(job); err != nil {
		t.Fatalf("submit: %v", err)
	}
	snap := waitForJob(t, job)
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (%v)", snap.Status, snap.Errors)
	}
	if snap.Result.Text != "Growth\nCells grew." {
		t.Errorf("unexpected text %q", snap.Result.Text)
	}
	if orch.GetJob(job.ID) != job {
		t.Error("expected job to be retrievable")
	}
	if orch.Stats().Count != 1 {
		t.Errorf("expected one recorded run, got %d", orch.Stats().Count)
	}
}

func TestOrchestrator_SubmitQueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	// Not started: nothing drains the queue.
	orch := NewOrchestrator(cfg, nil, logger.Discard())

	if err := orch.Submit(NewJob("a.txt", nil, cleaner.Options{})); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	overflow := NewJob("b.txt", nil, cleaner.Options{})
	err := orch.Submit(overflow)
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
	if snap := overflow.Snapshot(); snap.Status != StatusFailed || snap.Phase != "queue_full" {
		t.Errorf("expected failed/queue_full, got %q/%q", snap.Status, snap.Phase)
	}
	if orch.QueueDepth() != 1 || orch.JobCount() != 2 {
		t.Errorf("expected depth 1 and 2 jobs, got %d and %d", orch.QueueDepth(), orch.JobCount())
	}
}

func TestOrchestrator_SynchronousCleaning(t *testing.T) {
	orch := NewOrchestrator(testConfig(), nil, logger.Discard())

	res := orch.CleanText("Body (Smith, 2019) text.", cleaner.Options{ExcludeCitations: true})
	if res.Text != "Body text." {
		t.Errorf("unexpected text %q", res.Text)
	}

	fres, err := orch.CleanFile(context.Background(), []byte("<p>Hello there</p>"), "x.html", cleaner.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fres.FilteredWords != 2 {
		t.Errorf("expected 2 words, got %d", fres.FilteredWords)
	}
	if orch.Stats().Count != 2 {
		t.Errorf("expected both runs recorded, got %d", orch.Stats().Count)
	}
}

func TestWorker_DoesNotReuseAcrossFormats(t *testing.T) {
	store := NewJobStore(time.Hour)
	w := NewWorker(store, stats.NewRecorder(time.Hour), logger.Discard(), parser.Options{})
	data := []byte("<p>Body words here.</p>\n<h2>References</h2>\n<p>Smith 2020.</p>")
	opts := cleaner.Options{ExcludeReferences: true}

	asText := NewJob("paper.txt", data, opts)
	store.Put(asText)
	w.Process(context.Background(), asText)

	asHTML := NewJob("paper.html", data, opts)
	store.Put(asHTML)
	w.Process(context.Background(), asHTML)

	snap := asHTML.Snapshot()
	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %q (%v)", snap.Status, snap.Errors)
	}
	if snap.Phase == "reused" {
		t.Fatal("expected the HTML upload to be parsed, not reused")
	}
	if snap.Result.Text != "Body words here." {
		t.Errorf("expected HTML-parsed text, got %q", snap.Result.Text)
	}
}

func TestCleanFile_LongPastedParagraph(t *testing.T) {
	data := []byte(strings.Repeat("word ", 250000))
	res, err := CleanFile(context.Background(), data, "stdin.txt", cleaner.Options{}, parser.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.OriginalWords != 250000 || res.FilteredWords != 250000 {
		t.Errorf("unexpected counts %d/%d", res.OriginalWords, res.FilteredWords)
	}
}

func TestOrchestrator_StopDrainsQueue(t *testing.T) {
	orch := NewOrchestrator(testConfig(), nil, logger.Discard())

	// Queue jobs before any worker runs so Stop has something to drain.
	var jobs []*Job
	for range 3 {
		job := NewJob("growth.txt", []byte(manuscript), cleaner.Options{ExcludeReferences: true})
		if err := orch.Submit(job); err != nil {
			t.Fatalf("submit: %v", err)
		}
		jobs = append(jobs, job)
	}

	orch.Start(context.Background())
	orch.Stop()

	for i, job := range jobs {
		if snap := job.Snapshot(); snap.Status != StatusCompleted {
			t.Errorf("job %d: expected completed after Stop, got %q", i, snap.Status)
		}
	}

	// A second Stop is harmless and later submissions are refused.
	orch.Stop()
	late := NewJob("late.txt", []byte("x"), cleaner.Options{})
	if err := orch.Submit(late); !errors.Is(err, ErrStopped) {
		t.Errorf("expected ErrStopped, got %v", err)
	}
	if snap := late.Snapshot(); snap.Status != StatusFailed {
		t.Errorf("expected refused job to be failed, got %q", snap.Status)
	}
}
