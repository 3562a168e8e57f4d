package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/dgallion1/wordcut/internal/cleaner"
)

func TestContentHashHex_Consistency(t *testing.T) {
	data := []byte("hello world")
	h1 := ContentHashHex(data)
	h2 := ContentHashHex(data)
	if h1 != h2 {
		t.Errorf("expected identical hashes, got %q and %q", h1, h2)
	}
	// SHA-256 of "hello world" is well-known.
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if h1 != want {
		t.Errorf("expected hash %q, got %q", want, h1)
	}
}

func TestContentHashHex_EmptyInput(t *testing.T) {
	h := ContentHashHex([]byte{})
	// SHA-256 of empty input is well-known.
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if h != want {
		t.Errorf("expected hash %q, got %q", want, h)
	}
}

func TestRunHash_DependsOnOptions(t *testing.T) {
	data := []byte("same bytes")
	a := RunHash(data, "a.txt", cleaner.Options{ExcludeCitations: true})
	b := RunHash(data, "a.txt", cleaner.Options{ExcludeQuotes: true})
	if a == b {
		t.Error("expected different hashes for different options")
	}
	if a != RunHash(data, "b.txt", cleaner.Options{ExcludeCitations: true}) {
		t.Error("expected stable hash for same input and extension")
	}
}

func TestRunHash_DependsOnExtension(t *testing.T) {
	data := []byte("same bytes")
	opts := cleaner.AllOptions()
	if RunHash(data, "paper.txt", opts) == RunHash(data, "paper.html", opts) {
		t.Error("expected different hashes for different parsers")
	}
	if RunHash(data, "paper.MD", opts) != RunHash(data, "notes.md", opts) {
		t.Error("expected extension case to be ignored")
	}
}

func TestNewJob(t *testing.T) {
	job := NewJob("paper.txt", []byte("text"), cleaner.AllOptions())
	if len(job.ID) != 26 {
		t.Errorf("expected ULID job id, got %q", job.ID)
	}
	if job.Status != StatusQueued || job.Phase != "queued" {
		t.Errorf("expected queued job, got %q/%q", job.Status, job.Phase)
	}
	if string(job.FileData()) != "text" {
		t.Errorf("expected file data kept, got %q", job.FileData())
	}
}

func TestJob_StateTransitions(t *testing.T) {
	job := &Job{
		ID:        "test-1",
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	transitions := []struct {
		status JobStatus
		phase  string
	}{
		{StatusParsing, "parsing"},
		{StatusCleaning, "cleaning"},
		{StatusCompleted, "done"},
	}

	for _, tr := range transitions {
		before := job.UpdatedAt
		// Small sleep to ensure time difference is detectable.
		time.Sleep(time.Millisecond)
		job.SetStatus(tr.status, tr.phase)

		if job.Status != tr.status {
			t.Errorf("expected status %q, got %q", tr.status, job.Status)
		}
		if job.Phase != tr.phase {
			t.Errorf("expected phase %q, got %q", tr.phase, job.Phase)
		}
		if !job.UpdatedAt.After(before) {
			t.Errorf("expected UpdatedAt to advance after SetStatus(%q)", tr.status)
		}
	}
}

func TestJob_Complete(t *testing.T) {
	job := NewJob("a.md", []byte("# A"), cleaner.Options{})
	job.Complete(FileResult{
		Filename: "a.md",
		Title:    "a",
		Result:   cleaner.Result{Text: "A", OriginalWords: 1, FilteredWords: 1},
	}, "done")

	snap := job.Snapshot()
	if snap.Status != StatusCompleted || snap.Phase != "done" {
		t.Errorf("expected completed/done, got %q/%q", snap.Status, snap.Phase)
	}
	if snap.Result == nil || snap.Result.Text != "A" || snap.Title != "a" {
		t.Errorf("expected result in snapshot, got %+v", snap)
	}
	if job.FileData() != nil {
		t.Error("expected file data released")
	}
}

func TestJob_Fail(t *testing.T) {
	job := NewJob("a.pdf", []byte("x"), cleaner.Options{})
	job.Fail("parsing", errors.New("bad pdf"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed || snap.Phase != "parsing" {
		t.Errorf("expected failed/parsing, got %q/%q", snap.Status, snap.Phase)
	}
	if len(snap.Errors) != 1 || snap.Errors[0] != "bad pdf" {
		t.Errorf("expected recorded error, got %v", snap.Errors)
	}
	if snap.Result != nil {
		t.Error("expected no result for failed job")
	}
}

func TestJob_AddError(t *testing.T) {
	job := &Job{ID: "err-test", UpdatedAt: time.Now()}
	job.AddError("first")
	job.AddError("second")

	snap := job.Snapshot()
	if len(snap.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(snap.Errors))
	}
	if snap.Errors[0] != "first" {
		t.Errorf("expected first error %q, got %q", "first", snap.Errors[0])
	}
}

func TestJob_SnapshotErrorsNotNil(t *testing.T) {
	// Snapshot should always return non-nil slices.
	job := &Job{ID: "snap-test", UpdatedAt: time.Now()}
	snap := job.Snapshot()
	if snap.Errors == nil || snap.Options == nil {
		t.Error("expected non-nil slices in snapshot")
	}
}

func TestJob_SnapshotIsACopy(t *testing.T) {
	job := NewJob("a.txt", nil, cleaner.Options{})
	job.Complete(FileResult{Result: cleaner.Result{Text: "x"}}, "done")
	snap := job.Snapshot()
	snap.Result.Text = "changed"
	if job.Snapshot().Result.Text != "x" {
		t.Error("expected snapshot result to be independent of the job")
	}
}

func TestJobStore_PutGet(t *testing.T) {
	store := NewJobStore(time.Hour)
	job := &Job{ID: "store-1", UpdatedAt: time.Now()}
	store.Put(job)

	got := store.Get("store-1")
	if got == nil {
		t.Fatal("expected to get job back")
	}
	if got.ID != "store-1" {
		t.Errorf("expected ID %q, got %q", "store-1", got.ID)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 job, got %d", store.Len())
	}
}

func TestJobStore_GetMissing(t *testing.T) {
	store := NewJobStore(time.Hour)
	if store.Get("nonexistent") != nil {
		t.Error("expected nil for missing job")
	}
}

func TestJobStore_FindCompleted(t *testing.T) {
	store := NewJobStore(time.Hour)

	done := NewJob("a.txt", nil, cleaner.Options{})
	done.SetContentHash("h1")
	done.Complete(FileResult{Result: cleaner.Result{Text: "done"}}, "done")
	store.Put(done)

	pending := NewJob("b.txt", nil, cleaner.Options{})
	pending.SetContentHash("h2")
	store.Put(pending)

	if got := store.FindCompleted("h1", "other"); got == nil || got.Text != "done" {
		t.Errorf("expected completed result for h1, got %+v", got)
	}
	if got := store.FindCompleted("h1", done.ID); got != nil {
		t.Error("expected excluded job to be skipped")
	}
	if got := store.FindCompleted("h2", ""); got != nil {
		t.Error("expected no result for unfinished job")
	}
	if got := store.FindCompleted("", ""); got != nil {
		t.Error("expected no result for empty hash")
	}
}

func TestJobStore_TTLCleanup(t *testing.T) {
	store := NewJobStore(50 * time.Millisecond)

	expired := &Job{ID: "old", UpdatedAt: time.Now()}
	store.Put(expired)

	// Wait for the TTL to pass.
	time.Sleep(100 * time.Millisecond)

	// Add a fresh job.
	fresh := &Job{ID: "new", UpdatedAt: time.Now()}
	store.Put(fresh)

	store.Cleanup()

	if store.Get("old") != nil {
		t.Error("expected expired job to be cleaned up")
	}
	if store.Get("new") == nil {
		t.Error("expected fresh job to survive cleanup")
	}
}

func TestJobStore_CleanupEmpty(t *testing.T) {
	store := NewJobStore(time.Hour)
	// Should not panic on empty store.
	store.Cleanup()
}
