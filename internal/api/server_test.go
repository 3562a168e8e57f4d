package api

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/wordcut/internal/cleaner"
	"github.com/dgallion1/wordcut/internal/config"
	"github.com/dgallion1/wordcut/internal/logger"
	"github.com/dgallion1/wordcut/internal/pipeline"
)

func testConfig() config.Config {
	return config.Config{
		Port:           "8090",
		WorkerCount:    1,
		MaxQueueSize:   4,
		MaxUploadBytes: 1 << 20,
		MaxTextBytes:   1 << 10,
		JobTTL:         time.Hour,
		StatsWindow:    time.Hour,
		LogFormat:      "json",
		LogLevel:       "info",
	}
}

func newTestServer(t *testing.T, cfg config.Config) *Server {
	t.Helper()
	orch := pipeline.NewOrchestrator(cfg, nil, logger.Discard())
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)
	return NewServer(orch, nil, logger.Discard(), cfg)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, field string, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		fw, err := mw.CreateFormFile(field, name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(content))
	}
	for k, v := range fields {
		mw.WriteField(k, v)
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body["error"]
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("unexpected health response %d %q", rec.Code, rec.Body.String())
	}
}

func TestClean(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doJSON(t, srv, http.MethodPost, "/api/clean", map[string]any{
		"text":    "Cells grew (Smith, 2019) fast.",
		"options": map[string]bool{"excludeCitations": true},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var res cleaner.Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Text != "Cells grew fast." || res.OriginalWords != 5 || res.FilteredWords != 3 {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestClean_ResponseFieldNames(t *testing.T) {
	srv := newTestServer(t, testConfig())
	rec := doJSON(t, srv, http.MethodPost, "/api/clean", map[string]any{"text": "one two"})

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"cleanedText", "originalWordCount", "filteredWordCount"} {
		if _, ok := body[key]; !ok {
			t.Errorf("expected key %q in %v", key, body)
		}
	}
}

func TestClean_ProfileWithOverride(t *testing.T) {
	srv := newTestServer(t, testConfig())
	text := "My Title\nBody text.\n\nReferences\nSmith 2020."

	rec := doJSON(t, srv, http.MethodPost, "/api/clean", map[string]any{
		"text":    text,
		"profile": "all",
		"options": map[string]bool{"excludeTitle": false, "excludeNumbers": false},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res cleaner.Result
	json.NewDecoder(rec.Body).Decode(&res)
	if res.Text != "My Title\nBody text." {
		t.Errorf("expected title kept and references removed, got %q", res.Text)
	}
}

func TestClean_Errors(t *testing.T) {
	srv := newTestServer(t, testConfig())

	tests := []struct {
		name string
		body any
		code int
		want string
	}{
		{"unknown option", map[string]any{"text": "x", "options": map[string]bool{"excludeAll": true}}, http.StatusBadRequest, "excludeAll"},
		{"unknown profile", map[string]any{"text": "x", "profile": "thesis"}, http.StatusBadRequest, "unknown profile"},
		{"too large", map[string]any{"text": strings.Repeat("a", 2<<10)}, http.StatusRequestEntityTooLarge, "max size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/clean", tt.body)
			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
			if msg := decodeError(t, rec); !strings.Contains(msg, tt.want) {
				t.Errorf("expected error containing %q, got %q", tt.want, msg)
			}
		})
	}
}

func TestClean_InvalidJSON(t *testing.T) {
	srv := newTestServer(t, testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/clean", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCleanFile(t *testing.T) {
	srv := newTestServer(t, testConfig())
	body, ct := multipartBody(t, "file",
		map[string]string{"paper.md": "# Results\n\nYield rose sharply (Lee, 2020).\n"},
		map[string]string{"excludeCitations": "true"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/clean/file", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var res pipeline.FileResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Filename != "paper.md" || res.Text != "Results\nYield rose sharply ." {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestCleanFile_Errors(t *testing.T) {
	srv := newTestServer(t, testConfig())

	tests := []struct {
		name   string
		files  map[string]string
		fields map[string]string
		code   int
	}{
		{"unsupported type", map[string]string{"data.csv": "a,b"}, nil, http.StatusBadRequest},
		{"bad boolean", map[string]string{"a.txt": "x"}, map[string]string{"excludeTitle": "maybe"}, http.StatusBadRequest},
		{"unparseable pdf", map[string]string{"a.pdf": "not a pdf"}, nil, http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := multipartBody(t, "file", tt.files, tt.fields)
			req := httptest.NewRequest(http.MethodPost, "/api/clean/file", body)
			req.Header.Set("Content-Type", ct)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d: %s", tt.code, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestJobs_SubmitAndPoll(t *testing.T) {
	srv := newTestServer(t, testConfig())
	body, ct := multipartBody(t, "files",
		map[string]string{"a.txt": "Alpha beta.\nPage 2 of 9\n"},
		map[string]string{"profile": "body"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rec.Code, rec.Body.String())
	}
	var submitted struct {
		Jobs []submittedJob `json:"jobs"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&submitted); err != nil {
		t.Fatal(err)
	}
	if len(submitted.Jobs) != 1 || submitted.Jobs[0].JobID == "" {
		t.Fatalf("unexpected submit response %+v", submitted)
	}

	var snap pipeline.JobSnapshot
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		rec := doJSON(t, srv, http.MethodGet, submitted.Jobs[0].PollURL, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("poll: expected 200, got %d", rec.Code)
		}
		snap = pipeline.JobSnapshot{}
		json.NewDecoder(rec.Body).Decode(&snap)
		if snap.Status == pipeline.StatusCompleted || snap.Status == pipeline.StatusFailed {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if snap.Status != pipeline.StatusCompleted {
		t.Fatalf("expected completed job, got %+v", snap)
	}
	if snap.Result == nil || snap.Result.Text != "Alpha beta." {
		t.Errorf("expected page number removed, got %+v", snap.Result)
	}
}

func TestJobs_Errors(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rec := doJSON(t, srv, http.MethodGet, "/api/jobs/unknown", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown job, got %d", rec.Code)
	}

	body, ct := multipartBody(t, "files", nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/jobs", body)
	req.Header.Set("Content-Type", ct)
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without files, got %d", rec.Code)
	}
}

func TestOptionsAndStats(t *testing.T) {
	srv := newTestServer(t, testConfig())

	rec := doJSON(t, srv, http.MethodGet, "/api/options", nil)
	var opts optionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&opts); err != nil {
		t.Fatal(err)
	}
	if len(opts.Options) != 14 || len(opts.Profiles) != 3 || len(opts.Extensions) == 0 {
		t.Errorf("unexpected options response %+v", opts)
	}

	doJSON(t, srv, http.MethodPost, "/api/clean", map[string]any{"text": "one two three"})
	rec = doJSON(t, srv, http.MethodGet, "/api/stats", nil)
	var stats struct {
		Stats struct {
			Count   int   `json:"count"`
			WordsIn int64 `json:"words_in"`
		} `json:"stats"`
		QueueDepth int `json:"queue_depth"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&stats); err != nil {
		t.Fatal(err)
	}
	if stats.Stats.Count != 1 || stats.Stats.WordsIn != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestAuth(t *testing.T) {
	cfg := testConfig()
	cfg.APIKey = "secret"
	srv := newTestServer(t, cfg)

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer secret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/options", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, req)
			if rec.Code != tt.code {
				t.Errorf("expected %d, got %d", tt.code, rec.Code)
			}
		})
	}

	// Health stays public.
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected public health check, got %d", rec.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"paper.pdf", "paper.pdf"},
		{"../../etc/passwd.txt", "passwd.txt"},
		{`C:\Users\me\thesis.docx`, "thesis.docx"},
		{"a..b.md", "a_b.md"},
		{"", "unnamed"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
