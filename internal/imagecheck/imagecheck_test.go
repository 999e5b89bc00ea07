package imagecheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nikbrunner/animedex/internal/model"
)

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.jpg":
			w.WriteHeader(http.StatusOK)
		case "/gone.jpg":
			w.WriteHeader(http.StatusGone)
		case "/nohead.jpg":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		case "/error.jpg":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheck(t *testing.T) {
	srv := newImageServer(t)

	entries := []model.Entry{
		{ID: 1, Images: []string{srv.URL + "/ok.jpg", srv.URL + "/missing.jpg"}},
		{ID: 2, Images: []string{}},
		{ID: 3, Images: []string{srv.URL + "/gone.jpg", srv.URL + "/nohead.jpg", srv.URL + "/error.jpg"}},
	}

	var calls int32
	results := Check(context.Background(), entries, Options{
		Concurrency: 3,
		Timeout:     time.Second,
		OnProgress: func(completed, total int) {
			atomic.AddInt32(&calls, 1)
			if total != 5 {
				t.Errorf("expected total 5, got %d", total)
			}
		},
	})

	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}
	if calls != 5 {
		t.Errorf("expected 5 progress calls, got %d", calls)
	}

	want := []struct {
		entryID int
		index   int
		status  Status
	}{
		{1, 0, Healthy},
		{1, 1, Missing},
		{3, 0, Missing},
		{3, 1, Healthy},
		{3, 2, Unreachable},
	}
	for i, w := range want {
		r := results[i]
		if r.Entry.ID != w.entryID || r.ImageIndex != w.index || r.Status != w.status {
			t.Errorf("result %d = {entry %d, image %d, %s}, want {entry %d, image %d, %s}",
				i, r.Entry.ID, r.ImageIndex, r.Status, w.entryID, w.index, w.status)
		}
	}

	if results[4].Error != "Internal Server Error" {
		t.Errorf("expected status text error, got %q", results[4].Error)
	}

	sum := Summarize(results)
	if sum.Healthy != 2 || sum.Missing != 2 || sum.Unreachable != 1 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if got := len(Broken(results)); got != 3 {
		t.Errorf("expected 3 broken, got %d", got)
	}
}

func TestCheck_NoImages(t *testing.T) {
	results := Check(context.Background(), []model.Entry{{ID: 1}}, Options{Concurrency: 2})
	if results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

func TestCheck_InvalidURL(t *testing.T) {
	entries := []model.Entry{{ID: 1, Images: []string{"/placeholder.svg"}}}

	results := Check(context.Background(), entries, Options{Concurrency: 1, Timeout: time.Second})
	if results[0].Status != Unreachable {
		t.Errorf("expected unreachable, got %s", results[0].Status)
	}
	if results[0].Error != "Not a URL" {
		t.Errorf("expected normalized error, got %q", results[0].Error)
	}
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"dial tcp: lookup nope.invalid: no such host", "DNS failure"},
		{"Get \"x\": context deadline exceeded (Client.Timeout exceeded)", "Timeout"},
		{"dial tcp 127.0.0.1:1: connect: connection refused", "Connection refused"},
		{"x509: certificate signed by unknown authority", "TLS/certificate error"},
		{"something else", "something else"},
	}

	for _, tt := range tests {
		if got := normalizeError(tt.input); got != tt.want {
			t.Errorf("normalizeError(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
