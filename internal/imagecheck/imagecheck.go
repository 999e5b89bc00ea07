package imagecheck

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/animedex/internal/model"
)

// Status represents the reachability of an image URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Missing                   // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "ok"
	case Missing:
		return "missing"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single image of an entry.
type Result struct {
	Entry      *model.Entry
	ImageIndex int // 0-based position in Entry.Images
	URL        string
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	Error      string // Error message for unreachable URLs
}

// ProgressFunc is called after each URL is checked.
// completed is the number of URLs checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// Options tunes a check run.
type Options struct {
	Concurrency int
	Timeout     time.Duration
	OnProgress  ProgressFunc
	Client      *http.Client // optional, built from Timeout if nil
}

type job struct {
	entry *model.Entry
	index int
}

// Check requests every image URL of entries concurrently. Results come back in
// entry order, then image order. Entries without images contribute nothing.
func Check(ctx context.Context, entries []model.Entry, opts Options) []Result {
	var jobs []job
	for i := range entries {
		for j := range entries[i].Images {
			jobs = append(jobs, job{entry: &entries[i], index: j})
		}
	}
	if len(jobs) == 0 {
		return nil
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Follow redirects but limit to 10
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		}
	}

	results := make([]Result, len(jobs))
	queue := make(chan int, len(jobs))
	var wg sync.WaitGroup

	// Progress tracking
	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range queue {
				results[idx] = checkImage(ctx, client, jobs[idx])

				if opts.OnProgress != nil {
					progressMu.Lock()
					completed++
					opts.OnProgress(completed, len(jobs))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)

	wg.Wait()
	return results
}

// checkImage checks a single image URL.
func checkImage(ctx context.Context, client *http.Client, j job) Result {
	url := j.entry.Images[j.index]
	result := Result{
		Entry:      j.entry,
		ImageIndex: j.index,
		URL:        url,
	}

	// Try HEAD first, fall back to GET for servers that reject HEAD
	resp, err := do(ctx, client, http.MethodHead, url)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = do(ctx, client, http.MethodGet, url)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		result.Status = Missing
	default:
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	return result
}

func do(ctx context.Context, client *http.Client, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	return client.Do(req)
}

// Broken returns the results that are not Healthy, preserving order.
func Broken(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if r.Status != Healthy {
			out = append(out, r)
		}
	}
	return out
}

// Summary counts results per status.
type Summary struct {
	Healthy     int
	Missing     int
	Unreachable int
}

// Summarize counts results per status.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case Healthy:
			s.Healthy++
		case Missing:
			s.Missing++
		default:
			s.Unreachable++
		}
	}
	return s
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "unsupported protocol scheme"):
		return "Not a URL"
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
