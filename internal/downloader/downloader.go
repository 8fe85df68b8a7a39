package downloader

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

// Job is one file to fetch.
type Job struct {
	URL  string
	Dest string
}

// Result counts how a batch of jobs ended.
type Result struct {
	Completed int
	Skipped   int
	Failed    int
}

// Pool downloads jobs with a bounded number of workers. Per-file failures are
// logged, never fatal: one broken URL must not sink a multi-hundred-file run.
type Pool struct {
	Client  *http.Client
	Header  http.Header
	Workers int
}

// New builds a pool sending the given headers (cookies, bearer token) with
// every request. No overall client timeout: large videos stream for minutes.
func New(workers int, header http.Header) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{
		Client:  &http.Client{},
		Header:  header,
		Workers: workers,
	}
}

// Run fetches all jobs and blocks until the last worker finishes.
func (p *Pool) Run(jobs []Job) Result {
	bar := newBar(len(jobs))

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		res Result
	)

	ch := make(chan Job)
	for i := 0; i < p.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range ch {
				skipped, err := p.fetch(job)

				mu.Lock()
				switch {
				case err != nil:
					res.Failed++
				case skipped:
					res.Skipped++
				default:
					res.Completed++
				}
				mu.Unlock()

				if err != nil {
					logger.Error("Failed: %s (%s): %v", job.Dest, job.URL, err)
				} else if skipped {
					logger.Debug("Skipping (exists): %s", job.Dest)
				}
				_ = bar.Add(1)
			}
		}()
	}

	for _, job := range jobs {
		ch <- job
	}
	close(ch)
	wg.Wait()
	_ = bar.Finish()
	fmt.Println()

	return res
}

func (p *Pool) fetch(job Job) (skipped bool, err error) {
	if _, err := os.Stat(job.Dest); err == nil {
		return true, nil
	}
	if err := os.MkdirAll(filepath.Dir(job.Dest), 0755); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}

	req, err := http.NewRequest(http.MethodGet, job.URL, nil)
	if err != nil {
		return false, err
	}
	if p.Header != nil {
		req.Header = p.Header.Clone()
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %s", resp.Status)
	}

	f, err := os.Create(job.Dest)
	if err != nil {
		return false, err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(job.Dest) // don't leave truncated media behind
		return false, err
	}
	return false, f.Close()
}

func newBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("⬇️  downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
	)
}
