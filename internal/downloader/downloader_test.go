package downloader

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestRunDownloadsAllJobs(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprintf(w, "content of %s", r.URL.Path)
	}))
	defer srv.Close()

	dir := t.TempDir()
	var jobs []Job
	for i := 0; i < 5; i++ {
		jobs = append(jobs, Job{
			URL:  fmt.Sprintf("%s/file%d.mp4", srv.URL, i),
			Dest: filepath.Join(dir, fmt.Sprintf("file%d.mp4", i)),
		})
	}

	res := New(3, nil).Run(jobs)
	if res.Completed != 5 || res.Failed != 0 || res.Skipped != 0 {
		t.Fatalf("result = %+v, want 5 completed", res)
	}
	if hits != 5 {
		t.Errorf("server got %d hits, want 5", hits)
	}
	for _, job := range jobs {
		data, err := os.ReadFile(job.Dest)
		if err != nil {
			t.Fatalf("missing download %s: %v", job.Dest, err)
		}
		if len(data) == 0 {
			t.Errorf("empty download %s", job.Dest)
		}
	}
}

func TestRunSkipsExistingFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("existing file must not be re-fetched")
	}))
	defer srv.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "existing.mp4")
	if err := os.WriteFile(dest, []byte("already here"), 0644); err != nil {
		t.Fatal(err)
	}

	res := New(1, nil).Run([]Job{{URL: srv.URL + "/x.mp4", Dest: dest}})
	if res.Skipped != 1 || res.Completed != 0 {
		t.Fatalf("result = %+v, want 1 skipped", res)
	}
}

func TestRunFailedJobDoesNotStopOthers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad.mp4" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	dir := t.TempDir()
	jobs := []Job{
		{URL: srv.URL + "/good1.mp4", Dest: filepath.Join(dir, "good1.mp4")},
		{URL: srv.URL + "/bad.mp4", Dest: filepath.Join(dir, "bad.mp4")},
		{URL: srv.URL + "/good2.mp4", Dest: filepath.Join(dir, "good2.mp4")},
	}

	res := New(2, nil).Run(jobs)
	if res.Completed != 2 || res.Failed != 1 {
		t.Fatalf("result = %+v, want 2 completed 1 failed", res)
	}
	if _, err := os.Stat(filepath.Join(dir, "bad.mp4")); !os.IsNotExist(err) {
		t.Error("failed download must not leave a file behind")
	}
}

func TestRunSendsAuthHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Cookie") != "session=abc" {
			t.Errorf("Cookie = %q, want session=abc", r.Header.Get("Cookie"))
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("Authorization = %q, want Bearer tok", r.Header.Get("Authorization"))
		}
		fmt.Fprint(w, "ok")
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("Cookie", "session=abc")
	header.Set("Authorization", "Bearer tok")

	dir := t.TempDir()
	res := New(1, header).Run([]Job{{URL: srv.URL + "/a.mp4", Dest: filepath.Join(dir, "a.mp4")}})
	if res.Completed != 1 {
		t.Fatalf("result = %+v, want 1 completed", res)
	}
}
