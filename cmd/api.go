package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/api"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/browser"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/config"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/downloader"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

// runAPI captures the session cookies, pages through the media API and
// downloads originals over plain HTTP.
func runAPI(bm *browser.Manager, cfg config.Config) error {
	cookieHeader, token, err := bm.CookieHeader()
	bm.Close() // everything from here goes over plain HTTP
	if err != nil {
		return err
	}

	client := api.NewClient(cookieHeader, token)

	var jobs []downloader.Job
	page := 1
	for {
		if cfg.MaxPages > 0 && page > cfg.MaxPages {
			logger.Info("Reached max-pages limit, stopping.")
			break
		}

		items, err := client.Page(page, cfg.PerPage)
		if err != nil {
			return fmt.Errorf("API fetch failed (%v); try rerunning with --ui-download to fetch via the browser UI", err)
		}
		if len(items) == 0 {
			break
		}
		logger.Info("Fetched page %d with %d items.", page, len(items))

		for _, m := range items {
			dls := m.Downloads()
			if len(dls) == 0 {
				logger.Warn("No download URL found for media id=%s, skipping.", m.ID)
				continue
			}
			jobs = append(jobs, downloader.Job{
				URL:  dls[0].URL,
				Dest: filepath.Join(cfg.Out, dls[0].Filename),
			})
		}
		page++
	}

	if len(jobs) == 0 {
		logger.Info("No downloadable media found.")
		return nil
	}

	outAbs, _ := filepath.Abs(cfg.Out)
	logger.Info("Queued %d downloads. Saving to %s", len(jobs), outAbs)

	if cfg.DryRun {
		for _, job := range jobs {
			logger.Info("[dry-run] %s <= %s", job.Dest, job.URL)
		}
		return nil
	}

	res := downloader.New(cfg.Concurrency, client.AuthHeader()).Run(jobs)
	logger.Info("Done: %d downloaded, %d skipped, %d failed.", res.Completed, res.Skipped, res.Failed)
	return nil
}
