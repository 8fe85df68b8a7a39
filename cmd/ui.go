package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/browser"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/config"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/gallery"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/registry"
)

// runUI drives the gallery page: operator checkpoint, tile enumeration, then
// the batched context-menu download loop.
func runUI(bm *browser.Manager, cfg config.Config) error {
	page, err := bm.Open(cfg.MediaURL)
	if err != nil {
		bm.Close()
		return err
	}

	gallery.Gate("Manually adjust the page (sort/filter, scroll until everything is loaded), then press Enter here to start downloads...")

	tiles, err := gallery.Tiles(page, cfg.UIWait)
	if err != nil {
		bm.Close()
		return err
	}
	logger.Info("Found %d tiles inside the media container.", len(tiles))
	if len(tiles) == 0 {
		bm.Close()
		return nil
	}

	progPath := filepath.Join(cfg.Out, "progress.json")
	prog, err := registry.LoadProgress(progPath)
	if err != nil {
		logger.Warn("Ignoring unreadable progress record: %v", err)
		prog = &registry.Progress{}
	}

	start := cfg.UIStartIndex
	if cfg.Resume && start <= 1 {
		start = prog.NextIndex()
		logger.Info("Resuming from tile %d (%s).", start, progPath)
		if prog.TileCount > 0 && prog.TileCount != len(tiles) {
			logger.Warn("Tile count changed since last run (%d -> %d); positions may not line up.",
				prog.TileCount, len(tiles))
		}
	}
	logger.Info("Processing tiles starting from index %d. Count this run: %d",
		start, max(0, len(tiles)-start+1))

	ctrl := gallery.NewController(gallery.Options{
		StartIndex:      start,
		BatchSize:       cfg.UIBatchSize,
		BatchWait:       cfg.UIBatchWait,
		PostClickWait:   cfg.PostClickWait,
		ContinueOnError: cfg.ContinueOnError,
	})
	ctrl.OnTile = func(pos int) {
		prog.Record(pos, len(tiles))
		if err := prog.Save(progPath); err != nil {
			logger.Debug("Could not save progress record: %v", err)
		}
	}

	stats, err := ctrl.Run(len(tiles), func(pos int) error {
		return gallery.DownloadOriginal(page, tiles[pos-1], cfg.UIWait)
	})
	if err != nil {
		bm.Close()
		return fmt.Errorf("run aborted: %w", err)
	}

	logger.Info("Run finished: %d processed, %d downloads triggered, %d failed.",
		stats.Processed, stats.Clicked, len(stats.Failed))
	if len(stats.Failed) > 0 {
		logger.Warn("Failed tiles: %v. Retry them with --ui-start-index on another run.", stats.Failed)
	}

	if cfg.AutoExitAfterUI {
		bm.Close()
		logger.Info("UI-driven downloads triggered. Browser closed (auto-exit enabled).")
		return nil
	}

	// In-flight downloads belong to the browser; closing it would kill them.
	logger.Info("UI-driven downloads triggered. The browser stays open until they finish.")
	gallery.Gate("Press Enter here after the downloads finish to exit...")
	bm.Close()
	return nil
}
