package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/browser"
	"github.com/mankybansal/gopro-library-downloader-selenium/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "gopro-library-downloader",
	Short: "Download all GoPro cloud media through an automated browser session",
	Long: `gopro-library-downloader logs into the GoPro media library with a driven
browser and downloads everything it finds.

Two modes:
  default          capture session cookies after login, page through the
                   media API and download originals over HTTP in parallel
  --ui-download    right-click every gallery tile and trigger the
                   "download original" context-menu action, in batches

The UI mode pauses between batches (--ui-batch-wait, or press Enter to
continue early) and resumes from --ui-start-index or --resume.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.InitConfig()
	},
	RunE: run,
}

func init() {
	flags := rootCmd.Flags()
	flags.Bool("ui-download", false, "Download via UI context menu instead of the API")
	flags.String("media-url", "https://gopro.com/media-library", "Media library URL to open for UI downloads (env GOPRO_MEDIA_URL)")
	flags.Int("ui-start-index", 1, "1-based index of the first tile to process")
	flags.Int("ui-batch-size", 25, "Number of tiles to process before pausing")
	flags.Duration("ui-batch-wait", 300*time.Second, "Wait between batches")
	flags.Duration("ui-wait", 15*time.Second, "Wait for UI elements like media tiles and context menu items")
	flags.Duration("post-click-wait", 1500*time.Millisecond, "Pause after clicking Original quality to allow the download to start")
	flags.Bool("auto-exit-after-ui", false, "Close the browser after the UI flow instead of waiting for the operator")
	flags.Bool("resume", false, "Continue from the progress record in the output directory")
	flags.Bool("continue-on-error", true, "Keep going when a single tile fails")
	flags.Bool("headless", false, "Run the browser headless (only if your login flow permits)")
	flags.String("out", "gopro_media", "Directory to save downloads")
	flags.String("email", "", "GoPro account email (env GOPRO_EMAIL)")
	flags.String("password", "", "GoPro account password (env GOPRO_PASSWORD)")
	flags.Duration("login-wait", 120*time.Second, "Wait for automated login to complete")
	flags.Int("per-page", 100, "Items per page to request from the API")
	flags.Int("max-pages", 0, "Safety cap on API pages to fetch (0 = no cap)")
	flags.Int("concurrency", 4, "Parallel API downloads")
	flags.Bool("dry-run", false, "List what would be downloaded without saving files")

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")

	for key, name := range map[string]string{
		"ui_download":        "ui-download",
		"media_url":          "media-url",
		"ui_start_index":     "ui-start-index",
		"ui_batch_size":      "ui-batch-size",
		"ui_batch_wait":      "ui-batch-wait",
		"ui_wait":            "ui-wait",
		"post_click_wait":    "post-click-wait",
		"auto_exit_after_ui": "auto-exit-after-ui",
		"resume":             "resume",
		"continue_on_error":  "continue-on-error",
		"headless":           "headless",
		"out":                "out",
		"email":              "email",
		"password":           "password",
		"login_wait":         "login-wait",
		"per_page":           "per-page",
		"max_pages":          "max-pages",
		"concurrency":        "concurrency",
		"dry_run":            "dry-run",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(versionCmd)
}

func run(cmd *cobra.Command, args []string) error {
	cfg := config.AppConfig
	if cfg.Email == "" || cfg.Password == "" {
		return fmt.Errorf("missing credentials: set --email/--password or GOPRO_EMAIL/GOPRO_PASSWORD")
	}

	bm, err := browser.New(browser.Options{
		Headless:    cfg.Headless,
		DownloadDir: cfg.Out,
	})
	if err != nil {
		return err
	}

	if err := bm.Login(cfg.Email, cfg.Password, cfg.LoginWait); err != nil {
		bm.Close()
		return err
	}

	if cfg.UIDownload {
		return runUI(bm, cfg)
	}
	return runAPI(bm, cfg)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
