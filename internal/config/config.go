package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/logger"
)

// Config is the run configuration for one invocation. It is filled once from
// flags, environment and the optional config file, and not mutated afterwards.
type Config struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`

	Out      string `mapstructure:"out"`
	Headless bool   `mapstructure:"headless"`

	// UI download mode
	UIDownload      bool          `mapstructure:"ui_download"`
	MediaURL        string        `mapstructure:"media_url"`
	UIStartIndex    int           `mapstructure:"ui_start_index"`
	UIBatchSize     int           `mapstructure:"ui_batch_size"`
	UIBatchWait     time.Duration `mapstructure:"ui_batch_wait"`
	UIWait          time.Duration `mapstructure:"ui_wait"`
	PostClickWait   time.Duration `mapstructure:"post_click_wait"`
	AutoExitAfterUI bool          `mapstructure:"auto_exit_after_ui"`
	Resume          bool          `mapstructure:"resume"`
	ContinueOnError bool          `mapstructure:"continue_on_error"`

	// API download mode
	PerPage     int  `mapstructure:"per_page"`
	MaxPages    int  `mapstructure:"max_pages"`
	Concurrency int  `mapstructure:"concurrency"`
	DryRun      bool `mapstructure:"dry_run"`

	LoginWait time.Duration `mapstructure:"login_wait"`
}

var AppConfig Config

// InitConfig loads defaults, the optional config file and the environment.
// Flag bindings happen in cmd/root.go before this runs.
func InitConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if runtime.GOOS == "linux" {
		viper.AddConfigPath("/etc/gopro-library-downloader/")
		viper.AddConfigPath("$HOME/.config/gopro-library-downloader")
	} else if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		viper.AddConfigPath(filepath.Join(home, ".config", "gopro-library-downloader"))
	}
	viper.AddConfigPath(".")

	viper.SetDefault("out", "gopro_media")
	viper.SetDefault("media_url", "https://gopro.com/media-library")
	viper.SetDefault("ui_start_index", 1)
	viper.SetDefault("ui_batch_size", 25)
	viper.SetDefault("ui_batch_wait", 300*time.Second)
	viper.SetDefault("ui_wait", 15*time.Second)
	viper.SetDefault("post_click_wait", 1500*time.Millisecond)
	viper.SetDefault("login_wait", 120*time.Second)
	viper.SetDefault("per_page", 100)
	viper.SetDefault("concurrency", 4)
	viper.SetDefault("continue_on_error", true)

	// Credentials and the library URL can come from the environment.
	_ = viper.BindEnv("email", "GOPRO_EMAIL")
	_ = viper.BindEnv("password", "GOPRO_PASSWORD")
	_ = viper.BindEnv("media_url", "GOPRO_MEDIA_URL")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			logger.Error("Could not read config file: %v", err)
			os.Exit(1)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		logger.Error("Could not decode config: %v", err)
	}
}
