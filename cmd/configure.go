package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mankybansal/gopro-library-downloader-selenium/internal/config"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Save account email and output directory to the config file",
	Run: func(cmd *cobra.Command, args []string) {
		email := prompt("GoPro account email", config.AppConfig.Email)
		out := prompt("Download directory", config.AppConfig.Out)
		outAbs, _ := filepath.Abs(out)

		viper.Set("email", email)
		viper.Set("out", outAbs)

		if viper.ConfigFileUsed() == "" {
			home, _ := os.UserHomeDir()
			configDir := filepath.Join(home, ".config", "gopro-library-downloader")
			if err := os.MkdirAll(configDir, 0755); err != nil {
				fmt.Printf("❌ Could not create config directory: %v\n", err)
				return
			}
			viper.SetConfigFile(filepath.Join(configDir, "config.yaml"))
		}

		if err := viper.WriteConfig(); err != nil {
			if err := viper.WriteConfigAs(viper.ConfigFileUsed()); err != nil {
				fmt.Printf("❌ Could not save config: %v\n", err)
				return
			}
		}

		fmt.Printf("✅ Configuration saved to %s\n", viper.ConfigFileUsed())
		fmt.Println("The password is not stored; pass --password or set GOPRO_PASSWORD per run.")
	},
}
