package cmd

import (
	"os"

	"github.com/ruslanminnebaev21-del/beri-prosto-service/internal/config"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "beri-prosto",
	Short: "Admin dashboard of the Beri Prosto parcel locker rental",
	Long: `Serves the admin dashboard: orders, lockers and unit economics for
administrators signed in with their phone number.`,
	SilenceUsage: true,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file, environment variables override it")
	rootCmd.AddCommand(serveCmd, tokenCmd)
}

func loadConfig() (*config.Config, error) {
	return config.Load(configPath)
}
