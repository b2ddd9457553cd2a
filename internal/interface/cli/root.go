package cli

import (
	"fmt"
	"os"

	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/spf13/cobra"
)

var (
	dbPath      string
	versionInfo string
)

// SetVersion sets the version information from build-time ldflags
func SetVersion(version, commit, date string) {
	versionInfo = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	rootCmd.Version = versionInfo
}

// Execute runs the CLI
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "trailwatch",
	Short: "Hiking tracker watch face for the terminal",
	Long: `trailwatch - record a hike from a terminal watch face

Tracks distance, elevation gain, speed and calories from live or replayed
location fixes, and exports the session as GPX 1.1.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to the watch face if no subcommand specified
		return trackCmd.RunE(cmd, args)
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "Session journal path")
}
