package cli

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/gpx"
	"github.com/neilberkman/trailwatch/internal/core/session"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
	"github.com/spf13/cobra"
)

var (
	summarizeGPX   string
	summarizeQuiet bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize <file.gpx|file.fit>",
	Short: "Compute session metrics for a recorded track",
	Long: `Replay a recorded GPX or FIT track through the tracker without waiting
on wall time and print the summary card.

Examples:
  trailwatch summarize morning.fit
  trailwatch summarize morning.fit --gpx morning.gpx`,
	Args: cobra.ExactArgs(1),
	RunE: runSummarize,
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().StringVar(&summarizeGPX, "gpx", "", "Also write the replayed session as GPX to this path")
	summarizeCmd.Flags().BoolVarP(&summarizeQuiet, "quiet", "q", false, "Hide the progress bar")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	var spin *session.Spinner
	if !summarizeQuiet {
		spin = session.NewSpinner(os.Stderr, "Reading "+args[0])
		spin.Start()
	}
	fixes, err := loadRecording(args[0])
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return fmt.Errorf("failed to load recording: %w", err)
	}

	var progress session.ProgressCallback
	if !summarizeQuiet {
		progress = session.NewProgressReporter(os.Stderr, len(fixes))
	}

	tr := session.Summarize(fixes, progress, tracker.WithCalorieModel(cfg.MET, cfg.WeightKg))
	fmt.Println(session.RenderCard(cfg.SummaryTemplate, tr.Snapshot()))

	if summarizeGPX == "" {
		return nil
	}

	data, err := gpx.ExportWithCreator(tr.Points(), cfg.Creator)
	if err != nil {
		return fmt.Errorf("failed to build GPX: %w", err)
	}
	if err := os.WriteFile(summarizeGPX, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	fmt.Printf("Wrote %s (%s)\n", summarizeGPX, humanize.Bytes(uint64(len(data))))
	return nil
}
