package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/gpx"
	"github.com/neilberkman/trailwatch/internal/core/journal"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"
)

var (
	exportOutput string
	exportDate   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journaled session to GPX",
	Long: `Export the current (or last unfinished) session to a GPX 1.1 file.

By default exports to the current directory as hike-<date>.gpx, using the
session's start date. --date accepts natural language for the file name.

Examples:
  trailwatch export
  trailwatch export --date yesterday
  trailwatch export --output ~/hikes/eiger.gpx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file path (default: hike-<date>.gpx in current directory)")
	exportCmd.Flags().StringVar(&exportDate, "date", "", `Date for the file name, e.g. "today", "last saturday", 2025-06-01`)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	jr, err := journal.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = jr.Close() }()

	rec, err := jr.Load()
	if errors.Is(err, journal.ErrNoSession) {
		return fmt.Errorf("nothing to export: %w", err)
	}
	if err != nil {
		return err
	}

	date := rec.StartedAt.Local()
	if exportDate != "" {
		parsed := parseDate(exportDate, time.Now())
		if parsed == nil {
			return fmt.Errorf("could not understand date %q", exportDate)
		}
		date = *parsed
	}

	outputPath, err := exportPath(exportOutput, date)
	if err != nil {
		return err
	}

	data, err := gpx.ExportWithCreator(rec.Points, cfg.Creator)
	if err != nil {
		return fmt.Errorf("failed to build GPX: %w", err)
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	fmt.Printf("Exported %s points (%s) to: %s\n",
		humanize.Comma(int64(len(rec.Points))), humanize.Bytes(uint64(len(data))), outputPath)
	return nil
}

// exportPath resolves the output path, defaulting to hike-<date>.gpx in
// the current directory
func exportPath(output string, date time.Time) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}

	if output == "" {
		return filepath.Join(cwd, gpx.FileName(date)), nil
	}
	if !filepath.IsAbs(output) {
		// Make relative paths absolute to current directory
		return filepath.Join(cwd, output), nil
	}
	return output, nil
}

// parseDate attempts to parse a date string using natural language parsing
func parseDate(dateStr string, now time.Time) *time.Time {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	// Try natural language parsing first
	result, err := w.Parse(dateStr, now)
	if err == nil && result != nil {
		return &result.Time
	}

	// Try standard formats
	formats := []string{
		"2006-01-02",
		time.RFC3339,
		"2006/01/02",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return &t
		}
	}

	return nil
}
