package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/neilberkman/trailwatch/internal/core/config"
	"github.com/neilberkman/trailwatch/internal/core/journal"
	"github.com/neilberkman/trailwatch/internal/core/session"
	"github.com/neilberkman/trailwatch/internal/core/sources/clock"
	"github.com/neilberkman/trailwatch/internal/core/sources/heartrate"
	"github.com/neilberkman/trailwatch/internal/core/sources/location"
	"github.com/neilberkman/trailwatch/internal/core/tracker"
	"github.com/neilberkman/trailwatch/internal/interface/tui"
	"github.com/spf13/cobra"
)

var (
	trackReplay   string
	trackRate     float64
	trackHRDevice string
	trackRecover  bool
)

var trackCmd = &cobra.Command{
	Use:   "track",
	Short: "Launch the watch face",
	Long: `Launch the interactive watch face and record a hike.

Without --replay a simulated hiker walks from the configured start
position. Use --replay to play back a recorded GPX or FIT track.

Examples:
  trailwatch track
  trailwatch track --replay morning.gpx --rate 10
  trailwatch track --hr-device /dev/ttyUSB0
  trailwatch track --recover`,
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)
	trackCmd.Flags().StringVar(&trackReplay, "replay", "", "Replay a recorded .gpx or .fit track")
	trackCmd.Flags().Float64Var(&trackRate, "rate", 0, "Replay speed multiplier (default: replay_rate from config)")
	trackCmd.Flags().StringVar(&trackHRDevice, "hr-device", "", "Heart rate device path (default: hr_device from config)")
	trackCmd.Flags().BoolVar(&trackRecover, "recover", false, "Restore the journaled session as paused")
}

func runTrack(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Keep log output off the alt screen
	if cfg.Dir != "" {
		_ = os.MkdirAll(cfg.Dir, 0755)
	}
	if f, err := tea.LogToFile(config.LogPath(), "trailwatch"); err == nil {
		defer func() { _ = f.Close() }()
	}

	jr, err := journal.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = jr.Close() }()

	loc, err := locationSource(trackReplay, trackRate, cfg)
	if err != nil {
		return err
	}

	device := trackHRDevice
	if device == "" {
		device = cfg.HRDevice
	}

	tr := tracker.New(tracker.WithCalorieModel(cfg.MET, cfg.WeightKg))
	ctrl := session.NewController(tr, session.Sources{
		Location:  loc,
		Clock:     clock.NewTicker(),
		HeartRate: heartrate.Connect(device, cfg.HRBaseline, time.Now().UnixNano()),
		Battery:   batterySource(cfg.BatteryPath),
	}, session.WithRecorder(jr))
	defer ctrl.Close()

	if trackRecover {
		if err := recoverSession(jr, ctrl, loc); err != nil {
			return err
		}
	}

	model := tui.New(ctrl, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Pick up template and creator edits while the watch face runs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		err := config.Watch(ctx, cfg.Dir, func(c *config.Config) {
			p.Send(tui.ConfigReloadedMsg{Config: c})
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("config watch stopped: %v", err)
		}
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running watch face: %w", err)
	}
	return nil
}

// recoverSession restores the journaled session into ctrl. A replay source
// continues after the fixes the journal already holds.
func recoverSession(jr *journal.Journal, ctrl *session.Controller, loc location.Source) error {
	rec, err := jr.Load()
	if errors.Is(err, journal.ErrNoSession) {
		fmt.Fprintln(os.Stderr, "No journaled session to recover, starting fresh")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read journal: %w", err)
	}

	state, ok := tracker.ParseState(rec.State)
	if !ok {
		return fmt.Errorf("journal has unknown session state %q", rec.State)
	}

	if !ctrl.Restore(state, rec.Points, rec.ElapsedSeconds, rec.StartedAt) {
		return fmt.Errorf("cannot recover into a %s session", ctrl.State())
	}
	if replay, ok := loc.(*location.Replay); ok {
		replay.Skip(len(rec.Points))
	}
	log.Printf("recovered %s session with %d points, %ds elapsed", rec.State, len(rec.Points), rec.ElapsedSeconds)
	return nil
}
