package session

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ProgressCallback receives headless replay progress
type ProgressCallback interface {
	Update(distanceKm float64)
	Finish()
}

// ProgressReporter draws a progress bar while a recording is replayed
type ProgressReporter struct {
	writer    io.Writer
	total     int
	current   int
	width     int
	startTime time.Time
}

// NewProgressReporter creates a reporter for total fixes
func NewProgressReporter(w io.Writer, total int) *ProgressReporter {
	return &ProgressReporter{
		writer:    w,
		total:     total,
		width:     40,
		startTime: time.Now(),
	}
}

// Update advances the bar by one fix
func (p *ProgressReporter) Update(distanceKm float64) {
	p.current++
	if p.total <= 0 {
		return
	}

	// Redraw only when the bar moves to keep output small on long tracks
	filled := p.width * p.current / p.total
	prevFilled := p.width * (p.current - 1) / p.total
	if filled == prevFilled && p.current != p.total && p.current != 1 {
		return
	}

	pct := float64(p.current) / float64(p.total) * 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	_, _ = fmt.Fprintf(p.writer, "\r[%s] %3.0f%% (%d/%d) | %.2f km",
		bar, pct, p.current, p.total, distanceKm)
}

// Finish completes the progress display
func (p *ProgressReporter) Finish() {
	elapsed := time.Since(p.startTime)
	_, _ = fmt.Fprintf(p.writer, "\nReplayed %d fixes in %s\n", p.current, elapsed.Round(time.Millisecond))
}
