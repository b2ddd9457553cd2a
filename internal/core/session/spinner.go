package session

import (
	"fmt"
	"io"
	"time"
)

// Spinner shows a spinning animation on a terminal line while a slow
// load such as a large FIT decode runs
type Spinner struct {
	writer  io.Writer
	message string
	frame   time.Duration
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner that writes to w
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		writer:  w,
		message: message,
		frame:   80 * time.Millisecond,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the spinner animation in a goroutine
func (s *Spinner) Start() {
	go func() {
		defer close(s.done)
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		ticker := time.NewTicker(s.frame)
		defer ticker.Stop()

		for i := 0; ; i = (i + 1) % len(frames) {
			_, _ = fmt.Fprintf(s.writer, "\r%s %s", frames[i], s.message)
			select {
			case <-s.stop:
				// Clear the line
				_, _ = fmt.Fprintf(s.writer, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner, clears the line and waits for the goroutine
func (s *Spinner) Stop() {
	close(s.stop)
	<-s.done
}
