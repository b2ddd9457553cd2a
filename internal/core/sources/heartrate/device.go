package heartrate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"syscall"
)

const (
	minPlausibleBPM = 25
	maxPlausibleBPM = 250
)

// DeviceMonitor reads one integer bpm reading per line from a device,
// such as a serial port bridged from a chest strap or a FIFO.
type DeviceMonitor struct {
	name string
	open func() (io.ReadCloser, error)

	mu      sync.Mutex
	pending chan openResult
}

type openResult struct {
	rc  io.ReadCloser
	err error
}

// OpenDevice checks that path exists and is readable and returns a
// monitor over it. The check opens without blocking, so a FIFO with no
// writer yet is accepted; the reading open happens in Stream.
func OpenDevice(path string) (*DeviceMonitor, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open heart rate device: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("heart rate device %s is a directory", path)
	}

	f, err := os.OpenFile(path, os.O_RDONLY|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to open heart rate device: %w", err)
	}
	_ = f.Close()

	return &DeviceMonitor{
		name: path,
		open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

// NewDeviceMonitor wraps an already open reading stream
func NewDeviceMonitor(name string, r io.ReadCloser) *DeviceMonitor {
	return &DeviceMonitor{
		name: name,
		open: func() (io.ReadCloser, error) { return r, nil },
	}
}

// Name identifies the device
func (d *DeviceMonitor) Name() string {
	return d.name
}

// Stream emits each plausible reading. Unparseable or implausible lines
// are skipped. Returns when the device closes or ctx is done.
func (d *DeviceMonitor) Stream(ctx context.Context, emit func(bpm int)) error {
	rc, err := d.openContext(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("failed to open heart rate device: %w", err)
	}

	// Closing the reader unblocks the scanner on cancel.
	stop := context.AfterFunc(ctx, func() { _ = rc.Close() })
	defer func() {
		if stop() {
			_ = rc.Close()
		}
	}()

	scanner := bufio.NewScanner(rc)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		bpm, ok := parseReading(scanner.Text())
		if !ok {
			continue
		}
		emit(bpm)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("heart rate device read failed: %w", err)
	}
	return nil
}

// openContext opens the device without tying the caller to a blocking
// open. An open still pending when ctx ends is picked up by the next
// Stream rather than started again.
func (d *DeviceMonitor) openContext(ctx context.Context) (io.ReadCloser, error) {
	d.mu.Lock()
	if d.pending == nil {
		ch := make(chan openResult, 1)
		d.pending = ch
		go func() {
			rc, err := d.open()
			ch <- openResult{rc: rc, err: err}
		}()
	}
	ch := d.pending
	d.mu.Unlock()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		d.mu.Lock()
		d.pending = nil
		d.mu.Unlock()
		return r.rc, r.err
	}
}

func parseReading(line string) (int, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	bpm, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	if bpm < minPlausibleBPM || bpm > maxPlausibleBPM {
		return 0, false
	}
	return bpm, true
}
