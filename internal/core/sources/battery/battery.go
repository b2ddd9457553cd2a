package battery

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultSysfsRoot is where Linux exposes power supplies
const DefaultSysfsRoot = "/sys/class/power_supply"

// ErrNoBattery is returned when no readable battery capacity exists
var ErrNoBattery = errors.New("no battery found")

// Source reports the battery charge level in percent
type Source interface {
	Level() int
	Watch(ctx context.Context, emit func(level int))
}

// Fixed always reports the same level. Used when no battery is available.
type Fixed int

// Level returns the fixed level
func (f Fixed) Level() int {
	return int(f)
}

// Watch reports the level once and waits for ctx
func (f Fixed) Watch(ctx context.Context, emit func(level int)) {
	emit(int(f))
	<-ctx.Done()
}

// Sysfs reads a power_supply capacity file, polling every Interval
type Sysfs struct {
	Path     string
	Interval time.Duration

	mu   sync.Mutex
	last int
}

// Discover finds the first power supply under root that reports a
// capacity. An empty root uses DefaultSysfsRoot.
func Discover(root string) (*Sysfs, error) {
	if root == "" {
		root = DefaultSysfsRoot
	}
	matches, err := filepath.Glob(filepath.Join(root, "*", "capacity"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}
	sort.Strings(matches)

	for _, path := range matches {
		if _, err := readCapacity(path); err == nil {
			return NewSysfs(path)
		}
	}
	return nil, ErrNoBattery
}

// NewSysfs creates a source for one capacity file
func NewSysfs(path string) (*Sysfs, error) {
	level, err := readCapacity(path)
	if err != nil {
		return nil, err
	}
	return &Sysfs{Path: path, Interval: 30 * time.Second, last: level}, nil
}

// Level reads the current capacity, keeping the last good value on read errors
func (s *Sysfs) Level() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if level, err := readCapacity(s.Path); err == nil {
		s.last = level
	}
	return s.last
}

// Watch emits the level now and whenever it changes, polling until ctx is done
func (s *Sysfs) Watch(ctx context.Context, emit func(level int)) {
	current := s.Level()
	emit(current)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if level := s.Level(); level != current {
				current = level
				emit(level)
			}
		}
	}
}

func readCapacity(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read battery capacity: %w", err)
	}
	level, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("invalid battery capacity %q: %w", strings.TrimSpace(string(data)), err)
	}
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return level, nil
}
