package heartrate

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConnectFallsBackToSynthetic(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"no device configured", ""},
		{"missing device", filepath.Join(t.TempDir(), "no-such-device")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Connect(tt.path, 100, 1)
			if _, ok := m.(*SyntheticMonitor); !ok {
				t.Errorf("Connect() = %T, want *SyntheticMonitor", m)
			}
			if m.Name() != "synthetic" {
				t.Errorf("Name() = %q", m.Name())
			}
		})
	}
}

func TestConnectUsesDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hr")
	if err := os.WriteFile(path, []byte("72\n"), 0644); err != nil {
		t.Fatal(err)
	}

	m := Connect(path, 100, 1)
	fm, ok := m.(*FallbackMonitor)
	if !ok {
		t.Fatalf("Connect() = %T, want *FallbackMonitor", m)
	}
	if fm.Name() != path {
		t.Errorf("Name() = %q, want %q", fm.Name(), path)
	}

	dev, ok := fm.primary.(*DeviceMonitor)
	if !ok {
		t.Fatalf("primary = %T, want *DeviceMonitor", fm.primary)
	}
	var got []int
	if err := dev.Stream(context.Background(), func(bpm int) { got = append(got, bpm) }); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if len(got) != 1 || got[0] != 72 {
		t.Errorf("readings = %v, want [72]", got)
	}
}

func TestConnectedDeviceFallsBackWhenItDisappears(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hr")
	if err := os.WriteFile(path, []byte("72\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fm, ok := Connect(path, 100, 1).(*FallbackMonitor)
	if !ok {
		t.Fatal("Connect() did not return a fallback monitor")
	}
	fm.fallback.(*SyntheticMonitor).Interval = time.Millisecond

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	var got []int
	err := fm.Stream(ctx, func(bpm int) {
		got = append(got, bpm)
		if len(got) == 3 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Stream() error = %v, want context.Canceled", err)
	}
	if len(got) != 3 {
		t.Errorf("readings = %v, want 3 synthetic readings", got)
	}
	if fm.Name() != "synthetic" {
		t.Errorf("Name() = %q after device loss, want synthetic", fm.Name())
	}
}

func TestFallbackMonitor(t *testing.T) {
	tests := []struct {
		name      string
		device    string
		wantFirst []int
		wantName  string
	}{
		{"device closes then synthetic takes over", "80\n81\n", []int{80, 81}, "synthetic"},
		{"empty device goes straight to synthetic", "", nil, "synthetic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synthetic := NewSynthetic(95, 1)
			synthetic.Interval = time.Millisecond
			fm := NewFallback(NewDeviceMonitor("strap", io.NopCloser(strings.NewReader(tt.device))), synthetic)
			if fm.Name() != "strap" {
				t.Errorf("Name() before streaming = %q, want strap", fm.Name())
			}

			ctx, cancel := context.WithCancel(context.Background())
			var got []int
			_ = fm.Stream(ctx, func(bpm int) {
				got = append(got, bpm)
				if len(got) == len(tt.wantFirst)+2 {
					cancel()
				}
			})

			for i, want := range tt.wantFirst {
				if got[i] != want {
					t.Errorf("reading %d = %d, want %d", i, got[i], want)
				}
			}
			if len(got) != len(tt.wantFirst)+2 {
				t.Errorf("got %d readings, want device readings plus 2 synthetic", len(got))
			}
			if fm.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", fm.Name(), tt.wantName)
			}
		})
	}
}

func TestFallbackMonitorCancelKeepsDevice(t *testing.T) {
	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()
	fm := NewFallback(NewDeviceMonitor("pipe", pr), NewSynthetic(95, 1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- fm.Stream(ctx, func(int) {})
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Stream() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stream() did not return after cancel")
	}
	if fm.Name() != "pipe" {
		t.Errorf("Name() = %q, cancel should not switch to synthetic", fm.Name())
	}
}

func TestOpenDeviceRejectsDirectory(t *testing.T) {
	if _, err := OpenDevice(t.TempDir()); err == nil {
		t.Error("OpenDevice(dir) error = nil")
	}
}

func TestDeviceMonitorSkipsBadLines(t *testing.T) {
	input := "80\n\nabc\n300\n 95 \n10\n"
	dev := NewDeviceMonitor("test", io.NopCloser(strings.NewReader(input)))

	var got []int
	if err := dev.Stream(context.Background(), func(bpm int) { got = append(got, bpm) }); err != nil {
		t.Fatalf("Stream() error = %v", err)
	}
	if len(got) != 2 || got[0] != 80 || got[1] != 95 {
		t.Errorf("readings = %v, want [80 95]", got)
	}
}

func TestDeviceMonitorStopsOnCancel(t *testing.T) {
	pr, pw := io.Pipe()
	dev := NewDeviceMonitor("pipe", pr)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- dev.Stream(ctx, func(int) {})
	}()

	_, _ = pw.Write([]byte("70\n"))
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Stream() error = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Stream() did not return after cancel")
	}
	_ = pw.Close()
}

func TestSyntheticStaysNearBaseline(t *testing.T) {
	s := NewSynthetic(110, 3)
	for i := 0; i < 1000; i++ {
		bpm := s.Next()
		if bpm < 80 || bpm > 140 {
			t.Fatalf("reading %d = %d outside baseline ±30", i, bpm)
		}
	}
}

func TestSyntheticDeterministicForSeed(t *testing.T) {
	a := NewSynthetic(95, 9)
	b := NewSynthetic(95, 9)
	for i := 0; i < 20; i++ {
		if x, y := a.Next(), b.Next(); x != y {
			t.Fatalf("reading %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSyntheticDefaultBaseline(t *testing.T) {
	s := NewSynthetic(0, 1)
	if s.Baseline != 95 {
		t.Errorf("Baseline = %d, want 95", s.Baseline)
	}
}

func TestSyntheticStream(t *testing.T) {
	s := NewSynthetic(95, 1)
	s.Interval = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())

	n := 0
	err := s.Stream(ctx, func(int) {
		n++
		if n == 2 {
			cancel()
		}
	})
	if !errors.Is(err, context.Canceled) || n < 2 {
		t.Errorf("Stream() = %v after %d readings", err, n)
	}
}
