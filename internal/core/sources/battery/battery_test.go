package battery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeSupply(t *testing.T, root, name, capacity string) string {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "capacity")
	if err := os.WriteFile(path, []byte(capacity), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFixed(t *testing.T) {
	f := Fixed(100)
	if f.Level() != 100 {
		t.Errorf("Level() = %d, want 100", f.Level())
	}

	ctx, cancel := context.WithCancel(context.Background())
	var got []int
	done := make(chan struct{})
	go func() {
		f.Watch(ctx, func(level int) { got = append(got, level) })
		close(done)
	}()
	cancel()
	<-done

	if len(got) != 1 || got[0] != 100 {
		t.Errorf("Watch emitted %v, want [100]", got)
	}
}

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeSupply(t, root, "AC", "garbage")
	want := writeSupply(t, root, "BAT0", "87\n")

	src, err := Discover(root)
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if src.Path != want {
		t.Errorf("Path = %q, want %q", src.Path, want)
	}
	if src.Level() != 87 {
		t.Errorf("Level() = %d, want 87", src.Level())
	}
}

func TestDiscoverNoBattery(t *testing.T) {
	_, err := Discover(t.TempDir())
	if !errors.Is(err, ErrNoBattery) {
		t.Errorf("Discover() error = %v, want ErrNoBattery", err)
	}
}

func TestReadCapacity(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{"plain", "55\n", 55, false},
		{"over full", "104", 100, false},
		{"negative", "-3", 0, false},
		{"not a number", "Full", 0, true},
	}

	root := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSupply(t, root, tt.name, tt.content)
			got, err := readCapacity(path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("readCapacity() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("readCapacity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSysfsKeepsLastLevelOnError(t *testing.T) {
	path := writeSupply(t, t.TempDir(), "BAT0", "60")
	src, err := NewSysfs(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if src.Level() != 60 {
		t.Errorf("Level() = %d, want last good 60", src.Level())
	}
}

func TestSysfsWatchEmitsChanges(t *testing.T) {
	path := writeSupply(t, t.TempDir(), "BAT0", "50")
	src, err := NewSysfs(path)
	if err != nil {
		t.Fatal(err)
	}
	src.Interval = 5 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	levels := make(chan int, 8)
	go src.Watch(ctx, func(level int) { levels <- level })

	if got := <-levels; got != 50 {
		t.Fatalf("first level = %d, want 50", got)
	}
	if err := os.WriteFile(path, []byte("49"), 0644); err != nil {
		t.Fatal(err)
	}
	select {
	case got := <-levels:
		if got != 49 {
			t.Errorf("changed level = %d, want 49", got)
		}
	case <-ctx.Done():
		t.Fatal("no level change observed")
	}
}
