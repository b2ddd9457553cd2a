package tui

import (
	"strings"
	"testing"

	"github.com/neilberkman/trailwatch/internal/core/models"
)

func countRune(grid [][]rune, r rune) int {
	n := 0
	for _, row := range grid {
		for _, c := range row {
			if c == r {
				n++
			}
		}
	}
	return n
}

func findRune(grid [][]rune, r rune) (int, int) {
	for y, row := range grid {
		for x, c := range row {
			if c == r {
				return x, y
			}
		}
	}
	return -1, -1
}

func TestPlotTrackEmpty(t *testing.T) {
	grid := plotTrack(nil, 10, 4)
	if len(grid) != 4 || len(grid[0]) != 10 {
		t.Fatalf("grid = %dx%d, want 10x4", len(grid[0]), len(grid))
	}
	if countRune(grid, cellEmpty) != 40 {
		t.Error("expected an empty grid")
	}
}

func TestPlotTrackSinglePoint(t *testing.T) {
	grid := plotTrack([]models.Point{{Latitude: 46, Longitude: 7}}, 11, 5)
	x, y := findRune(grid, cellPosition)
	if x != 5 || y != 2 {
		t.Errorf("position at (%d,%d), want centered (5,2)", x, y)
	}
}

func TestPlotTrackEastward(t *testing.T) {
	points := []models.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0, Longitude: 0.01},
		{Latitude: 0, Longitude: 0.02},
	}
	grid := plotTrack(points, 21, 5)

	sx, sy := findRune(grid, cellStart)
	px, py := findRune(grid, cellPosition)
	if sx != 0 || px != 20 {
		t.Errorf("start x = %d, position x = %d; want 0 and 20", sx, px)
	}
	if sy != 2 || py != 2 {
		t.Errorf("rows = %d, %d; want the middle row", sy, py)
	}
	// Line between start and position is continuous
	if n := countRune(grid, cellTrack); n != 19 {
		t.Errorf("track cells = %d, want 19", n)
	}
}

func TestPlotTrackNorthIsUp(t *testing.T) {
	points := []models.Point{
		{Latitude: 0, Longitude: 0},
		{Latitude: 0.01, Longitude: 0},
	}
	grid := plotTrack(points, 9, 9)

	_, sy := findRune(grid, cellStart)
	_, py := findRune(grid, cellPosition)
	if py >= sy {
		t.Errorf("northward track drawn downward: start row %d, position row %d", sy, py)
	}
}

func TestRenderTrackWaiting(t *testing.T) {
	out := renderTrack(nil, 30, 3)
	if !strings.Contains(out, "waiting for first fix") {
		t.Errorf("renderTrack = %q", out)
	}
}
