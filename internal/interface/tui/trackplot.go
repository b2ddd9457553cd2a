package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/neilberkman/trailwatch/internal/core/models"
)

const (
	cellEmpty    = ' '
	cellTrack    = '·'
	cellStart    = 'S'
	cellPosition = '@'
)

// cellAspect is the height of a terminal cell relative to its width
const cellAspect = 2.0

// plotTrack projects points into a width x height character grid. The
// projection is equirectangular around the track's mean latitude and keeps
// the track's aspect ratio. Consecutive points are joined with a line.
func plotTrack(points []models.Point, width, height int) [][]rune {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(string(cellEmpty), width))
	}
	if len(points) == 0 || width <= 0 || height <= 0 {
		return grid
	}

	var meanLat float64
	for _, p := range points {
		meanLat += p.Latitude
	}
	meanLat /= float64(len(points))
	kx := math.Cos(meanLat * math.Pi / 180)

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		x, y := p.Longitude*kx, p.Latitude
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	// One scale for both axes; cells are taller than wide
	spanX, spanY := maxX-minX, maxY-minY
	scale := math.Inf(1)
	if spanX > 0 {
		scale = math.Min(scale, float64(width-1)/spanX)
	}
	if spanY > 0 {
		scale = math.Min(scale, float64(height-1)*cellAspect/spanY)
	}

	// Center the track in the grid
	offX := (float64(width-1) - spanX*scale) / 2
	offY := (float64(height-1) - spanY*scale/cellAspect) / 2
	if math.IsInf(scale, 1) {
		scale, offX, offY = 0, float64(width-1)/2, float64(height-1)/2
	}

	cell := func(p models.Point) (int, int) {
		col := offX + (p.Longitude*kx-minX)*scale
		row := offY + (maxY-p.Latitude)*scale/cellAspect
		return clamp(int(math.Round(col)), 0, width-1), clamp(int(math.Round(row)), 0, height-1)
	}

	prevCol, prevRow := cell(points[0])
	for _, p := range points[1:] {
		col, row := cell(p)
		drawLine(grid, prevCol, prevRow, col, row)
		prevCol, prevRow = col, row
	}

	startCol, startRow := cell(points[0])
	grid[startRow][startCol] = cellStart
	grid[prevRow][prevCol] = cellPosition
	return grid
}

// drawLine marks the cells between two grid positions (Bresenham)
func drawLine(grid [][]rune, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		grid[y0][x0] = cellTrack
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// renderTrack draws the plotted grid with colors
func renderTrack(points []models.Point, width, height int) string {
	if len(points) == 0 {
		msg := "waiting for first fix"
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, tileLabelStyle.Render(msg))
	}

	grid := plotTrack(points, width, height)
	var b strings.Builder
	for i, row := range grid {
		for _, r := range row {
			switch r {
			case cellTrack:
				b.WriteString(trackStyle.Render(string(r)))
			case cellStart:
				b.WriteString(startStyle.Render(string(r)))
			case cellPosition:
				b.WriteString(positionStyle.Render(string(r)))
			default:
				b.WriteRune(r)
			}
		}
		if i < len(grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
