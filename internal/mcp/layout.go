package mcpserver

import (
	"math"

	"bouncecure/internal/domain"
)

const (
	GridSize = 10.0 // snapping step in canvas units
	Padding  = 20.0 // gap kept between elements
)

// LayoutEngine handles automatic placement of elements on the canvas so
// that MCP-created elements don't overlap existing ones.
type LayoutEngine struct {
	gridSize float64
	padding  float64
	maxRowW  float64
}

// NewLayoutEngine lays out rows no wider than canvasWidth.
func NewLayoutEngine(canvasWidth float64) *LayoutEngine {
	if canvasWidth <= 0 {
		canvasWidth = 600
	}
	return &LayoutEngine{
		gridSize: GridSize,
		padding:  Padding,
		maxRowW:  canvasWidth,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// rect is a simple axis-aligned bounding box.
type rect struct {
	x, y, w, h float64
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// NextPosition finds the first free grid position, scanning rows
// top-to-bottom, for an element of size (newW, newH).
func (le *LayoutEngine) NextPosition(existing []domain.Element, newW, newH float64) (float64, float64) {
	if len(existing) == 0 {
		return 0, 0
	}

	occupied := make([]rect, len(existing))
	maxY := 0.0
	for i, el := range existing {
		occupied[i] = rect{
			x: el.X - le.padding,
			y: el.Y - le.padding,
			w: el.Width + le.padding*2,
			h: el.Height + le.padding*2,
		}
		maxY = math.Max(maxY, el.Y+el.Height)
	}

	candidate := rect{w: newW, h: newH}
	for y := 0.0; y <= maxY+le.padding; y += le.gridSize {
		for x := 0.0; x+newW <= le.maxRowW; x += le.gridSize {
			candidate.x = le.snap(x)
			candidate.y = le.snap(y)

			overlaps := false
			for _, occ := range occupied {
				if candidate.intersects(occ) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return candidate.x, candidate.y
			}
		}
	}

	// Fallback: place below all existing elements
	return 0, le.snap(maxY + le.padding)
}
