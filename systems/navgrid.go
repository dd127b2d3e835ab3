package systems

import "github.com/pthm-cable/ecoscript/components"

// NavGrid is a blocked/open snapshot of the world used for a single
// path search. Occupancy changes every turn, so a fresh grid is built
// for each query.
type NavGrid struct {
	cells  []bool // true = blocked
	width  int
	height int
}

// NewNavGrid marks every occupied cell of w as blocked, except goal,
// which is left open so a path can end on an occupied target.
func NewNavGrid(w *World, goal components.Vector) *NavGrid {
	grid := &NavGrid{
		cells:  make([]bool, w.width*w.height),
		width:  w.width,
		height: w.height,
	}
	grid.Rebuild(w, goal)
	return grid
}

// Rebuild refreshes the snapshot in place.
func (g *NavGrid) Rebuild(w *World, goal components.Vector) {
	if len(g.cells) != w.width*w.height {
		g.cells = make([]bool, w.width*w.height)
		g.width, g.height = w.width, w.height
	}
	for i, e := range w.cells {
		g.cells[i] = !e.IsZero()
	}
	if g.InBounds(goal.X, goal.Y) {
		g.cells[goal.Y*g.width+goal.X] = false
	}
}

// InBounds reports whether grid coordinates are inside the grid.
func (g *NavGrid) InBounds(gx, gy int) bool {
	return gx >= 0 && gx < g.width && gy >= 0 && gy < g.height
}

// IsBlocked checks if a grid cell is blocked. Out of bounds counts as blocked.
func (g *NavGrid) IsBlocked(gx, gy int) bool {
	if !g.InBounds(gx, gy) {
		return true
	}
	return g.cells[gy*g.width+gx]
}
