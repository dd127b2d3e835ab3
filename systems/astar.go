package systems

import (
	"container/heap"

	"github.com/pthm-cable/ecoscript/components"
)

// Move costs, scaled so diagonals cost 1.4 straight steps.
const (
	straightCost = 10
	diagonalCost = 14
)

// AStarPlanner finds shortest paths over the empty cells of a World.
// Diagonal moves are allowed even between two blocked orthogonal cells.
type AStarPlanner struct {
	world *World
	grid  *NavGrid

	// Reusable data structures (cleared between searches)
	openHeap  *nodeHeap
	open      map[int]*astarNode
	closedSet map[int]struct{}
	cameFrom  map[int]int
	gScore    map[int]int
	seq       int
}

// astarNode is a node in the A* search.
type astarNode struct {
	gx, gy int
	f, h   int
	seq    int // insertion order, breaks f/h ties deterministically
	index  int // heap index
}

// nodeHeap implements heap.Interface for A* open set.
type nodeHeap []*astarNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].h != h[j].h {
		return h[i].h < h[j].h
	}
	return h[i].seq < h[j].seq
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// neighborOffsets lists cardinal moves first, then diagonals.
var neighborOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// NewAStarPlanner creates a planner bound to a world.
func NewAStarPlanner(w *World) *AStarPlanner {
	return &AStarPlanner{
		world:     w,
		openHeap:  &nodeHeap{},
		open:      make(map[int]*astarNode, 64),
		closedSet: make(map[int]struct{}, 64),
		cameFrom:  make(map[int]int, 64),
		gScore:    make(map[int]int, 64),
	}
}

// FindPath computes a path from start to goal against the current
// occupancy. The result excludes start and ends with goal; it is empty
// when goal is unreachable or equal to start.
func (a *AStarPlanner) FindPath(start, goal components.Vector) []components.Vector {
	w := a.world
	if !w.InBounds(start) || !w.InBounds(goal) || start == goal {
		return nil
	}

	if a.grid == nil {
		a.grid = NewNavGrid(w, goal)
	} else {
		a.grid.Rebuild(w, goal)
	}
	grid := a.grid

	a.reset()

	startID := start.Y*grid.width + start.X
	goalID := goal.Y*grid.width + goal.X

	a.gScore[startID] = 0
	a.push(start.X, start.Y, 0, octile(start.X, start.Y, goal.X, goal.Y))

	for a.openHeap.Len() > 0 {
		current := heap.Pop(a.openHeap).(*astarNode)
		currentID := current.gy*grid.width + current.gx
		delete(a.open, currentID)

		// Goal reached
		if currentID == goalID {
			return a.reconstructPath(grid, startID, goalID)
		}

		a.closedSet[currentID] = struct{}{}

		for i, off := range neighborOffsets {
			ngx, ngy := current.gx+off[0], current.gy+off[1]

			// Skip if blocked
			if grid.IsBlocked(ngx, ngy) {
				continue
			}

			neighborID := ngy*grid.width + ngx

			// Skip if already evaluated
			if _, ok := a.closedSet[neighborID]; ok {
				continue
			}

			moveCost := straightCost
			if i >= 4 {
				moveCost = diagonalCost
			}
			tentativeG := a.gScore[currentID] + moveCost

			// Check if this path is better
			if existingG, exists := a.gScore[neighborID]; exists && tentativeG >= existingG {
				continue
			}

			a.cameFrom[neighborID] = currentID
			a.gScore[neighborID] = tentativeG
			h := octile(ngx, ngy, goal.X, goal.Y)

			if node, ok := a.open[neighborID]; ok {
				node.f = tentativeG + h
				heap.Fix(a.openHeap, node.index)
				continue
			}
			a.push(ngx, ngy, tentativeG, h)
		}
	}

	// No path found
	return nil
}

func (a *AStarPlanner) push(gx, gy, g, h int) {
	a.seq++
	node := &astarNode{gx: gx, gy: gy, f: g + h, h: h, seq: a.seq}
	heap.Push(a.openHeap, node)
	a.open[gy*a.grid.width+gx] = node
}

func (a *AStarPlanner) reset() {
	*a.openHeap = (*a.openHeap)[:0]
	clear(a.open)
	clear(a.closedSet)
	clear(a.cameFrom)
	clear(a.gScore)
	a.seq = 0
}

// octile is the exact 8-connected distance on an empty grid.
func octile(x1, y1, x2, y2 int) int {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	return straightCost*(dx+dy) + (diagonalCost-2*straightCost)*min(dx, dy)
}

// reconstructPath builds the path from cameFrom, dropping the start cell.
func (a *AStarPlanner) reconstructPath(grid *NavGrid, startID, goalID int) []components.Vector {
	var pathIDs []int
	for current := goalID; current != startID; {
		pathIDs = append(pathIDs, current)
		prev, ok := a.cameFrom[current]
		if !ok {
			break
		}
		current = prev
	}

	path := make([]components.Vector, len(pathIDs))
	for i := range pathIDs {
		id := pathIDs[len(pathIDs)-1-i]
		path[i] = components.Vec(id%grid.width, id/grid.width)
	}
	return path
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
