// Package systems provides the grid world and the behavior systems that act on it.
package systems

import (
	"math/rand"
	"strings"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecoscript/components"
	"github.com/pthm-cable/ecoscript/traits"
)

// Cell pairs a grid position with its occupant. Entity is the zero
// entity when the cell is empty.
type Cell struct {
	Pos    components.Vector
	Entity ecs.Entity
}

// Empty reports whether the cell has no occupant.
func (c Cell) Empty() bool {
	return c.Entity.IsZero()
}

// World is a fixed-size grid of entities. The grid is the only record
// of where an entity is; component storage lives in an ECS world that
// the grid owns exclusively.
type World struct {
	width, height int
	cells         []ecs.Entity // row-major

	ecs         *ecs.World
	wallMapper  *ecs.Map1[components.Identity]
	orgMapper   *ecs.Map6[components.Identity, components.Energy, components.Stats, components.Heading, components.Behavior, components.Lineage]
	identityMap *ecs.Map[components.Identity]
	energyMap   *ecs.Map[components.Energy]
	statsMap    *ecs.Map[components.Stats]
	headingMap  *ecs.Map[components.Heading]
	behaviorMap *ecs.Map[components.Behavior]
	lineageMap  *ecs.Map[components.Lineage]
	allFilter   *ecs.Filter1[components.Identity]

	planner  *AStarPlanner
	rng      *rand.Rand
	actions  map[traits.Trait]Action
	observer Observer
}

// NewWorld creates an empty width x height world.
func NewWorld(width, height int, rng *rand.Rand) *World {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	w := ecs.NewWorld()
	world := &World{
		width:       width,
		height:      height,
		cells:       make([]ecs.Entity, width*height),
		ecs:         w,
		wallMapper:  ecs.NewMap1[components.Identity](w),
		orgMapper:   ecs.NewMap6[components.Identity, components.Energy, components.Stats, components.Heading, components.Behavior, components.Lineage](w),
		identityMap: ecs.NewMap[components.Identity](w),
		energyMap:   ecs.NewMap[components.Energy](w),
		statsMap:    ecs.NewMap[components.Stats](w),
		headingMap:  ecs.NewMap[components.Heading](w),
		behaviorMap: ecs.NewMap[components.Behavior](w),
		lineageMap:  ecs.NewMap[components.Lineage](w),
		allFilter:   ecs.NewFilter1[components.Identity](w),
		rng:         rng,
		actions:     defaultActions(),
		observer:    nopObserver{},
	}
	world.planner = NewAStarPlanner(world)
	return world
}

// FromLegend builds a world from a symbol legend and a rectangular map.
// Spaces are empty cells; every other symbol must appear in the legend.
// Each placed entity is displayed with the legend key it came from.
func FromLegend(legend map[rune]*components.Template, rows []string, rng *rand.Rand) (*World, error) {
	if len(rows) == 0 {
		return nil, configErrorf("map has no rows")
	}
	grid := make([][]rune, len(rows))
	for y, row := range rows {
		grid[y] = []rune(row)
	}
	width := len(grid[0])
	for y, row := range grid {
		if len(row) != width {
			return nil, configErrorf("map row %d has width %d, want %d", y, len(row), width)
		}
	}

	// One template per key so the glyph follows the key, not the organism.
	keyed := make(map[rune]*components.Template, len(legend))
	for key, t := range legend {
		if t == nil {
			return nil, configErrorf("legend symbol %q has no organism", key)
		}
		keyed[key] = t.WithGlyph(key)
	}

	world := NewWorld(width, len(grid), rng)
	for y, row := range grid {
		for x, key := range row {
			if key == ' ' {
				continue
			}
			t, ok := keyed[key]
			if !ok {
				return nil, configErrorf("map symbol %q at (%d, %d) is not in the legend", key, x, y)
			}
			world.Set(components.Vec(x, y), world.Spawn(t))
		}
	}
	return world, nil
}

// Width returns the number of columns.
func (w *World) Width() int { return w.width }

// Height returns the number of rows.
func (w *World) Height() int { return w.height }

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand { return w.rng }

// SetObserver installs the lifecycle observer. Nil restores the no-op observer.
func (w *World) SetObserver(o Observer) {
	if o == nil {
		o = nopObserver{}
	}
	w.observer = o
}

// Spawn creates an unplaced entity from a template. Entities composing Go
// start with a random heading.
func (w *World) Spawn(t *components.Template) ecs.Entity {
	id := components.Identity{Species: t.Species, Glyph: t.Glyph, Kind: t.Kind}
	if !t.Kind.Active() {
		return w.wallMapper.NewEntity(&id)
	}

	energy := components.Energy{Base: t.BaseEnergy, Max: t.MaxEnergy}
	energy.Set(t.BaseEnergy)
	stats := components.Stats{
		GrowthRate:   t.GrowthRate,
		Metabolism:   t.Metabolism,
		MovementCost: t.MovementCost,
		SenseRadius:  t.SenseRadius,
		Diet:         t.Diet,
	}
	behavior := t.Behavior()
	heading := components.Heading{}
	if behavior.Traits.Has(traits.Go) {
		heading.Dir = components.Directions[w.rng.Intn(len(components.Directions))]
	}
	lineage := components.Lineage{Template: t}
	return w.orgMapper.NewEntity(&id, &energy, &stats, &heading, &behavior, &lineage)
}

// InBounds reports whether pos lies inside the grid.
func (w *World) InBounds(pos components.Vector) bool {
	return pos.X >= 0 && pos.X < w.width && pos.Y >= 0 && pos.Y < w.height
}

// IsWalkable reports whether pos is in bounds and unoccupied.
func (w *World) IsWalkable(pos components.Vector) bool {
	return w.InBounds(pos) && w.cells[w.index(pos)].IsZero()
}

// Get returns the occupant at pos, or the zero entity when empty.
func (w *World) Get(pos components.Vector) ecs.Entity {
	return w.cells[w.mustIndex(pos)]
}

// Set places e at pos, replacing any occupant.
func (w *World) Set(pos components.Vector, e ecs.Entity) {
	w.cells[w.mustIndex(pos)] = e
}

// Remove vacates pos.
func (w *World) Remove(pos components.Vector) {
	w.cells[w.mustIndex(pos)] = ecs.Entity{}
}

// Kill zeroes the occupant's energy and then vacates pos. Handles to the
// occupant held elsewhere this turn observe it as dead.
func (w *World) Kill(pos components.Vector) {
	if e := w.Get(pos); !e.IsZero() {
		if energy := w.Energy(e); energy != nil {
			energy.Value = 0
		}
	}
	w.Remove(pos)
}

// Expire vacates pos once its occupant has run out of energy.
func (w *World) Expire(pos components.Vector) {
	e := w.Get(pos)
	if e.IsZero() {
		return
	}
	species := w.Identity(e).Species
	w.Remove(pos)
	w.observer.OnDeath(species, CauseExhausted)
}

// Move relocates the occupant of from to to, vacating from.
func (w *World) Move(from, to components.Vector) {
	e := w.Get(from)
	w.Set(to, e)
	w.Remove(from)
}

// Enumerate snapshots every (position, occupant) pair in row-major order.
func (w *World) Enumerate() []Cell {
	out := make([]Cell, 0, len(w.cells))
	for i, e := range w.cells {
		out = append(out, Cell{Pos: components.Vec(i%w.width, i/w.width), Entity: e})
	}
	return out
}

// View returns every in-bounds position within Chebyshev distance radius
// of pos, excluding pos itself. Offsets run dx-major from -radius.
func (w *World) View(pos components.Vector, radius int) []components.Vector {
	return w.view(pos, radius, w.InBounds)
}

// ViewWalkable is View restricted to unoccupied cells.
func (w *World) ViewWalkable(pos components.Vector, radius int) []components.Vector {
	return w.view(pos, radius, w.IsWalkable)
}

func (w *World) view(pos components.Vector, radius int, keep func(components.Vector) bool) []components.Vector {
	var out []components.Vector
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if v := pos.Plus(components.Vec(dx, dy)); keep(v) {
				out = append(out, v)
			}
		}
	}
	return out
}

// FindPath returns the shortest 8-connected path from from to to over
// empty cells, excluding from and including to. The destination counts
// as open even when occupied. Empty when unreachable.
func (w *World) FindPath(from, to components.Vector) []components.Vector {
	return w.planner.FindPath(from, to)
}

// String renders the grid, one line per row, using each occupant's glyph
// and a space for empty cells.
func (w *World) String() string {
	var sb strings.Builder
	sb.Grow(len(w.cells) + w.height)
	for i, e := range w.cells {
		if i > 0 && i%w.width == 0 {
			sb.WriteByte('\n')
		}
		if e.IsZero() {
			sb.WriteByte(' ')
			continue
		}
		sb.WriteRune(w.Identity(e).Glyph)
	}
	return sb.String()
}

// Alive reports whether e still exists in component storage. Entities
// leave storage only in Sweep.
func (w *World) Alive(e ecs.Entity) bool {
	return !e.IsZero() && w.ecs.Alive(e)
}

// Identity returns the identity of e, or nil if e no longer exists.
func (w *World) Identity(e ecs.Entity) *components.Identity {
	if !w.Alive(e) {
		return nil
	}
	return w.identityMap.Get(e)
}

// Energy returns the energy of e, or nil for walls and destroyed entities.
// Write through Energy.Set to keep the reserve clamped.
func (w *World) Energy(e ecs.Entity) *components.Energy {
	if !w.Alive(e) || !w.energyMap.Has(e) {
		return nil
	}
	return w.energyMap.Get(e)
}

// Stats returns the behavior rates of e, or nil for walls.
func (w *World) Stats(e ecs.Entity) *components.Stats {
	if !w.Alive(e) || !w.statsMap.Has(e) {
		return nil
	}
	return w.statsMap.Get(e)
}

// Heading returns the movement direction of e, or nil for walls.
func (w *World) Heading(e ecs.Entity) *components.Heading {
	if !w.Alive(e) || !w.headingMap.Has(e) {
		return nil
	}
	return w.headingMap.Get(e)
}

// Behavior returns the action policy of e, or nil for walls.
func (w *World) Behavior(e ecs.Entity) *components.Behavior {
	if !w.Alive(e) || !w.behaviorMap.Has(e) {
		return nil
	}
	return w.behaviorMap.Get(e)
}

// Template returns the template e spawns offspring from, or nil for walls.
func (w *World) Template(e ecs.Entity) *components.Template {
	if !w.Alive(e) || !w.lineageMap.Has(e) {
		return nil
	}
	return w.lineageMap.Get(e).Template
}

// Sweep destroys stored entities that no longer occupy a cell and returns
// how many were removed.
func (w *World) Sweep() int {
	placed := make(map[ecs.Entity]struct{}, len(w.cells))
	for _, e := range w.cells {
		if !e.IsZero() {
			placed[e] = struct{}{}
		}
	}

	// Collect first: the world is locked while a query is open.
	var orphans []ecs.Entity
	query := w.allFilter.Query()
	for query.Next() {
		e := query.Entity()
		if _, ok := placed[e]; !ok {
			orphans = append(orphans, e)
		}
	}
	for _, e := range orphans {
		w.ecs.RemoveEntity(e)
	}
	return len(orphans)
}

func (w *World) index(pos components.Vector) int {
	return pos.Y*w.width + pos.X
}

func (w *World) mustIndex(pos components.Vector) int {
	if !w.InBounds(pos) {
		panic(&OutOfBoundsError{Pos: pos, Width: w.width, Height: w.height})
	}
	return w.index(pos)
}
