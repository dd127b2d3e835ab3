package game

import (
	"iter"

	"github.com/pthm-cable/ecoscript/telemetry"
)

// Turn runs one full scheduler pass. Occupants are visited in the
// row-major order they held when the turn began, but every action sees
// the live grid, so earlier actors may already have moved, fed on or
// killed later ones.
func (g *Game) Turn() {
	g.perfCollector.StartTurn()
	g.perfCollector.StartPhase(telemetry.PhaseBehavior)

	w := g.world
	for _, cell := range w.Enumerate() {
		if cell.Empty() {
			continue
		}
		e, pos := cell.Entity, cell.Pos

		id := w.Identity(e)
		if id == nil || !id.Kind.Active() {
			continue // walls never act
		}
		energy := w.Energy(e)
		if energy.Value <= 0 {
			// Deferred death: eaten entities are already gone from the grid.
			if w.Get(pos) == e {
				w.Expire(pos)
			}
			continue
		}
		if w.Get(pos) != e {
			continue
		}

		if !w.PreAct(e, pos) {
			w.Act(e, pos)
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseSweep)
	w.Sweep()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perfCollector.EndTurn()
}

// Step advances exactly one turn and returns the resulting snapshot.
func (g *Game) Step() string {
	g.Turn()
	g.perfCollector.RecordFrame()
	return g.world.String()
}

// Snapshots is an endless sequence of snapshots, one turn per element.
// Pull it with iter.Pull; calling the returned stop function ends it.
func (g *Game) Snapshots() iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			if !yield(g.Step()) {
				return
			}
		}
	}
}
