package systems

import (
	"errors"
	"testing"

	"github.com/pthm-cable/ecoscript/components"
)

func TestIsWalkable(t *testing.T) {
	w := newTestWorld(3, 2)
	wallAt(w, components.Vec(1, 0))

	for y := -1; y <= 2; y++ {
		for x := -1; x <= 3; x++ {
			p := components.Vec(x, y)
			want := w.InBounds(p) && w.Get(p).IsZero()
			if got := w.IsWalkable(p); got != want {
				t.Errorf("IsWalkable(%v) = %v, want %v", p, got, want)
			}
		}
	}
}

func TestGetSetRemove(t *testing.T) {
	w := newTestWorld(2, 2)
	p := components.Vec(1, 1)
	if !w.Get(p).IsZero() {
		t.Fatal("new world is not empty")
	}

	e := place(w, organism("a", 3), p)
	if w.Get(p) != e {
		t.Error("Get did not return the placed entity")
	}
	w.Remove(p)
	if !w.Get(p).IsZero() {
		t.Error("Remove left an occupant")
	}
	if !w.Alive(e) {
		t.Error("Remove destroyed the entity before Sweep")
	}
}

func TestKillZeroesHeldReference(t *testing.T) {
	w := newTestWorld(2, 1)
	p := components.Vec(0, 0)
	e := place(w, organism("a", 7), p)
	held := w.Energy(e)

	w.Kill(p)

	if !w.Get(p).IsZero() {
		t.Error("Kill left the cell occupied")
	}
	if held.Value != 0 {
		t.Errorf("held energy = %d, want 0", held.Value)
	}
	if got := w.Energy(e).Value; got != 0 {
		t.Errorf("energy via handle = %d, want 0", got)
	}
}

func TestMove(t *testing.T) {
	w := newTestWorld(3, 1)
	e := place(w, organism("a", 1), components.Vec(0, 0))
	w.Move(components.Vec(0, 0), components.Vec(2, 0))

	if !w.Get(components.Vec(0, 0)).IsZero() {
		t.Error("origin still occupied")
	}
	if w.Get(components.Vec(2, 0)) != e {
		t.Error("entity not at destination")
	}
}

func TestEnumerateRowMajor(t *testing.T) {
	w := newTestWorld(3, 2)
	e := place(w, organism("a", 1), components.Vec(2, 0))

	cells := w.Enumerate()
	if len(cells) != 6 {
		t.Fatalf("len = %d, want 6", len(cells))
	}
	for i, c := range cells {
		want := components.Vec(i%3, i/3)
		if c.Pos != want {
			t.Errorf("cell %d at %v, want %v", i, c.Pos, want)
		}
	}
	if cells[2].Entity != e || cells[2].Empty() {
		t.Error("cell 2 does not hold the placed entity")
	}

	// Snapshot is not affected by later mutation
	w.Remove(components.Vec(2, 0))
	if cells[2].Entity != e {
		t.Error("snapshot changed after Remove")
	}
}

func TestViewOrderAndBounds(t *testing.T) {
	w := newTestWorld(3, 3)

	got := w.View(components.Vec(1, 1), 1)
	want := []components.Vector{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2},
		{X: 1, Y: 0}, {X: 1, Y: 2},
		{X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("View = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("View[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	corner := w.View(components.Vec(0, 0), 2)
	if len(corner) != 8 {
		t.Errorf("corner view has %d cells, want 8", len(corner))
	}
	for _, p := range corner {
		if !w.InBounds(p) {
			t.Errorf("View returned out-of-bounds %v", p)
		}
	}
}

func TestViewWalkable(t *testing.T) {
	w := newTestWorld(3, 3)
	wallAt(w, components.Vec(0, 0), components.Vec(2, 2))

	got := w.ViewWalkable(components.Vec(1, 1), 1)
	if len(got) != 6 {
		t.Errorf("ViewWalkable = %v, want 6 cells", got)
	}
	for _, p := range got {
		if !w.IsWalkable(p) {
			t.Errorf("%v is not walkable", p)
		}
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	w := newTestWorld(2, 2)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok {
			t.Fatalf("recovered %v, want an error", r)
		}
		var oob *OutOfBoundsError
		if !errors.As(err, &oob) {
			t.Fatalf("recovered %v, want *OutOfBoundsError", err)
		}
		if oob.Pos != components.Vec(2, 0) {
			t.Errorf("Pos = %v, want (2,0)", oob.Pos)
		}
	}()
	w.Get(components.Vec(2, 0))
}

func TestFromLegend(t *testing.T) {
	legend := map[rune]*components.Template{
		'1': organism("t1", 1),
		'2': organism("t2", 1),
	}
	w, err := FromLegend(legend, []string{"12", " 1"}, nil)
	if err != nil {
		t.Fatalf("FromLegend: %v", err)
	}

	for pos, species := range map[components.Vector]string{
		components.Vec(0, 0): "t1",
		components.Vec(1, 0): "t2",
		components.Vec(1, 1): "t1",
	} {
		if id := w.Identity(w.Get(pos)); id == nil || id.Species != species {
			t.Errorf("%v holds %+v, want %s", pos, id, species)
		}
	}
	if !w.Get(components.Vec(0, 1)).IsZero() {
		t.Error("(0,1) should be empty")
	}
	if got := w.String(); got != "12\n 1" {
		t.Errorf("String() = %q, want %q", got, "12\n 1")
	}
}

func TestFromLegendGlyphFollowsKey(t *testing.T) {
	shared := organism("moss", 1)
	legend := map[rune]*components.Template{'m': shared, 'M': shared}
	w, err := FromLegend(legend, []string{"mM"}, nil)
	if err != nil {
		t.Fatalf("FromLegend: %v", err)
	}
	if got := w.String(); got != "mM" {
		t.Errorf("String() = %q, want %q", got, "mM")
	}
	if shared.Glyph != 'm' {
		t.Error("FromLegend modified the caller's template")
	}
}

func TestFromLegendErrors(t *testing.T) {
	legend := map[rune]*components.Template{'a': organism("a", 1)}
	tests := []struct {
		name string
		rows []string
	}{
		{"no rows", nil},
		{"ragged", []string{"aa", "a"}},
		{"undefined symbol", []string{"ab"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromLegend(legend, tt.rows, nil)
			if !errors.Is(err, ErrConfiguration) {
				t.Errorf("err = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestSweepRemovesOrphans(t *testing.T) {
	w := newTestWorld(2, 1)
	a := place(w, organism("a", 1), components.Vec(0, 0))
	b := place(w, organism("b", 1), components.Vec(1, 0))

	w.Kill(components.Vec(1, 0))
	if !w.Alive(b) {
		t.Fatal("killed entity destroyed before Sweep")
	}
	if n := w.Sweep(); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if w.Alive(b) || w.Energy(b) != nil {
		t.Error("orphan survived Sweep")
	}
	if !w.Alive(a) {
		t.Error("Sweep removed a placed entity")
	}
}

func TestExpireNotifiesObserver(t *testing.T) {
	w := newTestWorld(1, 1)
	obs := &recordingObserver{}
	w.SetObserver(obs)
	place(w, organism("a", 1), components.Vec(0, 0))

	w.Expire(components.Vec(0, 0))

	if !w.Get(components.Vec(0, 0)).IsZero() {
		t.Error("Expire left the cell occupied")
	}
	if len(obs.events) != 1 || obs.events[0].cause != CauseExhausted {
		t.Errorf("events = %+v, want one exhausted death", obs.events)
	}
}
