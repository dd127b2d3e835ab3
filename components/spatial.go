package components

// Vector is an immutable integer grid coordinate or displacement.
// Every operation returns a new value.
type Vector struct {
	X, Y int
}

// Directions lists the eight movement directions, clockwise from north.
var Directions = [8]Vector{
	{0, -1},
	{1, -1},
	{1, 0},
	{1, 1},
	{0, 1},
	{-1, 1},
	{-1, 0},
	{-1, -1},
}

// Vec is shorthand for Vector{x, y}.
func Vec(x, y int) Vector {
	return Vector{X: x, Y: y}
}

// Plus adds two vectors.
func (v Vector) Plus(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y}
}

// Minus subtracts o from v.
func (v Vector) Minus(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y}
}

// Map applies f to both components.
func (v Vector) Map(f func(int) int) Vector {
	return Vector{f(v.X), f(v.Y)}
}

// Dir reduces each component to its sign, giving one of the eight
// directions (or the zero vector).
func (v Vector) Dir() Vector {
	return v.Map(sign)
}

// Abs returns the component-wise absolute value.
func (v Vector) Abs() Vector {
	return v.Map(abs)
}

// Equals reports whether both components match.
func (v Vector) Equals(o Vector) bool {
	return v == o
}

// IsZero reports whether v is the zero vector.
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Compare orders vectors by the sum of their components: -1 if v is
// smaller, 1 if larger, 0 if equal. This is a crude distance proxy, not
// a Euclidean metric.
func (v Vector) Compare(o Vector) int {
	a, b := v.X+v.Y, o.X+o.Y
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// ClosestTo returns the candidate nearest to origin by Compare on the
// absolute offset. Ties keep the earliest candidate. ok is false when
// candidates is empty.
func ClosestTo(origin Vector, candidates []Vector) (Vector, bool) {
	return reduceByDistance(origin, candidates, -1)
}

// FurthestFrom returns the candidate farthest from origin, with the same
// tie rule as ClosestTo.
func FurthestFrom(origin Vector, candidates []Vector) (Vector, bool) {
	return reduceByDistance(origin, candidates, 1)
}

func reduceByDistance(origin Vector, candidates []Vector, want int) (Vector, bool) {
	if len(candidates) == 0 {
		return Vector{}, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Minus(origin).Abs().Compare(best.Minus(origin).Abs()) == want {
			best = c
		}
	}
	return best, true
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
