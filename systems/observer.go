package systems

// DeathCause records why an organism left the grid.
type DeathCause uint8

const (
	CauseEaten     DeathCause = iota // consumed by Eat
	CauseStarved                     // Metabolize drained it
	CauseExhausted                   // found at zero energy by the turn sweep

	NumDeathCauses // number of causes above
)

func (c DeathCause) String() string {
	switch c {
	case CauseEaten:
		return "eaten"
	case CauseStarved:
		return "starved"
	case CauseExhausted:
		return "exhausted"
	}
	return "unknown"
}

// Observer receives lifecycle events as behaviors run.
type Observer interface {
	OnBirth(species string)
	OnDeath(species string, cause DeathCause)
}

type nopObserver struct{}

func (nopObserver) OnBirth(string)             {}
func (nopObserver) OnDeath(string, DeathCause) {}
