package game

// Randomize redraws every organism's energy uniformly from
// [baseEnergy, maxEnergy], as if the ecosystem had been running a while.
func (g *Game) Randomize() {
	for _, cell := range g.world.Enumerate() {
		if cell.Empty() {
			continue
		}
		energy := g.world.Energy(cell.Entity)
		if energy == nil {
			continue
		}
		energy.Set(energy.Base + g.rng.Intn(energy.Max-energy.Base+1))
	}
}

// census groups the energies of every placed organism by species.
func (g *Game) census() map[string][]float64 {
	out := make(map[string][]float64)
	for _, cell := range g.world.Enumerate() {
		if cell.Empty() {
			continue
		}
		energy := g.world.Energy(cell.Entity)
		if energy == nil {
			continue
		}
		species := g.world.Identity(cell.Entity).Species
		out[species] = append(out[species], float64(energy.Value))
	}
	return out
}
