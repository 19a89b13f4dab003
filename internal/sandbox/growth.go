package sandbox

// grow lets a growable particle take over a neighbouring GrowableOn cell, or
// sprout into an empty one when it is allowed to.
func (s *Simulation) grow(x, y int) {
	p := s.grid.Get(x, y)
	if !p.Has(TraitGrowth) {
		return
	}
	s.grid.WeakTick(x, y)

	gr := p.Growth
	if s.rng.Chance(gr.SpreadChance) && s.spread(x, y, gr.GrowAs) {
		return
	}
	if gr.CanSprout && s.rng.Chance(gr.SpreadChance) {
		s.sprout(x, y, gr.GrowAs)
	}
}

func (s *Simulation) shuffled() [4][2]int {
	dirs := orthogonal
	s.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	return dirs
}

func (s *Simulation) spread(x, y int, as Material) bool {
	g := s.grid
	for _, d := range s.shuffled() {
		nx, ny := x+d[0], y+d[1]
		n := g.CheckedGet(nx, ny)
		if n == nil || !n.GrowableOn || g.EightSurrounded(nx, ny) {
			continue
		}
		return s.plant(nx, ny, as)
	}
	return false
}

func (s *Simulation) sprout(x, y int, as Material) bool {
	g := s.grid
	for _, d := range s.shuffled() {
		nx, ny := x+d[0], y+d[1]
		if !g.InBounds(nx, ny) || g.Get(nx, ny) != nil {
			continue
		}
		return s.plant(nx, ny, as)
	}
	return false
}

func (s *Simulation) plant(x, y int, as Material) bool {
	np, ok := s.Spawn(as)
	if !ok {
		return false
	}
	np.Updated = true
	s.grid.Set(x, y, &np)
	return true
}
