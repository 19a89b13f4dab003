package sandbox

// corrode eats into every corrodable orthogonal neighbour. The acid pays one
// health per neighbour it damaged and reports true once it is used up.
func (s *Simulation) corrode(x, y int) bool {
	g := s.grid
	p := g.Get(x, y)
	if !p.Has(TraitCorrosive) || p.Acidity <= 0 {
		return false
	}

	affected := 0
	for _, d := range orthogonal {
		nx, ny := x+d[0], y+d[1]
		n := g.CheckedGet(nx, ny)
		if n == nil || !n.Health.Corrodable {
			continue
		}
		n.Health.Amount -= p.Acidity
		affected++
		if n.Health.Amount <= 0 {
			g.Set(nx, ny, nil)
		}
		g.WeakTick(nx, ny)
	}
	if affected == 0 {
		return false
	}

	g.WeakTick(x, y)
	p.Health.Amount -= affected
	if p.Health.Amount <= 0 {
		g.Set(x, y, nil)
		return true
	}
	return false
}
