package sandbox

// age counts a mortal particle's health down by one and replaces it with its
// OnDeath material when it runs out.
func (s *Simulation) age(x, y int) bool {
	p := s.grid.Get(x, y)
	if !p.Has(TraitLifespan) {
		return false
	}
	p.Health.Amount--
	if p.Health.Amount <= 0 {
		s.replace(x, y, p.Lifespan.OnDeath)
		return true
	}
	s.grid.WeakTick(x, y)
	return false
}
