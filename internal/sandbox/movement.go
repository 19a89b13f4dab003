package sandbox

// step is the outcome of tracing one movement candidate.
type step struct {
	toX, toY int
	moved    bool

	blocked        bool
	bx, by         int
	blockerDensity uint32
}

// move applies gravity to the particle at (x, y) and resolves where it ends
// up this tick: a plain move, a density swap, or staying put.
func (s *Simulation) move(x, y int) {
	g := s.grid
	p := g.Get(x, y)
	s.applyGravity(p)

	st, swap := s.resolve(x, y, p)
	switch {
	case st.moved:
		p.Velocity.Damp()
		g.Swap(x, y, st.toX, st.toY)
		g.MarkUpdated(st.toX, st.toY)
	case swap:
		if st.toX != x || st.toY != y {
			g.Swap(x, y, st.toX, st.toY)
		}
		g.Swap(st.toX, st.toY, st.bx, st.by)
		g.MarkUpdated(st.toX, st.toY)
		g.MarkUpdated(st.bx, st.by)
	default:
		p.Velocity = Velocity{}
	}
}

func (s *Simulation) applyGravity(p *Particle) {
	if !p.Gravity {
		return
	}
	tv := s.params.TerminalVelocity
	switch p.Movement {
	case Powder, Liquid:
		if p.Velocity.Y < tv {
			p.Velocity.Y++
		}
	case Gas:
		if p.Velocity.Y > -tv {
			p.Velocity.Y--
		}
	}
}

// resolve tries the particle's rotation candidates in a randomly chosen
// handedness. The first candidate that advances wins; failing that, the
// first one blocked by a lighter particle is returned as a swap.
func (s *Simulation) resolve(x, y int, p *Particle) (step, bool) {
	var n int
	switch p.Movement {
	case Powder:
		n = 3
	case Liquid, Gas:
		n = 5
	default:
		return step{toX: x, toY: y}, false
	}

	order := clockwiseFirst
	if !s.rng.Bool() {
		order = counterClockwiseFirst
	}

	var swap step
	found := false
	for _, r := range order[:n] {
		vx, vy := r.Apply(p.Velocity.X, p.Velocity.Y)
		st := s.trace(x, y, x+vx, y+vy)
		if st.moved {
			return st, false
		}
		if !found && st.blocked && p.Density > st.blockerDensity {
			swap, found = st, true
		}
	}
	if found {
		return swap, true
	}
	return step{toX: x, toY: y}, false
}

// trace walks the Bresenham line from (x1, y1) toward (x2, y2). It stops at
// the first occupied or out-of-bounds cell; a stop on the first step is not
// a move. Occupied stops record the blocker.
func (s *Simulation) trace(x1, y1, x2, y2 int) step {
	g := s.grid
	res := step{toX: x1, toY: y1}
	if x1 == x2 && y1 == y2 {
		return res
	}

	w, h := x2-x1, y2-y1
	dx1, dy1 := sign(w), sign(h)
	dx2, dy2 := sign(w), 0
	longest, shortest := abs(w), abs(h)
	if longest <= shortest {
		longest, shortest = abs(h), abs(w)
		dx2, dy2 = 0, sign(h)
	}

	px, py := x1, y1
	cx, cy := x1, y1
	num := longest >> 1
	for i := 0; i <= longest; i++ {
		if i > 0 {
			var other *Particle
			inBounds := g.InBounds(cx, cy)
			if inBounds {
				other = g.Get(cx, cy)
			}
			if !inBounds || other != nil {
				res.toX, res.toY = px, py
				res.moved = i > 1
				if other != nil {
					res.blocked = true
					res.bx, res.by = cx, cy
					res.blockerDensity = other.Density
				}
				return res
			}
		}
		px, py = cx, cy
		num += shortest
		if num >= longest {
			num -= longest
			cx += dx1
			cy += dy1
		} else {
			cx += dx2
			cy += dy2
		}
	}

	res.toX, res.toY = x2, y2
	res.moved = true
	return res
}
