package sandbox

// MaxActivity is the number of ticks a chunk stays awake after being armed.
const MaxActivity uint8 = 2

// Chunk is a fixed-size tile of cells with independent activity tracking.
type Chunk struct {
	w, h     int
	col, row int
	cells    []*Particle
	strong   uint8
	weak     uint8
}

// NewChunk allocates an empty chunk at chunk coordinates (col, row). New
// chunks start fully active so the first passes render and extract them.
func NewChunk(w, h, col, row int) *Chunk {
	return &Chunk{
		w:      w,
		h:      h,
		col:    col,
		row:    row,
		cells:  make([]*Particle, w*h),
		strong: MaxActivity,
		weak:   MaxActivity,
	}
}

// Get returns the particle at local (x, y) or nil when the cell is empty.
func (c *Chunk) Get(x, y int) *Particle { return c.cells[c.index(x, y)] }

// Set stores p at local (x, y) and re-arms strong activity. A nil p clears
// the cell; otherwise the chunk keeps its own copy.
func (c *Chunk) Set(x, y int, p *Particle) {
	var stored *Particle
	if p != nil {
		cp := *p
		stored = &cp
	}
	c.cells[c.index(x, y)] = stored
	c.StrongTick()
}

func (c *Chunk) take(x, y int) *Particle { return c.cells[c.index(x, y)] }

func (c *Chunk) put(x, y int, p *Particle) {
	c.cells[c.index(x, y)] = p
	c.StrongTick()
}

// ResetTicked decays both activity counters by one, saturating at zero.
func (c *Chunk) ResetTicked() {
	if c.strong > 0 {
		c.strong--
	}
	if c.weak > 0 {
		c.weak--
	}
}

// StrongTick marks the chunk's pixels and geometry stale.
func (c *Chunk) StrongTick() { c.strong = MaxActivity }

// WeakTick keeps the chunk simulating without requesting a rebuild.
func (c *Chunk) WeakTick() { c.weak = MaxActivity }

// IsStrongTicked reports whether the chunk needs a visual/geometry rebuild.
func (c *Chunk) IsStrongTicked() bool { return c.strong > 0 }

// IsWeakTicked reports whether the chunk still needs simulation passes.
func (c *Chunk) IsWeakTicked() bool { return c.weak > 0 }

// Active reports whether the chunk is simulated this tick.
func (c *Chunk) Active() bool { return c.strong > 0 || c.weak > 0 }

// Activity exposes the raw counters.
func (c *Chunk) Activity() (strong, weak uint8) { return c.strong, c.weak }

// MarkUpdated flags the particle at local (x, y) as handled this tick.
func (c *Chunk) MarkUpdated(x, y int) {
	if p := c.cells[c.index(x, y)]; p != nil {
		p.Updated = true
	}
}

// ResetUpdated clears the handled flag on every particle.
func (c *Chunk) ResetUpdated() {
	for _, p := range c.cells {
		if p != nil {
			p.Updated = false
		}
	}
}

// Occupied counts the non-empty cells.
func (c *Chunk) Occupied() int {
	n := 0
	for _, p := range c.cells {
		if p != nil {
			n++
		}
	}
	return n
}

// Width returns the chunk width in cells.
func (c *Chunk) Width() int { return c.w }

// Height returns the chunk height in cells.
func (c *Chunk) Height() int { return c.h }

// Position returns the chunk's column and row in the grid.
func (c *Chunk) Position() (col, row int) { return c.col, c.row }

// Origin returns the world coordinates of the chunk's top-left cell.
func (c *Chunk) Origin() (x, y int) { return c.col * c.w, c.row * c.h }

func (c *Chunk) index(x, y int) int { return y*c.w + x }
