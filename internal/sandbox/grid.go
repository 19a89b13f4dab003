package sandbox

// Grid owns every chunk of the simulation and translates global cell
// coordinates into chunk/local coordinates.
type Grid struct {
	chunksX, chunksY int
	chunkW, chunkH   int
	width, height    int
	chunks           []*Chunk
}

var (
	orthogonal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	moore      = [8][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {1, 1}, {1, -1}, {-1, 1}}
)

// NewGrid allocates chunksX*chunksY empty chunks of chunkW*chunkH cells.
func NewGrid(chunksX, chunksY, chunkW, chunkH int) *Grid {
	chunksX = max(chunksX, 1)
	chunksY = max(chunksY, 1)
	chunkW = max(chunkW, 1)
	chunkH = max(chunkH, 1)
	g := &Grid{
		chunksX: chunksX,
		chunksY: chunksY,
		chunkW:  chunkW,
		chunkH:  chunkH,
		width:   chunksX * chunkW,
		height:  chunksY * chunkH,
		chunks:  make([]*Chunk, 0, chunksX*chunksY),
	}
	for row := 0; row < chunksY; row++ {
		for col := 0; col < chunksX; col++ {
			g.chunks = append(g.chunks, NewChunk(chunkW, chunkH, col, row))
		}
	}
	return g
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return g.height }

// ChunkSize returns the dimensions of a single chunk.
func (g *Grid) ChunkSize() (w, h int) { return g.chunkW, g.chunkH }

// ChunkCount returns the number of chunks along each axis.
func (g *Grid) ChunkCount() (x, y int) { return g.chunksX, g.chunksY }

// InBounds reports whether (x, y) addresses a cell of the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// ChunkIndex maps a global cell coordinate to its chunk slot.
func (g *Grid) ChunkIndex(x, y int) int {
	return (y/g.chunkH)*g.chunksX + x/g.chunkW
}

// ChunkAt returns the chunk containing (x, y). The coordinate must be in bounds.
func (g *Grid) ChunkAt(x, y int) *Chunk { return g.chunks[g.ChunkIndex(x, y)] }

// Chunks exposes all chunks in row-major order.
func (g *Grid) Chunks() []*Chunk { return g.chunks }

// Get returns the particle at (x, y), or nil when the cell is empty. The
// caller guarantees (x, y) is in bounds.
func (g *Grid) Get(x, y int) *Particle {
	return g.ChunkAt(x, y).Get(x%g.chunkW, y%g.chunkH)
}

// CheckedGet is Get that reports nil for out-of-bounds coordinates.
func (g *Grid) CheckedGet(x, y int) *Particle {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.Get(x, y)
}

// Set writes p (or clears the cell when p is nil) and re-arms strong
// activity around (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, p *Particle) {
	if !g.InBounds(x, y) {
		return
	}
	g.ChunkAt(x, y).Set(x%g.chunkW, y%g.chunkH, p)
	g.strongTickNeighbors(x, y)
}

// Swap exchanges the contents of two cells. It is a no-op when either
// coordinate is out of bounds.
func (g *Grid) Swap(x1, y1, x2, y2 int) {
	if !g.InBounds(x1, y1) || !g.InBounds(x2, y2) {
		return
	}
	c1, c2 := g.ChunkAt(x1, y1), g.ChunkAt(x2, y2)
	lx1, ly1 := x1%g.chunkW, y1%g.chunkH
	lx2, ly2 := x2%g.chunkW, y2%g.chunkH
	p1, p2 := c1.take(lx1, ly1), c2.take(lx2, ly2)
	c1.put(lx1, ly1, p2)
	c2.put(lx2, ly2, p1)
	g.strongTickNeighbors(x1, y1)
	g.strongTickNeighbors(x2, y2)
}

// strongTickNeighbors arms the eight chunks around the chunk holding (x, y).
func (g *Grid) strongTickNeighbors(x, y int) {
	col, row := x/g.chunkW, y/g.chunkH
	for _, d := range moore {
		c, r := col+d[0], row+d[1]
		if c < 0 || r < 0 || c >= g.chunksX || r >= g.chunksY {
			continue
		}
		g.chunks[r*g.chunksX+c].StrongTick()
	}
}

// WeakTick keeps the chunk holding (x, y) simulating.
func (g *Grid) WeakTick(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	g.ChunkAt(x, y).WeakTick()
}

// MarkUpdated flags the particle at (x, y) as handled this tick.
func (g *Grid) MarkUpdated(x, y int) {
	if !g.InBounds(x, y) {
		return
	}
	g.ChunkAt(x, y).MarkUpdated(x%g.chunkW, y%g.chunkH)
}

// ResetUpdated clears the handled flag across the grid.
func (g *Grid) ResetUpdated() {
	for _, c := range g.chunks {
		c.ResetUpdated()
	}
}

// ResetTicked decays the activity counters of every chunk.
func (g *Grid) ResetTicked() {
	for _, c := range g.chunks {
		c.ResetTicked()
	}
}

// EightSurrounded reports whether every in-bounds Moore neighbour of (x, y)
// is occupied. Cells beyond the grid edge count as walls.
func (g *Grid) EightSurrounded(x, y int) bool {
	for _, d := range moore {
		nx, ny := x+d[0], y+d[1]
		if g.InBounds(nx, ny) && g.Get(nx, ny) == nil {
			return false
		}
	}
	return true
}

// Occupied counts the non-empty cells of the grid.
func (g *Grid) Occupied() int {
	n := 0
	for _, c := range g.chunks {
		n += c.Occupied()
	}
	return n
}

// ActiveChunks counts chunks that are strongly and weakly active.
func (g *Grid) ActiveChunks() (strong, weak int) {
	for _, c := range g.chunks {
		if c.IsStrongTicked() {
			strong++
		}
		if c.IsWeakTicked() {
			weak++
		}
	}
	return strong, weak
}

// Clear empties every cell, leaving every chunk strongly active.
func (g *Grid) Clear() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.Get(x, y) != nil {
				g.Set(x, y, nil)
			}
		}
	}
	for _, c := range g.chunks {
		c.StrongTick()
		c.WeakTick()
	}
}
