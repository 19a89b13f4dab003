package collider

import "sandfall/internal/sandbox"

type point struct{ x, y int }

// Neighbour bits of a matching cell.
const (
	right = 1 << iota
	left
	down
	up
)

// corners maps the set of matching orthogonal neighbours to the unit square
// corners that lie on the region boundary. Corners are listed so that
// consecutive entries are one unit apart.
var corners = func() [16][]point {
	const (
		tl = iota
		tr
		br
		bl
	)
	all := []int{tl, tr, br, bl}
	var t [16][]point
	for mask := 0; mask < 16; mask++ {
		var idx []int
		switch mask {
		case right | left | down | up:
		case right | left | down:
			idx = []int{tl, tr}
		case right | left | up:
			idx = []int{bl, br}
		case right | down | up:
			idx = []int{tl, bl}
		case left | down | up:
			idx = []int{tr, br}
		case left | down:
			idx = []int{tl, tr, br}
		case right | down:
			idx = []int{tr, tl, bl}
		case left | up:
			idx = []int{tr, br, bl}
		case right | up:
			idx = []int{tl, bl, br}
		default:
			idx = all
		}
		for _, i := range idx {
			t[mask] = append(t[mask], [4]point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}[i])
		}
	}
	return t
}()

// march walks every cell of chunk c and collects the de-duplicated boundary
// corners of cells in category cat, in visiting order.
func march(g *sandbox.Grid, c *sandbox.Chunk, cat sandbox.CollisionType) []point {
	ox, oy := c.Origin()
	match := func(x, y int) bool {
		p := g.CheckedGet(x, y)
		return p != nil && p.Collision == cat
	}

	var out []point
	seen := make(map[point]struct{})
	for y := oy; y < oy+c.Height(); y++ {
		for x := ox; x < ox+c.Width(); x++ {
			if !match(x, y) {
				continue
			}
			mask := 0
			if match(x+1, y) {
				mask |= right
			}
			if match(x-1, y) {
				mask |= left
			}
			if match(x, y+1) {
				mask |= down
			}
			if match(x, y-1) {
				mask |= up
			}
			for _, off := range corners[mask] {
				pt := point{x + off.x, y + off.y}
				if _, ok := seen[pt]; ok {
					continue
				}
				seen[pt] = struct{}{}
				out = append(out, pt)
			}
		}
	}
	return out
}

var chainOrder = [4]point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// chain links points into runs of unit steps. Each run starts at the first
// unconsumed point and grows from its tail until no unit neighbour is left.
func chain(pts []point) [][]point {
	remaining := make(map[point]struct{}, len(pts))
	for _, p := range pts {
		remaining[p] = struct{}{}
	}

	var chains [][]point
	for _, start := range pts {
		if _, ok := remaining[start]; !ok {
			continue
		}
		delete(remaining, start)
		run := []point{start}
		tail := start
		for {
			found := false
			for _, d := range chainOrder {
				next := point{tail.x + d.x, tail.y + d.y}
				if _, ok := remaining[next]; ok {
					delete(remaining, next)
					run = append(run, next)
					tail = next
					found = true
					break
				}
			}
			if !found {
				break
			}
		}
		chains = append(chains, run)
	}
	return chains
}
