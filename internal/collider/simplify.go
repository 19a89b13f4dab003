package collider

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Simplify reduces line with the Ramer–Douglas–Peucker algorithm, dropping
// points closer than epsilon to the chord of their span. Endpoints are
// always kept. Lines shorter than three points are returned as a copy.
func Simplify(line Polyline, epsilon float32) Polyline {
	n := len(line)
	if n < 3 {
		return append(Polyline(nil), line...)
	}

	keep := make([]bool, n)
	keep[0], keep[n-1] = true, true
	stack := [][2]int{{0, n - 1}}
	for len(stack) > 0 {
		span := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		a, b := span[0], span[1]
		if b-a < 2 {
			continue
		}

		idx, dmax := -1, float32(0)
		for i := a + 1; i < b; i++ {
			if d := perpendicular(line[i], line[a], line[b]); d > dmax {
				idx, dmax = i, d
			}
		}
		if idx < 0 || dmax <= epsilon {
			continue
		}
		keep[idx] = true
		stack = append(stack, [2]int{a, idx}, [2]int{idx, b})
	}

	out := make(Polyline, 0, n)
	for i, k := range keep {
		if k {
			out = append(out, line[i])
		}
	}
	return out
}

// perpendicular returns the distance from p to the line through a and b, or
// to a when the chord is degenerate.
func perpendicular(p, a, b mgl32.Vec2) float32 {
	d := b.Sub(a)
	v := p.Sub(a)
	l := d.Len()
	if l == 0 {
		return v.Len()
	}
	cross := d.X()*v.Y() - d.Y()*v.X()
	return float32(math.Abs(float64(cross))) / l
}
