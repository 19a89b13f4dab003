// Package collider derives polygon boundaries of same-category particle
// regions and hands them to an external physics consumer.
package collider

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"sandfall/internal/sandbox"
)

// Categories lists the collision categories geometry is extracted for, in
// extraction order.
var Categories = [...]sandbox.CollisionType{
	sandbox.CollisionSolid,
	sandbox.CollisionAcid,
	sandbox.CollisionFire,
	sandbox.CollisionWater,
}

// Key identifies the geometry of one category inside one chunk.
type Key struct {
	Chunk    int
	Category sandbox.CollisionType
}

func (k Key) String() string { return fmt.Sprintf("%d/%s", k.Chunk, k.Category) }

// Handle is an opaque reference to geometry owned by a Sink.
type Handle uint64

// Polyline is an open chain of points in world cell coordinates.
type Polyline []mgl32.Vec2

// Sink consumes extracted geometry. Spawn takes ownership of the polyline
// and Despawn retires geometry previously returned by Spawn.
type Sink interface {
	Spawn(key Key, line Polyline, sensor bool) Handle
	Despawn(h Handle)
}
