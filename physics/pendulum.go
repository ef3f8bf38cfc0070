// Package physics implements the pendulum solver that turns a puppet's
// translation/rotation input into smoothed secondary-motion output, plus the
// JSON physics descriptor format that binds pendulum chains to parameters.
package physics

import (
	"math"

	"github.com/phanxgames/marionette/mathutil"
)

// Vertex is one bob of a pendulum chain: how loosely it follows its parent
// (Mobility), how much the timestep is dilated for it (Delay), how strongly
// gravity pulls on it (Acceleration), and the fixed link length to its
// parent (Radius).
type Vertex struct {
	Mobility     float64
	Delay        float64
	Acceleration float64
	Radius       float64
}

// Point is one pendulum bob's running state.
type Point struct {
	Last     mathutil.Vec2
	Current  mathutil.Vec2
	Velocity mathutil.Vec2
}

// Pendulum is a chain of points anchored at Points[0], which an external
// caller drives directly via Update's translation argument; every other
// point settles toward its parent under the link-length constraint. Output
// is read straight off Points — the reference implementation's own author
// is blunt about not being confident this replicates Live2D: the chain is
// not a true N-pendulum (deliberately, to avoid chaotic blowup), and the
// constants below were tuned by observation rather than derived.
type Pendulum struct {
	lastGlobalRotation float64
	Points             []Point
	vertexes           []Vertex
}

// NewPendulum seeds one point per vertex, all at rest at the vertex's own
// position (an anchor position for vertexes[0], relative offsets for the
// rest — the caller decides what "position" means for non-anchor links;
// Update only ever reads Radius/Mobility/Delay/Acceleration off them).
func NewPendulum(positions []mathutil.Vec2, vertexes []Vertex) *Pendulum {
	points := make([]Point, len(vertexes))
	for i := range vertexes {
		pos := mathutil.Vec2{}
		if i < len(positions) {
			pos = positions[i]
		}
		points[i] = Point{Last: pos, Current: pos}
	}
	return &Pendulum{Points: points, vertexes: append([]Vertex(nil), vertexes...)}
}

// Update advances the chain by dt seconds given the driving anchor
// translation and the puppet's current rotation (radians). Rotating the
// whole puppet only rotates the pendulum by a fifth of that amount — this
// isn't a modeling choice, it's what watching real assets move shows.
func (p *Pendulum) Update(dt float64, translation mathutil.Vec2, rotation float64) {
	dt *= 20
	if dt == 0 {
		return
	}
	if len(p.Points) == 0 {
		return
	}

	effectiveRotationChange := (p.lastGlobalRotation - rotation) / 5

	// +y points down, matching the rest of the puppet's canvas space.
	gravity := mathutil.Vec2{X: math.Sin(rotation), Y: math.Cos(rotation)}

	p.Points[0].Last = p.Points[0].Current
	p.Points[0].Current = translation

	lastPoint := p.Points[0]
	for i := 1; i < len(p.Points); i++ {
		point := &p.Points[i]
		vertex := p.vertexes[i]

		point.Last = point.Current

		force := gravity.Scale(vertex.Acceleration)
		effectiveTime := dt * vertex.Delay

		direction := point.Current.Sub(lastPoint.Current)
		rotatedDir := direction.Rotate(effectiveRotationChange)

		candidate := rotatedDir.
			Add(point.Velocity.Scale(effectiveTime)).
			Add(force.Scale(effectiveTime * effectiveTime))

		point.Current = lastPoint.Current.Add(candidate.Normalize().Scale(vertex.Radius))

		if effectiveTime == 0 {
			point.Velocity = mathutil.Vec2{}
		} else {
			point.Velocity = point.Current.Sub(point.Last).Scale(vertex.Mobility / effectiveTime)
		}

		lastPoint = *point
	}

	p.lastGlobalRotation = rotation
}
