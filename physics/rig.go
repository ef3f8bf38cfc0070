package physics

import (
	"fmt"
	"math"

	"github.com/phanxgames/marionette/mathutil"
)

const (
	axisX     = "X"
	axisY     = "Y"
	axisAngle = "Angle"
)

// ParamLookup resolves a physics descriptor's parameter IDs (e.g. "Angle
// Z", "ParamBodyAngleX") to an index in the puppet's parameter vector. A
// puppet's own moc3.Parameters.IDs, searched linearly once at bind time, is
// the obvious source.
type ParamLookup func(id string) (index int, ok bool)

type resolvedInput struct {
	paramIndex int
	axis       string
	weight     float64
	reflect    bool
}

type resolvedOutput struct {
	paramIndex  int
	vertexIndex int
	axis        string
	scale       float64
	weight      float64
	reflect     bool
}

// chain is one bound PhysicsSetting: its live Pendulum plus the resolved
// parameter bindings driving and driven by it.
type chain struct {
	pendulum *Pendulum
	inputs   []resolvedInput
	outputs  []resolvedOutput
}

// Rig binds a physics descriptor's pendulum chains to a puppet's parameter
// vector: each frame, Step reads translation/rotation off the driving
// parameters, advances every chain, and writes the settled positions back.
type Rig struct {
	chains []chain
}

// NewRig resolves every PhysicsSetting's Input/Output parameter targets via
// lookup and seeds one Pendulum per setting that has at least one vertex.
// An Input or Output binding whose parameter lookup can't find is skipped;
// the setting's pendulum is still seeded with the bindings that resolved.
// An Output whose VertexIndex is outside the setting's vertices is an error.
func NewRig(data *Physics3Data, lookup ParamLookup) (*Rig, error) {
	rig := &Rig{}

	for _, setting := range data.PhysicsSettings {
		if len(setting.Vertices) == 0 {
			continue
		}

		vertexes := make([]Vertex, len(setting.Vertices))
		positions := make([]mathutil.Vec2, len(setting.Vertices))
		for i, v := range setting.Vertices {
			vertexes[i] = Vertex{Mobility: v.Mobility, Delay: v.Delay, Acceleration: v.Acceleration, Radius: v.Radius}
			positions[i] = mathutil.Vec2{X: v.Position.X, Y: v.Position.Y}
		}

		var inputs []resolvedInput
		for _, in := range setting.Input {
			idx, ok := lookup(in.Source.ID)
			if !ok {
				continue
			}
			inputs = append(inputs, resolvedInput{paramIndex: idx, axis: in.Type, weight: in.Weight, reflect: in.Reflect})
		}

		var outputs []resolvedOutput
		for _, out := range setting.Output {
			idx, ok := lookup(out.Destination.ID)
			if !ok {
				continue
			}
			if out.VertexIndex < 0 || out.VertexIndex >= len(setting.Vertices) {
				return nil, fmt.Errorf("physics: setting %q output vertex index %d out of range", setting.ID, out.VertexIndex)
			}
			outputs = append(outputs, resolvedOutput{
				paramIndex:  idx,
				vertexIndex: out.VertexIndex,
				axis:        out.Type,
				scale:       out.Scale,
				weight:      out.Weight,
				reflect:     out.Reflect,
			})
		}

		rig.chains = append(rig.chains, chain{
			pendulum: NewPendulum(positions, vertexes),
			inputs:   inputs,
			outputs:  outputs,
		})
	}

	return rig, nil
}

// Step advances every bound chain by dt seconds, reading its driving
// translation/rotation off params and writing settled output back into
// params in place.
func (r *Rig) Step(dt float64, params []float64) {
	for i := range r.chains {
		c := &r.chains[i]

		var translation mathutil.Vec2
		var rotation float64
		for _, in := range c.inputs {
			v := params[in.paramIndex] * in.weight
			if in.reflect {
				v = -v
			}
			switch in.axis {
			case axisX:
				translation.X += v
			case axisY:
				translation.Y += v
			case axisAngle:
				rotation += degToRad(v)
			}
		}

		c.pendulum.Update(dt, translation, rotation)

		for _, out := range c.outputs {
			point := c.pendulum.Points[out.vertexIndex]
			var v float64
			switch out.axis {
			case axisX:
				v = point.Current.X
			case axisY:
				v = point.Current.Y
			case axisAngle:
				v = radToDeg(translation.AngleBetween(point.Current))
			}
			v *= out.scale * out.weight
			if out.reflect {
				v = -v
			}
			params[out.paramIndex] = v
		}
	}
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
func radToDeg(r float64) float64 { return r * 180 / math.Pi }
