package deform

import "github.com/phanxgames/marionette/mathutil"

// Glue pulls corresponding vertices of two art meshes toward each other.
// positions holds interleaved (indexInMeshOne, indexInMeshTwo) pairs and
// weights holds the matching interleaved (weightOne, weightTwo) pairs,
// scaled by the glue's overall intensity; both meshes are mutated in place.
func Glue(intensity float64, positions []uint16, weights []float64, meshOne, meshTwo []mathutil.Vec2) {
	for i := 0; i+1 < len(positions) && i+1 < len(weights); i += 2 {
		idxOne, idxTwo := positions[i], positions[i+1]
		weightOne, weightTwo := weights[i], weights[i+1]

		a := meshOne[idxOne]
		b := meshTwo[idxTwo]

		meshOne[idxOne] = a.Add(b.Sub(a).Scale(weightOne * intensity))
		meshTwo[idxTwo] = b.Add(a.Sub(b).Scale(weightTwo * intensity))
	}
}
