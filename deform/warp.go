// Package deform implements the three vertex-deformation kernels a puppet's
// deformer tree is built from: warp grids, rotation transforms, and glue
// vertex-pulling between meshes.
package deform

import "github.com/phanxgames/marionette/mathutil"

// Warp applies a warp deformer's control grid to points, in place. grid is
// the (rows+1)*(columns+1) control-point array in row-major order; points
// are given in the deformer's normalized [0,1]x[0,1] space.
//
// Three zones apply depending on where a point falls relative to the unit
// square: interior points are interpolated directly off the grid: legacy
// deformers mark quadrilaterals with the grid's own barycentric split,
// while newer deformers switched to independent bilinear interpolation.
// Points beyond a 2-unit margin snap to a parallelogram approximation of
// the grid's far corners. Points in between blend across the transition
// ring between those two behaviors.
func Warp(grid []mathutil.Vec2, isNewDeformer bool, rows, columns int, points []mathutil.Vec2) {
	columnPoints := columns + 1

	for i := range points {
		point := points[i]
		pointGrid := mathutil.Vec2{X: point.X * float64(columns), Y: point.Y * float64(rows)}
		gridX := int(pointGrid.X)
		gridY := int(pointGrid.Y)

		isNormal := point.X >= 0 && point.X < 1 && point.Y >= 0 && point.Y < 1
		if isNormal {
			gridIndex := gridX + gridY*columnPoints
			frac := mathutil.Vec2{X: fract(pointGrid.X), Y: fract(pointGrid.Y)}
			if isNewDeformer {
				points[i] = bilinearInterp(frac,
					grid[gridIndex], grid[gridIndex+1],
					grid[gridIndex+columnPoints], grid[gridIndex+columnPoints+1])
			} else {
				points[i] = triangularInterp(frac,
					grid[gridIndex], grid[gridIndex+1],
					grid[gridIndex+columnPoints], grid[gridIndex+columnPoints+1])
			}
			continue
		}

		centroid := grid[0].Add(grid[columns]).Add(grid[rows*columnPoints]).Add(grid[columns+rows*columnPoints]).Scale(0.25)

		diagonalOne := grid[columns+rows*columnPoints].Sub(grid[0])
		diagonalTwo := grid[columns].Sub(grid[rows*columnPoints])

		vX := diagonalOne.Add(diagonalTwo).Scale(0.5)
		vY := diagonalOne.Sub(diagonalTwo).Scale(0.5)

		origin := centroid.Sub(diagonalOne.Scale(0.5))

		isTransition := point.X >= -2 && point.X <= 3 && point.Y >= -2 && point.Y <= 3
		if !isTransition {
			points[i] = origin.Add(vX.Scale(point.X)).Add(vY.Scale(point.Y))
			continue
		}

		switch caseIndex(point) {
		case 7:
			adjX := minInt(gridX, columns-1)
			firstF := float64(adjX) / float64(columns)
			secondF := float64(adjX+1) / float64(columns)
			points[i] = triangularInterp(
				mathutil.Vec2{X: pointGrid.X - float64(adjX), Y: rescale(point.Y, 1, 3)},
				grid[adjX+rows*columnPoints],
				grid[adjX+1+rows*columnPoints],
				origin.Add(vX.Scale(firstF)).Add(vY.Scale(3)),
				origin.Add(vX.Scale(secondF)).Add(vY.Scale(3)),
			)
		case 1:
			adjX := minInt(gridX, columns-1)
			firstF := float64(adjX) / float64(columns)
			secondF := float64(adjX+1) / float64(columns)
			points[i] = triangularInterp(
				mathutil.Vec2{X: pointGrid.X - float64(adjX), Y: rescale(point.Y, -2, 0)},
				origin.Add(vX.Scale(firstF)).Add(vY.Scale(-2)),
				origin.Add(vX.Scale(secondF)).Add(vY.Scale(-2)),
				grid[adjX],
				grid[adjX+1],
			)
		case 3:
			adjY := minInt(gridY, rows-1)
			firstF := float64(adjY) / float64(rows)
			secondF := float64(adjY+1) / float64(rows)
			points[i] = triangularInterp(
				mathutil.Vec2{X: rescale(point.X, -2, 0), Y: pointGrid.Y - float64(adjY)},
				origin.Add(vX.Scale(-2)).Add(vY.Scale(firstF)),
				grid[adjY*columnPoints],
				origin.Add(vX.Scale(-2)).Add(vY.Scale(secondF)),
				grid[(adjY+1)*columnPoints],
			)
		case 5:
			adjY := minInt(gridY, rows-1)
			firstF := float64(adjY) / float64(rows)
			secondF := float64(adjY+1) / float64(rows)
			points[i] = triangularInterp(
				mathutil.Vec2{X: rescale(point.X, 1, 3), Y: pointGrid.Y - float64(adjY)},
				grid[columns+adjY*columnPoints],
				origin.Add(vX.Scale(3)).Add(vY.Scale(firstF)),
				grid[columns+(adjY+1)*columnPoints],
				origin.Add(vX.Scale(3)).Add(vY.Scale(secondF)),
			)
		case 6:
			points[i] = triangularInterp(
				mathutil.Vec2{X: rescale(point.X, -2, 0), Y: rescale(point.Y, 1, 3)},
				origin.Add(vX.Scale(-2)).Add(vY.Scale(1)),
				grid[rows*columnPoints],
				origin.Add(vX.Scale(-2)).Add(vY.Scale(3)),
				origin.Add(vY.Scale(3)),
			)
		case 8:
			points[i] = triangularInterp(
				mathutil.Vec2{X: rescale(point.X, 1, 3), Y: rescale(point.Y, 1, 3)},
				grid[columns+rows*columnPoints],
				origin.Add(vX.Scale(3)).Add(vY.Scale(1)),
				origin.Add(vX.Scale(1)).Add(vY.Scale(3)),
				origin.Add(vX.Scale(3)).Add(vY.Scale(3)),
			)
		case 0:
			points[i] = triangularInterp(
				mathutil.Vec2{X: rescale(point.X, -2, 0), Y: rescale(point.Y, -2, 0)},
				origin.Add(vX.Scale(-2)).Add(vY.Scale(-2)),
				origin.Add(vY.Scale(-2)),
				origin.Add(vX.Scale(-2)),
				grid[0],
			)
		case 2:
			points[i] = triangularInterp(
				mathutil.Vec2{X: rescale(point.X, 1, 3), Y: rescale(point.Y, -2, 0)},
				origin.Add(vX.Scale(1)).Add(vY.Scale(-2)),
				origin.Add(vX.Scale(3)).Add(vY.Scale(-2)),
				grid[columns],
				origin.Add(vX.Scale(3)),
			)
		default:
			panic("deform: warp case index 4 (interior) reached the transition-ring branch")
		}
	}
}

func bilinearInterp(t, bottomLeft, bottomRight, topLeft, topRight mathutil.Vec2) mathutil.Vec2 {
	negX, negY := 1-t.X, 1-t.Y
	return bottomLeft.Scale(negX * negY).
		Add(bottomRight.Scale(t.X * negY)).
		Add(topLeft.Scale(negX * t.Y)).
		Add(topRight.Scale(t.X * t.Y))
}

func triangularInterp(t, bottomLeft, bottomRight, topLeft, topRight mathutil.Vec2) mathutil.Vec2 {
	negX, negY := 1-t.X, 1-t.Y
	if t.X+t.Y > 1 {
		return topRight.Add(topLeft.Sub(topRight).Scale(negX)).Add(bottomRight.Sub(topRight).Scale(negY))
	}
	return bottomLeft.Add(bottomRight.Sub(bottomLeft).Scale(t.X)).Add(topLeft.Sub(bottomLeft).Scale(t.Y))
}

// rescale maps t from [lower, upper] onto [0, 1].
func rescale(t, lower, upper float64) float64 {
	return (t - lower) / (upper - lower)
}

// caseIndex classifies a point's position against the unit square into one
// of the nine transition-ring cells:
//
//	| 6 | 7 | 8 |
//	| 3 | 4 | 5 |
//	| 0 | 1 | 2 |
//
// 4 (interior) never reaches the transition-ring code path.
func caseIndex(point mathutil.Vec2) int {
	xInd := 1
	if point.X >= 1 {
		xInd = 2
	} else if point.X < 0 {
		xInd = 0
	}
	yInd := 1
	if point.Y >= 1 {
		yInd = 2
	} else if point.Y < 0 {
		yInd = 0
	}
	return xInd + yInd*3
}

func fract(v float64) float64 {
	return v - float64(int(v))
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
