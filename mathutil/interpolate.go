package mathutil

import "sort"

// Axis is one parameter axis of a multilinear keyframe table: its ascending
// key values, the index of the driving parameter in the caller's parameter
// vector, and its stride (the product of the lengths of all axes ordered
// before it, per the applicator's mixed-radix indexing scheme).
type Axis struct {
	Keys       []float64
	ParamIndex int
	Stride     int
}

// Corner is one term of a multilinear interpolation sum: Weight is the
// product of per-axis interpolation factors, and Index is the flat index
// into the keyframe table this term reads from.
type Corner struct {
	Index  int
	Weight float64
}

// MaxAxes is the largest number of simultaneous parameter axes a single
// applicator may bind, matching the D<=31 bound from the keyframe table's
// mixed-radix index (one mask bit per axis, fits a uint32).
const MaxAxes = 31

// Bracket returns the indices of the two keys in keys that surround value,
// and the interpolation fraction t between them. keys must have length >= 2
// and be strictly ascending. If value exactly matches one of the interior
// keys, the pair that starts at that key is returned (t is 0); an exact
// match on the last key returns the final pair (t is 1). Values outside [keys[0], keys[len-1]] extrapolate linearly
// from the first or last interval rather than clamping t.
func Bracket(keys []float64, value float64) (lo, hi int, t float64) {
	n := len(keys)
	idx := sort.SearchFloat64s(keys, value)
	switch {
	case idx <= 0:
		lo, hi = 0, 1
	case idx >= n:
		lo, hi = n-2, n-1
	case keys[idx] == value:
		if idx == n-1 {
			lo, hi = n-2, n-1
		} else {
			lo, hi = idx, idx+1
		}
	default:
		lo, hi = idx-1, idx
	}
	t = Rescale(value, keys[lo], keys[hi])
	return lo, hi, t
}

// Corners computes the 2^len(axes) corner weights and flat table indices for
// a multilinear interpolation over the given axes, evaluated at the current
// parameter vector. Axis 0 varies fastest (its stride should be 1 for a
// densely packed table). An axis list of length 0 yields the single corner
// {Index: 0, Weight: 1}. dst is reused if it has enough capacity (the
// hot-path, no-allocation contract FrameData relies on); pass nil to let it
// allocate.
func Corners(axes []Axis, params []float64, dst []Corner) []Corner {
	d := len(axes)
	if d > MaxAxes {
		panic("mathutil: applicator axis count exceeds MaxAxes")
	}
	need := 1 << uint(d)
	if cap(dst) < need {
		dst = make([]Corner, need)
	}
	dst = dst[:need]

	var los [MaxAxes]int
	var ts [MaxAxes]float64
	for i, ax := range axes {
		if len(ax.Keys) < 2 {
			panic("mathutil: applicator axis has fewer than 2 keys")
		}
		lo, _, t := Bracket(ax.Keys, params[ax.ParamIndex])
		los[i] = lo
		ts[i] = t
	}

	base := 0
	for i, ax := range axes {
		base += los[i] * ax.Stride
	}

	for mask := 0; mask < need; mask++ {
		weight := 1.0
		index := base
		for i, ax := range axes {
			if mask&(1<<uint(i)) != 0 {
				weight *= ts[i]
				index += ax.Stride
			} else {
				weight *= 1 - ts[i]
			}
		}
		dst[mask] = Corner{Index: index, Weight: weight}
	}
	return dst
}
