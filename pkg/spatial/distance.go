// Package spatial provides the exact neighbour-distance primitive the
// selection engine delegates to for within/exwithin queries. The contract is
// exactness, not speed: any atom whose distance to some source atom is at
// most the cutoff must be reported, and no other.
package spatial

// WithinDistance fills mask with true for every atom of coords within cutoff
// of any source atom. Source atoms are within distance zero of themselves, so
// the result is self-inclusive. The bounding box of the source atoms,
// inflated by the cutoff, prunes atoms that cannot be in range before any
// distance is computed.
func WithinDistance(coords [][3]float64, cutoff float64, sources []int, bboxMin, bboxMax [3]float64, mask []bool) {
	if len(sources) == 0 {
		return
	}
	cutoff2 := cutoff * cutoff
	var lo, hi [3]float64
	for ax := 0; ax < 3; ax++ {
		lo[ax] = bboxMin[ax] - cutoff
		hi[ax] = bboxMax[ax] + cutoff
	}
	for i, p := range coords {
		if p[0] < lo[0] || p[0] > hi[0] ||
			p[1] < lo[1] || p[1] > hi[1] ||
			p[2] < lo[2] || p[2] > hi[2] {
			continue
		}
		for _, s := range sources {
			q := coords[s]
			dx := p[0] - q[0]
			dy := p[1] - q[1]
			dz := p[2] - q[2]
			if dx*dx+dy*dy+dz*dz <= cutoff2 {
				mask[i] = true
				break
			}
		}
	}
}

// SourceBounds computes the axis-aligned bounding box of the source atoms'
// coordinates. It panics on an empty source set; callers short-circuit that
// case before getting here.
func SourceBounds(coords [][3]float64, sources []int) (bboxMin, bboxMax [3]float64) {
	first := coords[sources[0]]
	bboxMin, bboxMax = first, first
	for _, s := range sources[1:] {
		p := coords[s]
		for ax := 0; ax < 3; ax++ {
			if p[ax] < bboxMin[ax] {
				bboxMin[ax] = p[ax]
			}
			if p[ax] > bboxMax[ax] {
				bboxMax[ax] = p[ax]
			}
		}
	}
	return bboxMin, bboxMax
}
