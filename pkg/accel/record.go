package accel

import (
	"sort"

	"github.com/kaelrun/go-bvh-accel/pkg/core"
)

// record is a build-time working entry: a primitive plus its precomputed
// bbox and centroid, so the build never re-derives them while partitioning.
type record struct {
	prim     core.Primitive
	bbox     core.AABB
	centroid core.Vec3
}

// boundsUnion returns the union of every record's bbox in the slice.
func boundsUnion(records []record) core.AABB {
	box := core.Empty()
	for _, r := range records {
		box = box.Union(r.bbox)
	}
	return box
}

// stablePartition reorders records in place so that every record for which
// keep returns true comes before every record for which it returns false,
// preserving the relative order within each group. It returns the number of
// records kept on the left.
//
// A plain Hoare/Lomuto swap-based partition does not preserve input order,
// which would break the tie-breaks spec.md's determinism guarantee depends
// on; this does one linear pass into a scratch buffer instead.
func stablePartition(records []record, keep func(record) bool) int {
	scratch := make([]record, len(records))
	left := 0
	right := len(records)
	for _, r := range records {
		if keep(r) {
			scratch[left] = r
			left++
		} else {
			right--
			scratch[right] = r
		}
	}
	// the right-hand records were written back-to-front; restore order
	reverse(scratch[left:])
	copy(records, scratch)
	return left
}

func reverse(records []record) {
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
}

// sortByCentroid stably sorts records by centroid value on the given axis,
// ties broken by input order (sort.SliceStable guarantees that).
func sortByCentroid(records []record, axis core.Axis) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].centroid.Component(axis) < records[j].centroid.Component(axis)
	})
}
