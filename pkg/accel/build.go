package accel

import "github.com/kaelrun/go-bvh-accel/pkg/core"

// builder accumulates nodes while the tree is built. Nodes are appended in
// post-order per subtree (children before their parent), so a node's index
// is stable once assigned and is used as the parent's child reference.
type builder struct {
	nodes []node
	cfg   Config
}

// build recursively partitions records, which at this point occupy the
// absolute index range [base, base+len(records)) of the eventual owned
// primitive array, and returns the index of the node built over them.
//
// records aliases a sub-slice of the top-level backing array; every
// partition below reorders it in place, so by the time the top-level call
// returns, the backing array itself holds primitives in final leaf order.
func (bd *builder) build(records []record, base, depth int) int {
	nodeBox := boundsUnion(records)

	if len(records) <= bd.cfg.leafThreshold() {
		return bd.emitLeaf(nodeBox, base, len(records))
	}

	axis := bd.cfg.AxisSelection.axisAt(depth, nodeBox)

	mid, ok := bd.partition(records, axis, nodeBox)
	if !ok {
		bd.cfg.logf("accel: no split beat the leaf cost for %d records at depth %d, emitting a leaf", len(records), depth)
		return bd.emitLeaf(nodeBox, base, len(records))
	}

	leftIdx := bd.build(records[:mid], base, depth+1)
	rightIdx := bd.build(records[mid:], base+mid, depth+1)

	return bd.emitInternal(nodeBox, leftIdx, rightIdx)
}

func (bd *builder) emitLeaf(box core.AABB, start, count int) int {
	bd.nodes = append(bd.nodes, node{bbox: box, start: start, count: count, left: -1, right: -1})
	return len(bd.nodes) - 1
}

func (bd *builder) emitInternal(box core.AABB, left, right int) int {
	bd.nodes = append(bd.nodes, node{bbox: box, left: left, right: right})
	return len(bd.nodes) - 1
}

// partition splits records in place into a left run followed by a right
// run according to the configured heuristic, returning the length of the
// left run. ok is false when the heuristic could not find a non-degenerate
// split, in which case the caller must emit a leaf instead.
func (bd *builder) partition(records []record, axis core.Axis, nodeBox core.AABB) (mid int, ok bool) {
	switch bd.cfg.Heuristic {
	case ObjectMedianSplit:
		sortByCentroid(records, axis)
		mid = len(records) / 2

	case SpaceMedianSplit:
		plane := (nodeBox.Min.Component(axis) + nodeBox.Max.Component(axis)) / 2
		mid = stablePartition(records, func(r record) bool { return r.centroid.Component(axis) < plane })

	case SpaceAverageSplit:
		plane := meanCentroid(records, axis)
		mid = stablePartition(records, func(r record) bool { return r.centroid.Component(axis) < plane })

	case SurfaceAreaHeuristic:
		buckets := bd.cfg.sahBuckets()
		splitBucket, found := sahSplit(records, axis, nodeBox, buckets)
		if !found {
			return 0, false
		}
		min := nodeBox.Min.Component(axis)
		extent := nodeBox.Max.Component(axis) - min
		mid = stablePartition(records, func(r record) bool {
			return bucketIndex(r.centroid.Component(axis), min, extent, buckets) < splitBucket
		})

	default:
		return 0, false
	}

	return mid, mid > 0 && mid < len(records)
}

func meanCentroid(records []record, axis core.Axis) float64 {
	sum := 0.0
	for _, r := range records {
		sum += r.centroid.Component(axis)
	}
	return sum / float64(len(records))
}
