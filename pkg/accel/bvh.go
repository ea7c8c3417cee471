package accel

import "github.com/kaelrun/go-bvh-accel/pkg/core"

// node is one entry of the flattened tree. Leaves have count > 0 and carry
// a (start, count) range into BVH.primitives; internal nodes have count ==
// 0 and carry child indices into BVH.nodes instead of pointers, so the
// whole tree serializes as two flat slices with no self-referential
// lifetimes to manage.
type node struct {
	bbox        core.AABB
	left, right int // child node indices; unused (left=right=-1) on leaves
	start, count int // primitive range; count == 0 marks an internal node
}

func (n *node) isLeaf() bool {
	return n.count > 0
}

// BVH is an immutable bounding volume hierarchy over a fixed set of
// primitives. It owns the (possibly reordered) primitive storage and is
// safe for concurrent read-only queries once Build returns.
type BVH struct {
	primitives []core.Primitive
	nodes      []node
	root       int // -1 for an empty BVH
}

// Build constructs a BVH over primitives using cfg's heuristic and axis
// selection. It returns an error if any primitive reports a non-finite
// bounding box; a partially built BVH is never returned.
func Build(primitives []core.Primitive, cfg Config) (*BVH, error) {
	if len(primitives) == 0 {
		return &BVH{root: -1}, nil
	}

	records := make([]record, len(primitives))
	for i, p := range primitives {
		box := p.BoundingBox()
		if !box.IsFinite() {
			cfg.logf("accel: rejecting primitive %d, bounding box %v is not finite", i, box)
			return nil, core.WrapConstructionf(core.ErrDegenerateBounds, "primitive %d", i)
		}
		records[i] = record{prim: p, bbox: box, centroid: box.Centroid()}
	}

	bd := &builder{cfg: cfg}
	root := bd.build(records, 0, 0)

	ordered := make([]core.Primitive, len(records))
	for i, r := range records {
		ordered[i] = r.prim
	}

	return &BVH{primitives: ordered, nodes: bd.nodes, root: root}, nil
}

// BoundingBox returns the union bbox of every primitive in the tree, or the
// empty AABB for a BVH built over zero primitives.
func (b *BVH) BoundingBox() core.AABB {
	if b.root < 0 {
		return core.Empty()
	}
	return b.nodes[b.root].bbox
}

// Intersect finds the nearest hit within [tMin, tMax], descending the tree
// front-to-back and pruning the far child whenever the near child already
// produced a hit it cannot beat.
func (b *BVH) Intersect(ray core.Ray, tMin, tMax float64) (core.Hit, bool) {
	if b.root < 0 {
		return core.Hit{}, false
	}
	return b.intersectNode(b.root, ray, tMin, tMax)
}

// CountIntersectionTests returns the number of primitive-level tests a call
// to Intersect with the same arguments would perform, counting 2 per
// internal node visited for its pair of bbox slab tests. The near/far
// pruning decision is mirrored exactly so the count reflects actual work.
func (b *BVH) CountIntersectionTests(ray core.Ray, tMin, tMax float64) int {
	if b.root < 0 {
		return 0
	}
	return b.countNode(b.root, ray, tMin, tMax)
}

func (b *BVH) intersectNode(idx int, ray core.Ray, tMin, tMax float64) (core.Hit, bool) {
	n := &b.nodes[idx]
	if n.isLeaf() {
		var best core.Hit
		found := false
		localMax := tMax
		for i := n.start; i < n.start+n.count; i++ {
			if hit, ok := b.primitives[i].Intersect(ray, tMin, localMax); ok {
				best = hit
				localMax = hit.T
				found = true
			}
		}
		return best, found
	}

	tL, okL := boundedBoxEntry(b.nodes[n.left].bbox, ray, tMax)
	tR, okR := boundedBoxEntry(b.nodes[n.right].bbox, ray, tMax)

	switch {
	case !okL && !okR:
		return core.Hit{}, false
	case okL && !okR:
		return b.intersectNode(n.left, ray, tMin, tMax)
	case !okL && okR:
		return b.intersectNode(n.right, ray, tMin, tMax)
	}

	firstIdx, secondIdx, tSecond := n.left, n.right, tR
	if tR < tL {
		firstIdx, secondIdx, tSecond = n.right, n.left, tL
	}

	hit, ok := b.intersectNode(firstIdx, ray, tMin, tMax)
	if !ok {
		return b.intersectNode(secondIdx, ray, tMin, tMax)
	}
	if tSecond <= hit.T {
		if secondHit, secondOk := b.intersectNode(secondIdx, ray, tMin, hit.T); secondOk && secondHit.T < hit.T {
			return secondHit, true
		}
	}
	return hit, true
}

// countNode mirrors intersectNode's control flow exactly: the same
// near-child choice (left on ties), and the far child is counted only when
// intersectNode would descend into it, under the same upper bound.
func (b *BVH) countNode(idx int, ray core.Ray, tMin, tMax float64) int {
	n := &b.nodes[idx]
	if n.isLeaf() {
		total := 0
		for i := n.start; i < n.start+n.count; i++ {
			total += b.primitives[i].CountIntersectionTests(ray, tMin, tMax)
		}
		return total
	}

	tL, okL := boundedBoxEntry(b.nodes[n.left].bbox, ray, tMax)
	tR, okR := boundedBoxEntry(b.nodes[n.right].bbox, ray, tMax)

	switch {
	case !okL && !okR:
		return 2
	case okL && !okR:
		return 2 + b.countNode(n.left, ray, tMin, tMax)
	case !okL && okR:
		return 2 + b.countNode(n.right, ray, tMin, tMax)
	}

	firstIdx, secondIdx, tSecond := n.left, n.right, tR
	if tR < tL {
		firstIdx, secondIdx, tSecond = n.right, n.left, tL
	}

	firstCount := b.countNode(firstIdx, ray, tMin, tMax)
	hit, ok := b.intersectNode(firstIdx, ray, tMin, tMax)
	if !ok {
		return 2 + firstCount + b.countNode(secondIdx, ray, tMin, tMax)
	}
	if tSecond <= hit.T {
		return 2 + firstCount + b.countNode(secondIdx, ray, tMin, hit.T)
	}
	return 2 + firstCount
}

// boundedBoxEntry wraps AABB.RayIntersect with the query's upper bound: a
// box whose nearest entry is beyond tMax cannot contain a relevant hit.
func boundedBoxEntry(box core.AABB, ray core.Ray, tMax float64) (float64, bool) {
	t, ok := box.RayIntersect(ray)
	if !ok || t > tMax {
		return 0, false
	}
	return t, true
}
