package accel

import (
	"math"

	"github.com/kaelrun/go-bvh-accel/pkg/core"
)

// bucketIndex returns the bucket a centroid value falls into, given the
// node's extent on the candidate axis, clamped to [0, buckets-1].
func bucketIndex(value, axisMin, axisExtent float64, buckets int) int {
	idx := int(float64(buckets) * (value - axisMin) / axisExtent)
	if idx < 0 {
		idx = 0
	}
	if idx >= buckets {
		idx = buckets - 1
	}
	return idx
}

// sahSplit evaluates the B candidate splits of the surface area heuristic
// and returns the bucket boundary with the lowest estimated cost, along
// with whether that cost actually beats the cost of leaving the node as a
// leaf. Candidate i puts buckets [0, i) on the left and [i, buckets) on the
// right, so i = 0 is a valid (if useless) candidate with an empty left
// side; the leaf-cost comparison below is what keeps it from ever winning
// in practice.
func sahSplit(records []record, axis core.Axis, nodeBox core.AABB, buckets int) (split int, found bool) {
	axisMin := nodeBox.Min.Component(axis)
	axisExtent := nodeBox.Max.Component(axis) - axisMin
	if axisExtent <= 0 {
		return 0, false
	}

	counts := make([]int, buckets)
	boxes := make([]core.AABB, buckets)
	for i := range boxes {
		boxes[i] = core.Empty()
	}
	for _, r := range records {
		b := bucketIndex(r.centroid.Component(axis), axisMin, axisExtent, buckets)
		counts[b]++
		boxes[b] = boxes[b].Union(r.bbox)
	}

	nodeArea := nodeBox.SurfaceArea()
	leafCost := float64(len(records))

	bestCost := math.Inf(1)
	bestSplit := -1
	for i := 0; i < buckets; i++ {
		leftBox, leftCount := core.Empty(), 0
		for j := 0; j < i; j++ {
			leftBox = leftBox.Union(boxes[j])
			leftCount += counts[j]
		}
		rightBox, rightCount := core.Empty(), 0
		for j := i; j < buckets; j++ {
			rightBox = rightBox.Union(boxes[j])
			rightCount += counts[j]
		}

		cost := 1 + (float64(leftCount)*leftBox.SurfaceArea()+float64(rightCount)*rightBox.SurfaceArea())/nodeArea
		if cost < bestCost {
			bestCost = cost
			bestSplit = i
		}
	}

	if bestSplit < 0 || bestCost >= leafCost {
		return 0, false
	}
	return bestSplit, true
}
