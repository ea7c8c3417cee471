// Package accel implements the bounding volume hierarchy that turns a flat
// collection of core.Primitive values into a logarithmic-cost nearest-hit
// query.
package accel

import "github.com/kaelrun/go-bvh-accel/pkg/core"

// Heuristic selects how a node's records are partitioned into a left and
// right child during the build.
type Heuristic int

const (
	// SurfaceAreaHeuristic bins records into buckets along the candidate
	// axis and picks the partition with the lowest estimated traversal
	// cost, falling back to a leaf when no split beats the leaf cost.
	SurfaceAreaHeuristic Heuristic = iota
	// ObjectMedianSplit sorts records by centroid on the candidate axis
	// and splits at the middle index.
	ObjectMedianSplit
	// SpaceMedianSplit splits at the midpoint of the node's bbox extent
	// on the candidate axis.
	SpaceMedianSplit
	// SpaceAverageSplit splits at the mean of the records' centroids on
	// the candidate axis.
	SpaceAverageSplit
)

// AxisMode selects how the build picks a candidate axis at each node.
type AxisMode int

const (
	// Alternate cycles X -> Y -> Z -> X as depth increases, starting from
	// a configurable axis at the root.
	Alternate AxisMode = iota
	// Longest picks the bbox's longest axis independently at every node.
	Longest
)

// AxisSelection pairs an AxisMode with the starting axis Alternate needs.
type AxisSelection struct {
	Mode      AxisMode
	StartAxis core.Axis // only consulted when Mode == Alternate
}

// AlternateFrom builds an Alternate axis selection starting at the given axis.
func AlternateFrom(start core.Axis) AxisSelection {
	return AxisSelection{Mode: Alternate, StartAxis: start}
}

// LongestAxisSelection builds a Longest axis selection.
func LongestAxisSelection() AxisSelection {
	return AxisSelection{Mode: Longest}
}

// axisAt returns the candidate axis for a node at the given depth with the
// given node bbox, honoring this selection's mode.
func (s AxisSelection) axisAt(depth int, bbox core.AABB) core.Axis {
	if s.Mode == Longest {
		return bbox.LongestAxis()
	}
	axis := s.StartAxis
	for i := 0; i < depth; i++ {
		axis = axis.Next()
	}
	return axis
}

// Config controls how Build partitions a primitive set into a tree.
type Config struct {
	Heuristic     Heuristic
	AxisSelection AxisSelection

	// LeafThreshold overrides core.LeafThreshold when non-zero.
	LeafThreshold int
	// SAHBuckets overrides core.DefaultSAHBuckets when non-zero, and is
	// only consulted when Heuristic == SurfaceAreaHeuristic.
	SAHBuckets int

	// Logger, if non-nil, receives construction-time diagnostics (e.g. a
	// node falling back to a leaf because no split beat the leaf cost).
	// The query hot path never logs.
	Logger core.Logger
}

// logf writes a construction diagnostic if a Logger is configured.
func (c Config) logf(format string, args ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}

// DefaultConfig returns a reasonable default: space-median splitting with
// the bbox's longest axis chosen at every node.
func DefaultConfig() Config {
	return Config{
		Heuristic:     SpaceMedianSplit,
		AxisSelection: LongestAxisSelection(),
	}
}

func (c Config) leafThreshold() int {
	if c.LeafThreshold > 0 {
		return c.LeafThreshold
	}
	return core.LeafThreshold
}

func (c Config) sahBuckets() int {
	if c.SAHBuckets > 0 {
		return c.SAHBuckets
	}
	return core.DefaultSAHBuckets
}
