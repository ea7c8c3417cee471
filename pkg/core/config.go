package core

// Tuning constants shared by the accelerator build and the shapes that
// feed it. They are plain constants rather than a config object: the
// core's configuration surface (pkg/accel.Config) already carries the
// per-build overrides; these are the defaults it falls back to.
const (
	// LeafThreshold is the maximum number of primitives a leaf may hold
	// before the build must subdivide further.
	LeafThreshold = 2

	// DefaultSAHBuckets is the reference bucket count for the surface
	// area heuristic.
	DefaultSAHBuckets = 12
)
