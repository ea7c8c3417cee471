package core

// Logger is the minimal logging surface construction-time diagnostics use,
// e.g. accel.Config's optional build-time diagnostics. The query hot path
// (Intersect, CountIntersectionTests) never logs.
type Logger interface {
	Printf(format string, args ...interface{})
}
