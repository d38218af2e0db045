// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evaluate

// Topic-exposure breakpoints. A topic with tens of thousands of papers
// has a citation distribution dominated by sheer volume, so the volume
// discount scales with how saturated the topic is.
const (
	exposureHigh   = 10000
	exposureMedium = 5000
	exposureLow    = 1000
)

// TopicMultiplier converts the total hit count of a search topic into the
// multiplicative over-exposure factor applied to the volume penalty. The
// function is a monotonic step function of the hit count. A negative
// totalHits means the count was unavailable and yields the neutral 1.0.
func TopicMultiplier(totalHits int) float64 {
	switch {
	case totalHits >= exposureHigh:
		return 2.0
	case totalHits >= exposureMedium:
		return 1.5
	case totalHits >= exposureLow:
		return 1.2
	default:
		return 1.0
	}
}
