// Package detection finds candidate UI-element regions in a pixel buffer
// and classifies them.
//
// # Pipeline Position
//
// Detection sits between the raw buffer and layout inference: FindRegions
// produces rectangles, Classify turns rectangles into typed elements, and
// the layout package consumes the element list.
//
// # Region Detection
//
// Candidate regions are grown from a coarse seed grid. A seed qualifies
// when its surrounding window has consistent color (low variance) and a
// contrasting border ring; the region then expands along the two axes
// through the seed while the color similarity predicate holds. This is a
// bounded heuristic, not connected-component labeling: non-rectangular
// shapes can be under- or over-estimated, and overlapping duplicates from
// adjacent seeds are possible. The output is judged by its determinism and
// stability, not by optical correctness.
//
// # Classification
//
// Classification is a fixed decision table over aspect ratio and area,
// evaluated top to bottom with first match winning. Every verdict carries
// a heuristic confidence in [0,1]. Rectangles matching no rule are
// discarded rather than reported as errors.
package detection
