// Package filter synthesizes analog filters from a high-level [Spec].
//
// [New] runs the full pipeline: prototype order selection, Q-constrained
// order search over an approximation strategy, denormalization to the
// requested kind with stopband-edge correction, and grouping of the final
// roots into pole and zero pairs. The resulting [Filter] can then be split
// into second-order stages, inspected, or realized as a digital biquad
// cascade.
//
// Edge frequencies in a Spec are angular (rad/s). Roots of a synthesized
// filter are Hz-scaled complex frequencies.
package filter
