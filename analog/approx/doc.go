// Package approx generates normalized lowpass prototypes for the classical
// approximation families and estimates the order each family needs to meet
// a set of attenuation constraints.
//
// A prototype is normalized so that its attenuation equals Ap at w = 1
// (magnitude mode) or so that its DC group delay is 1 (delay mode).
// Chebyshev II is the exception in magnitude mode: its stopband edge is
// anchored at the normalized stopband frequency Wan.
//
// Families are looked up through a [Strategy] registry so callers can swap
// an implementation without touching the synthesis pipeline.
package approx
