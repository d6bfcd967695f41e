// Package biquad realizes analog cascade sections as digital second-order
// IIR filters.
//
// [Bilinear] maps an analog section of order ≤ 2 onto [Coefficients]; a
// [Section] runs the result in Direct Form II Transposed and a [Chain]
// cascades sections with an input gain. Frequency responses can be evaluated
// point by point or sampled on a uniform grid with an FFT.
package biquad
