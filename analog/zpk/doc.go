// Package zpk provides the zero/pole/gain representation of analog transfer
// functions together with the numeric utilities the synthesis pipeline
// needs: decimal rounding of root sets, transfer-function conversion and
// frequency-response sampling.
//
// Roots are complex s-plane values. A [ZPK] describes
//
//	H(s) = Gain · Π(s - Zeros[i]) / Π(s - Poles[i])
//
// Rounding is explicit: every transform takes a [Precision] rather than
// relying on an ambient convention.
package zpk
