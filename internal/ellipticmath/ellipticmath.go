// Package ellipticmath provides the complete elliptic integral and Jacobi
// elliptic function evaluations needed by Cauer (elliptic) prototypes.
//
// All routines work with the modulus k (not the parameter m = k²) and use
// descending Landen transformations.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

// Tol is the default Landen convergence threshold.
const Tol = 2.2e-16

// Landen computes the Landen sequence of descending moduli for k.
// If tol < 1 it is interpreted as a convergence threshold; otherwise
// it is interpreted as a fixed iteration count.
func Landen(k, tol float64) []float64 {
	if k == 0 || k == 1.0 {
		return []float64{k}
	}

	var v []float64

	next := func() {
		t := k / (1.0 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		v = append(v, k)
	}

	if tol < 1 {
		for k > tol {
			next()
		}

		return v
	}

	for range int(tol) {
		next()
	}

	return v
}

// productK evaluates K = (π/2)·Π(1 + v[i]) over a Landen sequence.
func productK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1.0 + x
	}

	return prod * math.Pi * 0.5
}

// EllipK computes the complete elliptic integral K(k) and its complement
// K'(k) = K(sqrt(1-k²)).
func EllipK(k, tol float64) (float64, float64) {
	return completeK(k, tol, nil)
}

// completeK is EllipK with an optional Landen sequence of k already at hand.
// Moduli within 1e-6 of 0 or 1 use the logarithmic asymptote.
func completeK(k, tol float64, vk []float64) (float64, float64) {
	const kmin = 1e-6

	kmax := math.Sqrt(1 - kmin*kmin)

	var K, Kp float64

	switch {
	case k == 1.0:
		K = math.Inf(1)
	case k > kmax:
		kp := math.Sqrt((1 - k) * (1 + k))
		L := -math.Log(kp / 4.0)
		K = L + (L-1)*kp*kp/4.0
	default:
		if vk == nil {
			vk = Landen(k, tol)
		}

		K = productK(vk)
	}

	switch {
	case k == 0.0:
		Kp = math.Inf(1)
	case k < kmin:
		L := -math.Log(k / 4.0)
		Kp = L + (L-1.0)*k*k/4.0
	default:
		kp := math.Sqrt((1 - k) * (1 + k))
		Kp = productK(Landen(kp, tol))
	}

	return K, Kp
}

// MinimumOrder returns the real-valued elliptic degree n that satisfies the
// degree equation n = K(k)·K'(k1) / (K'(k)·K(k1)) for selectivity k and
// discrimination k1. Callers round it up to obtain an integer order.
// NaN is returned when either modulus lies outside (0, 1).
func MinimumOrder(k, k1, tol float64) float64 {
	if !(k > 0 && k < 1) || !(k1 > 0 && k1 < 1) {
		return math.NaN()
	}

	K, Kp := EllipK(k, tol)
	K1, K1p := EllipK(k1, tol)

	return (K * K1p) / (Kp * K1)
}

// SNE computes the sn Jacobi elliptic function for a vector of real
// arguments normalized by K (u = 1 corresponds to the quarter period).
func SNE(u []float64, k, tol float64) []float64 {
	v := Landen(k, tol)

	w := make([]float64, len(u))
	for i := range u {
		w[i] = math.Sin(u[i] * math.Pi * 0.5)
	}

	for i := len(v) - 1; i >= 0; i-- {
		for j := range w {
			w[j] = ((1 + v[i]) * w[j]) / (1 + v[i]*w[j]*w[j])
		}
	}

	return w
}

// CDE computes the cd Jacobi elliptic function for an argument normalized
// by K.
func CDE(u complex128, k, tol float64) complex128 {
	v := Landen(k, tol)

	w := cmplx.Cos(u * math.Pi * 0.5)
	for i := len(v) - 1; i >= 0; i-- {
		w = (1 + complex(v[i], 0)) * w / (1.0 + complex(v[i], 0)*w*w)
	}

	return w
}
