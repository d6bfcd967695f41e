package approx

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-analog/analog/zpk"
	"github.com/cwbudde/algo-analog/internal/ellipticmath"
)

const (
	cauerEpsilon   = 2.220446049250313e-16
	arcSNMaxIter   = 10
	arcSNImagCheck = 1e-7
	nomeSeriesLen  = 7
)

type cauer struct{}

// Prototype returns the elliptic prototype with ripple Ap up to w = 1 and
// stopband attenuation Aa. Poles and zeros are placed with the Jacobi
// elliptic functions; the stopband edge follows from the order.
//
//nolint:funlen,cyclop
func (cauer) Prototype(n int, c Constraints) (zpk.ZPK, error) {
	epsSq := math.Expm1(math.Ln10 * c.Ap / 10)
	stopSq := math.Expm1(math.Ln10 * c.Aa / 10)

	k1Sq := epsSq / stopSq
	if !(epsSq > 0) || !(k1Sq > 0 && k1Sq < 1) {
		return zpk.ZPK{}, fmt.Errorf("%w: cauer needs 0 < Ap < Aa", ErrConstraints)
	}

	if n == 1 {
		p := -math.Sqrt(1 / epsSq)
		return zpk.ZPK{Poles: []complex128{complex(p, 0)}, Gain: -p}, nil
	}

	m := selectivityParam(n, k1Sq)
	if !(m > 0 && m < 1) {
		return zpk.ZPK{}, fmt.Errorf("%w: degree equation has no solution for order %d", ErrConstraints, n)
	}

	k := math.Sqrt(m)
	bigK, _ := ellipticmath.EllipK(k, ellipticmath.Tol)
	k1 := math.Sqrt(k1Sq)
	bigK1, _ := ellipticmath.EllipK(k1, ellipticmath.Tol)

	if !finitePositive(bigK) || !finitePositive(bigK1) {
		return zpk.ZPK{}, fmt.Errorf("%w: complete elliptic integral diverged", ErrConstraints)
	}

	var sn, cn, dn []float64

	zeros := make([]complex128, 0, n)

	for j := 1 - n%2; j < n; j += 2 {
		s, cv, d, ok := jacobiSCD(float64(j)*bigK/float64(n), k)
		if !ok {
			return zpk.ZPK{}, fmt.Errorf("%w: jacobi functions failed", ErrConstraints)
		}

		sn = append(sn, s)
		cn = append(cn, cv)
		dn = append(dn, d)

		if math.Abs(s) > cauerEpsilon {
			z := complex(0, 1/(k*s))
			zeros = append(zeros, z, cmplx.Conj(z))
		}
	}

	r := arcSC1(1/math.Sqrt(epsSq), k1Sq)
	if !finitePositive(r) {
		return zpk.ZPK{}, fmt.Errorf("%w: inverse jacobi function failed", ErrConstraints)
	}

	v0 := bigK * r / (float64(n) * bigK1)

	sv, cv, dv, ok := jacobiSCD(v0, math.Sqrt(1-m))
	if !ok {
		return zpk.ZPK{}, fmt.Errorf("%w: jacobi functions failed", ErrConstraints)
	}

	poles := make([]complex128, 0, n)

	for i := range sn {
		den := 1 - (dn[i]*sv)*(dn[i]*sv)
		if math.Abs(den) <= cauerEpsilon {
			return zpk.ZPK{}, fmt.Errorf("%w: pole placement diverged", ErrConstraints)
		}

		p := -complex(cn[i]*dn[i]*sv*cv, sn[i]*dv) / complex(den, 0)

		if math.Abs(imag(p)) <= cauerEpsilon*cmplx.Abs(p) {
			poles = append(poles, complex(real(p), 0))
			continue
		}

		poles = append(poles, p, cmplx.Conj(p))
	}

	gain := real(zpk.ProductNeg(poles) / zpk.ProductNeg(zeros))
	if n%2 == 0 {
		gain /= math.Sqrt(1 + epsSq)
	}

	if gain == 0 || math.IsNaN(gain) || math.IsInf(gain, 0) {
		return zpk.ZPK{}, fmt.Errorf("%w: degenerate gain", ErrConstraints)
	}

	return zpk.ZPK{Zeros: zeros, Poles: poles, Gain: gain}, nil
}

// OptimalOrder solves the degree equation n = K(k)K'(k1) / (K'(k)K(k1)) with
// selectivity k = 1/Wan and discrimination k1 = eps/sqrt(10^(Aa/10) - 1).
func (cauer) OptimalOrder(c Constraints) int {
	if !(c.Wan > 1) {
		return 1
	}

	k1 := c.Eps / RippleFactor(c.Aa)

	return ceilOrder(ellipticmath.MinimumOrder(1/c.Wan, k1, ellipticmath.Tol))
}

func finitePositive(x float64) bool {
	return x > 0 && !math.IsInf(x, 0)
}

// jacobiSCD evaluates sn, cn and dn at the real argument u for modulus k.
func jacobiSCD(u, k float64) (float64, float64, float64, bool) {
	if !(k >= 0 && k < 1) {
		return 0, 0, 0, false
	}

	bigK, _ := ellipticmath.EllipK(k, ellipticmath.Tol)
	if !finitePositive(bigK) {
		return 0, 0, 0, false
	}

	un := u / bigK

	sn := ellipticmath.SNE([]float64{un}, k, ellipticmath.Tol)[0]
	if math.IsNaN(sn) || math.IsInf(sn, 0) {
		return 0, 0, 0, false
	}

	dn2 := 1 - k*k*sn*sn
	if dn2 < -1e-12 {
		return 0, 0, 0, false
	}

	dn := math.Sqrt(math.Max(dn2, 0))
	cd := real(ellipticmath.CDE(complex(un, 0), k, ellipticmath.Tol))

	return sn, cd * dn, dn, true
}

// arcSC1 returns the real inverse of sc(u, k') at w through the imaginary
// inverse sn: sc(u, k') = w is equivalent to sn(ju, k) = jw.
func arcSC1(w, m float64) float64 {
	z := arcSN(complex(0, w), m)
	if math.Abs(real(z)) > arcSNImagCheck*math.Max(1, math.Abs(imag(z))) {
		return math.NaN()
	}

	return imag(z)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1 - k) * (1 + k))
}

// arcSN inverts sn for parameter m = k² by descending Landen iterations.
func arcSN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return cmplx.NaN()
	}

	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcSNMaxIter - 1 {
		kn := ks[len(ks)-1]
		if cmplx.Abs(kn) == 0 {
			break
		}

		kp := complement(kn)
		ks = append(ks, (1-kp)/(1+kp))
	}

	bigK := math.Pi / 2
	for _, kn := range ks[1:] {
		bigK *= real(1 + kn)
	}

	wn := w
	for i := range len(ks) - 1 {
		den := (1 + ks[i+1]) * (1 + complement(ks[i]*wn))
		if den == 0 {
			return cmplx.NaN()
		}

		wn = 2 * wn / den
	}

	return complex(bigK, 0) * (2 / math.Pi) * cmplx.Asin(wn)
}

// selectivityParam solves the degree equation for the parameter m = k² of
// an order-n design with discrimination parameter m1, using the nome series.
func selectivityParam(n int, m1 float64) float64 {
	k1 := math.Sqrt(m1)
	bigK1, _ := ellipticmath.EllipK(k1, ellipticmath.Tol)
	bigK1p, _ := ellipticmath.EllipK(math.Sqrt(1-m1), ellipticmath.Tol)

	if !finitePositive(bigK1) || !finitePositive(bigK1p) {
		return math.NaN()
	}

	q := math.Pow(math.Exp(-math.Pi*bigK1p/bigK1), 1/float64(n))

	num, den := 0.0, 1.0
	for i := range nomeSeriesLen {
		num += math.Pow(q, float64(i*(i+1)))
		if i > 0 {
			den += 2 * math.Pow(q, float64(i*i))
		}
	}

	return 16 * q * math.Pow(num/den, 4)
}
