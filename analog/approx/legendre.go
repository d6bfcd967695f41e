package approx

import (
	"math"

	"github.com/cwbudde/algo-analog/analog/zpk"
)

type legendre struct{}

// Prototype returns the optimum-L (Papoulis) prototype: the steepest
// monotonic magnitude for the order, with |H(jw)|² = 1/(1 + eps²·L_n(w²)).
func (legendre) Prototype(n int, c Constraints) (zpk.ZPK, error) {
	if !(c.Eps > 0) {
		return zpk.ZPK{}, ErrConstraints
	}

	d := polyAdd([]float64{1}, polyScale(optimumL(n), c.Eps*c.Eps))

	return allPoleFromSquaredMagnitude(d)
}

func (l legendre) OptimalOrder(c Constraints) int {
	return searchOrder(l, c, reachesStopband(c))
}

// optimumL returns the ascending coefficients of L_n(u), normalized so that
// L_n(0) = 0 and L_n(1) = 1.
//
// For odd n = 2k+1, L_n(u) = ∫ v(x)² dx over [-1, 2u-1] with
// v = Σ a_i P_i and a_i = (2i+1)/(√2·(k+1)).
// For even n = 2k+2, the integrand is (x+1)·v(x)² and only the a_i whose
// index has the parity of k are kept, a_i = (2i+1)/√((k+1)(k+2)).
func optimumL(n int) []float64 {
	var integrand []float64

	if n%2 == 1 {
		k := (n - 1) / 2

		v := []float64{0}
		for i := 0; i <= k; i++ {
			a := float64(2*i+1) / (math.Sqrt2 * float64(k+1))
			v = polyAdd(v, polyScale(legendreP(i), a))
		}

		integrand = polyMul(v, v)
	} else {
		k := (n - 2) / 2
		norm := math.Sqrt(float64((k + 1) * (k + 2)))

		v := []float64{0}
		for i := k % 2; i <= k; i += 2 {
			v = polyAdd(v, polyScale(legendreP(i), float64(2*i+1)/norm))
		}

		integrand = polyMul([]float64{1, 1}, polyMul(v, v))
	}

	f := polyIntegral(integrand)
	l := polyCompose(f, []float64{-1, 2})

	// L_n(0) = F(-1) - F(-1); clear the rounding residue.
	l[0] = 0

	return l[:n+1]
}

// legendreP returns the ascending coefficients of the Legendre polynomial
// P_i from (m+1)P_{m+1} = (2m+1)x·P_m - m·P_{m-1}.
func legendreP(i int) []float64 {
	prev := []float64{1}
	if i == 0 {
		return prev
	}

	cur := []float64{0, 1}

	for m := 1; m < i; m++ {
		next := polyAdd(
			polyScale(polyMul([]float64{0, 1}, cur), float64(2*m+1)),
			polyScale(prev, -float64(m)),
		)

		prev, cur = cur, polyScale(next, 1/float64(m+1))
	}

	return cur
}
