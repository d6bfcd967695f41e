package approx

import (
	"fmt"
	"strings"
)

// Family identifies an approximation family.
type Family int

const (
	Butterworth Family = iota
	Chebyshev1
	Chebyshev2
	Legendre
	Cauer
	Bessel
	Gauss
)

var familyNames = [...]string{
	Butterworth: "Butterworth",
	Chebyshev1:  "Cheby I",
	Chebyshev2:  "Cheby II",
	Legendre:    "Legendre",
	Cauer:       "Cauer",
	Bessel:      "Bessel",
	Gauss:       "Gauss",
}

var familyKeys = [...]string{
	Butterworth: "butterworth",
	Chebyshev1:  "chebyshev1",
	Chebyshev2:  "chebyshev2",
	Legendre:    "legendre",
	Cauer:       "cauer",
	Bessel:      "bessel",
	Gauss:       "gauss",
}

var familyAliases = map[string]Family{
	"bw":        Butterworth,
	"ch1":       Chebyshev1,
	"cheby1":    Chebyshev1,
	"cheby i":   Chebyshev1,
	"ch2":       Chebyshev2,
	"cheby2":    Chebyshev2,
	"cheby ii":  Chebyshev2,
	"lg":        Legendre,
	"optimum-l": Legendre,
	"c":         Cauer,
	"elliptic":  Cauer,
	"b":         Bessel,
	"thomson":   Bessel,
	"g":         Gauss,
	"gaussian":  Gauss,
}

// Families lists every supported family in declaration order.
func Families() []Family {
	return []Family{Butterworth, Chebyshev1, Chebyshev2, Legendre, Cauer, Bessel, Gauss}
}

// String returns the display name used in filter names.
func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}

	return familyNames[f]
}

// Key returns the lowercase identifier used in configuration files.
func (f Family) Key() string {
	if f < 0 || int(f) >= len(familyKeys) {
		return ""
	}

	return familyKeys[f]
}

// ParseFamily resolves a configuration key, display name or common alias.
func ParseFamily(s string) (Family, error) {
	k := strings.ToLower(strings.TrimSpace(s))

	for i, key := range familyKeys {
		if k == key || k == strings.ToLower(familyNames[i]) {
			return Family(i), nil
		}
	}

	if f, ok := familyAliases[k]; ok {
		return f, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownFamily, s)
}

// Mode selects how a prototype is normalized.
type Mode int

const (
	// ModeMagnitude places the passband edge (attenuation Ap) at w = 1.
	ModeMagnitude Mode = iota
	// ModeDelay scales the prototype to unit group delay at DC.
	ModeDelay
)
