// Package kernel implements the kernel functions used to turn normalised
// distances into weights.
//
// Every kernel takes a distance already divided by the bandwidth. Values
// outside [0, 1] are evaluated as-is; callers decide how to bound them.
package kernel

import (
	"fmt"
	"math"
	"strings"
)

// Kernel identifies a kernel function.
type Kernel int

const (
	// None disables the kernel transform.
	None Kernel = iota
	// Uniform is the constant kernel 1/2.
	Uniform
	// Triangular is 1 - d.
	Triangular
	// Epanechnikov is 3/4 (1 - d²).
	Epanechnikov
	// Quartic is 15/16 (1 - d²)².
	Quartic
	// Gaussian is the standard normal density.
	Gaussian
)

var names = [...]string{
	None:         "",
	Uniform:      "uniform",
	Triangular:   "triangular",
	Epanechnikov: "epanechnikov",
	Quartic:      "quartic",
	Gaussian:     "gaussian",
}

// invSqrt2Pi is (2π)^-½.
var invSqrt2Pi = 1 / math.Sqrt(2*math.Pi)

// Parse returns the kernel for a name. Matching is case-insensitive and the
// empty string selects None.
func Parse(name string) (Kernel, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, n := range names {
		if n == name {
			return Kernel(k), nil
		}
	}
	return None, fmt.Errorf("unknown kernel %q", name)
}

// String returns the lower-case kernel name; None is the empty string.
func (k Kernel) String() string {
	if k < 0 || int(k) >= len(names) {
		return fmt.Sprintf("Kernel(%d)", int(k))
	}
	return names[k]
}

// Valid reports whether k is a known kernel, including None.
func (k Kernel) Valid() bool {
	return k >= None && k <= Gaussian
}

// MarshalText implements encoding.TextMarshaler.
func (k Kernel) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kernel %d", int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kernel) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Weight evaluates the kernel at normalised distance d.
// None returns d unchanged.
func (k Kernel) Weight(d float64) float64 {
	switch k {
	case Uniform:
		return 0.5
	case Triangular:
		return 1 - d
	case Epanechnikov:
		return 0.75 * (1 - d*d)
	case Quartic:
		u := 1 - d*d
		return (15.0 / 16.0) * u * u
	case Gaussian:
		return invSqrt2Pi * math.Exp(-d*d/2)
	default:
		return d
	}
}
