// SPDX-License-Identifier: EPL-2.0

package scale

import (
	"fmt"
	"math"
	"strings"
)

const (
	// SmallestPositive is the floor applied before taking a logarithm.
	SmallestPositive = 1e-323
	// LargestExponent is the largest power of ten Exponential will compute.
	LargestExponent = 308
	// LargestValue is returned by Exponential above LargestExponent.
	LargestValue = 1e308
)

// Kind selects how metric values are mapped before plotting.
type Kind int

const (
	Logarithmic Kind = iota
	SquareRoot
	Linear
	Quadratic
	Exponential
)

var labels = [...]string{
	Logarithmic: "Logarithmic [base 10]",
	SquareRoot:  "Square Root",
	Linear:      "Linear",
	Quadratic:   "Quadratic",
	Exponential: "Exponential [base 10]",
}

var shortNames = map[string]Kind{
	"log":         Logarithmic,
	"logarithmic": Logarithmic,
	"sqrt":        SquareRoot,
	"square-root": SquareRoot,
	"linear":      Linear,
	"quadratic":   Quadratic,
	"exp":         Exponential,
	"exponential": Exponential,
}

// Kinds lists every valid Kind in presentation order.
func Kinds() []Kind {
	return []Kind{Logarithmic, SquareRoot, Linear, Quadratic, Exponential}
}

func (k Kind) valid() bool { return k >= Logarithmic && k <= Exponential }

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return labels[k]
}

// Apply maps v through the transform. The result is always finite for
// finite input.
func (k Kind) Apply(v float64) (float64, error) {
	switch k {
	case Logarithmic:
		return math.Log10(math.Max(v, SmallestPositive)), nil
	case SquareRoot:
		return math.Sqrt(v), nil
	case Linear:
		return v, nil
	case Quadratic:
		return v * v, nil
	case Exponential:
		if v > LargestExponent {
			return LargestValue, nil
		}
		return math.Pow(10, v), nil
	}

	return 0, fmt.Errorf("%w: %d", ErrInvalidTransformKind, int(k))
}

// ApplyAll transforms values in place.
func (k Kind) ApplyAll(values []float64) error {
	for i, v := range values {
		out, err := k.Apply(v)
		if err != nil {
			return err
		}
		values[i] = out
	}

	return nil
}

// Parse accepts a short name ("log", "sqrt", "linear", "quadratic", "exp")
// or the long label returned by String.
func Parse(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if k, ok := shortNames[name]; ok {
		return k, nil
	}

	for _, k := range Kinds() {
		if strings.EqualFold(k.String(), strings.TrimSpace(s)) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidTransformKind, s)
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTransformKind, int(k))
	}

	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*k = parsed

	return nil
}
