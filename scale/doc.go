// SPDX-License-Identifier: EPL-2.0

// Package scale maps raw analysis metrics onto a plotting scale.
//
// Five transforms are available: Logarithmic (base 10), SquareRoot, Linear,
// Quadratic and Exponential (base 10). The logarithm clamps its input to
// SmallestPositive and the exponential saturates at LargestValue, so a
// transformed value is never NaN or infinite for finite input.
//
//	v, err := scale.Logarithmic.Apply(0.01) // -2
package scale
