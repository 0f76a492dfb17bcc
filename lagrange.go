package polyfield

import (
	"fmt"
)

// LagrangeInterpolateAtZero reconstructs p(0) for the unique polynomial p of
// degree < len(points) passing through (points[i], values[i]):
//
//	p(0) = sum_i values[i] * prod_{j != i} points[j] / (points[j] - points[i])
//
// Duplicate evaluation points are rejected up front; letting them through
// would surface as an inversion-of-zero failure deep in the field backend.
// One field inversion is spent in total, via batch inversion of the
// denominator products.
func LagrangeInterpolateAtZero(curve Curve, points, values []Scalar) (Scalar, error) {
	if len(points) == 0 || len(points) != len(values) {
		return nil, ErrPointValueMismatch.WithDetails("%d points, %d values", len(points), len(values))
	}

	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].Equal(points[j]) {
				return nil, ErrDuplicatePoints.WithDetails("positions %d and %d", i, j)
			}
		}
	}

	numerators := make([]Scalar, len(points))
	denominators := make([]Scalar, len(points))
	for i, xi := range points {
		num := curve.ScalarOne()
		den := curve.ScalarOne()
		for j, xj := range points {
			if i == j {
				continue
			}
			num = num.Mul(xj)
			den = den.Mul(xj.Sub(xi))
		}
		numerators[i] = num
		denominators[i] = den
	}

	inverses, err := BatchInvert(curve, denominators)
	if err != nil {
		return nil, fmt.Errorf("failed to invert denominators: %w", err)
	}

	result := curve.ScalarZero()
	for i, yi := range values {
		weight := numerators[i].Mul(inverses[i])
		result = result.Add(yi.Mul(weight))
	}
	return result, nil
}

// LagrangeBasis evaluates the j-th Lagrange basis polynomial over the nodes
// xs at x:
//
//	l_j(x) = prod_{m != j} (x - xs[m]) / (xs[j] - xs[m])
//
// Used for interpolation at arbitrary points and for computing resharing
// weights.
func LagrangeBasis(curve Curve, x Scalar, j int, xs []Scalar) (Scalar, error) {
	if j < 0 || j >= len(xs) {
		return nil, fmt.Errorf("basis index %d out of range for %d nodes", j, len(xs))
	}

	xj := xs[j]
	num := curve.ScalarOne()
	den := curve.ScalarOne()
	for m, xm := range xs {
		if m == j {
			continue
		}
		num = num.Mul(x.Sub(xm))
		den = den.Mul(xj.Sub(xm))
	}

	denInv, err := den.Invert()
	if err != nil {
		return nil, ErrDuplicatePoints.WithCause(err)
	}
	return num.Mul(denInv), nil
}
