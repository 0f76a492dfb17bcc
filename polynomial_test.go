package polyfield

import (
	"errors"
	"testing"
)

// naiveEvaluate computes sum coefficients[i] * x^i term by term, as the
// reference for Horner's rule.
func naiveEvaluate(curve Curve, coefficients []Scalar, x Scalar) Scalar {
	result := curve.ScalarZero()
	for i, c := range coefficients {
		result = result.Add(c.Mul(scalarPow(curve, x, i)))
	}
	return result
}

func TestNewPolynomialRejectsEmpty(t *testing.T) {
	curve := NewSecp256k1Curve()

	_, err := NewPolynomial(curve, nil)
	if !errors.Is(err, ErrEmptyPolynomial) {
		t.Fatalf("Expected ErrEmptyPolynomial, got %v", err)
	}
}

func TestPolynomialDegree(t *testing.T) {
	curve := NewSecp256k1Curve()

	cases := []struct {
		name     string
		coeffs   []uint64
		expected int
	}{
		{"constant", []uint64{7}, 0},
		{"zero constant", []uint64{0}, 0},
		{"linear", []uint64{1, 2}, 1},
		{"trailing zeros ignored", []uint64{0, 0, 5, 0}, 2},
		{"all zeros", []uint64{0, 0, 0}, 0},
	}

	for _, tc := range cases {
		coeffs := make([]Scalar, len(tc.coeffs))
		for i, v := range tc.coeffs {
			coeffs[i] = curve.ScalarFromUint64(v)
		}
		poly, err := NewPolynomial(curve, coeffs)
		if err != nil {
			t.Fatalf("%s: failed to create polynomial: %v", tc.name, err)
		}
		if got := poly.Degree(); got != tc.expected {
			t.Fatalf("%s: expected degree %d, got %d", tc.name, tc.expected, got)
		}
	}
}

func TestEvaluateMatchesNaive(t *testing.T) {
	for _, curve := range []Curve{NewSecp256k1Curve(), NewEd25519Curve()} {
		poly, err := SamplePolynomial(curve, 7)
		if err != nil {
			t.Fatalf("%s: failed to sample polynomial: %v", curve.Name(), err)
		}

		for i := 0; i < 5; i++ {
			x, err := curve.ScalarRandom()
			if err != nil {
				t.Fatalf("%s: failed to sample point: %v", curve.Name(), err)
			}

			expected := naiveEvaluate(curve, poly.Coefficients(), x)
			if !poly.Evaluate(x).Equal(expected) {
				t.Fatalf("%s: Horner evaluation disagrees with naive evaluation", curve.Name())
			}
		}
	}
}

func TestEvaluateConstantTerm(t *testing.T) {
	curve := NewEd25519Curve()

	secret := curve.ScalarFromUint64(42)
	poly, err := SamplePolynomialWithConstantTerm(curve, 3, secret)
	if err != nil {
		t.Fatalf("Failed to sample polynomial: %v", err)
	}

	if !poly.Evaluate(curve.ScalarZero()).Equal(secret) {
		t.Fatalf("Evaluation at zero should yield the constant term")
	}
}

func TestEvaluateManyIsRestartable(t *testing.T) {
	curve := NewSecp256k1Curve()

	poly, err := SamplePolynomial(curve, 4)
	if err != nil {
		t.Fatalf("Failed to sample polynomial: %v", err)
	}

	points := make([]Scalar, 6)
	for i := range points {
		points[i] = curve.ScalarFromUint64(uint64(i + 1))
	}

	seq := poly.EvaluateMany(points)

	// Two full passes over the same sequence must agree with Evaluate.
	for pass := 0; pass < 2; pass++ {
		i := 0
		for value := range seq {
			if !value.Equal(poly.Evaluate(points[i])) {
				t.Fatalf("Pass %d: sequence value %d disagrees with Evaluate", pass, i)
			}
			i++
		}
		if i != len(points) {
			t.Fatalf("Pass %d: expected %d values, got %d", pass, len(points), i)
		}
	}

	// Early exit must not panic or run off the points.
	count := 0
	for range seq {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("Expected early exit after 2 values, got %d", count)
	}
}

func TestPolynomialAddSub(t *testing.T) {
	curve := NewSecp256k1Curve()

	p, err := SamplePolynomial(curve, 5)
	if err != nil {
		t.Fatalf("Failed to sample p: %v", err)
	}
	q, err := SamplePolynomial(curve, 2)
	if err != nil {
		t.Fatalf("Failed to sample q: %v", err)
	}

	sum, err := p.Add(q)
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	diff, err := p.Sub(q)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}

	x, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("Failed to sample point: %v", err)
	}

	if !sum.Evaluate(x).Equal(p.Evaluate(x).Add(q.Evaluate(x))) {
		t.Fatalf("(p+q)(x) != p(x) + q(x)")
	}
	if !diff.Evaluate(x).Equal(p.Evaluate(x).Sub(q.Evaluate(x))) {
		t.Fatalf("(p-q)(x) != p(x) - q(x)")
	}

	// Subtraction where the subtrahend is longer exercises tail negation.
	diff2, err := q.Sub(p)
	if err != nil {
		t.Fatalf("Sub failed: %v", err)
	}
	if !diff2.Evaluate(x).Equal(q.Evaluate(x).Sub(p.Evaluate(x))) {
		t.Fatalf("(q-p)(x) != q(x) - p(x)")
	}
}

func TestPolynomialAddCurveMismatch(t *testing.T) {
	p, err := SamplePolynomial(NewSecp256k1Curve(), 2)
	if err != nil {
		t.Fatalf("Failed to sample p: %v", err)
	}
	q, err := SamplePolynomial(NewEd25519Curve(), 2)
	if err != nil {
		t.Fatalf("Failed to sample q: %v", err)
	}

	if _, err := p.Add(q); !errors.Is(err, ErrCurveMismatch) {
		t.Fatalf("Expected ErrCurveMismatch, got %v", err)
	}
}

func TestPolynomialMulScalar(t *testing.T) {
	curve := NewEd25519Curve()

	p, err := SamplePolynomial(curve, 4)
	if err != nil {
		t.Fatalf("Failed to sample polynomial: %v", err)
	}
	s, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("Failed to sample scalar: %v", err)
	}
	x, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("Failed to sample point: %v", err)
	}

	scaled := p.MulScalar(s)
	if !scaled.Evaluate(x).Equal(p.Evaluate(x).Mul(s)) {
		t.Fatalf("(s*p)(x) != s * p(x)")
	}
}

func TestZeroizeDoesNotReachConstantTerm(t *testing.T) {
	curve := NewSecp256k1Curve()

	secret := curve.ScalarFromUint64(1234)
	poly, err := SamplePolynomialWithConstantTerm(curve, 2, secret)
	if err != nil {
		t.Fatalf("Failed to sample polynomial: %v", err)
	}

	poly.Zeroize()
	if !secret.Equal(curve.ScalarFromUint64(1234)) {
		t.Fatalf("Zeroizing the polynomial must not touch the caller's scalar")
	}
}

func TestEvaluateDoesNotAliasCoefficients(t *testing.T) {
	curve := NewEd25519Curve()

	// A constant polynomial is the case where Horner has no work to do; the
	// returned value must still be a fresh scalar.
	c0 := curve.ScalarFromUint64(9)
	poly, err := NewPolynomial(curve, []Scalar{c0})
	if err != nil {
		t.Fatalf("Failed to create polynomial: %v", err)
	}

	value := poly.Evaluate(curve.ScalarFromUint64(3))
	value.Zeroize()
	if !poly.Evaluate(curve.ScalarFromUint64(3)).Equal(curve.ScalarFromUint64(9)) {
		t.Fatalf("Zeroizing an evaluation result must not corrupt the polynomial")
	}
}

func TestPolynomialZeroize(t *testing.T) {
	curve := NewSecp256k1Curve()

	poly, err := SamplePolynomial(curve, 3)
	if err != nil {
		t.Fatalf("Failed to sample polynomial: %v", err)
	}

	poly.Zeroize()
	if poly.coefficients != nil {
		t.Fatalf("Coefficients should be released after Zeroize")
	}
}
