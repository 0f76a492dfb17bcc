package polyfield

import (
	"fmt"
)

// Fast evaluation of polynomials on smooth-order subgroups of the scalar
// field's multiplicative group. For an evaluation size m dividing the
// subgroup order N, the forward transform returns the polynomial's value at
// all m powers of an order-m root of unity in O(m log m) field operations,
// replacing m independent Horner passes. The inverse transform is the
// structural twin running on inverse generator powers with a 1/f scaling
// per recursion level.
//
// The factor table order is load-bearing: divisor selection and recursive
// splitting must walk the same ordered factorization, or the butterflies
// combine against the wrong generator.

// scalarPow raises base to a non-negative integer power by square and
// multiply.
func scalarPow(curve Curve, base Scalar, exp int) Scalar {
	result := curve.ScalarOne()
	acc := base
	for e := exp; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result.Mul(acc)
		}
		acc = acc.Mul(acc)
	}
	return result
}

// scalarPowers returns base^0, base^1, ..., base^(count-1).
func scalarPowers(curve Curve, base Scalar, count int) []Scalar {
	powers := make([]Scalar, count)
	next := curve.ScalarOne()
	for i := 0; i < count; i++ {
		powers[i] = next
		next = next.Mul(base)
	}
	return powers
}

// factorize expresses n as a product of the table's primes, preserving the
// table order. Returns false if n has a factor outside the table.
func factorize(n int, table []PrimePower) ([]PrimePower, bool) {
	left := n
	var factors []PrimePower
	for _, pp := range table {
		count := 0
		for left%pp.Prime == 0 {
			left /= pp.Prime
			count++
		}
		if count > 0 {
			factors = append(factors, PrimePower{Prime: pp.Prime, Exponent: count})
		}
	}
	return factors, left == 1
}

// minimalDivisorAbove finds the smallest divisor of the factored integer
// that is strictly greater than lowBar, enumerating every exponent
// combination of the table.
func minimalDivisorAbove(lowBar int, table []PrimePower) (int, bool) {
	combinations := 1
	for _, pp := range table {
		combinations *= pp.Exponent + 1
	}

	best := 0
	for i := 0; i < combinations; i++ {
		divisor := 1
		rem := i
		for _, pp := range table {
			take := rem % (pp.Exponent + 1)
			rem /= pp.Exponent + 1
			for k := 0; k < take; k++ {
				divisor *= pp.Prime
			}
		}
		if divisor > lowBar && (best == 0 || divisor < best) {
			best = divisor
		}
	}
	return best, best != 0
}

// splitFactor returns the prime to split on at the given recursion depth,
// walking the ordered factorization with multiplicity. Zero means the
// factorization is exhausted.
func splitFactor(factors []PrimePower, factorIndex int) int {
	for _, pp := range factors {
		if factorIndex < pp.Exponent {
			return pp.Prime
		}
		factorIndex -= pp.Exponent
	}
	return 0
}

// splitCoefficients distributes coefficients into factor sub-polynomials by
// index residue: coefficient i goes to sub-polynomial i mod factor at
// position i div factor (decimation in frequency).
func splitCoefficients(coefficients []Scalar, factor int) [][]Scalar {
	subs := make([][]Scalar, factor)
	for i := range subs {
		subs[i] = make([]Scalar, 0, len(coefficients)/factor+1)
	}
	for i, c := range coefficients {
		subs[i%factor] = append(subs[i%factor], c)
	}
	return subs
}

// fftInternal evaluates the coefficient slice at all size powers of the
// current generator. genPowers always holds the powers of the top-level
// generator; the generator at this depth is genPowers[stride].
func fftInternal(curve Curve, coefficients []Scalar, factors []PrimePower, size, factorIndex int, genPowers []Scalar) []Scalar {
	stride := len(genPowers) / size

	factor := splitFactor(factors, factorIndex)
	if factor == 0 {
		// No factors left to split on: plain Horner at each root.
		out := make([]Scalar, size)
		for i := 0; i < size; i++ {
			root := genPowers[(i*stride)%len(genPowers)]
			out[i] = hornerEvaluate(curve, coefficients, root)
		}
		return out
	}

	subs := splitCoefficients(coefficients, factor)
	subEvals := make([][]Scalar, factor)
	for r, sub := range subs {
		subEvals[r] = fftInternal(curve, sub, factors, size/factor, factorIndex+1, genPowers)
	}

	// Size-factor butterfly: result[idx] combines one value from each
	// sub-evaluation, weighted by powers of the idx-th root.
	out := make([]Scalar, size)
	for idx := 0; idx < size; idx++ {
		powDeg := idx * stride
		subIdx := ((idx * factor) % size) / factor
		acc := curve.ScalarZero()
		for r := 0; r < factor; r++ {
			weight := genPowers[(powDeg*r)%len(genPowers)]
			acc = acc.Add(weight.Mul(subEvals[r][subIdx]))
		}
		out[idx] = acc
	}
	return out
}

// FFT evaluates the polynomial at all size-th roots of unity, ordered by
// power of the generator: out[k] = p(g^k). The size must divide the curve's
// smooth subgroup order.
func FFT(poly *Polynomial, size int) ([]Scalar, error) {
	curve := poly.Curve()
	cfg, err := curve.RootsOfUnity()
	if err != nil {
		return nil, err
	}

	if size < 1 || cfg.Order%size != 0 {
		return nil, ErrFFTSizeUnsupported.WithDetails("size %d, subgroup order %d", size, cfg.Order)
	}
	factors, ok := factorize(size, cfg.Factors)
	if !ok {
		return nil, ErrFFTSizeUnsupported.WithDetails("size %d, subgroup order %d", size, cfg.Order)
	}

	generator := scalarPow(curve, cfg.Root, cfg.Order/size)
	genPowers := scalarPowers(curve, generator, size)

	return fftInternal(curve, poly.coefficients, factors, size, 0, genPowers), nil
}

// MinimalEvaluationSize returns the smallest divisor of the curve's smooth
// subgroup order strictly greater than degree.
func MinimalEvaluationSize(curve Curve, degree int) (int, error) {
	cfg, err := curve.RootsOfUnity()
	if err != nil {
		return 0, err
	}

	size, ok := minimalDivisorAbove(degree, cfg.Factors)
	if !ok {
		return 0, ErrDegreeTooLarge.WithDetails(
			"degree %d, maximum supported %d", degree, cfg.Order-1)
	}
	return size, nil
}

// FastEvaluateAllRoots batch-evaluates the polynomial at all m-th roots of
// unity for m the smallest supported size exceeding the polynomial's
// degree. out[k] = p(g^k) for g the order-m generator; pair with
// RootOfUnity to recover the evaluation points.
func FastEvaluateAllRoots(poly *Polynomial) ([]Scalar, error) {
	size, err := MinimalEvaluationSize(poly.Curve(), poly.Degree())
	if err != nil {
		return nil, err
	}
	return FFT(poly, size)
}

// RootOfUnity derives the generator of the order-size subgroup used by FFT:
// the curve's primitive root raised to N/size.
func RootOfUnity(curve Curve, size int) (Scalar, error) {
	cfg, err := curve.RootsOfUnity()
	if err != nil {
		return nil, err
	}
	if size < 1 || cfg.Order%size != 0 {
		return nil, ErrFFTSizeUnsupported.WithDetails("size %d, subgroup order %d", size, cfg.Order)
	}
	return scalarPow(curve, cfg.Root, cfg.Order/size), nil
}

// inverseFFTInternal recovers the coefficients of the polynomial whose
// value at generator^i is evals[i]. At each level the evaluations regroup
// into factor smaller instances: a size-factor inverse DFT per residue
// class recovers the sub-polynomials' evaluations on the order size/factor
// subgroup, and the recursion stitches their coefficients back by index
// residue.
func inverseFFTInternal(curve Curve, evals []Scalar, factors []PrimePower, factorIndex int, generator Scalar) ([]Scalar, error) {
	size := len(evals)
	factor := splitFactor(factors, factorIndex)
	if factor == 0 {
		return evals, nil
	}

	postSize := size / factor
	postGenerator := scalarPow(curve, generator, factor)

	// generator^(size-1) = generator^-1; its powers index the inverse DFT
	// matrix and undo the per-evaluation twiddle.
	genInv := scalarPow(curve, generator, size-1)
	genInvPowers := scalarPowers(curve, genInv, size)
	invDFTPowers := scalarPowers(curve, scalarPow(curve, generator, postSize*(factor-1)), factor)

	factorInv, err := curve.ScalarFromUint64(uint64(factor)).Invert()
	if err != nil {
		return nil, fmt.Errorf("failed to invert split factor %d: %w", factor, err)
	}

	// Regroup evaluations by residue modulo postSize: aVecs[i][r] holds the
	// value at generator^(i + r*postSize), the factor roots that share the
	// same image under x -> x^factor.
	aVecs := make([][]Scalar, postSize)
	for i := range aVecs {
		aVecs[i] = make([]Scalar, 0, factor)
	}
	for i, e := range evals {
		aVecs[i%postSize] = append(aVecs[i%postSize], e)
	}

	subFFTs := make([][]Scalar, factor)
	for j := range subFFTs {
		subFFTs[j] = make([]Scalar, postSize)
	}
	for i := 0; i < postSize; i++ {
		for j := 0; j < factor; j++ {
			dot := curve.ScalarZero()
			for r := 0; r < factor; r++ {
				dot = dot.Add(invDFTPowers[(j*r)%factor].Mul(aVecs[i][r]))
			}
			twiddleInv := genInvPowers[(i*j)%size]
			subFFTs[j][i] = twiddleInv.Mul(factorInv).Mul(dot)
		}
	}

	merged := make([]Scalar, size)
	for j := 0; j < factor; j++ {
		coeffs, err := inverseFFTInternal(curve, subFFTs[j], factors, factorIndex+1, postGenerator)
		if err != nil {
			return nil, err
		}
		for k, c := range coeffs {
			merged[j+k*factor] = c
		}
	}
	return merged, nil
}

// InverseFFT interpolates the unique polynomial of degree < len(evals)
// whose value at generator^i is evals[i], for the order-len(evals)
// generator of the curve's smooth subgroup. The length must divide the
// subgroup order.
func InverseFFT(curve Curve, evals []Scalar) (*Polynomial, error) {
	cfg, err := curve.RootsOfUnity()
	if err != nil {
		return nil, err
	}

	size := len(evals)
	if size < 1 || cfg.Order%size != 0 {
		return nil, ErrFFTSizeUnsupported.WithDetails("size %d, subgroup order %d", size, cfg.Order)
	}
	factors, ok := factorize(size, cfg.Factors)
	if !ok {
		return nil, ErrFFTSizeUnsupported.WithDetails("size %d, subgroup order %d", size, cfg.Order)
	}

	generator := scalarPow(curve, cfg.Root, cfg.Order/size)
	coefficients, err := inverseFFTInternal(curve, evals, factors, 0, generator)
	if err != nil {
		return nil, err
	}
	return NewPolynomial(curve, coefficients)
}

// MultiplyPolynomials computes the product a*b by evaluating both operands
// on a subgroup large enough to hold the product's degree, multiplying
// point-wise and inverse-transforming.
func MultiplyPolynomials(a, b *Polynomial) (*Polynomial, error) {
	curve := a.Curve()
	if curve.Name() != b.Curve().Name() {
		return nil, ErrCurveMismatch
	}

	if a.IsZero() || b.IsZero() {
		return NewPolynomial(curve, []Scalar{curve.ScalarZero()})
	}

	size, err := MinimalEvaluationSize(curve, a.Degree()+b.Degree())
	if err != nil {
		return nil, err
	}

	evalsA, err := FFT(a, size)
	if err != nil {
		return nil, err
	}
	evalsB, err := FFT(b, size)
	if err != nil {
		return nil, err
	}

	product := make([]Scalar, size)
	for i := range product {
		product[i] = evalsA[i].Mul(evalsB[i])
	}

	return InverseFFT(curve, product)
}
