package polyfield

import (
	"fmt"
	"iter"
)

// Polynomial is an immutable polynomial over a curve's scalar field,
// coefficients[i] holding the coefficient of x^i. The stored length and the
// mathematical degree are decoupled: trailing zero coefficients are legal
// and ignored by Degree.
type Polynomial struct {
	curve        Curve
	coefficients []Scalar
}

// NewPolynomial wraps a coefficient sequence. The sequence must be non-empty;
// a polynomial always has at least a constant term, possibly zero.
func NewPolynomial(curve Curve, coefficients []Scalar) (*Polynomial, error) {
	if len(coefficients) == 0 {
		return nil, ErrEmptyPolynomial
	}

	owned := make([]Scalar, len(coefficients))
	copy(owned, coefficients)

	return &Polynomial{
		curve:        curve,
		coefficients: owned,
	}, nil
}

// SamplePolynomial samples a polynomial with exactly degree+1 uniformly
// random coefficients.
func SamplePolynomial(curve Curve, degree int) (*Polynomial, error) {
	if degree < 0 {
		return nil, fmt.Errorf("degree must be non-negative, got %d", degree)
	}

	coefficients := make([]Scalar, degree+1)
	for i := range coefficients {
		coeff, err := curve.ScalarRandom()
		if err != nil {
			return nil, fmt.Errorf("failed to sample coefficient %d: %w", i, err)
		}
		coefficients[i] = coeff
	}

	return &Polynomial{curve: curve, coefficients: coefficients}, nil
}

// SamplePolynomialWithConstantTerm samples a random polynomial of the given
// degree with coefficients[0] fixed to constantTerm. This is how a dealer
// embeds a secret. The constant term is copied; zeroizing the polynomial
// must not reach the caller's scalar.
func SamplePolynomialWithConstantTerm(curve Curve, degree int, constantTerm Scalar) (*Polynomial, error) {
	poly, err := SamplePolynomial(curve, degree)
	if err != nil {
		return nil, err
	}
	poly.coefficients[0] = curve.ScalarZero().Add(constantTerm)
	return poly, nil
}

// Curve returns the curve whose scalar field the coefficients live in.
func (p *Polynomial) Curve() Curve {
	return p.curve
}

// Evaluate evaluates the polynomial at x using Horner's rule: a single pass
// from the highest coefficient down, n multiplications and n additions.
func (p *Polynomial) Evaluate(x Scalar) Scalar {
	return hornerEvaluate(p.curve, p.coefficients, x)
}

// EvaluateMany returns a lazy sequence of Evaluate(x) for each point. The
// sequence holds no state and can be ranged over multiple times.
func (p *Polynomial) EvaluateMany(points []Scalar) iter.Seq[Scalar] {
	return func(yield func(Scalar) bool) {
		for _, x := range points {
			if !yield(p.Evaluate(x)) {
				return
			}
		}
	}
}

// Degree returns the index of the last non-zero coefficient, or zero if all
// coefficients are zero. Trailing zeros in the stored sequence do not count
// towards the degree.
func (p *Polynomial) Degree() int {
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		if !p.coefficients[i].IsZero() {
			return i
		}
	}
	return 0
}

// IsZero reports whether every coefficient is zero.
func (p *Polynomial) IsZero() bool {
	for _, c := range p.coefficients {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// Coefficients returns a copy of the coefficient sequence, constant term
// first.
func (p *Polynomial) Coefficients() []Scalar {
	out := make([]Scalar, len(p.coefficients))
	copy(out, p.coefficients)
	return out
}

// Add returns the polynomial p+q. Coefficients are added index-wise; the
// longer operand's tail is carried over unchanged.
func (p *Polynomial) Add(q *Polynomial) (*Polynomial, error) {
	if p.curve.Name() != q.curve.Name() {
		return nil, ErrCurveMismatch
	}

	longest := len(p.coefficients)
	if len(q.coefficients) > longest {
		longest = len(q.coefficients)
	}

	sum := make([]Scalar, longest)
	for i := range sum {
		switch {
		case i >= len(p.coefficients):
			sum[i] = q.coefficients[i]
		case i >= len(q.coefficients):
			sum[i] = p.coefficients[i]
		default:
			sum[i] = p.coefficients[i].Add(q.coefficients[i])
		}
	}

	return &Polynomial{curve: p.curve, coefficients: sum}, nil
}

// Sub returns the polynomial p-q. Where q is longer than p, the tail terms
// are negated directly rather than subtracted from a constructed zero.
func (p *Polynomial) Sub(q *Polynomial) (*Polynomial, error) {
	if p.curve.Name() != q.curve.Name() {
		return nil, ErrCurveMismatch
	}

	longest := len(p.coefficients)
	if len(q.coefficients) > longest {
		longest = len(q.coefficients)
	}

	diff := make([]Scalar, longest)
	for i := range diff {
		switch {
		case i >= len(p.coefficients):
			diff[i] = q.coefficients[i].Negate()
		case i >= len(q.coefficients):
			diff[i] = p.coefficients[i]
		default:
			diff[i] = p.coefficients[i].Sub(q.coefficients[i])
		}
	}

	return &Polynomial{curve: p.curve, coefficients: diff}, nil
}

// MulScalar returns the polynomial s*p.
func (p *Polynomial) MulScalar(s Scalar) *Polynomial {
	scaled := make([]Scalar, len(p.coefficients))
	for i, c := range p.coefficients {
		scaled[i] = c.Mul(s)
	}
	return &Polynomial{curve: p.curve, coefficients: scaled}
}

// Zeroize clears the coefficients. The polynomial must not be used after.
func (p *Polynomial) Zeroize() {
	for i, c := range p.coefficients {
		if c != nil {
			c.Zeroize()
		}
		p.coefficients[i] = nil
	}
	p.coefficients = nil
}

// hornerEvaluate folds a raw coefficient slice at x from the highest
// coefficient down. An empty slice evaluates to zero; the evaluation engine
// produces empty sub-polynomials when a split outruns the coefficients.
// The accumulator starts as a fresh scalar so the result never aliases a
// coefficient, even for constant polynomials.
func hornerEvaluate(curve Curve, coefficients []Scalar, x Scalar) Scalar {
	result := curve.ScalarZero()
	if len(coefficients) == 0 {
		return result
	}

	result = result.Add(coefficients[len(coefficients)-1])
	for i := len(coefficients) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(coefficients[i])
	}
	return result
}
