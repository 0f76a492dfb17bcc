package polyfield

import (
	"crypto/rand"
	"errors"
	"fmt"
)

// Curve defines the scalar-field and group capabilities the toolkit
// consumes. The secret-sharing and fast-evaluation code only ever sees this
// interface, never a concrete curve.
type Curve interface {
	// Metadata
	Name() string
	ScalarSize() int
	PointSize() int

	// Scalar operations
	ScalarFromBytes([]byte) (Scalar, error)
	ScalarFromUniformBytes([]byte) (Scalar, error)
	ScalarFromUint64(uint64) Scalar
	ScalarRandom() (Scalar, error)
	ScalarZero() Scalar
	ScalarOne() Scalar

	// Point operations
	PointFromBytes([]byte) (Point, error)
	BasePoint() Point
	PointIdentity() Point

	// RootsOfUnity describes the distinguished smooth-order subgroup of the
	// scalar field's multiplicative group, used by the fast evaluation
	// engine. Returns ErrNoSmoothSubgroup if the curve does not publish one.
	RootsOfUnity() (*RootsOfUnity, error)
}

// Scalar represents an element of the curve's scalar field. All arithmetic
// is modulo the (prime) group order.
type Scalar interface {
	// Serialization
	Bytes() []byte
	String() string

	// Arithmetic operations
	Add(Scalar) Scalar
	Sub(Scalar) Scalar
	Mul(Scalar) Scalar
	Negate() Scalar
	Invert() (Scalar, error)

	// Comparison
	Equal(Scalar) bool
	IsZero() bool

	// Security
	Zeroize()
}

// Point represents an element of the curve group.
type Point interface {
	// Serialization
	Bytes() []byte
	CompressedBytes() []byte
	String() string

	// Arithmetic operations
	Add(Point) Point
	Sub(Point) Point
	Mul(Scalar) Point
	Negate() Point

	// Comparison
	Equal(Point) bool
	IsIdentity() bool
}

// PrimePower is one (prime, exponent) entry of a factorization table.
type PrimePower struct {
	Prime    int
	Exponent int
}

// RootsOfUnity is the fixed configuration of a curve's smooth-order
// subgroup: the full factorization of its order N and a generator of order
// exactly N. Factors keep a fixed order; divisor selection and recursive
// splitting in the evaluation engine must iterate it identically.
type RootsOfUnity struct {
	Factors []PrimePower
	Order   int
	Root    Scalar
}

// CurveType identifies the supported curve backends.
type CurveType string

const (
	Secp256k1 CurveType = "secp256k1"
	Ed25519   CurveType = "ed25519"
)

// NewCurve creates a curve instance by type.
func NewCurve(curveType CurveType) (Curve, error) {
	switch curveType {
	case Secp256k1:
		return NewSecp256k1Curve(), nil
	case Ed25519:
		return NewEd25519Curve(), nil
	default:
		return nil, fmt.Errorf("unsupported curve type: %s", curveType)
	}
}

// Common backend errors.
var (
	ErrInvalidScalarLength = errors.New("invalid scalar length")
	ErrInvalidPointLength  = errors.New("invalid point length")
	ErrInvalidScalar       = errors.New("invalid scalar value")
	ErrInvalidPoint        = errors.New("invalid point")
	ErrScalarZero          = errors.New("scalar is zero")
)

// SecureRandom generates cryptographically secure random bytes.
func SecureRandom(size int) ([]byte, error) {
	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return nil, ErrRandomnessGeneration.WithCause(err)
	}
	return bytes, nil
}

// subgroupOrder multiplies out a factorization table.
func subgroupOrder(factors []PrimePower) int {
	order := 1
	for _, pp := range factors {
		for i := 0; i < pp.Exponent; i++ {
			order *= pp.Prime
		}
	}
	return order
}
