package polyfield

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"filippo.io/edwards25519"
)

// ed25519SmoothFactors is the full factorization of the largest smooth
// divisor N of l-1, where l is the ed25519 group order:
// N = 2^2 * 3 * 11 = 132. Entry order is fixed configuration.
var ed25519SmoothFactors = []PrimePower{
	{Prime: 2, Exponent: 2},
	{Prime: 3, Exponent: 1},
	{Prime: 11, Exponent: 1},
}

// ed25519RootOfUnity is a fixed element of order exactly N in the scalar
// field, little-endian (the edwards25519 canonical encoding):
// 2^((l-1)/N) mod l.
const ed25519RootOfUnity = "8216849ea8a3f0334da1ee2d87f55b315cd93df88b33ca0b627df7facf3fd10b"

// Ed25519Curve implements the Curve interface for ed25519.
type Ed25519Curve struct{}

// NewEd25519Curve creates a new ed25519 curve instance.
func NewEd25519Curve() *Ed25519Curve {
	return &Ed25519Curve{}
}

func (c *Ed25519Curve) Name() string    { return "ed25519" }
func (c *Ed25519Curve) ScalarSize() int { return 32 }
func (c *Ed25519Curve) PointSize() int  { return 32 }

func (c *Ed25519Curve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != 32 {
		return nil, ErrInvalidScalarLength
	}

	scalar, err := new(edwards25519.Scalar).SetCanonicalBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScalar, err)
	}

	return &Ed25519Scalar{inner: scalar}, nil
}

func (c *Ed25519Curve) ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < 32 {
		return nil, ErrInvalidScalarLength
	}

	uniform := make([]byte, 64)
	copy(uniform, data)

	scalar, _ := edwards25519.NewScalar().SetUniformBytes(uniform)
	return &Ed25519Scalar{inner: scalar}, nil
}

func (c *Ed25519Curve) ScalarFromUint64(v uint64) Scalar {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[:8], v)
	scalar, _ := new(edwards25519.Scalar).SetCanonicalBytes(buf[:])
	return &Ed25519Scalar{inner: scalar}
}

func (c *Ed25519Curve) ScalarRandom() (Scalar, error) {
	bytes := make([]byte, 64)
	if _, err := rand.Read(bytes); err != nil {
		return nil, ErrRandomnessGeneration.WithCause(err)
	}

	scalar, _ := edwards25519.NewScalar().SetUniformBytes(bytes)
	return &Ed25519Scalar{inner: scalar}, nil
}

func (c *Ed25519Curve) ScalarZero() Scalar {
	return &Ed25519Scalar{inner: edwards25519.NewScalar()}
}

func (c *Ed25519Curve) ScalarOne() Scalar {
	return c.ScalarFromUint64(1)
}

func (c *Ed25519Curve) PointFromBytes(data []byte) (Point, error) {
	if len(data) != 32 {
		return nil, ErrInvalidPointLength
	}

	point, err := new(edwards25519.Point).SetBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}

	return &Ed25519Point{inner: point}, nil
}

func (c *Ed25519Curve) BasePoint() Point {
	return &Ed25519Point{inner: edwards25519.NewGeneratorPoint()}
}

func (c *Ed25519Curve) PointIdentity() Point {
	return &Ed25519Point{inner: edwards25519.NewIdentityPoint()}
}

func (c *Ed25519Curve) RootsOfUnity() (*RootsOfUnity, error) {
	rootBytes, err := hex.DecodeString(ed25519RootOfUnity)
	if err != nil {
		return nil, fmt.Errorf("malformed root-of-unity constant: %w", err)
	}
	root, err := c.ScalarFromBytes(rootBytes)
	if err != nil {
		return nil, fmt.Errorf("malformed root-of-unity constant: %w", err)
	}

	factors := make([]PrimePower, len(ed25519SmoothFactors))
	copy(factors, ed25519SmoothFactors)

	return &RootsOfUnity{
		Factors: factors,
		Order:   subgroupOrder(factors),
		Root:    root,
	}, nil
}

// Ed25519Scalar implements the Scalar interface.
type Ed25519Scalar struct {
	inner *edwards25519.Scalar
}

func (s *Ed25519Scalar) Bytes() []byte {
	return s.inner.Bytes()
}

func (s *Ed25519Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *Ed25519Scalar) Add(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Add(s.inner, other.(*Ed25519Scalar).inner)
	return &Ed25519Scalar{inner: result}
}

func (s *Ed25519Scalar) Sub(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Subtract(s.inner, other.(*Ed25519Scalar).inner)
	return &Ed25519Scalar{inner: result}
}

func (s *Ed25519Scalar) Mul(other Scalar) Scalar {
	result := edwards25519.NewScalar()
	result.Multiply(s.inner, other.(*Ed25519Scalar).inner)
	return &Ed25519Scalar{inner: result}
}

func (s *Ed25519Scalar) Negate() Scalar {
	result := edwards25519.NewScalar()
	result.Negate(s.inner)
	return &Ed25519Scalar{inner: result}
}

func (s *Ed25519Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	result := edwards25519.NewScalar()
	result.Invert(s.inner)
	return &Ed25519Scalar{inner: result}, nil
}

func (s *Ed25519Scalar) Equal(other Scalar) bool {
	return s.inner.Equal(other.(*Ed25519Scalar).inner) == 1
}

func (s *Ed25519Scalar) IsZero() bool {
	return s.inner.Equal(edwards25519.NewScalar()) == 1
}

func (s *Ed25519Scalar) Zeroize() {
	s.inner = edwards25519.NewScalar()
}

// Ed25519Point implements the Point interface.
type Ed25519Point struct {
	inner *edwards25519.Point
}

func (p *Ed25519Point) Bytes() []byte {
	return p.inner.Bytes()
}

func (p *Ed25519Point) CompressedBytes() []byte {
	return p.Bytes() // already compressed
}

func (p *Ed25519Point) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *Ed25519Point) Add(other Point) Point {
	result := edwards25519.NewIdentityPoint()
	result.Add(p.inner, other.(*Ed25519Point).inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Sub(other Point) Point {
	result := edwards25519.NewIdentityPoint()
	result.Subtract(p.inner, other.(*Ed25519Point).inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Mul(scalar Scalar) Point {
	result := edwards25519.NewIdentityPoint()
	result.ScalarMult(scalar.(*Ed25519Scalar).inner, p.inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Negate() Point {
	result := edwards25519.NewIdentityPoint()
	result.Negate(p.inner)
	return &Ed25519Point{inner: result}
}

func (p *Ed25519Point) Equal(other Point) bool {
	return p.inner.Equal(other.(*Ed25519Point).inner) == 1
}

func (p *Ed25519Point) IsIdentity() bool {
	return p.inner.Equal(edwards25519.NewIdentityPoint()) == 1
}
