package polyfield

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
)

// secp256k1SmoothFactors is the full factorization of the largest smooth
// divisor N of q-1, where q is the secp256k1 group order:
// N = 2^6 * 3 * 149 * 631 = 18051648. The order of the entries is part of
// the configuration; the evaluation engine iterates it as-is.
var secp256k1SmoothFactors = []PrimePower{
	{Prime: 2, Exponent: 6},
	{Prime: 3, Exponent: 1},
	{Prime: 149, Exponent: 1},
	{Prime: 631, Exponent: 1},
}

// secp256k1RootOfUnity is a fixed element of order exactly N in the scalar
// field, big-endian: 7^((q-1)/N) mod q.
const secp256k1RootOfUnity = "ff505dd3dff5ad9b74d05f44edafc9f4a1822c5a5b8002f6ae29a9d632e4db94"

// Secp256k1Curve implements the Curve interface for secp256k1.
type Secp256k1Curve struct{}

// NewSecp256k1Curve creates a new secp256k1 curve instance.
func NewSecp256k1Curve() *Secp256k1Curve {
	return &Secp256k1Curve{}
}

func (c *Secp256k1Curve) Name() string    { return "secp256k1" }
func (c *Secp256k1Curve) ScalarSize() int { return 32 }
func (c *Secp256k1Curve) PointSize() int  { return 33 } // compressed

func (c *Secp256k1Curve) ScalarFromBytes(data []byte) (Scalar, error) {
	if len(data) != 32 {
		return nil, ErrInvalidScalarLength
	}

	scalar := new(btcec.ModNScalar)
	if overflow := scalar.SetBytes((*[32]byte)(data)); overflow != 0 {
		return nil, ErrInvalidScalar
	}

	return &Secp256k1Scalar{inner: scalar}, nil
}

func (c *Secp256k1Curve) ScalarFromUniformBytes(data []byte) (Scalar, error) {
	if len(data) < 32 {
		return nil, fmt.Errorf("need at least 32 bytes for uniform scalar generation, got %d", len(data))
	}

	// Reduce the first 32 bytes modulo the group order. The reduction bias
	// is negligible for q this close to 2^256.
	scalar := new(btcec.ModNScalar)
	scalar.SetBytes((*[32]byte)(data[:32]))
	return &Secp256k1Scalar{inner: scalar}, nil
}

func (c *Secp256k1Curve) ScalarFromUint64(v uint64) Scalar {
	var buf [32]byte
	binary.BigEndian.PutUint64(buf[24:], v)
	scalar := new(btcec.ModNScalar)
	scalar.SetBytes(&buf)
	return &Secp256k1Scalar{inner: scalar}
}

func (c *Secp256k1Curve) ScalarRandom() (Scalar, error) {
	for {
		bytes := make([]byte, 32)
		if _, err := rand.Read(bytes); err != nil {
			return nil, ErrRandomnessGeneration.WithCause(err)
		}

		scalar := new(btcec.ModNScalar)
		if overflow := scalar.SetBytes((*[32]byte)(bytes)); overflow == 0 {
			return &Secp256k1Scalar{inner: scalar}, nil
		}
		// Candidate exceeded the group order, resample.
	}
}

func (c *Secp256k1Curve) ScalarZero() Scalar {
	return &Secp256k1Scalar{inner: new(btcec.ModNScalar)}
}

func (c *Secp256k1Curve) ScalarOne() Scalar {
	scalar := new(btcec.ModNScalar)
	scalar.SetInt(1)
	return &Secp256k1Scalar{inner: scalar}
}

func (c *Secp256k1Curve) PointFromBytes(data []byte) (Point, error) {
	if len(data) != 33 && len(data) != 65 {
		return nil, ErrInvalidPointLength
	}

	pubKey, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPoint, err)
	}

	return &Secp256k1Point{inner: pubKey}, nil
}

func (c *Secp256k1Curve) BasePoint() Point {
	return &Secp256k1Point{inner: btcec.Generator()}
}

func (c *Secp256k1Curve) PointIdentity() Point {
	return &Secp256k1Point{inner: nil}
}

func (c *Secp256k1Curve) RootsOfUnity() (*RootsOfUnity, error) {
	rootBytes, err := hex.DecodeString(secp256k1RootOfUnity)
	if err != nil {
		return nil, fmt.Errorf("malformed root-of-unity constant: %w", err)
	}
	root, err := c.ScalarFromBytes(rootBytes)
	if err != nil {
		return nil, fmt.Errorf("malformed root-of-unity constant: %w", err)
	}

	factors := make([]PrimePower, len(secp256k1SmoothFactors))
	copy(factors, secp256k1SmoothFactors)

	return &RootsOfUnity{
		Factors: factors,
		Order:   subgroupOrder(factors),
		Root:    root,
	}, nil
}

// Secp256k1Scalar implements the Scalar interface.
type Secp256k1Scalar struct {
	inner *btcec.ModNScalar
}

func (s *Secp256k1Scalar) Bytes() []byte {
	var bytes [32]byte
	s.inner.PutBytes(&bytes)
	return bytes[:]
}

func (s *Secp256k1Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *Secp256k1Scalar) Add(other Scalar) Scalar {
	result := new(btcec.ModNScalar)
	result.Add(s.inner).Add(other.(*Secp256k1Scalar).inner)
	return &Secp256k1Scalar{inner: result}
}

func (s *Secp256k1Scalar) Sub(other Scalar) Scalar {
	negated := new(btcec.ModNScalar)
	negated.Set(other.(*Secp256k1Scalar).inner).Negate()
	result := new(btcec.ModNScalar)
	result.Add(s.inner).Add(negated)
	return &Secp256k1Scalar{inner: result}
}

func (s *Secp256k1Scalar) Mul(other Scalar) Scalar {
	result := new(btcec.ModNScalar)
	result.Set(s.inner).Mul(other.(*Secp256k1Scalar).inner)
	return &Secp256k1Scalar{inner: result}
}

func (s *Secp256k1Scalar) Negate() Scalar {
	result := new(btcec.ModNScalar)
	result.Set(s.inner).Negate()
	return &Secp256k1Scalar{inner: result}
}

func (s *Secp256k1Scalar) Invert() (Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	// btcec/v2 only exposes variable-time inversion. The constant-time
	// contract belongs to the backend, not this toolkit; callers needing it
	// should use the ed25519 backend.
	result := new(btcec.ModNScalar)
	result.Set(s.inner).InverseNonConst()
	return &Secp256k1Scalar{inner: result}, nil
}

func (s *Secp256k1Scalar) Equal(other Scalar) bool {
	return s.inner.Equals(other.(*Secp256k1Scalar).inner)
}

func (s *Secp256k1Scalar) IsZero() bool {
	return s.inner.IsZero()
}

func (s *Secp256k1Scalar) Zeroize() {
	s.inner.Zero()
}

// Secp256k1Point implements the Point interface. A nil inner key is the
// point at infinity.
type Secp256k1Point struct {
	inner *btcec.PublicKey
}

func (p *Secp256k1Point) Bytes() []byte {
	if p.inner == nil {
		return make([]byte, 65)
	}
	return p.inner.SerializeUncompressed()
}

func (p *Secp256k1Point) CompressedBytes() []byte {
	if p.inner == nil {
		return make([]byte, 33)
	}
	return p.inner.SerializeCompressed()
}

func (p *Secp256k1Point) String() string {
	return hex.EncodeToString(p.CompressedBytes())
}

func (p *Secp256k1Point) Add(other Point) Point {
	o := other.(*Secp256k1Point)
	if p.inner == nil {
		return o
	}
	if o.inner == nil {
		return p
	}

	var a, b btcec.JacobianPoint
	p.inner.AsJacobian(&a)
	o.inner.AsJacobian(&b)

	var sum btcec.JacobianPoint
	btcec.AddNonConst(&a, &b, &sum)
	if sum.Z.IsZero() {
		// P + (-P)
		return &Secp256k1Point{inner: nil}
	}

	sum.ToAffine()
	return &Secp256k1Point{inner: btcec.NewPublicKey(&sum.X, &sum.Y)}
}

func (p *Secp256k1Point) Sub(other Point) Point {
	return p.Add(other.Negate())
}

func (p *Secp256k1Point) Mul(scalar Scalar) Point {
	if p.inner == nil {
		return p
	}

	s := scalar.(*Secp256k1Scalar)
	if s.IsZero() {
		return &Secp256k1Point{inner: nil}
	}

	var point btcec.JacobianPoint
	p.inner.AsJacobian(&point)

	var result btcec.JacobianPoint
	btcec.ScalarMultNonConst(s.inner, &point, &result)

	result.ToAffine()
	return &Secp256k1Point{inner: btcec.NewPublicKey(&result.X, &result.Y)}
}

func (p *Secp256k1Point) Negate() Point {
	if p.inner == nil {
		return p
	}

	var jac btcec.JacobianPoint
	p.inner.AsJacobian(&jac)
	jac.Y.Negate(1)
	jac.ToAffine()
	return &Secp256k1Point{inner: btcec.NewPublicKey(&jac.X, &jac.Y)}
}

func (p *Secp256k1Point) Equal(other Point) bool {
	o := other.(*Secp256k1Point)
	if p.inner == nil || o.inner == nil {
		return p.inner == nil && o.inner == nil
	}
	return p.inner.IsEqual(o.inner)
}

func (p *Secp256k1Point) IsIdentity() bool {
	return p.inner == nil
}
