package polyfield

import (
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// CommitmentBlindingSize is the byte length of hash-commitment blinding
// factors. 256 bits of blinding makes the commitment statistically hiding.
const CommitmentBlindingSize = 32

const pedersenBlindingDomain = "polyfield/pedersen-blinding-generator"

// HashCommit commits to a message under a fresh random blinding factor.
// The commitment is publishable immediately; message and blinding together
// form the decommitment.
func HashCommit(message []byte) (commitment, blinding []byte, err error) {
	blinding, err = SecureRandom(CommitmentBlindingSize)
	if err != nil {
		return nil, nil, err
	}

	commitment, err = HashCommitWithBlinding(message, blinding)
	if err != nil {
		return nil, nil, err
	}
	return commitment, blinding, nil
}

// HashCommitWithBlinding commits to a message under a caller-supplied
// blinding factor, as keyed blake2b of the message.
func HashCommitWithBlinding(message, blinding []byte) ([]byte, error) {
	if len(blinding) != CommitmentBlindingSize {
		return nil, fmt.Errorf("blinding factor must be %d bytes, got %d", CommitmentBlindingSize, len(blinding))
	}

	hasher, err := blake2b.New256(blinding)
	if err != nil {
		return nil, fmt.Errorf("failed to create keyed hash: %w", err)
	}
	hasher.Write(message)
	return hasher.Sum(nil), nil
}

// OpenHashCommitment checks a decommitment against a commitment. A mismatch
// is ErrCommitmentMismatch, a normal protocol outcome.
func OpenHashCommitment(commitment, message, blinding []byte) error {
	recomputed, err := HashCommitWithBlinding(message, blinding)
	if err != nil {
		return err
	}
	if !SecureCompare(commitment, recomputed) {
		return ErrCommitmentMismatch
	}
	return nil
}

// Commitment is a commitment realized as a group element.
type Commitment struct {
	curve Curve
	point Point
}

// NewCommitment wraps a commitment point.
func NewCommitment(curve Curve, point Point) (*Commitment, error) {
	if curve == nil || point == nil {
		return nil, fmt.Errorf("curve and point must be non-nil")
	}
	return &Commitment{curve: curve, point: point}, nil
}

// Point returns the commitment point.
func (c *Commitment) Point() Point {
	return c.point
}

// Bytes returns the serialized commitment.
func (c *Commitment) Bytes() []byte {
	return c.point.CompressedBytes()
}

// Equal checks two commitments for equality.
func (c *Commitment) Equal(other *Commitment) bool {
	if c == nil || other == nil {
		return false
	}
	return c.point.Equal(other.point)
}

// PedersenCommitment is a perfectly hiding commitment scheme over a curve:
// Com(v, r) = v*G + r*H for an H with unknown discrete log relative to G.
type PedersenCommitment struct {
	curve     Curve
	generator Point // G
	blinding  Point // H
}

// NewPedersenCommitment sets up the scheme. H is derived from the base
// point by hashing into the scalar field, so every instance over a curve
// agrees on the generators.
func NewPedersenCommitment(curve Curve) (*PedersenCommitment, error) {
	generator := curve.BasePoint()

	scalar, err := HashToScalar(curve, pedersenBlindingDomain, generator.CompressedBytes())
	if err != nil {
		return nil, fmt.Errorf("failed to derive blinding generator: %w", err)
	}
	if scalar.IsZero() {
		scalar = curve.ScalarOne()
	}

	return &PedersenCommitment{
		curve:     curve,
		generator: generator,
		blinding:  generator.Mul(scalar),
	}, nil
}

// Commit commits to value under the given randomness.
func (pc *PedersenCommitment) Commit(value, randomness Scalar) (*Commitment, error) {
	if value == nil || randomness == nil {
		return nil, fmt.Errorf("value and randomness must be non-nil")
	}

	point := pc.generator.Mul(value).Add(pc.blinding.Mul(randomness))
	return NewCommitment(pc.curve, point)
}

// Verify checks that a commitment opens to (value, randomness). A mismatch
// is ErrCommitmentMismatch.
func (pc *PedersenCommitment) Verify(commitment *Commitment, value, randomness Scalar) error {
	expected, err := pc.Commit(value, randomness)
	if err != nil {
		return err
	}
	if !commitment.Equal(expected) {
		return ErrCommitmentMismatch
	}
	return nil
}
