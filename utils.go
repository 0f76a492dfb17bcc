package polyfield

import (
	"crypto/subtle"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// HashToScalar hashes arbitrary data to a scalar with a domain separator,
// drawing 64 uniform bytes from SHAKE-256 so the reduction is unbiased for
// both backends.
func HashToScalar(curve Curve, domain string, data ...[]byte) (Scalar, error) {
	shake := sha3.NewShake256()
	shake.Write([]byte(domain))
	shake.Write([]byte(curve.Name()))
	for _, d := range data {
		shake.Write(d)
	}

	uniform := make([]byte, 64)
	if _, err := shake.Read(uniform); err != nil {
		return nil, fmt.Errorf("shake read failed: %w", err)
	}

	return curve.ScalarFromUniformBytes(uniform)
}

// ChallengeHash computes a Fiat-Shamir challenge over a transcript. Each
// element is length-prefixed so transcripts cannot be reparsed ambiguously.
func ChallengeHash(curve Curve, domain string, transcript ...[]byte) (Scalar, error) {
	shake := sha3.NewShake256()
	shake.Write([]byte(domain))
	shake.Write([]byte(curve.Name()))

	var length [4]byte
	for _, data := range transcript {
		binary.BigEndian.PutUint32(length[:], uint32(len(data)))
		shake.Write(length[:])
		shake.Write(data)
	}

	uniform := make([]byte, 64)
	if _, err := shake.Read(uniform); err != nil {
		return nil, fmt.Errorf("shake read failed: %w", err)
	}

	return curve.ScalarFromUniformBytes(uniform)
}

// SecureCompare performs constant-time comparison of byte slices.
func SecureCompare(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// ZeroizeBytes clears a byte slice.
func ZeroizeBytes(data []byte) {
	for i := range data {
		data[i] = 0
	}
}

// ZeroizeScalarSlice clears a slice of scalars.
func ZeroizeScalarSlice(scalars []Scalar) {
	for _, scalar := range scalars {
		if scalar != nil {
			scalar.Zeroize()
		}
	}
}

// BatchInvert inverts multiple scalars with Montgomery's trick: one field
// inversion plus 3(n-1) multiplications. Fails if any input is zero.
func BatchInvert(curve Curve, scalars []Scalar) ([]Scalar, error) {
	n := len(scalars)
	if n == 0 {
		return nil, nil
	}

	for i, scalar := range scalars {
		if scalar.IsZero() {
			return nil, fmt.Errorf("scalar at index %d is zero: %w", i, ErrScalarZero)
		}
	}

	if n == 1 {
		inv, err := scalars[0].Invert()
		if err != nil {
			return nil, err
		}
		return []Scalar{inv}, nil
	}

	partials := make([]Scalar, n)
	partials[0] = scalars[0]
	for i := 1; i < n; i++ {
		partials[i] = partials[i-1].Mul(scalars[i])
	}

	allInv, err := partials[n-1].Invert()
	if err != nil {
		return nil, err
	}

	inverses := make([]Scalar, n)
	inverses[n-1] = allInv.Mul(partials[n-2])
	for i := n - 2; i > 0; i-- {
		allInv = allInv.Mul(scalars[i+1])
		inverses[i] = allInv.Mul(partials[i-1])
	}
	inverses[0] = allInv.Mul(scalars[1])

	return inverses, nil
}
