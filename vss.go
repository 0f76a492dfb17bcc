package polyfield

import (
	"fmt"
)

// ShamirParameters fixes a (t,n) threshold scheme: n shares are dealt and
// any t+1 of them reconstruct the secret, while t or fewer reveal nothing.
type ShamirParameters struct {
	Threshold  int // t
	ShareCount int // n
}

// Validate checks 0 <= t < n.
func (p ShamirParameters) Validate() error {
	if p.Threshold < 0 || p.Threshold >= p.ShareCount {
		return ErrInvalidThreshold.WithDetails("t=%d, n=%d", p.Threshold, p.ShareCount)
	}
	return nil
}

// ReconstructLimit is the number of shares needed to recover the secret.
func (p ShamirParameters) ReconstructLimit() int {
	return p.Threshold + 1
}

// VerifiableSecretSharing is the dealer's public transcript: the scheme
// parameters and one commitment generator^coefficient per polynomial
// coefficient (t+1 of them). It is safe to publish and lets anyone validate
// a share without learning the secret.
type VerifiableSecretSharing struct {
	curve       Curve
	Parameters  ShamirParameters
	Commitments []Point
}

// FeldmanVSS deals verifiable Shamir shares over a curve's scalar field.
// The protocol is linear: the dealer generates, parties validate, a quorum
// reconstructs. There is no session state beyond the published transcript.
type FeldmanVSS struct {
	curve Curve
}

// NewFeldmanVSS creates a Feldman VSS dealer/verifier for the given curve.
func NewFeldmanVSS(curve Curve) *FeldmanVSS {
	return &FeldmanVSS{curve: curve}
}

// evaluationPoint converts a zero-based share position into the field
// element the dealer's polynomial is evaluated at. Position i maps to the
// scalar i+1: the point x=0 holds the secret itself and is never dealt.
// Sharing, validation, reconstruction and resharing all go through this one
// conversion.
func evaluationPoint(curve Curve, position int) Scalar {
	return curve.ScalarFromUint64(uint64(position) + 1)
}

// Share deals a secret into n shares with threshold t. Share i of the
// returned sequence belongs to party i+1 and is the dealer polynomial
// evaluated at i+1. The returned transcript carries one commitment per
// coefficient.
func (f *FeldmanVSS) Share(t, n int, secret Scalar) (*VerifiableSecretSharing, []Scalar, error) {
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i + 1
	}
	return f.ShareAtIndices(t, n, secret, indices)
}

// ShareAtIndices deals a secret like Share, but evaluates the dealer
// polynomial at caller-chosen one-based party indices (e.g. f(1), f(4),
// f(6) instead of f(1), f(2), f(3)).
func (f *FeldmanVSS) ShareAtIndices(t, n int, secret Scalar, indices []int) (*VerifiableSecretSharing, []Scalar, error) {
	params := ShamirParameters{Threshold: t, ShareCount: n}
	if err := params.Validate(); err != nil {
		return nil, nil, err
	}
	if len(indices) != n {
		return nil, nil, ErrInvalidShareIndex.WithDetails("%d indices for %d shares", len(indices), n)
	}
	for _, index := range indices {
		if index < 1 {
			return nil, nil, ErrInvalidShareIndex.WithDetails("index %d, indices are one-based", index)
		}
	}

	poly, err := SamplePolynomialWithConstantTerm(f.curve, t, secret)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to sample dealer polynomial: %w", err)
	}
	defer poly.Zeroize()

	shares := make([]Scalar, n)
	for i, index := range indices {
		shares[i] = poly.Evaluate(evaluationPoint(f.curve, index-1))
	}

	generator := f.curve.BasePoint()
	coefficients := poly.Coefficients()
	commitments := make([]Point, len(coefficients))
	for i, coeff := range coefficients {
		commitments[i] = generator.Mul(coeff)
	}

	return &VerifiableSecretSharing{
		curve:       f.curve,
		Parameters:  params,
		Commitments: commitments,
	}, shares, nil
}

// Reconstruct recovers the secret from shares held at the given zero-based
// share positions (position i corresponds to evaluation point i+1, as at
// sharing time). At least t+1 shares are required.
func (v *VerifiableSecretSharing) Reconstruct(indices []int, shares []Scalar) (Scalar, error) {
	if len(indices) != len(shares) {
		return nil, ErrPointValueMismatch.WithDetails("%d indices, %d shares", len(indices), len(shares))
	}
	if len(shares) < v.Parameters.ReconstructLimit() {
		return nil, ErrInsufficientShares.WithDetails(
			"need %d, got %d", v.Parameters.ReconstructLimit(), len(shares))
	}

	points := make([]Scalar, len(indices))
	for i, index := range indices {
		points[i] = evaluationPoint(v.curve, index)
	}

	return LagrangeInterpolateAtZero(v.curve, points, shares)
}

// ValidateShare checks a clear share against the public commitments.
// partyID is the one-based party index the share was dealt to. A mismatch
// is reported as ErrShareVerification, an expected outcome for corrupted or
// malicious shares.
func (v *VerifiableSecretSharing) ValidateShare(share Scalar, partyID int) error {
	sharePoint := v.curve.BasePoint().Mul(share)
	return v.ValidateSharePublic(sharePoint, partyID)
}

// ValidateSharePublic checks generator^share against the commitments for
// callers that only ever handle shares in the exponent.
func (v *VerifiableSecretSharing) ValidateSharePublic(sharePoint Point, partyID int) error {
	if partyID < 1 {
		return ErrInvalidShareIndex.WithDetails("party ID %d, party IDs are one-based", partyID)
	}

	// A commitment equal to the group identity commits to nothing; treat it
	// as a verification failure rather than an internal invariant breach.
	for i, commitment := range v.Commitments {
		if commitment.IsIdentity() {
			return ErrShareVerification.WithDetails("commitment %d is the group identity", i)
		}
	}

	expected := v.PointCommitment(partyID)
	if !sharePoint.Equal(expected) {
		return ErrShareVerification.WithDetails("party %d", partyID)
	}
	return nil
}

// PointCommitment folds the coefficient commitments with Horner's rule on
// group elements, yielding the commitment to the share of the given
// one-based party: sum_j Commitments[j] * x^j for x the party's evaluation
// point.
func (v *VerifiableSecretSharing) PointCommitment(partyID int) Point {
	x := evaluationPoint(v.curve, partyID-1)

	result := v.Commitments[len(v.Commitments)-1]
	for i := len(v.Commitments) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(v.Commitments[i])
	}
	return result
}

// MapShareToNewParams computes the Lagrange coefficient party `index` (zero
// based) applies to its own share so that summing the weighted shares of
// exactly the parties in `subset` yields the original secret. This turns
// the (t,n) scheme into an (|subset|-1, |subset|) scheme without a dealer.
func (v *VerifiableSecretSharing) MapShareToNewParams(index int, subset []int) (Scalar, error) {
	n := v.Parameters.ShareCount
	if index < 0 || index >= n {
		return nil, ErrInvalidShareIndex.WithDetails("index %d, share count %d", index, n)
	}

	for a := 0; a < len(subset); a++ {
		for b := a + 1; b < len(subset); b++ {
			if subset[a] == subset[b] {
				return nil, ErrDuplicatePoints.WithDetails("subset positions %d and %d", a, b)
			}
		}
	}

	xi := evaluationPoint(v.curve, index)
	num := v.curve.ScalarOne()
	den := v.curve.ScalarOne()
	for _, j := range subset {
		if j < 0 || j >= n {
			return nil, ErrInvalidShareIndex.WithDetails("subset member %d, share count %d", j, n)
		}
		if j == index {
			continue
		}
		xj := evaluationPoint(v.curve, j)
		num = num.Mul(xj)
		den = den.Mul(xj.Sub(xi))
	}

	denInv, err := den.Invert()
	if err != nil {
		return nil, ErrDuplicatePoints.WithCause(err)
	}
	return num.Mul(denInv), nil
}
