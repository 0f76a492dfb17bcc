package polyfield

import (
	"fmt"
)

const dlogProofDomain = "polyfield/dlog-proof-v1"

// DLogProof is a non-interactive zero-knowledge proof of knowledge of the
// discrete logarithm of Statement: the prover knows x with Statement = x*G
// without revealing x. The Fiat-Shamir transform binds the challenge to the
// statement and the prover's random commitment.
type DLogProof struct {
	curve          Curve
	Statement      Point
	RandCommitment Point
	Challenge      Scalar
	Response       Scalar
}

// ProveDLog proves knowledge of witness x for statement x*G.
func ProveDLog(curve Curve, witness Scalar) (*DLogProof, error) {
	if witness == nil {
		return nil, fmt.Errorf("witness must be non-nil")
	}

	generator := curve.BasePoint()
	statement := generator.Mul(witness)

	nonce, err := curve.ScalarRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to sample proof nonce: %w", err)
	}
	defer nonce.Zeroize()

	randCommitment := generator.Mul(nonce)

	challenge, err := ChallengeHash(curve, dlogProofDomain,
		generator.CompressedBytes(),
		statement.CompressedBytes(),
		randCommitment.CompressedBytes(),
	)
	if err != nil {
		return nil, err
	}

	// s = k + c*x
	response := nonce.Add(challenge.Mul(witness))

	return &DLogProof{
		curve:          curve,
		Statement:      statement,
		RandCommitment: randCommitment,
		Challenge:      challenge,
		Response:       response,
	}, nil
}

// Verify checks the proof. Recomputes the random commitment as
// s*G - c*Statement and requires the transcript challenge to match. A bad
// proof is ErrProofVerification.
func (p *DLogProof) Verify() error {
	if p.Statement == nil || p.RandCommitment == nil || p.Challenge == nil || p.Response == nil {
		return ErrProofVerification.WithDetails("incomplete proof")
	}
	if p.Statement.IsIdentity() {
		return ErrProofVerification.WithDetails("statement is the group identity")
	}

	generator := p.curve.BasePoint()
	recovered := generator.Mul(p.Response).Sub(p.Statement.Mul(p.Challenge))
	if !recovered.Equal(p.RandCommitment) {
		return ErrProofVerification
	}

	challenge, err := ChallengeHash(p.curve, dlogProofDomain,
		generator.CompressedBytes(),
		p.Statement.CompressedBytes(),
		p.RandCommitment.CompressedBytes(),
	)
	if err != nil {
		return err
	}
	if !challenge.Equal(p.Challenge) {
		return ErrProofVerification.WithDetails("challenge mismatch")
	}
	return nil
}
