package polyfield

import (
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// Two-party protocols with commit-then-reveal bias resistance: an
// authenticated Diffie-Hellman key exchange and a shared coin flip. In both,
// the first party commits to its contribution before seeing the second
// party's, so neither side can grind its value after learning the other's.

const (
	dhSessionKeyDomain = "polyfield/dh-session-key-v1"
	dhSessionKeySize   = 32
)

// DHParty holds one participant's ephemeral state during the key exchange.
// Zeroize it once the session key is derived.
type DHParty struct {
	curve    Curve
	secret   Scalar
	Public   Point
	Proof    *DLogProof
	blinding []byte
}

// DHCommitMessage is the first party's opening message: a hash commitment
// to its public point and proof transcript.
type DHCommitMessage struct {
	Commitment []byte
}

// DHRevealMessage opens a party's contribution: the public point, the proof
// of knowledge of its discrete log, and (for the committing party) the
// commitment blinding.
type DHRevealMessage struct {
	Public   []byte
	Proof    *DLogProof
	Blinding []byte
}

// NewDHParty samples an ephemeral secret and prepares the public point and
// its proof of knowledge.
func NewDHParty(curve Curve) (*DHParty, error) {
	secret, err := curve.ScalarRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to sample ephemeral secret: %w", err)
	}

	proof, err := ProveDLog(curve, secret)
	if err != nil {
		secret.Zeroize()
		return nil, err
	}

	return &DHParty{
		curve:  curve,
		secret: secret,
		Public: proof.Statement,
		Proof:  proof,
	}, nil
}

// dhTranscript serializes the committed contribution: public point plus the
// proof's random commitment. Committing to the proof as well prevents the
// committer from swapping proofs at reveal time.
func (p *DHParty) dhTranscript() []byte {
	transcript := p.Public.CompressedBytes()
	return append(transcript, p.Proof.RandCommitment.CompressedBytes()...)
}

// Commit produces the first-round message for the party that moves first.
func (p *DHParty) Commit() (*DHCommitMessage, error) {
	commitment, blinding, err := HashCommit(p.dhTranscript())
	if err != nil {
		return nil, err
	}
	p.blinding = blinding
	return &DHCommitMessage{Commitment: commitment}, nil
}

// Reveal opens the party's contribution. For the committing party this
// includes the blinding factor; for the responder Blinding is nil.
func (p *DHParty) Reveal() *DHRevealMessage {
	return &DHRevealMessage{
		Public:   p.Public.CompressedBytes(),
		Proof:    p.Proof,
		Blinding: p.blinding,
	}
}

// verifyReveal checks a peer's reveal message: the proof must verify and
// the proof statement must match the revealed point. If commitment is
// non-nil the reveal must also open it.
func verifyReveal(curve Curve, reveal *DHRevealMessage, commitment []byte) (Point, error) {
	public, err := curve.PointFromBytes(reveal.Public)
	if err != nil {
		return nil, fmt.Errorf("invalid peer public point: %w", err)
	}
	if public.IsIdentity() {
		return nil, ErrProofVerification.WithDetails("peer public point is the group identity")
	}

	if reveal.Proof == nil || !reveal.Proof.Statement.Equal(public) {
		return nil, ErrProofVerification.WithDetails("proof statement does not match revealed point")
	}
	if err := reveal.Proof.Verify(); err != nil {
		return nil, err
	}

	if commitment != nil {
		transcript := append(public.CompressedBytes(), reveal.Proof.RandCommitment.CompressedBytes()...)
		if err := OpenHashCommitment(commitment, transcript, reveal.Blinding); err != nil {
			return nil, err
		}
	}
	return public, nil
}

// SessionKey verifies the peer's reveal and derives the shared session key
// from the DH point via HKDF. Pass the peer's commitment when this party is
// the responder, nil when this party committed first.
func (p *DHParty) SessionKey(peerReveal *DHRevealMessage, peerCommitment []byte) ([]byte, error) {
	peerPublic, err := verifyReveal(p.curve, peerReveal, peerCommitment)
	if err != nil {
		return nil, err
	}

	shared := peerPublic.Mul(p.secret)
	sharedBytes := shared.CompressedBytes()
	defer ZeroizeBytes(sharedBytes)

	kdf := hkdf.New(sha3.New256, sharedBytes, nil, []byte(dhSessionKeyDomain))
	key := make([]byte, dhSessionKeySize)
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, fmt.Errorf("session key derivation failed: %w", err)
	}
	return key, nil
}

// Zeroize clears the party's ephemeral secret and commitment blinding.
func (p *DHParty) Zeroize() {
	if p.secret != nil {
		p.secret.Zeroize()
	}
	ZeroizeBytes(p.blinding)
}

// CoinFlipParty holds one participant's state in the shared coin flip. The
// result is seed1 + seed2 in the scalar field; the committing party cannot
// bias it because its seed is fixed before the other is revealed.
type CoinFlipParty struct {
	curve    Curve
	Seed     Scalar
	blinding []byte
}

// NewCoinFlipParty samples a fresh random seed.
func NewCoinFlipParty(curve Curve) (*CoinFlipParty, error) {
	seed, err := curve.ScalarRandom()
	if err != nil {
		return nil, fmt.Errorf("failed to sample coin-flip seed: %w", err)
	}
	return &CoinFlipParty{curve: curve, Seed: seed}, nil
}

// Commit produces the first party's commitment to its seed.
func (p *CoinFlipParty) Commit() ([]byte, error) {
	commitment, blinding, err := HashCommit(p.Seed.Bytes())
	if err != nil {
		return nil, err
	}
	p.blinding = blinding
	return commitment, nil
}

// Blinding returns the committing party's blinding factor for the reveal.
func (p *CoinFlipParty) Blinding() []byte {
	return p.blinding
}

// CoinFlipResult verifies the committer's opened seed against its
// commitment and combines it with the responder's seed.
func CoinFlipResult(curve Curve, commitment, committerSeedBytes, blinding []byte, responderSeed Scalar) (Scalar, error) {
	if err := OpenHashCommitment(commitment, committerSeedBytes, blinding); err != nil {
		return nil, err
	}
	committerSeed, err := curve.ScalarFromBytes(committerSeedBytes)
	if err != nil {
		return nil, fmt.Errorf("invalid committed seed: %w", err)
	}
	return committerSeed.Add(responderSeed), nil
}
