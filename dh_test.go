package polyfield

import (
	"bytes"
	"errors"
	"testing"
)

func TestDHKeyExchange(t *testing.T) {
	for _, curve := range []Curve{NewSecp256k1Curve(), NewEd25519Curve()} {
		// Party 1 commits, party 2 reveals, party 1 opens.
		party1, err := NewDHParty(curve)
		if err != nil {
			t.Fatalf("%s: party 1 setup failed: %v", curve.Name(), err)
		}
		party2, err := NewDHParty(curve)
		if err != nil {
			t.Fatalf("%s: party 2 setup failed: %v", curve.Name(), err)
		}

		commit, err := party1.Commit()
		if err != nil {
			t.Fatalf("%s: commit failed: %v", curve.Name(), err)
		}

		key1, err := party1.SessionKey(party2.Reveal(), nil)
		if err != nil {
			t.Fatalf("%s: party 1 key derivation failed: %v", curve.Name(), err)
		}
		key2, err := party2.SessionKey(party1.Reveal(), commit.Commitment)
		if err != nil {
			t.Fatalf("%s: party 2 key derivation failed: %v", curve.Name(), err)
		}

		if !bytes.Equal(key1, key2) {
			t.Fatalf("%s: parties derived different session keys", curve.Name())
		}
		if len(key1) != dhSessionKeySize {
			t.Fatalf("%s: expected %d-byte session key, got %d", curve.Name(), dhSessionKeySize, len(key1))
		}

		party1.Zeroize()
		party2.Zeroize()
	}
}

func TestDHRejectsCommitmentEquivocation(t *testing.T) {
	curve := NewSecp256k1Curve()

	party1, err := NewDHParty(curve)
	if err != nil {
		t.Fatalf("Party 1 setup failed: %v", err)
	}
	party2, err := NewDHParty(curve)
	if err != nil {
		t.Fatalf("Party 2 setup failed: %v", err)
	}

	commit, err := party1.Commit()
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Party 1 tries to swap its contribution after committing.
	replacement, err := NewDHParty(curve)
	if err != nil {
		t.Fatalf("Replacement setup failed: %v", err)
	}
	reveal := replacement.Reveal()
	reveal.Blinding = party1.blinding

	if _, err := party2.SessionKey(reveal, commit.Commitment); !errors.Is(err, ErrCommitmentMismatch) {
		t.Fatalf("Expected ErrCommitmentMismatch for equivocated reveal, got %v", err)
	}
}

func TestDHRejectsProofStatementMismatch(t *testing.T) {
	curve := NewEd25519Curve()

	party1, err := NewDHParty(curve)
	if err != nil {
		t.Fatalf("Party 1 setup failed: %v", err)
	}
	party2, err := NewDHParty(curve)
	if err != nil {
		t.Fatalf("Party 2 setup failed: %v", err)
	}

	// A reveal whose proof belongs to a different point.
	reveal := party2.Reveal()
	reveal.Proof = party1.Proof
	if _, err := party1.SessionKey(reveal, nil); !errors.Is(err, ErrProofVerification) {
		t.Fatalf("Expected ErrProofVerification for mismatched proof, got %v", err)
	}
}

func TestCoinFlip(t *testing.T) {
	curve := NewSecp256k1Curve()

	committer, err := NewCoinFlipParty(curve)
	if err != nil {
		t.Fatalf("Committer setup failed: %v", err)
	}
	responder, err := NewCoinFlipParty(curve)
	if err != nil {
		t.Fatalf("Responder setup failed: %v", err)
	}

	commitment, err := committer.Commit()
	if err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	// Both sides compute the same result from the opened transcript.
	result, err := CoinFlipResult(curve, commitment, committer.Seed.Bytes(), committer.Blinding(), responder.Seed)
	if err != nil {
		t.Fatalf("Coin flip failed: %v", err)
	}
	if !result.Equal(committer.Seed.Add(responder.Seed)) {
		t.Fatalf("Coin flip result should be the seed sum")
	}

	// A committer revealing a different seed is caught.
	otherSeed, err := curve.ScalarRandom()
	if err != nil {
		t.Fatalf("Failed to sample seed: %v", err)
	}
	if _, err := CoinFlipResult(curve, commitment, otherSeed.Bytes(), committer.Blinding(), responder.Seed); !errors.Is(err, ErrCommitmentMismatch) {
		t.Fatalf("Expected ErrCommitmentMismatch for swapped seed, got %v", err)
	}
}
