package polyfield

import (
	"testing"
)

func TestHashToScalarIsDeterministic(t *testing.T) {
	curve := NewSecp256k1Curve()

	a, err := HashToScalar(curve, "test-domain", []byte("payload"))
	if err != nil {
		t.Fatalf("HashToScalar failed: %v", err)
	}
	b, err := HashToScalar(curve, "test-domain", []byte("payload"))
	if err != nil {
		t.Fatalf("HashToScalar failed: %v", err)
	}
	if !a.Equal(b) {
		t.Fatalf("Same input should hash to the same scalar")
	}
}

func TestHashToScalarSeparatesDomains(t *testing.T) {
	curve := NewEd25519Curve()

	a, err := HashToScalar(curve, "domain-a", []byte("payload"))
	if err != nil {
		t.Fatalf("HashToScalar failed: %v", err)
	}
	b, err := HashToScalar(curve, "domain-b", []byte("payload"))
	if err != nil {
		t.Fatalf("HashToScalar failed: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("Different domains should hash to different scalars")
	}

	// The same domain on a different curve must also separate.
	c, err := HashToScalar(NewSecp256k1Curve(), "domain-a", []byte("payload"))
	if err != nil {
		t.Fatalf("HashToScalar failed: %v", err)
	}
	if a.String() == c.String() {
		t.Fatalf("Different curves should hash to different scalars")
	}
}

func TestChallengeHashLengthPrefixing(t *testing.T) {
	curve := NewSecp256k1Curve()

	// ("ab","c") and ("a","bc") concatenate identically; the length prefix
	// must keep them apart.
	a, err := ChallengeHash(curve, "fs", []byte("ab"), []byte("c"))
	if err != nil {
		t.Fatalf("ChallengeHash failed: %v", err)
	}
	b, err := ChallengeHash(curve, "fs", []byte("a"), []byte("bc"))
	if err != nil {
		t.Fatalf("ChallengeHash failed: %v", err)
	}
	if a.Equal(b) {
		t.Fatalf("Transcripts with different boundaries should not collide")
	}
}

func TestSecureCompare(t *testing.T) {
	if !SecureCompare([]byte{1, 2, 3}, []byte{1, 2, 3}) {
		t.Fatalf("Equal slices should compare equal")
	}
	if SecureCompare([]byte{1, 2, 3}, []byte{1, 2, 4}) {
		t.Fatalf("Different slices should not compare equal")
	}
	if SecureCompare([]byte{1, 2, 3}, []byte{1, 2}) {
		t.Fatalf("Slices of different length should not compare equal")
	}
}

func TestZeroizeBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	ZeroizeBytes(data)
	for i, b := range data {
		if b != 0 {
			t.Fatalf("Byte %d not cleared", i)
		}
	}
}
