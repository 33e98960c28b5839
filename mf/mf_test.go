package mf

import (
	"bytes"
	"testing"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-varint"

	"iscc.codes/core/iscc"
)

func sampleDigest(t *testing.T) []byte {
	t.Helper()
	body := make([]byte, 8)
	for i := range body {
		body[i] = 0xA0 + byte(i)
	}
	u, err := iscc.NewUnit(iscc.MTData, iscc.STNone, iscc.V0, body)
	if err != nil {
		t.Fatalf("NewUnit: %v", err)
	}
	digest, err := u.Digest()
	if err != nil {
		t.Fatalf("Digest: %v", err)
	}
	return digest
}

func TestEncodeDecodeRoundTripAcrossBases(t *testing.T) {
	digest := sampleDigest(t)
	bases := []multibase.Encoding{
		multibase.Base16,
		multibase.Base32,
		multibase.Base58BTC,
		multibase.Base64url,
	}
	for _, base := range bases {
		s, err := Encode(digest, base)
		if err != nil {
			t.Fatalf("Encode(base %c): %v", rune(base), err)
		}
		back, err := Decode(s)
		if err != nil {
			t.Fatalf("Decode(%q): %v", s, err)
		}
		if !bytes.Equal(back, digest) {
			t.Fatalf("base %c: round trip mismatch", rune(base))
		}
	}
}

func TestEncodeRejectsMalformedDigest(t *testing.T) {
	if _, err := Encode([]byte{0xFF, 0xFF, 0x00}, multibase.Base32); err == nil {
		t.Fatal("expected error for malformed digest")
	}
}

func TestDecodeRejectsForeignMulticodec(t *testing.T) {
	digest := sampleDigest(t)
	data := append(varint.ToUvarint(0x70), digest...) // dag-pb, not iscc
	s, err := multibase.Encode(multibase.Base32, data)
	if err != nil {
		t.Fatalf("multibase.Encode: %v", err)
	}
	if _, err := Decode(s); !iscc.IsKind(err, iscc.KindFormat) {
		t.Fatalf("expected Format kind, got %v", err)
	}
}

func TestDecodeRejectsBadMultibase(t *testing.T) {
	if _, err := Decode("~not-multibase~"); !iscc.IsKind(err, iscc.KindInvalidAlphabet) {
		t.Fatalf("expected InvalidAlphabet, got %v", err)
	}
}

func TestSameDigest(t *testing.T) {
	digest := sampleDigest(t)
	multi, err := Encode(digest, multibase.Base58BTC)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	ok, err := SameDigest(multi, iscc.ToText(digest))
	if err != nil {
		t.Fatalf("SameDigest: %v", err)
	}
	if !ok {
		t.Fatal("multibase and text forms should wrap the same digest")
	}
}

func TestCIDv1Deterministic(t *testing.T) {
	digest := sampleDigest(t)
	first, err := CIDv1(digest)
	if err != nil {
		t.Fatalf("CIDv1: %v", err)
	}
	second, err := CIDv1(digest)
	if err != nil {
		t.Fatalf("CIDv1: %v", err)
	}
	if !first.Equals(second) {
		t.Fatal("CIDv1 not deterministic")
	}
	if first.Version() != 1 {
		t.Fatalf("CID version = %d, want 1", first.Version())
	}

	other, err := CIDv1(func() []byte {
		d := append([]byte(nil), digest...)
		d[len(d)-1] ^= 0x01
		return d
	}())
	if err != nil {
		t.Fatalf("CIDv1: %v", err)
	}
	if first.Equals(other) {
		t.Fatal("distinct digests yield the same CID")
	}
}
