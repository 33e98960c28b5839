package gen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/multiformats/go-multihash"

	"iscc.codes/core/compare"
	"iscc.codes/core/iscc"
)

func TestSumInstanceDeterministic(t *testing.T) {
	content := strings.Repeat("the same byte stream ", 100)
	first, err := SumInstance(strings.NewReader(content), 64)
	if err != nil {
		t.Fatalf("SumInstance: %v", err)
	}
	second, err := SumInstance(strings.NewReader(content), 64)
	if err != nil {
		t.Fatalf("SumInstance: %v", err)
	}
	if !first.Equal(second) {
		t.Fatal("same content must yield the same instance unit")
	}
	if first.Header.MainType != iscc.MTInstance || first.BodyBits() != 64 {
		t.Fatalf("unexpected unit: %+v", first.Header)
	}
}

func TestSumInstanceLengthClasses(t *testing.T) {
	wide, err := SumInstance(strings.NewReader("payload"), 256)
	if err != nil {
		t.Fatalf("SumInstance(256): %v", err)
	}
	narrow, err := SumInstance(strings.NewReader("payload"), 64)
	if err != nil {
		t.Fatalf("SumInstance(64): %v", err)
	}
	if !bytes.Equal(wide.Body[:8], narrow.Body) {
		t.Fatal("narrow instance body must be a prefix of the wide one")
	}
	for _, bad := range []int{0, 16, 48, 288} {
		if _, err := SumInstance(strings.NewReader("x"), bad); !iscc.IsKind(err, iscc.KindLengthMismatch) {
			t.Fatalf("expected LengthMismatch for %d bits, got %v", bad, err)
		}
	}
}

func TestDatahashMatchesSumInstance(t *testing.T) {
	content := "identical payload"
	mh, err := Datahash(strings.NewReader(content))
	if err != nil {
		t.Fatalf("Datahash: %v", err)
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		t.Fatalf("multihash.Decode: %v", err)
	}
	if decoded.Code != multihash.BLAKE3 {
		t.Fatalf("multihash code = 0x%X, want blake3", decoded.Code)
	}
	if len(decoded.Digest) != fullDigestSize {
		t.Fatalf("digest = %d bytes, want %d", len(decoded.Digest), fullDigestSize)
	}

	unit, err := SumInstance(strings.NewReader(content), 128)
	if err != nil {
		t.Fatalf("SumInstance: %v", err)
	}
	if !bytes.Equal(unit.Body, decoded.Digest[:16]) {
		t.Fatal("instance body must be the datahash prefix")
	}

	fromMH, err := UnitFromMultihash(mh, 128)
	if err != nil {
		t.Fatalf("UnitFromMultihash: %v", err)
	}
	if !fromMH.Equal(unit) {
		t.Fatal("UnitFromMultihash disagrees with SumInstance")
	}
}

func TestUnitFromMultihashRejectsShortDigest(t *testing.T) {
	mh, err := multihash.Encode(make([]byte, 8), multihash.BLAKE3)
	if err != nil {
		t.Fatalf("multihash.Encode: %v", err)
	}
	if _, err := UnitFromMultihash(mh, 128); !iscc.IsKind(err, iscc.KindLengthMismatch) {
		t.Fatalf("expected LengthMismatch, got %v", err)
	}
	if _, err := UnitFromMultihash(multihash.Multihash{0xFF}, 64); !iscc.IsKind(err, iscc.KindFormat) {
		t.Fatalf("expected Format for invalid multihash, got %v", err)
	}
}

func TestIdenticalStreamsAreNearDuplicates(t *testing.T) {
	content := "same file, two places"
	a, err := SumInstance(strings.NewReader(content), 64)
	if err != nil {
		t.Fatalf("SumInstance: %v", err)
	}
	b, err := SumInstance(strings.NewReader(content), 64)
	if err != nil {
		t.Fatalf("SumInstance: %v", err)
	}
	textA, err := a.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	textB, err := b.Text()
	if err != nil {
		t.Fatalf("Text: %v", err)
	}
	report, err := compare.Compare(textA, textB)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	near, err := compare.NearDuplicate(report, 1.0)
	if err != nil {
		t.Fatalf("NearDuplicate: %v", err)
	}
	if !near {
		t.Fatal("identical streams must classify as near-duplicates")
	}
}
