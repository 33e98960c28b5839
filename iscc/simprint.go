package iscc

import (
	"bytes"
	"encoding/base64"
	"fmt"
)

// Simprint is a headerless unit body carrying granular (segment-level)
// similarity features. It has no MainType/SubType of its own; its type is
// implied by the surrounding context.
//
// The text form is raw base64url without padding, matching how granular
// features travel in ISCC metadata. There is deliberately no multibase prefix.
type Simprint []byte

var simprintEncoding = base64.RawURLEncoding

// NewSimprint validates and copies a raw feature body. Simprints obey the
// same bit-length classes as unit bodies.
func NewSimprint(body []byte) (Simprint, error) {
	bits := len(body) * 8
	if bits < MinBits || bits > MaxBits || bits%MinBits != 0 {
		return nil, NewError(KindLengthMismatch, "ISCC-SP-001",
			fmt.Sprintf("invalid simprint bit-length %d: must be a multiple of %d in %d..%d",
				bits, MinBits, MinBits, MaxBits))
	}
	return Simprint(append([]byte(nil), body...)), nil
}

// Bits returns the simprint's bit-length.
func (s Simprint) Bits() int {
	return len(s) * 8
}

// Equal reports byte equality of two simprints.
func (s Simprint) Equal(other Simprint) bool {
	return bytes.Equal(s, other)
}

func (s Simprint) String() string {
	return simprintEncoding.EncodeToString(s)
}

// ParseSimprint parses the base64url text form of a simprint.
func ParseSimprint(s string) (Simprint, error) {
	raw, err := simprintEncoding.DecodeString(s)
	if err != nil {
		return nil, WrapError(KindInvalidAlphabet, "ISCC-SP-002", "invalid simprint encoding", err)
	}
	return NewSimprint(raw)
}
