package iscc

import (
	"bytes"
	"fmt"
)

// Unit is a single ISCC-UNIT: a validated header plus an opaque body whose
// bit-length matches the header's Length field. Units are immutable values;
// the codec never inspects body content beyond its length.
type Unit struct {
	Header Header
	Body   []byte
}

// NewUnit builds a unit from a raw body. The body length determines the
// header's Length field and must be a whole number of the allowed 32-bit
// steps.
func NewUnit(mt MainType, st SubType, v Version, body []byte) (Unit, error) {
	h, err := NewHeader(mt, st, v, len(body)*8)
	if err != nil {
		return Unit{}, err
	}
	return Unit{Header: h, Body: append([]byte(nil), body...)}, nil
}

// BodyBits returns the unit's body bit-length.
func (u Unit) BodyBits() int {
	return len(u.Body) * 8
}

// Digest returns the unit's canonical binary form (header bytes + body bytes).
func (u Unit) Digest() ([]byte, error) {
	return EncodeUnit(u)
}

// Text returns the unit's "ISCC:"-prefixed base32 form.
func (u Unit) Text() (string, error) {
	digest, err := EncodeUnit(u)
	if err != nil {
		return "", err
	}
	return ToText(digest), nil
}

// Equal reports whether two units have identical headers and bodies.
func (u Unit) Equal(other Unit) bool {
	return u.Header == other.Header && bytes.Equal(u.Body, other.Body)
}

// EncodeUnit serializes a unit into its ISCC-DIGEST bytes. The body length
// must match the bit-length declared in the header.
func EncodeUnit(u Unit) ([]byte, error) {
	if u.Header.MainType == MTISCC {
		return nil, NewError(KindFormat, "ISCC-UNIT-001",
			"composite digests are serialized via Code, not EncodeUnit")
	}
	header, err := EncodeHeader(u.Header)
	if err != nil {
		return nil, err
	}
	wantBits, err := u.Header.BodyBits()
	if err != nil {
		return nil, err
	}
	if len(u.Body)*8 != wantBits {
		return nil, NewError(KindLengthMismatch, "ISCC-UNIT-002",
			fmt.Sprintf("header declares %d body bits but body has %d", wantBits, len(u.Body)*8))
	}
	out := make([]byte, 0, len(header)+len(u.Body))
	out = append(out, header...)
	return append(out, u.Body...), nil
}

// DecodeUnit parses a standalone ISCC-DIGEST into a unit. The input must
// contain exactly the declared body: fewer bytes fail as TruncatedInput,
// extra trailing bytes as ExcessInput.
func DecodeUnit(data []byte) (Unit, error) {
	u, rest, err := decodeUnitPrefix(data)
	if err != nil {
		return Unit{}, err
	}
	if len(rest) != 0 {
		return Unit{}, NewError(KindExcess, "ISCC-UNIT-012",
			fmt.Sprintf("%d trailing bytes beyond declared body", len(rest)))
	}
	return u, nil
}

// decodeUnitPrefix reads one unit from the front of data and returns the
// remaining bytes. Used for units embedded in longer buffers, where trailing
// bytes are the caller's concern.
func decodeUnitPrefix(data []byte) (Unit, []byte, error) {
	if len(data) < 2 {
		return Unit{}, nil, NewError(KindTruncated, "ISCC-UNIT-010",
			fmt.Sprintf("need 2 header bytes, got %d", len(data)))
	}
	h, err := DecodeHeader(data[:2])
	if err != nil {
		return Unit{}, nil, err
	}
	if h.MainType == MTISCC {
		return Unit{}, nil, NewError(KindFormat, "ISCC-UNIT-003",
			"digest is a composite ISCC-CODE, not a unit")
	}
	wantBits, err := h.BodyBits()
	if err != nil {
		return Unit{}, nil, err
	}
	wantBytes := wantBits / 8
	body := data[2:]
	if len(body) < wantBytes {
		return Unit{}, nil, NewError(KindTruncated, "ISCC-UNIT-011",
			fmt.Sprintf("header declares %d body bytes but only %d remain", wantBytes, len(body)))
	}
	u := Unit{Header: h, Body: append([]byte(nil), body[:wantBytes]...)}
	return u, body[wantBytes:], nil
}
