// Package mf bridges ISCC digests into the multiformats ecosystem:
// multicodec-prefixed multibase renderings and CIDv1 derivation for
// content-addressed storage of declarations.
package mf

import (
	"bytes"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
	"github.com/multiformats/go-varint"

	"iscc.codes/core/iscc"
)

// Codec is the multicodec code registered for ISCC digests.
const Codec = 0x01CC

var codecPrefix = varint.ToUvarint(Codec)

// Encode renders a well-formed ISCC digest as multibase(varint(iscc) || digest).
// Supported bases are whatever go-multibase supports; base16, base32,
// base58btc and base64url are the interchange set.
func Encode(digest []byte, base multibase.Encoding) (string, error) {
	if err := iscc.Validate(iscc.ToText(digest)); err != nil {
		return "", err
	}
	data := make([]byte, 0, len(codecPrefix)+len(digest))
	data = append(data, codecPrefix...)
	data = append(data, digest...)
	s, err := multibase.Encode(base, data)
	if err != nil {
		return "", iscc.WrapError(iscc.KindInvalidAlphabet, "ISCC-MF-001",
			"unsupported multibase encoding", err)
	}
	return s, nil
}

// Decode parses a multibase string produced by Encode back into the raw
// ISCC digest, validating the multicodec prefix and the digest itself.
func Decode(s string) ([]byte, error) {
	_, data, err := multibase.Decode(s)
	if err != nil {
		return nil, iscc.WrapError(iscc.KindInvalidAlphabet, "ISCC-MF-002",
			"invalid multibase string", err)
	}
	code, n, err := varint.FromUvarint(data)
	if err != nil {
		return nil, iscc.WrapError(iscc.KindFormat, "ISCC-MF-003",
			"invalid multicodec prefix", err)
	}
	if code != Codec {
		return nil, iscc.NewError(iscc.KindFormat, "ISCC-MF-004",
			fmt.Sprintf("multicodec 0x%X is not ISCC (0x%X)", code, Codec))
	}
	digest := data[n:]
	if err := iscc.Validate(iscc.ToText(digest)); err != nil {
		return nil, err
	}
	return append([]byte(nil), digest...), nil
}

// CIDv1 returns an IPFS-compatible CIDv1 (raw + sha2-256) over the canonical
// digest bytes, for addressing a declaration in a CAS.
func CIDv1(digest []byte) (cid.Cid, error) {
	if err := iscc.Validate(iscc.ToText(digest)); err != nil {
		return cid.Undef, err
	}
	sum, err := multihash.Sum(digest, multihash.SHA2_256, -1)
	if err != nil {
		// multihash.Sum only errors for invalid inputs; with SHA2_256 and -1
		// length this should be unreachable.
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, sum), nil
}

// SameDigest reports whether a multibase rendering and a text form wrap the
// same digest bytes.
func SameDigest(multi, text string) (bool, error) {
	fromMulti, err := Decode(multi)
	if err != nil {
		return false, err
	}
	fromText, err := iscc.FromText(text)
	if err != nil {
		return false, err
	}
	return bytes.Equal(fromMulti, fromText), nil
}
