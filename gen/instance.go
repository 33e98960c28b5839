// Package gen derives Instance-Code units from raw byte streams.
//
// The Instance-Code is an exact-identification digest (blake3), not a
// similarity fingerprint; perceptual and semantic feature extraction stay
// outside this module and feed the codec as opaque bodies.
package gen

import (
	"fmt"
	"io"

	"github.com/multiformats/go-multihash"
	"lukechampine.com/blake3"

	"iscc.codes/core/iscc"
)

const fullDigestSize = 32

// SumInstance streams r through blake3 and wraps the leading bits of the
// digest as an INSTANCE unit.
func SumInstance(r io.Reader, bits int) (iscc.Unit, error) {
	if err := checkBits(bits); err != nil {
		return iscc.Unit{}, err
	}
	sum, err := sumStream(r)
	if err != nil {
		return iscc.Unit{}, err
	}
	return iscc.NewUnit(iscc.MTInstance, iscc.STNone, iscc.V0, sum[:bits/8])
}

// Datahash streams r through blake3 and returns the full 256-bit digest
// wrapped as a multihash, the form declarations carry alongside the
// truncated Instance-Code.
func Datahash(r io.Reader) (multihash.Multihash, error) {
	sum, err := sumStream(r)
	if err != nil {
		return nil, err
	}
	return multihash.Encode(sum, multihash.BLAKE3)
}

// UnitFromMultihash wraps the leading bits of an externally computed
// multihash digest as an INSTANCE unit.
func UnitFromMultihash(mh multihash.Multihash, bits int) (iscc.Unit, error) {
	if err := checkBits(bits); err != nil {
		return iscc.Unit{}, err
	}
	decoded, err := multihash.Decode(mh)
	if err != nil {
		return iscc.Unit{}, iscc.WrapError(iscc.KindFormat, "ISCC-GEN-002",
			"invalid multihash", err)
	}
	if len(decoded.Digest)*8 < bits {
		return iscc.Unit{}, iscc.NewError(iscc.KindLengthMismatch, "ISCC-GEN-003",
			fmt.Sprintf("multihash digest has %d bits, need %d", len(decoded.Digest)*8, bits))
	}
	return iscc.NewUnit(iscc.MTInstance, iscc.STNone, iscc.V0, decoded.Digest[:bits/8])
}

func checkBits(bits int) error {
	if bits < iscc.MinBits || bits > iscc.MaxBits || bits%iscc.MinBits != 0 {
		return iscc.NewError(iscc.KindLengthMismatch, "ISCC-GEN-001",
			fmt.Sprintf("invalid instance bit-length %d: must be a multiple of %d in %d..%d",
				bits, iscc.MinBits, iscc.MinBits, iscc.MaxBits))
	}
	return nil
}

func sumStream(r io.Reader) ([]byte, error) {
	h := blake3.New(fullDigestSize, nil)
	if _, err := io.Copy(h, r); err != nil {
		return nil, err
	}
	return h.Sum(nil), nil
}
