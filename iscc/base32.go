package iscc

import (
	"strings"

	base32 "github.com/multiformats/go-base32"
)

// Prefix is the literal marker of the canonical ISCC text form.
const Prefix = "ISCC:"

// alphabet is the RFC 4648 base32 alphabet, upper-case, used without padding.
// The text form is case-sensitive.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// ToText renders an ISCC digest as its "ISCC:"-prefixed base32 string.
// It is total: any byte sequence encodes (validity of the digest is the
// decode side's concern).
func ToText(digest []byte) string {
	return Prefix + encoding.EncodeToString(digest)
}

// FromText parses an "ISCC:"-prefixed base32 string back into digest bytes.
func FromText(s string) ([]byte, error) {
	if !strings.HasPrefix(s, Prefix) {
		return nil, NewError(KindInvalidPrefix, "ISCC-TXT-001",
			`missing "ISCC:" prefix`)
	}
	return decodeBase32(s[len(Prefix):])
}

func decodeBase32(s string) ([]byte, error) {
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(alphabet, rune(s[i])) {
			return nil, NewError(KindInvalidAlphabet, "ISCC-TXT-002",
				"character outside the base32 alphabet")
		}
	}
	raw, err := encoding.DecodeString(s)
	if err != nil {
		return nil, WrapError(KindInvalidAlphabet, "ISCC-TXT-003", "invalid base32 encoding", err)
	}
	return raw, nil
}
