// Package iscc implements the ISCC (ISO 24138) binary codec: the 2-byte
// self-describing header, ISCC-UNIT encoding and decoding, composition and
// decomposition of ISCC-CODEs, and the "ISCC:"-prefixed base32 text form.
//
// All operations are pure, deterministic and reentrant. Decode-side
// operations are total over error reporting: malformed input yields a
// structured *Error (see Kind and RuleID), never a panic or a silently
// coerced value.
package iscc
