package iscc

import (
	"encoding/hex"
	"strings"
)

// Normalize cleans a user-supplied ISCC string into its canonical text form:
// surrounding whitespace is dropped, the prefix becomes the literal "ISCC:"
// (added when absent), the base32 body is upper-cased, and the result must
// decode as a valid unit or composite digest.
func Normalize(s string) (string, error) {
	body := strings.TrimSpace(s)
	if len(body) >= len(Prefix) && strings.EqualFold(body[:len(Prefix)], Prefix) {
		body = body[len(Prefix):]
	}
	body = strings.ToUpper(body)
	canonical := Prefix + body
	if err := Validate(canonical); err != nil {
		return "", err
	}
	return canonical, nil
}

// Validate checks that s is a canonical ISCC text form wrapping a well-formed
// unit or composite digest. It returns nil or a structured error and never
// panics on malformed input.
func Validate(s string) error {
	digest, err := FromText(s)
	if err != nil {
		return err
	}
	if len(digest) < 2 {
		return NewError(KindTruncated, "ISCC-TXT-010",
			"digest shorter than the 2-byte header")
	}
	h, err := DecodeHeader(digest[:2])
	if err != nil {
		return err
	}
	if h.MainType == MTISCC {
		_, err = DecodeCode(digest)
		return err
	}
	_, err = DecodeUnit(digest)
	return err
}

// Explanation is a human-readable breakdown of a decoded ISCC.
type Explanation struct {
	ISCC     string        `json:"iscc"`
	MainType string        `json:"maintype"`
	SubType  string        `json:"subtype"`
	Version  uint8         `json:"version"`
	BodyBits int           `json:"bits"`
	BodyHex  string        `json:"hex"`
	Units    []Explanation `json:"units,omitempty"`
}

// Explain decodes an ISCC text form and reports its structure. Composites
// additionally carry one entry per reconstructed unit.
func Explain(s string) (Explanation, error) {
	canonical, err := Normalize(s)
	if err != nil {
		return Explanation{}, err
	}
	digest, err := FromText(canonical)
	if err != nil {
		return Explanation{}, err
	}
	h, err := DecodeHeader(digest[:2])
	if err != nil {
		return Explanation{}, err
	}

	if h.MainType != MTISCC {
		u, err := DecodeUnit(digest)
		if err != nil {
			return Explanation{}, err
		}
		return explainUnit(u)
	}

	code, err := DecodeCode(digest)
	if err != nil {
		return Explanation{}, err
	}
	units, err := Decompose(code)
	if err != nil {
		return Explanation{}, err
	}
	out := Explanation{
		ISCC:     code.Text(),
		MainType: h.MainType.String(),
		SubType:  h.SubType.Name(h.MainType),
		Version:  uint8(h.Version),
		BodyBits: len(code.Body) * 8,
		BodyHex:  hex.EncodeToString(code.Body),
	}
	for _, u := range units {
		ue, err := explainUnit(u)
		if err != nil {
			return Explanation{}, err
		}
		out.Units = append(out.Units, ue)
	}
	return out, nil
}

func explainUnit(u Unit) (Explanation, error) {
	text, err := u.Text()
	if err != nil {
		return Explanation{}, err
	}
	return Explanation{
		ISCC:     text,
		MainType: u.Header.MainType.String(),
		SubType:  u.Header.SubType.Name(u.Header.MainType),
		Version:  uint8(u.Header.Version),
		BodyBits: u.BodyBits(),
		BodyHex:  hex.EncodeToString(u.Body),
	}, nil
}
