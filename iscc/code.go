package iscc

import (
	"fmt"
	"sort"
)

// Code is a composite ISCC-CODE: an MTISCC header plus the concatenated
// leading 64 bits of each constituent unit in canonical order.
//
// Raw holds the canonical digest bytes (header + body). Codes constructed by
// Compose or DecodeCode always carry consistent Raw/Header/Body; a
// hand-assembled Code is re-checked by Decompose.
type Code struct {
	Header Header
	Body   []byte
	Raw    []byte
}

// Text returns the code's "ISCC:"-prefixed base32 form.
func (c Code) Text() string {
	return ToText(c.Raw)
}

// Compose assembles an ISCC-CODE from a set of units.
//
// Rules enforced here:
//   - at least the DATA and INSTANCE units must be present
//   - no MainType may appear twice
//   - only META, SEMANTIC, CONTENT, DATA, INSTANCE are composable
//   - every unit must carry at least 64 body bits (the composite keeps the
//     leading 64 bits of each)
//   - SEMANTIC and CONTENT units must agree on SubType when both are present
//
// Output is canonical: two calls over any permutation of the same unit set
// yield byte-identical digests.
func Compose(units []Unit) (Code, error) {
	byType := make(map[MainType]Unit, len(units))
	for _, u := range units {
		if err := u.Header.validate(); err != nil {
			return Code{}, err
		}
		switch u.Header.MainType {
		case MTMeta, MTSemantic, MTContent, MTData, MTInstance:
		default:
			return Code{}, NewError(KindFormat, "ISCC-CODE-001",
				fmt.Sprintf("MainType %s cannot be part of an ISCC-CODE", u.Header.MainType))
		}
		if _, dup := byType[u.Header.MainType]; dup {
			return Code{}, NewError(KindDuplicateUnit, "ISCC-CODE-002",
				fmt.Sprintf("duplicate %s unit", u.Header.MainType))
		}
		if u.Header.Version != V0 {
			return Code{}, NewError(KindFormat, "ISCC-CODE-003",
				fmt.Sprintf("unsupported version %d in %s unit", u.Header.Version, u.Header.MainType))
		}
		wantBits, err := u.Header.BodyBits()
		if err != nil {
			return Code{}, err
		}
		if u.BodyBits() != wantBits {
			return Code{}, NewError(KindLengthMismatch, "ISCC-CODE-004",
				fmt.Sprintf("%s unit header declares %d body bits but body has %d",
					u.Header.MainType, wantBits, u.BodyBits()))
		}
		if len(u.Body) < compositeChunk {
			return Code{}, NewError(KindLengthMismatch, "ISCC-CODE-005",
				fmt.Sprintf("%s unit has %d body bits, composition requires at least %d",
					u.Header.MainType, u.BodyBits(), compositeChunk*8))
		}
		byType[u.Header.MainType] = u
	}

	if _, ok := byType[MTData]; !ok {
		return Code{}, NewError(KindMissingUnit, "ISCC-CODE-006", "ISCC-CODE requires a DATA unit")
	}
	if _, ok := byType[MTInstance]; !ok {
		return Code{}, NewError(KindMissingUnit, "ISCC-CODE-007", "ISCC-CODE requires an INSTANCE unit")
	}

	semantic, hasSemantic := byType[MTSemantic]
	content, hasContent := byType[MTContent]
	if hasSemantic && hasContent && semantic.Header.SubType != content.Header.SubType {
		return Code{}, NewError(KindFormat, "ISCC-CODE-008",
			fmt.Sprintf("SEMANTIC SubType %s conflicts with CONTENT SubType %s",
				semantic.Header.SubType.Name(MTSemantic), content.Header.SubType.Name(MTContent)))
	}

	// Composite SubType carries the content modality, or SUM for the
	// Data+Instance-only form.
	subType := STSum
	if hasContent {
		subType = content.Header.SubType
	} else if hasSemantic {
		subType = semantic.Header.SubType
	}

	var lengthBits uint8
	ordered := make([]Unit, 0, len(byType))
	for _, mt := range UnitOrder {
		u, ok := byType[mt]
		if !ok {
			continue
		}
		lengthBits |= optionalUnitBits[mt]
		ordered = append(ordered, u)
	}

	header := Header{MainType: MTISCC, SubType: subType, Version: V0, Length: lengthBits}
	headerBytes, err := EncodeHeader(header)
	if err != nil {
		return Code{}, err
	}
	body := make([]byte, 0, len(ordered)*compositeChunk)
	for _, u := range ordered {
		body = append(body, u.Body[:compositeChunk]...)
	}
	raw := make([]byte, 0, len(headerBytes)+len(body))
	raw = append(raw, headerBytes...)
	raw = append(raw, body...)
	return Code{Header: header, Body: body, Raw: raw}, nil
}

// Decompose splits a composite back into standalone 64-bit units in canonical
// order. Slicing must consume the body exactly; anything else is a
// CorruptComposite failure.
func Decompose(c Code) ([]Unit, error) {
	if c.Header.MainType != MTISCC {
		return nil, NewError(KindFormat, "ISCC-CODE-010",
			fmt.Sprintf("cannot decompose MainType %s", c.Header.MainType))
	}
	mainTypes, err := c.Header.Units()
	if err != nil {
		return nil, err
	}
	if len(c.Body) != len(mainTypes)*compositeChunk {
		return nil, NewError(KindCorruptComposite, "ISCC-CODE-011",
			fmt.Sprintf("composite declares %d units (%d body bytes) but body has %d bytes",
				len(mainTypes), len(mainTypes)*compositeChunk, len(c.Body)))
	}
	units := make([]Unit, 0, len(mainTypes))
	for i, mt := range mainTypes {
		st := STNone
		if mt == MTSemantic || mt == MTContent {
			st = c.Header.SubType
		}
		chunk := c.Body[i*compositeChunk : (i+1)*compositeChunk]
		u, err := NewUnit(mt, st, c.Header.Version, chunk)
		if err != nil {
			return nil, WrapError(KindCorruptComposite, "ISCC-CODE-012",
				fmt.Sprintf("cannot reconstruct %s unit", mt), err)
		}
		units = append(units, u)
	}
	return units, nil
}

// DecodeCode parses a standalone composite digest. The input must contain
// exactly the body declared by the composite header.
func DecodeCode(data []byte) (Code, error) {
	if len(data) < 2 {
		return Code{}, NewError(KindTruncated, "ISCC-CODE-013",
			fmt.Sprintf("need 2 header bytes, got %d", len(data)))
	}
	h, err := DecodeHeader(data[:2])
	if err != nil {
		return Code{}, err
	}
	if h.MainType != MTISCC {
		return Code{}, NewError(KindFormat, "ISCC-CODE-014",
			fmt.Sprintf("digest is a %s unit, not an ISCC-CODE", h.MainType))
	}
	wantBits, err := h.BodyBits()
	if err != nil {
		return Code{}, err
	}
	wantBytes := wantBits / 8
	body := data[2:]
	if len(body) < wantBytes {
		return Code{}, NewError(KindTruncated, "ISCC-CODE-015",
			fmt.Sprintf("composite declares %d body bytes but only %d remain", wantBytes, len(body)))
	}
	if len(body) > wantBytes {
		return Code{}, NewError(KindExcess, "ISCC-CODE-016",
			fmt.Sprintf("%d trailing bytes beyond declared composite body", len(body)-wantBytes))
	}
	return Code{
		Header: h,
		Body:   append([]byte(nil), body...),
		Raw:    append([]byte(nil), data...),
	}, nil
}

// DecomposeText parses an "ISCC:"-prefixed string and returns its units.
// A composite yields its constituent units; a standalone unit yields itself.
func DecomposeText(s string) ([]Unit, error) {
	digest, err := FromText(s)
	if err != nil {
		return nil, err
	}
	h, err := DecodeHeader(digest[:min(2, len(digest))])
	if err != nil {
		return nil, err
	}
	if h.MainType == MTISCC {
		code, err := DecodeCode(digest)
		if err != nil {
			return nil, err
		}
		return Decompose(code)
	}
	u, err := DecodeUnit(digest)
	if err != nil {
		return nil, err
	}
	return []Unit{u}, nil
}

// SortCanonical orders units in place by their canonical composite position.
// Units of the same MainType keep their relative order.
func SortCanonical(units []Unit) {
	rank := make(map[MainType]int, len(UnitOrder))
	for i, mt := range UnitOrder {
		rank[mt] = i
	}
	sort.SliceStable(units, func(i, j int) bool {
		ri, iOK := rank[units[i].Header.MainType]
		rj, jOK := rank[units[j].Header.MainType]
		if iOK != jOK {
			return iOK
		}
		return ri < rj
	})
}
