package iscc

import (
	"fmt"
	"math/bits"
)

// MainType identifies the algorithmic family of an ISCC-UNIT or ISCC-CODE.
type MainType uint8

const (
	MTMeta     MainType = 0
	MTSemantic MainType = 1
	MTContent  MainType = 2
	MTData     MainType = 3
	MTInstance MainType = 4
	MTISCC     MainType = 5
	MTID       MainType = 6
	MTFlake    MainType = 7
)

var mainTypeNames = map[MainType]string{
	MTMeta:     "META",
	MTSemantic: "SEMANTIC",
	MTContent:  "CONTENT",
	MTData:     "DATA",
	MTInstance: "INSTANCE",
	MTISCC:     "ISCC",
	MTID:       "ID",
	MTFlake:    "FLAKE",
}

func (mt MainType) String() string {
	if name, ok := mainTypeNames[mt]; ok {
		return name
	}
	return fmt.Sprintf("MAINTYPE(%d)", uint8(mt))
}

// SubType refines a MainType. The meaning of a SubType value depends on the
// MainType it appears under: SEMANTIC and CONTENT use the modality values
// (TEXT..MIXED), the composite MainType additionally allows SUM, and all
// remaining MainTypes only carry NONE.
type SubType uint8

const (
	STNone  SubType = 0
	STText  SubType = 0
	STImage SubType = 1
	STAudio SubType = 2
	STVideo SubType = 3
	STMixed SubType = 4
	STSum   SubType = 5
)

var modalityNames = [...]string{"TEXT", "IMAGE", "AUDIO", "VIDEO", "MIXED", "SUM"}

// Name returns the SubType's name in the context of the given MainType.
func (st SubType) Name(mt MainType) string {
	switch mt {
	case MTSemantic, MTContent, MTISCC:
		if int(st) < len(modalityNames) {
			return modalityNames[st]
		}
	default:
		if st == STNone {
			return "NONE"
		}
	}
	return fmt.Sprintf("SUBTYPE(%d)", uint8(st))
}

// Version is the encoding version of a header.
type Version uint8

// V0 is the only defined encoding version.
const V0 Version = 0

// UnitOrder defines the canonical order of units within an ISCC-CODE.
var UnitOrder = []MainType{MTMeta, MTSemantic, MTContent, MTData, MTInstance}

// optionalUnitBits maps the optional unit MainTypes to their presence bit in
// the composite Length nibble. DATA and INSTANCE are mandatory and carry no bit.
var optionalUnitBits = map[MainType]uint8{
	MTMeta:     0b100,
	MTSemantic: 0b010,
	MTContent:  0b001,
}

// maxSubType holds the largest defined SubType value per MainType.
var maxSubType = map[MainType]SubType{
	MTMeta:     STNone,
	MTSemantic: STMixed,
	MTContent:  STMixed,
	MTData:     STNone,
	MTInstance: STNone,
	MTISCC:     STSum,
	MTID:       STNone,
	MTFlake:    STNone,
}

// Body bit-length bounds for unit MainTypes. The Length nibble encodes
// bits/32-1, so the nibble range 0..7 covers 32..256 bits.
const (
	MinBits        = 32
	MaxBits        = 256
	maxLengthCode  = (MaxBits / MinBits) - 1
	compositeChunk = 8 // bytes of each unit carried in a composite body
)

// Header is the 2-byte self-describing prefix of every ISCC digest.
//
// Length holds the raw Length nibble. For unit MainTypes it encodes the body
// bit-length class; for MTISCC it is the presence bitfield of optional units.
// Use BodyBits and Units to interpret it.
type Header struct {
	MainType MainType
	SubType  SubType
	Version  Version
	Length   uint8
}

// NewHeader builds a validated unit header from a body bit-length.
func NewHeader(mt MainType, st SubType, v Version, bodyBits int) (Header, error) {
	if mt == MTISCC {
		return Header{}, NewError(KindFormat, "ISCC-HDR-005",
			"composite headers are built by Compose, not NewHeader")
	}
	if bodyBits < MinBits || bodyBits > MaxBits || bodyBits%MinBits != 0 {
		return Header{}, NewError(KindLengthMismatch, "ISCC-HDR-006",
			fmt.Sprintf("invalid body bit-length %d: must be a multiple of %d in %d..%d",
				bodyBits, MinBits, MinBits, MaxBits))
	}
	h := Header{MainType: mt, SubType: st, Version: v, Length: uint8(bodyBits/MinBits - 1)}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}

// BodyBits returns the body bit-length implied by the Length field.
func (h Header) BodyBits() (int, error) {
	if err := h.validate(); err != nil {
		return 0, err
	}
	if h.MainType == MTISCC {
		return compositeChunk * 8 * (2 + bits.OnesCount8(h.Length)), nil
	}
	return (int(h.Length) + 1) * MinBits, nil
}

// Units returns the MainTypes present in a composite, in canonical order.
// Only valid for MTISCC headers.
func (h Header) Units() ([]MainType, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	if h.MainType != MTISCC {
		return nil, NewError(KindFormat, "ISCC-HDR-007",
			fmt.Sprintf("header of MainType %s has no sub-units", h.MainType))
	}
	units := make([]MainType, 0, len(UnitOrder))
	for _, mt := range UnitOrder {
		bit, optional := optionalUnitBits[mt]
		if !optional || h.Length&bit != 0 {
			units = append(units, mt)
		}
	}
	return units, nil
}

func (h Header) validate() error {
	maxST, ok := maxSubType[h.MainType]
	if !ok {
		return NewError(KindFormat, "ISCC-HDR-001",
			fmt.Sprintf("undefined MainType %d", uint8(h.MainType)))
	}
	if h.SubType > maxST {
		return NewError(KindFormat, "ISCC-HDR-002",
			fmt.Sprintf("undefined SubType %d for MainType %s", uint8(h.SubType), h.MainType))
	}
	if h.Version != V0 {
		return NewError(KindFormat, "ISCC-HDR-003",
			fmt.Sprintf("undefined Version %d", uint8(h.Version)))
	}
	if h.Length > maxLengthCode {
		return NewError(KindFormat, "ISCC-HDR-004",
			fmt.Sprintf("undefined Length nibble %d for MainType %s", h.Length, h.MainType))
	}
	return nil
}

// EncodeHeader packs the four header fields into 2 bytes, one nibble each,
// in MainType, SubType, Version, Length order.
func EncodeHeader(h Header) ([]byte, error) {
	if err := h.validate(); err != nil {
		return nil, err
	}
	return []byte{
		byte(h.MainType)<<4 | byte(h.SubType),
		byte(h.Version)<<4 | h.Length,
	}, nil
}

// DecodeHeader is the inverse of EncodeHeader. Inputs that are not exactly
// 2 bytes, or whose nibbles fall outside the defined enumerations, are
// rejected.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) != 2 {
		return Header{}, NewError(KindFormat, "ISCC-HDR-010",
			fmt.Sprintf("header must be exactly 2 bytes, got %d", len(data)))
	}
	h := Header{
		MainType: MainType(data[0] >> 4),
		SubType:  SubType(data[0] & 0x0F),
		Version:  Version(data[1] >> 4),
		Length:   data[1] & 0x0F,
	}
	if err := h.validate(); err != nil {
		return Header{}, err
	}
	return h, nil
}
