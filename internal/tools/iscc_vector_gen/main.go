// Command iscc_vector_gen regenerates the codec conformance vectors under
// testdata/conformance/iscc. Run it from the repository root after any
// deliberate change to the header layout or text form.
package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"iscc.codes/core/iscc"
)

type vector struct {
	ISCC     string   `json:"iscc"`
	MainType string   `json:"maintype"`
	SubType  string   `json:"subtype"`
	Version  uint8    `json:"version"`
	Bits     int      `json:"bits"`
	Hex      string   `json:"hex"`
	Units    []string `json:"units,omitempty"`
}

func mustUnit(mt iscc.MainType, st iscc.SubType, body []byte) iscc.Unit {
	u, err := iscc.NewUnit(mt, st, iscc.V0, body)
	if err != nil {
		panic(err)
	}
	return u
}

func unitVector(u iscc.Unit) vector {
	text, err := u.Text()
	if err != nil {
		panic(err)
	}
	return vector{
		ISCC:     text,
		MainType: u.Header.MainType.String(),
		SubType:  u.Header.SubType.Name(u.Header.MainType),
		Version:  uint8(u.Header.Version),
		Bits:     u.BodyBits(),
		Hex:      hex.EncodeToString(u.Body),
	}
}

func codeVector(units ...iscc.Unit) vector {
	code, err := iscc.Compose(units)
	if err != nil {
		panic(err)
	}
	parts, err := iscc.Decompose(code)
	if err != nil {
		panic(err)
	}
	names := make([]string, 0, len(parts))
	for _, u := range parts {
		names = append(names, u.Header.MainType.String())
	}
	return vector{
		ISCC:     code.Text(),
		MainType: code.Header.MainType.String(),
		SubType:  code.Header.SubType.Name(code.Header.MainType),
		Version:  uint8(code.Header.Version),
		Bits:     len(code.Body) * 8,
		Hex:      hex.EncodeToString(code.Body),
		Units:    names,
	}
}

func main() {
	zero8 := make([]byte, 8)
	ones8 := bytes.Repeat([]byte{0xFF}, 8)

	vectors := []vector{
		unitVector(mustUnit(iscc.MTMeta, iscc.STNone, zero8)),
		unitVector(mustUnit(iscc.MTMeta, iscc.STNone, ones8)),
		unitVector(mustUnit(iscc.MTSemantic, iscc.STText, zero8)),
		unitVector(mustUnit(iscc.MTContent, iscc.STText, zero8)),
		unitVector(mustUnit(iscc.MTContent, iscc.STImage, make([]byte, 16))),
		unitVector(mustUnit(iscc.MTData, iscc.STNone, zero8)),
		unitVector(mustUnit(iscc.MTInstance, iscc.STNone, make([]byte, 32))),
		codeVector(
			mustUnit(iscc.MTMeta, iscc.STNone, zero8),
			mustUnit(iscc.MTData, iscc.STNone, zero8),
			mustUnit(iscc.MTInstance, iscc.STNone, zero8),
		),
		codeVector(
			mustUnit(iscc.MTContent, iscc.STText, ones8),
			mustUnit(iscc.MTData, iscc.STNone, zero8),
			mustUnit(iscc.MTInstance, iscc.STNone, ones8),
		),
	}

	out, err := json.MarshalIndent(vectors, "", "  ")
	if err != nil {
		panic(err)
	}
	out = append(out, '\n')

	path := filepath.Join("testdata", "conformance", "iscc", "vectors.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		panic(err)
	}
	fmt.Printf("wrote %d vectors to %s\n", len(vectors), path)
}
