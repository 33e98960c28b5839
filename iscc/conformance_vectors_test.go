package iscc

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

type conformanceVector struct {
	ISCC     string   `json:"iscc"`
	MainType string   `json:"maintype"`
	SubType  string   `json:"subtype"`
	Version  uint8    `json:"version"`
	Bits     int      `json:"bits"`
	Hex      string   `json:"hex"`
	Units    []string `json:"units"`
}

func loadVectors(t *testing.T) []conformanceVector {
	t.Helper()
	path := filepath.Join("..", "testdata", "conformance", "iscc", "vectors.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read vectors: %v", err)
	}
	var vectors []conformanceVector
	if err := json.Unmarshal(data, &vectors); err != nil {
		t.Fatalf("parse vectors: %v", err)
	}
	if len(vectors) == 0 {
		t.Fatal("no conformance vectors")
	}
	return vectors
}

func TestConformanceVectors(t *testing.T) {
	for _, v := range loadVectors(t) {
		t.Run(v.ISCC, func(t *testing.T) {
			if err := Validate(v.ISCC); err != nil {
				t.Fatalf("Validate: %v", err)
			}

			digest, err := FromText(v.ISCC)
			if err != nil {
				t.Fatalf("FromText: %v", err)
			}
			if ToText(digest) != v.ISCC {
				t.Fatalf("text round trip: %s != %s", ToText(digest), v.ISCC)
			}

			wantBody, err := hex.DecodeString(v.Hex)
			if err != nil {
				t.Fatalf("bad vector hex: %v", err)
			}
			if !bytes.Equal(digest[2:], wantBody) {
				t.Fatalf("body mismatch: % x != % x", digest[2:], wantBody)
			}

			e, err := Explain(v.ISCC)
			if err != nil {
				t.Fatalf("Explain: %v", err)
			}
			if e.MainType != v.MainType || e.SubType != v.SubType ||
				e.Version != v.Version || e.BodyBits != v.Bits || e.BodyHex != v.Hex {
				t.Fatalf("explanation mismatch:\n got %+v\nwant %+v", e, v)
			}

			if len(v.Units) > 0 {
				units, err := DecomposeText(v.ISCC)
				if err != nil {
					t.Fatalf("DecomposeText: %v", err)
				}
				if len(units) != len(v.Units) {
					t.Fatalf("got %d units, want %d", len(units), len(v.Units))
				}
				for i, name := range v.Units {
					if units[i].Header.MainType.String() != name {
						t.Fatalf("unit %d: got %s, want %s",
							i, units[i].Header.MainType, name)
					}
				}
			}
		})
	}
}
