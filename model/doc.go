// Package model defines stable boundary types for comparison reports.
//
// Codec identity (ISCC digests and their text forms) is unaffected by any
// projection. These structs are the only types intended for direct JSON
// serialization by consumers (CLI tools, registry clients, batch runners).
package model
