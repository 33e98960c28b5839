// Package keys provides signing helpers for ISCC declarations.
//
// A declaration binds a canonical ISCC text form to a signer. This package
// covers the pure, deterministic primitives: digesting and signing the
// declaration message, signer-key string formatting, and role-seed
// derivation. Key storage and custody workflows are the caller's concern.
package keys
