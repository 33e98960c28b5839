package keys

import (
	"bytes"
	"crypto/ed25519"
	"strings"
	"testing"
)

func TestDeriveRoleSeedDeterministic(t *testing.T) {
	root := bytes.Repeat([]byte{0x07}, ed25519.SeedSize)

	first, err := DeriveRoleSeed(root, "declarer")
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	second, err := DeriveRoleSeed(root, "declarer")
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("derivation must be deterministic")
	}
	if len(first) != ed25519.SeedSize {
		t.Fatalf("derived seed = %d bytes, want %d", len(first), ed25519.SeedSize)
	}
}

func TestDeriveRoleSeedSeparatesRoles(t *testing.T) {
	root := bytes.Repeat([]byte{0x07}, ed25519.SeedSize)
	seen := map[string][]byte{}
	for _, role := range []string{"declarer", "verifier", "revoker"} {
		seed, err := DeriveRoleSeed(root, role)
		if err != nil {
			t.Fatalf("DeriveRoleSeed(%s): %v", role, err)
		}
		for other, prior := range seen {
			if bytes.Equal(seed, prior) {
				t.Fatalf("roles %s and %s derived the same seed", role, other)
			}
		}
		seen[role] = seed
	}
}

func TestDeriveRoleSeedRejectsBadInputs(t *testing.T) {
	root := bytes.Repeat([]byte{0x07}, ed25519.SeedSize)
	if _, err := DeriveRoleSeed(root, "auditor"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if _, err := DeriveRoleSeed(root[:16], "declarer"); err == nil {
		t.Fatal("expected error for short root seed")
	}
}

func TestSignerKeyFromSeed(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, ed25519.SeedSize)
	key := SignerKeyFromSeed(seed)
	if !strings.HasPrefix(key, "ed25519:") {
		t.Fatalf("signer key = %q, want ed25519 prefix", key)
	}
	if key != SignerKeyFromSeed(seed) {
		t.Fatal("signer key derivation must be deterministic")
	}

	pub := ed25519.NewKeyFromSeed(seed).Public().(ed25519.PublicKey)
	fromPub, err := SignerKeyFromPublicKey(pub)
	if err != nil {
		t.Fatalf("SignerKeyFromPublicKey: %v", err)
	}
	if fromPub != key {
		t.Fatal("seed-derived and pubkey-derived signer keys must match")
	}
	if _, err := SignerKeyFromPublicKey(pub[:16]); err == nil {
		t.Fatal("expected error for short public key")
	}
}

func TestDerivedKeysSignAndVerify(t *testing.T) {
	root := bytes.Repeat([]byte{0x2A}, ed25519.SeedSize)
	seed, err := DeriveRoleSeed(root, "declarer")
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	priv := ed25519.NewKeyFromSeed(seed)
	signerKey := SignerKeyFromSeed(seed)

	message, err := DeclarationMessage("ISCC:AAASIOC2VIDHWPNS")
	if err != nil {
		t.Fatalf("DeclarationMessage: %v", err)
	}
	sig := SignEd25519SHA256(message, priv)
	if err := Verify(message, signerKey, "sha256", sig); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}
