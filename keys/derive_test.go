package keys

import (
	"strings"
	"testing"
)

func TestDeriveRoleSeedDeterministic(t *testing.T) {
	root := make([]byte, SeedSize)
	for i := range root {
		root[i] = byte(i)
	}

	a, err := DeriveRoleSeed(root, "publisher")
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	b, err := DeriveRoleSeed(root, "publisher")
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("expected deterministic derivation")
	}

	c, err := DeriveRoleSeed(root, "auditor")
	if err != nil {
		t.Fatalf("DeriveRoleSeed: %v", err)
	}
	if string(a) == string(c) {
		t.Fatalf("expected different roles to derive different seeds")
	}
	if _, err := DeriveRoleSeed(root, "bad role"); err == nil {
		t.Fatalf("expected invalid role error")
	}
}

func TestPublicKeyEncoding(t *testing.T) {
	seed := make([]byte, SeedSize)
	for i := range seed {
		seed[i] = 0x42
	}
	for _, alg := range []Algorithm{Ed25519, Dilithium3} {
		pub, err := PublicKeyFromSeed(alg, seed)
		if err != nil {
			t.Fatalf("PublicKeyFromSeed(%s): %v", alg, err)
		}
		if !strings.HasPrefix(pub, string(alg)+":") {
			t.Fatalf("expected %s prefix, got %q", alg, pub)
		}
		got, _, err := ParsePublicKey(pub)
		if err != nil || got != alg {
			t.Fatalf("ParsePublicKey = %s, %v", got, err)
		}
	}
	if _, _, err := ParsePublicKey("ed25519:AAAA"); err == nil {
		t.Fatalf("expected short key error")
	}
}
