package keys

import (
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
)

// Algorithm names a signature scheme.
type Algorithm string

const (
	Ed25519    Algorithm = "ed25519"
	Dilithium3 Algorithm = "dilithium3"
)

// ParseAlgorithm accepts the Algorithm names; "" means Ed25519.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch a := Algorithm(strings.ToLower(s)); a {
	case "":
		return Ed25519, nil
	case Ed25519, Dilithium3:
		return a, nil
	}
	return "", fmt.Errorf("unsupported signature algorithm %q", s)
}

// EncodePublicKey renders a public key as "<algorithm>:<base64>".
func EncodePublicKey(alg Algorithm, raw []byte) string {
	return string(alg) + ":" + base64.StdEncoding.EncodeToString(raw)
}

// ParsePublicKey splits an encoded public key and checks its length.
func ParsePublicKey(s string) (Algorithm, []byte, error) {
	name, b64, ok := strings.Cut(s, ":")
	if !ok {
		return "", nil, fmt.Errorf("public key %q has no algorithm prefix", s)
	}
	alg, err := ParseAlgorithm(name)
	if err != nil {
		return "", nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", nil, fmt.Errorf("public key: %w", err)
	}
	want := ed25519.PublicKeySize
	if alg == Dilithium3 {
		want = mode3.PublicKeySize
	}
	if len(raw) != want {
		return "", nil, fmt.Errorf("%s public key must be %d bytes, got %d", alg, want, len(raw))
	}
	return alg, raw, nil
}

// PublicKeyFromSeed returns the encoded public key a seed yields under alg.
func PublicKeyFromSeed(alg Algorithm, seed []byte) (string, error) {
	s, err := NewSigner(alg, seed)
	if err != nil {
		return "", err
	}
	return s.PublicKey(), nil
}
