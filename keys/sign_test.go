package keys

import (
	"errors"
	"testing"

	"github.com/cloudflare/circl/sign/dilithium/mode3"

	"xdao.co/sbom/cidutil"
)

type deterministicReader struct{ b byte }

func (r *deterministicReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
		r.b++
	}
	return len(p), nil
}

func testSeed(t *testing.T) []byte {
	t.Helper()
	seed, err := NewSeed(&deterministicReader{})
	if err != nil {
		t.Fatalf("NewSeed: %v", err)
	}
	return seed
}

func TestSignBOMVerifies(t *testing.T) {
	doc := []byte(`{"bomFormat":"CycloneDX","specVersion":"1.6","version":1}`)
	for _, alg := range []Algorithm{Ed25519, Dilithium3} {
		for _, h := range []string{"", "sha256", "sha512", "sha3-256", "sha3-512"} {
			signer, err := NewSigner(alg, testSeed(t))
			if err != nil {
				t.Fatalf("NewSigner(%s): %v", alg, err)
			}
			sig, err := SignBOM(doc, h, signer)
			if err != nil {
				t.Fatalf("%s/%s: SignBOM: %v", alg, h, err)
			}
			if sig.Subject != cidutil.String(doc) {
				t.Fatalf("%s/%s: subject %s", alg, h, sig.Subject)
			}
			if h == "" && sig.Hash != DefaultHash {
				t.Fatalf("default hash = %q", sig.Hash)
			}
			if err := Verify(doc, sig); err != nil {
				t.Fatalf("%s/%s: Verify: %v", alg, h, err)
			}
			if err := Verify(doc, sig, signer.PublicKey()); err != nil {
				t.Fatalf("%s/%s: Verify trusted: %v", alg, h, err)
			}
		}
	}
}

func TestDilithiumSignatureSize(t *testing.T) {
	signer, err := NewSigner(Dilithium3, testSeed(t))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	if got := len(signer.SignDigest([]byte("digest"))); got != mode3.SignatureSize {
		t.Fatalf("signature size %d, want %d", got, mode3.SignatureSize)
	}
}

func TestVerifyRejects(t *testing.T) {
	doc := []byte("<bom/>")
	signer, err := NewSigner(Ed25519, testSeed(t))
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	sig, err := SignBOM(doc, "sha256", signer)
	if err != nil {
		t.Fatalf("SignBOM: %v", err)
	}

	if err := Verify([]byte("<bom />"), sig); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("other document: %v", err)
	}

	other, _ := NewSigner(Ed25519, make([]byte, SeedSize))
	if err := Verify(doc, sig, other.PublicKey()); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("untrusted key: %v", err)
	}

	swapped := sig
	swapped.Hash = "sha512"
	if err := Verify(doc, swapped); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("hash swap: %v", err)
	}

	mislabelled := sig
	mislabelled.Algorithm = Dilithium3
	if err := Verify(doc, mislabelled); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("algorithm mismatch: %v", err)
	}

	unknown := sig
	unknown.Hash = "md5"
	if err := Verify(doc, unknown); err == nil {
		t.Fatalf("unknown hash accepted")
	}
}

func TestNewSignerRejectsShortSeed(t *testing.T) {
	if _, err := NewSigner(Ed25519, []byte{1, 2, 3}); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := NewSigner("rsa", testSeed(t)); err == nil {
		t.Fatalf("expected error for unknown algorithm")
	}
}
