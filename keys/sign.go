package keys

import (
	"crypto/ed25519"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/dilithium/mode3"
	"golang.org/x/crypto/sha3"

	"xdao.co/sbom/cidutil"
)

// DefaultHash is the digest used when a caller does not pick one.
const DefaultHash = "sha3-256"

// ErrBadSignature reports a signature that does not verify.
var ErrBadSignature = errors.New("keys: signature does not verify")

func digestFor(hashAlg string, message []byte) ([]byte, error) {
	switch hashAlg {
	case "sha256":
		s := sha256.Sum256(message)
		return s[:], nil
	case "sha512":
		s := sha512.Sum512(message)
		return s[:], nil
	case "sha3-256":
		s := sha3.Sum256(message)
		return s[:], nil
	case "sha3-512":
		s := sha3.Sum512(message)
		return s[:], nil
	default:
		return nil, fmt.Errorf("unsupported hash algorithm: %q", hashAlg)
	}
}

// Signature is a detached signature over one encoded BOM.
type Signature struct {
	Algorithm Algorithm `json:"algorithm"`
	Hash      string    `json:"hash"`
	// Subject is the CID of the signed document bytes.
	Subject   string `json:"subject"`
	PublicKey string `json:"publicKey"`
	Value     string `json:"value"`
}

// message is what gets digested: a domain tag, the digest name and the
// subject CID, NUL separated.
func message(hashAlg, subject string) []byte {
	return []byte("xdao-sbom-signature-v1\x00" + hashAlg + "\x00" + subject)
}

// Signer produces raw signatures over digests.
type Signer interface {
	Algorithm() Algorithm
	PublicKey() string
	SignDigest(digest []byte) []byte
}

// NewSigner builds a signer for alg from a SeedSize seed.
func NewSigner(alg Algorithm, seed []byte) (Signer, error) {
	if len(seed) != SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(seed))
	}
	switch alg {
	case Ed25519, "":
		return ed25519Signer{ed25519.NewKeyFromSeed(seed)}, nil
	case Dilithium3:
		var s [mode3.SeedSize]byte
		copy(s[:], seed)
		pk, sk := mode3.NewKeyFromSeed(&s)
		return dilithiumSigner{pk: pk, sk: sk}, nil
	}
	return nil, fmt.Errorf("unsupported signature algorithm %q", alg)
}

type ed25519Signer struct{ key ed25519.PrivateKey }

func (s ed25519Signer) Algorithm() Algorithm { return Ed25519 }

func (s ed25519Signer) PublicKey() string {
	return EncodePublicKey(Ed25519, s.key.Public().(ed25519.PublicKey))
}

func (s ed25519Signer) SignDigest(digest []byte) []byte { return ed25519.Sign(s.key, digest) }

type dilithiumSigner struct {
	pk *mode3.PublicKey
	sk *mode3.PrivateKey
}

func (s dilithiumSigner) Algorithm() Algorithm { return Dilithium3 }

func (s dilithiumSigner) PublicKey() string {
	raw, _ := s.pk.MarshalBinary()
	return EncodePublicKey(Dilithium3, raw)
}

func (s dilithiumSigner) SignDigest(digest []byte) []byte {
	sig := make([]byte, mode3.SignatureSize)
	mode3.SignTo(s.sk, digest, sig)
	return sig
}

// SignBOM signs the encoded document data. hashAlg may be empty for
// DefaultHash.
func SignBOM(data []byte, hashAlg string, signer Signer) (Signature, error) {
	if signer == nil {
		return Signature{}, errors.New("missing signer")
	}
	if hashAlg == "" {
		hashAlg = DefaultHash
	}
	id, err := cidutil.Sum(data)
	if err != nil {
		return Signature{}, err
	}
	digest, err := digestFor(hashAlg, message(hashAlg, id.String()))
	if err != nil {
		return Signature{}, err
	}
	return Signature{
		Algorithm: signer.Algorithm(),
		Hash:      hashAlg,
		Subject:   id.String(),
		PublicKey: signer.PublicKey(),
		Value:     base64.StdEncoding.EncodeToString(signer.SignDigest(digest)),
	}, nil
}

// Verify checks sig against the encoded document data. When trusted is
// non-empty the signing key must be one of its entries.
func Verify(data []byte, sig Signature, trusted ...string) error {
	subject, err := cidutil.Parse(sig.Subject)
	if err != nil {
		return err
	}
	if !cidutil.Verify(subject, data) {
		return fmt.Errorf("%w: document does not match subject %s", ErrBadSignature, sig.Subject)
	}
	if len(trusted) > 0 && !contains(trusted, sig.PublicKey) {
		return fmt.Errorf("%w: key %s is not trusted", ErrBadSignature, sig.PublicKey)
	}
	alg, pub, err := ParsePublicKey(sig.PublicKey)
	if err != nil {
		return err
	}
	if alg != sig.Algorithm {
		return fmt.Errorf("%w: key is %s, signature claims %s", ErrBadSignature, alg, sig.Algorithm)
	}
	raw, err := base64.StdEncoding.DecodeString(sig.Value)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	digest, err := digestFor(sig.Hash, message(sig.Hash, sig.Subject))
	if err != nil {
		return err
	}
	var ok bool
	switch alg {
	case Ed25519:
		ok = ed25519.Verify(ed25519.PublicKey(pub), digest, raw)
	case Dilithium3:
		var pk mode3.PublicKey
		if err := pk.UnmarshalBinary(pub); err != nil {
			return err
		}
		ok = mode3.Verify(&pk, digest, raw)
	}
	if !ok {
		return ErrBadSignature
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
