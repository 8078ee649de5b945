package bomutil

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"

	v16 "xdao.co/sbom/bom/v16"
	"xdao.co/sbom/sbomerr"
)

func newHash(alg v16.HashAlgorithm) (hash.Hash, error) {
	switch alg {
	case v16.HashMD5:
		return md5.New(), nil
	case v16.HashSHA1:
		return sha1.New(), nil
	case v16.HashSHA256:
		return sha256.New(), nil
	case v16.HashSHA384:
		return sha512.New384(), nil
	case v16.HashSHA512:
		return sha512.New(), nil
	case v16.HashSHA3_256:
		return sha3.New256(), nil
	case v16.HashSHA3_384:
		return sha3.New384(), nil
	case v16.HashSHA3_512:
		return sha3.New512(), nil
	case v16.HashBLAKE2b256:
		return blake2b.New256(nil)
	case v16.HashBLAKE2b384:
		return blake2b.New384(nil)
	case v16.HashBLAKE2b512:
		return blake2b.New512(nil)
	case v16.HashBLAKE3:
		return blake3.New(32, nil), nil
	}
	return nil, sbomerr.New(sbomerr.KindUnsupported, "SBOM-HASH-001", "unsupported hash algorithm "+string(alg))
}

// ComputeHashes reads r once and returns one lowercase hex digest per
// algorithm, in the order given. With no algorithms it computes SHA-256.
func ComputeHashes(r io.Reader, algs ...v16.HashAlgorithm) ([]v16.Hash, error) {
	if len(algs) == 0 {
		algs = []v16.HashAlgorithm{v16.HashSHA256}
	}
	hs := make([]hash.Hash, len(algs))
	ws := make([]io.Writer, len(algs))
	for i, alg := range algs {
		h, err := newHash(alg)
		if err != nil {
			return nil, err
		}
		hs[i], ws[i] = h, h
	}
	if _, err := io.Copy(io.MultiWriter(ws...), r); err != nil {
		return nil, sbomerr.Wrap(sbomerr.KindInternal, "SBOM-HASH-002", "reading content", err)
	}
	out := make([]v16.Hash, len(algs))
	for i, alg := range algs {
		out[i] = v16.Hash{Alg: alg, Content: hex.EncodeToString(hs[i].Sum(nil))}
	}
	return out, nil
}
