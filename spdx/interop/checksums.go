package interop

import (
	"github.com/spdx/tools-golang/spdx/v2/common"

	v16 "xdao.co/sbom/bom/v16"
)

var hashToChecksum = map[v16.HashAlgorithm]common.ChecksumAlgorithm{
	v16.HashMD5:        common.MD5,
	v16.HashSHA1:       common.SHA1,
	v16.HashSHA256:     common.SHA256,
	v16.HashSHA384:     common.SHA384,
	v16.HashSHA512:     common.SHA512,
	v16.HashSHA3_256:   common.SHA3_256,
	v16.HashSHA3_384:   common.SHA3_384,
	v16.HashSHA3_512:   common.SHA3_512,
	v16.HashBLAKE2b256: common.BLAKE2b_256,
	v16.HashBLAKE2b384: common.BLAKE2b_384,
	v16.HashBLAKE2b512: common.BLAKE2b_512,
	v16.HashBLAKE3:     common.BLAKE3,
}

var checksumToHash = func() map[common.ChecksumAlgorithm]v16.HashAlgorithm {
	m := make(map[common.ChecksumAlgorithm]v16.HashAlgorithm, len(hashToChecksum))
	for h, c := range hashToChecksum {
		m[c] = h
	}
	return m
}()

// SPDX algorithms CycloneDX has no hash for, in the order they are written.
var checksumProps = []struct {
	alg  common.ChecksumAlgorithm
	prop string
}{
	{common.SHA224, PropChecksumSHA224},
	{common.MD2, PropChecksumMD2},
	{common.MD4, PropChecksumMD4},
	{common.MD6, PropChecksumMD6},
	{common.ADLER32, PropChecksumAdler},
}

func packageChecksums(c *v16.Component) []common.Checksum {
	var out []common.Checksum
	for _, h := range c.Hashes {
		if alg, ok := hashToChecksum[h.Alg]; ok {
			out = append(out, common.Checksum{Algorithm: alg, Value: h.Content})
		}
	}
	for _, cp := range checksumProps {
		for _, v := range all(c.Properties, cp.prop) {
			out = append(out, common.Checksum{Algorithm: cp.alg, Value: v})
		}
	}
	return out
}

func componentHashes(c *v16.Component, p *props, checksums []common.Checksum) {
	for _, cs := range checksums {
		if alg, ok := checksumToHash[cs.Algorithm]; ok {
			c.Hashes = append(c.Hashes, v16.Hash{Alg: alg, Content: cs.Value})
			continue
		}
		for _, cp := range checksumProps {
			if cp.alg == cs.Algorithm {
				p.add(cp.prop, cs.Value)
			}
		}
	}
}
