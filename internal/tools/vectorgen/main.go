// Command vectorgen writes conformance vectors: the shared fixture BOM
// encoded in every supported format and version, a manifest of their
// CIDs, and a detached signature over the latest JSON encoding.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"xdao.co/sbom/cidutil"
	"xdao.co/sbom/convert"
	"xdao.co/sbom/internal/bomtest"
	"xdao.co/sbom/keys"
	"xdao.co/sbom/specversion"
)

type vector struct {
	File        string `json:"file"`
	Format      string `json:"format"`
	SpecVersion string `json:"specVersion"`
	MediaType   string `json:"mediaType"`
	CID         string `json:"cid"`
}

type manifest struct {
	Vectors   []vector       `json:"vectors"`
	Signature keys.Signature `json:"signature"`
}

var extensions = map[specversion.Format]string{
	specversion.XML:      ".xml",
	specversion.JSON:     ".json",
	specversion.Protobuf: ".cdx",
}

func fixedSeed(b byte) []byte {
	seed := make([]byte, keys.SeedSize)
	for i := range seed {
		seed[i] = b
	}
	return seed
}

func generate(dir string) (*manifest, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	m := &manifest{}
	var latestJSON []byte
	for _, v := range specversion.Versions() {
		doc, err := convert.Convert(bomtest.Full(), v)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", v, err)
		}
		for _, f := range []specversion.Format{specversion.XML, specversion.JSON, specversion.Protobuf} {
			if specversion.Supports(f, v) != nil {
				continue
			}
			id, data, err := cidutil.BomCID(doc, f)
			if err != nil {
				return nil, fmt.Errorf("encode %s %s: %w", f, v, err)
			}
			mt, err := specversion.VersionedMediaType(f, v)
			if err != nil {
				return nil, err
			}
			name := "bom-" + v.String() + extensions[f]
			if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
				return nil, err
			}
			m.Vectors = append(m.Vectors, vector{File: name, Format: f.String(), SpecVersion: v.String(), MediaType: mt, CID: id.String()})
			if f == specversion.JSON && v == specversion.Latest {
				latestJSON = data
			}
		}
	}

	signer, err := keys.NewSigner(keys.Ed25519, fixedSeed(0xA1))
	if err != nil {
		return nil, err
	}
	if m.Signature, err = keys.SignBOM(latestJSON, keys.DefaultHash, signer); err != nil {
		return nil, err
	}

	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, err
	}
	return m, os.WriteFile(filepath.Join(dir, "manifest.json"), append(out, '\n'), 0o644)
}

func main() {
	dir := flag.String("out", "testdata/vectors", "Output directory")
	flag.Parse()
	m, err := generate(*dir)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	for _, v := range m.Vectors {
		fmt.Printf("%s\t%s\n", v.CID, v.File)
	}
}
