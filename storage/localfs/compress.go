package localfs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects how blobs are stored at rest. CIDs are always
// computed over the uncompressed bytes.
type Compression string

const (
	None   Compression = "none"
	Zstd   Compression = "zstd"
	LZ4    Compression = "lz4"
	Brotli Compression = "brotli"
)

// ParseCompression accepts the Compression names; "" means None.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(s); c {
	case "":
		return None, nil
	case None, Zstd, LZ4, Brotli:
		return c, nil
	}
	return "", fmt.Errorf("localfs: unknown compression %q", s)
}

// compressions lists every on-disk variant in lookup order.
var compressions = []Compression{None, Zstd, LZ4, Brotli}

func (c Compression) suffix() string {
	switch c {
	case Zstd:
		return ".zst"
	case LZ4:
		return ".lz4"
	case Brotli:
		return ".br"
	}
	return ""
}

func (c Compression) compress(data []byte) ([]byte, error) {
	switch c {
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		out := enc.EncodeAll(data, nil)
		return out, enc.Close()
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case Brotli:
		var buf bytes.Buffer
		w := brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
		if err := w.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return data, nil
}

func (c Compression) decompress(data []byte) ([]byte, error) {
	switch c {
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return dec.DecodeAll(data, nil)
	case LZ4:
		return io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	case Brotli:
		return io.ReadAll(brotli.NewReader(bytes.NewReader(data)))
	}
	return data, nil
}
