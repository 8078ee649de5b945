package localfs

import (
	"flag"
	"fmt"

	"xdao.co/sbom/storage"
	"xdao.co/sbom/storage/casregistry"
)

var (
	flagLocalDir    string
	flagCompression string
)

func init() {
	casregistry.MustRegister(casregistry.Backend{
		Name:        "localfs",
		Description: "Local filesystem CAS (directory, optional zstd/lz4/brotli at rest)",
		Usage:       casregistry.UsageCLI | casregistry.UsageDaemon,
		RegisterFlags: func(fs *flag.FlagSet) {
			fs.StringVar(&flagLocalDir, "localfs-dir", "", "LocalFS CAS directory (for --backend=localfs)")
			fs.StringVar(&flagCompression, "localfs-compression", "none", "At-rest compression: none, zstd, lz4 or brotli")
		},
		Open: func() (storage.CAS, func() error, error) {
			return open(flagLocalDir, flagCompression)
		},
		OpenConfig: func(cfg map[string]string) (storage.CAS, func() error, error) {
			return open(cfg["localfs-dir"], cfg["localfs-compression"])
		},
	})
}

func open(dir, compression string) (storage.CAS, func() error, error) {
	if dir == "" {
		return nil, nil, fmt.Errorf("missing --localfs-dir")
	}
	c, err := ParseCompression(compression)
	if err != nil {
		return nil, nil, err
	}
	cas, err := New(dir, Options{Compression: c})
	if err != nil {
		return nil, nil, err
	}
	return cas, nil, nil
}
