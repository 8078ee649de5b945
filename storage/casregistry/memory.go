package casregistry

import (
	"flag"

	"xdao.co/sbom/storage"
)

func init() {
	open := func() (storage.CAS, func() error, error) { return &storage.MemCAS{}, nil, nil }
	MustRegister(Backend{
		Name:          "memory",
		Description:   "In-process CAS; contents are lost on exit",
		Usage:         UsageCLI | UsageDaemon,
		RegisterFlags: func(*flag.FlagSet) {},
		Open:          open,
		OpenConfig:    func(map[string]string) (storage.CAS, func() error, error) { return open() },
	})
}
